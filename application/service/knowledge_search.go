package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/sync/errgroup"

	"github.com/assistant-mcp/knowd/domain/knowledge"
	"github.com/assistant-mcp/knowd/infrastructure/extractor"
	"github.com/assistant-mcp/knowd/infrastructure/locator"
)

// A file stops collecting content matches during file-level search
// once it has more than this many.
const fileContentMatchCap = 10

// KnowledgeSearch orchestrates searches over the knowledge base: it
// locates candidate files, extracts their text, matches keywords and
// assembles ranked reports. File scanning fans out across a worker
// pool.
type KnowledgeSearch struct {
	walker      *locator.Walker
	extractor   *extractor.Extractor
	scoring     knowledge.Scoring
	fileScoring knowledge.FileScoring
	pool        *ants.Pool
	workers     int
	logger      *slog.Logger
}

// KnowledgeSearchOption configures a KnowledgeSearch.
type KnowledgeSearchOption func(*KnowledgeSearch)

// WithScoring overrides the content match scoring weights.
func WithScoring(s knowledge.Scoring) KnowledgeSearchOption {
	return func(ks *KnowledgeSearch) {
		ks.scoring = s
	}
}

// WithFileScoring overrides the file-level scoring weights.
func WithFileScoring(s knowledge.FileScoring) KnowledgeSearchOption {
	return func(ks *KnowledgeSearch) {
		ks.fileScoring = s
	}
}

// NewKnowledgeSearch creates a KnowledgeSearch with a worker pool of
// the given size. Sizes below one are raised to one.
func NewKnowledgeSearch(walker *locator.Walker, extr *extractor.Extractor, workers int, logger *slog.Logger, opts ...KnowledgeSearchOption) (*KnowledgeSearch, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}

	ks := &KnowledgeSearch{
		walker:      walker,
		extractor:   extr,
		scoring:     knowledge.NewScoring(),
		fileScoring: knowledge.NewFileScoring(),
		pool:        pool,
		workers:     workers,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(ks)
	}
	return ks, nil
}

// Release frees the worker pool. The service must not be used after
// calling Release.
func (s *KnowledgeSearch) Release() {
	if s.pool != nil {
		s.pool.Release()
	}
}

// SearchContent scans the content of files under root whose names
// match the query's file patterns and reports scored keyword matches.
// When the context ends mid-search, the report covers the files scanned
// so far.
func (s *KnowledgeSearch) SearchContent(ctx context.Context, root string, query knowledge.ContentQuery) (knowledge.ContentReport, error) {
	start := time.Now()

	patterns := knowledge.CompilePatterns(query.FilePatterns())
	found, err := s.walker.Find(ctx, root, patterns.Matches)
	if err != nil && ctx.Err() == nil {
		return knowledge.ContentReport{}, err
	}

	if len(found.Candidates) == 0 {
		return knowledge.NewNoCandidatesReport(), nil
	}

	matcher := knowledge.NewMatcher(query.Keywords(), query.CaseSensitive())

	var mu sync.Mutex
	var results []knowledge.FileResult
	var wg sync.WaitGroup

	for _, candidate := range found.Candidates {
		candidate := candidate
		task := func() {
			defer wg.Done()

			matches := s.scanContent(ctx, candidate, matcher, query.ContextLines())
			if len(matches) == 0 {
				return
			}

			result := knowledge.NewFileResult(candidate, matches, query.MaxPerFile())
			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}

		wg.Add(1)
		if submitErr := s.pool.Submit(task); submitErr != nil {
			task()
		}
	}
	wg.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		s.logger.Warn("content search interrupted, reporting partial results",
			slog.String("root", root),
			slog.String("reason", ctxErr.Error()),
		)
	}

	report := knowledge.NewContentReport(len(found.Candidates), results, query.Keywords())

	s.logger.Info("content search complete",
		slog.Int("files_scanned", report.Stats().FilesScanned()),
		slog.Int("files_with_matches", report.Stats().FilesWithMatches()),
		slog.Int("matches", report.Stats().TotalMatches()),
		slog.Duration("duration", time.Since(start)),
	)

	return report, nil
}

// scanContent extracts a file and returns every scored keyword match in
// its lines. Extraction failures are logged and yield no matches.
func (s *KnowledgeSearch) scanContent(ctx context.Context, candidate knowledge.FileCandidate, matcher knowledge.Matcher, contextLines int) []knowledge.ContentMatch {
	if ctx.Err() != nil {
		return nil
	}

	lines, err := s.extractor.Lines(ctx, candidate)
	if err != nil {
		s.logger.Warn("skipping unreadable file",
			slog.String("file", candidate.RelPath()),
			slog.String("error", err.Error()),
		)
		return nil
	}

	var matches []knowledge.ContentMatch
	for i, line := range lines {
		lineNumber := i + 1
		for _, span := range matcher.Scan(line) {
			window := knowledge.BuildWindow(lines, lineNumber, contextLines)
			occurrences := knowledge.CountOccurrences(line, span.Keyword())
			score := s.scoring.ScoreMatch(span.Start(), len(line), len(window.Before()), len(window.After()), occurrences)
			matches = append(matches, knowledge.NewContentMatch(lineNumber, span, window, occurrences, score))
		}
	}
	return matches
}

// SearchFiles looks for keyword matches in file names, and optionally
// file contents, under root. When the context ends mid-search, the
// report covers the files processed so far.
func (s *KnowledgeSearch) SearchFiles(ctx context.Context, root string, query knowledge.FileQuery) (knowledge.FileReport, error) {
	start := time.Now()

	found, err := s.walker.Find(ctx, root, nil)
	if err != nil && ctx.Err() == nil {
		return knowledge.FileReport{}, err
	}

	matcher := knowledge.NewMatcher(query.Keywords(), query.CaseSensitive())

	var mu sync.Mutex
	var hits []knowledge.FileHit

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for _, candidate := range found.Candidates {
		candidate := candidate
		if !query.AllowsType(candidate.Ext()) {
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			matches := s.matchFile(gctx, candidate, matcher, query.SearchContent())
			if len(matches) == 0 {
				return nil
			}

			nameCount, contentCount := knowledge.CountFileMatches(matches)
			score := s.fileScoring.ScoreFile(nameCount, contentCount)

			mu.Lock()
			hits = append(hits, knowledge.NewFileHit(candidate, matches, score))
			mu.Unlock()
			return nil
		})
	}

	if waitErr := g.Wait(); waitErr != nil {
		s.logger.Warn("file search interrupted, reporting partial results",
			slog.String("root", root),
			slog.String("reason", waitErr.Error()),
		)
	}

	report := knowledge.NewFileReport(found.FilesVisited, hits, query.MaxResults())

	s.logger.Info("file search complete",
		slog.Int("files_scanned", report.FilesScanned()),
		slog.Int("matching_files", report.MatchingFiles()),
		slog.Duration("duration", time.Since(start)),
	)

	return report, nil
}

// matchFile collects a file's name matches and, when enabled for its
// format, its content matches.
func (s *KnowledgeSearch) matchFile(ctx context.Context, candidate knowledge.FileCandidate, matcher knowledge.Matcher, searchContent bool) []knowledge.FileMatch {
	var matches []knowledge.FileMatch

	for _, span := range matcher.Scan(candidate.Name()) {
		matches = append(matches, knowledge.NewNameMatch(span.Keyword(), span.Text(), span.Start()))
	}

	if !searchContent || !s.extractor.ScansContent(candidate.Ext()) {
		return matches
	}

	lines, err := s.extractor.Lines(ctx, candidate)
	if err != nil {
		s.logger.Warn("skipping file content",
			slog.String("file", candidate.RelPath()),
			slog.String("error", err.Error()),
		)
		return matches
	}

	contentMatches := 0
	for i, line := range lines {
		lineNumber := i + 1
		for _, span := range matcher.Scan(line) {
			matches = append(matches, knowledge.NewContentFileMatch(span.Keyword(), span.Text(), lineNumber, knowledge.Snippet(line, span)))
			contentMatches++
			if contentMatches > fileContentMatchCap {
				return matches
			}
		}
	}
	return matches
}
