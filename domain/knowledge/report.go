package knowledge

import (
	"fmt"
	"sort"
	"strings"
)

// FileSummary aggregates the matches kept for one file.
type FileSummary struct {
	totalMatches int
	keywords     []string
	avgRelevance float64
}

// TotalMatches returns how many matches the file contributed after the
// per-file cap.
func (s FileSummary) TotalMatches() int {
	return s.totalMatches
}

// Keywords returns the distinct matched keywords in sorted order.
func (s FileSummary) Keywords() []string {
	result := make([]string, len(s.keywords))
	copy(result, s.keywords)
	return result
}

// AvgRelevance returns the mean relevance score of the kept matches.
func (s FileSummary) AvgRelevance() float64 {
	return s.avgRelevance
}

func summarize(matches []ContentMatch) FileSummary {
	if len(matches) == 0 {
		return FileSummary{keywords: []string{}}
	}

	seen := make(map[string]struct{})
	var keywords []string
	var sum float64
	for _, m := range matches {
		if _, ok := seen[m.Keyword()]; !ok {
			seen[m.Keyword()] = struct{}{}
			keywords = append(keywords, m.Keyword())
		}
		sum += m.Score()
	}
	sort.Strings(keywords)

	return FileSummary{
		totalMatches: len(matches),
		keywords:     keywords,
		avgRelevance: sum / float64(len(matches)),
	}
}

// FileResult is one file's contribution to a content search report:
// its best matches sorted by score, capped, plus a summary.
type FileResult struct {
	file    FileCandidate
	matches []ContentMatch
	summary FileSummary
}

// NewFileResult ranks the file's matches by descending score and keeps
// at most maxPerFile of them; the summary covers the kept matches.
// Equal scores keep their scan order.
func NewFileResult(file FileCandidate, matches []ContentMatch, maxPerFile int) FileResult {
	ranked := make([]ContentMatch, len(matches))
	copy(ranked, matches)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score() > ranked[j].Score()
	})
	if maxPerFile < len(ranked) {
		ranked = ranked[:maxPerFile]
	}

	return FileResult{file: file, matches: ranked, summary: summarize(ranked)}
}

// File returns the file the matches belong to.
func (r FileResult) File() FileCandidate {
	return r.file
}

// Matches returns the kept matches, best first.
func (r FileResult) Matches() []ContentMatch {
	result := make([]ContentMatch, len(r.matches))
	copy(result, r.matches)
	return result
}

// Summary returns the aggregate view of the kept matches.
func (r FileResult) Summary() FileSummary {
	return r.summary
}

// Statistics aggregates a content search across all scanned files.
type Statistics struct {
	filesScanned     int
	filesWithMatches int
	totalMatches     int
	keywords         []string
}

// FilesScanned returns how many candidate files were scanned,
// including files that produced no matches.
func (s Statistics) FilesScanned() int {
	return s.filesScanned
}

// FilesWithMatches returns how many files produced at least one match.
func (s Statistics) FilesWithMatches() int {
	return s.filesWithMatches
}

// TotalMatches returns the number of matches kept across all files.
func (s Statistics) TotalMatches() int {
	return s.totalMatches
}

// Keywords returns the distinct matched keywords in sorted order.
func (s Statistics) Keywords() []string {
	result := make([]string, len(s.keywords))
	copy(result, s.keywords)
	return result
}

// ContentReport is the complete outcome of a content search.
type ContentReport struct {
	results         []FileResult
	stats           Statistics
	recommendations []string
}

// NewContentReport assembles a content search report. Results are
// ordered by descending average relevance, ties broken by relative
// path; statistics and follow-up recommendations are derived from the
// kept matches.
func NewContentReport(filesScanned int, results []FileResult, queryKeywords []string) ContentReport {
	ordered := make([]FileResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		ri, rj := ordered[i].Summary().AvgRelevance(), ordered[j].Summary().AvgRelevance()
		if ri != rj {
			return ri > rj
		}
		return ordered[i].File().RelPath() < ordered[j].File().RelPath()
	})

	seen := make(map[string]struct{})
	var keywords []string
	var total int
	for _, r := range ordered {
		total += r.Summary().TotalMatches()
		for _, kw := range r.Summary().Keywords() {
			if _, ok := seen[kw]; !ok {
				seen[kw] = struct{}{}
				keywords = append(keywords, kw)
			}
		}
	}
	sort.Strings(keywords)
	if keywords == nil {
		keywords = []string{}
	}

	stats := Statistics{
		filesScanned:     filesScanned,
		filesWithMatches: len(ordered),
		totalMatches:     total,
		keywords:         keywords,
	}

	return ContentReport{
		results:         ordered,
		stats:           stats,
		recommendations: buildRecommendations(ordered, queryKeywords, seen),
	}
}

// NewNoCandidatesReport is the report for a content search where no
// files matched the file patterns at all.
func NewNoCandidatesReport() ContentReport {
	return ContentReport{
		results:         []FileResult{},
		stats:           Statistics{keywords: []string{}},
		recommendations: []string{"No files matched the given file patterns. Check the patterns or the knowledge directory."},
	}
}

// Results returns the per-file results, most relevant first.
func (r ContentReport) Results() []FileResult {
	result := make([]FileResult, len(r.results))
	copy(result, r.results)
	return result
}

// Stats returns the aggregate statistics.
func (r ContentReport) Stats() Statistics {
	return r.stats
}

// Recommendations returns follow-up suggestions for the caller.
func (r ContentReport) Recommendations() []string {
	result := make([]string, len(r.recommendations))
	copy(result, r.recommendations)
	return result
}

func buildRecommendations(results []FileResult, queryKeywords []string, matched map[string]struct{}) []string {
	if len(results) == 0 {
		return []string{"No matches found. Try different keywords or broaden the file patterns."}
	}

	var recs []string

	// results arrive sorted by descending average relevance.
	best := results[0]
	if best.Summary().AvgRelevance() > 0.8 {
		recs = append(recs, fmt.Sprintf("The most relevant content is in %s.", best.File().RelPath()))
	}

	var missing []string
	for _, kw := range queryKeywords {
		if _, ok := matched[kw]; !ok {
			missing = append(missing, kw)
		}
	}
	if len(missing) > 0 {
		recs = append(recs, fmt.Sprintf("No matches for keywords: %s. Consider synonyms or related terms.", strings.Join(missing, ", ")))
	}

	if len(results) > 1 {
		recs = append(recs, fmt.Sprintf("Matches are spread across %d files. Narrow the file patterns to focus the search.", len(results)))
	}

	return recs
}

// FileHit is one file found by a file-level search, with the matches
// that selected it and its relevance score.
type FileHit struct {
	file    FileCandidate
	matches []FileMatch
	score   float64
}

// NewFileHit creates a FileHit.
func NewFileHit(file FileCandidate, matches []FileMatch, score float64) FileHit {
	kept := make([]FileMatch, len(matches))
	copy(kept, matches)
	return FileHit{file: file, matches: kept, score: score}
}

// File returns the matched file.
func (h FileHit) File() FileCandidate {
	return h.file
}

// Matches returns the name and content matches that selected the file.
func (h FileHit) Matches() []FileMatch {
	result := make([]FileMatch, len(h.matches))
	copy(result, h.matches)
	return result
}

// Score returns the file's relevance score in [0, 1].
func (h FileHit) Score() float64 {
	return h.score
}

// MatchType describes where the file matched: its name, its content,
// or both.
func (h FileHit) MatchType() string {
	name, content := CountFileMatches(h.matches)
	switch {
	case name > 0 && content > 0:
		return "filename_and_content"
	case name > 0:
		return "filename"
	case content > 0:
		return "content"
	default:
		return ""
	}
}

// CountFileMatches splits a match list into name and content counts.
func CountFileMatches(matches []FileMatch) (nameMatches, contentMatches int) {
	for _, m := range matches {
		switch m.Kind() {
		case FileMatchName:
			nameMatches++
		case FileMatchContent:
			contentMatches++
		}
	}
	return nameMatches, contentMatches
}

// FileReport is the complete outcome of a file-level search.
type FileReport struct {
	hits         []FileHit
	filesScanned int
}

// NewFileReport ranks hits by descending score with ties broken by
// relative path, then keeps at most maxResults of them.
func NewFileReport(filesScanned int, hits []FileHit, maxResults int) FileReport {
	ranked := make([]FileHit, len(hits))
	copy(ranked, hits)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score() != ranked[j].Score() {
			return ranked[i].Score() > ranked[j].Score()
		}
		return ranked[i].File().RelPath() < ranked[j].File().RelPath()
	})
	if maxResults < len(ranked) {
		ranked = ranked[:maxResults]
	}

	return FileReport{hits: ranked, filesScanned: filesScanned}
}

// Hits returns the kept files, best first.
func (r FileReport) Hits() []FileHit {
	result := make([]FileHit, len(r.hits))
	copy(result, r.hits)
	return result
}

// FilesScanned returns how many files the walk visited, including
// files filtered out by type or without matches.
func (r FileReport) FilesScanned() int {
	return r.filesScanned
}

// MatchingFiles returns the number of files in the report.
func (r FileReport) MatchingFiles() int {
	return len(r.hits)
}
