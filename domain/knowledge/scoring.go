package knowledge

// Default scoring weights. The values are empirical and the effect is
// additive: a match starts from the base score and earns bonuses for
// position, surrounding context, line length and keyword density, then
// is clamped to MaxScore.
const (
	DefaultBaseScore            = 0.4
	DefaultLineStartBonus       = 0.2
	DefaultEarlyPositionBonus   = 0.1
	DefaultLatePositionBonus    = 0.05
	DefaultEarlyPositionRatio   = 0.3
	DefaultLatePositionRatio    = 0.7
	DefaultContextBonusPerLine  = 0.05
	DefaultContextBonusCap      = 0.2
	DefaultLengthBonusPerByte   = 0.001
	DefaultLengthBonusCap       = 0.1
	DefaultDensityBonusPerExtra = 0.05
	DefaultDensityBonusCap      = 0.15
	DefaultNameMatchWeight      = 0.5
	DefaultContentMatchWeight   = 0.2
	DefaultNameCountBonus       = 0.1
	DefaultNameCountBonusCap    = 0.3
	DefaultContentCountBonus    = 0.05
	DefaultContentCountBonusCap = 0.2

	// MaxScore caps every relevance score.
	MaxScore = 1.0
)

// Scoring computes relevance scores for content matches.
type Scoring struct {
	base            float64
	lineStartBonus  float64
	earlyBonus      float64
	lateBonus       float64
	earlyRatio      float64
	lateRatio       float64
	contextPerLine  float64
	contextCap      float64
	lengthPerByte   float64
	lengthCap       float64
	densityPerExtra float64
	densityCap      float64
}

// ScoringOption overrides a scoring weight.
type ScoringOption func(*Scoring)

// WithBaseScore sets the score every match starts from.
func WithBaseScore(v float64) ScoringOption {
	return func(s *Scoring) { s.base = v }
}

// WithPositionBonuses sets the bonuses for matches at the very start of
// a line, in its early portion, and in its late portion.
func WithPositionBonuses(start, early, late float64) ScoringOption {
	return func(s *Scoring) {
		s.lineStartBonus = start
		s.earlyBonus = early
		s.lateBonus = late
	}
}

// WithPositionRatios sets the line-length fractions that divide a line
// into early, middle and late portions.
func WithPositionRatios(early, late float64) ScoringOption {
	return func(s *Scoring) {
		s.earlyRatio = early
		s.lateRatio = late
	}
}

// WithContextBonus sets the per-line bonus and cap for surrounding
// context.
func WithContextBonus(perLine, limit float64) ScoringOption {
	return func(s *Scoring) {
		s.contextPerLine = perLine
		s.contextCap = limit
	}
}

// WithLengthBonus sets the per-byte bonus and cap for line length.
func WithLengthBonus(perByte, limit float64) ScoringOption {
	return func(s *Scoring) {
		s.lengthPerByte = perByte
		s.lengthCap = limit
	}
}

// WithDensityBonus sets the bonus per extra occurrence and its cap.
func WithDensityBonus(perExtra, limit float64) ScoringOption {
	return func(s *Scoring) {
		s.densityPerExtra = perExtra
		s.densityCap = limit
	}
}

// NewScoring creates a Scoring with the default weights, then applies
// any overrides.
func NewScoring(opts ...ScoringOption) Scoring {
	s := Scoring{
		base:            DefaultBaseScore,
		lineStartBonus:  DefaultLineStartBonus,
		earlyBonus:      DefaultEarlyPositionBonus,
		lateBonus:       DefaultLatePositionBonus,
		earlyRatio:      DefaultEarlyPositionRatio,
		lateRatio:       DefaultLatePositionRatio,
		contextPerLine:  DefaultContextBonusPerLine,
		contextCap:      DefaultContextBonusCap,
		lengthPerByte:   DefaultLengthBonusPerByte,
		lengthCap:       DefaultLengthBonusCap,
		densityPerExtra: DefaultDensityBonusPerExtra,
		densityCap:      DefaultDensityBonusCap,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ScoreMatch scores a single keyword occurrence. The start offset and
// line length describe where on the line the occurrence sits; context
// counts the surrounding lines captured with the match; occurrences is
// the case-insensitive keyword count on the line.
func (s Scoring) ScoreMatch(start, lineLength, contextBefore, contextAfter, occurrences int) float64 {
	score := s.base

	switch {
	case start == 0:
		score += s.lineStartBonus
	case float64(start) < float64(lineLength)*s.earlyRatio:
		score += s.earlyBonus
	case float64(start) > float64(lineLength)*s.lateRatio:
		score += s.lateBonus
	}

	context := s.contextPerLine * float64(contextBefore+contextAfter)
	if context > s.contextCap {
		context = s.contextCap
	}
	score += context

	length := s.lengthPerByte * float64(lineLength)
	if length > s.lengthCap {
		length = s.lengthCap
	}
	score += length

	if occurrences > 1 {
		density := s.densityPerExtra * float64(occurrences-1)
		if density > s.densityCap {
			density = s.densityCap
		}
		score += density
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}

// Base returns the starting score.
func (s Scoring) Base() float64 {
	return s.base
}

// FileScoring computes relevance scores for whole files during
// file-level search, weighing name matches above content matches.
type FileScoring struct {
	nameWeight        float64
	contentWeight     float64
	nameCountBonus    float64
	nameCountCap      float64
	contentCountBonus float64
	contentCountCap   float64
}

// FileScoringOption overrides a file scoring weight.
type FileScoringOption func(*FileScoring)

// WithMatchWeights sets the per-match weights for name and content
// matches.
func WithMatchWeights(name, content float64) FileScoringOption {
	return func(s *FileScoring) {
		s.nameWeight = name
		s.contentWeight = content
	}
}

// WithNameCountBonus sets the extra bonus per name match and its cap.
func WithNameCountBonus(perMatch, limit float64) FileScoringOption {
	return func(s *FileScoring) {
		s.nameCountBonus = perMatch
		s.nameCountCap = limit
	}
}

// WithContentCountBonus sets the extra bonus per content match and its
// cap.
func WithContentCountBonus(perMatch, limit float64) FileScoringOption {
	return func(s *FileScoring) {
		s.contentCountBonus = perMatch
		s.contentCountCap = limit
	}
}

// NewFileScoring creates a FileScoring with the default weights, then
// applies any overrides.
func NewFileScoring(opts ...FileScoringOption) FileScoring {
	s := FileScoring{
		nameWeight:        DefaultNameMatchWeight,
		contentWeight:     DefaultContentMatchWeight,
		nameCountBonus:    DefaultNameCountBonus,
		nameCountCap:      DefaultNameCountBonusCap,
		contentCountBonus: DefaultContentCountBonus,
		contentCountCap:   DefaultContentCountBonusCap,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// ScoreFile scores a file from its name and content match counts.
func (s FileScoring) ScoreFile(nameMatches, contentMatches int) float64 {
	score := s.nameWeight*float64(nameMatches) + s.contentWeight*float64(contentMatches)

	if nameMatches > 0 {
		bonus := s.nameCountBonus * float64(nameMatches)
		if bonus > s.nameCountCap {
			bonus = s.nameCountCap
		}
		score += bonus
	}
	if contentMatches > 0 {
		bonus := s.contentCountBonus * float64(contentMatches)
		if bonus > s.contentCountCap {
			bonus = s.contentCountCap
		}
		score += bonus
	}

	if score > MaxScore {
		score = MaxScore
	}
	return score
}
