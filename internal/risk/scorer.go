package risk

// Tier is the coarse three-level risk bucket.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

const (
	baseScore     = 85
	floorScore    = 30
	highPenalty   = 20
	mediumPenalty = 10
)

// Score maps findings to a score in [30,100]. No findings means "apparently
// low risk" — absence of keyword hits is not proof of safety, so the base
// score is returned unpenalized rather than a perfect 100.
func Score(findings []Finding) int {
	if len(findings) == 0 {
		return baseScore
	}
	var high, medium int
	for _, f := range findings {
		switch f.Severity {
		case SeverityHigh:
			high++
		case SeverityMedium:
			medium++
		}
	}
	s := baseScore - highPenalty*high - mediumPenalty*medium
	if s < floorScore {
		s = floorScore
	}
	return s
}

// TierFor maps a score to its tier. The 60/80 thresholds are shared with
// document-level clause counting and must not drift.
func TierFor(score int) Tier {
	switch {
	case score >= 80:
		return TierLow
	case score >= 60:
		return TierMedium
	default:
		return TierHigh
	}
}
