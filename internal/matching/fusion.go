package matching

import (
	"math"

	"github.com/jonathan/resume-matcher/internal/types"
)

// Verdict thresholds are a stable contract: scores at or above the high
// threshold are "High", at or above the medium threshold "Medium", and
// everything below "Low".
const (
	verdictHighThreshold   = 75.0
	verdictMediumThreshold = 50.0
)

// FuseScores blends the hard and soft scores under the supplied weights and
// rounds to two decimals. The weighted sum is literal: weights are applied
// exactly as given, without normalization.
func FuseScores(hardScore, softScore float64, weights types.ScoringWeights) float64 {
	return round2(weights.Hard*hardScore + weights.Soft*softScore)
}

// VerdictFor maps an overall score to its verdict label.
func VerdictFor(score float64) string {
	switch {
	case score >= verdictHighThreshold:
		return types.VerdictHigh
	case score >= verdictMediumThreshold:
		return types.VerdictMedium
	default:
		return types.VerdictLow
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
