// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Verdict labels assigned to an overall match score.
const (
	VerdictHigh   = "High"
	VerdictMedium = "Medium"
	VerdictLow    = "Low"
)

// ScoringWeights holds the blend factors applied to the hard and soft scores.
// The weights are applied literally; callers wanting a 0-100 overall score
// keep them summing to 1.
type ScoringWeights struct {
	Hard float64 `json:"hard"`
	Soft float64 `json:"soft"`
}

// MatchResult is the full outcome of scoring one resume against one job posting.
// All scores are on a 0-100 scale, rounded to two decimals.
type MatchResult struct {
	Score                 float64        `json:"score"`
	HardScore             float64        `json:"hard_score"`
	SoftScore             float64        `json:"soft_score"`
	Verdict               string         `json:"verdict"`
	MatchedSkills         []string       `json:"matched_skills"`
	MissingSkills         []string       `json:"missing_skills"`
	ExtractedResumeSkills []string       `json:"extracted_resume_skills"`
	CommonKeywords        []string       `json:"common_keywords"`
	Feedback              string         `json:"feedback"`
	Weights               ScoringWeights `json:"scoring_weights"`
}
