// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobPosting represents the lightweight structure parsed from raw job posting text.
type JobPosting struct {
	Title           string   `json:"title,omitempty"`
	Location        string   `json:"location,omitempty"`
	ExperienceYears float64  `json:"experience_years"`
	RequiredSkills  []string `json:"required_skills"`
	NiceToHaves     []string `json:"nice_to_haves"`
	WordCount       int      `json:"word_count"`
}
