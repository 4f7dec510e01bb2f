// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ContactInfo holds contact details located in resume text.
type ContactInfo struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// ResumeProfile represents the lightweight structure parsed from raw resume text.
type ResumeProfile struct {
	Contact         ContactInfo `json:"contact"`
	Skills          []string    `json:"skills"`
	ExperienceYears float64     `json:"experience_years"`
	WordCount       int         `json:"word_count"`
}
