package db

import (
	"time"

	"github.com/google/uuid"
)

// Document kind constants
const (
	DocumentKindResume = "resume"
	DocumentKindJob    = "job"
)

// Match context constants record which entry point produced a match
const (
	MatchContextAPI   = "api"
	MatchContextFile  = "file_upload"
	MatchContextBatch = "batch"
	MatchContextCLI   = "cli"
)

// Document represents one ingested resume or job description
type Document struct {
	ID          uuid.UUID `json:"id"`
	Kind        string    `json:"kind"`
	Filename    string    `json:"filename,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	SourceURL   string    `json:"source_url,omitempty"`
	RawText     string    `json:"raw_text,omitempty"`
	WordCount   int       `json:"word_count"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
}

// DocumentCreateInput holds the fields for storing a new document
type DocumentCreateInput struct {
	Kind        string
	Filename    string
	ContentType string
	SourceURL   string
	RawText     string
	WordCount   int
	ContentHash string
}

// MatchRecord represents a persisted match result
type MatchRecord struct {
	ID                    uuid.UUID  `json:"id"`
	ResumeDocumentID      *uuid.UUID `json:"resume_document_id,omitempty"`
	JobDocumentID         *uuid.UUID `json:"job_document_id,omitempty"`
	Score                 float64    `json:"score"`
	HardScore             float64    `json:"hard_score"`
	SoftScore             float64    `json:"soft_score"`
	Verdict               string     `json:"verdict"`
	HardWeight            float64    `json:"hard_weight"`
	SoftWeight            float64    `json:"soft_weight"`
	MatchedSkills         []string   `json:"matched_skills"`
	MissingSkills         []string   `json:"missing_skills"`
	ExtractedResumeSkills []string   `json:"extracted_resume_skills"`
	CommonKeywords        []string   `json:"common_keywords"`
	Feedback              string     `json:"feedback"`
	AlgorithmVersion      string     `json:"algorithm_version"`
	ProcessingTimeMS      int64      `json:"processing_time_ms"`
	MatchContext          string     `json:"match_context"`
	CreatedAt             time.Time  `json:"created_at"`
}

// MatchCreateInput holds the fields for persisting a new match result
type MatchCreateInput struct {
	ResumeDocumentID      *uuid.UUID
	JobDocumentID         *uuid.UUID
	Score                 float64
	HardScore             float64
	SoftScore             float64
	Verdict               string
	HardWeight            float64
	SoftWeight            float64
	MatchedSkills         []string
	MissingSkills         []string
	ExtractedResumeSkills []string
	CommonKeywords        []string
	Feedback              string
	AlgorithmVersion      string
	ProcessingTimeMS      int64
	MatchContext          string
}

// MatchFilters holds optional filters for listing match results
type MatchFilters struct {
	Verdict  string
	Context  string
	MinScore float64
	Limit    int
	Offset   int
}

// Statistics summarizes the stored match results
type Statistics struct {
	TotalMatches        int64            `json:"total_matches"`
	AverageScore        float64          `json:"average_score"`
	MinScore            float64          `json:"min_score"`
	MaxScore            float64          `json:"max_score"`
	VerdictDistribution map[string]int64 `json:"verdict_distribution"`
}

// AuditEvent represents one recorded API or pipeline event
type AuditEvent struct {
	ID           uuid.UUID      `json:"id"`
	EventType    string         `json:"event_type"`
	Action       string         `json:"action"`
	ResourceType string         `json:"resource_type,omitempty"`
	ResourceID   *uuid.UUID     `json:"resource_id,omitempty"`
	Endpoint     string         `json:"endpoint,omitempty"`
	StatusCode   int            `json:"status_code,omitempty"`
	DurationMS   int64          `json:"duration_ms,omitempty"`
	Detail       map[string]any `json:"detail,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

// AuditEventFilters holds optional filters for listing audit events
type AuditEventFilters struct {
	EventType string
	Action    string
	Limit     int
}
