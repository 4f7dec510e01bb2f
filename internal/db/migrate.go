package db

import (
	"context"
	"fmt"
)

// coreMigrations are the schema statements every deployment needs. They are
// idempotent so Migrate can run on every startup.
var coreMigrations = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		kind TEXT NOT NULL CHECK (kind IN ('resume', 'job')),
		filename TEXT NOT NULL DEFAULT '',
		content_type TEXT NOT NULL DEFAULT 'text/plain',
		source_url TEXT NOT NULL DEFAULT '',
		raw_text TEXT NOT NULL,
		word_count INTEGER NOT NULL DEFAULT 0,
		content_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS documents_kind_idx ON documents (kind, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS match_results (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		resume_document_id UUID REFERENCES documents(id) ON DELETE SET NULL,
		job_document_id UUID REFERENCES documents(id) ON DELETE SET NULL,
		score DOUBLE PRECISION NOT NULL,
		hard_score DOUBLE PRECISION NOT NULL,
		soft_score DOUBLE PRECISION NOT NULL,
		verdict TEXT NOT NULL,
		hard_weight DOUBLE PRECISION NOT NULL,
		soft_weight DOUBLE PRECISION NOT NULL,
		matched_skills TEXT[] NOT NULL DEFAULT '{}',
		missing_skills TEXT[] NOT NULL DEFAULT '{}',
		extracted_resume_skills TEXT[] NOT NULL DEFAULT '{}',
		common_keywords TEXT[] NOT NULL DEFAULT '{}',
		feedback TEXT NOT NULL DEFAULT '',
		algorithm_version TEXT NOT NULL DEFAULT '',
		processing_time_ms BIGINT NOT NULL DEFAULT 0,
		match_context TEXT NOT NULL DEFAULT 'api',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS match_results_created_idx ON match_results (created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS match_results_verdict_idx ON match_results (verdict)`,

	`CREATE TABLE IF NOT EXISTS audit_events (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		event_type TEXT NOT NULL,
		action TEXT NOT NULL,
		resource_type TEXT NOT NULL DEFAULT '',
		resource_id UUID,
		endpoint TEXT NOT NULL DEFAULT '',
		status_code INTEGER NOT NULL DEFAULT 0,
		duration_ms BIGINT NOT NULL DEFAULT 0,
		detail JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS audit_events_type_idx ON audit_events (event_type, created_at DESC)`,
}

// vectorMigrations require the pgvector extension.
var vectorMigrations = []string{
	`CREATE TABLE IF NOT EXISTS embedding_cache (
		model TEXT NOT NULL,
		content_hash TEXT NOT NULL,
		embedding vector NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (model, content_hash)
	)`,
}

// Migrate creates the schema. It returns whether the embedding cache is
// available: when the pgvector extension cannot be installed the core tables
// are still created and only vector caching is disabled.
func (db *DB) Migrate(ctx context.Context) (cacheReady bool, err error) {
	for _, stmt := range coreMigrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return false, fmt.Errorf("migration failed: %w", err)
		}
	}

	if _, err := db.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return false, nil
	}
	for _, stmt := range vectorMigrations {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return false, fmt.Errorf("migration failed: %w", err)
		}
	}
	return true, nil
}
