package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const matchColumns = `id, resume_document_id, job_document_id, score, hard_score, soft_score,
	verdict, hard_weight, soft_weight, matched_skills, missing_skills,
	extracted_resume_skills, common_keywords, feedback, algorithm_version,
	processing_time_ms, match_context, created_at`

// SaveMatch persists a match result and returns its ID
func (db *DB) SaveMatch(ctx context.Context, input MatchCreateInput) (uuid.UUID, error) {
	if input.MatchContext == "" {
		input.MatchContext = MatchContextAPI
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO match_results (resume_document_id, job_document_id, score, hard_score, soft_score,
			verdict, hard_weight, soft_weight, matched_skills, missing_skills,
			extracted_resume_skills, common_keywords, feedback, algorithm_version,
			processing_time_ms, match_context)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		 RETURNING id`,
		input.ResumeDocumentID, input.JobDocumentID, input.Score, input.HardScore, input.SoftScore,
		input.Verdict, input.HardWeight, input.SoftWeight,
		stringSlice(input.MatchedSkills), stringSlice(input.MissingSkills),
		stringSlice(input.ExtractedResumeSkills), stringSlice(input.CommonKeywords),
		input.Feedback, input.AlgorithmVersion, input.ProcessingTimeMS, input.MatchContext,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save match result: %w", err)
	}
	return id, nil
}

// GetMatch retrieves a match result by ID. Returns nil when not found.
func (db *DB) GetMatch(ctx context.Context, id uuid.UUID) (*MatchRecord, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM match_results WHERE id = $1`, id)

	record, err := scanMatchRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get match result: %w", err)
	}
	return record, nil
}

// ListMatches retrieves match results with optional filters, newest first.
// It also returns the total number of rows matching the filters so callers
// can paginate.
func (db *DB) ListMatches(ctx context.Context, filters MatchFilters) ([]MatchRecord, int, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Offset < 0 {
		filters.Offset = 0
	}

	where := ` WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Verdict != "" {
		where += fmt.Sprintf(" AND verdict = $%d", argNum)
		args = append(args, filters.Verdict)
		argNum++
	}
	if filters.Context != "" {
		where += fmt.Sprintf(" AND match_context = $%d", argNum)
		args = append(args, filters.Context)
		argNum++
	}
	if filters.MinScore > 0 {
		where += fmt.Sprintf(" AND score >= $%d", argNum)
		args = append(args, filters.MinScore)
		argNum++
	}

	var total int
	err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM match_results`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count match results: %w", err)
	}

	query := `SELECT ` + matchColumns + ` FROM match_results` + where +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list match results: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		record, err := scanMatchRecord(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan match result: %w", err)
		}
		records = append(records, *record)
	}
	return records, total, rows.Err()
}

// DeleteMatch removes a match result by ID
func (db *DB) DeleteMatch(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM match_results WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete match result: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("match result not found: %s", id)
	}
	return nil
}

// GetStatistics aggregates the stored match results
func (db *DB) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{VerdictDistribution: map[string]int64{}}

	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(score), 0), COALESCE(MIN(score), 0), COALESCE(MAX(score), 0)
		 FROM match_results`,
	).Scan(&stats.TotalMatches, &stats.AverageScore, &stats.MinScore, &stats.MaxScore)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate match results: %w", err)
	}

	rows, err := db.pool.Query(ctx, `SELECT verdict, COUNT(*) FROM match_results GROUP BY verdict`)
	if err != nil {
		return nil, fmt.Errorf("failed to count verdicts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var verdict string
		var count int64
		if err := rows.Scan(&verdict, &count); err != nil {
			return nil, fmt.Errorf("failed to scan verdict count: %w", err)
		}
		stats.VerdictDistribution[verdict] = count
	}
	return stats, rows.Err()
}

// scanMatchRecord reads one row in matchColumns order
func scanMatchRecord(row pgx.Row) (*MatchRecord, error) {
	var r MatchRecord
	err := row.Scan(
		&r.ID, &r.ResumeDocumentID, &r.JobDocumentID, &r.Score, &r.HardScore, &r.SoftScore,
		&r.Verdict, &r.HardWeight, &r.SoftWeight, &r.MatchedSkills, &r.MissingSkills,
		&r.ExtractedResumeSkills, &r.CommonKeywords, &r.Feedback, &r.AlgorithmVersion,
		&r.ProcessingTimeMS, &r.MatchContext, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// stringSlice never sends NULL for a TEXT[] column
func stringSlice(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
