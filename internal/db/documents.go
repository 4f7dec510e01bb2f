package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SaveDocument stores an ingested document and returns its ID
func (db *DB) SaveDocument(ctx context.Context, input DocumentCreateInput) (uuid.UUID, error) {
	if input.Kind != DocumentKindResume && input.Kind != DocumentKindJob {
		return uuid.Nil, fmt.Errorf("invalid document kind: %q", input.Kind)
	}
	if input.ContentType == "" {
		input.ContentType = "text/plain"
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO documents (kind, filename, content_type, source_url, raw_text, word_count, content_hash)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		input.Kind, input.Filename, input.ContentType, input.SourceURL,
		input.RawText, input.WordCount, input.ContentHash,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save document: %w", err)
	}
	return id, nil
}

// GetDocument retrieves a document by ID. Returns nil when not found.
func (db *DB) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc Document
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, filename, content_type, source_url, raw_text, word_count, content_hash, created_at
		 FROM documents WHERE id = $1`, id,
	).Scan(&doc.ID, &doc.Kind, &doc.Filename, &doc.ContentType, &doc.SourceURL,
		&doc.RawText, &doc.WordCount, &doc.ContentHash, &doc.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &doc, nil
}

// FindDocumentByHash retrieves the newest document of a kind with the given
// content hash, so repeated uploads of the same text reuse one record.
// Returns nil when not found.
func (db *DB) FindDocumentByHash(ctx context.Context, kind, contentHash string) (*Document, error) {
	var doc Document
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, filename, content_type, source_url, raw_text, word_count, content_hash, created_at
		 FROM documents WHERE kind = $1 AND content_hash = $2
		 ORDER BY created_at DESC LIMIT 1`, kind, contentHash,
	).Scan(&doc.ID, &doc.Kind, &doc.Filename, &doc.ContentType, &doc.SourceURL,
		&doc.RawText, &doc.WordCount, &doc.ContentHash, &doc.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find document by hash: %w", err)
	}
	return &doc, nil
}

// ListDocuments retrieves document metadata (without raw text), newest first
func (db *DB) ListDocuments(ctx context.Context, kind string, limit int) ([]Document, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, kind, filename, content_type, source_url, word_count, content_hash, created_at
		FROM documents WHERE 1=1`
	args := []any{}
	argNum := 1

	if kind != "" {
		query += fmt.Sprintf(" AND kind = $%d", argNum)
		args = append(args, kind)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var doc Document
		if err := rows.Scan(&doc.ID, &doc.Kind, &doc.Filename, &doc.ContentType,
			&doc.SourceURL, &doc.WordCount, &doc.ContentHash, &doc.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocumentsBefore removes documents older than the cutoff and returns
// how many were deleted. Match results keep their scores; the foreign keys
// are nulled by ON DELETE SET NULL.
func (db *DB) DeleteDocumentsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM documents WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete old documents: %w", err)
	}
	return result.RowsAffected(), nil
}
