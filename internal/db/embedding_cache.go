package db

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingCache stores embedding vectors keyed by model and content hash.
// It satisfies the vector cache interface of the embedding package.
type EmbeddingCache struct {
	db *DB
}

// NewEmbeddingCache wraps a database handle as an embedding vector cache
func NewEmbeddingCache(db *DB) *EmbeddingCache {
	return &EmbeddingCache{db: db}
}

// Get returns the cached vector, or nil when the pair has not been cached
func (c *EmbeddingCache) Get(ctx context.Context, model, contentHash string) ([]float32, error) {
	// Reading through text keeps the query working even on pool connections
	// where the vector type could not be registered.
	var text string
	err := c.db.pool.QueryRow(ctx,
		`SELECT embedding::text FROM embedding_cache WHERE model = $1 AND content_hash = $2`,
		model, contentHash,
	).Scan(&text)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read embedding cache: %w", err)
	}
	return parseVectorText(text)
}

// Put stores a vector, replacing any previous value for the pair
func (c *EmbeddingCache) Put(ctx context.Context, model, contentHash string, vector []float32) error {
	_, err := c.db.pool.Exec(ctx,
		`INSERT INTO embedding_cache (model, content_hash, embedding)
		 VALUES ($1, $2, $3::vector)
		 ON CONFLICT (model, content_hash) DO UPDATE SET embedding = EXCLUDED.embedding, created_at = NOW()`,
		model, contentHash, pgvector.NewVector(vector),
	)
	if err != nil {
		return fmt.Errorf("failed to write embedding cache: %w", err)
	}
	return nil
}

// DeleteEmbeddingsForModel drops all cached vectors for one model name
func (db *DB) DeleteEmbeddingsForModel(ctx context.Context, model string) (int64, error) {
	result, err := db.pool.Exec(ctx,
		`DELETE FROM embedding_cache WHERE model = $1`, model)
	if err != nil {
		return 0, fmt.Errorf("failed to clear embedding cache: %w", err)
	}
	return result.RowsAffected(), nil
}

// parseVectorText converts pgvector text output like "[0.1,0.2]" to floats
func parseVectorText(s string) ([]float32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	vector := make([]float32, 0, len(parts))
	for _, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return nil, fmt.Errorf("invalid vector element %q: %w", part, err)
		}
		vector = append(vector, float32(f))
	}
	return vector, nil
}
