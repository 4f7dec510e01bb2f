// Package embedding scores the semantic similarity between two texts on a
// 0-100 scale. It prefers a provider embedding model and degrades to a
// local lexical comparison when no provider is configured or the provider
// stops answering.
package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Embedder turns a text into a dense vector using one concrete provider
// model.
type Embedder interface {
	// Model returns the provider model name, used to key cached vectors.
	Model() string
	// Embed returns the embedding vector for text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Close releases any resources held by the embedder.
	Close() error
}

// VectorCache stores embedding vectors keyed by model and content hash.
// Get returns (nil, nil) on a miss. Implementations must tolerate
// concurrent use.
type VectorCache interface {
	Get(ctx context.Context, model, contentHash string) ([]float32, error)
	Put(ctx context.Context, model, contentHash string, vector []float32) error
}

// ContentHash returns the cache key for a text: the hex SHA-256 of its
// exact bytes.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Service computes text similarity. The provider embedder is created
// lazily on first use; once creation fails the service stays on the
// lexical path until Reset is called, so one bad credential does not
// produce a provider call per request.
type Service struct {
	cfg    Config
	cache  VectorCache
	logger *zap.Logger

	newEmbedder func(ctx context.Context, cfg Config) (Embedder, error)

	mu       sync.Mutex
	embedder Embedder
	failed   bool
}

// NewService builds a Service for the configured provider. A nil cache
// disables vector caching and a nil logger discards logs.
func NewService(cfg Config, cache VectorCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cfg:         cfg,
		cache:       cache,
		logger:      logger,
		newEmbedder: NewEmbedder,
	}
}

// Similarity returns the similarity of two texts on a 0-100 scale. If
// either text is blank the score is 0. Provider trouble is absorbed by
// the lexical fallback; the only error returned is a context error.
func (s *Service) Similarity(ctx context.Context, resumeText, jobText string) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(resumeText) == "" || strings.TrimSpace(jobText) == "" {
		return 0, nil
	}

	embedder := s.acquireEmbedder(ctx)
	if embedder == nil {
		return scoreFromCosine(LexicalSimilarity(resumeText, jobText)), nil
	}

	resumeVec, err := s.embed(ctx, embedder, resumeText)
	if err == nil {
		var jobVec []float32
		jobVec, err = s.embed(ctx, embedder, jobText)
		if err == nil {
			return scoreFromCosine(cosineSimilarity(resumeVec, jobVec)), nil
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, ctxErr
	}

	s.logger.Warn("embedding call failed, using lexical similarity",
		zap.String("model", embedder.Model()),
		zap.Error(err))
	return scoreFromCosine(LexicalSimilarity(resumeText, jobText)), nil
}

// Provider returns the configured embedding backend.
func (s *Service) Provider() Provider {
	return s.cfg.Provider
}

// Degraded reports whether the service fell back to lexical similarity
// after the provider failed.
func (s *Service) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failed
}

// Reset clears the failed state and discards the current embedder so the
// next call retries the provider.
func (s *Service) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embedder != nil {
		_ = s.embedder.Close()
	}
	s.embedder = nil
	s.failed = false
}

// Close releases the provider embedder if one was created.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embedder == nil {
		return nil
	}
	err := s.embedder.Close()
	s.embedder = nil
	return err
}

// acquireEmbedder returns the provider embedder, creating it on first
// use, or nil when the service runs lexically.
func (s *Service) acquireEmbedder(ctx context.Context) Embedder {
	if s.cfg.Provider == ProviderLexical {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failed {
		return nil
	}
	if s.embedder != nil {
		return s.embedder
	}

	embedder, err := s.newEmbedder(ctx, s.cfg)
	if err != nil {
		s.failed = true
		s.logger.Warn("embedding provider unavailable, using lexical similarity",
			zap.String("provider", string(s.cfg.Provider)),
			zap.Error(err))
		return nil
	}

	s.logger.Info("embedding provider ready",
		zap.String("provider", string(s.cfg.Provider)),
		zap.String("model", embedder.Model()))
	s.embedder = embedder
	return embedder
}

// embed returns the vector for text, consulting the cache first. Cache
// failures are logged and otherwise ignored.
func (s *Service) embed(ctx context.Context, embedder Embedder, text string) ([]float32, error) {
	hash := ContentHash(text)

	if s.cache != nil {
		vector, err := s.cache.Get(ctx, embedder.Model(), hash)
		if err != nil {
			s.logger.Debug("embedding cache lookup failed",
				zap.String("content_hash", hash),
				zap.Error(err))
		} else if vector != nil {
			return vector, nil
		}
	}

	vector, err := embedder.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, embedder.Model(), hash, vector); err != nil {
			s.logger.Debug("embedding cache store failed",
				zap.String("content_hash", hash),
				zap.Error(err))
		}
	}
	return vector, nil
}

// cosineSimilarity returns the cosine of the angle between two vectors,
// or 0 when either vector is empty, zero, or the lengths differ.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// scoreFromCosine maps a cosine similarity onto the 0-100 result scale.
// Float drift can push the raw value slightly outside [-1, 1], so the
// score is clamped.
func scoreFromCosine(cos float64) float64 {
	score := math.Round(cos*100*100) / 100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
