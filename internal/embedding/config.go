package embedding

import (
	"context"
	"fmt"
)

// Provider selects the embedding backend.
type Provider string

// Provider constants define the supported embedding backends.
const (
	// ProviderGemini uses Google Gemini embedding models.
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI uses OpenAI embedding models.
	ProviderOpenAI Provider = "openai"
	// ProviderLexical never calls a provider and scores with the local
	// term-frequency comparison.
	ProviderLexical Provider = "lexical"
)

// Default models per provider.
const (
	DefaultGeminiModel = "text-embedding-004"
	DefaultOpenAIModel = "text-embedding-3-small"
)

// Config selects the provider and model used for embeddings.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
}

// DefaultConfig returns the default embedding configuration (currently
// Gemini).
func DefaultConfig() Config {
	return Config{Provider: ProviderGemini, Model: DefaultGeminiModel}
}

// ModelName returns the configured model, or the provider default when
// unset.
func (c Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderOpenAI {
		return DefaultOpenAIModel
	}
	return DefaultGeminiModel
}

// NewEmbedder creates the provider embedder for cfg. An empty provider
// means Gemini; ProviderLexical has no embedder.
func NewEmbedder(ctx context.Context, cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiEmbedder(ctx, cfg.ModelName(), cfg.APIKey)
	case ProviderOpenAI:
		return NewOpenAIEmbedder(cfg.ModelName(), cfg.APIKey)
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", cfg.Provider)
	}
}
