package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/server"
	"github.com/jonathan/resume-matcher/internal/storage"
	"github.com/spf13/cobra"
)

var (
	servePort       int
	serveVocabulary string
	serveFeedback   string
	serveUseBrowser bool
	serveDebug      bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for scoring resumes against job descriptions.

The database (DATABASE_URL), message broker (AMQP_URL) and object storage (S3_BUCKET)
are all optional: without a database the server still scores matches, it just does not
persist them.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveVocabulary, "vocabulary", "", "Path to custom skill vocabulary JSON (defaults to built-in)")
	serveCmd.Flags().StringVar(&serveFeedback, "feedback", "", "Path to custom feedback table JSON (defaults to built-in)")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Render JS-heavy job pages in a headless browser (requires Chrome)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := observability.NewLogger(true, serveDebug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg := server.Config{
		Port:           servePort,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		Embedding:      embeddingConfig(os.Getenv("EMBEDDING_PROVIDER"), os.Getenv("EMBEDDING_MODEL"), ""),
		VocabularyPath: serveVocabulary,
		FeedbackPath:   serveFeedback,
		UseBrowser:     serveUseBrowser,
		AMQPURL:        os.Getenv("AMQP_URL"),
		Archive: storage.Config{
			Bucket:   os.Getenv("S3_BUCKET"),
			Region:   os.Getenv("S3_REGION"),
			Endpoint: os.Getenv("S3_ENDPOINT"),
			Prefix:   os.Getenv("S3_PREFIX"),
		},
		RetentionAge: retentionAgeFromEnv(),
	}

	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// embeddingConfig resolves the embedding provider configuration. Empty
// arguments fall back to the provider environment variables; with no
// provider and no API key the lexical scorer is selected so the process
// works offline.
func embeddingConfig(provider, model, apiKey string) embedding.Config {
	cfg := embedding.Config{
		Provider: embedding.Provider(provider),
		Model:    model,
		APIKey:   apiKey,
	}

	if cfg.APIKey == "" {
		switch cfg.Provider {
		case embedding.ProviderOpenAI:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		case embedding.ProviderLexical:
		default:
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		}
	}

	if cfg.Provider == "" {
		if cfg.APIKey != "" {
			cfg.Provider = embedding.ProviderGemini
		} else {
			cfg.Provider = embedding.ProviderLexical
		}
	}

	return cfg
}

// retentionAgeFromEnv reads RETENTION_DAYS; unset or non-positive disables
// the retention sweep.
func retentionAgeFromEnv() time.Duration {
	value := os.Getenv("RETENTION_DAYS")
	if value == "" {
		return 0
	}
	days, err := strconv.Atoi(value)
	if err != nil || days <= 0 {
		return 0
	}
	return time.Duration(days) * 24 * time.Hour
}
