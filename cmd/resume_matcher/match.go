package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/embedding"
	"github.com/jonathan/resume-matcher/internal/feedback"
	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/matching"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a job description",
	Long: `Score a resume file (plain text, PDF or DOCX) against a job description from a
file or URL. The result is written as JSON to stdout or to --out.

Configuration can be loaded from a JSON file using --config. Command-line arguments
override config file values. With no --skills the required skills are taken from the
job posting itself.`,
	RunE: runMatch,
}

var (
	matchConfigPath  string
	matchResume      string
	matchJob         string
	matchJobURL      string
	matchSkills      []string
	matchHardWeight  float64
	matchSoftWeight  float64
	matchVocabulary  string
	matchFeedback    string
	matchProvider    string
	matchModel       string
	matchAPIKey      string
	matchUseBrowser  bool
	matchVerbose     bool
	matchDatabaseURL string
	matchOutput      string
)

func init() {
	// Config file flag (processed first)
	matchCmd.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to resume file: .txt, .pdf or .docx (required)")
	matchCmd.Flags().StringVarP(&matchJob, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	matchCmd.Flags().StringVar(&matchJobURL, "job-url", "", "URL to fetch the job posting from (mutually exclusive with --job)")
	matchCmd.Flags().StringSliceVar(&matchSkills, "skills", nil, "Required skills, comma-separated (defaults to skills detected in the job text)")
	matchCmd.Flags().Float64Var(&matchHardWeight, "hard-weight", 0, "Weight of the skill overlap score (default 0.7)")
	matchCmd.Flags().Float64Var(&matchSoftWeight, "soft-weight", 0, "Weight of the semantic similarity score (default 0.3)")
	matchCmd.Flags().StringVar(&matchVocabulary, "vocabulary", "", "Path to custom skill vocabulary JSON")
	matchCmd.Flags().StringVar(&matchFeedback, "feedback", "", "Path to custom feedback table JSON")
	matchCmd.Flags().StringVar(&matchProvider, "provider", "", "Embedding provider: gemini, openai or lexical (default: gemini when a key is set)")
	matchCmd.Flags().StringVar(&matchModel, "model", "", "Embedding model override")
	matchCmd.Flags().StringVar(&matchAPIKey, "api-key", "", "Embedding provider API key (defaults to GEMINI_API_KEY / OPENAI_API_KEY)")
	matchCmd.Flags().BoolVar(&matchUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	matchCmd.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print human-readable summaries to stderr")
	matchCmd.Flags().StringVar(&matchDatabaseURL, "db-url", "", "PostgreSQL connection URL for match history (optional, defaults to DATABASE_URL env var)")
	matchCmd.Flags().StringVarP(&matchOutput, "out", "o", "", "Path to write the result JSON to (default: stdout)")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	start := time.Now()

	// Step 1: Load config file if provided
	var cfg config.Config
	if matchConfigPath != "" {
		loadedCfg, err := config.LoadConfig(matchConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("resume") {
		cfg.Resume = matchResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = matchJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = matchJobURL
	}
	if cmd.Flags().Changed("hard-weight") {
		cfg.HardWeight = matchHardWeight
	}
	if cmd.Flags().Changed("soft-weight") {
		cfg.SoftWeight = matchSoftWeight
	}
	if cmd.Flags().Changed("vocabulary") {
		cfg.Vocabulary = matchVocabulary
	}
	if cmd.Flags().Changed("feedback") {
		cfg.Feedback = matchFeedback
	}
	if cmd.Flags().Changed("provider") {
		cfg.EmbeddingProvider = matchProvider
	}
	if cmd.Flags().Changed("model") {
		cfg.EmbeddingModel = matchModel
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = matchAPIKey
	}
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = matchUseBrowser
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = matchVerbose
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = matchDatabaseURL
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{})

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	// Step 5: Build the matcher
	extractor, err := buildExtractor(cfg.Vocabulary)
	if err != nil {
		return err
	}
	generator, err := buildFeedbackGenerator(cfg.Feedback)
	if err != nil {
		return err
	}

	embeddings := embedding.NewService(embeddingConfig(cfg.EmbeddingProvider, cfg.EmbeddingModel, cfg.APIKey), nil, zap.NewNop())
	defer func() { _ = embeddings.Close() }()

	matcher, err := matching.NewMatcher(extractor, embeddings, generator)
	if err != nil {
		return fmt.Errorf("failed to build matcher: %w", err)
	}

	// Step 6: Ingest the resume and the job posting
	resumeText, _, err := ingestion.IngestFromFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to ingest resume: %w", err)
	}

	var jobText string
	if cfg.Job != "" {
		jobText, _, err = ingestion.IngestFromFile(cfg.Job)
		if err != nil {
			return fmt.Errorf("failed to ingest job posting: %w", err)
		}
	} else {
		jobText, _, err = ingestion.IngestFromURL(ctx, cfg.JobURL, cfg.UseBrowser, zap.NewNop())
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
	}

	printer := observability.NewPrinter(os.Stderr)
	if cfg.Verbose {
		profile := parsing.ParseResume(resumeText, extractor)
		printer.PrintResumeProfile(&profile)
	}

	// Step 7: Required skills come from the flag or from the posting itself
	requiredSkills := matchSkills
	if len(requiredSkills) == 0 {
		posting := parsing.ParseJob(jobText, extractor)
		requiredSkills = posting.RequiredSkills
		if cfg.Verbose {
			printer.PrintJobPosting(&posting)
		}
	}

	// Step 8: Score
	result, err := matcher.Match(ctx, matching.Request{
		ResumeText:     resumeText,
		JobText:        jobText,
		RequiredSkills: requiredSkills,
		HardWeight:     cfg.HardWeight,
		SoftWeight:     cfg.SoftWeight,
	})
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	if cfg.Verbose {
		printer.PrintMatchResult(result)
	}

	// Step 9: Persist when a database is configured
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL != "" {
		if err := saveMatchRecord(ctx, cfg.DatabaseURL, result, resumeText, jobText, time.Since(start)); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "Warning: failed to save match history: %v\n", err)
		}
	}

	// Step 10: Emit the result JSON
	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	if matchOutput != "" {
		if err := os.WriteFile(matchOutput, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Score: %.2f (%s)\n", result.Score, result.Verdict)
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", matchOutput)
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s\n", jsonBytes)
	return nil
}

// buildExtractor loads the vocabulary file when given, the built-in
// vocabulary otherwise.
func buildExtractor(path string) (*skills.Extractor, error) {
	if path == "" {
		return skills.NewExtractor(nil), nil
	}
	vocab, err := skills.LoadVocabularyFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load vocabulary: %w", err)
	}
	return skills.NewExtractor(vocab), nil
}

// buildFeedbackGenerator loads the feedback table file when given, the
// built-in table otherwise.
func buildFeedbackGenerator(path string) (*feedback.Generator, error) {
	cfg := feedback.DefaultConfig()
	if path != "" {
		loaded, err := feedback.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load feedback table: %w", err)
		}
		cfg = loaded
	}
	generator, err := feedback.NewGenerator(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid feedback table: %w", err)
	}
	return generator, nil
}

// saveMatchRecord stores the documents and the match record so CLI runs
// share the same history as the API.
func saveMatchRecord(ctx context.Context, databaseURL string, result *types.MatchResult, resumeText, jobText string, elapsed time.Duration) error {
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	var resumeDocID, jobDocID *uuid.UUID
	if id, err := saveDocumentRecord(ctx, database, db.DocumentKindResume, resumeText); err == nil {
		resumeDocID = id
	}
	if id, err := saveDocumentRecord(ctx, database, db.DocumentKindJob, jobText); err == nil {
		jobDocID = id
	}

	id, err := database.SaveMatch(ctx, db.MatchCreateInput{
		ResumeDocumentID:      resumeDocID,
		JobDocumentID:         jobDocID,
		Score:                 result.Score,
		HardScore:             result.HardScore,
		SoftScore:             result.SoftScore,
		Verdict:               result.Verdict,
		HardWeight:            result.Weights.Hard,
		SoftWeight:            result.Weights.Soft,
		MatchedSkills:         result.MatchedSkills,
		MissingSkills:         result.MissingSkills,
		ExtractedResumeSkills: result.ExtractedResumeSkills,
		CommonKeywords:        result.CommonKeywords,
		Feedback:              result.Feedback,
		AlgorithmVersion:      matching.AlgorithmVersion,
		ProcessingTimeMS:      elapsed.Milliseconds(),
		MatchContext:          db.MatchContextCLI,
	})
	if err != nil {
		return fmt.Errorf("failed to save match: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stderr, "Saved match %s\n", id)
	return nil
}

// saveDocumentRecord stores one document, reusing an existing row with the
// same content hash.
func saveDocumentRecord(ctx context.Context, database *db.DB, kind, text string) (*uuid.UUID, error) {
	if text == "" {
		return nil, nil
	}
	hash := embedding.ContentHash(text)
	if existing, err := database.FindDocumentByHash(ctx, kind, hash); err == nil && existing != nil {
		return &existing.ID, nil
	}
	id, err := database.SaveDocument(ctx, db.DocumentCreateInput{
		Kind:        kind,
		RawText:     text,
		WordCount:   len(strings.Fields(text)),
		ContentHash: hash,
	})
	if err != nil {
		return nil, err
	}
	return &id, nil
}
