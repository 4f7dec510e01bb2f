package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Parse a job posting into a structured summary",
	Long: `Parse a job posting from a text file or URL into a structured summary with
title, location, required experience and skill requirements, printed as JSON.`,
	RunE: runParseJob,
}

var (
	parseJobInput      string
	parseJobURL        string
	parseJobOutput     string
	parseJobVocabulary string
	parseJobUseBrowser bool
	parseJobVerbose    bool
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseJobInput, "in", "i", "", "Path to job posting text file (mutually exclusive with --url)")
	parseJobCmd.Flags().StringVarP(&parseJobURL, "url", "u", "", "URL to fetch the job posting from (mutually exclusive with --in)")
	parseJobCmd.Flags().StringVarP(&parseJobOutput, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseJobCmd.Flags().StringVar(&parseJobVocabulary, "vocabulary", "", "Path to custom skill vocabulary JSON")
	parseJobCmd.Flags().BoolVar(&parseJobUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	parseJobCmd.Flags().BoolVarP(&parseJobVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(_ *cobra.Command, _ []string) error {
	if parseJobInput == "" && parseJobURL == "" {
		return fmt.Errorf("either --in or --url must be provided")
	}
	if parseJobInput != "" && parseJobURL != "" {
		return fmt.Errorf("--in and --url are mutually exclusive; provide only one")
	}

	extractor, err := buildExtractor(parseJobVocabulary)
	if err != nil {
		return err
	}

	var text string
	if parseJobInput != "" {
		text, _, err = ingestion.IngestFromFile(parseJobInput)
		if err != nil {
			return fmt.Errorf("failed to ingest job posting: %w", err)
		}
	} else {
		text, _, err = ingestion.IngestFromURL(context.Background(), parseJobURL, parseJobUseBrowser, zap.NewNop())
		if err != nil {
			return fmt.Errorf("failed to fetch job posting: %w", err)
		}
	}

	posting := parsing.ParseJob(text, extractor)

	if parseJobVerbose {
		observability.NewPrinter(os.Stderr).PrintJobPosting(&posting)
	}

	jsonBytes, err := json.MarshalIndent(posting, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if parseJobOutput != "" {
		if err := os.WriteFile(parseJobOutput, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", parseJobOutput)
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s\n", jsonBytes)
	return nil
}
