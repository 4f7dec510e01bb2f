package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/parsing"
	"github.com/spf13/cobra"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Parse a resume into a structured profile",
	Long: `Parse a resume file (plain text, PDF or DOCX) into a structured profile with
contact details, experience years and detected skills, printed as JSON.`,
	RunE: runParseResume,
}

var (
	parseResumeInput      string
	parseResumeOutput     string
	parseResumeVocabulary string
	parseResumeVerbose    bool
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeInput, "in", "i", "", "Path to resume file (required)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOutput, "out", "o", "", "Path to output JSON file (default: stdout)")
	parseResumeCmd.Flags().StringVar(&parseResumeVocabulary, "vocabulary", "", "Path to custom skill vocabulary JSON")
	parseResumeCmd.Flags().BoolVarP(&parseResumeVerbose, "verbose", "v", false, "Print a human-readable summary to stderr")

	if err := parseResumeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(_ *cobra.Command, _ []string) error {
	extractor, err := buildExtractor(parseResumeVocabulary)
	if err != nil {
		return err
	}

	text, _, err := ingestion.IngestFromFile(parseResumeInput)
	if err != nil {
		return fmt.Errorf("failed to ingest resume: %w", err)
	}

	profile := parsing.ParseResume(text, extractor)

	if parseResumeVerbose {
		observability.NewPrinter(os.Stderr).PrintResumeProfile(&profile)
	}

	jsonBytes, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if parseResumeOutput != "" {
		if err := os.WriteFile(parseResumeOutput, jsonBytes, 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", parseResumeOutput)
		return nil
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s\n", jsonBytes)
	return nil
}
