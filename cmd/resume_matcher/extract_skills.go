package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/ingestion"
	"github.com/spf13/cobra"
)

var extractSkillsCmd = &cobra.Command{
	Use:   "extract-skills",
	Short: "Extract canonical skills from a document",
	Long: `Extract the canonical vocabulary skills mentioned in a document (plain text,
PDF or DOCX) and print them as JSON.`,
	RunE: runExtractSkills,
}

var (
	extractInputFile  string
	extractVocabulary string
)

func init() {
	extractSkillsCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to document file (required)")
	extractSkillsCmd.Flags().StringVar(&extractVocabulary, "vocabulary", "", "Path to custom skill vocabulary JSON")

	if err := extractSkillsCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(extractSkillsCmd)
}

func runExtractSkills(_ *cobra.Command, _ []string) error {
	extractor, err := buildExtractor(extractVocabulary)
	if err != nil {
		return err
	}

	text, _, err := ingestion.IngestFromFile(extractInputFile)
	if err != nil {
		return fmt.Errorf("failed to ingest document: %w", err)
	}

	found := extractor.Extract(text)

	output := struct {
		Skills []string `json:"skills"`
		Count  int      `json:"count"`
	}{Skills: found, Count: len(found)}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s\n", jsonBytes)
	return nil
}
