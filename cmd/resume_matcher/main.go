// Package main implements the resume_matcher CLI for scoring resumes
// against job descriptions.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_matcher",
	Short: "Resume Matcher scoring engine and HTTP API",
	Long: `Resume Matcher scores resumes against job descriptions by blending skill
overlap with semantic similarity, and explains each score with matched
skills, missing skills and actionable feedback.`,
}

func main() {
	// Try to load .env file - ignore error if it doesn't exist
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
