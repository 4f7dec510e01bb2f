package main

import (
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/spf13/cobra"
)

var hashTokenCmd = &cobra.Command{
	Use:   "hash-token",
	Short: "Hash an API token for use as API_TOKEN_HASH",
	Long: `Hash an API token with bcrypt. Put the printed hash in the API_TOKEN_HASH
environment variable (with JWT_SECRET) to require authentication on the server.`,
	RunE: runHashToken,
}

var (
	hashTokenValue string
	hashTokenCost  int
)

func init() {
	hashTokenCmd.Flags().StringVar(&hashTokenValue, "token", "", "API token to hash (required)")
	hashTokenCmd.Flags().IntVar(&hashTokenCost, "cost", 12, "bcrypt cost (10-14)")

	if err := hashTokenCmd.MarkFlagRequired("token"); err != nil {
		panic(fmt.Sprintf("failed to mark token flag as required: %v", err))
	}

	rootCmd.AddCommand(hashTokenCmd)
}

func runHashToken(_ *cobra.Command, _ []string) error {
	if hashTokenCost < 10 || hashTokenCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", hashTokenCost)
	}

	cfg := &config.AuthConfig{BcryptCost: hashTokenCost}
	hash, err := cfg.HashToken(hashTokenValue)
	if err != nil {
		return fmt.Errorf("failed to hash token: %w", err)
	}

	_, _ = fmt.Fprintf(os.Stdout, "%s\n", hash)
	return nil
}
