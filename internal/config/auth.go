// Package config provides API authentication configuration.
package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// AuthConfig holds configuration for API authentication. Authentication is
// optional: when no token hash is configured the API is open.
type AuthConfig struct {
	// TokenHash is the bcrypt hash that client bearer tokens are verified
	// against. Empty disables authentication.
	TokenHash string
	// JWTSecret signs the short-lived session tokens issued in exchange
	// for the API token.
	JWTSecret string
	// JWTExpirationHours bounds the lifetime of issued session tokens.
	JWTExpirationHours int
	// BcryptCost is used when hashing new API tokens.
	BcryptCost int
}

// NewAuthConfig creates authentication configuration from environment
// variables. It reads API_TOKEN_HASH and JWT_SECRET (both optional),
// JWT_EXPIRATION_HOURS (default: 24) and BCRYPT_COST (default: 12).
func NewAuthConfig() (*AuthConfig, error) {
	expirationStr := os.Getenv("JWT_EXPIRATION_HOURS")
	if expirationStr == "" {
		expirationStr = "24" // default
	}
	expirationHours, err := strconv.Atoi(expirationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
	}

	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12" // default
	}
	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}

	config := &AuthConfig{
		TokenHash:          os.Getenv("API_TOKEN_HASH"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTExpirationHours: expirationHours,
		BcryptCost:         cost,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// normalize validates the configuration.
func (c *AuthConfig) normalize() error {
	if c.BcryptCost < 10 || c.BcryptCost > 14 {
		return fmt.Errorf("bcrypt cost out of range: %d (must be 10-14)", c.BcryptCost)
	}
	if c.JWTExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.JWTExpirationHours)
	}
	if c.TokenHash != "" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when API_TOKEN_HASH is set")
	}
	return nil
}

// Enabled reports whether the API requires authentication.
func (c *AuthConfig) Enabled() bool {
	return c.TokenHash != ""
}

// HashToken hashes an API token with bcrypt, for use as API_TOKEN_HASH.
func (c *AuthConfig) HashToken(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("token cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash token: %w", err)
	}

	return string(hash), nil
}

// VerifyToken verifies a presented API token against the configured hash.
func (c *AuthConfig) VerifyToken(token string) bool {
	if c.TokenHash == "" || token == "" {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(c.TokenHash), []byte(token))
	return err == nil
}
