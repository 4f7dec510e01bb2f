package feedback

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadConfigFile reads a feedback table JSON file. An omitted separator
// falls back to the default " | ".
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read feedback file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse feedback JSON: %w", err)
	}

	if cfg.Separator == "" {
		cfg.Separator = " | "
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid feedback table in %s: %w", path, err)
	}
	return cfg, nil
}
