package skills

import (
	"encoding/json"
	"fmt"
	"os"
)

// VocabularyFile mirrors the vocabulary JSON document layout.
type VocabularyFile struct {
	Terms      []string            `json:"terms"`
	Variations map[string][]string `json:"variations,omitempty"`
}

// LoadVocabularyFile reads a vocabulary JSON file and builds a Vocabulary
// from it.
func LoadVocabularyFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file %s: %w", path, err)
	}

	var doc VocabularyFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary JSON: %w", err)
	}

	vocab, err := NewVocabulary(doc.Terms, doc.Variations)
	if err != nil {
		return nil, fmt.Errorf("invalid vocabulary in %s: %w", path, err)
	}
	return vocab, nil
}
