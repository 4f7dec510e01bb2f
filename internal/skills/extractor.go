package skills

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Extractor scans free text for vocabulary skills. Construction compiles
// one pattern set per vocabulary entry, so an Extractor should be built
// once and shared; it is safe for concurrent use.
type Extractor struct {
	vocab    *Vocabulary
	patterns []skillPattern
}

type skillPattern struct {
	skill    string
	exact    *regexp.Regexp
	flexible *regexp.Regexp
}

// NewExtractor builds an Extractor for the given vocabulary. A nil
// vocabulary selects the built-in default.
func NewExtractor(vocab *Vocabulary) *Extractor {
	if vocab == nil {
		vocab = Default()
	}

	patterns := make([]skillPattern, 0, len(vocab.terms))
	for _, term := range vocab.terms {
		lower := strings.ToLower(term)
		quoted := regexp.QuoteMeta(lower)
		sp := skillPattern{
			skill: term,
			exact: regexp.MustCompile(`\b` + quoted + `\b`),
		}
		// Internal spaces are interchangeable with hyphens or other
		// whitespace, so "machine learning" also hits "machine-learning".
		if strings.Contains(lower, " ") {
			sp.flexible = regexp.MustCompile(`\b` + strings.ReplaceAll(quoted, " ", `[-\s]`) + `\b`)
		}
		patterns = append(patterns, sp)
	}

	// Longest entries scan first so multi-word skills are recorded before
	// their substrings are independently flagged. The stable sort keeps
	// vocabulary order for equal lengths.
	sort.SliceStable(patterns, func(i, j int) bool {
		return utf8.RuneCountInString(patterns[i].skill) > utf8.RuneCountInString(patterns[j].skill)
	})

	return &Extractor{vocab: vocab, patterns: patterns}
}

// Vocabulary returns the vocabulary the extractor scans against.
func (e *Extractor) Vocabulary() *Vocabulary {
	return e.vocab
}

// Extract returns the skills recognized in text, de-duplicated
// case-insensitively while preserving first-seen order. The order reflects
// the longest-first vocabulary scan, not alphabetical order, and is not
// stable across vocabulary edits. Empty text yields an empty result.
func (e *Extractor) Extract(text string) []string {
	found := []string{}
	if strings.TrimSpace(text) == "" {
		return found
	}

	textLower := strings.ToLower(text)
	for _, sp := range e.patterns {
		if sp.exact.MatchString(textLower) {
			found = append(found, sp.skill)
			continue
		}
		if sp.flexible != nil && sp.flexible.MatchString(textLower) {
			found = append(found, sp.skill)
		}
	}

	seen := make(map[string]struct{}, len(found))
	unique := found[:0]
	for _, skill := range found {
		key := strings.ToLower(skill)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, skill)
	}
	return unique
}
