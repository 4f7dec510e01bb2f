// Package skills provides the curated skill vocabulary and the
// dictionary-driven skill extraction used by the matching engine.
package skills

import (
	"fmt"
	"strings"
)

// Vocabulary is an immutable set of canonical skill names plus a variation
// table mapping canonical names to accepted aliases. Canonical names are
// unique case-insensitively, and every alias belongs to exactly one
// canonical name; both invariants are enforced at construction.
type Vocabulary struct {
	terms      []string
	termSet    map[string]struct{}
	aliases    map[string][]string
	aliasOwner map[string]string
}

// NewVocabulary builds a Vocabulary from canonical terms and a variation
// table. It returns an error for empty or duplicate canonical names and for
// aliases claimed by more than one canonical name.
func NewVocabulary(terms []string, variations map[string][]string) (*Vocabulary, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("vocabulary requires at least one term")
	}

	v := &Vocabulary{
		terms:      make([]string, 0, len(terms)),
		termSet:    make(map[string]struct{}, len(terms)),
		aliases:    make(map[string][]string, len(variations)),
		aliasOwner: make(map[string]string),
	}

	for _, term := range terms {
		trimmed := strings.TrimSpace(term)
		if trimmed == "" {
			return nil, fmt.Errorf("vocabulary contains an empty term")
		}
		key := strings.ToLower(trimmed)
		if _, exists := v.termSet[key]; exists {
			return nil, fmt.Errorf("duplicate vocabulary term %q", trimmed)
		}
		v.termSet[key] = struct{}{}
		v.terms = append(v.terms, trimmed)
	}

	for canonical, aliasList := range variations {
		canonicalKey := strings.ToLower(strings.TrimSpace(canonical))
		if canonicalKey == "" {
			return nil, fmt.Errorf("variation table contains an empty canonical name")
		}
		seen := make(map[string]struct{}, len(aliasList))
		for _, alias := range aliasList {
			aliasKey := strings.ToLower(strings.TrimSpace(alias))
			if aliasKey == "" {
				return nil, fmt.Errorf("canonical %q has an empty alias", canonical)
			}
			if aliasKey == canonicalKey {
				continue
			}
			if _, dup := seen[aliasKey]; dup {
				continue
			}
			if owner, claimed := v.aliasOwner[aliasKey]; claimed {
				return nil, fmt.Errorf("alias %q belongs to both %q and %q", alias, owner, canonical)
			}
			seen[aliasKey] = struct{}{}
			v.aliasOwner[aliasKey] = canonicalKey
			v.aliases[canonicalKey] = append(v.aliases[canonicalKey], aliasKey)
		}
	}

	return v, nil
}

// Default returns the built-in vocabulary.
func Default() *Vocabulary {
	return defaultVocabulary
}

var defaultVocabulary = mustVocabulary(defaultTerms, defaultVariations)

func mustVocabulary(terms []string, variations map[string][]string) *Vocabulary {
	v, err := NewVocabulary(terms, variations)
	if err != nil {
		panic(fmt.Sprintf("skills: invalid built-in vocabulary: %v", err))
	}
	return v
}

// Terms returns a copy of the canonical skill names in their original order.
func (v *Vocabulary) Terms() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// Len returns the number of canonical skill names.
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Contains reports whether name is a canonical vocabulary term,
// compared case-insensitively.
func (v *Vocabulary) Contains(name string) bool {
	_, ok := v.termSet[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// AliasesOf returns the aliases registered for a canonical name, or nil
// when none exist. The lookup is case-insensitive and aliases are returned
// in lowercase.
func (v *Vocabulary) AliasesOf(canonical string) []string {
	list := v.aliases[strings.ToLower(strings.TrimSpace(canonical))]
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// CanonicalOf resolves an alias to its canonical name. The lookup is
// case-insensitive and the canonical name is returned in lowercase.
func (v *Vocabulary) CanonicalOf(alias string) (string, bool) {
	owner, ok := v.aliasOwner[strings.ToLower(strings.TrimSpace(alias))]
	return owner, ok
}
