package matching

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

// CommonKeywords intersects the whitespace token sets of the two texts and
// returns the meaningful shared terms, lowercased, de-duplicated and sorted
// lexicographically. Tokens shorter than 3 runes, stopwords and tokens with
// non-letter characters are dropped. The intersection happens before
// lowercasing, so differently cased occurrences only count when both texts
// agree. This is a coarse relevance filter, not an importance ranking.
func CommonKeywords(resumeText, jobText string) []string {
	resumeTokens := tokenSet(resumeText)
	jobTokens := tokenSet(jobText)

	seen := make(map[string]struct{})
	keywords := []string{}
	for token := range resumeTokens {
		if _, shared := jobTokens[token]; !shared {
			continue
		}
		if utf8.RuneCountInString(token) < 3 || !isAlphabetic(token) {
			continue
		}
		lower := strings.ToLower(token)
		if parsing.IsExtendedStopword(lower) {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		keywords = append(keywords, lower)
	}

	sort.Strings(keywords)
	return keywords
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.Fields(text)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func isAlphabetic(token string) bool {
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
