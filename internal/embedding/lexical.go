package embedding

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/parsing"
)

// maxLexicalFeatures caps the vocabulary used by the lexical comparison.
const maxLexicalFeatures = 1000

// lexicalTokenPattern matches words of two or more word characters.
var lexicalTokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// LexicalSimilarity returns the cosine similarity of two texts under a
// smoothed TF-IDF weighting over the two-document corpus, in [0, 1]. It
// is the scoring path used when no embedding provider is available. A
// text with no usable tokens scores 0.
func LexicalSimilarity(a, b string) float64 {
	countsA := lexicalTermCounts(a)
	countsB := lexicalTermCounts(b)
	if len(countsA) == 0 || len(countsB) == 0 {
		return 0
	}

	terms := selectLexicalTerms(countsA, countsB)

	// Smoothed idf: ln((1+n)/(1+df)) + 1 with n = 2 documents.
	idf := make([]float64, len(terms))
	for i, term := range terms {
		df := 1
		if countsA[term] > 0 && countsB[term] > 0 {
			df = 2
		}
		idf[i] = math.Log(3.0/float64(1+df)) + 1
	}

	vecA := lexicalVector(countsA, idf, terms)
	vecB := lexicalVector(countsB, idf, terms)
	if vecA == nil || vecB == nil {
		return 0
	}

	var dot float64
	for i := range vecA {
		dot += vecA[i] * vecB[i]
	}
	return dot
}

// lexicalTermCounts tokenizes a lowercased text and counts its terms,
// dropping English stopwords.
func lexicalTermCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, token := range lexicalTokenPattern.FindAllString(strings.ToLower(text), -1) {
		if parsing.IsEnglishStopword(token) {
			continue
		}
		counts[token]++
	}
	return counts
}

// selectLexicalTerms returns the vocabulary over both texts, keeping only
// the maxLexicalFeatures most frequent terms (ties resolved
// alphabetically).
func selectLexicalTerms(countsA, countsB map[string]int) []string {
	totals := make(map[string]int, len(countsA)+len(countsB))
	for term, n := range countsA {
		totals[term] += n
	}
	for term, n := range countsB {
		totals[term] += n
	}

	terms := make([]string, 0, len(totals))
	for term := range totals {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if totals[terms[i]] != totals[terms[j]] {
			return totals[terms[i]] > totals[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxLexicalFeatures {
		terms = terms[:maxLexicalFeatures]
	}
	return terms
}

// lexicalVector computes the L2-normalized TF-IDF vector of one text, or
// nil when none of the selected terms occur in it.
func lexicalVector(counts map[string]int, idf []float64, terms []string) []float64 {
	vec := make([]float64, len(terms))
	var norm float64
	for i, term := range terms {
		weight := float64(counts[term]) * idf[i]
		vec[i] = weight
		norm += weight * weight
	}
	if norm == 0 {
		return nil
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}
