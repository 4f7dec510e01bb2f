// Package matching implements the resume-to-job scoring pipeline: hard skill
// overlap, keyword intersection, score fusion and the match orchestrator.
package matching

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resume-matcher/internal/skills"
)

// HardMatch compares extracted resume skills against a job's required skills
// and returns the overlap percentage plus the matched/missing partition.
// Comparison is on trimmed lowercase; the partition preserves the required
// skills' original casing. An empty required list scores 0 with empty
// partitions: no requirements stated means nothing to grade against.
func HardMatch(resumeSkills, requiredSkills []string, vocab *skills.Vocabulary) (float64, []string, []string) {
	matched := []string{}
	missing := []string{}
	if len(requiredSkills) == 0 {
		return 0, matched, missing
	}
	if vocab == nil {
		vocab = skills.Default()
	}

	resumeNormalized := make([]string, len(resumeSkills))
	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for i, skill := range resumeSkills {
		norm := strings.ToLower(strings.TrimSpace(skill))
		resumeNormalized[i] = norm
		resumeSet[norm] = struct{}{}
	}

	for _, required := range requiredSkills {
		norm := strings.ToLower(strings.TrimSpace(required))
		if requiredSkillMatches(norm, resumeNormalized, resumeSet, vocab) {
			matched = append(matched, required)
		} else {
			missing = append(missing, required)
		}
	}

	score := round2(float64(len(matched)) / float64(len(requiredSkills)) * 100)
	return score, matched, missing
}

// requiredSkillMatches applies the three match rules in order: exact
// membership, bidirectional substring containment for required skills longer
// than 2 runes, then the canonical/alias variation table in both directions.
func requiredSkillMatches(required string, resumeSkills []string, resumeSet map[string]struct{}, vocab *skills.Vocabulary) bool {
	if _, ok := resumeSet[required]; ok {
		return true
	}

	if utf8.RuneCountInString(required) > 2 {
		for _, resumeSkill := range resumeSkills {
			if strings.Contains(resumeSkill, required) || strings.Contains(required, resumeSkill) {
				return true
			}
		}
	}

	for _, alias := range vocab.AliasesOf(required) {
		if _, ok := resumeSet[alias]; ok {
			return true
		}
	}
	if canonical, ok := vocab.CanonicalOf(required); ok {
		if _, present := resumeSet[canonical]; present {
			return true
		}
	}
	return false
}
