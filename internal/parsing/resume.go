package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+`)
	phonePattern = regexp.MustCompile(`\+?\d[\d -]{8,}\d`)

	namePatterns = []*regexp.Regexp{
		// "John Smith" or "John Doe Smith"
		regexp.MustCompile(`^([A-Z][a-z]+ [A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)\s*$`),
		// "JOHN SMITH"
		regexp.MustCompile(`^([A-Z][A-Z\s]+)$`),
	}

	resumeExperiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\+?\s*years?\s*of\s*experience`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s*experience`),
		regexp.MustCompile(`experience\s*:\s*(\d+)\+?\s*years?`),
		regexp.MustCompile(`(\d+)\+?\s*yrs?\s*experience`),
	}
)

// ParseResume extracts contact details, skills and an experience estimate
// from raw resume text. It never fails; fields that cannot be located are
// left at their zero values.
func ParseResume(text string, extractor *skills.Extractor) types.ResumeProfile {
	if extractor == nil {
		extractor = skills.NewExtractor(nil)
	}

	profile := types.ResumeProfile{
		Skills:    extractor.Extract(text),
		WordCount: len(strings.Fields(text)),
	}
	profile.Contact.Name = extractName(text)
	if email := emailPattern.FindString(text); email != "" {
		profile.Contact.Email = email
	}
	if phone := phonePattern.FindString(text); phone != "" {
		profile.Contact.Phone = strings.TrimSpace(phone)
	}
	profile.ExperienceYears = extractExperienceYears(text, resumeExperiencePatterns)

	return profile
}

// extractName looks for a candidate name in the first five lines. Lines
// shorter than 5 or longer than 50 characters are skipped, as are matches
// containing resume/CV header words.
func extractName(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 5 {
		lines = lines[:5]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 5 || len(line) > 50 {
			continue
		}
		for _, pattern := range namePatterns {
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			name := strings.TrimSpace(match[1])
			lower := strings.ToLower(name)
			if strings.Contains(lower, "resume") || strings.Contains(lower, "cv") || strings.Contains(lower, "curriculum") {
				continue
			}
			return name
		}
	}
	return ""
}

func extractExperienceYears(text string, patterns []*regexp.Regexp) float64 {
	lower := strings.ToLower(text)
	for _, pattern := range patterns {
		match := pattern.FindStringSubmatch(lower)
		if match == nil {
			continue
		}
		years, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		return float64(years)
	}
	return 0
}
