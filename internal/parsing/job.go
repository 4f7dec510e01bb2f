package parsing

import (
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

var (
	rolePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:hiring|looking for|seeking|position|role|job title):\s*([^\n\r]+)`),
		regexp.MustCompile(`(?i)job title:\s*([^\n\r]+)`),
		regexp.MustCompile(`(?i)position:\s*([^\n\r]+)`),
		regexp.MustCompile(`(?i)^([A-Z][A-Za-z\s]+(?:Developer|Engineer|Manager|Analyst|Specialist|Lead|Architect))`),
		regexp.MustCompile(`(?i)we are hiring\s+([^\n\r]+)`),
	}

	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)location:\s*([^\n\r]+)`),
		regexp.MustCompile(`(?i)based in:\s*([^\n\r]+)`),
		regexp.MustCompile(`(?i)office location:\s*([^\n\r]+)`),
		regexp.MustCompile(`(?i)work location:\s*([^\n\r]+)`),
		regexp.MustCompile(`(?i)(?:bangalore|mumbai|delhi|pune|hyderabad|chennai|kolkata|gurgaon|noida)`),
		regexp.MustCompile(`(?i)(?:remote|work from home|wfh)`),
		regexp.MustCompile(`(?i)(?:san francisco|new york|london|toronto|sydney)`),
	}

	jobExperiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)[-\s]*(?:to|-)[-\s]*(\d+)\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`(\d+)\+?\s*years?\s*(?:of\s*)?experience`),
		regexp.MustCompile(`minimum\s*(\d+)\s*years?\s*experience`),
		regexp.MustCompile(`at\s*least\s*(\d+)\s*years?\s*experience`),
		regexp.MustCompile(`(\d+)\s*years?\s*minimum\s*experience`),
		regexp.MustCompile(`experience:\s*(\d+)[-\s]*(?:to|-)[-\s]*(\d+)\s*years?`),
		regexp.MustCompile(`experience:\s*(\d+)\+?\s*years?`),
	}

	mustHaveIndicators = []string{
		"required", "must have", "mandatory", "essential", "necessary", "minimum requirements",
		"requirements", "must be", "should have", "need to have", "expertise in",
	}

	niceToHaveIndicators = []string{
		"preferred", "nice to have", "good to have", "plus", "bonus", "additional",
		"desirable", "advantage", "would be great", "ideal candidate",
	}

	titleFallbackWords = []string{"developer", "engineer", "manager", "analyst", "lead", "architect", "specialist"}
)

// ParseJob extracts the title, location, experience requirement and the
// required/nice-to-have skill split from raw job posting text. It never
// fails; fields that cannot be located are left at their zero values.
func ParseJob(text string, extractor *skills.Extractor) types.JobPosting {
	if extractor == nil {
		extractor = skills.NewExtractor(nil)
	}

	required, nice := splitSkillsByPriority(text, extractor)
	return types.JobPosting{
		Title:           extractTitle(text),
		Location:        extractLocation(text),
		ExperienceYears: extractExperienceYears(text, jobExperiencePatterns),
		RequiredSkills:  required,
		NiceToHaves:     nice,
		WordCount:       len(strings.Fields(text)),
	}
}

// extractTitle scans the first ten lines for a role title. A pattern hit is
// accepted when its cleaned form is between 5 and 100 characters; otherwise
// a short line naming a common role word is used as a fallback.
func extractTitle(text string) string {
	lines := strings.Split(text, "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 5 {
			continue
		}
		for _, pattern := range rolePatterns {
			match := pattern.FindStringSubmatch(line)
			if match == nil {
				continue
			}
			role := strings.Trim(match[1], "-: \t\r\n")
			if len(role) >= 5 && len(role) <= 100 {
				return role
			}
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		for _, word := range titleFallbackWords {
			if strings.Contains(lower, word) && len(strings.Fields(line)) <= 6 {
				return line
			}
		}
	}
	return ""
}

func extractLocation(text string) string {
	for _, pattern := range locationPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		if len(match) > 1 {
			return strings.Trim(match[1], "-: \t\r\n")
		}
		return match[0]
	}
	return ""
}

// splitSkillsByPriority classifies vocabulary skills paragraph by paragraph:
// a paragraph whose wording signals a hard requirement contributes required
// skills, one signalling a preference contributes nice-to-haves, and
// ambiguous paragraphs default to required.
func splitSkillsByPriority(text string, extractor *skills.Extractor) (required, nice []string) {
	requiredSet := make(map[string]struct{})
	niceSet := make(map[string]struct{})

	for _, paragraph := range strings.Split(text, "\n\n") {
		lower := strings.ToLower(paragraph)
		isMust := containsAny(lower, mustHaveIndicators)
		isNice := containsAny(lower, niceToHaveIndicators)

		for _, skill := range extractor.Extract(paragraph) {
			if isNice && !isMust {
				niceSet[skill] = struct{}{}
			} else {
				requiredSet[skill] = struct{}{}
			}
		}
	}

	required = make([]string, 0, len(requiredSet))
	for skill := range requiredSet {
		required = append(required, skill)
	}
	sort.Strings(required)

	nice = make([]string, 0, len(niceSet))
	for skill := range niceSet {
		if _, promoted := requiredSet[skill]; promoted {
			continue
		}
		nice = append(nice, skill)
	}
	sort.Strings(nice)

	return required, nice
}

func containsAny(text string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}
