package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-matcher/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintMatchResult(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.MatchResult{
		Score:          70.67,
		HardScore:      66.67,
		SoftScore:      80.0,
		Verdict:        types.VerdictMedium,
		MatchedSkills:  []string{"Python", "AWS"},
		MissingSkills:  []string{"Kubernetes"},
		CommonKeywords: []string{"cloud", "services"},
		Feedback:       "Good skill coverage. | Consider adding Kubernetes experience.",
		Weights:        types.ScoringWeights{Hard: 0.7, Soft: 0.3},
	}

	p.PrintMatchResult(result)
	output := buf.String()

	assert.Contains(t, output, "MATCH RESULT")
	assert.Contains(t, output, "70.67")
	assert.Contains(t, output, "Medium")
	assert.Contains(t, output, "Python")
	assert.Contains(t, output, "Kubernetes")
	assert.Contains(t, output, "cloud, services")
	assert.Contains(t, output, "FEEDBACK")
	assert.Contains(t, output, "Good skill coverage.")
}

func TestPrintMatchResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchResult(nil)

	assert.Empty(t, buf.String())
}

func TestPrintMatchResult_OverflowsLongSkillLists(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	result := &types.MatchResult{
		Score:         50,
		Verdict:       types.VerdictMedium,
		MatchedSkills: []string{"Go", "Python", "Java", "Rust", "Ruby", "Scala", "Kotlin"},
		Weights:       types.ScoringWeights{Hard: 0.7, Soft: 0.3},
	}

	p.PrintMatchResult(result)
	output := buf.String()

	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "Kotlin")
}

func TestPrintResumeProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.ResumeProfile{
		Contact: types.ContactInfo{
			Name:  "Jane Doe",
			Email: "jane@example.com",
			Phone: "555-0100",
		},
		Skills:          []string{"Go", "PostgreSQL"},
		ExperienceYears: 6,
		WordCount:       420,
	}

	p.PrintResumeProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "PARSED RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "555-0100")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "420")
}

func TestPrintResumeProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintResumeProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintJobPosting(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	posting := &types.JobPosting{
		Title:           "Senior Backend Engineer",
		Location:        "Remote",
		ExperienceYears: 5,
		RequiredSkills:  []string{"Go", "Kubernetes"},
		NiceToHaves:     []string{"Rust"},
		WordCount:       300,
	}

	p.PrintJobPosting(posting)
	output := buf.String()

	assert.Contains(t, output, "PARSED JOB POSTING")
	assert.Contains(t, output, "Senior Backend Engineer")
	assert.Contains(t, output, "Remote")
	assert.Contains(t, output, "Go")
	assert.Contains(t, output, "Rust")
}

func TestPrintJobPosting_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintJobPosting(nil)

	assert.Empty(t, buf.String())
}

func TestPrintBox_LongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	// Test with a posting containing long text
	posting := &types.JobPosting{
		Title:    "Senior Staff Principal Distinguished Engineer Level 99 For Truncation",
		Location: "A Very Long Location Name That Should Be Truncated To Fit The Box",
	}

	p.PrintJobPosting(posting)
	output := buf.String()

	// Should contain box characters
	assert.True(t, strings.Contains(output, "┌"))
	assert.True(t, strings.Contains(output, "└"))
	assert.True(t, strings.Contains(output, "│"))
}
