// Package observability provides logging setup and formatted output
// utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintMatchResult outputs a human-readable summary of a match result.
func (p *Printer) PrintMatchResult(result *types.MatchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Score:    %.2f (%s)\n", result.Score, result.Verdict))
	sb.WriteString(fmt.Sprintf("Hard:     %.2f × %.2f\n", result.HardScore, result.Weights.Hard))
	sb.WriteString(fmt.Sprintf("Soft:     %.2f × %.2f\n", result.SoftScore, result.Weights.Soft))
	sb.WriteString("\n")

	if len(result.MatchedSkills) > 0 {
		sb.WriteString("Matched Skills:\n")
		writeSkillList(&sb, result.MatchedSkills)
		sb.WriteString("\n")
	}

	if len(result.MissingSkills) > 0 {
		sb.WriteString("Missing Skills:\n")
		writeSkillList(&sb, result.MissingSkills)
		sb.WriteString("\n")
	}

	if len(result.CommonKeywords) > 0 {
		keywords := strings.Join(result.CommonKeywords, ", ")
		if len(keywords) > 45 {
			keywords = keywords[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Keywords: %s\n", keywords))
	}

	p.printBox("MATCH RESULT", strings.TrimSuffix(sb.String(), "\n"))

	if result.Feedback != "" {
		var fb strings.Builder
		for _, part := range strings.Split(result.Feedback, " | ") {
			fb.WriteString(fmt.Sprintf("• %s\n", part))
		}
		p.printBox("FEEDBACK", strings.TrimSuffix(fb.String(), "\n"))
	}
}

// PrintResumeProfile outputs a human-readable summary of a parsed resume.
func (p *Printer) PrintResumeProfile(profile *types.ResumeProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.Contact.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Contact.Name))
	}
	if profile.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Contact.Email))
	}
	if profile.Contact.Phone != "" {
		sb.WriteString(fmt.Sprintf("Phone:    %s\n", profile.Contact.Phone))
	}
	if profile.ExperienceYears > 0 {
		sb.WriteString(fmt.Sprintf("Years:    %.1f\n", profile.ExperienceYears))
	}
	sb.WriteString(fmt.Sprintf("Words:    %d\n", profile.WordCount))

	if len(profile.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		writeSkillList(&sb, profile.Skills)
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobPosting outputs a human-readable summary of a parsed job posting.
func (p *Printer) PrintJobPosting(posting *types.JobPosting) {
	if posting == nil {
		return
	}

	var sb strings.Builder

	if posting.Title != "" {
		sb.WriteString(fmt.Sprintf("Title:    %s\n", posting.Title))
	}
	if posting.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", posting.Location))
	}
	if posting.ExperienceYears > 0 {
		sb.WriteString(fmt.Sprintf("Years:    %.1f\n", posting.ExperienceYears))
	}
	sb.WriteString(fmt.Sprintf("Words:    %d\n", posting.WordCount))

	if len(posting.RequiredSkills) > 0 {
		sb.WriteString("\nRequired Skills:\n")
		writeSkillList(&sb, posting.RequiredSkills)
	}

	if len(posting.NiceToHaves) > 0 {
		sb.WriteString("\nNice-to-haves:\n")
		writeSkillList(&sb, posting.NiceToHaves)
	}

	p.printBox("PARSED JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// writeSkillList writes up to maxItemsToShow bullet items plus an overflow line
func writeSkillList(sb *strings.Builder, items []string) {
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
}
