package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseJob_TitleLocationAndExperience(t *testing.T) {
	text := `Job Title: Senior Backend Engineer
Location: Remote

We need 3-5 years experience with Go and PostgreSQL.`

	job := ParseJob(text, nil)

	assert.Equal(t, "Senior Backend Engineer", job.Title)
	assert.Equal(t, "Remote", job.Location)
	assert.Equal(t, 3.0, job.ExperienceYears)
}

func TestParseJob_SplitsSkillsByPriority(t *testing.T) {
	text := `Requirements: strong Python and Docker background is required.

Nice to have: Kubernetes knowledge is preferred.`

	job := ParseJob(text, nil)

	assert.Equal(t, []string{"docker", "python"}, job.RequiredSkills)
	assert.Equal(t, []string{"kubernetes"}, job.NiceToHaves)
}

func TestParseJob_AmbiguousParagraphDefaultsToRequired(t *testing.T) {
	job := ParseJob("Our stack is Terraform on GCP.", nil)

	assert.Contains(t, job.RequiredSkills, "terraform")
	assert.Contains(t, job.RequiredSkills, "gcp")
	assert.Empty(t, job.NiceToHaves)
}

func TestParseJob_RequiredWinsOverNiceToHave(t *testing.T) {
	text := `Required: Python expertise in distributed systems.

Preferred: Python and Flutter exposure would be a plus.`

	job := ParseJob(text, nil)

	assert.Contains(t, job.RequiredSkills, "python")
	assert.Equal(t, []string{"flutter"}, job.NiceToHaves)
}

func TestParseJob_TitleFallbackUsesRoleWords(t *testing.T) {
	// No title pattern matches here; the short line naming a role word is
	// picked up by the fallback scan.
	job := ParseJob("Engineer, Platform\nsome other text", nil)

	assert.Equal(t, "Engineer, Platform", job.Title)
}
