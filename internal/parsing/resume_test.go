package parsing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseResume_ContactSkillsAndExperience(t *testing.T) {
	text := `John Smith
john.smith@example.com | +1 555 123 4567

Backend engineer with 5+ years of experience building services in Python
and Go, deployed on AWS with Docker.`

	profile := ParseResume(text, nil)

	assert.Equal(t, "John Smith", profile.Contact.Name)
	assert.Equal(t, "john.smith@example.com", profile.Contact.Email)
	assert.Equal(t, "+1 555 123 4567", profile.Contact.Phone)
	assert.Equal(t, 5.0, profile.ExperienceYears)
	assert.Contains(t, profile.Skills, "python")
	assert.Contains(t, profile.Skills, "go")
	assert.Contains(t, profile.Skills, "aws")
	assert.Contains(t, profile.Skills, "docker")
	assert.Greater(t, profile.WordCount, 10)
}

func TestParseResume_SkipsHeaderLines(t *testing.T) {
	text := `Resume Of John
Jane Doe
jane@example.com`

	profile := ParseResume(text, nil)

	assert.Equal(t, "Jane Doe", profile.Contact.Name)
}

func TestParseResume_MissingFieldsStayZero(t *testing.T) {
	profile := ParseResume("nothing useful here", nil)

	assert.Empty(t, profile.Contact.Name)
	assert.Empty(t, profile.Contact.Email)
	assert.Empty(t, profile.Contact.Phone)
	assert.Zero(t, profile.ExperienceYears)
	assert.NotNil(t, profile.Skills)
	assert.Empty(t, profile.Skills)
}
