package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/skills"
)

func TestHardMatch_TwoOfThreeRequired(t *testing.T) {
	resumeSkills := []string{"python", "docker", "react", "aws"}
	required := []string{"python", "aws", "kubernetes"}

	score, matched, missing := HardMatch(resumeSkills, required, nil)

	assert.InDelta(t, 66.67, score, 0.001)
	assert.Equal(t, []string{"python", "aws"}, matched)
	assert.Equal(t, []string{"kubernetes"}, missing)
}

func TestHardMatch_EmptyRequiredList(t *testing.T) {
	score, matched, missing := HardMatch([]string{"python"}, nil, nil)

	assert.Zero(t, score)
	require.NotNil(t, matched)
	require.NotNil(t, missing)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}

func TestHardMatch_PartitionCoversAllRequired(t *testing.T) {
	cases := []struct {
		name     string
		resume   []string
		required []string
	}{
		{"all matched", []string{"go", "python"}, []string{"go", "python"}},
		{"none matched", []string{"go"}, []string{"rust", "scala"}},
		{"mixed", []string{"python", "aws"}, []string{"python", "terraform", "aws", "gcp"}},
		{"duplicate required entries", []string{"python"}, []string{"python", "python", "rust"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, matched, missing := HardMatch(tc.resume, tc.required, nil)

			assert.Len(t, matched, len(tc.required)-len(missing))
			assert.Equal(t, len(tc.required), len(matched)+len(missing))
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		})
	}
}

func TestHardMatch_SubstringContainmentIsCommutative(t *testing.T) {
	_, matched, _ := HardMatch([]string{"reactjs"}, []string{"react"}, nil)
	assert.Equal(t, []string{"react"}, matched)

	_, matched, _ = HardMatch([]string{"react"}, []string{"reactjs"}, nil)
	assert.Equal(t, []string{"reactjs"}, matched)
}

func TestHardMatch_ShortRequiredSkillsSkipSubstringRule(t *testing.T) {
	// "go" is two runes, below the substring gate, so "django" does not
	// produce a spurious hit.
	_, matched, missing := HardMatch([]string{"django"}, []string{"go"}, nil)

	assert.Empty(t, matched)
	assert.Equal(t, []string{"go"}, missing)
}

func TestHardMatch_JavaMatchesJavascript(t *testing.T) {
	// "java" is a substring of "javascript", so the containment rule counts
	// it as a hit. This is a known false positive of the length-gated
	// substring rule, kept as-is for compatibility.
	_, matched, missing := HardMatch([]string{"javascript"}, []string{"java"}, nil)

	assert.Equal(t, []string{"java"}, matched)
	assert.Empty(t, missing)
}

func TestHardMatch_VariationTableBothDirections(t *testing.T) {
	_, matched, _ := HardMatch([]string{"kubernetes"}, []string{"k8s"}, nil)
	assert.Equal(t, []string{"k8s"}, matched)

	_, matched, _ = HardMatch([]string{"k8s"}, []string{"kubernetes"}, nil)
	assert.Equal(t, []string{"kubernetes"}, matched)

	_, matched, _ = HardMatch([]string{"amazon web services"}, []string{"aws"}, nil)
	assert.Equal(t, []string{"aws"}, matched)
}

func TestHardMatch_PreservesRequiredCasing(t *testing.T) {
	_, matched, missing := HardMatch([]string{"python", "aws"}, []string{"Python", "AWS", "Rust"}, nil)

	assert.Equal(t, []string{"Python", "AWS"}, matched)
	assert.Equal(t, []string{"Rust"}, missing)
}

func TestHardMatch_CustomVocabularyVariations(t *testing.T) {
	vocab, err := skills.NewVocabulary(
		[]string{"terraform"},
		map[string][]string{"terraform": {"tf"}},
	)
	require.NoError(t, err)

	_, matched, _ := HardMatch([]string{"terraform"}, []string{"tf"}, vocab)

	assert.Equal(t, []string{"tf"}, matched)
}
