package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDefaultGenerator(t *testing.T) *Generator {
	t.Helper()
	g, err := NewGenerator(DefaultConfig())
	require.NoError(t, err)
	return g
}

func TestGenerate_BucketsMissingSkills(t *testing.T) {
	g := newDefaultGenerator(t)

	got := g.Generate([]string{"rust", "kubernetes", "terraform"}, []string{"python", "aws"})

	assert.Equal(t,
		"📚 Programming: Consider learning rust | "+
			"☁️ Cloud: Add projects showcasing kubernetes deployment | "+
			"🛠️ Technical: Gain experience with terraform | "+
			"✅ Strong match in: python, aws",
		got)
}

func TestGenerate_CapsSkillsPerClause(t *testing.T) {
	g := newDefaultGenerator(t)

	got := g.Generate([]string{"python", "java", "javascript", "typescript"}, nil)

	// Only the first three programming skills are named.
	assert.Equal(t, "📚 Programming: Consider learning python, java, javascript", got)
}

func TestGenerate_EmptyPartitionsUseEmptyMessage(t *testing.T) {
	g := newDefaultGenerator(t)

	got := g.Generate(nil, nil)

	assert.Equal(t, "🎉 Excellent skill alignment! No major gaps detected.", got)
}

func TestGenerate_MatchedOnly(t *testing.T) {
	g := newDefaultGenerator(t)

	got := g.Generate(nil, []string{"Python", "AWS"})

	assert.Equal(t, "✅ Strong match in: Python, AWS", got)
}

func TestGenerate_PreservesSkillCasing(t *testing.T) {
	g := newDefaultGenerator(t)

	got := g.Generate([]string{"Kubernetes"}, nil)

	assert.Equal(t, "☁️ Cloud: Add projects showcasing Kubernetes deployment", got)
}

func TestNewGenerator_RejectsBadTemplates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Buckets[0].Template = "no placeholder"

	_, err := NewGenerator(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "programming")
}

func TestNewGenerator_RejectsNonPositiveLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MatchedLimit = 0

	_, err := NewGenerator(cfg)
	assert.Error(t, err)
}

func TestGenerate_CustomBucketTable(t *testing.T) {
	cfg := Config{
		Buckets: []Bucket{
			{Name: "observability", Skills: []string{"prometheus", "grafana"}, Limit: 2, Template: "Monitoring: learn %s"},
		},
		OtherTemplate:   "Other: %s",
		OtherLimit:      3,
		MatchedTemplate: "Matched: %s",
		MatchedLimit:    5,
		EmptyMessage:    "all good",
		Separator:       " | ",
	}
	g, err := NewGenerator(cfg)
	require.NoError(t, err)

	got := g.Generate([]string{"grafana", "python"}, nil)

	assert.Equal(t, "Monitoring: learn grafana | Other: python", got)
}
