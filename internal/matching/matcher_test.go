package matching

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/types"
)

type stubSoftScorer struct {
	score float64
	err   error
}

func (s stubSoftScorer) Similarity(_ context.Context, _, _ string) (float64, error) {
	return s.score, s.err
}

func TestNewMatcher_RequiresSoftScorer(t *testing.T) {
	m, err := NewMatcher(nil, nil, nil)

	assert.Error(t, err)
	assert.Nil(t, m)
}

func TestMatch_FullPipeline(t *testing.T) {
	m, err := NewMatcher(nil, stubSoftScorer{score: 80}, nil)
	require.NoError(t, err)

	result, err := m.Match(context.Background(), Request{
		ResumeText:     "Senior engineer with Python, AWS, Docker and React experience",
		JobText:        "Looking for engineer with Kubernetes experience",
		RequiredSkills: []string{"Python", "AWS", "Kubernetes"},
	})
	require.NoError(t, err)

	assert.InDelta(t, 66.67, result.HardScore, 0.001)
	assert.Equal(t, 80.0, result.SoftScore)
	assert.InDelta(t, 70.67, result.Score, 0.001)
	assert.Equal(t, types.VerdictMedium, result.Verdict)
	assert.Equal(t, []string{"Python", "AWS"}, result.MatchedSkills)
	assert.Equal(t, []string{"Kubernetes"}, result.MissingSkills)
	assert.Equal(t, []string{"python", "docker", "react", "aws"}, result.ExtractedResumeSkills)
	assert.Equal(t, []string{"engineer"}, result.CommonKeywords)
	assert.Equal(t,
		"☁️ Cloud: Add projects showcasing Kubernetes deployment | ✅ Strong match in: Python, AWS",
		result.Feedback)
	assert.Equal(t, types.ScoringWeights{Hard: 0.7, Soft: 0.3}, result.Weights)
}

func TestMatch_EmptyRequiredSkills(t *testing.T) {
	m, err := NewMatcher(nil, stubSoftScorer{score: 90}, nil)
	require.NoError(t, err)

	result, err := m.Match(context.Background(), Request{
		ResumeText: "Plain prose without technology mentions",
		JobText:    "Equally plain job description",
	})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.HardScore)
	assert.Equal(t, 27.0, result.Score)
	assert.Equal(t, types.VerdictLow, result.Verdict)
	assert.Empty(t, result.MatchedSkills)
	assert.Empty(t, result.MissingSkills)
	assert.Equal(t, "🎉 Excellent skill alignment! No major gaps detected.", result.Feedback)
}

func TestMatch_ExplicitWeightsKept(t *testing.T) {
	m, err := NewMatcher(nil, stubSoftScorer{score: 55.5}, nil)
	require.NoError(t, err)

	result, err := m.Match(context.Background(), Request{
		ResumeText:     "Go and Python developer",
		JobText:        "Go role",
		RequiredSkills: []string{"go"},
		HardWeight:     1,
		SoftWeight:     0,
	})
	require.NoError(t, err)

	assert.Equal(t, types.ScoringWeights{Hard: 1, Soft: 0}, result.Weights)
	assert.Equal(t, result.HardScore, result.Score)
	assert.Equal(t, 55.5, result.SoftScore)
}

func TestMatch_SoftScorerFailure(t *testing.T) {
	cause := errors.New("provider unreachable")
	m, err := NewMatcher(nil, stubSoftScorer{err: cause}, nil)
	require.NoError(t, err)

	result, err := m.Match(context.Background(), Request{
		ResumeText: "text",
		JobText:    "text",
	})

	assert.Nil(t, result)
	var matchErr *MatchError
	require.ErrorAs(t, err, &matchErr)
	assert.Equal(t, "soft scoring", matchErr.Stage)
	assert.ErrorIs(t, err, cause)
}

func TestMatch_EmptyTextsProduceEmptyJSONArrays(t *testing.T) {
	m, err := NewMatcher(nil, stubSoftScorer{}, nil)
	require.NoError(t, err)

	result, err := m.Match(context.Background(), Request{})
	require.NoError(t, err)

	raw, err := json.Marshal(result)
	require.NoError(t, err)

	body := string(raw)
	assert.Contains(t, body, `"matched_skills":[]`)
	assert.Contains(t, body, `"missing_skills":[]`)
	assert.Contains(t, body, `"extracted_resume_skills":[]`)
	assert.Contains(t, body, `"common_keywords":[]`)
	assert.NotContains(t, body, "null")
}

func TestMatch_CommonKeywordsCapped(t *testing.T) {
	shared := "alpha bravo charlie delta echofox golf hotel india juliett kilo lima mike november oscar papa quebec romeo"
	m, err := NewMatcher(nil, stubSoftScorer{score: 10}, nil)
	require.NoError(t, err)

	result, err := m.Match(context.Background(), Request{
		ResumeText: shared,
		JobText:    shared,
	})
	require.NoError(t, err)

	assert.Len(t, result.CommonKeywords, 15)
}
