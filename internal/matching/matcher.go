package matching

import (
	"context"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/feedback"
	"github.com/jonathan/resume-matcher/internal/skills"
	"github.com/jonathan/resume-matcher/internal/types"
)

// Default blend applied when a request carries no weights.
const (
	DefaultHardWeight = 0.7
	DefaultSoftWeight = 0.3
)

// AlgorithmVersion identifies the scoring algorithm in results and stored
// records.
const AlgorithmVersion = "2.0.0"

// maxCommonKeywords caps the shared-keyword list in results.
const maxCommonKeywords = 15

// SoftScorer produces the semantic (or lexical fallback) similarity between
// two texts on a 0-100 scale.
type SoftScorer interface {
	Similarity(ctx context.Context, resumeText, jobText string) (float64, error)
}

// Request carries one matching invocation. RequiredSkills are arbitrary
// caller-declared strings, not necessarily vocabulary members. Zero weights
// mean "use the defaults".
type Request struct {
	ResumeText     string
	JobText        string
	RequiredSkills []string
	HardWeight     float64
	SoftWeight     float64
}

// Matcher composes skill extraction, hard and soft scoring, keyword
// intersection and feedback generation into the single Match operation.
// It is immutable after construction and safe for concurrent use.
type Matcher struct {
	extractor *skills.Extractor
	soft      SoftScorer
	feedback  *feedback.Generator
}

// NewMatcher builds a Matcher. A nil extractor selects the built-in
// vocabulary and a nil generator the built-in feedback table; the soft
// scorer is required.
func NewMatcher(extractor *skills.Extractor, soft SoftScorer, generator *feedback.Generator) (*Matcher, error) {
	if soft == nil {
		return nil, fmt.Errorf("matching: a soft scorer is required")
	}
	if extractor == nil {
		extractor = skills.NewExtractor(nil)
	}
	if generator == nil {
		var err error
		generator, err = feedback.NewGenerator(feedback.DefaultConfig())
		if err != nil {
			return nil, err
		}
	}
	return &Matcher{extractor: extractor, soft: soft, feedback: generator}, nil
}

// Match scores one resume against one job. Degenerate inputs produce zero
// scores rather than errors; any internal failure surfaces as a *MatchError
// and never as a partial result.
func (m *Matcher) Match(ctx context.Context, req Request) (*types.MatchResult, error) {
	weights := types.ScoringWeights{Hard: req.HardWeight, Soft: req.SoftWeight}
	if weights.Hard == 0 && weights.Soft == 0 {
		weights = types.ScoringWeights{Hard: DefaultHardWeight, Soft: DefaultSoftWeight}
	}

	extracted := m.extractor.Extract(req.ResumeText)
	hardScore, matchedSkills, missingSkills := HardMatch(extracted, req.RequiredSkills, m.extractor.Vocabulary())

	softScore, err := m.soft.Similarity(ctx, req.ResumeText, req.JobText)
	if err != nil {
		return nil, &MatchError{Stage: "soft scoring", Cause: err}
	}

	overall := FuseScores(hardScore, softScore, weights)

	keywords := CommonKeywords(req.ResumeText, req.JobText)
	if len(keywords) > maxCommonKeywords {
		keywords = keywords[:maxCommonKeywords]
	}

	return &types.MatchResult{
		Score:                 overall,
		HardScore:             hardScore,
		SoftScore:             softScore,
		Verdict:               VerdictFor(overall),
		MatchedSkills:         matchedSkills,
		MissingSkills:         missingSkills,
		ExtractedResumeSkills: extracted,
		CommonKeywords:        keywords,
		Feedback:              m.feedback.Generate(missingSkills, matchedSkills),
		Weights:               weights,
	}, nil
}
