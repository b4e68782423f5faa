// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

// fixedSearcher returns one candidate per query with a fixed distance.
type fixedSearcher struct {
	distances map[string]float64
}

func (f *fixedSearcher) Search(_ context.Context, text string, _ types.QueryFilter, _ int) ([]types.MatchCandidate, error) {
	d, ok := f.distances[text]
	if !ok {
		return nil, nil
	}
	return []types.MatchCandidate{{FragmentText: "company: " + text, Distance: d}}, nil
}

func rfpFragments(texts ...string) []types.Fragment {
	frags := make([]types.Fragment, len(texts))
	for i, text := range texts {
		frags[i] = types.Fragment{Text: text, SourceType: types.SourceRFP, DocumentID: "rfp-1", SequenceIndex: i}
	}
	return frags
}

func TestRunEndToEnd(t *testing.T) {
	searcher := &fixedSearcher{distances: map[string]float64{
		"technical system requirement": 0.1,
		"iso certification required":   0.15,
		"project delivery timeline":    0.1,
		"ten year experience needed":   0.12,
	}}

	in := Input{
		RFPDocumentID:     "rfp-1",
		CompanyDocumentID: "company-1",
		RFPFragments: rfpFragments(
			"technical system requirement",
			"iso certification required",
			"project delivery timeline",
			"ten year experience needed",
		),
	}

	analysis, err := Run(context.Background(), in, Deps{Searcher: searcher}, types.DefaultScoring())
	require.NoError(t, err)

	assert.Equal(t, "rfp-1", analysis.RFPDocumentID)
	assert.False(t, analysis.GeneratedAt.IsZero())
	assert.Len(t, analysis.Matches, 4)

	elig := analysis.Eligibility
	assert.Equal(t, 100.0, elig.CategoryScores[types.CategoryTechnical].Score)
	assert.InDelta(t, 100.0, elig.OverallScore, 1e-9)
	assert.Equal(t, 100.0, elig.CoveragePercent)
	assert.Equal(t, 1.0, elig.HighConfidenceRatio)
	assert.True(t, elig.Eligible)

	assert.Equal(t, []string{"No significant risks identified"}, analysis.Risks)
	assert.Empty(t, analysis.Checklist)
	assert.Equal(t, 4, analysis.Statistics.High)
}

func TestRunIneligibleWithExplanation(t *testing.T) {
	// All requirements resolve poorly; the verdict must name which
	// conditions failed.
	searcher := &fixedSearcher{distances: map[string]float64{
		"technical system requirement": 0.6,
		"iso certification required":   0.7,
	}}

	in := Input{
		RFPFragments: rfpFragments("technical system requirement", "iso certification required"),
	}

	analysis, err := Run(context.Background(), in, Deps{Searcher: searcher}, types.DefaultScoring())
	require.NoError(t, err)

	elig := analysis.Eligibility
	assert.False(t, elig.Eligible)
	assert.False(t, elig.Conditions[types.CondOverallSufficient])
	assert.False(t, elig.Conditions[types.CondCoverageSufficient])
	assert.False(t, elig.Conditions[types.CondConfidenceSufficient])

	assert.NotEqual(t, []string{"No significant risks identified"}, analysis.Risks)
	assert.Contains(t, analysis.Checklist, "Strengthen overall response")
}

func TestRunNoFragments(t *testing.T) {
	analysis, err := Run(context.Background(), Input{}, Deps{Searcher: &fixedSearcher{}}, types.DefaultScoring())
	require.NoError(t, err)

	assert.False(t, analysis.Eligibility.Eligible)
	assert.Equal(t, 0.0, analysis.Eligibility.OverallScore)
	assert.Equal(t, 0.0, analysis.Eligibility.CoveragePercent)
	assert.Empty(t, analysis.Matches)
}

func TestRunInvalidConfigFatal(t *testing.T) {
	cfg := types.DefaultScoring()
	cfg.Weights[types.CategoryTechnical] = 0.9 // weights no longer sum to 1

	_, err := Run(context.Background(), Input{}, Deps{Searcher: &fixedSearcher{}}, cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scoring configuration")
}

func TestRunIdempotent(t *testing.T) {
	searcher := &fixedSearcher{distances: map[string]float64{
		"technical system requirement": 0.25,
		"payment and budget terms":     0.55,
	}}
	in := Input{RFPFragments: rfpFragments("technical system requirement", "payment and budget terms")}

	first, err := Run(context.Background(), in, Deps{Searcher: searcher}, types.DefaultScoring())
	require.NoError(t, err)
	second, err := Run(context.Background(), in, Deps{Searcher: searcher}, types.DefaultScoring())
	require.NoError(t, err)

	// Everything except the generation timestamp is bit-identical.
	first.GeneratedAt = second.GeneratedAt
	assert.Equal(t, first, second)
}

func TestRunSurvivesFailingSearcher(t *testing.T) {
	searcher := failingSearcher{}
	in := Input{RFPFragments: rfpFragments("technical requirement one", "technical requirement two")}

	analysis, err := Run(context.Background(), in, Deps{Searcher: searcher}, types.DefaultScoring())
	require.NoError(t, err)

	require.Len(t, analysis.Matches, 2)
	for _, m := range analysis.Matches {
		assert.Empty(t, m.Candidates)
		assert.Equal(t, types.TierLow, m.Tier)
	}
	assert.False(t, analysis.Eligibility.Eligible)
}

type failingSearcher struct{}

func (failingSearcher) Search(context.Context, string, types.QueryFilter, int) ([]types.MatchCandidate, error) {
	return nil, fmt.Errorf("index unavailable")
}
