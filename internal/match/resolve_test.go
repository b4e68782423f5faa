// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

// fakeSearcher serves canned candidates keyed by query text.
type fakeSearcher struct {
	responses map[string][]types.MatchCandidate
	errors    map[string]error
}

func (f *fakeSearcher) Search(_ context.Context, text string, filter types.QueryFilter, k int) ([]types.MatchCandidate, error) {
	if filter.Source != types.SourceCompany {
		return nil, fmt.Errorf("unexpected filter source %q", filter.Source)
	}
	if err, ok := f.errors[text]; ok {
		return nil, err
	}
	candidates := f.responses[text]
	if len(candidates) > k {
		candidates = candidates[:k]
	}
	return candidates, nil
}

func fragments(texts ...string) []types.Fragment {
	frags := make([]types.Fragment, len(texts))
	for i, text := range texts {
		frags[i] = types.Fragment{
			Text:          text,
			SourceType:    types.SourceRFP,
			DocumentID:    "rfp-1",
			SequenceIndex: i,
		}
	}
	return frags
}

func TestResolveBestSimilarityAndTier(t *testing.T) {
	searcher := &fakeSearcher{
		responses: map[string][]types.MatchCandidate{
			"technical system requirement": {
				{FragmentText: "we build technical systems", Distance: 0.1},
				{FragmentText: "unrelated capability", Distance: 0.6},
			},
		},
	}

	records := Resolve(context.Background(), fragments("technical system requirement"), searcher, 3, zap.NewNop())

	require.Len(t, records, 1)
	assert.InDelta(t, 0.9, records[0].BestSimilarity, 1e-9)
	assert.Equal(t, types.TierHigh, records[0].Tier)
	assert.Equal(t, "we build technical systems", records[0].Candidates[0].FragmentText)
}

func TestResolveClampsDistances(t *testing.T) {
	searcher := &fakeSearcher{
		responses: map[string][]types.MatchCandidate{
			"q": {
				{FragmentText: "negative distance", Distance: -0.4},
				{FragmentText: "overflow distance", Distance: 1.7},
			},
		},
	}

	records := Resolve(context.Background(), fragments("q"), searcher, 3, zap.NewNop())

	require.Len(t, records, 1)
	require.Len(t, records[0].Candidates, 2)
	assert.Equal(t, 0.0, records[0].Candidates[0].Distance)
	assert.Equal(t, 1.0, records[0].Candidates[1].Distance)
	assert.Equal(t, 1.0, records[0].BestSimilarity)
}

func TestResolveCandidatesSortedStable(t *testing.T) {
	searcher := &fakeSearcher{
		responses: map[string][]types.MatchCandidate{
			"q": {
				{FragmentText: "third", Distance: 0.5},
				{FragmentText: "first of tie", Distance: 0.2},
				{FragmentText: "second of tie", Distance: 0.2},
			},
		},
	}

	records := Resolve(context.Background(), fragments("q"), searcher, 3, zap.NewNop())

	got := records[0].Candidates
	require.Len(t, got, 3)
	assert.Equal(t, "first of tie", got[0].FragmentText)
	assert.Equal(t, "second of tie", got[1].FragmentText)
	assert.Equal(t, "third", got[2].FragmentText)
}

func TestResolvePartialFailure(t *testing.T) {
	searcher := &fakeSearcher{
		responses: map[string][]types.MatchCandidate{
			"works": {{FragmentText: "match", Distance: 0.3}},
		},
		errors: map[string]error{
			"broken": fmt.Errorf("index unavailable"),
		},
	}

	records := Resolve(context.Background(), fragments("works", "broken", "works"), searcher, 3, zap.NewNop())

	require.Len(t, records, 3)

	// The failed fragment degrades to an empty terminal record.
	assert.Empty(t, records[1].Candidates)
	assert.Equal(t, 0.0, records[1].BestSimilarity)
	assert.Equal(t, types.TierLow, records[1].Tier)

	// Siblings are unaffected.
	assert.InDelta(t, 0.7, records[0].BestSimilarity, 1e-9)
	assert.InDelta(t, 0.7, records[2].BestSimilarity, 1e-9)
}

func TestResolveEmptyCandidates(t *testing.T) {
	searcher := &fakeSearcher{responses: map[string][]types.MatchCandidate{}}

	records := Resolve(context.Background(), fragments("nothing matches"), searcher, 3, zap.NewNop())

	require.Len(t, records, 1)
	assert.Empty(t, records[0].Candidates)
	assert.Equal(t, 0.0, records[0].BestSimilarity)
	assert.Equal(t, types.TierLow, records[0].Tier)
}

func TestResolveOrderedBySequenceIndex(t *testing.T) {
	// Many fragments so concurrent completion order is exercised.
	var texts []string
	responses := make(map[string][]types.MatchCandidate)
	for i := 0; i < 50; i++ {
		text := fmt.Sprintf("requirement %02d", i)
		texts = append(texts, text)
		responses[text] = []types.MatchCandidate{{FragmentText: text, Distance: 0.25}}
	}
	searcher := &fakeSearcher{responses: responses}

	records := Resolve(context.Background(), fragments(texts...), searcher, 3, zap.NewNop())

	require.Len(t, records, 50)
	for i, rec := range records {
		assert.Equal(t, i, rec.SequenceIndex)
		assert.Equal(t, texts[i], rec.RFPText)
	}
}

func TestResolveNoFragments(t *testing.T) {
	searcher := &fakeSearcher{}
	records := Resolve(context.Background(), nil, searcher, 3, zap.NewNop())
	assert.Empty(t, records)
}
