// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(types.IndexConfig{IndexDir: t.TempDir(), MaxResults: 20})
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func addFragments(t *testing.T, store *Store, docID string, source types.SourceType, texts ...string) {
	t.Helper()
	frags := make([]types.Fragment, len(texts))
	for i, text := range texts {
		frags[i] = types.Fragment{Text: text, SourceType: source, DocumentID: docID, SequenceIndex: i}
	}
	require.NoError(t, store.AddDocument(context.Background(), docID, source, frags))
}

func TestSearchRanksRelevantFirst(t *testing.T) {
	store := testStore(t)
	addFragments(t, store, "company-1", types.SourceCompany,
		"We operate cloud infrastructure with certified engineers",
		"Our catering division serves corporate events",
		"Cloud infrastructure monitoring and infrastructure automation",
	)

	candidates, err := store.Search(context.Background(), "cloud infrastructure expertise",
		types.QueryFilter{Source: types.SourceCompany}, 3)
	require.NoError(t, err)

	require.NotEmpty(t, candidates)
	assert.Contains(t, candidates[0].FragmentText, "infrastructure")

	// Distances are bounded and ascending.
	prev := 0.0
	for _, c := range candidates {
		assert.Greater(t, c.Distance, 0.0)
		assert.LessOrEqual(t, c.Distance, 1.0)
		assert.GreaterOrEqual(t, c.Distance, prev)
		prev = c.Distance
	}
}

func TestSearchFiltersBySource(t *testing.T) {
	store := testStore(t)
	addFragments(t, store, "rfp-1", types.SourceRFP, "network security requirement")
	addFragments(t, store, "company-1", types.SourceCompany, "network security services")

	candidates, err := store.Search(context.Background(), "network security",
		types.QueryFilter{Source: types.SourceCompany}, 5)
	require.NoError(t, err)

	require.Len(t, candidates, 1)
	assert.Equal(t, "company-1", candidates[0].Metadata["document_id"])
	assert.Equal(t, string(types.SourceCompany), candidates[0].Metadata["source_type"])
}

func TestSearchNoMatches(t *testing.T) {
	store := testStore(t)
	addFragments(t, store, "company-1", types.SourceCompany, "catering services")

	candidates, err := store.Search(context.Background(), "quantum cryptography",
		types.QueryFilter{Source: types.SourceCompany}, 5)

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestSearchPunctuationSafe(t *testing.T) {
	store := testStore(t)
	addFragments(t, store, "company-1", types.SourceCompany, "ISO 27001 certified operations")

	// Raw punctuation would be FTS5 syntax; tokenization must defuse it.
	candidates, err := store.Search(context.Background(), `ISO-27001 ("certified")!`,
		types.QueryFilter{Source: types.SourceCompany}, 5)

	require.NoError(t, err)
	require.NotEmpty(t, candidates)
}

func TestSearchEmptyQuery(t *testing.T) {
	store := testStore(t)

	candidates, err := store.Search(context.Background(), "...", types.QueryFilter{}, 5)

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestAddDocumentReplacesOnReingest(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	addFragments(t, store, "company-1", types.SourceCompany, "first version", "of the profile")
	addFragments(t, store, "company-1", types.SourceCompany, "second version")

	count, err := store.FragmentCount(ctx, types.QueryFilter{DocumentID: "company-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// The replaced fragment is gone from the FTS index too.
	candidates, err := store.Search(ctx, "first profile", types.QueryFilter{}, 5)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestAddDocumentValidation(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	assert.Error(t, store.AddDocument(ctx, "", types.SourceCompany, nil))
	assert.Error(t, store.AddDocument(ctx, "doc", "profile", nil))
}

func TestRankDistance(t *testing.T) {
	// More negative rank (better BM25 match) maps to smaller distance.
	assert.Less(t, rankDistance(-5), rankDistance(-1))
	assert.Equal(t, 1.0, rankDistance(0))
	assert.LessOrEqual(t, rankDistance(-1000), 1.0)
	assert.Greater(t, rankDistance(-1000), 0.0)
}
