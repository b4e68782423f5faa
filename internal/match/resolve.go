// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match resolves RFP fragments against the semantic index,
// producing one match record per fragment.
package match

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

// Searcher answers nearest-neighbor queries over stored fragments.
// The index is treated as potentially lossy or unavailable per call.
type Searcher interface {
	Search(ctx context.Context, text string, filter types.QueryFilter, k int) ([]types.MatchCandidate, error)
}

// Resolve queries the index for the topK nearest company fragments of
// every RFP fragment and returns one MatchRecord per fragment, ordered
// by the fragments' sequence indexes.
//
// Queries fan out concurrently; completion order does not matter because
// results are placed by input position. A failed or empty query yields
// an empty record with zero similarity and the low tier, and never
// aborts the batch or cancels sibling queries.
func Resolve(ctx context.Context, fragments []types.Fragment, searcher Searcher, topK int, logger *zap.Logger) []types.MatchRecord {
	if topK < 1 {
		topK = 3
	}

	records := make([]types.MatchRecord, len(fragments))

	var wg sync.WaitGroup
	for i, frag := range fragments {
		wg.Add(1)
		go func(i int, frag types.Fragment) {
			defer wg.Done()

			candidates, err := searcher.Search(ctx, frag.Text, types.QueryFilter{Source: types.SourceCompany}, topK)
			if err != nil {
				logger.Warn("index query failed, emitting empty match",
					zap.Int("sequence_index", frag.SequenceIndex),
					zap.Error(err),
				)
				candidates = nil
			}

			records[i] = buildRecord(frag, candidates)
		}(i, frag)
	}
	wg.Wait()

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SequenceIndex < records[j].SequenceIndex
	})

	return records
}

// buildRecord normalizes raw candidates into a MatchRecord: distances
// clamped to [0, 1], candidates sorted best first with the index return
// order breaking ties, and similarity derived from the closest candidate.
func buildRecord(frag types.Fragment, candidates []types.MatchCandidate) types.MatchRecord {
	rec := types.MatchRecord{
		RFPText:       frag.Text,
		SequenceIndex: frag.SequenceIndex,
		Tier:          types.TierLow,
	}

	if len(candidates) == 0 {
		return rec
	}

	clamped := make([]types.MatchCandidate, len(candidates))
	for i, c := range candidates {
		c.Distance = clamp01(c.Distance)
		clamped[i] = c
	}
	sort.SliceStable(clamped, func(i, j int) bool {
		return clamped[i].Distance < clamped[j].Distance
	})

	rec.Candidates = clamped
	rec.BestSimilarity = 1.0 - clamped[0].Distance
	rec.Tier = types.TierFor(rec.BestSimilarity)
	return rec
}

// clamp01 truncates out-of-range distances instead of rejecting them.
func clamp01(d float64) float64 {
	if d < 0 {
		return 0
	}
	if d > 1 {
		return 1
	}
	return d
}
