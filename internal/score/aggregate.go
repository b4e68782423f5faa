// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score aggregates categorized matches into weighted scores and
// applies the eligibility decision.
package score

import (
	"github.com/pdiddy/rfp-engine/pkg/types"
)

// Aggregate combines per-fragment similarity and per-category
// classification into category scores, a weighted overall score, a
// coverage percentage, and the high-confidence ratio.
//
// The computation is a pure function of its inputs: aggregating the same
// match set twice yields an identical result. An empty match set yields
// all zeros rather than a division error.
func Aggregate(categorized []types.CategorizedMatch, cfg types.ScoringConfig) types.Aggregate {
	agg := types.Aggregate{
		CategoryScores: make(map[types.Category]types.CategoryScore, len(types.AllCategories())),
		TotalRecords:   len(categorized),
	}

	// Sum in canonical category order: float addition is not associative,
	// so map iteration order would make repeated runs differ in the last
	// bit.
	for _, cat := range types.AllCategories() {
		agg.CategoryScores[cat] = scoreCategory(categorized, cat, cfg.ThresholdFor(cat))
		agg.OverallScore += cfg.Weights[cat] * agg.CategoryScores[cat].Score
	}

	if !agg.HasData() {
		return agg
	}

	covered := 0
	high := 0
	for _, m := range categorized {
		if m.BestSimilarity >= cfg.CoverageThreshold {
			covered++
		}
		if m.Tier == types.TierHigh {
			high++
		}
	}
	agg.CoveragePercent = 100 * float64(covered) / float64(agg.TotalRecords)
	agg.HighConfidenceRatio = float64(high) / float64(agg.TotalRecords)

	return agg
}

// scoreCategory counts the requirements tagged with cat and how many of
// them clear the category threshold. A category with no requirements
// scores 0.
func scoreCategory(categorized []types.CategorizedMatch, cat types.Category, threshold float64) types.CategoryScore {
	cs := types.CategoryScore{Category: cat}

	for _, m := range categorized {
		if !m.HasCategory(cat) {
			continue
		}
		cs.TotalCount++
		if m.Matched(threshold) {
			cs.MatchedCount++
		}
	}

	if cs.TotalCount > 0 {
		cs.Score = 100 * float64(cs.MatchedCount) / float64(cs.TotalCount)
	}
	return cs
}

// Statistics summarizes the confidence distribution of a match set.
func Statistics(records []types.CategorizedMatch) types.MatchStatistics {
	stats := types.MatchStatistics{Total: len(records)}
	if stats.Total == 0 {
		return stats
	}

	var sum float64
	for _, m := range records {
		sum += m.BestSimilarity
		switch m.Tier {
		case types.TierHigh:
			stats.High++
		case types.TierMedium:
			stats.Medium++
		default:
			stats.Low++
		}
	}
	stats.AverageScore = sum / float64(stats.Total)
	return stats
}
