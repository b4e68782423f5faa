// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"github.com/pdiddy/rfp-engine/pkg/types"
)

// Decide applies the eligibility rule: a conjunction of three
// independently named threshold conditions over the aggregated scores.
// All conditions are reported alongside the verdict so callers can
// explain a rejection, not just report it.
func Decide(agg types.Aggregate, cfg types.ScoringConfig) types.EligibilityResult {
	conditions := map[string]bool{
		types.CondOverallSufficient:    agg.OverallScore >= cfg.MinOverallScore,
		types.CondCoverageSufficient:   agg.CoveragePercent >= cfg.MinCoveragePercent,
		types.CondConfidenceSufficient: agg.HighConfidenceRatio >= cfg.MinHighConfidenceRatio,
	}

	eligible := agg.HasData()
	for _, ok := range conditions {
		eligible = eligible && ok
	}

	return types.EligibilityResult{
		OverallScore:        agg.OverallScore,
		CategoryScores:      agg.CategoryScores,
		CoveragePercent:     agg.CoveragePercent,
		HighConfidenceRatio: agg.HighConfidenceRatio,
		Eligible:            eligible,
		Conditions:          conditions,
	}
}
