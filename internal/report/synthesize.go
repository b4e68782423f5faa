// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report derives risk and checklist narratives from scored
// matches and renders the analysis record to disk.
package report

import (
	"fmt"
	"sort"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

const (
	// riskFraction is the unmet share above which a category becomes a
	// named risk.
	riskFraction = 0.3

	// strengthenFloor is the overall score below which the generic
	// checklist item is appended.
	strengthenFloor = 75.0

	// maxGapItems and maxChecklistItems cap the checklist, dropping
	// lowest-priority items first.
	maxGapItems       = 2
	maxChecklistItems = 3

	noRisksPlaceholder = "No significant risks identified"
)

// Risks returns a ranked list of unmet-requirement risks: one entry per
// category whose unmet fraction exceeds riskFraction, in canonical
// category order. The list is never empty; with no risks it holds a
// single placeholder entry.
func Risks(agg types.Aggregate) []string {
	var risks []string
	for _, cat := range types.AllCategories() {
		cs := agg.CategoryScores[cat]
		if cs.TotalCount == 0 {
			continue
		}
		unmet := cs.TotalCount - cs.MatchedCount
		if float64(unmet)/float64(cs.TotalCount) > riskFraction {
			risks = append(risks, fmt.Sprintf("High risk: %d %s requirements not adequately met", unmet, cat))
		}
	}

	if len(risks) == 0 {
		return []string{noRisksPlaceholder}
	}
	return risks
}

// Checklist builds an action list: up to two gap items for the
// categories with the most low-confidence requirements, plus a generic
// strengthening item when the overall score falls below 75. At most
// three items are returned.
func Checklist(categorized []types.CategorizedMatch, agg types.Aggregate, cfg types.ScoringConfig) []string {
	type gap struct {
		category types.Category
		count    int
	}

	var gaps []gap
	for _, cat := range types.AllCategories() {
		count := 0
		for _, m := range categorized {
			if m.HasCategory(cat) && m.BestSimilarity < cfg.CoverageThreshold {
				count++
			}
		}
		if count > 0 {
			gaps = append(gaps, gap{category: cat, count: count})
		}
	}

	// Rank by unmet count descending; canonical order breaks ties.
	sort.SliceStable(gaps, func(i, j int) bool {
		return gaps[i].count > gaps[j].count
	})
	if len(gaps) > maxGapItems {
		gaps = gaps[:maxGapItems]
	}

	var checklist []string
	for _, g := range gaps {
		checklist = append(checklist, fmt.Sprintf("Address %s gaps (%d items)", g.category, g.count))
	}

	if agg.OverallScore < strengthenFloor {
		checklist = append(checklist, "Strengthen overall response")
	}

	if len(checklist) > maxChecklistItems {
		checklist = checklist[:maxChecklistItems]
	}
	return checklist
}

// Qualifications summarizes up to three key qualifications, one per
// category with requirements. Compliance counts as met only when every
// requirement matched; other categories when more than 70% did.
func Qualifications(agg types.Aggregate) []types.Qualification {
	var quals []types.Qualification
	for _, cat := range types.AllCategories() {
		cs := agg.CategoryScores[cat]
		if cs.TotalCount == 0 {
			continue
		}

		met := float64(cs.MatchedCount)/float64(cs.TotalCount) > 0.7
		if cat == types.CategoryCompliance {
			met = cs.MatchedCount == cs.TotalCount
		}

		quals = append(quals, types.Qualification{
			Type:    string(cat),
			Details: fmt.Sprintf("Meets %d of %d %s requirements", cs.MatchedCount, cs.TotalCount, cat),
			Met:     met,
		})
		if len(quals) == 3 {
			break
		}
	}
	return quals
}
