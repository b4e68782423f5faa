// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify assigns RFP fragments to requirement categories using
// a fixed keyword taxonomy.
package classify

import (
	"strings"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

// taxonomy maps each category to its case-insensitive trigger phrases.
// A category applies when any trigger occurs as a substring of the
// fragment text.
var taxonomy = map[types.Category][]string{
	types.CategoryTechnical:  {"technical", "system", "software", "hardware", "infrastructure", "technology"},
	types.CategoryCompliance: {"comply", "regulation", "standard", "certification", "iso", "requirement"},
	types.CategoryBusiness:   {"cost", "budget", "financial", "payment", "delivery", "timeline"},
	types.CategoryExperience: {"experience", "year", "project", "similar", "previous", "track record"},
}

// Classify returns the categories triggered by text, in canonical order.
// Zero categories is a valid outcome. The result depends only on the
// text, so re-running is always deterministic.
func Classify(text string) []types.Category {
	lower := strings.ToLower(text)

	var matched []types.Category
	for _, cat := range types.AllCategories() {
		for _, trigger := range taxonomy[cat] {
			if strings.Contains(lower, trigger) {
				matched = append(matched, cat)
				break
			}
		}
	}
	return matched
}

// Annotate tags every match record with its requirement categories.
func Annotate(records []types.MatchRecord) []types.CategorizedMatch {
	categorized := make([]types.CategorizedMatch, len(records))
	for i, rec := range records {
		categorized[i] = types.CategorizedMatch{
			MatchRecord: rec,
			Categories:  Classify(rec.RFPText),
		}
	}
	return categorized
}
