// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConfidenceTier is a coarse bucket over a similarity score.
type ConfidenceTier string

const (
	TierHigh   ConfidenceTier = "high"
	TierMedium ConfidenceTier = "medium"
	TierLow    ConfidenceTier = "low"
)

// Tier boundaries over best similarity.
const (
	highTierFloor   = 0.8
	mediumTierFloor = 0.6
)

// TierFor buckets a similarity score: high at 0.8 and above, medium in
// [0.6, 0.8), low below 0.6.
func TierFor(similarity float64) ConfidenceTier {
	switch {
	case similarity >= highTierFloor:
		return TierHigh
	case similarity >= mediumTierFloor:
		return TierMedium
	default:
		return TierLow
	}
}

// QueryFilter restricts a semantic index query to a subset of the
// stored fragments.
type QueryFilter struct {
	// Source limits results to fragments from one document side.
	Source SourceType

	// DocumentID, when set, limits results to a single document.
	DocumentID string
}

// MatchCandidate is one nearest-neighbor result from the semantic index.
type MatchCandidate struct {
	// FragmentText is the matched company fragment.
	FragmentText string `json:"fragment_text" yaml:"fragment_text"`

	// Distance is the dissimilarity reported by the index, clamped to
	// [0, 1] before use.
	Distance float64 `json:"distance" yaml:"distance"`

	// Metadata carries index-side attributes of the matched fragment.
	Metadata map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// MatchRecord pairs one RFP fragment with its ranked candidate matches.
// A record with no candidates is a valid terminal state meaning no company
// content matched; it carries zero similarity and the low tier.
type MatchRecord struct {
	// RFPText is the requirement fragment being matched.
	RFPText string `json:"rfp_text" yaml:"rfp_text"`

	// SequenceIndex is the fragment's position in the RFP document.
	SequenceIndex int `json:"sequence_index" yaml:"sequence_index"`

	// Candidates holds the nearest company fragments, best first.
	Candidates []MatchCandidate `json:"candidates" yaml:"candidates"`

	// BestSimilarity is 1 - min(candidate distances), or 0 with no
	// candidates.
	BestSimilarity float64 `json:"best_similarity" yaml:"best_similarity"`

	// Tier is the confidence bucket derived from BestSimilarity.
	Tier ConfidenceTier `json:"confidence_tier" yaml:"confidence_tier"`
}

// Matched reports whether the record clears the given similarity threshold.
func (r MatchRecord) Matched(threshold float64) bool {
	return r.BestSimilarity >= threshold
}

// CategorizedMatch is a MatchRecord annotated with its requirement
// categories. A fragment may belong to zero, one, or several categories.
type CategorizedMatch struct {
	MatchRecord `yaml:",inline"`

	// Categories holds the requirement categories triggered by the RFP
	// text, in canonical order.
	Categories []Category `json:"categories" yaml:"categories"`
}

// HasCategory reports whether the match was tagged with c.
func (m CategorizedMatch) HasCategory(c Category) bool {
	for _, have := range m.Categories {
		if have == c {
			return true
		}
	}
	return false
}
