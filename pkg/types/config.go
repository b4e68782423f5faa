// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"math"
	"time"
)

// IndexConfig holds settings for the semantic index store.
type IndexConfig struct {
	// IndexDir is the directory holding the index database and document
	// metadata sidecars.
	IndexDir string `json:"index_dir" yaml:"index_dir" mapstructure:"index_dir"`

	// MaxResults caps the number of candidates one query may return
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ChunkConfig holds settings for the text splitter.
type ChunkConfig struct {
	// MaxChars is the maximum fragment length (default 1000).
	MaxChars int `json:"max_chars" yaml:"max_chars" mapstructure:"max_chars"`

	// OverlapChars is the tail carried between adjacent fragments when a
	// block must be hard-split (default 200).
	OverlapChars int `json:"overlap_chars" yaml:"overlap_chars" mapstructure:"overlap_chars"`
}

// DefaultChunking returns the standard splitter settings.
func DefaultChunking() ChunkConfig {
	return ChunkConfig{MaxChars: 1000, OverlapChars: 200}
}

// ScoringConfig holds the matching thresholds, category weights, and
// eligibility cutoffs. It is validated once at startup; the scoring core
// assumes a valid configuration.
type ScoringConfig struct {
	// TopK is the number of candidates requested per RFP fragment
	// (default 3).
	TopK int `json:"top_k" yaml:"top_k" mapstructure:"top_k"`

	// Weights maps each category to its share of the overall score.
	// Weights must cover every category and sum to 1. A category with no
	// requirements contributes 0; weights are deliberately not
	// renormalized, so an RFP silent on a category is penalized.
	Weights map[Category]float64 `json:"weights" yaml:"weights" mapstructure:"weights"`

	// MatchThreshold is the similarity a requirement needs to count as
	// matched within its category (default 0.7).
	MatchThreshold float64 `json:"match_threshold" yaml:"match_threshold" mapstructure:"match_threshold"`

	// ComplianceThreshold is the stricter floor used for the compliance
	// category (default 0.8).
	ComplianceThreshold float64 `json:"compliance_threshold" yaml:"compliance_threshold" mapstructure:"compliance_threshold"`

	// CoverageThreshold is the similarity floor for a requirement to
	// count as covered (default 0.6, the medium-tier floor).
	CoverageThreshold float64 `json:"coverage_threshold" yaml:"coverage_threshold" mapstructure:"coverage_threshold"`

	// MinOverallScore, MinCoveragePercent, and MinHighConfidenceRatio
	// are the three independent eligibility cutoffs.
	MinOverallScore        float64 `json:"min_overall_score" yaml:"min_overall_score" mapstructure:"min_overall_score"`
	MinCoveragePercent     float64 `json:"min_coverage_percent" yaml:"min_coverage_percent" mapstructure:"min_coverage_percent"`
	MinHighConfidenceRatio float64 `json:"min_high_confidence_ratio" yaml:"min_high_confidence_ratio" mapstructure:"min_high_confidence_ratio"`
}

// DefaultScoring returns the standard scoring policy.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		TopK: 3,
		Weights: map[Category]float64{
			CategoryTechnical:  0.4,
			CategoryCompliance: 0.3,
			CategoryBusiness:   0.2,
			CategoryExperience: 0.1,
		},
		MatchThreshold:         0.7,
		ComplianceThreshold:    0.8,
		CoverageThreshold:      0.6,
		MinOverallScore:        70,
		MinCoveragePercent:     75,
		MinHighConfidenceRatio: 0.5,
	}
}

// ThresholdFor returns the match threshold for a category. Compliance
// uses the stricter floor.
func (c ScoringConfig) ThresholdFor(cat Category) float64 {
	if cat == CategoryCompliance {
		return c.ComplianceThreshold
	}
	return c.MatchThreshold
}

// Validate checks the configuration invariants: every category weighted,
// weights summing to 1, and all thresholds in range. Violations are fatal
// at startup, never checked per call.
func (c ScoringConfig) Validate() error {
	if c.TopK < 1 {
		return fmt.Errorf("top_k must be at least 1, got %d", c.TopK)
	}

	var sum float64
	for _, cat := range AllCategories() {
		w, ok := c.Weights[cat]
		if !ok {
			return fmt.Errorf("missing weight for category %q", cat)
		}
		if w < 0 || w > 1 {
			return fmt.Errorf("weight for category %q out of range: %v", cat, w)
		}
		sum += w
	}
	if len(c.Weights) != len(AllCategories()) {
		return fmt.Errorf("weights configured for %d categories, expected %d", len(c.Weights), len(AllCategories()))
	}
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("category weights sum to %v, expected 1.0", sum)
	}

	for name, v := range map[string]float64{
		"match_threshold":           c.MatchThreshold,
		"compliance_threshold":      c.ComplianceThreshold,
		"coverage_threshold":        c.CoverageThreshold,
		"min_high_confidence_ratio": c.MinHighConfidenceRatio,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s out of range [0, 1]: %v", name, v)
		}
	}

	for name, v := range map[string]float64{
		"min_overall_score":    c.MinOverallScore,
		"min_coverage_percent": c.MinCoveragePercent,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s out of range [0, 100]: %v", name, v)
		}
	}

	return nil
}

// ReportConfig holds settings for the report writer.
type ReportConfig struct {
	// ReportsDir is the base directory for generated reports. Each
	// report gets its own subdirectory.
	ReportsDir string `json:"reports_dir" yaml:"reports_dir" mapstructure:"reports_dir"`

	// MaxAge is the retention period for old reports (default 24h).
	MaxAge time.Duration `json:"max_age" yaml:"max_age" mapstructure:"max_age"`
}
