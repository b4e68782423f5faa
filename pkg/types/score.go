// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Category is a keyword-derived requirement classification.
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryCompliance Category = "compliance"
	CategoryBusiness   Category = "business"
	CategoryExperience Category = "experience"
)

// AllCategories returns the requirement categories in canonical order.
// The order is fixed so that classification and reporting are
// deterministic across runs.
func AllCategories() []Category {
	return []Category{
		CategoryTechnical,
		CategoryCompliance,
		CategoryBusiness,
		CategoryExperience,
	}
}

// CategoryScore summarizes how well one requirement category is covered.
type CategoryScore struct {
	Category Category `json:"category" yaml:"category"`

	// MatchedCount is the number of requirements in this category whose
	// best similarity clears the category's match threshold.
	MatchedCount int `json:"matched_count" yaml:"matched_count"`

	// TotalCount is the number of requirements tagged with this category.
	TotalCount int `json:"total_count" yaml:"total_count"`

	// Score is 100 * MatchedCount / TotalCount, or 0 with no requirements.
	Score float64 `json:"score" yaml:"score"`
}

// Aggregate holds the combined scores computed over all categorized
// matches, before the eligibility decision is applied.
type Aggregate struct {
	CategoryScores map[Category]CategoryScore `json:"category_scores" yaml:"category_scores"`

	// OverallScore is the weighted sum of category scores, in [0, 100].
	OverallScore float64 `json:"overall_score" yaml:"overall_score"`

	// CoveragePercent is the share of records with at least medium
	// confidence support, in [0, 100].
	CoveragePercent float64 `json:"coverage_percent" yaml:"coverage_percent"`

	// HighConfidenceRatio is the fraction of records in the high tier,
	// in [0, 1].
	HighConfidenceRatio float64 `json:"high_confidence_ratio" yaml:"high_confidence_ratio"`

	// TotalRecords is the number of match records aggregated.
	TotalRecords int `json:"total_records" yaml:"total_records"`
}

// HasData reports whether any match records were aggregated. When false
// all scores are zero and eligibility is denied without division errors.
func (a Aggregate) HasData() bool {
	return a.TotalRecords > 0
}

// Eligibility condition names, reported individually so a rejection can
// be explained, not just stated.
const (
	CondOverallSufficient    = "overall_sufficient"
	CondCoverageSufficient   = "coverage_sufficient"
	CondConfidenceSufficient = "confidence_sufficient"
)

// EligibilityResult is the terminal artifact of the scoring core.
// Everything downstream is a read-only consumer.
type EligibilityResult struct {
	OverallScore        float64                    `json:"overall_score" yaml:"overall_score"`
	CategoryScores      map[Category]CategoryScore `json:"category_scores" yaml:"category_scores"`
	CoveragePercent     float64                    `json:"coverage_percent" yaml:"coverage_percent"`
	HighConfidenceRatio float64                    `json:"high_confidence_ratio" yaml:"high_confidence_ratio"`

	// Eligible is the conjunction of all named conditions.
	Eligible bool `json:"eligible" yaml:"eligible"`

	// Conditions maps each named threshold condition to its outcome.
	Conditions map[string]bool `json:"conditions" yaml:"conditions"`
}

// MatchStatistics summarizes the confidence distribution of a match set.
type MatchStatistics struct {
	AverageScore float64 `json:"avg_score" yaml:"avg_score"`
	High         int     `json:"high_confidence" yaml:"high_confidence"`
	Medium       int     `json:"medium_confidence" yaml:"medium_confidence"`
	Low          int     `json:"low_confidence" yaml:"low_confidence"`
	Total        int     `json:"total_matches" yaml:"total_matches"`
}

// Qualification is one entry in the key-qualifications summary.
type Qualification struct {
	Type    string `json:"type" yaml:"type"`
	Details string `json:"details" yaml:"details"`
	Met     bool   `json:"met" yaml:"met"`
}

// Analysis is the full structured record handed to the report renderer:
// the eligibility verdict plus supporting narratives and statistics.
type Analysis struct {
	RFPDocumentID     string    `json:"rfp_document_id" yaml:"rfp_document_id"`
	CompanyDocumentID string    `json:"company_document_id" yaml:"company_document_id"`
	GeneratedAt       time.Time `json:"generated_at" yaml:"generated_at"`

	Eligibility EligibilityResult `json:"eligibility" yaml:"eligibility"`
	Statistics  MatchStatistics   `json:"statistics" yaml:"statistics"`

	Risks          []string        `json:"risks" yaml:"risks"`
	Checklist      []string        `json:"checklist" yaml:"checklist"`
	Qualifications []Qualification `json:"qualifications" yaml:"qualifications"`

	// Matches carries the categorized match set the verdict was derived
	// from, ordered by RFP sequence index.
	Matches []CategorizedMatch `json:"matches" yaml:"matches"`
}
