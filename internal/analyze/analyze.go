// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze runs the full eligibility pipeline: match resolution,
// categorization, aggregation, decision, and narrative synthesis.
package analyze

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/rfp-engine/internal/classify"
	"github.com/pdiddy/rfp-engine/internal/match"
	"github.com/pdiddy/rfp-engine/internal/report"
	"github.com/pdiddy/rfp-engine/internal/score"
	"github.com/pdiddy/rfp-engine/pkg/types"
)

// Deps aggregates the collaborators the pipeline needs. The index is an
// injected capability so the core runs against any Searcher, live or
// fake.
type Deps struct {
	Searcher match.Searcher
	Logger   *zap.Logger
}

// Input names the two documents being compared and carries the RFP
// fragments to score.
type Input struct {
	RFPDocumentID     string
	CompanyDocumentID string
	RFPFragments      []types.Fragment
}

// Run executes the pipeline over the RFP fragments and returns the full
// analysis record. The only error path is an invalid scoring
// configuration; per-fragment index failures degrade to empty matches
// inside the resolver.
func Run(ctx context.Context, in Input, deps Deps, cfg types.ScoringConfig) (types.Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return types.Analysis{}, fmt.Errorf("invalid scoring configuration: %w", err)
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	records := match.Resolve(ctx, in.RFPFragments, deps.Searcher, cfg.TopK, logger)
	categorized := classify.Annotate(records)
	agg := score.Aggregate(categorized, cfg)
	eligibility := score.Decide(agg, cfg)

	logger.Info("analysis complete",
		zap.String("rfp", in.RFPDocumentID),
		zap.String("company", in.CompanyDocumentID),
		zap.Int("requirements", agg.TotalRecords),
		zap.Float64("overall_score", eligibility.OverallScore),
		zap.Bool("eligible", eligibility.Eligible),
	)

	return types.Analysis{
		RFPDocumentID:     in.RFPDocumentID,
		CompanyDocumentID: in.CompanyDocumentID,
		GeneratedAt:       time.Now().UTC(),
		Eligibility:       eligibility,
		Statistics:        score.Statistics(categorized),
		Risks:             report.Risks(agg),
		Checklist:         report.Checklist(categorized, agg, cfg),
		Qualifications:    report.Qualifications(agg),
		Matches:           categorized,
	}, nil
}
