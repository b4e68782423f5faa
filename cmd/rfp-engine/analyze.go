// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/rfp-engine/internal/analyze"
	"github.com/pdiddy/rfp-engine/internal/chunk"
	"github.com/pdiddy/rfp-engine/internal/index"
	"github.com/pdiddy/rfp-engine/internal/ingest"
	"github.com/pdiddy/rfp-engine/internal/report"
	"github.com/pdiddy/rfp-engine/pkg/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score an RFP against a company profile and write a report",
	Long: `Analyze loads the RFP and the company profile, matches every RFP
fragment against company fragments in the semantic index, and applies
the eligibility decision. The full analysis record, including category
scores, risks, and an action checklist, is written as a report in YAML
and JSON.`,
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	rfpPath, _ := cmd.Flags().GetString("rfp")
	companyPath, _ := cmd.Flags().GetString("company")

	scfg, err := scoringConfig()
	if err != nil {
		return err
	}

	icfg := indexConfig(cmd)
	store, err := index.NewStore(icfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	ccfg := chunkConfig()

	companyMeta, _, err := ingest.LoadDocument(ctx, store,
		ingest.Request{Path: companyPath, Source: types.SourceCompany}, ccfg, icfg.IndexDir, log)
	if err != nil {
		return fmt.Errorf("loading company profile: %w", err)
	}

	rfpMeta, _, err := ingest.LoadDocument(ctx, store,
		ingest.Request{Path: rfpPath, Source: types.SourceRFP}, ccfg, icfg.IndexDir, log)
	if err != nil {
		return fmt.Errorf("loading RFP: %w", err)
	}

	rfpText, err := os.ReadFile(rfpPath)
	if err != nil {
		return fmt.Errorf("reading RFP: %w", err)
	}
	fragments := chunk.Fragments(string(rfpText), types.SourceRFP, rfpMeta.ID, ccfg)

	in := analyze.Input{
		RFPDocumentID:     rfpMeta.ID,
		CompanyDocumentID: companyMeta.ID,
		RFPFragments:      fragments,
	}
	analysis, err := analyze.Run(ctx, in, analyze.Deps{Searcher: store, Logger: log}, scfg)
	if err != nil {
		return err
	}

	rcfg := reportConfig()
	if removed, err := report.Cleanup(rcfg, time.Now()); err != nil {
		log.Warn("report cleanup failed", zap.Error(err))
	} else if removed > 0 {
		log.Info("removed old reports", zap.Int("count", removed))
	}

	ref, err := report.Write(analysis, rcfg)
	if err != nil {
		return err
	}

	printAnalysis(analysis, ref)
	return nil
}

func printAnalysis(analysis types.Analysis, ref report.Ref) {
	elig := analysis.Eligibility

	verdict := "NOT ELIGIBLE"
	if elig.Eligible {
		verdict = "ELIGIBLE"
	}
	fmt.Printf("\n%s  (overall score %.1f)\n\n", verdict, elig.OverallScore)

	fmt.Printf("%-12s  %8s  %8s  %7s\n", "Category", "Matched", "Total", "Score")
	for _, cat := range types.AllCategories() {
		cs := elig.CategoryScores[cat]
		fmt.Printf("%-12s  %8d  %8d  %6.1f%%\n", cat, cs.MatchedCount, cs.TotalCount, cs.Score)
	}

	fmt.Printf("\ncoverage: %.1f%%, high confidence: %.0f%%\n", elig.CoveragePercent, 100*elig.HighConfidenceRatio)
	for _, name := range []string{
		types.CondOverallSufficient,
		types.CondCoverageSufficient,
		types.CondConfidenceSufficient,
	} {
		mark := "fail"
		if elig.Conditions[name] {
			mark = "pass"
		}
		fmt.Printf("  %-24s %s\n", name, mark)
	}

	fmt.Println("\nRisks:")
	for _, r := range analysis.Risks {
		fmt.Printf("  - %s\n", r)
	}

	if len(analysis.Checklist) > 0 {
		fmt.Println("\nChecklist:")
		for _, c := range analysis.Checklist {
			fmt.Printf("  - %s\n", c)
		}
	}

	fmt.Printf("\nReport written to %s\n", ref.Dir)
}

func init() {
	analyzeCmd.Flags().String("rfp", "", "path to the RFP text file (required)")
	analyzeCmd.Flags().String("company", "", "path to the company profile text file (required)")
	analyzeCmd.MarkFlagRequired("rfp")
	analyzeCmd.MarkFlagRequired("company")

	rootCmd.AddCommand(analyzeCmd)
}
