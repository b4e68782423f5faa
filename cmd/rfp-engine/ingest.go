// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rfp-engine/internal/index"
	"github.com/pdiddy/rfp-engine/internal/ingest"
	"github.com/pdiddy/rfp-engine/pkg/types"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file...]",
	Short: "Load document text files into the semantic index",
	Long: `Ingest splits plain-text documents into fragments and loads them into
the local semantic index. Use --source to mark whether the files belong
to the RFP or the company profile. Unchanged files are skipped on
subsequent runs; changed files replace their previous fragments.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	sourceFlag, _ := cmd.Flags().GetString("source")
	source := types.SourceType(sourceFlag)
	if !source.Valid() {
		return fmt.Errorf("invalid --source %q: use %q or %q", sourceFlag, types.SourceRFP, types.SourceCompany)
	}

	docID, _ := cmd.Flags().GetString("doc-id")
	if docID != "" && len(args) > 1 {
		return fmt.Errorf("--doc-id requires exactly one file, got %d", len(args))
	}

	icfg := indexConfig(cmd)
	store, err := index.NewStore(icfg)
	if err != nil {
		return err
	}
	defer store.Close()

	reqs := make([]ingest.Request, len(args))
	for i, path := range args {
		reqs[i] = ingest.Request{Path: path, Source: source, DocumentID: docID}
	}

	summary := ingest.LoadBatch(context.Background(), store, reqs, chunkConfig(), icfg.IndexDir, log)

	fmt.Printf("loaded: %d, skipped: %d, failed: %d\n", summary.Loaded, summary.Skipped, summary.Failed)
	if summary.Failed > 0 {
		return fmt.Errorf("%d document(s) failed", summary.Failed)
	}
	return nil
}

func init() {
	ingestCmd.Flags().String("source", "", "document side: rfp or company (required)")
	ingestCmd.Flags().String("doc-id", "", "override the document ID derived from the file name")
	ingestCmd.MarkFlagRequired("source")

	rootCmd.AddCommand(ingestCmd)
}
