// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/rfp-engine/internal/index"
	"github.com/pdiddy/rfp-engine/pkg/types"
)

var queryCmd = &cobra.Command{
	Use:   "query [text]",
	Short: "Query the semantic index directly",
	Long: `Query runs a nearest-neighbor search against the index and prints the
candidates with their distances and similarities. Useful for inspecting
what the analyze command will match against.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	sourceFlag, _ := cmd.Flags().GetString("source")
	docID, _ := cmd.Flags().GetString("doc")
	k, _ := cmd.Flags().GetInt("k")

	store, err := index.NewStore(indexConfig(cmd))
	if err != nil {
		return err
	}
	defer store.Close()

	filter := types.QueryFilter{
		Source:     types.SourceType(sourceFlag),
		DocumentID: docID,
	}

	candidates, err := store.Search(context.Background(), strings.Join(args, " "), filter, k)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(candidates)
	}

	if len(candidates) == 0 {
		fmt.Println("No candidates found.")
		return nil
	}

	fmt.Printf("%-4s  %-9s  %-10s  %-20s  %s\n", "Rank", "Distance", "Similarity", "Document", "Fragment")
	fmt.Println(strings.Repeat("-", 100))
	for i, c := range candidates {
		text := c.FragmentText
		if len(text) > 50 {
			text = text[:47] + "..."
		}
		doc := c.Metadata["document_id"]
		if len(doc) > 20 {
			doc = doc[:17] + "..."
		}
		fmt.Printf("%-4d  %9.4f  %10.4f  %-20s  %s\n", i+1, c.Distance, 1.0-c.Distance, doc, text)
	}
	fmt.Printf("\n%d candidates\n", len(candidates))
	return nil
}

func init() {
	queryCmd.Flags().String("source", string(types.SourceCompany), "filter by document side: rfp or company (empty for all)")
	queryCmd.Flags().String("doc", "", "filter by document ID")
	queryCmd.Flags().Int("k", 0, "maximum candidates (0 = index default)")
	queryCmd.Flags().Bool("json", false, "output candidates as JSON")

	rootCmd.AddCommand(queryCmd)
}
