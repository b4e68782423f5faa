// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the rfp-engine CLI. The pipeline
// stages are subcommands: ingest loads documents into the semantic
// index, analyze scores an RFP against a company profile, and query
// inspects the index directly.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/rfp-engine/internal/logging"
	"github.com/pdiddy/rfp-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// log is built once in the root PersistentPreRunE and shared by all
// subcommands.
var log *zap.Logger

// rootCmd is the base command for the rfp-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "rfp-engine",
	Short: "Score a company profile against RFP requirements",
	Long: `rfp-engine evaluates whether a company's capability document satisfies
the requirements of a solicitation document (RFP).

Documents are split into fragments and loaded into a local semantic
index. The analyze command matches every RFP fragment against company
fragments, classifies requirements into categories, aggregates weighted
scores, and applies the eligibility decision, writing a structured
report with risks and an action checklist.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		verbose, _ := cmd.Flags().GetBool("verbose")

		l, err := logging.New(jsonLog, verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		log = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			log.Sync()
		}
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./rfp-engine.yaml or ~/.config/rfp-engine/config.yaml)")
	rootCmd.PersistentFlags().String("index-dir", "", "directory for the semantic index (default: index)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().Bool("json-log", false, "log in JSON instead of console format")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("rfp-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "rfp-engine"))
		}
	}

	viper.SetEnvPrefix("RFP_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// --- shared config helpers ---

func indexConfig(cmd *cobra.Command) types.IndexConfig {
	cfg := types.IndexConfig{
		IndexDir:   viper.GetString("index.dir"),
		MaxResults: viper.GetInt("index.max_results"),
	}
	if dir, _ := cmd.Flags().GetString("index-dir"); dir != "" {
		cfg.IndexDir = dir
	}
	if cfg.IndexDir == "" {
		cfg.IndexDir = "index"
	}
	return cfg
}

func chunkConfig() types.ChunkConfig {
	cfg := types.DefaultChunking()
	if viper.IsSet("chunking") {
		viper.UnmarshalKey("chunking", &cfg)
	}
	return cfg
}

// scoringConfig merges file settings over the default policy and
// validates the result. An invalid configuration is fatal here, before
// any document is touched.
func scoringConfig() (types.ScoringConfig, error) {
	cfg := types.DefaultScoring()
	if viper.IsSet("scoring") {
		if err := viper.UnmarshalKey("scoring", &cfg); err != nil {
			return types.ScoringConfig{}, fmt.Errorf("parsing scoring configuration: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return types.ScoringConfig{}, err
	}
	return cfg, nil
}

func reportConfig() types.ReportConfig {
	cfg := types.ReportConfig{
		ReportsDir: viper.GetString("reports.dir"),
		MaxAge:     viper.GetDuration("reports.max_age"),
	}
	if cfg.ReportsDir == "" {
		cfg.ReportsDir = "reports"
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 24 * time.Hour
	}
	return cfg
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
