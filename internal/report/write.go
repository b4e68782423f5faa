// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

const (
	yamlFile = "report.yaml"
	jsonFile = "report.json"

	defaultMaxAge = 24 * time.Hour
)

// Ref identifies a written report on disk.
type Ref struct {
	ID   string
	Dir  string
	YAML string
	JSON string
}

// Write renders the analysis into its own report directory as both YAML
// and JSON. The rendered files are the hand-off point to any downstream
// formatter; this package owns no presentation format beyond them.
func Write(analysis types.Analysis, cfg types.ReportConfig) (Ref, error) {
	id := "rfp-analysis-" + uuid.NewString()
	dir := filepath.Join(cfg.ReportsDir, id)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Ref{}, fmt.Errorf("creating report directory: %w", err)
	}

	ref := Ref{
		ID:   id,
		Dir:  dir,
		YAML: filepath.Join(dir, yamlFile),
		JSON: filepath.Join(dir, jsonFile),
	}

	data, err := yaml.Marshal(&analysis)
	if err != nil {
		return Ref{}, fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(ref.YAML, data, 0o644); err != nil {
		return Ref{}, fmt.Errorf("writing %s: %w", ref.YAML, err)
	}

	jsonData, err := json.MarshalIndent(&analysis, "", "  ")
	if err != nil {
		return Ref{}, fmt.Errorf("marshaling report: %w", err)
	}
	if err := os.WriteFile(ref.JSON, jsonData, 0o644); err != nil {
		return Ref{}, fmt.Errorf("writing %s: %w", ref.JSON, err)
	}

	return ref, nil
}

// Cleanup removes report directories older than the configured
// retention period and returns how many were removed. A missing reports
// directory is not an error.
func Cleanup(cfg types.ReportConfig, now time.Time) (int, error) {
	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}

	entries, err := os.ReadDir(cfg.ReportsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading reports directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.RemoveAll(filepath.Join(cfg.ReportsDir, entry.Name())); err != nil {
			return removed, fmt.Errorf("removing %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
