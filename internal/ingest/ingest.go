// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest reads document text files, splits them into fragments,
// and loads them into the semantic index.
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/rfp-engine/internal/chunk"
	"github.com/pdiddy/rfp-engine/internal/index"
	"github.com/pdiddy/rfp-engine/pkg/types"
)

const metadataDir = "metadata"

// Request names one document to load.
type Request struct {
	// Path is the plain-text document file.
	Path string

	// Source marks which side of the comparison the document belongs to.
	Source types.SourceType

	// DocumentID overrides the default ID derived from the file name.
	DocumentID string
}

// DocumentMeta is the sidecar record written next to the index for each
// loaded document.
type DocumentMeta struct {
	ID            string           `yaml:"id"`
	SourceType    types.SourceType `yaml:"source_type"`
	Path          string           `yaml:"path"`
	FragmentCount int              `yaml:"fragment_count"`
	FileModTime   string           `yaml:"file_mod_time"`
	LoadedAt      time.Time        `yaml:"loaded_at"`
}

// Summary holds counts from a batch ingestion run.
type Summary struct {
	Loaded  int
	Skipped int
	Failed  int
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Loaded + s.Skipped + s.Failed
}

// LoadDocument chunks one document and stores its fragments, writing a
// metadata sidecar. A document whose file has not changed since the last
// load is skipped.
func LoadDocument(ctx context.Context, store *index.Store, req Request, ccfg types.ChunkConfig, indexDir string, logger *zap.Logger) (DocumentMeta, bool, error) {
	docID := req.DocumentID
	if docID == "" {
		docID = DefaultDocumentID(req.Path)
	}

	info, err := os.Stat(req.Path)
	if err != nil {
		return DocumentMeta{}, false, fmt.Errorf("reading %s: %w", req.Path, err)
	}
	modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

	metaPath := filepath.Join(indexDir, metadataDir, docID+".yaml")
	if prev, err := readMeta(metaPath); err == nil && prev.FileModTime == modTime {
		logger.Info("document unchanged, skipping",
			zap.String("document_id", docID),
			zap.String("path", req.Path),
		)
		return prev, true, nil
	}

	data, err := os.ReadFile(req.Path)
	if err != nil {
		return DocumentMeta{}, false, fmt.Errorf("reading %s: %w", req.Path, err)
	}

	fragments := chunk.Fragments(string(data), req.Source, docID, ccfg)
	if len(fragments) == 0 {
		return DocumentMeta{}, false, fmt.Errorf("document %s produced no fragments", req.Path)
	}

	if err := store.AddDocument(ctx, docID, req.Source, fragments); err != nil {
		return DocumentMeta{}, false, fmt.Errorf("indexing %s: %w", docID, err)
	}

	meta := DocumentMeta{
		ID:            docID,
		SourceType:    req.Source,
		Path:          req.Path,
		FragmentCount: len(fragments),
		FileModTime:   modTime,
		LoadedAt:      time.Now().UTC(),
	}
	if err := writeMeta(metaPath, meta); err != nil {
		return DocumentMeta{}, false, err
	}

	logger.Info("document loaded",
		zap.String("document_id", docID),
		zap.String("source", string(req.Source)),
		zap.Int("fragments", len(fragments)),
	)
	return meta, false, nil
}

// LoadBatch loads documents one by one. A failing document is counted
// and logged but never aborts the batch.
func LoadBatch(ctx context.Context, store *index.Store, reqs []Request, ccfg types.ChunkConfig, indexDir string, logger *zap.Logger) Summary {
	var summary Summary
	for _, req := range reqs {
		_, skipped, err := LoadDocument(ctx, store, req, ccfg, indexDir, logger)
		switch {
		case err != nil:
			logger.Warn("document failed",
				zap.String("path", req.Path),
				zap.Error(err),
			)
			summary.Failed++
		case skipped:
			summary.Skipped++
		default:
			summary.Loaded++
		}
	}
	return summary
}

// DefaultDocumentID derives a document ID from a file path: base name
// without extension, lowercased, spaces collapsed to dashes.
func DefaultDocumentID(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)
	return strings.Join(strings.Fields(base), "-")
}

func readMeta(path string) (DocumentMeta, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DocumentMeta{}, err
	}
	var meta DocumentMeta
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return DocumentMeta{}, err
	}
	return meta, nil
}

func writeMeta(path string, meta DocumentMeta) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating metadata directory: %w", err)
	}
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
