// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index stores document fragments in SQLite and answers
// nearest-neighbor queries over them. The FTS5 BM25 rank is folded into
// a bounded dissimilarity so consumers see distances in [0, 1].
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/rfp-engine/pkg/types"
)

const dbFile = "fragments.db"

// Store manages the fragment index database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the index database at
// cfg.IndexDir/fragments.db, creating the schema if needed.
func NewStore(cfg types.IndexConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id TEXT PRIMARY KEY,
			source_type TEXT NOT NULL,
			fragment_count INTEGER NOT NULL,
			loaded_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS fragments (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			document_id TEXT NOT NULL REFERENCES documents(id),
			source_type TEXT NOT NULL,
			seq INTEGER NOT NULL,
			content TEXT NOT NULL,
			UNIQUE(document_id, seq)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fragments_source ON fragments(source_type)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='fragments_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE fragments_fts USING fts5(content, content=fragments, content_rowid=rowid)`,
			`CREATE TRIGGER fragments_ai AFTER INSERT ON fragments BEGIN
				INSERT INTO fragments_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
			`CREATE TRIGGER fragments_ad AFTER DELETE ON fragments BEGIN
				INSERT INTO fragments_fts(fragments_fts, rowid, content) VALUES('delete', old.rowid, old.content);
			END`,
			`CREATE TRIGGER fragments_au AFTER UPDATE ON fragments BEGIN
				INSERT INTO fragments_fts(fragments_fts, rowid, content) VALUES('delete', old.rowid, old.content);
				INSERT INTO fragments_fts(rowid, content) VALUES (new.rowid, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// AddDocument stores a document's fragments, replacing any previous
// fragments of the same document so re-ingestion is an update, not a
// duplicate.
func (s *Store) AddDocument(ctx context.Context, documentID string, source types.SourceType, fragments []types.Fragment) error {
	if documentID == "" {
		return fmt.Errorf("document ID is required")
	}
	if !source.Valid() {
		return fmt.Errorf("unknown source type %q", source)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fragments WHERE document_id = ?`, documentID); err != nil {
		return fmt.Errorf("deleting old fragments: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO documents (id, source_type, fragment_count, loaded_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			source_type=excluded.source_type,
			fragment_count=excluded.fragment_count,
			loaded_at=excluded.loaded_at`,
		documentID, string(source), len(fragments), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting document: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fragments (document_id, source_type, seq, content) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, frag := range fragments {
		if _, err := stmt.ExecContext(ctx, documentID, string(source), frag.SequenceIndex, frag.Text); err != nil {
			return fmt.Errorf("inserting fragment %d: %w", frag.SequenceIndex, err)
		}
	}

	return tx.Commit()
}

// FragmentCount returns the number of stored fragments matching the
// filter.
func (s *Store) FragmentCount(ctx context.Context, filter types.QueryFilter) (int, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT count(*) FROM fragments WHERE 1=1`)
	if filter.Source != "" {
		qb.WriteString(` AND source_type = ?`)
		args = append(args, string(filter.Source))
	}
	if filter.DocumentID != "" {
		qb.WriteString(` AND document_id = ?`)
		args = append(args, filter.DocumentID)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, qb.String(), args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting fragments: %w", err)
	}
	return count, nil
}

// Search returns up to k candidates for the query text, best first, with
// BM25 rank normalized into a [0, 1] distance. Query text with no
// indexable tokens yields zero candidates, not an error.
func (s *Store) Search(ctx context.Context, text string, filter types.QueryFilter, k int) ([]types.MatchCandidate, error) {
	if k <= 0 {
		k = s.maxResults
	}

	match := ftsQuery(text)
	if match == "" {
		return nil, nil
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT f.content, f.document_id, f.source_type, f.seq, fragments_fts.rank
		FROM fragments_fts
		JOIN fragments f ON f.rowid = fragments_fts.rowid
		WHERE fragments_fts MATCH ?`)
	args = append(args, match)

	if filter.Source != "" {
		qb.WriteString(` AND f.source_type = ?`)
		args = append(args, string(filter.Source))
	}
	if filter.DocumentID != "" {
		qb.WriteString(` AND f.document_id = ?`)
		args = append(args, filter.DocumentID)
	}

	qb.WriteString(` ORDER BY fragments_fts.rank LIMIT ?`)
	args = append(args, k)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying index: %w", err)
	}
	defer rows.Close()

	var candidates []types.MatchCandidate
	for rows.Next() {
		var (
			content    string
			documentID string
			sourceType string
			seq        int
			rank       float64
		)
		if err := rows.Scan(&content, &documentID, &sourceType, &seq, &rank); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		candidates = append(candidates, types.MatchCandidate{
			FragmentText: content,
			Distance:     rankDistance(rank),
			Metadata: map[string]string{
				"document_id":    documentID,
				"source_type":    sourceType,
				"sequence_index": strconv.Itoa(seq),
			},
		})
	}

	return candidates, rows.Err()
}

// rankDistance maps a BM25 rank (negative, more negative is better) to a
// dissimilarity in (0, 1]: distance = 1 / (1 + |rank|). The mapping is
// monotonic, so candidate ordering is preserved.
func rankDistance(rank float64) float64 {
	score := -rank
	if score < 0 {
		score = 0
	}
	return 1.0 / (1.0 + score)
}

// ftsQuery converts free text into an FTS5 OR-query of quoted tokens.
// Quoting keeps punctuation in fragment text from being parsed as FTS
// syntax.
func ftsQuery(text string) string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})

	seen := make(map[string]bool, len(fields))
	var tokens []string
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, `"`+f+`"`)
	}
	return strings.Join(tokens, " OR ")
}
