// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a log of completed conversions.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/folio/pkg/types"
)

const dbFile = "folio.db"

// defaultMaxResults bounds Recent when the caller passes no limit.
const defaultMaxResults = 20

// Store manages the conversion history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at
// cfg.HistoryDir/folio.db, creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.HistoryDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
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
	const stmt = `CREATE TABLE IF NOT EXISTS conversions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		input_dir TEXT NOT NULL,
		output_pdf TEXT NOT NULL,
		pages INTEGER NOT NULL,
		fallback_dpi INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`
	if _, err := s.db.Exec(stmt); err != nil {
		return fmt.Errorf("executing schema statement: %w", err)
	}
	return nil
}

// Record appends one completed conversion. A zero CreatedAt is filled with
// the current time.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO conversions (input_dir, output_pdf, pages, fallback_dpi, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		rec.InputDir, rec.OutputPDF, rec.Pages, rec.FallbackDPI,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion record: %w", err)
	}
	return nil
}

// Recent returns the most recent conversions, newest first. A non-positive
// limit uses the store default.
func (s *Store) Recent(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	if limit <= 0 {
		limit = s.maxResults
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT input_dir, output_pdf, pages, fallback_dpi, created_at
		 FROM conversions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var recs []types.ConversionRecord
	for rows.Next() {
		var rec types.ConversionRecord
		var created string
		if err := rows.Scan(&rec.InputDir, &rec.OutputPDF, &rec.Pages, &rec.FallbackDPI, &created); err != nil {
			return nil, fmt.Errorf("scanning conversion record: %w", err)
		}
		ts, err := time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("parsing created_at %q: %w", created, err)
		}
		rec.CreatedAt = ts
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversion records: %w", err)
	}
	return recs, nil
}
