// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest keeps a SQLite record of generated fixtures: which source
// produced which output, whether the conversion succeeded, and a checksum of
// the file that was written.
package manifest

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pandoc-fixtures/pkg/types"
)

// Record is one row of the manifest, keyed by output path.
type Record struct {
	Output      string                 `json:"output" yaml:"output"`
	Source      string                 `json:"source" yaml:"source"`
	Status      types.ConversionStatus `json:"status" yaml:"status"`
	SHA256      string                 `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	Size        int64                  `json:"size" yaml:"size"`
	Converter   string                 `json:"converter,omitempty" yaml:"converter,omitempty"`
	GeneratedAt time.Time              `json:"generated_at" yaml:"generated_at"`
}

// Store manages the manifest database.
type Store struct {
	db        *sql.DB
	path      string
	converter string
	now       func() time.Time
}

// Open opens or creates the manifest database at path, creating its parent
// directory and the schema when needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating manifest directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening manifest: %w", err)
	}

	s := &Store{db: db, path: path, now: time.Now}
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

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// SetConverter sets the converter description stored with new records,
// e.g. "pandoc 3.1.11".
func (s *Store) SetConverter(desc string) { s.converter = desc }

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS fixtures (
			output TEXT PRIMARY KEY,
			source TEXT NOT NULL,
			status TEXT NOT NULL,
			sha256 TEXT,
			size INTEGER NOT NULL DEFAULT 0,
			converter TEXT,
			generated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fixtures_source ON fixtures(source)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the outcome of converting f. For a successful conversion the
// output file is hashed; a failed conversion is stored without checksum.
func (s *Store) Record(f types.Fixture, status types.ConversionStatus) error {
	rec := Record{
		Output:      f.Output,
		Source:      f.Source,
		Status:      status,
		Converter:   s.converter,
		GeneratedAt: s.now().UTC(),
	}
	if status == types.ConversionDone {
		sum, size, err := hashFile(f.Output)
		if err != nil {
			return err
		}
		rec.SHA256 = sum
		rec.Size = size
	}
	return s.Put(context.Background(), rec)
}

// Put inserts rec or replaces the existing row for the same output.
func (s *Store) Put(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO fixtures (output, source, status, sha256, size, converter, generated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(output) DO UPDATE SET
			source=excluded.source, status=excluded.status, sha256=excluded.sha256,
			size=excluded.size, converter=excluded.converter, generated_at=excluded.generated_at`,
		rec.Output, rec.Source, string(rec.Status), rec.SHA256, rec.Size, rec.Converter,
		rec.GeneratedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", rec.Output, err)
	}
	return nil
}

// List returns all records ordered by output path. A non-empty status
// restricts the result to that status.
func (s *Store) List(ctx context.Context, status types.ConversionStatus) ([]Record, error) {
	query := `SELECT output, source, status, sha256, size, converter, generated_at FROM fixtures`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(status))
	}
	query += ` ORDER BY output`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing fixtures: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var (
			rec            Record
			st             string
			sum, converter sql.NullString
			generatedAt    string
		)
		if err := rows.Scan(&rec.Output, &rec.Source, &st, &sum, &rec.Size, &converter, &generatedAt); err != nil {
			return nil, fmt.Errorf("scanning fixture row: %w", err)
		}
		rec.Status = types.ConversionStatus(st)
		rec.SHA256 = sum.String
		rec.Converter = converter.String
		if t, err := time.Parse(time.RFC3339Nano, generatedAt); err == nil {
			rec.GeneratedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Summary counts records by status.
func (s *Store) Summary(ctx context.Context) (map[types.ConversionStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, count(*) FROM fixtures GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("summarizing fixtures: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.ConversionStatus]int)
	for rows.Next() {
		var st string
		var n int
		if err := rows.Scan(&st, &n); err != nil {
			return nil, fmt.Errorf("scanning summary row: %w", err)
		}
		counts[types.ConversionStatus(st)] = n
	}
	return counts, rows.Err()
}

func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("hashing %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
