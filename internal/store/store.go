// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists trademark records in a local SQLite database and
// answers the filtered lookups behind the "Local" search source.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

const (
	defaultPath       = "data/trademarks.db"
	defaultMaxResults = 100
	dateLayout        = "2006-01-02"
)

// Store manages the trademark SQLite database. It is safe for concurrent
// use.
type Store struct {
	db         *sql.DB
	maxResults int

	// now is replaced in tests.
	now func() time.Time
}

// NewStore opens or creates the database at cfg.Path and creates the schema
// if it does not exist.
func NewStore(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults, now: time.Now}
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
		`CREATE TABLE IF NOT EXISTS trademarks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			name_folded TEXT NOT NULL,
			description TEXT,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			owner TEXT,
			application_number TEXT,
			registration_number TEXT,
			filing_date TEXT,
			registration_date TEXT,
			expiration_date TEXT,
			nice_classes TEXT,
			goods_services TEXT,
			jurisdiction TEXT NOT NULL,
			image_url TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS trademark_classes (
			trademark_id TEXT NOT NULL REFERENCES trademarks(id) ON DELETE CASCADE,
			class INTEGER NOT NULL,
			PRIMARY KEY (trademark_id, class)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trademarks_jurisdiction ON trademarks(jurisdiction)`,
		`CREATE INDEX IF NOT EXISTS idx_trademarks_status ON trademarks(status)`,
		`CREATE INDEX IF NOT EXISTS idx_trademarks_expiration ON trademarks(expiration_date)`,
		`CREATE INDEX IF NOT EXISTS idx_trademark_classes_class ON trademark_classes(class)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Upsert inserts or replaces records in a single transaction. Jurisdictions
// are uppercased and classes deduplicated. It returns the number of records
// written.
func (s *Store) Upsert(ctx context.Context, in []types.TrademarkRecord) (int, error) {
	records := make([]types.TrademarkRecord, len(in))
	copy(records, in)
	for i := range records {
		if err := normalizeRecord(&records[i]); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	upsert, err := tx.PrepareContext(ctx,
		`INSERT INTO trademarks (id, name, name_folded, description, type, status, owner,
			application_number, registration_number, filing_date, registration_date,
			expiration_date, nice_classes, goods_services, jurisdiction, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name, name_folded=excluded.name_folded, description=excluded.description, type=excluded.type,
			status=excluded.status, owner=excluded.owner,
			application_number=excluded.application_number,
			registration_number=excluded.registration_number,
			filing_date=excluded.filing_date, registration_date=excluded.registration_date,
			expiration_date=excluded.expiration_date, nice_classes=excluded.nice_classes,
			goods_services=excluded.goods_services, jurisdiction=excluded.jurisdiction,
			image_url=excluded.image_url`)
	if err != nil {
		return 0, fmt.Errorf("preparing upsert: %w", err)
	}
	defer upsert.Close()

	addClass, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO trademark_classes (trademark_id, class) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing class insert: %w", err)
	}
	defer addClass.Close()

	for _, rec := range records {
		classesJSON, err := json.Marshal(rec.NiceClasses)
		if err != nil {
			return 0, fmt.Errorf("encoding classes of %s: %w", rec.ID, err)
		}
		_, err = upsert.ExecContext(ctx,
			rec.ID, rec.Name, foldName(rec.Name), rec.Description, string(rec.Type), string(rec.Status), rec.Owner,
			rec.ApplicationNumber, rec.RegistrationNumber,
			formatDate(rec.FilingDate), formatDate(rec.RegistrationDate), formatDate(rec.ExpirationDate),
			string(classesJSON), rec.GoodsServices, rec.Jurisdiction, rec.ImageURL,
		)
		if err != nil {
			return 0, fmt.Errorf("upserting trademark %s: %w", rec.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM trademark_classes WHERE trademark_id = ?`, rec.ID); err != nil {
			return 0, fmt.Errorf("clearing classes of %s: %w", rec.ID, err)
		}
		for _, c := range rec.NiceClasses {
			if _, err := addClass.ExecContext(ctx, rec.ID, c); err != nil {
				return 0, fmt.Errorf("inserting class %d of %s: %w", c, rec.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing upsert: %w", err)
	}
	return len(records), nil
}

// Delete removes the record with the given id and its classes. It returns
// ErrNotFound when no such record exists.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trademarks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting trademark %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting trademark %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// ImportFile reads a YAML list of trademark records from path and upserts
// them.
func (s *Store) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading import file: %w", err)
	}
	var records []types.TrademarkRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return 0, fmt.Errorf("parsing import file %s: %w", path, err)
	}
	return s.Upsert(ctx, records)
}

// normalizeRecord validates rec and fills canonical defaults in place.
func normalizeRecord(rec *types.TrademarkRecord) error {
	rec.ID = strings.TrimSpace(rec.ID)
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Jurisdiction = strings.ToUpper(strings.TrimSpace(rec.Jurisdiction))
	if rec.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidRecord)
	}
	if rec.Name == "" {
		return fmt.Errorf("%w: %s has no name", ErrInvalidRecord, rec.ID)
	}
	if rec.Jurisdiction == "" {
		return fmt.Errorf("%w: %s has no jurisdiction", ErrInvalidRecord, rec.ID)
	}

	rec.Type = types.TrademarkType(strings.ToUpper(string(rec.Type)))
	if !rec.Type.Valid() {
		rec.Type = types.TypeOther
	}
	rec.Status = types.TrademarkStatus(strings.ToUpper(string(rec.Status)))
	if rec.Status == "" {
		rec.Status = types.StatusDraft
	} else if !rec.Status.Valid() {
		rec.Status = types.StatusOther
	}

	seen := make(map[int]bool, len(rec.NiceClasses))
	classes := rec.NiceClasses[:0:0]
	for _, c := range rec.NiceClasses {
		if c <= 0 {
			return fmt.Errorf("%w: %s has class %d", ErrInvalidRecord, rec.ID, c)
		}
		if !seen[c] {
			seen[c] = true
			classes = append(classes, c)
		}
	}
	rec.NiceClasses = classes
	return nil
}

func formatDate(t *time.Time) any {
	if t == nil || t.IsZero() {
		return nil
	}
	return t.UTC().Format(dateLayout)
}

func parseDate(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, ns.String)
	if err != nil {
		return nil
	}
	return &t
}
