// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

const selectColumns = `SELECT t.id, t.name, t.description, t.type, t.status, t.owner,
	t.application_number, t.registration_number, t.filing_date, t.registration_date,
	t.expiration_date, t.nice_classes, t.goods_services, t.jurisdiction, t.image_url
	FROM trademarks t`

// Get returns the record with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (types.TrademarkRecord, error) {
	row := s.db.QueryRowContext(ctx, selectColumns+` WHERE t.id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.TrademarkRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return types.TrademarkRecord{}, fmt.Errorf("reading trademark %s: %w", id, err)
	}
	return rec, nil
}

// QueryTrademarks returns records matching every non-zero field of filter,
// ordered by name then id. Name matching is a case-insensitive substring
// match; a record must carry all requested classes.
func (s *Store) QueryTrademarks(ctx context.Context, filter types.TrademarkFilter) ([]types.TrademarkRecord, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(selectColumns)
	qb.WriteString(` WHERE 1=1`)

	if filter.NameContains != "" {
		qb.WriteString(` AND t.name_folded LIKE ? ESCAPE '\'`)
		args = append(args, "%"+escapeLike(foldName(filter.NameContains))+"%")
	}
	if filter.Jurisdiction != "" {
		qb.WriteString(` AND t.jurisdiction = ?`)
		args = append(args, strings.ToUpper(filter.Jurisdiction))
	}
	if filter.Type != "" {
		qb.WriteString(` AND t.type = ?`)
		args = append(args, string(filter.Type))
	}
	if filter.Status != "" {
		qb.WriteString(` AND t.status = ?`)
		args = append(args, string(filter.Status))
	}

	// Every requested class must be present (AND semantics).
	classes := dedupInts(filter.Classes)
	if len(classes) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(classes)), ",")
		qb.WriteString(` AND (SELECT COUNT(*) FROM trademark_classes c
			WHERE c.trademark_id = t.id AND c.class IN (` + placeholders + `)) = ?`)
		for _, c := range classes {
			args = append(args, c)
		}
		args = append(args, len(classes))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = s.maxResults
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	qb.WriteString(` ORDER BY t.name, t.id LIMIT ? OFFSET ?`)
	args = append(args, limit, offset)

	return s.queryRecords(ctx, qb.String(), args...)
}

// ExpiringSoon returns registered marks whose expiration date falls between
// today and today+within, soonest first.
func (s *Store) ExpiringSoon(ctx context.Context, within time.Duration) ([]types.TrademarkRecord, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	until := today.Add(within)

	return s.queryRecords(ctx,
		selectColumns+` WHERE t.status = ?
			AND t.expiration_date IS NOT NULL
			AND t.expiration_date >= ? AND t.expiration_date <= ?
			ORDER BY t.expiration_date, t.id`,
		string(types.StatusRegistered), today.Format(dateLayout), until.Format(dateLayout),
	)
}

// Count returns the number of stored records per jurisdiction.
func (s *Store) Count(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT jurisdiction, COUNT(*) FROM trademarks GROUP BY jurisdiction`)
	if err != nil {
		return nil, fmt.Errorf("counting trademarks: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var (
			j string
			n int
		)
		if err := rows.Scan(&j, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[j] = n
	}
	return counts, rows.Err()
}

func (s *Store) queryRecords(ctx context.Context, query string, args ...any) ([]types.TrademarkRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying trademarks: %w", err)
	}
	defer rows.Close()

	records := []types.TrademarkRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning trademark: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trademarks: %w", err)
	}
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (types.TrademarkRecord, error) {
	var (
		rec         types.TrademarkRecord
		typ, status string

		description, owner, appNo, regNo sql.NullString
		filed, registered, expires       sql.NullString
		classesJSON, goods, imageURL     sql.NullString
	)
	err := sc.Scan(
		&rec.ID, &rec.Name, &description, &typ, &status, &owner,
		&appNo, &regNo, &filed, &registered, &expires,
		&classesJSON, &goods, &rec.Jurisdiction, &imageURL,
	)
	if err != nil {
		return rec, err
	}

	rec.Type = types.TrademarkType(typ)
	rec.Status = types.TrademarkStatus(status)
	rec.Description = description.String
	rec.Owner = owner.String
	rec.ApplicationNumber = appNo.String
	rec.RegistrationNumber = regNo.String
	rec.FilingDate = parseDate(filed)
	rec.RegistrationDate = parseDate(registered)
	rec.ExpirationDate = parseDate(expires)
	rec.GoodsServices = goods.String
	rec.ImageURL = imageURL.String
	if classesJSON.Valid && classesJSON.String != "" {
		if err := json.Unmarshal([]byte(classesJSON.String), &rec.NiceClasses); err != nil {
			return rec, fmt.Errorf("decoding classes of %s: %w", rec.ID, err)
		}
	}
	return rec, nil
}

// foldName lowercases s with Unicode case mapping. SQLite's LOWER only
// folds ASCII, so names are folded here and stored in name_folded. Greek
// final sigma folds to the medial form so either spelling matches.
func foldName(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "ς", "σ")
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func dedupInts(xs []int) []int {
	seen := make(map[int]bool, len(xs))
	var out []int
	for _, x := range xs {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}
