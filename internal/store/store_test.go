// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{Path: filepath.Join(t.TempDir(), "db", "trademarks.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	n, err := s.Upsert(context.Background(), []types.TrademarkRecord{
		{ID: "gr-1", Name: "ACME", Type: types.TypeWord, Status: types.StatusRegistered, Jurisdiction: "gr", NiceClasses: []int{9, 35, 9}, Owner: "Acme Corp", FilingDate: date(2019, 1, 2), ExpirationDate: date(2029, 1, 2)},
		{ID: "gr-2", Name: "Acme Tools", Type: types.TypeCombined, Status: types.StatusSubmitted, Jurisdiction: "GR", NiceClasses: []int{8}},
		{ID: "eu-1", Name: "ACME PLUS", Type: types.TypeWord, Status: types.StatusRegistered, Jurisdiction: "EU", NiceClasses: []int{9, 42}},
		{ID: "eu-2", Name: "ZEBRA", Type: types.TypeFigurative, Status: types.StatusExpired, Jurisdiction: "EU", NiceClasses: []int{25}},
		{ID: "us-1", Name: "100%_ACME", Type: types.TypeWord, Status: types.StatusRegistered, Jurisdiction: "US"},
	})
	require.NoError(t, err)
	require.Equal(t, 5, n)
}

func ids(records []types.TrademarkRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

// --- Upsert / Get ---

func TestUpsertAndGet(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	rec, err := s.Get(context.Background(), "gr-1")
	require.NoError(t, err)
	assert.Equal(t, "ACME", rec.Name)
	assert.Equal(t, "GR", rec.Jurisdiction, "jurisdiction is uppercased")
	assert.Equal(t, []int{9, 35}, rec.NiceClasses, "classes are deduplicated")
	assert.Equal(t, "Acme Corp", rec.Owner)
	assert.Equal(t, date(2019, 1, 2), rec.FilingDate)
	assert.Nil(t, rec.RegistrationDate)
}

func TestUpsertReplacesExisting(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	_, err := s.Upsert(context.Background(), []types.TrademarkRecord{
		{ID: "gr-1", Name: "ACME RENAMED", Type: types.TypeWord, Status: types.StatusExpired, Jurisdiction: "GR", NiceClasses: []int{1}},
	})
	require.NoError(t, err)

	rec, err := s.Get(context.Background(), "gr-1")
	require.NoError(t, err)
	assert.Equal(t, "ACME RENAMED", rec.Name)
	assert.Equal(t, types.StatusExpired, rec.Status)
	assert.Equal(t, []int{1}, rec.NiceClasses)

	got, err := s.QueryTrademarks(context.Background(), types.TrademarkFilter{Classes: []int{9}})
	require.NoError(t, err)
	assert.NotContains(t, ids(got), "gr-1", "old classes are removed")
}

func TestUpsertInvalid(t *testing.T) {
	tests := []struct {
		name string
		rec  types.TrademarkRecord
	}{
		{"missing id", types.TrademarkRecord{Name: "ACME", Jurisdiction: "GR"}},
		{"missing name", types.TrademarkRecord{ID: "x", Jurisdiction: "GR"}},
		{"missing jurisdiction", types.TrademarkRecord{ID: "x", Name: "ACME"}},
		{"bad class", types.TrademarkRecord{ID: "x", Name: "ACME", Jurisdiction: "GR", NiceClasses: []int{0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testStore(t)
			_, err := s.Upsert(context.Background(), []types.TrademarkRecord{tt.rec})
			assert.ErrorIs(t, err, ErrInvalidRecord)
		})
	}
}

func TestUpsertNormalizesVocabulary(t *testing.T) {
	s := testStore(t)
	_, err := s.Upsert(context.Background(), []types.TrademarkRecord{
		{ID: "a", Name: "A", Jurisdiction: "GR", Type: "word", Status: "registered"},
		{ID: "b", Name: "B", Jurisdiction: "GR", Type: "hologram", Status: "in limbo"},
		{ID: "c", Name: "C", Jurisdiction: "GR"},
	})
	require.NoError(t, err)

	a, _ := s.Get(context.Background(), "a")
	assert.Equal(t, types.TypeWord, a.Type)
	assert.Equal(t, types.StatusRegistered, a.Status)

	b, _ := s.Get(context.Background(), "b")
	assert.Equal(t, types.TypeOther, b.Type)
	assert.Equal(t, types.StatusOther, b.Status)

	c, _ := s.Get(context.Background(), "c")
	assert.Equal(t, types.StatusDraft, c.Status)
}

func TestGetNotFound(t *testing.T) {
	s := testStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCorruptClasses(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	_, err := s.db.Exec(`UPDATE trademarks SET nice_classes = 'not json' WHERE id = ?`, "gr-1")
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "gr-1")
	assert.ErrorContains(t, err, "decoding classes of gr-1")
}

// --- Delete ---

func TestDelete(t *testing.T) {
	s := testStore(t)
	seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.Delete(ctx, "gr-1"))

	_, err := s.Get(ctx, "gr-1")
	assert.ErrorIs(t, err, ErrNotFound)

	var classes int
	require.NoError(t, s.db.QueryRow(
		`SELECT COUNT(*) FROM trademark_classes WHERE trademark_id = ?`, "gr-1").Scan(&classes))
	assert.Zero(t, classes, "classes are removed with the record")

	records, err := s.QueryTrademarks(ctx, types.TrademarkFilter{Classes: []int{9}})
	require.NoError(t, err)
	assert.Equal(t, []string{"eu-1"}, ids(records))
}

func TestDeleteNotFound(t *testing.T) {
	s := testStore(t)
	assert.ErrorIs(t, s.Delete(context.Background(), "nope"), ErrNotFound)
}

// --- QueryTrademarks ---

func TestQueryTrademarks(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	tests := []struct {
		name   string
		filter types.TrademarkFilter
		want   []string
	}{
		{"no filter returns all by name", types.TrademarkFilter{}, []string{"us-1", "gr-1", "eu-1", "gr-2", "eu-2"}},
		{"name substring ignores case", types.TrademarkFilter{NameContains: "acme"}, []string{"us-1", "gr-1", "eu-1", "gr-2"}},
		{"like wildcards are literal", types.TrademarkFilter{NameContains: "%_"}, []string{"us-1"}},
		{"jurisdiction", types.TrademarkFilter{NameContains: "acme", Jurisdiction: "gr"}, []string{"gr-1", "gr-2"}},
		{"single class", types.TrademarkFilter{Classes: []int{9}}, []string{"gr-1", "eu-1"}},
		{"all classes required", types.TrademarkFilter{Classes: []int{9, 35}}, []string{"gr-1"}},
		{"duplicate class in filter", types.TrademarkFilter{Classes: []int{9, 9, 35}}, []string{"gr-1"}},
		{"type", types.TrademarkFilter{Type: types.TypeFigurative}, []string{"eu-2"}},
		{"status", types.TrademarkFilter{NameContains: "ACME", Status: types.StatusRegistered}, []string{"us-1", "gr-1", "eu-1"}},
		{"limit", types.TrademarkFilter{Limit: 2}, []string{"us-1", "gr-1"}},
		{"offset", types.TrademarkFilter{Offset: 3, Limit: 10}, []string{"gr-2", "eu-2"}},
		{"no match", types.TrademarkFilter{NameContains: "QWERTY"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.QueryTrademarks(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestQueryTrademarksConcurrentReads(t *testing.T) {
	s := testStore(t)
	seed(t, s)

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.QueryTrademarks(context.Background(), types.TrademarkFilter{NameContains: "acme"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestQueryTrademarksUnicodeNames(t *testing.T) {
	s := testStore(t)
	_, err := s.Upsert(context.Background(), []types.TrademarkRecord{
		{ID: "gr-10", Name: "ΑΘΗΝΑ", Jurisdiction: "GR"},
		{ID: "gr-11", Name: "ΟΔΥΣΣΕΑΣ", Jurisdiction: "GR"},
		{ID: "fr-1", Name: "CAFÉ ÉTOILE", Jurisdiction: "FR"},
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"exact uppercase", "ΑΘΗΝΑ", []string{"gr-10"}},
		{"lowercase", "αθηνα", []string{"gr-10"}},
		{"mixed case", "Αθηνα", []string{"gr-10"}},
		{"substring", "θην", []string{"gr-10"}},
		{"final sigma", "οδυσσεας", []string{"gr-11"}},
		{"accented latin", "café", []string{"fr-1"}},
		{"accented substring", "étoile", []string{"fr-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := s.QueryTrademarks(context.Background(), types.TrademarkFilter{NameContains: tt.query})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(records))
		})
	}
}

// --- ExpiringSoon ---

func TestExpiringSoon(t *testing.T) {
	s := testStore(t)
	s.now = func() time.Time { return time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC) }

	_, err := s.Upsert(context.Background(), []types.TrademarkRecord{
		{ID: "soon", Name: "SOON", Jurisdiction: "GR", Status: types.StatusRegistered, ExpirationDate: date(2026, 4, 1)},
		{ID: "today", Name: "TODAY", Jurisdiction: "GR", Status: types.StatusRegistered, ExpirationDate: date(2026, 3, 1)},
		{ID: "later", Name: "LATER", Jurisdiction: "GR", Status: types.StatusRegistered, ExpirationDate: date(2027, 1, 1)},
		{ID: "past", Name: "PAST", Jurisdiction: "GR", Status: types.StatusRegistered, ExpirationDate: date(2026, 2, 1)},
		{ID: "pending", Name: "PENDING", Jurisdiction: "GR", Status: types.StatusSubmitted, ExpirationDate: date(2026, 3, 15)},
		{ID: "none", Name: "NONE", Jurisdiction: "GR", Status: types.StatusRegistered},
	})
	require.NoError(t, err)

	got, err := s.ExpiringSoon(context.Background(), 90*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, []string{"today", "soon"}, ids(got))
}

// --- ImportFile / Count ---

func TestImportFile(t *testing.T) {
	s := testStore(t)
	path := filepath.Join(t.TempDir(), "records.yaml")
	content := `- id: gr-100
  name: OLIVIA
  type: WORD
  status: REGISTERED
  jurisdiction: GR
  nice_classes: [29, 30]
  filing_date: 2020-05-06
  owner: Olivia SA
- id: eu-100
  name: OLIVIA GOLD
  type: COMBINED
  status: PUBLISHED
  jurisdiction: EU
  nice_classes: [29]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	n, err := s.ImportFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rec, err := s.Get(context.Background(), "gr-100")
	require.NoError(t, err)
	assert.Equal(t, []int{29, 30}, rec.NiceClasses)
	assert.Equal(t, date(2020, 5, 6), rec.FilingDate)

	counts, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"GR": 1, "EU": 1}, counts)
}

func TestImportFileErrors(t *testing.T) {
	s := testStore(t)

	_, err := s.ImportFile(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading import file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("id: [unterminated"), 0o644))
	_, err = s.ImportFile(context.Background(), path)
	assert.ErrorContains(t, err, "parsing import file")
}
