// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// LocalName is the provenance of results from the local record store.
const LocalName = "Local"

// LocalStore is the read path of the local trademark record store.
// Implementations must be safe for concurrent reads.
type LocalStore interface {
	QueryTrademarks(ctx context.Context, filter types.TrademarkFilter) ([]types.TrademarkRecord, error)
}

// LocalSource searches trademarks held in the local record store.
type LocalSource struct {
	store LocalStore
	limit int
}

// NewLocalSource wraps store. limit caps the records read per search
// (0 uses the store's default).
func NewLocalSource(store LocalStore, limit int) (*LocalSource, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	return &LocalSource{store: store, limit: limit}, nil
}

// Name returns the source identifier.
func (s *LocalSource) Name() string { return LocalName }

// Applicable reports true: the local store holds marks of every jurisdiction.
func (s *LocalSource) Applicable(types.SearchQuery) bool { return true }

// Search reads matching records: names containing the query text, in the
// query's jurisdiction, covering every requested class.
func (s *LocalSource) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	records, err := s.store.QueryTrademarks(ctx, types.TrademarkFilter{
		NameContains: q.Text,
		Jurisdiction: q.Jurisdiction,
		Classes:      q.ClassificationCodes,
		Type:         q.TrademarkType,
		Status:       q.Status,
		Limit:        s.limit,
	})
	if err != nil {
		return nil, unavailable(LocalName, err)
	}

	results := make([]types.SearchResult, 0, len(records))
	for _, rec := range records {
		results = append(results, convertRecord(rec))
	}
	return results, nil
}

func convertRecord(rec types.TrademarkRecord) types.SearchResult {
	typ := rec.Type
	if !typ.Valid() {
		typ = canonicalType(string(rec.Type))
	}
	status := rec.Status
	if !status.Valid() {
		status = canonicalStatus(string(rec.Status))
	}
	return types.SearchResult{
		SourceID:            rec.ID,
		Name:                rec.Name,
		Description:         rec.Description,
		TrademarkType:       typ,
		Status:              status,
		Jurisdiction:        rec.Jurisdiction,
		ClassificationCodes: rec.NiceClasses,
		GoodsAndServices:    rec.GoodsServices,
		ApplicationNumber:   rec.ApplicationNumber,
		RegistrationNumber:  rec.RegistrationNumber,
		FilingDate:          rec.FilingDate,
		RegistrationDate:    rec.RegistrationDate,
		Owner:               rec.Owner,
		Provenance:          LocalName,
	}
}
