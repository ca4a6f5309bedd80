// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"strings"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// WIPOName is the provenance of Madrid System results.
const WIPOName = "WIPO"

// wipoJurisdiction is the office code recorded on international registrations.
const wipoJurisdiction = "WO"

// WIPOSource queries the WIPO Madrid System for international registrations.
// It is consulted for every query; a jurisdiction filter is sent as a
// designated country.
type WIPOSource struct {
	opts RegistryOptions
}

// NewWIPOSource returns the international registry source.
func NewWIPOSource(opts RegistryOptions) *WIPOSource {
	return &WIPOSource{opts: opts}
}

// Name returns the source identifier.
func (s *WIPOSource) Name() string { return WIPOName }

// Applicable reports whether q is within the configured scope. WIPO is
// unscoped by default since registrations may designate any jurisdiction.
func (s *WIPOSource) Applicable(q types.SearchQuery) bool {
	return inScope(s.opts.Jurisdictions, q)
}

// Search queries the Madrid System API and returns normalized results.
// Registrations that do not designate the queried jurisdiction are dropped.
func (s *WIPOSource) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	params := s.opts.baseParams(q)
	if q.Jurisdiction != "" {
		params.Set("countries", q.Jurisdiction)
	}

	var resp wipoResponse
	if err := s.opts.fetch(ctx, WIPOName, params, &resp); err != nil {
		return nil, unavailable(WIPOName, err)
	}

	results := make([]types.SearchResult, 0, len(resp.Results))
	for _, rec := range resp.Results {
		if q.Jurisdiction != "" && !designates(rec.DesignatedCountries, q.Jurisdiction) {
			continue
		}
		r := convertWIPO(rec)
		if !passesFilters(q, r) {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

func convertWIPO(rec wipoRecord) types.SearchResult {
	r := types.SearchResult{
		SourceID:            rec.ID,
		Name:                rec.Trademark,
		TrademarkType:       canonicalType(rec.Type),
		Status:              canonicalStatus(rec.Status),
		Jurisdiction:        wipoJurisdiction,
		ClassificationCodes: rec.NiceClasses,
		GoodsAndServices:    rec.GoodsServices,
		ApplicationNumber:   rec.BasicApplication.ApplicationNumber,
		RegistrationNumber:  rec.RegistrationNumber,
		FilingDate:          parseDate(rec.BasicApplication.ApplicationDate),
		RegistrationDate:    parseDate(rec.RegistrationDate),
		Owner:               rec.Holder,
		Provenance:          WIPOName,
	}
	if r.SourceID == "" {
		r.SourceID = rec.RegistrationNumber
	}
	if rec.Score != nil {
		r.SimilarityScore = clampScore(*rec.Score)
	}
	return r
}

// designates reports whether a registration without a designation list, or
// one that names j, covers jurisdiction j.
func designates(countries []string, j string) bool {
	if len(countries) == 0 {
		return true
	}
	for _, c := range countries {
		if strings.EqualFold(c, j) {
			return true
		}
	}
	return false
}

// WIPO Madrid API JSON structures.
type wipoResponse struct {
	TotalResults int          `json:"total_results"`
	Results      []wipoRecord `json:"results"`
}

type wipoRecord struct {
	ID                  string               `json:"id"`
	Trademark           string               `json:"trademark"`
	RegistrationNumber  string               `json:"international_registration_number"`
	RegistrationDate    string               `json:"international_registration_date"`
	Status              string               `json:"status"`
	Holder              string               `json:"holder"`
	NiceClasses         []int                `json:"nice_classes"`
	GoodsServices       string               `json:"goods_services"`
	DesignatedCountries []string             `json:"designated_countries"`
	Type                string               `json:"type"`
	ImageURL            string               `json:"image_url"`
	BasicApplication    wipoBasicApplication `json:"basic_application"`
	Score               *float64             `json:"score"`
}

type wipoBasicApplication struct {
	Country           string `json:"country"`
	ApplicationNumber string `json:"application_number"`
	ApplicationDate   string `json:"application_date"`
}
