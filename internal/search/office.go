// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"strings"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

// Source names used as provenance.
const (
	TMviewName   = "TMview"
	EUIPOName    = "EUIPO"
	NationalName = "OBI"
)

// OfficeSource queries a trademark office API that speaks the common office
// format: TMview (the national-office network), EUIPO (regional), and a
// single national office.
type OfficeSource struct {
	name string
	opts RegistryOptions

	// defaultJurisdiction fills records that omit their jurisdiction.
	defaultJurisdiction string

	// forwardJurisdiction sends the query's jurisdiction to the API.
	forwardJurisdiction bool
}

// NewTMviewSource returns the TMview source. It is consulted for every
// query and forwards the jurisdiction filter to the API.
func NewTMviewSource(opts RegistryOptions) *OfficeSource {
	return &OfficeSource{name: TMviewName, opts: opts, forwardJurisdiction: true}
}

// NewEUIPOSource returns the EUIPO source, scoped to the EU unless opts
// names other jurisdictions.
func NewEUIPOSource(opts RegistryOptions) *OfficeSource {
	if len(opts.Jurisdictions) == 0 {
		opts.Jurisdictions = []string{"EU"}
	}
	return &OfficeSource{name: EUIPOName, opts: opts, defaultJurisdiction: "EU"}
}

// NewNationalOfficeSource returns a national office source, scoped to
// Greece unless opts names another office code.
func NewNationalOfficeSource(opts RegistryOptions) *OfficeSource {
	if len(opts.Jurisdictions) == 0 {
		opts.Jurisdictions = []string{"GR"}
	}
	return &OfficeSource{
		name:                NationalName,
		opts:                opts,
		defaultJurisdiction: strings.ToUpper(opts.Jurisdictions[0]),
	}
}

// Name returns the source identifier.
func (s *OfficeSource) Name() string { return s.name }

// Applicable reports whether the query's jurisdiction is within the office's scope.
func (s *OfficeSource) Applicable(q types.SearchQuery) bool {
	return inScope(s.opts.Jurisdictions, q)
}

// Search queries the office API and returns normalized results.
func (s *OfficeSource) Search(ctx context.Context, q types.SearchQuery) ([]types.SearchResult, error) {
	params := s.opts.baseParams(q)
	if s.forwardJurisdiction && q.Jurisdiction != "" {
		params.Set("jurisdiction", q.Jurisdiction)
	}

	var resp officeResponse
	if err := s.opts.fetch(ctx, s.name, params, &resp); err != nil {
		return nil, unavailable(s.name, err)
	}

	results := make([]types.SearchResult, 0, len(resp.Results))
	for _, rec := range resp.Results {
		r := s.convert(rec)
		if !passesFilters(q, r) {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

func (s *OfficeSource) convert(rec officeRecord) types.SearchResult {
	r := types.SearchResult{
		SourceID:            rec.ID,
		Name:                rec.Trademark,
		Description:         rec.Description,
		TrademarkType:       canonicalType(rec.Type),
		Status:              canonicalStatus(rec.Status),
		Jurisdiction:        strings.ToUpper(rec.Jurisdiction),
		ClassificationCodes: rec.NiceClasses,
		GoodsAndServices:    rec.GoodsServices,
		ApplicationNumber:   rec.ApplicationNumber,
		RegistrationNumber:  rec.RegistrationNumber,
		FilingDate:          parseDate(rec.ApplicationDate),
		RegistrationDate:    parseDate(rec.RegistrationDate),
		Owner:               rec.Owner,
		Provenance:          s.name,
	}
	if r.SourceID == "" {
		r.SourceID = rec.ApplicationNumber
	}
	if r.Jurisdiction == "" {
		r.Jurisdiction = s.defaultJurisdiction
	}
	if rec.Score != nil {
		r.SimilarityScore = clampScore(*rec.Score)
	}
	return r
}

// Office API JSON structures.
type officeResponse struct {
	TotalResults int            `json:"total_results"`
	Results      []officeRecord `json:"results"`
}

type officeRecord struct {
	ID                 string   `json:"id"`
	Trademark          string   `json:"trademark"`
	Description        string   `json:"description"`
	ApplicationNumber  string   `json:"application_number"`
	ApplicationDate    string   `json:"application_date"`
	RegistrationNumber string   `json:"registration_number"`
	RegistrationDate   string   `json:"registration_date"`
	Status             string   `json:"status"`
	Owner              string   `json:"owner"`
	Jurisdiction       string   `json:"jurisdiction"`
	NiceClasses        []int    `json:"nice_classes"`
	GoodsServices      string   `json:"goods_services"`
	Type               string   `json:"type"`
	ImageURL           string   `json:"image_url"`
	Score              *float64 `json:"score"`
}
