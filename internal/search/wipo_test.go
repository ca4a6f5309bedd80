// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/trademark-engine/pkg/types"
)

const wipoFixture = `{
  "total_results": 3,
  "results": [
    {
      "id": "1234567",
      "trademark": "ACME",
      "international_registration_number": "1234567",
      "international_registration_date": "2019-05-20",
      "status": "Registered",
      "holder": "Acme Holdings SA",
      "nice_classes": [9],
      "designated_countries": ["US", "JP", "EU"],
      "type": "word",
      "basic_application": {"country": "CH", "application_number": "CH-55", "application_date": "2019-01-10"}
    },
    {
      "trademark": "ACME ROAD",
      "international_registration_number": "7654321",
      "status": "Expired",
      "designated_countries": ["CN"]
    },
    {
      "id": "999",
      "trademark": "ACMEX",
      "status": "Pending"
    }
  ]
}`

func TestWIPOSearch(t *testing.T) {
	var countries string
	srv := officeServer(t, wipoFixture, func(r *http.Request) {
		countries = r.URL.Query().Get("countries")
	})
	src := NewWIPOSource(RegistryOptions{BaseURL: srv.URL})

	results, err := src.Search(context.Background(), types.SearchQuery{Text: "ACME"})
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Empty(t, countries)

	r := results[0]
	assert.Equal(t, "1234567", r.SourceID)
	assert.Equal(t, "1234567", r.RegistrationNumber)
	assert.Equal(t, "CH-55", r.ApplicationNumber)
	assert.Equal(t, "WO", r.Jurisdiction)
	assert.Equal(t, "Acme Holdings SA", r.Owner)
	assert.Equal(t, types.StatusRegistered, r.Status)
	assert.Equal(t, types.TypeWord, r.TrademarkType)
	assert.Equal(t, WIPOName, r.Provenance)
	require.NotNil(t, r.FilingDate)
	assert.Equal(t, "2019-01-10", r.FilingDate.Format("2006-01-02"))
	require.NotNil(t, r.RegistrationDate)
	assert.Equal(t, "2019-05-20", r.RegistrationDate.Format("2006-01-02"))

	assert.Equal(t, "7654321", results[1].SourceID, "falls back to registration number")
	assert.Equal(t, types.StatusExpired, results[1].Status)
	assert.Equal(t, types.StatusSubmitted, results[2].Status)
}

func TestWIPODesignationFilter(t *testing.T) {
	var countries string
	srv := officeServer(t, wipoFixture, func(r *http.Request) {
		countries = r.URL.Query().Get("countries")
	})
	src := NewWIPOSource(RegistryOptions{BaseURL: srv.URL})

	results, err := src.Search(context.Background(), types.SearchQuery{Text: "ACME", Jurisdiction: "JP"})
	require.NoError(t, err)
	assert.Equal(t, "JP", countries)

	// ACME designates JP, ACME ROAD only CN, ACMEX carries no designation list.
	var ids []string
	for _, r := range results {
		ids = append(ids, r.SourceID)
	}
	assert.Equal(t, []string{"1234567", "999"}, ids)
}

func TestWIPOApplicable(t *testing.T) {
	assert.True(t, NewWIPOSource(RegistryOptions{}).Applicable(types.SearchQuery{Text: "x", Jurisdiction: "GR"}))

	scoped := NewWIPOSource(RegistryOptions{Jurisdictions: []string{"US"}})
	assert.False(t, scoped.Applicable(types.SearchQuery{Text: "x", Jurisdiction: "GR"}))
}

func TestDesignates(t *testing.T) {
	assert.True(t, designates(nil, "US"))
	assert.True(t, designates([]string{"us", "JP"}, "US"))
	assert.False(t, designates([]string{"CN"}, "US"))
}
