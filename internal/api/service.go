// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package api exposes trademark search, fee estimates, health, and metrics
// over HTTP as a small JSON service.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/pdiddy/trademark-engine/internal/fees"
	"github.com/pdiddy/trademark-engine/internal/search"
	"github.com/pdiddy/trademark-engine/pkg/types"
)

// RequestIDHeader carries the request id echoed on every response.
const RequestIDHeader = "X-Request-ID"

// Aggregator runs a normalized search. *search.Aggregator implements it.
type Aggregator interface {
	Aggregate(ctx context.Context, q types.SearchQuery) (types.CombinedSearchResult, error)
	SourceNames() []string
}

// Service serves the HTTP API.
type Service struct {
	// embedded servemux allows Service to act as one also
	*http.ServeMux

	agg    Aggregator
	logger *zap.Logger
	group  singleflight.Group
}

// NewService builds the routes. gatherer backs /metrics; a nil gatherer
// serves the default registry.
func NewService(agg Aggregator, gatherer prometheus.Gatherer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	s := &Service{
		ServeMux: http.NewServeMux(),
		agg:      agg,
		logger:   logger,
	}
	s.HandleFunc("GET /search", s.withRequestID(s.handleSearch))
	s.HandleFunc("GET /fees/national", s.withRequestID(s.handleNationalFees))
	s.HandleFunc("GET /fees/madrid", s.withRequestID(s.handleMadridFees))
	s.HandleFunc("GET /healthz", s.handleHealth)
	s.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return s
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error(), RequestID: w.Header().Get(RequestIDHeader)})
}

// withRequestID propagates or assigns a request id and logs the request.
func (s *Service) withRequestID(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		start := time.Now()
		next(w, r)
		s.logger.Debug("request served",
			zap.String("request_id", id),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

// handleSearch serves GET /search?q=&jurisdiction=&classes=&type=&status=.
// A degraded result is still a 200; clients read its degraded flag.
func (s *Service) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	classes, err := search.ParseClasses(params.Get("classes"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	q, err := search.Normalize(types.SearchRequest{
		Text:                params.Get("q"),
		Jurisdiction:        params.Get("jurisdiction"),
		ClassificationCodes: classes,
		TrademarkType:       params.Get("type"),
		Status:              params.Get("status"),
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// Identical concurrent queries share one fan-out. The shared call is
	// detached from any single client's cancellation; the aggregator's own
	// deadline still bounds it.
	ctx := context.WithoutCancel(r.Context())
	v, err, shared := s.group.Do(q.Key(), func() (any, error) {
		out, err := s.agg.Aggregate(ctx, q)
		return out, err
	})
	out, _ := v.(types.CombinedSearchResult)
	if err != nil && !errors.Is(err, search.ErrAllSourcesUnavailable) {
		s.logger.Error("search failed", zap.String("query", q.Text), zap.Error(err))
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if shared {
		s.logger.Debug("search shared", zap.String("key", q.Key()))
	}
	writeJSON(w, http.StatusOK, out)
}

// handleNationalFees serves GET /fees/national?classes=9,35.
func (s *Service) handleNationalFees(w http.ResponseWriter, r *http.Request) {
	classes, err := search.ParseClasses(r.URL.Query().Get("classes"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, err := fees.National(classes)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// handleMadridFees serves GET /fees/madrid?classes=9,35&countries=US,JP.
func (s *Service) handleMadridFees(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	classes, err := search.ParseClasses(params.Get("classes"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	f, err := fees.Madrid(classes, strings.Split(params.Get("countries"), ","))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

type healthResponse struct {
	Status  string   `json:"status"`
	Sources []string `json:"sources"`
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Sources: s.agg.SourceNames()})
}
