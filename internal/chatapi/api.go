// Package chatapi exposes the chat orchestration and facility lookup
// endpoints.
package chatapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/gabay/internal/assistant"
	"github.com/linnemanlabs/gabay/internal/facilities"
	"github.com/linnemanlabs/gabay/internal/orchestrator"
)

// Responder builds the envelope for one chat turn.
type Responder interface {
	Respond(ctx context.Context, req orchestrator.Request) *assistant.Envelope
}

// ReplyGenerator produces the conversational reply text.
type ReplyGenerator interface {
	Reply(ctx context.Context, message string, lang assistant.Language) (string, error)
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger     log.Logger
	llm        ReplyGenerator
	orch       Responder
	facilities orchestrator.FacilitySearcher
}

// New creates a new API handler. The facility searcher is optional; with
// none, the facilities endpoint serves empty lists.
func New(logger log.Logger, llm ReplyGenerator, orch Responder, fac orchestrator.FacilitySearcher) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if orch == nil {
		panic(xerrors.New("orchestrator is required"))
	}
	return &API{
		logger:     logger,
		llm:        llm,
		orch:       orch,
		facilities: fac,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", a.handleChat)
		r.Get("/facilities", a.handleListFacilities)
	})
}

func (a *API) handleListFacilities(w http.ResponseWriter, r *http.Request) {
	span := trace.SpanFromContext(r.Context())

	q := facilities.Query{
		Type:     r.URL.Query().Get("type"),
		Barangay: r.URL.Query().Get("barangay"),
	}
	if lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64); err == nil {
		if lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64); err == nil {
			q.NearLat, q.NearLng, q.HasCoords = lat, lng, true
		}
	}
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		q.Limit = n
	}

	span.SetAttributes(
		attribute.String("gabay.facility.type", q.Type),
		attribute.Bool("gabay.facility.geo", q.HasCoords),
	)

	found := []assistant.FacilityCard{}
	if a.facilities != nil {
		var err error
		found, err = a.facilities.Search(r.Context(), q)
		if err != nil {
			a.logger.Error(r.Context(), err, "facility search failed", "type", q.Type)
			http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
			return
		}
		if found == nil {
			found = []assistant.FacilityCard{}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"facilities": found,
	})
}
