// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"streetscout/internal/adapters/observability"
	"streetscout/internal/app"
	"streetscout/internal/domain"
)

type Handlers struct {
	A      *app.AnalysisService
	Q      *app.QueryService
	Places domain.PlaceDataSource
	Repo   domain.AnalysisRepository
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/analyze", h.analyze)
	s.mux.Post("/v1/search", h.search)
	s.mux.Get("/v1/places/{id}", h.getPlace)
	s.mux.Get("/v1/analyses/{id}", h.getAnalysis)
	s.mux.Post("/v1/analytics", h.saveAnalytics)
}

var inputStripper = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")

// sanitize strips characters with HTML/SQL-injection potential from free text.
func sanitize(s string) string {
	return strings.TrimSpace(inputStripper.Replace(s))
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func (h *Handlers) analyze(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Location           string   `json:"location"`
		BusinessType       string   `json:"business_type"`
		TargetDemographics []string `json:"target_demographics"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return
	}
	if req.Location == "" || req.BusinessType == "" {
		writeProblem(w, http.StatusBadRequest, "Missing fields", "location and business_type are required")
		return
	}

	location := sanitize(req.Location)
	bt := domain.BusinessType(sanitize(req.BusinessType))

	analysis, err := h.A.AnalyzeLocation(r.Context(), location, bt, req.TargetDemographics)
	observability.ObserveAnalysis(string(bt), err)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidBusinessType):
			writeProblem(w, http.StatusBadRequest, "Invalid business type", err.Error())
		case errors.Is(err, domain.ErrInvalidCoordinate):
			writeProblem(w, http.StatusBadRequest, "Invalid location", err.Error())
		case errors.Is(err, domain.ErrUpstreamUnavailable):
			writeProblem(w, http.StatusBadGateway, "Upstream unavailable", "place data source failed")
		default:
			log.Error().Err(err).Msg("analysis failed")
			writeProblem(w, http.StatusInternalServerError, "Analysis failed", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"analysis_id":    analysis.ID,
		"recommendation": analysis.Recommendation,
		"success":        true,
	})
}

func (h *Handlers) search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query    string `json:"query"`
		Location string `json:"location"`
		Radius   int    `json:"radius"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return
	}
	if req.Location == "" {
		writeProblem(w, http.StatusBadRequest, "Missing fields", "location is required")
		return
	}
	if req.Radius == 0 {
		req.Radius = 1000
	}
	if req.Radius < 100 || req.Radius > 10000 {
		writeProblem(w, http.StatusBadRequest, "Invalid radius", "radius must be between 100 and 10000 meters")
		return
	}

	results, err := h.Places.Search(r.Context(), sanitize(req.Query), sanitize(req.Location), req.Radius, 50)
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Search failed", "place data source failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handlers) getPlace(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pv, err := h.Q.PlaceWithTips(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "place not found")
		return
	}
	if err != nil {
		writeProblem(w, http.StatusBadGateway, "Upstream unavailable", "place data source failed")
		return
	}
	writeJSON(w, http.StatusOK, pv)
}

func (h *Handlers) getAnalysis(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	a, err := h.Q.GetAnalysis(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		writeProblem(w, http.StatusNotFound, "Not Found", "analysis not found")
		return
	}
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("get analysis failed")
		writeProblem(w, http.StatusInternalServerError, "Lookup failed", "internal error")
		return
	}

	etag, body := calcETagAndBody(a)
	// If client already has this version, short-circuit.
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag) // include ETag on 304
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write getAnalysis body")
	}
}

func (h *Handlers) saveAnalytics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EventType string         `json:"event_type"`
		Data      map[string]any `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid body", "request body must be JSON")
		return
	}
	if req.EventType == "" {
		writeProblem(w, http.StatusBadRequest, "Missing fields", "event_type is required")
		return
	}

	if err := h.Repo.InsertEvent(r.Context(), sanitize(req.EventType), req.Data); err != nil {
		writeProblem(w, http.StatusInternalServerError, "Failed to save analytics", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}
