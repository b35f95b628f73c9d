// Package http exposes the transit engine over a small JSON API.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Anonyfox/celestine-sub000/pkg/domain"
	"github.com/Anonyfox/celestine-sub000/pkg/search"
)

// Engine defines the interface for the transit-timing core.
type Engine interface {
	SearchTransits(ctx context.Context, points []domain.NatalPoint, start, end time.Time, cfg search.Config) (*search.Result, error)
	FindStations(ctx context.Context, body domain.Body, start, end time.Time) ([]domain.StationPoint, error)
	FindRetrogradePeriods(ctx context.Context, body domain.Body, start, end time.Time) ([]domain.RetrogradePeriod, error)
}

// Server wires the engine into chi routes.
type Server struct {
	Engine  Engine
	Version string
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, version string) http.Handler {
	server := &Server{Engine: engine, Version: version}

	r := chi.NewRouter()
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/v1/search", server.Search)
	r.Get("/v1/stations", server.GetStations)
	r.Get("/v1/retrogrades", server.GetRetrogrades)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SearchRequest is the POST /v1/search payload.
type SearchRequest struct {
	Start  time.Time           `json:"start"`
	End    time.Time           `json:"end"`
	Points []domain.NatalPoint `json:"points"`
	Config search.Config       `json:"config"`
}

// Search handles the POST /v1/search request.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var body SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		slog.Warn("Search: Invalid request body", "error", err)
		return
	}

	result, err := s.Engine.SearchTransits(r.Context(), body.Points, body.Start, body.End, body.Config)
	if err != nil {
		status := statusFor(err)
		http.Error(w, fmt.Sprintf("Search error: %v", err), status)
		if status == http.StatusInternalServerError {
			slog.Error("Search failed", "error", err)
		}
		return
	}

	writeJSON(w, result)
}

// GetStations handles the GET /v1/stations request.
func (s *Server) GetStations(w http.ResponseWriter, r *http.Request) {
	body, start, end, ok := rangeParams(w, r)
	if !ok {
		return
	}

	stations, err := s.Engine.FindStations(r.Context(), body, start, end)
	if err != nil {
		status := statusFor(err)
		http.Error(w, fmt.Sprintf("Stations error: %v", err), status)
		if status == http.StatusInternalServerError {
			slog.Error("FindStations failed", "error", err)
		}
		return
	}
	if stations == nil {
		stations = []domain.StationPoint{}
	}

	writeJSON(w, stations)
}

// GetRetrogrades handles the GET /v1/retrogrades request.
func (s *Server) GetRetrogrades(w http.ResponseWriter, r *http.Request) {
	body, start, end, ok := rangeParams(w, r)
	if !ok {
		return
	}

	periods, err := s.Engine.FindRetrogradePeriods(r.Context(), body, start, end)
	if err != nil {
		status := statusFor(err)
		http.Error(w, fmt.Sprintf("Retrogrades error: %v", err), status)
		if status == http.StatusInternalServerError {
			slog.Error("FindRetrogradePeriods failed", "error", err)
		}
		return
	}
	if periods == nil {
		periods = []domain.RetrogradePeriod{}
	}

	writeJSON(w, periods)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"app":     "celestine-http",
		"version": s.Version,
	})
}

// rangeParams parses the body/start/end query triple shared by the GET routes.
func rangeParams(w http.ResponseWriter, r *http.Request) (domain.Body, time.Time, time.Time, bool) {
	body := domain.Body(r.URL.Query().Get("body"))
	if !body.Valid() {
		http.Error(w, fmt.Sprintf("Unknown body %q", body), http.StatusBadRequest)
		return "", time.Time{}, time.Time{}, false
	}

	start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "Invalid start: expected RFC3339", http.StatusBadRequest)
		return "", time.Time{}, time.Time{}, false
	}
	end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "Invalid end: expected RFC3339", http.StatusBadRequest)
		return "", time.Time{}, time.Time{}, false
	}
	return body, start, end, true
}

// statusFor maps validation errors to 400 and everything else to 500.
func statusFor(err error) int {
	for _, sentinel := range []error{
		domain.ErrUnknownBody,
		domain.ErrUnknownAspect,
		domain.ErrNegativeOrb,
		domain.ErrDateOutOfRange,
		domain.ErrEmptyRange,
	} {
		if errors.Is(err, sentinel) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
