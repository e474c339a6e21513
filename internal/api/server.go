// Package api provides the HTTP surface for querying and steering cities.
// GET endpoints are public (read-only observation).
// POST endpoints require a bearer token (admin control plane).
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/talgya/metropolis/internal/analytics"
	"github.com/talgya/metropolis/internal/engine"
)

// Server serves the city registry over HTTP.
type Server struct {
	Eng      *engine.Engine
	Port     int
	AdminKey string // Bearer token for POST endpoints. Empty = POST disabled.
}

// Start begins serving the HTTP API in a goroutine.
func (s *Server) Start() {
	analyticsLimiter := NewRateLimiter(60, time.Hour)

	mux := http.NewServeMux()

	// Public read endpoints.
	mux.HandleFunc("/api/v1/status", s.handleStatus)
	mux.HandleFunc("/api/v1/cities", s.handleCities)
	mux.HandleFunc("/api/v1/city/", s.handleCityRoutes(analyticsLimiter))
	mux.HandleFunc("/api/v1/compare", RateLimitMiddleware(analyticsLimiter, s.handleCompare))

	// Admin control plane.
	mux.HandleFunc("/api/v1/simulate", s.adminOnly(s.handleSimulate))
	mux.HandleFunc("/api/v1/build", s.adminOnly(s.handleBuild))
	mux.HandleFunc("/api/v1/specialize", s.adminOnly(s.handleSpecialize))

	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "admin_auth", s.AdminKey != "")

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()
}

// adminOnly gates a handler behind the bearer token and a POST method check.
func (s *Server) adminOnly(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if s.AdminKey == "" {
			http.Error(w, "admin endpoints disabled", http.StatusForbidden)
			return
		}
		auth := r.Header.Get("Authorization")
		if auth != "Bearer "+s.AdminKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response encode failed", "error", err)
	}
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	cities := s.Eng.AllCities()
	totalPop := int64(0)
	totalOutput := 0.0
	for _, c := range cities {
		totalPop += c.Population
		totalOutput += c.EconomicOutput
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"cities":           len(cities),
		"total_population": totalPop,
		"total_output":     totalOutput,
	})
}

func (s *Server) handleCities(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Eng.AllCities())
}

// handleCityRoutes dispatches /api/v1/city/{id}[/analytics|/events|/specializations].
func (s *Server) handleCityRoutes(limiter *RateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/v1/city/")
		id, sub, _ := strings.Cut(rest, "/")

		c := s.Eng.City(id)
		if c == nil {
			http.Error(w, "city not found", http.StatusNotFound)
			return
		}

		switch sub {
		case "":
			writeJSON(w, http.StatusOK, c)
		case "analytics":
			RateLimitMiddleware(limiter, func(w http.ResponseWriter, r *http.Request) {
				bundle := analytics.Generate(c, s.Eng.AllCities(), s.Eng.Catalog())
				writeJSON(w, http.StatusOK, bundle)
			})(w, r)
		case "events":
			limit := 50
			if v := r.URL.Query().Get("limit"); v != "" {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					limit = n
				}
			}
			writeJSON(w, http.StatusOK, s.Eng.CityEvents(id, limit))
		case "specializations":
			writeJSON(w, http.StatusOK, s.Eng.AvailableSpecializations(id))
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	a := s.Eng.City(r.URL.Query().Get("a"))
	b := s.Eng.City(r.URL.Query().Get("b"))
	if a == nil || b == nil {
		http.Error(w, "both cities must exist: ?a=<id>&b=<id>", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusOK, analytics.CompareCities(a, b))
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CityID string `json:"city_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	c, err := s.Eng.SimulateTimeStep(req.CityID)
	if err != nil {
		if errors.Is(err, engine.ErrCityNotFound) {
			http.Error(w, "city not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CityID      string  `json:"city_id"`
		InfraID     string  `json:"infrastructure_id"`
		TargetLevel float64 `json:"target_level"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	ok := s.Eng.BuildInfrastructure(req.CityID, req.InfraID, req.TargetLevel)
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}

func (s *Server) handleSpecialize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CityID           string `json:"city_id"`
		SpecializationID string `json:"specialization_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}
	ok := s.Eng.DevelopSpecialization(req.CityID, req.SpecializationID)
	writeJSON(w, http.StatusOK, map[string]bool{"success": ok})
}
