// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/Yossi/zmanim-scraper/internal/domain/model"
)

// ScheduleProvider exposes the generated schedule to the read endpoints.
type ScheduleProvider interface {
	Schedule() []*model.Day
}

// Server wires HTTP routes for the schedule API.
type Server struct {
	healthHandler   *HealthHandler
	scheduleHandler *ScheduleHandler
	metricsHandler  *MetricsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(provider ScheduleProvider) *Server {
	return &Server{
		healthHandler:   NewHealthHandler(),
		scheduleHandler: NewScheduleHandler(provider),
		metricsHandler:  NewMetricsHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/api/v1/schedule", MetricsMiddleware(s.scheduleHandler.HandleGetSchedule, "schedule"))
	mux.Handle("/metrics", s.metricsHandler.Handler())
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, msg string) {
	if msg == "" {
		msg = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
