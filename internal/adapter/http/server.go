// Package http exposes the scoring engine over the dashboard and
// dispatch-planning JSON API, plus health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/drought-relief-service/internal/domain"
	"github.com/couchcryptid/drought-relief-service/internal/engine"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const noDataMessage = "No analysis data yet. Call POST /analyze first."

// Server exposes the analysis API over HTTP.
type Server struct {
	httpServer *http.Server
	engine     *engine.Engine
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the analysis, dashboard, routes,
// health, readiness, and metrics endpoints.
func NewServer(addr string, eng *engine.Engine, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		engine: eng,
		logger: logger,
	}

	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /dashboard", s.handleDashboard)
	mux.HandleFunc("GET /routes", s.handleRoutes)
	// Original dashboard clients probe the root path for liveness.
	mux.HandleFunc("GET /{$}", s.handleHealth)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// --- request/response shapes (field names are the dashboard contract) ---

type analyzeRequest struct {
	Regions []domain.RegionInput `json:"regions"`
}

type summaryBlock struct {
	TotalRegions       int `json:"total_regions"`
	CriticalCount      int `json:"critical_count"`
	ModerateCount      int `json:"moderate_count"`
	SafeCount          int `json:"safe_count"`
	TotalTankersNeeded int `json:"total_tankers_needed"`
}

type analyzeResponse struct {
	Success  bool                  `json:"success"`
	BatchID  string                `json:"batch_id"`
	ScoredAt time.Time             `json:"scored_at"`
	Summary  summaryBlock          `json:"summary"`
	Regions  []domain.RegionResult `json:"regions"`
}

type kpiBlock struct {
	TotalRegionsAnalysed    int     `json:"total_regions_analysed"`
	AverageWSI              float64 `json:"average_wsi"`
	TotalTankersNeeded      int     `json:"total_tankers_needed"`
	TotalWaterDeficitLitres float64 `json:"total_water_deficit_litres"`
}

type stressDistribution struct {
	Critical int `json:"critical"`
	Moderate int `json:"moderate"`
	Safe     int `json:"safe"`
}

type dashboardResponse struct {
	Success            bool                  `json:"success"`
	BatchID            string                `json:"batch_id"`
	ScoredAt           time.Time             `json:"scored_at"`
	KPIs               kpiBlock              `json:"kpis"`
	StressDistribution stressDistribution    `json:"stress_distribution"`
	TopCriticalRegions []domain.RegionResult `json:"top_critical_regions"`
	AllRegions         []domain.RegionResult `json:"all_regions"`
}

type routesResponse struct {
	Success                bool                   `json:"success"`
	BatchID                string                 `json:"batch_id"`
	ScoredAt               time.Time              `json:"scored_at"`
	TotalTankersDispatched int                    `json:"total_tankers_dispatching"`
	Routes                 []engine.DispatchRoute `json:"routes"`
}

// --- handlers ---

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	batch, err := s.engine.ScoreBatch(r.Context(), req.Regions)
	if err != nil {
		// Every scoring failure is a submission problem, per the error
		// taxonomy: validation or empty batch, never an internal fault.
		if errors.Is(err, domain.ErrEmptyBatch) {
			writeError(w, http.StatusBadRequest, "No regions provided.")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary := engine.Summarize(batch)
	writeJSON(w, http.StatusOK, analyzeResponse{
		Success:  true,
		BatchID:  batch.ID,
		ScoredAt: batch.ScoredAt,
		Summary: summaryBlock{
			TotalRegions:       summary.TotalRegions,
			CriticalCount:      summary.CriticalCount,
			ModerateCount:      summary.ModerateCount,
			SafeCount:          summary.SafeCount,
			TotalTankersNeeded: summary.TotalTankersNeeded,
		},
		Regions: batch.Results,
	})
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	batch := s.engine.Snapshot()
	if batch == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": noDataMessage,
			"data":    map[string]any{},
		})
		return
	}

	summary := engine.Summarize(batch)
	writeJSON(w, http.StatusOK, dashboardResponse{
		Success:  true,
		BatchID:  batch.ID,
		ScoredAt: batch.ScoredAt,
		KPIs: kpiBlock{
			TotalRegionsAnalysed:    summary.TotalRegions,
			AverageWSI:              summary.AverageWSI,
			TotalTankersNeeded:      summary.TotalTankersNeeded,
			TotalWaterDeficitLitres: summary.TotalDeficitLitres,
		},
		StressDistribution: stressDistribution{
			Critical: summary.CriticalCount,
			Moderate: summary.ModerateCount,
			Safe:     summary.SafeCount,
		},
		TopCriticalRegions: summary.TopRegions,
		AllRegions:         batch.Results,
	})
}

func (s *Server) handleRoutes(w http.ResponseWriter, _ *http.Request) {
	batch := s.engine.Snapshot()
	if batch == nil {
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"message": noDataMessage,
			"routes":  []engine.DispatchRoute{},
		})
		return
	}

	routes := engine.DispatchPlan(batch)
	writeJSON(w, http.StatusOK, routesResponse{
		Success:                true,
		BatchID:                batch.ID,
		ScoredAt:               batch.ScoredAt,
		TotalTankersDispatched: engine.TotalTankers(routes),
		Routes:                 routes,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.engine.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response write
}
