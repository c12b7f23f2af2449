package rest

import (
	"context"
	"net/http"
	"time"
)

// dbPinger defines the minimal interface for DB health checks.
type dbPinger interface {
	Ping(ctx context.Context) error
}

// lexiconSizer reports how many words the served snapshot holds.
type lexiconSizer interface {
	Len() int
}

// HealthHandler serves health check endpoints. Queries are answered from
// memory, so readiness depends on the loaded lexicon only; the database is
// reported as a component of /health.
type HealthHandler struct {
	db      dbPinger
	lexicon lexiconSizer
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db dbPinger, lexicon lexiconSizer, version string) *HealthHandler {
	return &HealthHandler{db: db, lexicon: lexicon, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Words   int    `json:"words,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe: 200 once a non-empty lexicon is loaded.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if h.lexicon.Len() == 0 {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check. An empty lexicon is "down" (503); an
// unreachable database with a loaded lexicon is "degraded" (200).
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := make(map[string]CompStatus, 2)
	overallStatus := "ok"

	start := time.Now()
	err := h.db.Ping(ctx)
	latency := time.Since(start)

	if err != nil {
		components["database"] = CompStatus{Status: "down"}
		overallStatus = "degraded"
	} else {
		components["database"] = CompStatus{
			Status:  "ok",
			Latency: latency.String(),
		}
	}

	status := http.StatusOK
	if n := h.lexicon.Len(); n > 0 {
		components["lexicon"] = CompStatus{Status: "ok", Words: n}
	} else {
		components["lexicon"] = CompStatus{Status: "down"}
		overallStatus = "down"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overallStatus,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
