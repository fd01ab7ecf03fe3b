package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/sujal3184/DelhiMetroNavigationApp/models"
)

// Pinger is a dependency the health check can probe, such as a shared cache
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports which network is being served and whether dependencies respond
type HealthHandler struct {
	snapshot    *models.NetworkSnapshot
	stations    int
	connections int
	deps        map[string]Pinger
}

// NewHealthHandler creates a new handler. deps may be nil.
func NewHealthHandler(snapshot *models.NetworkSnapshot, deps map[string]Pinger) *HealthHandler {
	return &HealthHandler{
		snapshot:    snapshot,
		stations:    len(snapshot.Stations),
		connections: len(snapshot.Connections),
		deps:        deps,
	}
}

// HealthResponse is the JSON response for GET /health
type HealthResponse struct {
	Status       string                  `json:"status"`
	Network      *models.NetworkSnapshot `json:"network"`
	Stations     int                     `json:"stations"`
	Connections  int                     `json:"connections"`
	Dependencies map[string]string       `json:"dependencies,omitempty"`
	Timestamp    time.Time               `json:"timestamp"`
}

// GetHealth handles GET /health
// Returns 503 when any dependency fails its ping
func (h *HealthHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:      "ok",
		Network:     h.snapshot,
		Stations:    h.stations,
		Connections: h.connections,
		Timestamp:   time.Now().UTC(),
	}

	status := http.StatusOK
	if len(h.deps) > 0 {
		resp.Dependencies = make(map[string]string, len(h.deps))
		for name, dep := range h.deps {
			if err := dep.Ping(ctx); err != nil {
				resp.Dependencies[name] = "error: " + err.Error()
				resp.Status = "error"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Dependencies[name] = "connected"
		}
	}

	writeJSON(w, status, resp)
}

// GetHealthz handles GET /healthz
func (h *HealthHandler) GetHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
