package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
	"github.com/sujal3184/DelhiMetroNavigationApp/models"
)

// ErrorResponse is the JSON error response structure
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// StationHandler serves the static station and line listings
type StationHandler struct {
	stations []network.Station
	index    map[string]network.Station
}

// NewStationHandler creates a handler over the loaded network
func NewStationHandler(stations []network.Station) *StationHandler {
	return &StationHandler{stations: stations, index: network.Index(stations)}
}

// ListStationsResponse is the JSON response structure for GET /api/stations
type ListStationsResponse struct {
	Stations []models.StationView `json:"stations"`
	Count    int                  `json:"count"`
}

// ListLinesResponse is the JSON response structure for GET /api/lines
type ListLinesResponse struct {
	Lines []models.LineSummary `json:"lines"`
	Count int                  `json:"count"`
}

// ListStations handles GET /api/stations
// Optional q parameter filters by name (case-insensitive substring); results are sorted by name
func (h *StationHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	matches := network.Search(h.stations, r.URL.Query().Get("q"))

	views := make([]models.StationView, 0, len(matches))
	for _, s := range matches {
		views = append(views, models.NewStationView(s))
	}

	// The network only changes on redeploy
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, ListStationsResponse{Stations: views, Count: len(views)})
}

// GetStation handles GET /api/stations/{stationId}
func (h *StationHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	stationID := chi.URLParam(r, "stationId")

	station, ok := h.index[stationID]
	if !ok {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error: "Station not found",
			Details: map[string]interface{}{
				"stationId": stationID,
			},
		})
		return
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, models.NewStationView(station))
}

// ListLines handles GET /api/lines
func (h *StationHandler) ListLines(w http.ResponseWriter, r *http.Request) {
	counts := make(map[string]int)
	for _, s := range h.stations {
		for _, l := range s.Lines {
			counts[l]++
		}
	}

	names := network.LineNames(h.stations)
	lines := make([]models.LineSummary, 0, len(names))
	for _, name := range names {
		lines = append(lines, models.LineSummary{
			Name:         name,
			Color:        models.GetLineColor(name),
			StationCount: counts[name],
		})
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeJSON(w, http.StatusOK, ListLinesResponse{Lines: lines, Count: len(lines)})
}
