package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/route"
	"github.com/sujal3184/DelhiMetroNavigationApp/models"
)

// RouteEngine defines the route computations the handler needs
type RouteEngine interface {
	RouteApproximate(ctx context.Context, sourceID, destID string) (route.Itinerary, error)
	RouteExact(ctx context.Context, sourceID, destID string) (route.Itinerary, error)
	Stations() []network.Station
	Options() route.Options
}

const (
	modeApproximate = "approximate"
	modeExact       = "exact"
)

// RouteHandler handles HTTP requests for route finding
type RouteHandler struct {
	engine   RouteEngine
	stations []network.Station
	index    map[string]network.Station
}

// NewRouteHandler creates a new handler over the given engine
func NewRouteHandler(engine RouteEngine) *RouteHandler {
	stations := engine.Stations()
	return &RouteHandler{
		engine:   engine,
		stations: stations,
		index:    network.Index(stations),
	}
}

// GetRoute handles GET /api/route
// Stations are given by id (from, to) or by display name (from_name, to_name).
// mode=exact|approximate overrides the server's default search.
func (h *RouteHandler) GetRoute(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	from, ok := h.resolve(w, "from", q.Get("from"), q.Get("from_name"))
	if !ok {
		return
	}
	to, ok := h.resolve(w, "to", q.Get("to"), q.Get("to_name"))
	if !ok {
		return
	}

	if from == to {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "Both Source and Destination are same",
			Details: map[string]interface{}{
				"from": from,
				"to":   to,
			},
		})
		return
	}

	mode := q.Get("mode")
	if mode == "" {
		mode = modeApproximate
		if h.engine.Options().Exact {
			mode = modeExact
		}
	}

	var it route.Itinerary
	var err error
	switch mode {
	case modeApproximate:
		it, err = h.engine.RouteApproximate(ctx, from, to)
	case modeExact:
		it, err = h.engine.RouteExact(ctx, from, to)
	default:
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "mode must be 'approximate' or 'exact'",
			Details: map[string]interface{}{
				"mode": mode,
			},
		})
		return
	}

	if err != nil {
		if errors.Is(err, route.ErrStationNotFound) {
			writeJSON(w, http.StatusNotFound, ErrorResponse{
				Error: "Station not found",
				Details: map[string]interface{}{
					"from": from,
					"to":   to,
				},
			})
			return
		}

		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: "Failed to compute route",
			Details: map[string]interface{}{
				"internal": err.Error(),
			},
		})
		return
	}

	resp := models.NewRouteResponse(uuid.NewString(), h.index[from], h.index[to], mode, it, h.index)

	// Each response carries its own requestId
	w.Header().Set("Cache-Control", "no-store")
	writeJSON(w, http.StatusOK, resp)
}

// resolve turns an id or display name parameter into a station id, writing an
// error response when it cannot.
func (h *RouteHandler) resolve(w http.ResponseWriter, param, id, name string) (string, bool) {
	if id != "" {
		if _, ok := h.index[id]; !ok {
			writeJSON(w, http.StatusNotFound, ErrorResponse{
				Error: "Station not found",
				Details: map[string]interface{}{
					param: id,
				},
			})
			return "", false
		}
		return id, true
	}

	if name != "" {
		station, ok := network.FindByName(h.stations, name)
		if !ok {
			writeJSON(w, http.StatusNotFound, ErrorResponse{
				Error: "Station not found",
				Details: map[string]interface{}{
					param + "_name": name,
				},
			})
			return "", false
		}
		return station.ID, true
	}

	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Error: param + " parameter is required",
	})
	return "", false
}
