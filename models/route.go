package models

import (
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/route"
)

// RouteStop is one stop of a route as rendered by clients
type RouteStop struct {
	Index         int    `json:"index"`
	StationID     string `json:"stationId"`
	StationName   string `json:"stationName"`
	Line          string `json:"line"`
	LineColor     string `json:"lineColor"`
	IsInterchange bool   `json:"isInterchange"`

	// Set only where the rider changes line
	ChangeTo      *string `json:"changeTo,omitempty"`
	ChangeToColor *string `json:"changeToColor,omitempty"`
}

// RouteResponse is the JSON response for GET /api/route
type RouteResponse struct {
	RequestID   string      `json:"requestId"`
	Found       bool        `json:"found"`
	Source      StationView `json:"source"`
	Destination StationView `json:"destination"`
	Mode        string      `json:"mode"` // "approximate" or "exact"

	Stations    []string    `json:"stations"`
	Lines       []string    `json:"lines"`
	LineChanges []string    `json:"lineChanges"`
	ChangeCount int         `json:"changeCount"`
	TotalTime   int         `json:"totalTimeMinutes"`
	Stops       []RouteStop `json:"stops"`
}

// NewRouteResponse assembles the rider-facing view of an itinerary
func NewRouteResponse(requestID string, src, dst network.Station, mode string, it route.Itinerary, index map[string]network.Station) RouteResponse {
	resp := RouteResponse{
		RequestID:   requestID,
		Found:       it.Found(),
		Source:      NewStationView(src),
		Destination: NewStationView(dst),
		Mode:        mode,
		Stations:    it.Stations,
		Lines:       it.Lines,
		LineChanges: it.LineChanges,
		ChangeCount: it.ChangeCount(),
		TotalTime:   it.TotalTime,
		Stops:       []RouteStop{},
	}

	for _, step := range route.Steps(it, index) {
		stop := RouteStop{
			Index:         step.Index,
			StationID:     step.Station.ID,
			StationName:   step.Station.Name,
			Line:          step.Line,
			LineColor:     GetLineColor(step.Line),
			IsInterchange: step.IsInterchange,
		}
		if step.ChangeTo != "" {
			changeTo := step.ChangeTo
			color := GetLineColor(changeTo)
			stop.ChangeTo = &changeTo
			stop.ChangeToColor = &color
		}
		resp.Stops = append(resp.Stops, stop)
	}

	return resp
}
