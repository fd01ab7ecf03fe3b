package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
)

// NetworkSnapshot is one stored copy of the metro network
type NetworkSnapshot struct {
	ID          uuid.UUID            `json:"snapshotId"`
	Source      string               `json:"source"` // "embedded", or whatever the importer recorded
	CreatedAt   time.Time            `json:"createdAt"`
	Stations    []network.Station    `json:"-"`
	Connections []network.Connection `json:"-"`
}

// StationView is a station as returned by the API
type StationView struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Lines         []string `json:"lines"`
	LineColors    []string `json:"lineColors"`
	IsInterchange bool     `json:"isInterchange"`
}

// NewStationView decorates a station with its line colors
func NewStationView(s network.Station) StationView {
	colors := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		colors = append(colors, GetLineColor(l))
	}
	return StationView{
		ID:            s.ID,
		Name:          s.Name,
		Lines:         s.Lines,
		LineColors:    colors,
		IsInterchange: s.IsInterchange(),
	}
}

// LineSummary describes one metro line
type LineSummary struct {
	Name         string `json:"name"`
	Color        string `json:"color"`
	StationCount int    `json:"stationCount"`
}

// Delhi Metro line colors
var MetroLineColors = map[string]string{
	"Red":     "#F94449",
	"Blue":    "#0041C2",
	"Green":   "#48A860",
	"Yellow":  "#FFD700",
	"Violet":  "#743089",
	"Magenta": "#FF00FF",
	"Pink":    "#FFC0CB",
}

// GetLineColor returns the color for a line, gray when unknown
func GetLineColor(line string) string {
	if color, ok := MetroLineColors[line]; ok {
		return color
	}
	return "#888888"
}
