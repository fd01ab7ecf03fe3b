package route

import (
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
)

// Step is one stop of an itinerary as shown to a rider
type Step struct {
	Index         int
	Station       network.Station
	Line          string // line the rider is on when reaching this stop
	IsInterchange bool
	ChangeTo      string // set when the rider switches line at this stop
}

// Steps expands an itinerary into its stops. Stations missing from index keep
// only their id.
func Steps(it Itinerary, index map[string]network.Station) []Step {
	steps := make([]Step, 0, len(it.Stations))
	for i, id := range it.Stations {
		station, ok := index[id]
		if !ok {
			station = network.Station{ID: id}
		}

		var line string
		switch {
		case i == 0 && len(it.Lines) > 0:
			line = it.Lines[0]
		case i > 0 && i-1 < len(it.Lines):
			line = it.Lines[i-1]
		case len(station.Lines) > 0:
			line = station.Lines[0]
		}

		step := Step{
			Index:         i,
			Station:       station,
			Line:          line,
			IsInterchange: station.IsInterchange(),
		}
		if i > 0 && i < len(it.Lines) && it.Lines[i] != line {
			step.ChangeTo = it.Lines[i]
		}
		steps = append(steps, step)
	}
	return steps
}

// Clone returns a deep copy so cached itineraries never share backing arrays with callers
func (it Itinerary) Clone() Itinerary {
	return Itinerary{
		Stations:    append([]string{}, it.Stations...),
		TotalTime:   it.TotalTime,
		Lines:       append([]string{}, it.Lines...),
		LineChanges: append([]string{}, it.LineChanges...),
	}
}
