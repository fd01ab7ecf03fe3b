package network

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// delhiJSON is the compiled-in Delhi Metro dataset.
//
//go:embed data/delhi.json
var delhiJSON []byte

// Station is a node in the metro graph
type Station struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Lines []string `json:"lines"` // First entry is used as a fallback line label
}

// IsInterchange reports whether the station is served by more than one line
func (s Station) IsInterchange() bool {
	return len(s.Lines) > 1
}

// Connection is an undirected, line-tagged edge between two stations
type Connection struct {
	FromStation string `json:"from"`
	ToStation   string `json:"to"`
	Line        string `json:"line"`
	TimeMins    int    `json:"time"`
}

type dataset struct {
	Stations    []Station    `json:"stations"`
	Connections []Connection `json:"connections"`
}

var (
	loadOnce sync.Once
	loaded   dataset
)

// Load returns the static Delhi Metro network.
// Every call returns fresh copies so callers can never mutate the shared dataset.
func Load() ([]Station, []Connection) {
	loadOnce.Do(func() {
		if err := json.Unmarshal(delhiJSON, &loaded); err != nil {
			panic(fmt.Sprintf("network: embedded dataset is malformed: %v", err))
		}
	})

	stations := make([]Station, len(loaded.Stations))
	for i, s := range loaded.Stations {
		s.Lines = append([]string(nil), s.Lines...)
		stations[i] = s
	}
	connections := append([]Connection(nil), loaded.Connections...)
	return stations, connections
}

// Decode reads a dataset in the embedded JSON layout and validates it
func Decode(r io.Reader) ([]Station, []Connection, error) {
	var d dataset
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, nil, fmt.Errorf("failed to decode network: %w", err)
	}
	if err := Validate(d.Stations, d.Connections); err != nil {
		return nil, nil, err
	}
	return d.Stations, d.Connections, nil
}

// Index maps station IDs to stations
func Index(stations []Station) map[string]Station {
	idx := make(map[string]Station, len(stations))
	for _, s := range stations {
		idx[s.ID] = s
	}
	return idx
}

// Validate checks the structural invariants of a network dataset
func Validate(stations []Station, connections []Connection) error {
	idx := make(map[string]Station, len(stations))
	for i, s := range stations {
		if s.ID == "" {
			return fmt.Errorf("station %d has an empty id", i)
		}
		if _, dup := idx[s.ID]; dup {
			return fmt.Errorf("duplicate station id %q", s.ID)
		}
		if len(s.Lines) == 0 {
			return fmt.Errorf("station %q has no lines", s.ID)
		}
		idx[s.ID] = s
	}

	type edgeKey struct{ a, b, line string }
	seen := make(map[edgeKey]bool, len(connections))
	for i, c := range connections {
		from, ok := idx[c.FromStation]
		if !ok {
			return fmt.Errorf("connection %d references unknown station %q", i, c.FromStation)
		}
		to, ok := idx[c.ToStation]
		if !ok {
			return fmt.Errorf("connection %d references unknown station %q", i, c.ToStation)
		}
		if c.FromStation == c.ToStation {
			return fmt.Errorf("connection %d is a self loop on %q", i, c.FromStation)
		}
		if c.Line == "" {
			return fmt.Errorf("connection %d (%s-%s) has no line", i, c.FromStation, c.ToStation)
		}
		if c.TimeMins <= 0 {
			return fmt.Errorf("connection %d (%s-%s) has non-positive time %d", i, c.FromStation, c.ToStation, c.TimeMins)
		}
		if !hasLine(from, c.Line) || !hasLine(to, c.Line) {
			return fmt.Errorf("connection %d line %s is not listed on both %q and %q", i, c.Line, c.FromStation, c.ToStation)
		}

		a, b := c.FromStation, c.ToStation
		if b < a {
			a, b = b, a
		}
		key := edgeKey{a, b, c.Line}
		if seen[key] {
			return fmt.Errorf("duplicate %s connection between %q and %q", c.Line, a, b)
		}
		seen[key] = true
	}
	return nil
}

func hasLine(s Station, line string) bool {
	for _, l := range s.Lines {
		if l == line {
			return true
		}
	}
	return false
}

// Search returns stations whose name contains query (case-insensitive), sorted by name.
// An empty query returns every station.
func Search(stations []Station, query string) []Station {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Station, 0, len(stations))
	for _, s := range stations {
		if q == "" || strings.Contains(strings.ToLower(s.Name), q) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindByName looks a station up by its exact display name, ignoring case
func FindByName(stations []Station, name string) (Station, bool) {
	for _, s := range stations {
		if strings.EqualFold(s.Name, strings.TrimSpace(name)) {
			return s, true
		}
	}
	return Station{}, false
}

// LineNames returns the distinct lines of the network in first-seen order
func LineNames(stations []Station) []string {
	seen := make(map[string]bool)
	var lines []string
	for _, s := range stations {
		for _, l := range s.Lines {
			if !seen[l] {
				seen[l] = true
				lines = append(lines, l)
			}
		}
	}
	return lines
}
