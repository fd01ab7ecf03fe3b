package route

import (
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
)

// LineChangePenalty is the cost in minutes added whenever consecutive segments use different lines
const LineChangePenalty = 8

type edge struct {
	to   string
	line string
	time int
}

type stationPair struct {
	a, b string
}

func pairOf(x, y string) stationPair {
	if y < x {
		x, y = y, x
	}
	return stationPair{x, y}
}

// Graph is an immutable adjacency index over one network.
// It is safe for concurrent readers once built.
type Graph struct {
	stations map[string]network.Station
	adj      map[string][]edge
	links    map[stationPair][]network.Connection
}

// NewGraph builds the adjacency index. Every connection becomes an edge in both
// directions; parallel edges on different lines are kept apart. Connections that
// reference unknown stations are ignored.
func NewGraph(stations []network.Station, connections []network.Connection) *Graph {
	g := &Graph{
		stations: make(map[string]network.Station, len(stations)),
		adj:      make(map[string][]edge, len(stations)),
		links:    make(map[stationPair][]network.Connection, len(connections)),
	}

	for _, s := range stations {
		g.stations[s.ID] = s
		g.adj[s.ID] = []edge{}
	}

	for _, c := range connections {
		if _, ok := g.adj[c.FromStation]; !ok {
			continue
		}
		if _, ok := g.adj[c.ToStation]; !ok {
			continue
		}
		g.adj[c.FromStation] = append(g.adj[c.FromStation], edge{to: c.ToStation, line: c.Line, time: c.TimeMins})
		g.adj[c.ToStation] = append(g.adj[c.ToStation], edge{to: c.FromStation, line: c.Line, time: c.TimeMins})

		key := pairOf(c.FromStation, c.ToStation)
		g.links[key] = append(g.links[key], c)
	}

	return g
}

// HasStation reports whether id is a node of the graph
func (g *Graph) HasStation(id string) bool {
	_, ok := g.stations[id]
	return ok
}

// Station returns the station with the given id
func (g *Graph) Station(id string) (network.Station, bool) {
	s, ok := g.stations[id]
	return s, ok
}

// Degree returns the number of directed edges leaving id
func (g *Graph) Degree(id string) int {
	return len(g.adj[id])
}

// StationCount returns the number of nodes
func (g *Graph) StationCount() int {
	return len(g.stations)
}

// ConnectionCount returns the number of undirected edges kept in the index
func (g *Graph) ConnectionCount() int {
	n := 0
	for _, cs := range g.links {
		n += len(cs)
	}
	return n
}
