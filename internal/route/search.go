package route

import (
	"container/heap"
	"log"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
)

// Itinerary is the result of a route query.
// An empty Stations slice means no route was found.
type Itinerary struct {
	Stations    []string `json:"stations"`
	TotalTime   int      `json:"totalTime"`
	Lines       []string `json:"lines"`       // Lines[i] is used between Stations[i] and Stations[i+1]
	LineChanges []string `json:"lineChanges"` // Lines with consecutive duplicates collapsed
}

// Found reports whether the itinerary holds a route
func (it Itinerary) Found() bool {
	return len(it.Stations) > 0
}

// ChangeCount returns the number of line changes along the route
func (it Itinerary) ChangeCount() int {
	if len(it.LineChanges) == 0 {
		return 0
	}
	return len(it.LineChanges) - 1
}

// FindRoute builds a graph from the given network and returns the least-cost route
// between two stations using the single arrival line per station search.
func FindRoute(sourceID, destID string, stations []network.Station, connections []network.Connection) Itinerary {
	return NewGraph(stations, connections).ShortestPath(sourceID, destID)
}

// ShortestPath runs the label-setting search that keeps one arrival line per station
// (the line of the cheapest known path). This can miss routes where a dearer arrival
// on a different line avoids a later interchange; see ShortestPathByLine.
//
// The result is therefore not symmetric. On the Delhi network samaypur-badli to ina
// costs 42 (Yellow throughout) but ina to samaypur-badli costs 48: Azadpur is first
// settled by Pink, so the Yellow leg beyond it carries a change penalty.
func (g *Graph) ShortestPath(sourceID, destID string) Itinerary {
	return g.shortestPath(sourceID, destID, LineChangePenalty)
}

// ShortestPathByLine runs the search over (station, arrival line) states, which
// always prices interchanges exactly.
func (g *Graph) ShortestPathByLine(sourceID, destID string) Itinerary {
	return g.shortestPathByLine(sourceID, destID, LineChangePenalty)
}

func (g *Graph) shortestPath(sourceID, destID string, penalty int) Itinerary {
	// A station missing from best has infinite cost.
	best := map[string]int{sourceID: 0}
	previous := make(map[string]string)
	arrivalLine := make(map[string]string)
	visited := make(map[string]bool)

	seq := 0
	pq := &frontier{}
	heap.Push(pq, &frontierItem{station: sourceID, cost: 0, seq: seq})

	for pq.Len() > 0 {
		current := heap.Pop(pq).(*frontierItem).station
		if current == destID {
			break
		}
		if visited[current] {
			continue
		}
		visited[current] = true

		currentLine, hasLine := arrivalLine[current]
		for _, e := range g.adj[current] {
			cost := best[current] + e.time
			if hasLine && currentLine != e.line {
				cost += penalty
			}

			if old, ok := best[e.to]; !ok || cost < old {
				best[e.to] = cost
				previous[e.to] = current
				arrivalLine[e.to] = e.line
				seq++
				heap.Push(pq, &frontierItem{station: e.to, cost: cost, seq: seq})
			}
		}
	}

	if sourceID == destID {
		return Itinerary{Stations: []string{sourceID}, Lines: []string{}, LineChanges: []string{}}
	}
	cost, reached := best[destID]
	if !reached {
		return emptyItinerary()
	}

	path := []string{destID}
	for current := destID; current != sourceID; {
		prev, ok := previous[current]
		if !ok || len(path) > len(best) {
			log.Printf("Warning: broken predecessor chain from %s to %s at %s", sourceID, destID, current)
			return emptyItinerary()
		}
		path = append(path, prev)
		current = prev
	}
	reverse(path)

	lines := make([]string, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		lines = append(lines, g.segmentLine(path[i], path[i+1], arrivalLine[path[i+1]]))
	}

	return Itinerary{
		Stations:    path,
		TotalTime:   cost,
		Lines:       lines,
		LineChanges: distinctLines(lines),
	}
}

type lineState struct {
	station string
	line    string
}

func (g *Graph) shortestPathByLine(sourceID, destID string, penalty int) Itinerary {
	start := lineState{station: sourceID}
	best := map[lineState]int{start: 0}
	previous := make(map[lineState]lineState)
	visited := make(map[lineState]bool)

	seq := 0
	pq := &frontier{}
	heap.Push(pq, &frontierItem{station: sourceID, cost: 0, seq: seq})

	var goal *lineState
	for pq.Len() > 0 {
		item := heap.Pop(pq).(*frontierItem)
		current := lineState{station: item.station, line: item.line}
		if visited[current] {
			continue
		}
		if current.station == destID {
			goal = &current
			break
		}
		visited[current] = true

		for _, e := range g.adj[current.station] {
			cost := best[current] + e.time
			if current.line != "" && current.line != e.line {
				cost += penalty
			}

			next := lineState{station: e.to, line: e.line}
			if old, ok := best[next]; !ok || cost < old {
				best[next] = cost
				previous[next] = current
				seq++
				heap.Push(pq, &frontierItem{station: e.to, line: e.line, cost: cost, seq: seq})
			}
		}
	}

	if goal == nil {
		return emptyItinerary()
	}
	if *goal == start {
		return Itinerary{Stations: []string{sourceID}, Lines: []string{}, LineChanges: []string{}}
	}

	path := []string{goal.station}
	var lines []string
	for current := *goal; current != start; {
		prev, ok := previous[current]
		if !ok || len(path) > len(best) {
			log.Printf("Warning: broken predecessor chain from %s to %s at %s", sourceID, destID, current.station)
			return emptyItinerary()
		}
		lines = append(lines, current.line)
		path = append(path, prev.station)
		current = prev
	}
	reverse(path)
	reverse(lines)

	return Itinerary{
		Stations:    path,
		TotalTime:   best[*goal],
		Lines:       lines,
		LineChanges: distinctLines(lines),
	}
}

// segmentLine picks the line label for the hop from -> to. The line recorded
// during relaxation wins when several connections join the same pair.
func (g *Graph) segmentLine(from, to, searched string) string {
	links := g.links[pairOf(from, to)]
	for _, c := range links {
		if c.Line == searched {
			return c.Line
		}
	}
	if len(links) > 0 {
		return links[0].Line
	}

	log.Printf("Warning: no connection between %s and %s, falling back to station line", from, to)
	if s, ok := g.stations[from]; ok && len(s.Lines) > 0 {
		return s.Lines[0]
	}
	return ""
}

func distinctLines(lines []string) []string {
	out := []string{}
	for i, l := range lines {
		if i == 0 || l != out[len(out)-1] {
			out = append(out, l)
		}
	}
	return out
}

func emptyItinerary() Itinerary {
	return Itinerary{Stations: []string{}, Lines: []string{}, LineChanges: []string{}}
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
