package route

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
)

// ErrStationNotFound is returned when a query names a station the network does not contain
var ErrStationNotFound = errors.New("station not found")

// Cache stores itineraries by query key. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (Itinerary, bool)
	Set(ctx context.Context, key string, it Itinerary)
}

// Options tune the engine
type Options struct {
	Exact   bool // search (station, line) states instead of one arrival line per station
	Penalty int  // minutes added per line change
}

// DefaultOptions mirrors the reference behaviour: approximate search with the standard penalty
func DefaultOptions() Options {
	return Options{Penalty: LineChangePenalty}
}

// Engine answers route queries over one immutable network
type Engine struct {
	graph    *Graph
	stations []network.Station
	opts     Options
	cache    Cache
}

// NewEngine indexes the network once. cache may be nil.
func NewEngine(stations []network.Station, connections []network.Connection, opts Options, cache Cache) *Engine {
	return &Engine{
		graph:    NewGraph(stations, connections),
		stations: stations,
		opts:     opts,
		cache:    cache,
	}
}

// Graph returns the shared adjacency index
func (e *Engine) Graph() *Graph {
	return e.graph
}

// Stations returns the network's stations in dataset order
func (e *Engine) Stations() []network.Station {
	return e.stations
}

// Options returns the engine configuration
func (e *Engine) Options() Options {
	return e.opts
}

// Route finds the least-cost itinerary with the engine's default search
func (e *Engine) Route(ctx context.Context, sourceID, destID string) (Itinerary, error) {
	return e.route(ctx, sourceID, destID, e.opts.Exact)
}

// RouteExact always uses the (station, line) state search
func (e *Engine) RouteExact(ctx context.Context, sourceID, destID string) (Itinerary, error) {
	return e.route(ctx, sourceID, destID, true)
}

// RouteApproximate always uses the one-arrival-line-per-station search
func (e *Engine) RouteApproximate(ctx context.Context, sourceID, destID string) (Itinerary, error) {
	return e.route(ctx, sourceID, destID, false)
}

func (e *Engine) route(ctx context.Context, sourceID, destID string, exact bool) (Itinerary, error) {
	if err := ctx.Err(); err != nil {
		return Itinerary{}, err
	}
	if !e.graph.HasStation(sourceID) {
		return Itinerary{}, fmt.Errorf("source %q: %w", sourceID, ErrStationNotFound)
	}
	if !e.graph.HasStation(destID) {
		return Itinerary{}, fmt.Errorf("destination %q: %w", destID, ErrStationNotFound)
	}

	key := e.cacheKey(sourceID, destID, exact)
	if e.cache != nil {
		if it, ok := e.cache.Get(ctx, key); ok {
			return it, nil
		}
	}

	var it Itinerary
	if exact {
		it = e.graph.shortestPathByLine(sourceID, destID, e.opts.Penalty)
	} else {
		it = e.graph.shortestPath(sourceID, destID, e.opts.Penalty)
	}

	if e.cache != nil {
		e.cache.Set(ctx, key, it)
	}
	return it, nil
}

func (e *Engine) cacheKey(sourceID, destID string, exact bool) string {
	mode := "approx"
	if exact {
		mode = "exact"
	}
	return strings.Join([]string{mode, fmt.Sprint(e.opts.Penalty), sourceID, destID}, "|")
}
