package cache

import (
	"context"
	"time"

	"github.com/bluele/gcache"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/route"
)

// Memory is an in-process LRU of itineraries. gcache synchronizes access internally.
type Memory struct {
	lru gcache.Cache
}

// NewMemory creates an LRU holding up to size itineraries. ttl <= 0 disables expiry.
func NewMemory(size int, ttl time.Duration) *Memory {
	b := gcache.New(size).LRU()
	if ttl > 0 {
		b = b.Expiration(ttl)
	}
	return &Memory{lru: b.Build()}
}

// Get returns a copy of the cached itinerary for key
func (m *Memory) Get(_ context.Context, key string) (route.Itinerary, bool) {
	v, err := m.lru.Get(key)
	if err != nil {
		return route.Itinerary{}, false
	}
	it, ok := v.(route.Itinerary)
	if !ok {
		return route.Itinerary{}, false
	}
	return it.Clone(), true
}

// Set stores a copy of it under key
func (m *Memory) Set(_ context.Context, key string, it route.Itinerary) {
	_ = m.lru.Set(key, it.Clone())
}

// Len returns the number of cached itineraries
func (m *Memory) Len() int {
	return m.lru.Len(true)
}
