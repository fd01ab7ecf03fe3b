package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/route"
)

// Redis shares itineraries between API instances.
// Keys are namespaced by network snapshot so a reimport never serves stale routes.
type Redis struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedis connects to the server at url (redis://host:port/db) and pings it
func NewRedis(ctx context.Context, url, snapshot string, ttl time.Duration) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &Redis{
		rdb:    rdb,
		prefix: "metro:route:" + snapshot + ":",
		ttl:    ttl,
	}, nil
}

// Close closes the client
func (r *Redis) Close() error {
	return r.rdb.Close()
}

// Ping checks the server is reachable
func (r *Redis) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

// Get fetches and decodes an itinerary. Any Redis error counts as a miss.
func (r *Redis) Get(ctx context.Context, key string) (route.Itinerary, bool) {
	data, err := r.rdb.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Warning: redis get %s failed: %v", key, err)
		}
		return route.Itinerary{}, false
	}

	var it route.Itinerary
	if err := json.Unmarshal(data, &it); err != nil {
		log.Printf("Warning: dropping undecodable cached itinerary %s: %v", key, err)
		return route.Itinerary{}, false
	}
	return it, true
}

// Set stores the itinerary with the configured TTL
func (r *Redis) Set(ctx context.Context, key string, it route.Itinerary) {
	data, err := json.Marshal(it)
	if err != nil {
		log.Printf("Warning: failed to encode itinerary %s: %v", key, err)
		return
	}
	if err := r.rdb.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		log.Printf("Warning: redis set %s failed: %v", key, err)
	}
}
