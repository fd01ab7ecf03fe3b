package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"

	"github.com/sujal3184/DelhiMetroNavigationApp/handlers"
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/cache"
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/config"
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/route"
	"github.com/sujal3184/DelhiMetroNavigationApp/models"
	"github.com/sujal3184/DelhiMetroNavigationApp/repository"
)

func main() {
	// .env and .env.local live at the repository root
	cfg, err := config.Load("../..")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	snapshot, err := loadNetwork(ctx, cfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to load metro network: %v", err)
	}

	if err := network.Validate(snapshot.Stations, snapshot.Connections); err != nil {
		log.Fatalf("Metro network is invalid: %v", err)
	}
	log.Printf("Loaded %s network %s: %d stations, %d connections",
		snapshot.Source, snapshot.ID, len(snapshot.Stations), len(snapshot.Connections))

	// Itinerary cache
	var routeCache route.Cache
	deps := map[string]handlers.Pinger{}
	switch cfg.CacheBackend {
	case "memory":
		routeCache = cache.NewMemory(cfg.CacheSize, cfg.CacheTTL)
		log.Printf("Using in-memory route cache (size %d, ttl %s)", cfg.CacheSize, cfg.CacheTTL)
	case "redis":
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, snapshot.ID.String(), cfg.CacheTTL)
		cancel()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rc.Close()
		routeCache = rc
		deps["redis"] = rc
		log.Println("Using Redis route cache")
	default:
		log.Println("Route cache disabled")
	}

	engine := route.NewEngine(snapshot.Stations, snapshot.Connections, route.Options{
		Exact:   cfg.ExactSearch(),
		Penalty: cfg.LineChangePenalty,
	}, routeCache)
	log.Printf("Route engine ready (search %s, line change penalty %d min)", cfg.SearchMode, cfg.LineChangePenalty)

	stationHandler := handlers.NewStationHandler(snapshot.Stations)
	routeHandler := handlers.NewRouteHandler(engine)
	healthHandler := handlers.NewHealthHandler(snapshot, deps)

	// Setup router
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/health", healthHandler.GetHealth)
	r.Get("/healthz", healthHandler.GetHealthz)

	r.Get("/api/stations", stationHandler.ListStations)
	r.Get("/api/stations/{stationId}", stationHandler.GetStation)
	r.Get("/api/lines", stationHandler.ListLines)
	r.Get("/api/route", routeHandler.GetRoute)

	// Static file serving (if configured)
	if cfg.StaticDir != "" {
		fs := http.FileServer(http.Dir(cfg.StaticDir))
		r.Handle("/*", fs)
	}

	log.Printf("API server starting on :%s", cfg.Port)
	log.Println("Network endpoints:")
	log.Println("  GET /api/stations?q=")
	log.Println("  GET /api/stations/{stationId}")
	log.Println("  GET /api/lines")
	log.Println("Route endpoints:")
	log.Println("  GET /api/route?from=&to=[&mode=approximate|exact]")
	log.Println("Health:")
	log.Println("  GET /health")

	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// loadNetwork returns the network named by NETWORK_SOURCE
func loadNetwork(ctx context.Context, cfg *config.Config) (*models.NetworkSnapshot, error) {
	switch cfg.NetworkSource {
	case "sqlite":
		log.Printf("Connecting to SQLite database: %s", cfg.DatabasePath)
		db, err := repository.NewSQLiteDB(cfg.DatabasePath)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		return repository.NewSQLiteNetworkRepository(db.GetDB()).LoadNetwork(ctx)

	case "postgres":
		log.Println("Connecting to Postgres")
		repo, err := repository.NewPostgresNetworkRepository(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		defer repo.Close()
		return repo.LoadNetwork(ctx)

	case "embedded":
		stations, connections := network.Load()
		id, err := contentID(stations, connections)
		if err != nil {
			return nil, err
		}
		return &models.NetworkSnapshot{
			ID:          id,
			Source:      "embedded",
			CreatedAt:   time.Now().UTC(),
			Stations:    stations,
			Connections: connections,
		}, nil
	}
	return nil, fmt.Errorf("unknown network source %q", cfg.NetworkSource)
}

// contentID derives a stable snapshot id from the network itself, so shared
// cache entries survive restarts but not data changes.
func contentID(stations []network.Station, connections []network.Connection) (uuid.UUID, error) {
	data, err := json.Marshal(struct {
		Stations    []network.Station    `json:"stations"`
		Connections []network.Connection `json:"connections"`
	}{stations, connections})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to encode network: %w", err)
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, data), nil
}
