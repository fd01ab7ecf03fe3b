package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
	"github.com/sujal3184/DelhiMetroNavigationApp/repository"
)

func main() {
	// Command line flags
	dbPath := flag.String("db", "../../data/metro.db", "Path to SQLite database")
	databaseURL := flag.String("database-url", "", "If set, import into this Postgres database instead of SQLite")
	input := flag.String("input", "", "Network JSON file to import (defaults to the built-in Delhi dataset)")
	flag.Parse()

	ctx := context.Background()

	stations, connections, source := readNetwork(*input)
	log.Printf("Read %d stations, %d connections from %s", len(stations), len(connections), source)

	var snapshotID uuid.UUID
	if *databaseURL != "" {
		repo, err := repository.NewPostgresNetworkRepository(ctx, *databaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to Postgres: %v", err)
		}
		defer repo.Close()

		log.Println("Connected to Postgres")

		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}
		if snapshotID, err = repo.SaveNetwork(ctx, source, stations, connections); err != nil {
			log.Fatalf("Failed to save network: %v", err)
		}
	} else {
		if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
			log.Fatalf("Failed to create database directory: %v", err)
		}

		database, err := repository.NewSQLiteDB(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open database: %v", err)
		}
		defer database.Close()

		log.Printf("Connected to database: %s", *dbPath)

		// Ensure schema exists (creates tables if needed)
		if err := database.EnsureSchema(ctx); err != nil {
			log.Fatalf("Failed to ensure schema: %v", err)
		}

		repo := repository.NewSQLiteNetworkRepository(database.GetDB())
		if snapshotID, err = repo.SaveNetwork(ctx, source, stations, connections); err != nil {
			log.Fatalf("Failed to save network: %v", err)
		}
	}

	log.Printf("Import complete! Snapshot %s", snapshotID)
}

// readNetwork loads and validates the network to import, exiting on failure
func readNetwork(path string) ([]network.Station, []network.Connection, string) {
	if path == "" {
		stations, connections := network.Load()
		if err := network.Validate(stations, connections); err != nil {
			log.Fatalf("Built-in network is invalid: %v", err)
		}
		return stations, connections, "embedded"
	}

	f, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	stations, connections, err := network.Decode(f)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", path, err)
	}
	return stations, connections, filepath.Base(path)
}
