package main

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/sujal3184/DelhiMetroNavigationApp/internal/config"
	"github.com/sujal3184/DelhiMetroNavigationApp/internal/network"
)

func TestContentIDIsStable(t *testing.T) {
	stations, connections := network.Load()

	first, err := contentID(stations, connections)
	if err != nil {
		t.Fatalf("contentID failed: %v", err)
	}
	if first == uuid.Nil {
		t.Fatal("contentID returned a nil uuid")
	}

	again, err := contentID(network.Load())
	if err != nil {
		t.Fatalf("contentID failed: %v", err)
	}
	if again != first {
		t.Errorf("contentID changed between calls: %s then %s", first, again)
	}
}

func TestContentIDTracksData(t *testing.T) {
	stations, connections := network.Load()
	base, err := contentID(stations, connections)
	if err != nil {
		t.Fatalf("contentID failed: %v", err)
	}

	slower := append([]network.Connection(nil), connections...)
	slower[0].TimeMins++
	if id, _ := contentID(stations, slower); id == base {
		t.Error("contentID did not change when a travel time changed")
	}

	renamed := append([]network.Station(nil), stations...)
	renamed[0].Name += " Metro"
	if id, _ := contentID(renamed, connections); id == base {
		t.Error("contentID did not change when a station was renamed")
	}
}

func TestLoadEmbeddedNetwork(t *testing.T) {
	snap, err := loadNetwork(context.Background(), &config.Config{NetworkSource: "embedded"})
	if err != nil {
		t.Fatalf("loadNetwork failed: %v", err)
	}

	stations, connections := network.Load()
	if len(snap.Stations) != len(stations) || len(snap.Connections) != len(connections) {
		t.Errorf("snapshot holds %d/%d, want %d/%d",
			len(snap.Stations), len(snap.Connections), len(stations), len(connections))
	}
	if want, _ := contentID(stations, connections); snap.ID != want {
		t.Errorf("snapshot id = %s, want content id %s", snap.ID, want)
	}
	if snap.Source != "embedded" {
		t.Errorf("source = %q, want embedded", snap.Source)
	}
}

func TestLoadUnknownNetworkSource(t *testing.T) {
	if _, err := loadNetwork(context.Background(), &config.Config{NetworkSource: "csv"}); err == nil {
		t.Error("expected an error for an unknown source")
	}
}
