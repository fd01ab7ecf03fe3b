package network

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestLoadIsValid(t *testing.T) {
	stations, connections := Load()

	if len(stations) == 0 || len(connections) == 0 {
		t.Fatalf("empty dataset: %d stations, %d connections", len(stations), len(connections))
	}
	if err := Validate(stations, connections); err != nil {
		t.Fatalf("embedded dataset failed validation: %v", err)
	}
}

func TestLoadIsDeterministic(t *testing.T) {
	s1, c1 := Load()
	s2, c2 := Load()

	if !reflect.DeepEqual(s1, s2) || !reflect.DeepEqual(c1, c2) {
		t.Error("Load returned different data on repeated calls")
	}
}

func TestLoadReturnsCopies(t *testing.T) {
	stations, connections := Load()
	stations[0].Name = "mutated"
	stations[0].Lines[0] = "mutated"
	connections[0].TimeMins = 999

	fresh, freshConns := Load()
	if fresh[0].Name == "mutated" || fresh[0].Lines[0] == "mutated" {
		t.Error("mutating a loaded station leaked into the shared dataset")
	}
	if freshConns[0].TimeMins == 999 {
		t.Error("mutating a loaded connection leaked into the shared dataset")
	}
}

func TestLoadIsConnected(t *testing.T) {
	stations, connections := Load()

	adj := make(map[string][]string)
	for _, c := range connections {
		adj[c.FromStation] = append(adj[c.FromStation], c.ToStation)
		adj[c.ToStation] = append(adj[c.ToStation], c.FromStation)
	}

	seen := map[string]bool{stations[0].ID: true}
	queue := []string{stations[0].ID}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range adj[cur] {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}

	if len(seen) != len(stations) {
		t.Errorf("only %d of %d stations reachable from %s", len(seen), len(stations), stations[0].ID)
	}
}

func TestKnownInterchanges(t *testing.T) {
	stations, _ := Load()
	idx := Index(stations)

	tests := []struct {
		id    string
		lines []string
	}{
		{"rajiv-chowk", []string{"Yellow", "Blue"}},
		{"kashmere-gate", []string{"Yellow", "Red", "Violet"}},
		{"mandi-house", []string{"Blue", "Violet"}},
		{"hauz-khas", []string{"Yellow", "Magenta"}},
	}
	for _, tt := range tests {
		s, ok := idx[tt.id]
		if !ok {
			t.Errorf("station %s missing", tt.id)
			continue
		}
		if !s.IsInterchange() {
			t.Errorf("%s should be an interchange", tt.id)
		}
		if !reflect.DeepEqual(s.Lines, tt.lines) {
			t.Errorf("%s lines = %v, want %v", tt.id, s.Lines, tt.lines)
		}
	}
}

func TestValidateRejectsBadData(t *testing.T) {
	good := []Station{
		{ID: "a", Lines: []string{"Red"}},
		{ID: "b", Lines: []string{"Red", "Blue"}},
	}

	tests := []struct {
		name        string
		stations    []Station
		connections []Connection
		wantErr     string
	}{
		{"duplicate id", append(good, Station{ID: "a", Lines: []string{"Red"}}), nil, "duplicate station id"},
		{"empty id", []Station{{Lines: []string{"Red"}}}, nil, "empty id"},
		{"no lines", []Station{{ID: "a"}}, nil, "has no lines"},
		{"unknown endpoint", good, []Connection{{FromStation: "a", ToStation: "z", Line: "Red", TimeMins: 2}}, "unknown station"},
		{"zero time", good, []Connection{{FromStation: "a", ToStation: "b", Line: "Red", TimeMins: 0}}, "non-positive time"},
		{"line not on station", good, []Connection{{FromStation: "a", ToStation: "b", Line: "Blue", TimeMins: 2}}, "not listed"},
		{"self loop", good, []Connection{{FromStation: "a", ToStation: "a", Line: "Red", TimeMins: 2}}, "self loop"},
		{"duplicate edge", good, []Connection{
			{FromStation: "a", ToStation: "b", Line: "Red", TimeMins: 2},
			{FromStation: "b", ToStation: "a", Line: "Red", TimeMins: 3},
		}, "duplicate Red connection"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.stations, tt.connections)
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateAllowsParallelEdgesOnDifferentLines(t *testing.T) {
	stations := []Station{
		{ID: "x", Lines: []string{"Red", "Blue"}},
		{ID: "y", Lines: []string{"Red", "Blue"}},
	}
	connections := []Connection{
		{FromStation: "x", ToStation: "y", Line: "Red", TimeMins: 5},
		{FromStation: "x", ToStation: "y", Line: "Blue", TimeMins: 3},
	}
	if err := Validate(stations, connections); err != nil {
		t.Errorf("parallel edges on distinct lines rejected: %v", err)
	}
}

func TestSearch(t *testing.T) {
	stations, _ := Load()

	all := Search(stations, "")
	if len(all) != len(stations) {
		t.Errorf("empty query returned %d stations, want %d", len(all), len(stations))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Fatalf("results not sorted: %q before %q", all[i-1].Name, all[i].Name)
		}
	}

	dwarka := Search(stations, "DWARKA")
	if len(dwarka) == 0 {
		t.Fatal("no match for DWARKA")
	}
	for _, s := range dwarka {
		if !strings.Contains(strings.ToLower(s.Name), "dwarka") {
			t.Errorf("unexpected match %q", s.Name)
		}
	}

	if got := Search(stations, "no such station"); len(got) != 0 {
		t.Errorf("expected no matches, got %d", len(got))
	}
}

func TestFindByName(t *testing.T) {
	stations, _ := Load()

	s, ok := FindByName(stations, "rajiv chowk")
	if !ok || s.ID != "rajiv-chowk" {
		t.Errorf("FindByName(rajiv chowk) = %+v, %v", s, ok)
	}
	if _, ok := FindByName(stations, "Atlantis"); ok {
		t.Error("FindByName found a station that does not exist")
	}
}

func TestLineNames(t *testing.T) {
	stations, _ := Load()

	want := []string{"Yellow", "Blue", "Red", "Violet", "Pink", "Magenta", "Green"}
	got := LineNames(stations)
	if len(got) != len(want) {
		t.Fatalf("LineNames = %v, want %d lines", got, len(want))
	}
	seen := make(map[string]bool)
	for _, l := range got {
		seen[l] = true
	}
	for _, l := range want {
		if !seen[l] {
			t.Errorf("line %s missing from %v", l, got)
		}
	}
}

func TestDecode(t *testing.T) {
	stations, connections, err := Decode(bytes.NewReader(delhiJSON))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}

	wantStations, wantConnections := Load()
	if !reflect.DeepEqual(stations, wantStations) || !reflect.DeepEqual(connections, wantConnections) {
		t.Error("Decode of the embedded dataset differs from Load")
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "stations"},
		{"unknown field", `{"stations":[],"connections":[],"lines":[]}`},
		{"invalid network", `{"stations":[{"id":"a","name":"A","lines":["Red"]}],"connections":[{"from":"a","to":"b","line":"Red","time":2}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := Decode(strings.NewReader(tt.input)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
