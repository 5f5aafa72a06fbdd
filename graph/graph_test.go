package graph

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/guidemate/guidemate/geo"
)

// A small Eixample-style grid:
//
//	1 --- 2 --- 3
//	|     |     |
//	4 --- 5 --- 6
//
// Node 9 is isolated.
func gridGraph(t *testing.T) *MemoryGraph {
	t.Helper()
	g := NewMemoryGraph()
	g.AddNode(1, geo.Coordinate{Lat: 41.400, Lon: 2.170})
	g.AddNode(2, geo.Coordinate{Lat: 41.400, Lon: 2.180})
	g.AddNode(3, geo.Coordinate{Lat: 41.400, Lon: 2.190})
	g.AddNode(4, geo.Coordinate{Lat: 41.390, Lon: 2.170})
	g.AddNode(5, geo.Coordinate{Lat: 41.390, Lon: 2.180})
	g.AddNode(6, geo.Coordinate{Lat: 41.390, Lon: 2.190})
	g.AddNode(9, geo.Coordinate{Lat: 41.500, Lon: 2.500})

	edges := []struct {
		from, to NodeID
		name     string
		length   float64
	}{
		{1, 2, "Carrer de Mallorca", 835},
		{2, 3, "Carrer de Mallorca", 835},
		{4, 5, "Carrer de Valencia", 835},
		{5, 6, "Carrer de Valencia", 835},
		{1, 4, "Carrer de Girona", 1110},
		{2, 5, "Carrer del Bruc", 1110},
		{3, 6, "Carrer de Roger de Lluria", 0}, // unknown length
	}
	for _, e := range edges {
		if err := g.AddEdge(e.from, e.to, e.name, e.length); err != nil {
			t.Fatalf("AddEdge(%d, %d): %v", e.from, e.to, err)
		}
	}
	return g
}

func TestCoordinateOf(t *testing.T) {
	g := gridGraph(t)

	c, err := g.CoordinateOf(5)
	if err != nil {
		t.Fatalf("CoordinateOf(5): %v", err)
	}
	if c.Lat != 41.390 || c.Lon != 2.180 {
		t.Errorf("unexpected coordinate %v", c)
	}

	if _, err := g.CoordinateOf(42); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
}

func TestEdgeAttributes(t *testing.T) {
	g := gridGraph(t)

	attrs := g.Edge(1, 2)
	if attrs.Name != "Carrer de Mallorca" {
		t.Errorf("unexpected name %q", attrs.Name)
	}
	if !attrs.HasLength || attrs.LengthMeters != 835 {
		t.Errorf("expected length 835, got %+v", attrs)
	}

	// Reverse direction carries the same attributes.
	if rev := g.Edge(2, 1); rev != attrs {
		t.Errorf("reverse edge differs: %+v vs %+v", rev, attrs)
	}

	// Unknown length stays absent.
	if attrs := g.Edge(3, 6); attrs.HasLength {
		t.Errorf("expected absent length, got %+v", attrs)
	}

	// Non-adjacent pair yields zero attributes.
	if attrs := g.Edge(1, 6); attrs.Name != "" || attrs.HasLength {
		t.Errorf("expected zero attributes, got %+v", attrs)
	}
}

func TestNearestEdge(t *testing.T) {
	g := gridGraph(t)

	// A point just south of the middle of segment 1-2.
	u, v, err := g.NearestEdge(geo.Coordinate{Lat: 41.3995, Lon: 2.175})
	if err != nil {
		t.Fatalf("NearestEdge: %v", err)
	}
	if !(u == 1 && v == 2) && !(u == 2 && v == 1) {
		t.Errorf("expected edge 1-2, got %d-%d", u, v)
	}
}

func TestNearestEdgeEmptyGraph(t *testing.T) {
	g := NewMemoryGraph()
	if _, _, err := g.NearestEdge(geo.Coordinate{Lat: 41.4, Lon: 2.18}); !errors.Is(err, ErrNoNearbyEdge) {
		t.Errorf("expected ErrNoNearbyEdge, got %v", err)
	}
}

func TestShortestPath(t *testing.T) {
	g := gridGraph(t)

	path, err := g.ShortestPath(1, 6)
	if err != nil {
		t.Fatalf("ShortestPath(1, 6): %v", err)
	}
	// Both L-shaped paths cost 835+835+1110; either is a valid minimum.
	if len(path) != 4 || path[0] != 1 || path[3] != 6 {
		t.Fatalf("unexpected path %v", path)
	}

	direct, err := g.ShortestPath(1, 3)
	if err != nil {
		t.Fatalf("ShortestPath(1, 3): %v", err)
	}
	want := []NodeID{1, 2, 3}
	for i, n := range want {
		if direct[i] != n {
			t.Fatalf("expected path %v, got %v", want, direct)
		}
	}
}

func TestShortestPathSingleNode(t *testing.T) {
	g := gridGraph(t)
	path, err := g.ShortestPath(5, 5)
	if err != nil {
		t.Fatalf("ShortestPath(5, 5): %v", err)
	}
	if len(path) != 1 || path[0] != 5 {
		t.Errorf("expected [5], got %v", path)
	}
}

func TestShortestPathUnreachable(t *testing.T) {
	g := gridGraph(t)
	if _, err := g.ShortestPath(1, 9); !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
	if _, err := g.ShortestPath(1, 42); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	content := `{
		"nodes": [
			{"id": 1, "lat": 41.400, "lon": 2.170},
			{"id": 2, "lat": 41.400, "lon": 2.180}
		],
		"edges": [
			{"from": 1, "to": 2, "name": "Carrer de Mallorca", "length": 835}
		]
	}`
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadJSON(path)
	if err != nil {
		t.Fatalf("LoadJSON: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("expected 2 nodes, got %d", g.NodeCount())
	}
	if attrs := g.Edge(1, 2); attrs.Name != "Carrer de Mallorca" {
		t.Errorf("unexpected edge attributes %+v", attrs)
	}
}

func TestLoadJSONBadEdge(t *testing.T) {
	content := `{"nodes": [{"id": 1, "lat": 1, "lon": 1}], "edges": [{"from": 1, "to": 7}]}`
	path := filepath.Join(t.TempDir(), "graph.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadJSON(path); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("expected ErrUnknownNode, got %v", err)
	}
}
