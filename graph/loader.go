package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/guidemate/guidemate/geo"
)

type nodeRecord struct {
	ID  int64   `json:"id"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type edgeRecord struct {
	From   int64   `json:"from"`
	To     int64   `json:"to"`
	Name   string  `json:"name,omitempty"`
	Length float64 `json:"length,omitempty"`
}

type graphFile struct {
	Nodes []nodeRecord `json:"nodes"`
	Edges []edgeRecord `json:"edges"`
}

// LoadJSON reads a street network from a JSON file with top-level "nodes"
// and "edges" arrays. It covers demos and tests; producing such files from
// OSM extracts is a separate pipeline.
func LoadJSON(path string) (*MemoryGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}
	var file graphFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse graph file %s: %w", path, err)
	}

	g := NewMemoryGraph()
	for _, n := range file.Nodes {
		g.AddNode(NodeID(n.ID), geo.Coordinate{Lat: n.Lat, Lon: n.Lon})
	}
	for _, e := range file.Edges {
		if err := g.AddEdge(NodeID(e.From), NodeID(e.To), e.Name, e.Length); err != nil {
			return nil, fmt.Errorf("graph file %s: %w", path, err)
		}
	}
	return g, nil
}
