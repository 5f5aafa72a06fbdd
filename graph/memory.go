package graph

import (
	"fmt"
	"math"

	"github.com/guidemate/guidemate/geo"
)

type edgeKey struct {
	from, to NodeID
}

type adjacency struct {
	to     NodeID
	weight float64
}

// MemoryGraph is an in-memory street network. Nodes and edges are added up
// front; after that the graph is read-only and safe for concurrent use.
type MemoryGraph struct {
	coords map[NodeID]geo.Coordinate
	edges  map[edgeKey]EdgeAttributes
	adj    map[NodeID][]adjacency
}

// NewMemoryGraph returns an empty street network.
func NewMemoryGraph() *MemoryGraph {
	return &MemoryGraph{
		coords: map[NodeID]geo.Coordinate{},
		edges:  map[edgeKey]EdgeAttributes{},
		adj:    map[NodeID][]adjacency{},
	}
}

// AddNode registers a vertex with its coordinate.
func (g *MemoryGraph) AddNode(id NodeID, c geo.Coordinate) {
	g.coords[id] = c
}

// AddEdge registers a bidirectional street segment between two known nodes.
// name may be empty and lengthMeters non-positive when unknown; unknown
// lengths fall back to the haversine distance for path weights.
func (g *MemoryGraph) AddEdge(from, to NodeID, name string, lengthMeters float64) error {
	cf, okf := g.coords[from]
	ct, okt := g.coords[to]
	if !okf || !okt {
		return fmt.Errorf("add edge %d-%d: %w", from, to, ErrUnknownNode)
	}
	attrs := EdgeAttributes{Name: name}
	weight := geo.DistanceMeters(cf, ct)
	if lengthMeters > 0 {
		attrs.LengthMeters = lengthMeters
		attrs.HasLength = true
		weight = lengthMeters
	}
	g.edges[edgeKey{from, to}] = attrs
	g.edges[edgeKey{to, from}] = attrs
	g.adj[from] = append(g.adj[from], adjacency{to: to, weight: weight})
	g.adj[to] = append(g.adj[to], adjacency{to: from, weight: weight})
	return nil
}

// NodeCount reports the number of registered vertices.
func (g *MemoryGraph) NodeCount() int { return len(g.coords) }

func (g *MemoryGraph) CoordinateOf(id NodeID) (geo.Coordinate, error) {
	c, ok := g.coords[id]
	if !ok {
		return geo.Coordinate{}, fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return c, nil
}

func (g *MemoryGraph) Edge(from, to NodeID) EdgeAttributes {
	return g.edges[edgeKey{from, to}]
}

// NearestEdge scans every stored segment and returns the endpoints of the one
// whose projection lies closest to p. Segments are short enough at street
// scale that projection in the equirectangular plane is accurate.
func (g *MemoryGraph) NearestEdge(p geo.Coordinate) (NodeID, NodeID, error) {
	bestDist := math.MaxFloat64
	var bestU, bestV NodeID
	found := false

	seen := map[edgeKey]struct{}{}
	for key := range g.edges {
		norm := key
		if norm.to < norm.from {
			norm = edgeKey{norm.to, norm.from}
		}
		if _, dup := seen[norm]; dup {
			continue
		}
		seen[norm] = struct{}{}

		c1 := g.coords[norm.from]
		c2 := g.coords[norm.to]
		d := pointToSegment(p, c1, c2)
		if d < bestDist {
			bestDist = d
			bestU, bestV = norm.from, norm.to
			found = true
		}
	}
	if !found {
		return 0, 0, ErrNoNearbyEdge
	}
	return bestU, bestV, nil
}

// pointToSegment returns the squared planar distance from p to the segment
// c1-c2, with longitude scaled by cos(lat) so both axes are comparable.
func pointToSegment(p, c1, c2 geo.Coordinate) float64 {
	scale := math.Cos(p.Lat * math.Pi / 180)

	vx := (c2.Lon - c1.Lon) * scale
	vy := c2.Lat - c1.Lat
	wx := (p.Lon - c1.Lon) * scale
	wy := p.Lat - c1.Lat

	denom := vx*vx + vy*vy
	t := 0.0
	if denom > 0 {
		t = (wx*vx + wy*vy) / denom
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}

	dx := wx - t*vx
	dy := wy - t*vy
	return dx*dx + dy*dy
}
