package graph

import (
	"errors"

	"github.com/guidemate/guidemate/geo"
)

// NodeID identifies a vertex of the street network (an OpenStreetMap node id
// for OSM-derived graphs).
type NodeID int64

// EdgeAttributes carries the optional metadata of a street segment. A missing
// name or length is not an error; absent fields stay absent and the caller
// falls back (e.g. estimating length via great-circle distance).
type EdgeAttributes struct {
	Name         string
	LengthMeters float64
	HasLength    bool
}

var (
	// ErrNoNearbyEdge means the queried point is outside graph coverage.
	ErrNoNearbyEdge = errors.New("graph: no edge near the given coordinate")
	// ErrUnknownNode means a node id is not part of the graph.
	ErrUnknownNode = errors.New("graph: unknown node")
	// ErrNoPath means the destination is unreachable from the origin.
	ErrNoPath = errors.New("graph: no path between the given nodes")
)

// GraphView is the read-only street network surface consumed by the route
// builder and node locator.
type GraphView interface {
	// CoordinateOf resolves a node id to its coordinate.
	// Fails with ErrUnknownNode.
	CoordinateOf(id NodeID) (geo.Coordinate, error)

	// Edge returns the attributes of the edge between two adjacent nodes.
	// Unknown pairs yield zero attributes; missing metadata is not an error.
	Edge(from, to NodeID) EdgeAttributes

	// NearestEdge returns the two endpoints bounding the street segment
	// nearest to p. Fails with ErrNoNearbyEdge when the graph has no edges
	// in range.
	NearestEdge(p geo.Coordinate) (NodeID, NodeID, error)
}

// PathFinder computes a minimum-weight node path through a street network.
// Implementations fail with ErrNoPath when the destination is unreachable.
type PathFinder interface {
	ShortestPath(from, to NodeID) ([]NodeID, error)
}
