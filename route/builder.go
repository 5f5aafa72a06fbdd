package route

import (
	"errors"
	"fmt"

	"github.com/guidemate/guidemate/geo"
	"github.com/guidemate/guidemate/graph"
)

// ErrEmptyPath means BuildLegs was called without intermediate nodes; the
// caller must snap start and destination onto the graph first.
var ErrEmptyPath = errors.New("route: path must contain at least one node")

// NearestNode snaps an arbitrary coordinate onto the network. It queries the
// nearest street segment first and then picks the segment endpoint closer to
// the point, so the user is routed onto the street they are actually near
// rather than the nearest corner. Ties resolve to the first endpoint.
func NearestNode(g graph.GraphView, p geo.Coordinate) (graph.NodeID, error) {
	u, v, err := g.NearestEdge(p)
	if err != nil {
		return 0, err
	}
	cu, err := g.CoordinateOf(u)
	if err != nil {
		return 0, err
	}
	cv, err := g.CoordinateOf(v)
	if err != nil {
		return 0, err
	}
	if geo.DistanceMeters(p, cv) < geo.DistanceMeters(p, cu) {
		return v, nil
	}
	return u, nil
}

// waypoint is either a graph node or a raw coordinate. The first and last
// elements of a route are raw points; everything between is a node.
type waypoint struct {
	node   graph.NodeID
	coord  geo.Coordinate
	isNode bool
}

// BuildLegs produces the guidance legs for the route start -> path -> end.
// path is the node sequence returned by the shortest-path search and must be
// non-empty; start and end are the raw, possibly off-graph endpoints.
func BuildLegs(g graph.GraphView, path []graph.NodeID, start, end geo.Coordinate) (Route, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	// Full waypoint sequence plus a trailing sentinel marking route end.
	w := make([]waypoint, 0, len(path)+2)
	w = append(w, waypoint{coord: start})
	for _, n := range path {
		w = append(w, waypoint{node: n, isNode: true})
	}
	w = append(w, waypoint{coord: end})

	legs := make(Route, 0, len(w)-1)
	for i := 0; i+2 <= len(w); i++ {
		var leg Leg
		var err error
		if i+2 == len(w) {
			// Terminal leg: final approach from the last graph node to
			// the destination point. (src, mid, sentinel)
			leg, err = buildTerminalLeg(g, w[i], w[i+1])
		} else {
			leg, err = buildLeg(g, w[i], w[i+1], w[i+2])
		}
		if err != nil {
			return nil, err
		}
		legs = append(legs, leg)
	}

	return simplifyLastMile(legs), nil
}

func buildTerminalLeg(g graph.GraphView, src, mid waypoint) (Leg, error) {
	from, err := resolve(g, src)
	if err != nil {
		return Leg{}, err
	}
	// mid is the raw destination coordinate by construction.
	return Leg{From: from, Checkpoint: mid.coord}, nil
}

func buildLeg(g graph.GraphView, src, mid, dst waypoint) (Leg, error) {
	// mid is a graph node for every non-terminal leg.
	checkpoint, err := g.CoordinateOf(mid.node)
	if err != nil {
		return Leg{}, fmt.Errorf("route: resolve checkpoint: %w", err)
	}
	leg := Leg{Checkpoint: checkpoint}

	if src.isNode {
		// Every leg but the first enters the checkpoint along a known edge.
		leg.From, err = g.CoordinateOf(src.node)
		if err != nil {
			return Leg{}, fmt.Errorf("route: resolve leg start: %w", err)
		}
		attrs := g.Edge(src.node, mid.node)
		leg.CurrentStreet = attrs.Name
		leg.LengthMeters = attrs.LengthMeters
		leg.HasLength = attrs.HasLength
	} else {
		leg.From = src.coord
	}

	if dst.isNode {
		to, err := g.CoordinateOf(dst.node)
		if err != nil {
			return Leg{}, fmt.Errorf("route: resolve leg target: %w", err)
		}
		leg.To = to
		leg.HasTo = true
		leg.NextStreet = g.Edge(mid.node, dst.node).Name
	} else {
		// Second-to-last leg: the forward reference is the raw destination.
		leg.To = dst.coord
		leg.HasTo = true
	}

	if src.isNode && dst.isNode {
		leg.TurnAngle = geo.TurnAngle(leg.From, leg.Checkpoint, leg.To)
		leg.HasTurnAngle = true
	}
	return leg, nil
}

func resolve(g graph.GraphView, w waypoint) (geo.Coordinate, error) {
	if !w.isNode {
		return w.coord, nil
	}
	c, err := g.CoordinateOf(w.node)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("route: resolve waypoint: %w", err)
	}
	return c, nil
}

// simplifyLastMile drops the last graph node when the destination sits
// between it and the previous node: if the second-to-last leg's start is
// farther from the destination than its checkpoint, the final two legs
// collapse into a single straight run to the destination.
//
// The comparison direction is kept exactly as the system has always computed
// it; see DESIGN.md for the open question around its geometric intent.
func simplifyLastMile(legs Route) Route {
	if len(legs) < 3 {
		return legs
	}
	p := &legs[len(legs)-2]
	dP := geo.DistanceMeters(p.From, p.To)
	dL := geo.DistanceMeters(p.Checkpoint, p.To)
	if dP > dL {
		p.Checkpoint = p.To
		p.To = geo.Coordinate{}
		p.HasTo = false
		p.LengthMeters = geo.DistanceMeters(p.From, p.Checkpoint)
		p.HasLength = true
		legs = legs[:len(legs)-1]
	}
	return legs
}
