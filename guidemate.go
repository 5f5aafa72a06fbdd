// Package guidemate wires the guidance engine into a service: route
// planning over a street graph, a per-user session store, and the
// presentation of guidance events as user-facing messages.
package guidemate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/guidemate/guidemate/geo"
	"github.com/guidemate/guidemate/geocode"
	"github.com/guidemate/guidemate/graph"
	"github.com/guidemate/guidemate/guidance"
	"github.com/guidemate/guidemate/route"
)

// Service plans routes and owns the live sessions that follow them.
type Service struct {
	graph    graph.GraphView
	paths    graph.PathFinder
	geocoder geocode.Geocoder
	margin   float64
	store    *Store
}

// NewService assembles a guidance service. geocoder may be nil when only
// coordinate destinations are used.
func NewService(g graph.GraphView, paths graph.PathFinder, geocoder geocode.Geocoder, marginMeters float64) *Service {
	if marginMeters <= 0 {
		marginMeters = guidance.DefaultMarginMeters
	}
	return &Service{
		graph:    g,
		paths:    paths,
		geocoder: geocoder,
		margin:   marginMeters,
		store:    NewStore(),
	}
}

// Store exposes the session store for transports and the feed adapter.
func (s *Service) Store() *Store { return s.store }

// RouteRequest asks for guidance from a raw position to a destination given
// either as free text (geocoded) or as a coordinate.
type RouteRequest struct {
	UserID           string
	Start            geo.Coordinate
	Destination      string
	DestinationCoord *geo.Coordinate
}

// PlannedRoute is the outcome of route planning: the legs to follow and the
// session that will track them.
type PlannedRoute struct {
	RouteID         string
	DestinationName string
	Legs            route.Route
}

// PlanRoute resolves the destination, snaps both endpoints onto the street
// network, runs the shortest-path search, decomposes the result into legs
// and opens a guidance session for the user.
func (s *Service) PlanRoute(ctx context.Context, req RouteRequest) (*PlannedRoute, error) {
	if req.UserID == "" {
		return nil, &Error{Kind: KindBadRequest, Message: "user id is required"}
	}
	if s.store.Has(req.UserID) {
		return nil, &Error{Kind: KindAlreadyHasRoute, Message: "an active route exists; cancel it first"}
	}

	dest, destName, err := s.resolveDestination(ctx, req)
	if err != nil {
		return nil, err
	}

	srcNode, err := route.NearestNode(s.graph, req.Start)
	if err != nil {
		return nil, locateError("start", req.Start, err)
	}
	dstNode, err := route.NearestNode(s.graph, dest)
	if err != nil {
		return nil, locateError("destination", dest, err)
	}

	path, err := s.paths.ShortestPath(srcNode, dstNode)
	if err != nil {
		if errors.Is(err, graph.ErrNoPath) {
			return nil, &Error{Kind: KindUnreachable, Message: "the destination is not reachable", Err: err}
		}
		return nil, &Error{Kind: KindInternal, Message: "path search failed", Err: err}
	}

	legs, err := route.BuildLegs(s.graph, path, req.Start, dest)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "route decomposition failed", Err: err}
	}

	routeID := uuid.NewString()
	session := guidance.NewSession(legs, guidance.WithMarginMeters(s.margin))
	s.store.Put(req.UserID, &Entry{RouteID: routeID, DestinationName: destName, Session: session})

	return &PlannedRoute{RouteID: routeID, DestinationName: destName, Legs: legs}, nil
}

func (s *Service) resolveDestination(ctx context.Context, req RouteRequest) (geo.Coordinate, string, error) {
	if req.DestinationCoord != nil {
		return *req.DestinationCoord, req.Destination, nil
	}
	if req.Destination == "" {
		return geo.Coordinate{}, "", &Error{Kind: KindBadRequest, Message: "a destination is required"}
	}
	if s.geocoder == nil {
		return geo.Coordinate{}, "", &Error{Kind: KindBadRequest, Message: "textual destinations need a geocoder"}
	}
	place, err := s.geocoder.Geocode(ctx, req.Destination)
	if err != nil {
		if errors.Is(err, geocode.ErrNotFound) {
			return geo.Coordinate{}, "", &Error{
				Kind:    KindDestinationNotFound,
				Message: fmt.Sprintf("no place found for %q", req.Destination),
				Err:     err,
			}
		}
		return geo.Coordinate{}, "", &Error{Kind: KindInternal, Message: "geocoding failed", Err: err}
	}
	name := place.Name
	if name == "" {
		name = req.Destination
	}
	return place.Coord, name, nil
}

// LocatePlace reverse-geocodes a position into a named place. ok is false
// when no geocoder is configured or the lookup yields nothing usable.
func (s *Service) LocatePlace(ctx context.Context, c geo.Coordinate) (geocode.Place, bool) {
	if s.geocoder == nil {
		return geocode.Place{}, false
	}
	place, err := s.geocoder.Reverse(ctx, c)
	if err != nil {
		return geocode.Place{}, false
	}
	return place, true
}

func locateError(which string, p geo.Coordinate, err error) error {
	if errors.Is(err, graph.ErrNoNearbyEdge) {
		return &Error{
			Kind:    KindOutsideCoverage,
			Message: fmt.Sprintf("the %s %v is outside street network coverage", which, p),
			Err:     err,
		}
	}
	return &Error{Kind: KindInternal, Message: "node lookup failed", Err: err}
}
