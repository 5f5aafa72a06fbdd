package guidemate

import (
	"errors"
	"testing"

	"github.com/guidemate/guidemate/geo"
	"github.com/guidemate/guidemate/guidance"
	"github.com/guidemate/guidemate/route"
)

func testRoute() route.Route {
	a := geo.Coordinate{Lat: 41.400, Lon: 2.170}
	b := geo.Coordinate{Lat: 41.400, Lon: 2.180}
	end := geo.Coordinate{Lat: 41.400, Lon: 2.181}
	return route.Route{
		{From: a, Checkpoint: b, CurrentStreet: "Carrer de Mallorca", To: end, HasTo: true},
		{From: b, Checkpoint: end},
	}
}

func storeWithSession(userID string) *Store {
	s := NewStore()
	s.Put(userID, &Entry{
		RouteID:         "route-1",
		DestinationName: "Sagrada Familia",
		Session:         guidance.NewSession(testRoute()),
	})
	return s
}

func TestStoreUpdateUnknownUser(t *testing.T) {
	s := NewStore()
	_, _, err := s.UpdateLocation("nobody", geo.Coordinate{})
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Kind != KindNoActiveRoute {
		t.Fatalf("expected no_active_route, got %v", err)
	}
}

func TestStoreCompletionRemovesEntry(t *testing.T) {
	s := storeWithSession("alice")
	r := testRoute()

	ev, _, err := s.UpdateLocation("alice", r[0].Checkpoint)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != guidance.EventCheckpointReached {
		t.Fatalf("expected checkpoint_reached, got %s", ev.Kind)
	}

	ev, _, err = s.UpdateLocation("alice", r[1].Checkpoint)
	if err != nil {
		t.Fatal(err)
	}
	if ev.Kind != guidance.EventRouteCompleted {
		t.Fatalf("expected route_completed, got %s", ev.Kind)
	}
	if s.Has("alice") {
		t.Error("completed route must be removed from the store")
	}
}

func TestStoreCancel(t *testing.T) {
	s := storeWithSession("bob")
	if !s.Cancel("bob") {
		t.Fatal("expected cancel to find the session")
	}
	if s.Cancel("bob") {
		t.Error("second cancel must report no session")
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d", s.Len())
	}
}

func TestStoreVehicleSink(t *testing.T) {
	s := storeWithSession("bus-42")
	r := testRoute()

	// Unknown vehicles are ignored.
	s.OnVehicleLocation("bus-7", geo.Coordinate{Lat: 1, Lon: 1})
	if s.Len() != 1 {
		t.Fatalf("unknown vehicle must not disturb the store")
	}

	s.OnVehicleLocation("bus-42", r[0].Checkpoint)
	entry := s.Get("bus-42")
	if entry == nil || entry.Session.CurrentLegIndex() != 1 {
		t.Error("vehicle sample must drive the session forward")
	}
}
