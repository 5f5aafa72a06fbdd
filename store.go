package guidemate

import (
	"log"
	"sync"

	"github.com/guidemate/guidemate/geo"
	"github.com/guidemate/guidemate/guidance"
)

// Entry is one user's active route.
type Entry struct {
	RouteID         string
	DestinationName string
	Session         *guidance.Session
}

// Store keeps the active guidance sessions keyed by user id. Each session
// is still driven by one user's sequential updates; the store serializes
// access so unrelated users can plan and update concurrently.
type Store struct {
	mu     sync.RWMutex
	byUser map[string]*Entry
}

func NewStore() *Store {
	return &Store{byUser: map[string]*Entry{}}
}

// Has reports whether the user has an active route.
func (s *Store) Has(userID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byUser[userID]
	return ok
}

// Get returns the user's entry, or nil.
func (s *Store) Get(userID string) *Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byUser[userID]
}

// Put registers a new active route for the user, replacing any previous one.
func (s *Store) Put(userID string, e *Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byUser[userID] = e
}

// Cancel destroys the user's session. It reports whether one existed.
func (s *Store) Cancel(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byUser[userID]
	if !ok {
		return false
	}
	e.Session.Cancel()
	delete(s.byUser, userID)
	return true
}

// UpdateLocation feeds one position sample into the user's session and
// returns the resulting event. A completed route removes the entry.
func (s *Store) UpdateLocation(userID string, loc geo.Coordinate) (guidance.Event, *Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.byUser[userID]
	if !ok {
		return guidance.Event{}, nil, &Error{Kind: KindNoActiveRoute, Message: "no active route for user"}
	}
	ev, err := e.Session.OnLocationUpdate(loc)
	if err != nil {
		// A finished session that was not cleaned up; drop it.
		delete(s.byUser, userID)
		return guidance.Event{}, nil, &Error{Kind: KindNoActiveRoute, Message: "route already finished", Err: err}
	}
	if ev.Kind == guidance.EventRouteCompleted {
		delete(s.byUser, userID)
	}
	return ev, e, nil
}

// Len reports the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byUser)
}

// OnVehicleLocation lets a GTFS-RT feed drive sessions keyed by vehicle id.
// Vehicles without an active route are ignored.
func (s *Store) OnVehicleLocation(vehicleID string, c geo.Coordinate) {
	if !s.Has(vehicleID) {
		return
	}
	ev, _, err := s.UpdateLocation(vehicleID, c)
	if err != nil {
		return
	}
	if ev.Kind != guidance.EventNoOp {
		log.Printf("vehicle %s: %s (leg %d)", vehicleID, ev.Kind, ev.LegIndex)
	}
}
