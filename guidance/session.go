package guidance

import (
	"errors"

	"github.com/guidemate/guidemate/geo"
	"github.com/guidemate/guidemate/route"
)

// DefaultMarginMeters is the hysteresis margin for both checkpoint arrival
// and off-route drift detection.
const DefaultMarginMeters = 15.0

// ErrSessionFinished is returned by updates after completion or cancellation.
var ErrSessionFinished = errors.New("guidance: session already finished")

// Session tracks one user's progress along a route. It is mutated only by
// that user's sequential stream of location updates.
type Session struct {
	route        route.Route
	currentLeg   int
	lastKnown    geo.Coordinate
	marginMeters float64
	finished     bool
}

// Option configures a Session.
type Option func(*Session)

// WithMarginMeters overrides the arrival/drift margin.
func WithMarginMeters(m float64) Option {
	return func(s *Session) { s.marginMeters = m }
}

// NewSession starts guidance over a built route at its first leg.
func NewSession(r route.Route, opts ...Option) *Session {
	s := &Session{
		route:        r,
		lastKnown:    r[0].From,
		marginMeters: DefaultMarginMeters,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CurrentLegIndex reports the 0-based index of the active leg. It is
// non-decreasing and advances by at most one per update.
func (s *Session) CurrentLegIndex() int { return s.currentLeg }

// LastKnownLocation reports the most recent position sample.
func (s *Session) LastKnownLocation() geo.Coordinate { return s.lastKnown }

// Route returns the route the session is guiding along.
func (s *Session) Route() route.Route { return s.route }

// Finished reports whether the session reached its destination or was
// cancelled.
func (s *Session) Finished() bool { return s.finished }

// OnLocationUpdate consumes one position sample and returns the guidance
// event it warrants. Arrival at the checkpoint takes precedence over drift;
// the last known location is updated unconditionally.
func (s *Session) OnLocationUpdate(loc geo.Coordinate) (Event, error) {
	if s.finished {
		return Event{}, ErrSessionFinished
	}

	checkpoint := s.route[s.currentLeg].Checkpoint
	curDist := geo.DistanceMeters(loc, checkpoint)
	lastDist := geo.DistanceMeters(s.lastKnown, checkpoint)
	s.lastKnown = loc

	switch {
	case curDist <= s.marginMeters:
		if s.currentLeg+1 == len(s.route) {
			s.finished = true
			return Event{Kind: EventRouteCompleted, LegIndex: s.currentLeg}, nil
		}
		s.currentLeg++
		return s.checkpointEvent(), nil
	case curDist > lastDist+s.marginMeters:
		return Event{Kind: EventOffRouteWarning, LegIndex: s.currentLeg}, nil
	default:
		return Event{Kind: EventNoOp, LegIndex: s.currentLeg}, nil
	}
}

// Cancel finishes the session immediately; no further events are produced.
func (s *Session) Cancel() { s.finished = true }

func (s *Session) checkpointEvent() Event {
	leg := s.route[s.currentLeg]
	return Event{
		Kind:           EventCheckpointReached,
		LegIndex:       s.currentLeg,
		Street:         leg.CurrentStreet,
		DistanceMeters: geo.Round5(leg.DistanceMeters()),
		Turn:           ClassifyTurn(leg.TurnAngle, leg.HasTurnAngle),
		FinalApproach:  !leg.HasTo,
	}
}
