package guidance

// EventKind discriminates the guidance events a session can emit.
type EventKind int

const (
	// EventNoOp: the user is in transit, no message warranted.
	EventNoOp EventKind = iota
	// EventCheckpointReached: the user arrived at the current checkpoint
	// and the session advanced to the next leg.
	EventCheckpointReached
	// EventOffRouteWarning: successive samples moved farther from the
	// checkpoint than the margin allows.
	EventOffRouteWarning
	// EventRouteCompleted: the final checkpoint was reached; the session
	// is finished.
	EventRouteCompleted
)

func (k EventKind) String() string {
	switch k {
	case EventNoOp:
		return "no_op"
	case EventCheckpointReached:
		return "checkpoint_reached"
	case EventOffRouteWarning:
		return "off_route_warning"
	case EventRouteCompleted:
		return "route_completed"
	}
	return "unknown"
}

// Event is the outcome of a single position update.
type Event struct {
	Kind EventKind

	// LegIndex is the current leg after processing the update. For
	// EventCheckpointReached it indexes the newly entered leg.
	LegIndex int

	// Descriptive fields of the newly entered leg, set for
	// EventCheckpointReached only.
	Street         string
	DistanceMeters int // rounded to the nearest multiple of 5
	Turn           Turn
	FinalApproach  bool // the next checkpoint is the destination itself
}
