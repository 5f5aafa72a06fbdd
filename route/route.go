package route

import (
	"encoding/json"

	"github.com/guidemate/guidemate/geo"
)

// Leg is one unit of guidance: travel from From to Checkpoint, optionally
// continuing toward To afterwards.
//
// Field presence follows the leg's position in the route:
//   - the first leg starts at the raw origin, so it has no entry street
//     or length;
//   - the terminal leg runs from the last graph node straight to the
//     destination and carries only From and Checkpoint;
//   - TurnAngle is set only when both the entry point and the forward
//     reference are graph nodes, i.e. never on the first or the
//     second-to-last leg.
type Leg struct {
	From geo.Coordinate

	// CurrentStreet names the street just traveled; empty when unknown.
	CurrentStreet string

	// LengthMeters is the traveled edge's length when the graph knows it.
	// When HasLength is false, estimate via great-circle distance.
	LengthMeters float64
	HasLength    bool

	// Checkpoint is the point the user must reach to complete this leg.
	Checkpoint geo.Coordinate

	// NextStreet names the street entered after the checkpoint.
	NextStreet string

	// To is the target of the leg after the checkpoint; HasTo is false on
	// the final leg, whose checkpoint is the destination itself.
	To    geo.Coordinate
	HasTo bool

	// TurnAngle is the signed turn at the checkpoint in (-180, 180];
	// positive is right. HasTurnAngle is false on edge legs.
	TurnAngle    float64
	HasTurnAngle bool
}

// MarshalJSON writes the wire form of a leg. Fields guarded by a presence
// flag appear only when the flag is set, so a terminal leg carries no "to"
// and a genuine zero-degree turn angle is still emitted.
func (l Leg) MarshalJSON() ([]byte, error) {
	out := struct {
		From          geo.Coordinate  `json:"from"`
		CurrentStreet string          `json:"currentStreet,omitempty"`
		LengthMeters  *float64        `json:"lengthMeters,omitempty"`
		Checkpoint    geo.Coordinate  `json:"checkpoint"`
		NextStreet    string          `json:"nextStreet,omitempty"`
		To            *geo.Coordinate `json:"to,omitempty"`
		TurnAngle     *float64        `json:"turnAngle,omitempty"`
	}{
		From:          l.From,
		CurrentStreet: l.CurrentStreet,
		Checkpoint:    l.Checkpoint,
		NextStreet:    l.NextStreet,
	}
	if l.HasLength {
		out.LengthMeters = &l.LengthMeters
	}
	if l.HasTo {
		out.To = &l.To
	}
	if l.HasTurnAngle {
		out.TurnAngle = &l.TurnAngle
	}
	return json.Marshal(out)
}

// DistanceMeters returns the leg's known length, falling back to the
// great-circle distance between From and Checkpoint.
func (l Leg) DistanceMeters() float64 {
	if l.HasLength {
		return l.LengthMeters
	}
	return geo.DistanceMeters(l.From, l.Checkpoint)
}

// Route is a non-empty ordered sequence of legs, immutable once built.
type Route []Leg

// Destination returns the final checkpoint of the route.
func (r Route) Destination() geo.Coordinate {
	return r[len(r)-1].Checkpoint
}
