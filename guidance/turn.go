package guidance

import "math"

// TurnSeverity buckets the magnitude of a turn angle.
type TurnSeverity int

const (
	TurnStraight TurnSeverity = iota // |angle| < 22.5 or angle unknown
	TurnHalf                         // |angle| < 67.5
	TurnNormal                       // |angle| < 112.5
	TurnSharp                        // |angle| >= 112.5
)

// Turn is the direction instruction attached to a checkpoint.
type Turn struct {
	Severity TurnSeverity
	Right    bool // meaningful unless Severity is TurnStraight
}

// ClassifyTurn buckets a signed turn angle into an instruction. A leg with
// no computable angle (hasAngle false) reads as straight ahead.
func ClassifyTurn(angle float64, hasAngle bool) Turn {
	if !hasAngle {
		return Turn{Severity: TurnStraight}
	}
	abs := math.Abs(angle)
	t := Turn{Right: angle > 0}
	switch {
	case abs < 22.5:
		t.Severity = TurnStraight
	case abs < 67.5:
		t.Severity = TurnHalf
	case abs < 112.5:
		t.Severity = TurnNormal
	default:
		t.Severity = TurnSharp
	}
	return t
}

func (s TurnSeverity) String() string {
	switch s {
	case TurnStraight:
		return "straight"
	case TurnHalf:
		return "half-turn"
	case TurnNormal:
		return "turn"
	case TurnSharp:
		return "sharp-turn"
	}
	return "unknown"
}
