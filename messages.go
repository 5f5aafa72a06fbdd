package guidemate

import (
	"fmt"
	"strings"

	"github.com/guidemate/guidemate/geocode"
	"github.com/guidemate/guidemate/guidance"
	"github.com/guidemate/guidemate/route"
)

// TurnPhrase renders a turn instruction ("turn to the right", "go straight
// ahead") for the messaging layer.
func TurnPhrase(t guidance.Turn) string {
	if t.Severity == guidance.TurnStraight {
		return "go straight ahead"
	}
	dir := "left"
	if t.Right {
		dir = "right"
	}
	switch t.Severity {
	case guidance.TurnHalf:
		return "half-turn to the " + dir
	case guidance.TurnSharp:
		return "sharp turn to the " + dir
	default:
		return "turn to the " + dir
	}
}

// RenderEvent turns a guidance event into the text shown to the user.
// NoOp events render as an empty string: the user is in transit and no
// message is warranted.
func RenderEvent(ev guidance.Event, e *Entry) string {
	switch ev.Kind {
	case guidance.EventRouteCompleted:
		dest := "your destination"
		if e != nil && e.DestinationName != "" {
			dest = e.DestinationName
		}
		return fmt.Sprintf("Congratulations, you have arrived at %s. No more checkpoints left.", dest)

	case guidance.EventOffRouteWarning:
		return "Careful: you may be moving away from the next checkpoint."

	case guidance.EventCheckpointReached:
		msg := fmt.Sprintf("Well done, you've reached checkpoint #%d.\n", ev.LegIndex)
		if ev.FinalApproach {
			return msg + fmt.Sprintf("Your destination is close: only %d meters left.", ev.DistanceMeters)
		}
		street := ev.Street
		if street == "" {
			street = "the street"
		}
		msg += fmt.Sprintf("Go straight through %s for %d meters", street, ev.DistanceMeters)
		if ev.Turn.Severity != guidance.TurnStraight {
			msg += ", then " + TurnPhrase(ev.Turn)
		}
		return msg + "."
	}
	return ""
}

// DescribePlace renders a reverse-geocoded place as a "where am I" answer,
// skipping the parts the geocoder did not return. Empty when the place
// carries no usable fields.
func DescribePlace(p geocode.Place) string {
	var parts []string
	if p.Street != "" {
		parts = append(parts, p.Street)
	}
	if line := strings.TrimSpace(p.Postcode + " " + p.City); line != "" {
		parts = append(parts, line)
	}
	if p.Country != "" {
		parts = append(parts, p.Country)
	}
	if len(parts) == 0 {
		return ""
	}
	return "You are at " + strings.Join(parts, ", ") + "."
}

// FirstInstruction describes the way to the first checkpoint of a freshly
// planned route.
func FirstInstruction(legs route.Route) string {
	first := legs[0]
	msg := fmt.Sprintf("You are at %s. Go to checkpoint #1 at %s", first.From, first.Checkpoint)
	if first.NextStreet != "" {
		msg += " on " + first.NextStreet
	}
	return msg + "."
}
