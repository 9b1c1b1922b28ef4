package sundial

import (
	"unicode"

	"github.com/Faultbox/sundial/internal/gesture"
	"github.com/Faultbox/sundial/internal/sensor"
)

// Action is a keyboard command shared by every frontend.
type Action int

const (
	ActionNone Action = iota
	ActionShow
	ActionHide
	ActionAzimuthLeft
	ActionAzimuthRight
	ActionPitchUp
	ActionPitchDown
	ActionRollLeft
	ActionRollRight
	ActionReset
	ActionSnapshot
	ActionQuit
)

var actionNames = map[Action]string{
	ActionNone:         "none",
	ActionShow:         "show",
	ActionHide:         "hide",
	ActionAzimuthLeft:  "azimuth-",
	ActionAzimuthRight: "azimuth+",
	ActionPitchUp:      "pitch+",
	ActionPitchDown:    "pitch-",
	ActionRollLeft:     "roll-",
	ActionRollRight:    "roll+",
	ActionReset:        "reset",
	ActionSnapshot:     "snapshot",
	ActionQuit:         "quit",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionForRune maps letter keys. Arrows, Backspace and Escape are
// frontend-specific and mapped by the caller.
func ActionForRune(r rune) Action {
	switch unicode.ToLower(r) {
	case 'a':
		return ActionAzimuthLeft
	case 'd':
		return ActionAzimuthRight
	case 'w':
		return ActionPitchUp
	case 's':
		return ActionPitchDown
	case 'q':
		return ActionRollLeft
	case 'e':
		return ActionRollRight
	case 'r':
		return ActionReset
	case 'p':
		return ActionSnapshot
	}
	return ActionNone
}

// Apply performs a. Nudges need a manual source and are dropped without one.
// Snapshot and Quit belong to the frontend and are not handled here.
func (s *Session) Apply(a Action, manual *sensor.Manual) bool {
	switch a {
	case ActionShow:
		s.HandleGesture(gesture.FlingRight())
	case ActionHide:
		s.HandleGesture(gesture.Event{Kind: gesture.DoubleTapEvent})
	case ActionReset:
		s.store.Reset()
	case ActionAzimuthLeft, ActionAzimuthRight, ActionPitchUp, ActionPitchDown, ActionRollLeft, ActionRollRight:
		if manual == nil {
			return false
		}
		axis, dir := nudgeFor(a)
		manual.Nudge(axis, dir)
	default:
		return false
	}
	return true
}

func nudgeFor(a Action) (sensor.Axis, float64) {
	switch a {
	case ActionAzimuthLeft:
		return sensor.AxisAzimuth, -1
	case ActionAzimuthRight:
		return sensor.AxisAzimuth, 1
	case ActionPitchUp:
		return sensor.AxisPitch, 1
	case ActionPitchDown:
		return sensor.AxisPitch, -1
	case ActionRollLeft:
		return sensor.AxisRoll, -1
	default:
		return sensor.AxisRoll, 1
	}
}
