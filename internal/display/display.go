// Package display implements the overlay visibility state machine.
//
// A rightward fling shows the diagnostic overlay and the release of a double
// tap hides it. Every other gesture is consumed or ignored without changing
// state. There is no timeout and no terminal state.
package display

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Faultbox/sundial/internal/gesture"
	"github.com/Faultbox/sundial/internal/logger"
)

// State is the overlay visibility.
type State int32

const (
	Hidden State = iota
	Showing
)

func (s State) String() string {
	if s == Showing {
		return "showing"
	}
	return "hidden"
}

// Machine holds the current State. Handle and State may be called from
// different goroutines; the state is published atomically.
type Machine struct {
	state atomic.Int32
	log   *zap.Logger
}

// New returns a machine in the Hidden state.
func New() *Machine {
	return &Machine{log: logger.Named("display")}
}

// State returns the current state.
func (m *Machine) State() State {
	return State(m.state.Load())
}

// Showing reports whether the overlay should be drawn.
func (m *Machine) Showing() bool {
	return m.State() == Showing
}

// Handle applies a classified gesture and reports whether it was consumed,
// following the contract of the platform gesture callbacks.
func (m *Machine) Handle(ev gesture.Event) bool {
	switch ev.Kind {
	case gesture.Fling:
		if ev.VelocityX > 0 {
			m.set(Showing)
			return true
		}
		return false
	case gesture.DoubleTapEvent:
		m.set(Hidden)
		return true
	case gesture.SingleTapUp, gesture.Down, gesture.DoubleTap:
		return true
	default:
		return false
	}
}

// set stores s and logs the gesture that asked for it, whether or not the
// state actually changed.
func (m *Machine) set(s State) {
	prev := State(m.state.Swap(int32(s)))
	changed := zap.Bool("changed", prev != s)
	if s == Showing {
		m.log.Debug("showing information", changed)
	} else {
		m.log.Debug("hiding information", changed)
	}
}
