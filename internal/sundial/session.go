// Package sundial ties the clock, sensor store, geometry engine and overlay
// state machine together into per-frame snapshots.
package sundial

import (
	"github.com/Faultbox/sundial/internal/clock"
	"github.com/Faultbox/sundial/internal/config"
	"github.com/Faultbox/sundial/internal/display"
	"github.com/Faultbox/sundial/internal/gesture"
	"github.com/Faultbox/sundial/internal/sensor"
	"github.com/Faultbox/sundial/pkg/dial"
)

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	Input      dial.Input
	Geometry   dial.Geometry
	Showing    bool
	Width      int
	Height     int
	BaseLength float64
	PoleRadius int
	IndexMark  bool
}

// Session is the long-lived state of one running dial.
type Session struct {
	clock   clock.Clock
	store   *sensor.Store
	machine *display.Machine
	dialCfg config.DialConfig
	scale   dial.MinuteScale
}

// New creates a session. The store and machine are shared with the input
// side, which publishes samples and gestures into them.
func New(c clock.Clock, store *sensor.Store, machine *display.Machine, cfg config.DialConfig) *Session {
	scale := dial.SexagesimalMinutes
	if cfg.LegacyMinutes {
		scale = dial.LegacyMinutes
	}
	return &Session{
		clock:   c,
		store:   store,
		machine: machine,
		dialCfg: cfg,
		scale:   scale,
	}
}

// Store returns the sensor store the session reads from.
func (s *Session) Store() *sensor.Store {
	return s.store
}

// Machine returns the overlay state machine.
func (s *Session) Machine() *display.Machine {
	return s.machine
}

// TimeOfDay reads the clock once.
func (s *Session) TimeOfDay() dial.TimeOfDay {
	return dial.At(s.clock.Now(), s.scale)
}

// HandleGesture forwards a classified gesture to the state machine.
func (s *Session) HandleGesture(ev gesture.Event) bool {
	return s.machine.Handle(ev)
}

// Frame snapshots the current inputs and computes the geometry for a
// surface of the given size.
func (s *Session) Frame(width, height int) Frame {
	in := s.store.Snapshot(s.TimeOfDay())
	base := float64(width) * s.dialCfg.ShadowBaseRatio
	return Frame{
		Input:      in,
		Geometry:   dial.Compute(in, base),
		Showing:    s.machine.Showing(),
		Width:      width,
		Height:     height,
		BaseLength: base,
		PoleRadius: s.dialCfg.PoleRadius,
		IndexMark:  s.dialCfg.IndexMark,
	}
}
