// Package input handles SDL2 input events.
package input

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/sundial/internal/gesture"
)

// EventType identifies an input event the dial cares about.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventPointerDown
	EventPointerUp
)

// Event is one processed input event. Pointer coordinates are in window
// pixels for both mouse and touch input.
type Event struct {
	Type   EventType
	Key    sdl.Keycode
	Width  int
	Height int
	X, Y   float64
	At     time.Time
}

// Input pumps SDL events into a per-frame slice.
type Input struct {
	events []Event
	clock  gesture.Timebase
}

// New creates an input handler. SDL must already be initialised; event
// timestamps are SDL ticks.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		clock:  gesture.NewTimebase(time.Now(), sdl.GetTicks()),
	}
}

func (i *Input) stamp(ms uint32) time.Time {
	return i.clock.At(ms)
}

// Now returns the current time on the same base as event timestamps.
func (i *Input) Now() time.Time {
	return i.clock.At(sdl.GetTicks())
}

// Update polls SDL events. width and height scale normalised touch
// coordinates. Returns true if the app should quit.
func (i *Input) Update(width, height int) bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			if e.Type == sdl.KEYDOWN && e.Repeat == 0 {
				i.events = append(i.events, Event{
					Type: EventKeyDown,
					Key:  e.Keysym.Sym,
					At:   i.stamp(e.Timestamp),
				})
			}

		case *sdl.MouseButtonEvent:
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			typ := EventPointerUp
			if e.Type == sdl.MOUSEBUTTONDOWN {
				typ = EventPointerDown
			}
			i.events = append(i.events, Event{
				Type: typ,
				X:    float64(e.X),
				Y:    float64(e.Y),
				At:   i.stamp(e.Timestamp),
			})

		case *sdl.TouchFingerEvent:
			var typ EventType
			switch e.Type {
			case sdl.FINGERDOWN:
				typ = EventPointerDown
			case sdl.FINGERUP:
				typ = EventPointerUp
			default:
				continue
			}
			i.events = append(i.events, Event{
				Type: typ,
				X:    float64(e.X) * float64(width),
				Y:    float64(e.Y) * float64(height),
				At:   i.stamp(e.Timestamp),
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}
