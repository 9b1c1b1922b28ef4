// Package gesture turns raw pointer presses and releases into the small set
// of classified gestures the dial reacts to.
package gesture

import (
	"math"
	"time"
)

// Kind identifies a classified gesture.
type Kind int

const (
	Down               Kind = iota // pointer pressed
	SingleTapUp                    // release of a tap that did not move
	SingleTapConfirmed             // a tap that was not followed by a second one
	DoubleTap                      // second press of a double tap
	DoubleTapEvent                 // release of the second tap
	Fling                          // fast release after travel
)

var kindNames = [...]string{
	Down:               "down",
	SingleTapUp:        "single_tap_up",
	SingleTapConfirmed: "single_tap_confirmed",
	DoubleTap:          "double_tap",
	DoubleTapEvent:     "double_tap_event",
	Fling:              "fling",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Event is one classified gesture. Velocities are only set for Fling and
// are in pixels per second.
type Event struct {
	Kind      Kind
	X, Y      float64
	VelocityX float64
	VelocityY float64
}

// FlingRight returns a synthetic rightward fling, for keyboard shortcuts.
func FlingRight() Event {
	return Event{Kind: Fling, VelocityX: 1}
}

// FlingLeft returns a synthetic leftward fling.
func FlingLeft() Event {
	return Event{Kind: Fling, VelocityX: -1}
}

// Config holds classification thresholds.
type Config struct {
	TouchSlop        float64 // movement below this is a tap
	DoubleTapSlop    float64 // max distance between the two taps
	MinFlingVelocity float64 // px/s
	DoubleTapTimeout time.Duration
}

// Classifier tracks one pointer. It is not safe for concurrent use; feed it
// from the thread that receives input.
type Classifier struct {
	cfg Config

	pressed   bool
	downX     float64
	downY     float64
	downAt    time.Time
	secondTap bool

	lastTapUp  time.Time
	lastTapX   float64
	lastTapY   float64
	pendingTap bool
}

// NewClassifier creates a classifier with the given thresholds.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg}
}

// Down records a press and returns the gestures it completes.
func (c *Classifier) Down(x, y float64, at time.Time) []Event {
	events := []Event{{Kind: Down, X: x, Y: y}}

	c.secondTap = false
	if c.pendingTap && at.Sub(c.lastTapUp) <= c.cfg.DoubleTapTimeout &&
		distance(x, y, c.lastTapX, c.lastTapY) <= c.cfg.DoubleTapSlop {
		c.secondTap = true
		events = append(events, Event{Kind: DoubleTap, X: x, Y: y})
	}
	c.pendingTap = false

	c.pressed = true
	c.downX, c.downY, c.downAt = x, y, at
	return events
}

// Up records a release and returns the gestures it completes.
func (c *Classifier) Up(x, y float64, at time.Time) []Event {
	if !c.pressed {
		return nil
	}
	c.pressed = false

	dx, dy := x-c.downX, y-c.downY
	if math.Hypot(dx, dy) > c.cfg.TouchSlop {
		c.secondTap = false
		dt := at.Sub(c.downAt).Seconds()
		if dt <= 0 {
			dt = 1e-3
		}
		vx, vy := dx/dt, dy/dt
		if math.Hypot(vx, vy) >= c.cfg.MinFlingVelocity {
			return []Event{{Kind: Fling, X: x, Y: y, VelocityX: vx, VelocityY: vy}}
		}
		return nil
	}

	if c.secondTap {
		c.secondTap = false
		return []Event{{Kind: DoubleTapEvent, X: x, Y: y}}
	}

	c.pendingTap = true
	c.lastTapUp = at
	c.lastTapX, c.lastTapY = x, y
	return []Event{{Kind: SingleTapUp, X: x, Y: y}}
}

// Poll confirms a lone tap once the double tap window has passed.
func (c *Classifier) Poll(now time.Time) []Event {
	if !c.pendingTap || c.pressed || now.Sub(c.lastTapUp) <= c.cfg.DoubleTapTimeout {
		return nil
	}
	c.pendingTap = false
	return []Event{{Kind: SingleTapConfirmed, X: c.lastTapX, Y: c.lastTapY}}
}

// Reset drops any partial gesture.
func (c *Classifier) Reset() {
	*c = Classifier{cfg: c.cfg}
}

func distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}
