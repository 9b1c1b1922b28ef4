// Package dial provides the sundial geometry engine.
//
// Everything here is a pure function of its arguments: callers build an
// immutable Input snapshot per frame and ask for a Geometry. No value is
// validated or clamped, so noisy sensor samples never cause a panic.
package dial

import "time"

// MinuteScale selects how clock minutes become a fraction of an hour.
type MinuteScale int

const (
	// LegacyMinutes divides minutes by 100, so 09:30 becomes 9.30.
	LegacyMinutes MinuteScale = iota
	// SexagesimalMinutes divides minutes by 60, so 09:30 becomes 9.5.
	SexagesimalMinutes
)

// Fraction converts a clock minute (0-59) to an hour fraction.
func (s MinuteScale) Fraction(minute int) float64 {
	if s == SexagesimalMinutes {
		return float64(minute) / 60.0
	}
	return float64(minute) / 100.0
}

// String returns the config name of the scale.
func (s MinuteScale) String() string {
	if s == SexagesimalMinutes {
		return "sexagesimal"
	}
	return "legacy"
}

// TimeOfDay is a snapshot of the wall clock reduced to what the dial needs.
type TimeOfDay struct {
	Hour           int     // 0-23
	MinuteFraction float64 // [0, 1)
}

// NewTimeOfDay builds a TimeOfDay from clock hour and minute.
func NewTimeOfDay(hour, minute int, scale MinuteScale) TimeOfDay {
	return TimeOfDay{Hour: hour, MinuteFraction: scale.Fraction(minute)}
}

// At reduces t to a TimeOfDay in t's own location.
func At(t time.Time, scale MinuteScale) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute(), scale)
}

// Hours returns the scalar time used by the engine.
func (t TimeOfDay) Hours() float64 {
	return float64(t.Hour) + t.MinuteFraction
}

// Orientation is a device attitude sample in degrees.
type Orientation struct {
	Azimuth float64 // compass heading, 0 = magnetic north
	Pitch   float64
	Roll    float64
}

// Location is a GPS fix in degrees. It is only ever displayed.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Input is the immutable snapshot a frame is computed from.
type Input struct {
	Time        TimeOfDay
	Orientation Orientation
	Location    Location
}

// Geometry is what the renderer needs to draw one frame.
type Geometry struct {
	RotationAngle float64 // degrees, unclamped
	ShadowLength  float64 // pixels
}
