// Package clock supplies the time of day the dial is drawn for.
package clock

import (
	"fmt"
	"time"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Real returns the system time.
type Real struct{}

// Now returns time.Now().
func (Real) Now() time.Time { return time.Now() }

// Fixed always returns the same instant.
type Fixed struct {
	T time.Time
}

// NewFixed returns a clock pinned to t.
func NewFixed(t time.Time) Fixed {
	return Fixed{T: t}
}

// Now returns the pinned instant.
func (f Fixed) Now() time.Time { return f.T }

// Scaled runs faster than wall time from a starting instant, so a whole
// day of shadows can be watched in minutes.
type Scaled struct {
	base   Clock
	origin time.Time
	start  time.Time
	factor float64
}

// NewScaled returns a clock that starts at start and advances factor times
// faster than base.
func NewScaled(base Clock, start time.Time, factor float64) *Scaled {
	return &Scaled{
		base:   base,
		origin: base.Now(),
		start:  start,
		factor: factor,
	}
}

// Now returns start plus the scaled elapsed base time.
func (s *Scaled) Now() time.Time {
	elapsed := s.base.Now().Sub(s.origin)
	return s.start.Add(time.Duration(float64(elapsed) * s.factor))
}

// Parse reads "HH:MM" and returns that time on the day of ref, in ref's
// location.
func Parse(hhmm string, ref time.Time) (time.Time, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing time of day %q: %w", hhmm, err)
	}
	y, m, d := ref.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, ref.Location()), nil
}

// New builds the clock described by a fixed "HH:MM" (empty for the wall
// clock) and a speed factor.
func New(fixed string, scale float64) (Clock, error) {
	var base Clock = Real{}
	start := base.Now()
	if fixed != "" {
		t, err := Parse(fixed, start)
		if err != nil {
			return nil, err
		}
		if scale == 1 {
			return NewFixed(t), nil
		}
		start = t
	}
	if scale == 1 {
		return base, nil
	}
	return NewScaled(base, start, scale), nil
}
