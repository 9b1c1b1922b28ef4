package gesture

import "time"

// Timebase turns millisecond tick counts from the event source into wall
// times. Pointer events and Poll must share one Timebase, otherwise the
// double tap window is measured between two different clocks.
type Timebase struct {
	epoch time.Time
}

// NewTimebase anchors tick count elapsed to now.
func NewTimebase(now time.Time, elapsed uint32) Timebase {
	return Timebase{epoch: now.Add(-time.Duration(elapsed) * time.Millisecond)}
}

// At returns the time of tick count ms.
func (tb Timebase) At(ms uint32) time.Time {
	return tb.epoch.Add(time.Duration(ms) * time.Millisecond)
}
