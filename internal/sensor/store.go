// Package sensor holds the latest orientation and location samples and the
// sources that produce them.
package sensor

import (
	"math"
	"sync/atomic"

	"github.com/Faultbox/sundial/pkg/dial"
)

// reading is one published pair of samples. It is never mutated after it is
// stored.
type reading struct {
	orientation dial.Orientation
	location    dial.Location
	// seq counts orientation writes.
	seq uint64
}

// Store publishes samples for readers on other goroutines. Writers replace
// the whole reading with compare-and-swap, so a reader sees either the old
// or the new pair, never a mix.
type Store struct {
	cur atomic.Pointer[reading]
}

// NewStore returns a store holding zero orientation at loc.
func NewStore(loc dial.Location) *Store {
	s := &Store{}
	s.cur.Store(&reading{location: loc})
	return s
}

func (s *Store) update(fn func(r *reading)) *reading {
	for {
		old := s.cur.Load()
		next := *old
		fn(&next)
		if s.cur.CompareAndSwap(old, &next) {
			return &next
		}
	}
}

// PublishOrientation stores an azimuth, pitch, roll sample. Values are
// truncated toward zero to whole degrees, as the sensor reports them.
func (s *Store) PublishOrientation(values [3]float64) {
	s.publishOrientation(values)
}

func (s *Store) publishOrientation(values [3]float64) uint64 {
	o := dial.Orientation{
		Azimuth: math.Trunc(values[0]),
		Pitch:   math.Trunc(values[1]),
		Roll:    math.Trunc(values[2]),
	}
	return s.update(func(r *reading) {
		r.orientation = o
		r.seq++
	}).seq
}

// PublishLocation stores a new position fix.
func (s *Store) PublishLocation(lat, lon float64) {
	s.update(func(r *reading) { r.location = dial.Location{Latitude: lat, Longitude: lon} })
}

// Reset zeroes the orientation and keeps the location.
func (s *Store) Reset() {
	s.update(func(r *reading) {
		r.orientation = dial.Orientation{}
		r.seq++
	})
}

// Orientation returns the latest orientation sample.
func (s *Store) Orientation() dial.Orientation {
	return s.cur.Load().orientation
}

// Location returns the latest location sample.
func (s *Store) Location() dial.Location {
	return s.cur.Load().location
}

// Snapshot combines the latest samples with a time of day.
func (s *Store) Snapshot(t dial.TimeOfDay) dial.Input {
	r := s.cur.Load()
	return dial.Input{
		Time:        t,
		Orientation: r.orientation,
		Location:    r.location,
	}
}
