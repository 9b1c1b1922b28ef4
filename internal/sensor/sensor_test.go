package sensor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Faultbox/sundial/pkg/dial"
)

func TestStoreDefaults(t *testing.T) {
	loc := dial.Location{Latitude: 37.3, Longitude: -121.9}
	s := NewStore(loc)

	if s.Orientation() != (dial.Orientation{}) {
		t.Errorf("initial orientation = %+v, want zero", s.Orientation())
	}
	if s.Location() != loc {
		t.Errorf("initial location = %+v, want %+v", s.Location(), loc)
	}
}

func TestPublishOrientationTruncates(t *testing.T) {
	s := NewStore(dial.Location{})
	s.PublishOrientation([3]float64{123.9, -45.7, 0.99})

	want := dial.Orientation{Azimuth: 123, Pitch: -45, Roll: 0}
	if got := s.Orientation(); got != want {
		t.Errorf("Orientation() = %+v, want %+v", got, want)
	}
}

func TestSnapshot(t *testing.T) {
	s := NewStore(dial.Location{})
	s.PublishOrientation([3]float64{30, 10, 5})
	s.PublishLocation(51.5, -0.12)

	tod := dial.NewTimeOfDay(9, 0, dial.LegacyMinutes)
	in := s.Snapshot(tod)

	if in.Time != tod {
		t.Errorf("Time = %+v, want %+v", in.Time, tod)
	}
	if in.Orientation != (dial.Orientation{Azimuth: 30, Pitch: 10, Roll: 5}) {
		t.Errorf("Orientation = %+v", in.Orientation)
	}
	if in.Location != (dial.Location{Latitude: 51.5, Longitude: -0.12}) {
		t.Errorf("Location = %+v", in.Location)
	}

	// A snapshot is a copy; later samples do not change it.
	s.PublishOrientation([3]float64{90, 0, 0})
	if in.Orientation.Azimuth != 30 {
		t.Errorf("snapshot changed to %+v", in.Orientation)
	}
}

func TestReset(t *testing.T) {
	s := NewStore(dial.Location{Latitude: 1, Longitude: 2})
	s.PublishOrientation([3]float64{10, 20, 30})
	s.Reset()

	if s.Orientation() != (dial.Orientation{}) {
		t.Errorf("Orientation after Reset = %+v", s.Orientation())
	}
	if s.Location() != (dial.Location{Latitude: 1, Longitude: 2}) {
		t.Errorf("Reset dropped location: %+v", s.Location())
	}
}

func TestConcurrentWritersDoNotLoseUpdates(t *testing.T) {
	s := NewStore(dial.Location{})
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.PublishOrientation([3]float64{float64(i), 0, 0})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			s.PublishLocation(float64(i), float64(-i))
		}
	}()
	wg.Wait()

	if got := s.Orientation().Azimuth; got != 499 {
		t.Errorf("final azimuth = %v, want 499", got)
	}
	if got := s.Location(); got != (dial.Location{Latitude: 499, Longitude: -499}) {
		t.Errorf("final location = %+v", got)
	}
}

func TestManualNudge(t *testing.T) {
	s := NewStore(dial.Location{})
	m := NewManual(s, 5)

	m.Nudge(AxisAzimuth, -1)
	m.Nudge(AxisPitch, 1)
	m.Nudge(AxisPitch, 1)
	m.Nudge(AxisRoll, -1)

	want := dial.Orientation{Azimuth: 355, Pitch: 10, Roll: -5}
	if got := s.Orientation(); got != want {
		t.Errorf("Orientation() = %+v, want %+v", got, want)
	}

	for i := 0; i < 2; i++ {
		m.Nudge(AxisAzimuth, 1)
	}
	if got := s.Orientation().Azimuth; got != 5 {
		t.Errorf("azimuth after wrap = %v, want 5", got)
	}
}

func TestManualFractionalStep(t *testing.T) {
	tests := []struct {
		name  string
		step  float64
		moves []float64
		want  float64
	}{
		{"half degree crosses a whole degree", 0.5, []float64{1, 1, 1}, 1},
		{"half degree ten times", 0.5, []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, 5},
		{"two and a half up", 2.5, []float64{1, 1, 1, 1}, 10},
		{"two and a half up and back", 2.5, []float64{1, 1, 1, 1, -1, -1, -1, -1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(dial.Location{})
			m := NewManual(s, tt.step)
			for _, dir := range tt.moves {
				m.Nudge(AxisPitch, dir)
			}
			if got := s.Orientation().Pitch; got != tt.want {
				t.Errorf("pitch = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManualFollowsOtherWriters(t *testing.T) {
	s := NewStore(dial.Location{})
	m := NewManual(s, 0.5)

	m.Nudge(AxisRoll, 1)
	s.Reset()
	m.Nudge(AxisRoll, 1)
	if got := s.Orientation().Roll; got != 0 {
		t.Errorf("roll after reset = %v, want 0", got)
	}
	m.Nudge(AxisRoll, 1)
	if got := s.Orientation().Roll; got != 1 {
		t.Errorf("roll = %v, want 1", got)
	}

	s.PublishOrientation([3]float64{90, 0, 0})
	m.Nudge(AxisAzimuth, -1)
	if got := s.Orientation().Azimuth; got != 89 {
		t.Errorf("azimuth = %v, want 89", got)
	}
}

func TestSample(t *testing.T) {
	first := Sample(0)
	if first[0] != 0 || first[1] != 15 || first[2] != 0 {
		t.Errorf("Sample(0) = %v, want [0 15 0]", first)
	}
	for d := time.Duration(0); d < 10*time.Minute; d += 7 * time.Second {
		v := Sample(d)
		if v[0] < 0 || v[0] >= 360 {
			t.Fatalf("azimuth %v out of range at %v", v[0], d)
		}
		if v[1] < -15 || v[1] > 15 || v[2] < -20 || v[2] > 20 {
			t.Fatalf("tilt %v out of range at %v", v, d)
		}
	}
}

func TestSimulatedRun(t *testing.T) {
	s := NewStore(dial.Location{})
	sim := NewSimulated(s, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- sim.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for s.Orientation().Pitch == 0 {
		select {
		case <-deadline:
			cancel()
			t.Fatal("simulated source published nothing")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
