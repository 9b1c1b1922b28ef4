package sensor

import (
	"context"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/sundial/internal/logger"
)

// Simulated publishes a smoothly drifting orientation, standing in for a
// magnetometer/accelerometer fusion sensor.
type Simulated struct {
	store *Store
	rate  time.Duration
	start time.Time
}

// NewSimulated creates a simulated source publishing every rate.
func NewSimulated(store *Store, rate time.Duration) *Simulated {
	if rate <= 0 {
		rate = 20 * time.Millisecond
	}
	return &Simulated{store: store, rate: rate}
}

// Sample returns the synthetic reading elapsed into the run.
func Sample(elapsed time.Duration) [3]float64 {
	s := elapsed.Seconds()
	return [3]float64{
		math.Mod(s*12, 360),  // azimuth: a slow turn
		15 * math.Cos(s*0.7), // pitch
		20 * math.Sin(s*0.5), // roll
	}
}

// Run publishes samples until ctx is cancelled.
func (m *Simulated) Run(ctx context.Context) error {
	log := logger.Named("sensor")
	log.Info("simulated orientation started", zap.Duration("rate", m.rate))

	m.start = time.Now()
	ticker := time.NewTicker(m.rate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("simulated orientation stopped")
			return ctx.Err()
		case now := <-ticker.C:
			m.store.PublishOrientation(Sample(now.Sub(m.start)))
		}
	}
}

// Axis names one orientation component.
type Axis int

const (
	AxisAzimuth Axis = iota
	AxisPitch
	AxisRoll
)

// Manual lets the user steer the orientation from the keyboard. It keeps
// the exact position so fractional steps accumulate even though the store
// only holds whole degrees.
type Manual struct {
	store *Store
	step  float64

	mu  sync.Mutex
	pos [3]float64
	seq uint64 // store write that pos belongs to
}

// NewManual creates a manual source moving step degrees per nudge.
func NewManual(store *Store, step float64) *Manual {
	m := &Manual{store: store, step: step}
	m.resync()
	return m
}

func (m *Manual) resync() {
	r := m.store.cur.Load()
	m.pos = [3]float64{r.orientation.Azimuth, r.orientation.Pitch, r.orientation.Roll}
	m.seq = r.seq
}

// Nudge moves one axis by dir steps (usually +1 or -1). Azimuth wraps into
// [0, 360); pitch and roll are left as given. If anything else wrote the
// orientation since the last nudge, such as a reset, that value is the new
// starting point.
func (m *Manual) Nudge(axis Axis, dir float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.store.cur.Load().seq != m.seq {
		m.resync()
	}

	m.pos[axis] += dir * m.step
	if axis == AxisAzimuth {
		m.pos[0] = math.Mod(m.pos[0], 360)
		if m.pos[0] < 0 {
			m.pos[0] += 360
		}
	}
	m.seq = m.store.publishOrientation(m.pos)
}
