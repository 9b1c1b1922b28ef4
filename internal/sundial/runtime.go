package sundial

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/sundial/internal/clock"
	"github.com/Faultbox/sundial/internal/config"
	"github.com/Faultbox/sundial/internal/display"
	"github.com/Faultbox/sundial/internal/gesture"
	"github.com/Faultbox/sundial/internal/logger"
	"github.com/Faultbox/sundial/internal/metrics"
	"github.com/Faultbox/sundial/internal/sensor"
	"github.com/Faultbox/sundial/pkg/dial"
)

// Runtime bundles a session with its input side, as built from config.
// Frontends own the loop; Runtime owns the orientation source.
type Runtime struct {
	Session    *Session
	Classifier *gesture.Classifier
	Metrics    *metrics.Metrics

	// Exactly one of Manual and Sim is set.
	Manual *sensor.Manual
	Sim    *sensor.Simulated
}

// NewRuntime wires a session from cfg.
func NewRuntime(cfg *config.Config) (*Runtime, error) {
	c, err := clock.New(cfg.Clock.Fixed, cfg.Clock.Scale)
	if err != nil {
		return nil, fmt.Errorf("clock: %w", err)
	}

	store := sensor.NewStore(dial.Location{
		Latitude:  cfg.Location.Latitude,
		Longitude: cfg.Location.Longitude,
	})

	rt := &Runtime{
		Session: New(c, store, display.New(), cfg.Dial),
		Classifier: gesture.NewClassifier(gesture.Config{
			TouchSlop:        cfg.Gesture.TouchSlop,
			DoubleTapSlop:    cfg.Gesture.DoubleTapSlop,
			MinFlingVelocity: cfg.Gesture.MinFlingVelocity,
			DoubleTapTimeout: cfg.Gesture.DoubleTapTimeout,
		}),
		Metrics: metrics.New(),
	}

	switch cfg.Sensor.Source {
	case config.SensorManual:
		rt.Manual = sensor.NewManual(store, cfg.Sensor.StepDegrees)
	case config.SensorSim:
		rt.Sim = sensor.NewSimulated(store, cfg.Sensor.Rate)
	default:
		return nil, fmt.Errorf("unknown sensor source %q", cfg.Sensor.Source)
	}

	logger.Info("session ready",
		zap.String("sensor", cfg.Sensor.Source),
		zap.String("clock", fmt.Sprintf("%T", c)),
		zap.Bool("legacy_minutes", cfg.Dial.LegacyMinutes),
	)
	return rt, nil
}

// Start runs the orientation source until ctx is cancelled. The returned
// function blocks until the source has stopped.
func (rt *Runtime) Start(ctx context.Context) (wait func()) {
	done := make(chan struct{})
	if rt.Sim == nil {
		close(done)
		return func() { <-done }
	}

	go func() {
		defer close(done)
		if err := rt.Sim.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("orientation source failed", zap.Error(err))
		}
	}()
	return func() { <-done }
}

// Apply runs a keyboard action against the session.
func (rt *Runtime) Apply(a Action) bool {
	before := rt.Session.Machine().State()
	handled := rt.Session.Apply(a, rt.Manual)
	rt.noteTransition(before)
	return handled
}

// Gestures forwards classified gestures to the session.
func (rt *Runtime) Gestures(events []gesture.Event) {
	for _, ev := range events {
		rt.Metrics.Gesture(ev.Kind.String())
		before := rt.Session.Machine().State()
		rt.Session.HandleGesture(ev)
		rt.noteTransition(before)
	}
}

func (rt *Runtime) noteTransition(before display.State) {
	if after := rt.Session.Machine().State(); after != before {
		rt.Metrics.Transition(after.String())
	}
}

// LogSummary writes the run's counters to the log.
func (rt *Runtime) LogSummary() {
	summary, err := rt.Metrics.Summary()
	if err != nil {
		logger.Warn("gathering metrics failed", zap.Error(err))
		return
	}

	keys := make([]string, 0, len(summary))
	for k := range summary {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, zap.Float64(k, summary[k]))
	}
	logger.Info("session summary", fields...)
}
