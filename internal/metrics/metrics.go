// Package metrics counts what a running dial does. Nothing is exported over
// the network; frontends log a Summary when they exit.
package metrics

import (
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds one registry per running frontend. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	reg *prometheus.Registry

	frames       prometheus.Counter
	frameSeconds prometheus.Histogram
	gestures     *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	snapshots    prometheus.Counter
}

// New creates and registers the sundial metrics.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sundial_frames_total",
			Help: "Frames rendered.",
		}),
		frameSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "sundial_frame_duration_seconds",
			Help:    "Time spent drawing one frame.",
			Buckets: []float64{.001, .002, .005, .01, .02, .05, .1},
		}),
		gestures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sundial_gestures_total",
				Help: "Classified gestures by kind.",
			},
			[]string{"kind"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sundial_overlay_transitions_total",
				Help: "Overlay state changes by target state.",
			},
			[]string{"to"},
		),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sundial_snapshots_total",
			Help: "PNG snapshots written.",
		}),
	}

	m.reg.MustRegister(m.frames, m.frameSeconds, m.gestures, m.transitions, m.snapshots)
	return m
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// FrameRendered records one frame that took d to draw.
func (m *Metrics) FrameRendered(d time.Duration) {
	if m == nil {
		return
	}
	m.frames.Inc()
	m.frameSeconds.Observe(d.Seconds())
}

// Gesture records a classified gesture.
func (m *Metrics) Gesture(kind string) {
	if m == nil {
		return
	}
	m.gestures.WithLabelValues(kind).Inc()
}

// Transition records an overlay state change.
func (m *Metrics) Transition(to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(to).Inc()
}

// Snapshot records a written PNG.
func (m *Metrics) Snapshot() {
	if m == nil {
		return
	}
	m.snapshots.Inc()
}

// Summary flattens counters into "name{label=value}" keys. Histograms
// report their sample count.
func (m *Metrics) Summary() (map[string]float64, error) {
	out := make(map[string]float64)
	if m == nil {
		return out, nil
	}

	families, err := m.reg.Gather()
	if err != nil {
		return nil, err
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			key := mf.GetName() + labelSuffix(metric.GetLabel())
			switch {
			case metric.GetCounter() != nil:
				out[key] = metric.GetCounter().GetValue()
			case metric.GetHistogram() != nil:
				out[key+"_count"] = float64(metric.GetHistogram().GetSampleCount())
			}
		}
	}
	return out, nil
}

func labelSuffix(labels []*dto.LabelPair) string {
	if len(labels) == 0 {
		return ""
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].GetName() < labels[j].GetName() })
	s := "{"
	for i, l := range labels {
		if i > 0 {
			s += ","
		}
		s += l.GetName() + "=" + l.GetValue()
	}
	return s + "}"
}
