// Package config handles sundial configuration loading and management.
package config

import "time"

// Config holds all sundial settings.
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Dial     DialConfig     `yaml:"dial"`
	Gesture  GestureConfig  `yaml:"gesture"`
	Sensor   SensorConfig   `yaml:"sensor"`
	Location LocationConfig `yaml:"location"`
	Clock    ClockConfig    `yaml:"clock"`
	Overlay  OverlayConfig  `yaml:"overlay"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// DisplayConfig holds window settings. The defaults mimic a portrait phone.
type DisplayConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
	FPSLimit   int  `yaml:"fps_limit"`
}

// DialConfig holds the drawing and time-scale parameters of the dial.
type DialConfig struct {
	// ShadowBaseRatio is the pole reference length as a fraction of the
	// screen width.
	ShadowBaseRatio float64 `yaml:"shadow_base_ratio"`
	PoleRadius      int     `yaml:"pole_radius"`
	// LegacyMinutes converts minutes with /100 instead of /60.
	LegacyMinutes bool `yaml:"legacy_minutes"`
	IndexMark     bool `yaml:"index_mark"`
}

// GestureConfig holds pointer classification thresholds.
type GestureConfig struct {
	TouchSlop        float64       `yaml:"touch_slop"`         // pixels
	DoubleTapSlop    float64       `yaml:"double_tap_slop"`    // pixels
	MinFlingVelocity float64       `yaml:"min_fling_velocity"` // pixels per second
	DoubleTapTimeout time.Duration `yaml:"double_tap_timeout"`
}

// SensorConfig selects the orientation source.
type SensorConfig struct {
	Source      string        `yaml:"source"` // SensorSim or SensorManual
	StepDegrees float64       `yaml:"step_degrees"`
	Rate        time.Duration `yaml:"rate"`
}

// Orientation sources.
const (
	SensorSim    = "sim"
	SensorManual = "manual"
)

// LocationConfig is the fixed position shown in the overlay.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
}

// ClockConfig controls which time the dial shows.
type ClockConfig struct {
	// Fixed pins the dial to "HH:MM" today when not empty.
	Fixed string `yaml:"fixed"`
	// Scale accelerates wall time; 1 is real time.
	Scale float64 `yaml:"scale"`
}

// OverlayConfig holds overlay text settings.
type OverlayConfig struct {
	TextScale int `yaml:"text_scale"`
	X         int `yaml:"x"`
	Y         int `yaml:"y"`
	LineGap   int `yaml:"line_gap"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:      480,
			Height:     800,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   30,
		},
		Dial: DialConfig{
			ShadowBaseRatio: 1.0 / 6.0,
			PoleRadius:      20,
			LegacyMinutes:   true,
			IndexMark:       true,
		},
		Gesture: GestureConfig{
			TouchSlop:        8,
			DoubleTapSlop:    100,
			MinFlingVelocity: 50,
			DoubleTapTimeout: 300 * time.Millisecond,
		},
		Sensor: SensorConfig{
			Source:      SensorSim,
			StepDegrees: 5,
			Rate:        20 * time.Millisecond,
		},
		Location: LocationConfig{
			Latitude:  37.3352,
			Longitude: -121.8811,
		},
		Clock: ClockConfig{
			Fixed: "",
			Scale: 1,
		},
		Overlay: OverlayConfig{
			TextScale: 2,
			X:         10,
			Y:         60,
			LineGap:   50,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
