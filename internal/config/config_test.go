package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Display.Width != 480 || cfg.Display.Height != 800 {
		t.Errorf("expected 480x800, got %dx%d", cfg.Display.Width, cfg.Display.Height)
	}
	if cfg.Display.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	if cfg.Dial.ShadowBaseRatio != 1.0/6.0 {
		t.Errorf("expected shadow base ratio 1/6, got %v", cfg.Dial.ShadowBaseRatio)
	}
	if cfg.Dial.PoleRadius != 20 {
		t.Errorf("expected pole radius 20, got %d", cfg.Dial.PoleRadius)
	}
	if !cfg.Dial.LegacyMinutes {
		t.Error("expected legacy minute scaling by default")
	}

	if cfg.Gesture.DoubleTapTimeout != 300*time.Millisecond {
		t.Errorf("expected double tap timeout 300ms, got %v", cfg.Gesture.DoubleTapTimeout)
	}
	if cfg.Sensor.Source != "sim" {
		t.Errorf("expected sim sensor, got %s", cfg.Sensor.Source)
	}
	if cfg.Clock.Scale != 1 {
		t.Errorf("expected clock scale 1, got %v", cfg.Clock.Scale)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
display:
  width: 720
  height: 1280
  fullscreen: true

dial:
  shadow_base_ratio: 0.25
  pole_radius: 12
  legacy_minutes: false

gesture:
  min_fling_velocity: 120
  double_tap_timeout: 250ms

sensor:
  source: manual
  step_degrees: 2.5

location:
  latitude: 51.5
  longitude: -0.12

clock:
  fixed: "09:00"
  scale: 60

logging:
  level: "debug"
  log_file: "sundial.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.Width != 720 || cfg.Display.Height != 1280 || !cfg.Display.Fullscreen {
		t.Errorf("display not loaded: %+v", cfg.Display)
	}
	if cfg.Dial.ShadowBaseRatio != 0.25 || cfg.Dial.PoleRadius != 12 || cfg.Dial.LegacyMinutes {
		t.Errorf("dial not loaded: %+v", cfg.Dial)
	}
	if cfg.Gesture.MinFlingVelocity != 120 {
		t.Errorf("expected min fling velocity 120, got %v", cfg.Gesture.MinFlingVelocity)
	}
	if cfg.Gesture.DoubleTapTimeout != 250*time.Millisecond {
		t.Errorf("expected double tap timeout 250ms, got %v", cfg.Gesture.DoubleTapTimeout)
	}
	// Untouched keys keep their defaults.
	if cfg.Gesture.TouchSlop != 8 {
		t.Errorf("expected default touch slop 8, got %v", cfg.Gesture.TouchSlop)
	}
	if cfg.Sensor.Source != "manual" || cfg.Sensor.StepDegrees != 2.5 {
		t.Errorf("sensor not loaded: %+v", cfg.Sensor)
	}
	if cfg.Location.Latitude != 51.5 || cfg.Location.Longitude != -0.12 {
		t.Errorf("location not loaded: %+v", cfg.Location)
	}
	if cfg.Clock.Fixed != "09:00" || cfg.Clock.Scale != 60 {
		t.Errorf("clock not loaded: %+v", cfg.Clock)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "sundial.log" {
		t.Errorf("logging not loaded: %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "invalid.yaml")

	invalidYAML := `
display:
  width: not a number
  invalid syntax here
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if err := loadFromFile(Default(), configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if err := loadFromFile(Default(), "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestLoadFile(t *testing.T) {
	cfg, err := LoadFile("")
	if err != nil {
		t.Fatalf("LoadFile(\"\") error: %v", err)
	}
	if cfg.Display.Width != 480 {
		t.Errorf("expected defaults, got width %d", cfg.Display.Width)
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("sensor:\n  source: gyro\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected validation error for unknown sensor source")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero width", func(c *Config) { c.Display.Width = 0 }, true},
		{"negative ratio", func(c *Config) { c.Dial.ShadowBaseRatio = -1 }, true},
		{"unknown sensor", func(c *Config) { c.Sensor.Source = "gps" }, true},
		{"zero clock scale", func(c *Config) { c.Clock.Scale = 0 }, true},
		{"zero text scale is raised", func(c *Config) { c.Overlay.TextScale = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if cfg.Overlay.TextScale < 1 {
				t.Errorf("text scale left at %d", cfg.Overlay.TextScale)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("display:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Display.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 1080
				*flagHeight = 1920
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Display.Width != 1080 || cfg.Display.Height != 1920 {
					t.Errorf("expected 1080x1920, got %dx%d", cfg.Display.Width, cfg.Display.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "time flag",
			setup: func() { *flagTime = "06:00" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Clock.Fixed != "06:00" {
					t.Errorf("expected fixed clock 06:00, got %q", cfg.Clock.Fixed)
				}
			},
			teardown: func() { *flagTime = "" },
		},
		{
			name:  "sensor flag",
			setup: func() { *flagSensor = "manual" },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Sensor.Source != "manual" {
					t.Errorf("expected manual sensor, got %s", cfg.Sensor.Source)
				}
			},
			teardown: func() { *flagSensor = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	yamlContent := `
display:
  width: 600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1080
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Display.Width != 1080 {
		t.Errorf("expected width 1080 from flag, got %d", cfg.Display.Width)
	}
	if cfg.Display.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Display.Height)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Location.Latitude = -33.86
	cfg.Clock.Fixed = "18:00"
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.Location.Latitude != -33.86 || loaded.Clock.Fixed != "18:00" {
		t.Errorf("saved values not reloaded: %+v %+v", loaded.Location, loaded.Clock)
	}
	if loaded.Gesture.DoubleTapTimeout != 300*time.Millisecond {
		t.Errorf("duration did not survive save, got %v", loaded.Gesture.DoubleTapTimeout)
	}
}
