// dialshot computes and renders single dial frames without a display.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Faultbox/sundial/internal/clock"
	"github.com/Faultbox/sundial/internal/config"
	"github.com/Faultbox/sundial/internal/display"
	"github.com/Faultbox/sundial/internal/engine/debug"
	"github.com/Faultbox/sundial/internal/render"
	"github.com/Faultbox/sundial/internal/sensor"
	"github.com/Faultbox/sundial/internal/sundial"
	"github.com/Faultbox/sundial/pkg/dial"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "compute":
		err = cmdCompute(args, os.Stdout)
	case "render":
		err = cmdRender(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `dialshot - sundial geometry and frame utility

Usage:
  dialshot <command> [options]

Commands:
  compute   Print rotation and shadow length for a scene
  render    Write a scene to a PNG file
  config    Write the effective config as YAML (-o FILE, default user config dir)

Scene options:
  -time HH:MM        time of day (default 12:00)
  -azimuth, -pitch, -roll DEG
  -width, -height PX frame size (default from config)
  -show              draw the information overlay
  -config FILE       YAML config for dial and overlay settings

Examples:
  dialshot compute -time 09:00 -azimuth 30
  dialshot render -time 15:30 -pitch 10 -show -o dial.png`)
}

// scene holds the flags shared by every command.
type scene struct {
	cfgPath string
	at      string
	azimuth float64
	pitch   float64
	roll    float64
	width   int
	height  int
	show    bool
}

func (s *scene) register(fs *flag.FlagSet) {
	fs.StringVar(&s.cfgPath, "config", "", "Path to config file")
	fs.StringVar(&s.at, "time", "12:00", "Time of day, HH:MM")
	fs.Float64Var(&s.azimuth, "azimuth", 0, "Azimuth in degrees")
	fs.Float64Var(&s.pitch, "pitch", 0, "Pitch in degrees")
	fs.Float64Var(&s.roll, "roll", 0, "Roll in degrees")
	fs.IntVar(&s.width, "width", 0, "Frame width (0 = config)")
	fs.IntVar(&s.height, "height", 0, "Frame height (0 = config)")
	fs.BoolVar(&s.show, "show", false, "Draw the information overlay")
}

// build loads config and returns the frame the scene describes.
func (s *scene) build() (sundial.Frame, *config.Config, error) {
	cfg, err := config.LoadFile(s.cfgPath)
	if err != nil {
		return sundial.Frame{}, nil, err
	}
	if s.width > 0 {
		cfg.Display.Width = s.width
	}
	if s.height > 0 {
		cfg.Display.Height = s.height
	}

	at, err := clock.Parse(s.at, time.Now())
	if err != nil {
		return sundial.Frame{}, nil, err
	}

	store := sensor.NewStore(dial.Location{
		Latitude:  cfg.Location.Latitude,
		Longitude: cfg.Location.Longitude,
	})
	store.PublishOrientation([3]float64{s.azimuth, s.pitch, s.roll})

	session := sundial.New(clock.NewFixed(at), store, display.New(), cfg.Dial)
	if s.show {
		session.Apply(sundial.ActionShow, nil)
	}
	return session.Frame(cfg.Display.Width, cfg.Display.Height), cfg, nil
}

func cmdCompute(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("compute", flag.ContinueOnError)
	var s scene
	s.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, _, err := s.build()
	if err != nil {
		return err
	}

	in := f.Input
	fmt.Fprintf(out, "Hours:     %.4f\n", in.Time.Hours())
	fmt.Fprintf(out, "Azimuth:   %g\n", in.Orientation.Azimuth)
	fmt.Fprintf(out, "Pitch:     %g\n", in.Orientation.Pitch)
	fmt.Fprintf(out, "Roll:      %g\n", in.Orientation.Roll)
	fmt.Fprintf(out, "Base:      %.4f px\n", f.BaseLength)
	fmt.Fprintf(out, "Rotation:  %.4f deg\n", f.Geometry.RotationAngle)
	fmt.Fprintf(out, "Shadow:    %.4f px\n", f.Geometry.ShadowLength)
	return nil
}

func cmdRender(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	var s scene
	s.register(fs)
	output := fs.String("o", "dial.png", "Output PNG path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, cfg, err := s.build()
	if err != nil {
		return err
	}

	img := render.Render(f, render.OptionsFrom(cfg.Overlay))
	if err := debug.SavePNG(*output, img); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s (%dx%d)\n", *output, f.Width, f.Height)
	return nil
}

func cmdConfig(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Config file to start from")
	output := fs.String("o", "", "Output path (default: user config dir)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.LoadFile(*cfgPath)
	if err != nil {
		return err
	}

	path := *output
	if path == "" {
		if err := cfg.Save(); err != nil {
			return err
		}
		path = filepath.Join(config.ConfigDir(), "config.yaml")
	} else if err := cfg.SaveTo(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}
