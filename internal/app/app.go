// Package app runs the dial in an SDL2 window.
package app

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/sundial/internal/config"
	"github.com/Faultbox/sundial/internal/engine/debug"
	"github.com/Faultbox/sundial/internal/engine/input"
	"github.com/Faultbox/sundial/internal/engine/renderer"
	"github.com/Faultbox/sundial/internal/engine/window"
	"github.com/Faultbox/sundial/internal/logger"
	"github.com/Faultbox/sundial/internal/render"
	"github.com/Faultbox/sundial/internal/sundial"
)

// App is the windowed dial.
type App struct {
	cfg      *config.Config
	log      *zap.Logger
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	rt       *sundial.Runtime
	snap     *debug.Snapshotter
	opts     render.Options

	frame    *image.RGBA
	snapshot bool
}

// New opens the window and wires the session.
func New(cfg *config.Config) (*App, error) {
	log := logger.Named("app")
	log.Info("initializing sundial",
		zap.Int("width", cfg.Display.Width),
		zap.Int("height", cfg.Display.Height),
	)

	rt, err := sundial.NewRuntime(cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		cfg:  cfg,
		log:  log,
		rt:   rt,
		snap: debug.NewSnapshotter("snapshots", "sundial"),
		opts: render.OptionsFrom(cfg.Overlay),
	}

	// Window first; it owns the OpenGL context.
	a.window, err = window.New(window.Config{
		Title:      "Sundial",
		Width:      cfg.Display.Width,
		Height:     cfg.Display.Height,
		Fullscreen: cfg.Display.Fullscreen,
		VSync:      cfg.Display.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: w, Height: h})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	log.Info("sundial initialized", zap.Int("drawable_width", w), zap.Int("drawable_height", h))
	return a, nil
}

// Run drives the frame loop until the window closes or Escape is pressed.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	wait := a.rt.Start(ctx)
	defer func() {
		cancel()
		wait()
		a.rt.LogSummary()
	}()

	var budget time.Duration
	if a.cfg.Display.FPSLimit > 0 {
		budget = time.Second / time.Duration(a.cfg.Display.FPSLimit)
	}

	frameCount := 0
	fpsTimer := time.Now()

	a.running = true
	a.log.Info("starting frame loop")

	for a.running {
		start := time.Now()

		ww, wh := a.window.Size()
		if a.input.Update(ww, wh) {
			break
		}
		a.handleEvents(a.input.Events())
		a.rt.Gestures(a.rt.Classifier.Poll(a.input.Now()))

		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.window.SwapBuffers()
		a.rt.Metrics.FrameRendered(time.Since(start))

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if budget > 0 {
			if rest := budget - time.Since(start); rest > 0 {
				time.Sleep(rest)
			}
		}
	}

	return nil
}

func (a *App) handleEvents(events []input.Event) {
	c := a.rt.Classifier
	for _, ev := range events {
		switch ev.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
		case input.EventPointerDown:
			a.rt.Gestures(c.Down(ev.X, ev.Y, ev.At))
		case input.EventPointerUp:
			a.rt.Gestures(c.Up(ev.X, ev.Y, ev.At))
		case input.EventKeyDown:
			a.handleKey(ev.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Keycode) {
	var action sundial.Action
	switch key {
	case sdl.K_ESCAPE:
		action = sundial.ActionQuit
	case sdl.K_RIGHT:
		action = sundial.ActionShow
	case sdl.K_BACKSPACE:
		action = sundial.ActionHide
	default:
		// Letter keycodes are their lowercase ASCII values.
		if key >= sdl.K_a && key <= sdl.K_z {
			action = sundial.ActionForRune(rune(key))
		}
	}

	switch action {
	case sundial.ActionNone:
		return
	case sundial.ActionQuit:
		a.running = false
	case sundial.ActionSnapshot:
		a.snapshot = true
	default:
		a.rt.Apply(action)
	}
	a.log.Debug("key action", zap.Stringer("action", action))
}

func (a *App) render() error {
	w, h := a.window.DrawableSize()
	f := a.rt.Session.Frame(w, h)

	if a.frame == nil || a.frame.Bounds().Dx() != w || a.frame.Bounds().Dy() != h {
		a.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	render.Draw(a.frame, f, a.opts)

	a.renderer.Upload(a.frame)
	a.renderer.Draw()

	if a.snapshot {
		a.snapshot = false
		img, err := a.renderer.ReadPixels()
		if err != nil {
			return fmt.Errorf("reading framebuffer: %w", err)
		}
		path, err := a.snap.Capture(img)
		if err != nil {
			a.log.Error("snapshot failed", zap.Error(err))
			return nil
		}
		a.rt.Metrics.Snapshot()
		a.log.Info("snapshot saved", zap.String("path", path))
	}
	return nil
}

// Close releases GL and SDL resources.
func (a *App) Close() {
	a.log.Info("closing sundial")

	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
