// Package term runs the dial in a terminal with tcell.
//
// Each cell shows two vertically stacked pixels with the upper half block
// glyph, so a cols x rows screen renders a cols x 2*rows frame.
package term

import (
	"context"
	"image"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/sundial/internal/config"
	"github.com/Faultbox/sundial/internal/engine/debug"
	"github.com/Faultbox/sundial/internal/logger"
	"github.com/Faultbox/sundial/internal/overlay"
	"github.com/Faultbox/sundial/internal/render"
	"github.com/Faultbox/sundial/internal/sundial"
)

const halfBlock = '▀'

var textStyle = tcell.StyleDefault.
	Foreground(tcell.ColorWhite).
	Background(tcell.ColorBlack)

// Term draws frames to a tcell screen and feeds its input to the session.
type Term struct {
	screen tcell.Screen
	rt     *sundial.Runtime
	cfg    *config.Config
	snap   *debug.Snapshotter
	opts   render.Options
	log    *zap.Logger

	frame   *image.RGBA
	pressed bool
}

// New wraps an initialised screen.
func New(screen tcell.Screen, rt *sundial.Runtime, cfg *config.Config, snap *debug.Snapshotter) *Term {
	screen.EnableMouse()
	screen.HideCursor()
	return &Term{
		screen: screen,
		rt:     rt,
		cfg:    cfg,
		snap:   snap,
		opts:   render.OptionsFrom(cfg.Overlay),
		log:    logger.Named("term"),
	}
}

// Run draws and handles events until ctx is done or the user quits.
func (t *Term) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	wait := t.rt.Start(ctx)
	defer func() {
		cancel()
		wait()
		t.rt.LogSummary()
	}()

	fps := t.cfg.Display.FPSLimit
	if fps <= 0 {
		fps = 30
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	t.log.Info("terminal frontend started")
	t.Draw()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !t.HandleEvent(ev) {
				t.log.Info("terminal frontend stopped")
				return nil
			}
		case now := <-ticker.C:
			t.rt.Gestures(t.rt.Classifier.Poll(now))
			t.Draw()
		}
	}
}

// HandleEvent applies one tcell event. It returns false when the user asked
// to quit.
func (t *Term) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.handleKey(ev)
	case *tcell.EventMouse:
		t.handleMouse(ev)
	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *Term) handleKey(ev *tcell.EventKey) bool {
	var action sundial.Action
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRight:
		action = sundial.ActionShow
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		action = sundial.ActionHide
	case tcell.KeyRune:
		action = sundial.ActionForRune(ev.Rune())
	}

	switch action {
	case sundial.ActionNone:
		return true
	case sundial.ActionSnapshot:
		t.capture()
	default:
		t.rt.Apply(action)
	}
	t.log.Debug("key action", zap.Stringer("action", action))
	return true
}

// handleMouse turns button transitions into pointer presses. Cells are
// mapped onto the configured display size so gesture thresholds keep their
// pixel meaning.
func (t *Term) handleMouse(ev *tcell.EventMouse) {
	x, y := t.toPixels(ev.Position())
	down := ev.Buttons()&tcell.Button1 != 0

	switch {
	case down && !t.pressed:
		t.pressed = true
		t.rt.Gestures(t.rt.Classifier.Down(x, y, ev.When()))
	case !down && t.pressed:
		t.pressed = false
		t.rt.Gestures(t.rt.Classifier.Up(x, y, ev.When()))
	}
}

func (t *Term) toPixels(col, row int) (float64, float64) {
	cols, rows := t.screen.Size()
	if cols == 0 || rows == 0 {
		return 0, 0
	}
	sx := float64(t.cfg.Display.Width) / float64(cols)
	sy := float64(t.cfg.Display.Height) / float64(rows)
	return (float64(col) + 0.5) * sx, (float64(row) + 0.5) * sy
}

// Draw renders the current frame and shows it.
func (t *Term) Draw() {
	start := time.Now()
	cols, rows := t.screen.Size()
	w, h := cols, rows*2

	f := t.rt.Session.Frame(w, h)
	if t.cfg.Display.Width > 0 {
		f.PoleRadius = max(1, f.PoleRadius*w/t.cfg.Display.Width)
	}
	showing := f.Showing
	// Text goes in as cells; the bitmap font is unreadable at this size.
	f.Showing = false

	if t.frame == nil || t.frame.Bounds().Dx() != w || t.frame.Bounds().Dy() != h {
		t.frame = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	render.Draw(t.frame, f, t.opts)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := t.frame.RGBAAt(col, row*2)
			bottom := t.frame.RGBAAt(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			t.screen.SetContent(col, row, halfBlock, nil, style)
		}
	}

	if showing {
		for i, line := range overlay.Lines(f.Input) {
			t.drawText(1, 1+i, overlay.ExpandTabs(line, overlay.TabWidth))
		}
	}

	t.screen.Show()
	t.rt.Metrics.FrameRendered(time.Since(start))
}

func (t *Term) drawText(x, y int, s string) {
	cols, _ := t.screen.Size()
	for _, r := range s {
		if x >= cols {
			return
		}
		t.screen.SetContent(x, y, r, nil, textStyle)
		x++
	}
}

// capture saves a full-resolution frame at the configured display size.
func (t *Term) capture() {
	f := t.rt.Session.Frame(t.cfg.Display.Width, t.cfg.Display.Height)
	path, err := t.snap.Capture(render.Render(f, t.opts))
	if err != nil {
		t.log.Error("snapshot failed", zap.Error(err))
		return
	}
	t.rt.Metrics.Snapshot()
	t.log.Info("snapshot saved", zap.String("path", path))
}
