// Package render draws a dial frame into an RGBA image.
//
// The layout follows a phone canvas: the dial is a disc as wide as the
// screen, the pole sits at its center and the shadow is a pole-wide
// rectangle reaching ShadowLength pixels "up" from the pole. Dial, shadow and
// pole are rotated together by RotationAngle degrees clockwise about the
// screen center. The overlay text is drawn unrotated.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/Faultbox/sundial/internal/config"
	"github.com/Faultbox/sundial/internal/sundial"
)

// Palette used by Draw.
var (
	BackgroundColor = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	DialColor       = color.RGBA{0x00, 0x33, 0x33, 0xFF}
	PoleColor       = color.RGBA{0x99, 0x66, 0x00, 0xFF}
	ShadowColor     = color.NRGBA{0x00, 0x00, 0x00, 0x66}
	MarkColor       = color.RGBA{0x33, 0x80, 0x80, 0xFF}
	TextColor       = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// Options controls the overlay text placement.
type Options struct {
	TextScale int
	TextX     int
	TextY     int // baseline of the first line
	LineGap   int
}

// DefaultOptions mirrors the phone layout: text at (10, 60), lines 50px
// apart.
func DefaultOptions() Options {
	return Options{TextScale: 2, TextX: 10, TextY: 60, LineGap: 50}
}

// OptionsFrom reads overlay placement from config.
func OptionsFrom(cfg config.OverlayConfig) Options {
	return Options{TextScale: cfg.TextScale, TextX: cfg.X, TextY: cfg.Y, LineGap: cfg.LineGap}
}

// Render allocates an image of the frame's size and draws into it.
func Render(f sundial.Frame, opts Options) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	Draw(img, f, opts)
	return img
}

// Draw paints f over the whole of dst. dst bounds must start at the origin.
func Draw(dst *image.RGBA, f sundial.Frame, opts Options) {
	b := dst.Bounds()
	draw.Draw(dst, b, image.NewUniform(BackgroundColor), image.Point{}, draw.Src)

	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}

	cx, cy := float64(w)/2, float64(h)/2
	rot := newRotator(cx, cy, f.Geometry.RotationAngle)
	radius := float64(w) / 2
	pole := float64(f.PoleRadius)

	p := newPainter(dst)

	p.circle(rot, cx, cy, radius)
	p.fill(DialColor)

	if f.IndexMark {
		p.polygon(rot,
			cx, cy-radius+radius*0.04,
			cx-radius*0.05, cy-radius+radius*0.14,
			cx+radius*0.05, cy-radius+radius*0.14,
		)
		p.fill(MarkColor)
	}

	// A negative length is an inverted rectangle and draws nothing.
	if length := f.Geometry.ShadowLength; length > 0 {
		p.polygon(rot,
			cx-pole, cy,
			cx+pole, cy,
			cx+pole, cy-length,
			cx-pole, cy-length,
		)
		p.fill(ShadowColor)
	}

	if pole > 0 {
		p.circle(rot, cx, cy, pole)
		p.fill(PoleColor)
	}

	if f.Showing {
		drawOverlay(dst, f, opts)
	}
}

// rotator rotates points clockwise on screen (y grows downward).
type rotator struct {
	cx, cy   float64
	sin, cos float64
}

func newRotator(cx, cy, degrees float64) rotator {
	rad := degrees * math.Pi / 180
	return rotator{cx: cx, cy: cy, sin: math.Sin(rad), cos: math.Cos(rad)}
}

func (r rotator) apply(x, y float64) (float32, float32) {
	dx, dy := x-r.cx, y-r.cy
	return float32(r.cx + dx*r.cos - dy*r.sin), float32(r.cy + dx*r.sin + dy*r.cos)
}

// painter accumulates one path at a time and fills it.
type painter struct {
	dst *image.RGBA
	z   *vector.Rasterizer
}

func newPainter(dst *image.RGBA) *painter {
	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.DrawOp = draw.Over
	return &painter{dst: dst, z: z}
}

func (p *painter) polygon(r rotator, xy ...float64) {
	x, y := r.apply(xy[0], xy[1])
	p.z.MoveTo(x, y)
	for i := 2; i+1 < len(xy); i += 2 {
		x, y = r.apply(xy[i], xy[i+1])
		p.z.LineTo(x, y)
	}
	p.z.ClosePath()
}

func (p *painter) circle(r rotator, cx, cy, radius float64) {
	k := radius * kappa
	move := func(x, y float64) { p.z.MoveTo(r.apply(x, y)) }
	cube := func(x1, y1, x2, y2, x3, y3 float64) {
		ax, ay := r.apply(x1, y1)
		bx, by := r.apply(x2, y2)
		qx, qy := r.apply(x3, y3)
		p.z.CubeTo(ax, ay, bx, by, qx, qy)
	}

	move(cx+radius, cy)
	cube(cx+radius, cy+k, cx+k, cy+radius, cx, cy+radius)
	cube(cx-k, cy+radius, cx-radius, cy+k, cx-radius, cy)
	cube(cx-radius, cy-k, cx-k, cy-radius, cx, cy-radius)
	cube(cx+k, cy-radius, cx+radius, cy-k, cx+radius, cy)
	p.z.ClosePath()
}

func (p *painter) fill(c color.Color) {
	b := p.dst.Bounds()
	p.z.Draw(p.dst, b, image.NewUniform(c), image.Point{})
	p.z.Reset(b.Dx(), b.Dy())
	p.z.DrawOp = draw.Over
}
