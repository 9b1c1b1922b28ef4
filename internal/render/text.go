package render

import (
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/sundial/internal/overlay"
	"github.com/Faultbox/sundial/internal/sundial"
)

var face = basicfont.Face7x13

// drawOverlay draws the diagnostic lines, upscaling the bitmap font by
// opts.TextScale.
func drawOverlay(dst *image.RGBA, f sundial.Frame, opts Options) {
	scale := opts.TextScale
	if scale < 1 {
		scale = 1
	}
	ascent := face.Metrics().Ascent.Ceil()

	for i, line := range overlay.Lines(f.Input) {
		text := overlay.ExpandTabs(line, overlay.TabWidth)
		glyphs := rasterizeLine(text)
		if glyphs == nil {
			continue
		}

		baseline := opts.TextY + i*opts.LineGap
		gb := glyphs.Bounds()
		target := image.Rect(
			opts.TextX,
			baseline-ascent*scale,
			opts.TextX+gb.Dx()*scale,
			baseline-ascent*scale+gb.Dy()*scale,
		)
		xdraw.NearestNeighbor.Scale(dst, target, glyphs, gb, draw.Over, nil)
	}
}

// rasterizeLine renders text at 1x on a transparent background.
func rasterizeLine(text string) *image.RGBA {
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()
	if width == 0 || height == 0 {
		return nil
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(TextColor),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
	return img
}

// TextBounds returns the area the overlay occupies for f, for callers that
// need to redraw or probe it.
func TextBounds(f sundial.Frame, opts Options) image.Rectangle {
	scale := opts.TextScale
	if scale < 1 {
		scale = 1
	}
	ascent := face.Metrics().Ascent.Ceil()
	height := face.Metrics().Height.Ceil()

	var r image.Rectangle
	for i, line := range overlay.Lines(f.Input) {
		text := overlay.ExpandTabs(line, overlay.TabWidth)
		width := font.MeasureString(face, text).Ceil()
		top := opts.TextY + i*opts.LineGap - ascent*scale
		r = r.Union(image.Rect(opts.TextX, top, opts.TextX+width*scale, top+height*scale))
	}
	return r
}
