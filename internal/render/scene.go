// Package render rasterises the drawing and the overlay chrome.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
)

// Scene is everything painted in one frame, back to front.
type Scene struct {
	// Backdrop is the desktop snapshot. Fill is used when it is nil.
	Backdrop image.Image
	Fill     color.Color

	Shapes []canvas.Shape
	Shadow *ShadowOptions

	// Border is skipped when empty.
	Border      canvas.Rect
	BorderColor color.Color
}

const (
	BorderInset  = 1.0
	BorderWidth  = 1.0
	BorderRadius = 2.0
	ContentInset = 4.0
)

// Layout splits a window rectangle into the border outline and the drawing
// surface.
func Layout(window image.Rectangle) (border, surface canvas.Rect) {
	r := canvas.FromImage(window)
	return r.Shrink(BorderInset), r.Shrink(ContentInset)
}

// Draw paints s over all of dst.
func (s Scene) Draw(dst *image.RGBA) {
	b := dst.Bounds()
	switch {
	case s.Backdrop != nil:
		draw.Draw(dst, b, s.Backdrop, s.Backdrop.Bounds().Min, draw.Src)
	case s.Fill != nil:
		draw.Draw(dst, b, image.NewUniform(s.Fill), image.Point{}, draw.Src)
	default:
		draw.Draw(dst, b, image.Transparent, image.Point{}, draw.Src)
	}

	if s.Shadow != nil && len(s.Shapes) > 0 {
		layer := image.NewRGBA(b)
		Shapes(layer, s.Shapes)
		DrawShadow(dst, layer, *s.Shadow)
		draw.Draw(dst, b, layer, b.Min, draw.Over)
	} else {
		Shapes(dst, s.Shapes)
	}

	if s.BorderColor != nil {
		Border(dst, s.Border, BorderWidth, BorderRadius, s.BorderColor)
	}
}
