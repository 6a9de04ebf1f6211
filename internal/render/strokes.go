package render

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
)

// Shapes strokes every shape onto dst as an open line strip with round caps
// and joins. Shapes narrower than zero width are invisible and skipped.
func Shapes(dst *image.RGBA, shapes []canvas.Shape) {
	if len(shapes) == 0 {
		return
	}
	dc := gg.NewContextForRGBA(dst)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()
	for _, sh := range shapes {
		if sh.Stroke.Width <= 0 || len(sh.Points) < 2 {
			continue
		}
		dc.SetColor(sh.Stroke.Color)
		dc.SetLineWidth(sh.Stroke.Width)
		dc.MoveTo(sh.Points[0].X, sh.Points[0].Y)
		for _, p := range sh.Points[1:] {
			dc.LineTo(p.X, p.Y)
		}
		dc.Stroke()
	}
}

// Border outlines r with a rounded rectangle.
func Border(dst *image.RGBA, r canvas.Rect, width, radius float64, c color.Color) {
	if r.Empty() || width <= 0 {
		return
	}
	dc := gg.NewContextForRGBA(dst)
	dc.SetColor(c)
	dc.SetLineWidth(width)
	// gg strokes centred on the path; half a pixel keeps a 1px line crisp
	dc.DrawRoundedRectangle(r.Min.X+0.5, r.Min.Y+0.5, r.Width()-1, r.Height()-1, radius)
	dc.Stroke()
}
