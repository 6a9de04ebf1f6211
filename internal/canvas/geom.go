package canvas

import (
	"errors"
	"image"
	"math"
)

// ErrDegenerateSurface is returned when a surface has no area to map onto.
var ErrDegenerateSurface = errors.New("canvas: surface has zero width or height")

// Point is a position in either canvas or screen space.
type Point struct {
	X, Y float64
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Rect is an axis aligned rectangle spanning Min to Max.
type Rect struct {
	Min, Max Point
}

// R is shorthand for a rectangle from (x0,y0) to (x1,y1).
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{Point{x0, y0}, Point{x1, y1}}
}

// FromImage converts an integer image rectangle.
func FromImage(r image.Rectangle) Rect {
	return R(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y))
}

// Image rounds r outwards to whole pixels.
func (r Rect) Image() image.Rectangle {
	return image.Rect(
		int(math.Floor(r.Min.X)), int(math.Floor(r.Min.Y)),
		int(math.Ceil(r.Max.X)), int(math.Ceil(r.Max.Y)),
	)
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Width() <= 0 || r.Height() <= 0 }

// Contains reports whether p lies inside r. Max is exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Shrink moves every edge of r inwards by m.
func (r Rect) Shrink(m float64) Rect {
	return R(r.Min.X+m, r.Min.Y+m, r.Max.X-m, r.Max.Y-m)
}

// SquareProportions returns the size of r expressed in units of its shorter
// side, so the shorter dimension is always 1.
func (r Rect) SquareProportions() (w, h float64) {
	rw, rh := r.Width(), r.Height()
	if rw > rh {
		return rw / rh, 1
	}
	return 1, rh / rw
}

// Transform is an axis aligned affine map between two rectangles.
type Transform struct {
	from, to Rect
}

// FromTo maps from onto to.
func FromTo(from, to Rect) Transform {
	return Transform{from: from, to: to}
}

// CanvasTransform maps canvas space onto surface. Canvas space starts at the
// origin and one unit equals the shorter side of surface, so the scale is the
// same on both axes.
func CanvasTransform(surface Rect) (Transform, error) {
	if surface.Empty() {
		return Transform{}, ErrDegenerateSurface
	}
	w, h := surface.SquareProportions()
	return FromTo(R(0, 0, w, h), surface), nil
}

// Apply maps p from the source rectangle to the destination rectangle.
func (t Transform) Apply(p Point) Point {
	sx := t.to.Width() / t.from.Width()
	sy := t.to.Height() / t.from.Height()
	return Point{
		X: t.to.Min.X + (p.X-t.from.Min.X)*sx,
		Y: t.to.Min.Y + (p.Y-t.from.Min.Y)*sy,
	}
}

// Inverse swaps source and destination.
func (t Transform) Inverse() Transform {
	return Transform{from: t.to, to: t.from}
}

// Scale is the destination length of one source unit along x.
func (t Transform) Scale() float64 {
	return t.to.Width() / t.from.Width()
}
