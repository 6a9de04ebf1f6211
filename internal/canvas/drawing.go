package canvas

import "image/color"

// Polyline is one freehand stroke in canvas space.
type Polyline []Point

// Stroke is the pen every polyline is rendered with.
type Stroke struct {
	Width float64
	Color color.RGBA
}

// Shape is a polyline mapped to screen space, ready to rasterise as a line
// strip.
type Shape struct {
	Points []Point
	Stroke Stroke
}

// Pointer is the pointer state sampled once per frame. Down is true while the
// primary button is held and the press started on the surface.
type Pointer struct {
	Pos  Point
	Down bool
}

// Drawing is the ordered list of polylines on the board. The last polyline is
// the one the pointer is currently extending.
type Drawing struct {
	lines []Polyline
}

// Len returns the number of polylines, including an empty trailing one.
func (d *Drawing) Len() int { return len(d.lines) }

// Lines returns a copy of every polyline.
func (d *Drawing) Lines() []Polyline {
	out := make([]Polyline, len(d.lines))
	for i, l := range d.lines {
		out[i] = append(Polyline(nil), l...)
	}
	return out
}

// Current returns the polyline being extended, or nil for an empty drawing.
func (d *Drawing) Current() Polyline {
	if len(d.lines) == 0 {
		return nil
	}
	return d.lines[len(d.lines)-1]
}

// Strokes counts polylines with enough points to be drawn.
func (d *Drawing) Strokes() int {
	n := 0
	for _, l := range d.lines {
		if len(l) >= 2 {
			n++
		}
	}
	return n
}

// HandlePointer feeds one frame of pointer state into the drawing. While the
// pointer is down its position, mapped through the inverse of t, is appended
// unless it equals the last point exactly. Once the pointer is up a non empty
// current polyline is closed by starting a new empty one. The result reports
// whether the drawing changed.
func (d *Drawing) HandlePointer(t Transform, p Pointer) bool {
	if len(d.lines) == 0 {
		d.lines = append(d.lines, Polyline{})
	}
	last := len(d.lines) - 1
	cur := d.lines[last]
	if p.Down {
		pos := t.Inverse().Apply(p.Pos)
		if len(cur) == 0 || cur[len(cur)-1] != pos {
			d.lines[last] = append(cur, pos)
			return true
		}
		return false
	}
	if len(cur) > 0 {
		d.lines = append(d.lines, Polyline{})
		return true
	}
	return false
}

// Shapes maps every drawable polyline to screen space with t. All shapes use
// the same stroke s.
func (d *Drawing) Shapes(t Transform, s Stroke) []Shape {
	var shapes []Shape
	for _, l := range d.lines {
		if len(l) < 2 {
			continue
		}
		pts := make([]Point, len(l))
		for i, p := range l {
			pts[i] = t.Apply(p)
		}
		shapes = append(shapes, Shape{Points: pts, Stroke: s})
	}
	return shapes
}
