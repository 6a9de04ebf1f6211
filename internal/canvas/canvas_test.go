package canvas

import (
	"errors"
	"image/color"
	"math"
	"testing"
)

func TestCanvasTransformRoundTrip(t *testing.T) {
	surfaces := []Rect{
		R(0, 0, 1920, 1080),
		R(4, 4, 1916, 1076),
		R(0, 0, 600, 800),
		R(10, 20, 11, 21),
		R(-50, -50, 50, 950),
	}
	for _, s := range surfaces {
		tr, err := CanvasTransform(s)
		if err != nil {
			t.Fatalf("CanvasTransform(%v): %v", s, err)
		}
		w, h := s.SquareProportions()
		for _, p := range []Point{{0, 0}, {w, h}, {w / 3, h / 7}, {0.5, 0.25}} {
			back := tr.Inverse().Apply(tr.Apply(p))
			if math.Abs(back.X-p.X) > 1e-9 || math.Abs(back.Y-p.Y) > 1e-9 {
				t.Errorf("surface %v: %v round trips to %v", s, p, back)
			}
		}
	}
}

func TestCanvasTransformUniformScale(t *testing.T) {
	tr, err := CanvasTransform(R(0, 0, 1920, 1080))
	if err != nil {
		t.Fatal(err)
	}
	got := tr.Apply(Point{1, 1})
	if got != (Point{1080, 1080}) {
		t.Fatalf("Apply(1,1) = %v, want (1080,1080)", got)
	}
	if tr.Scale() != 1080 {
		t.Fatalf("Scale() = %v", tr.Scale())
	}
}

func TestCanvasTransformDegenerate(t *testing.T) {
	for _, s := range []Rect{R(0, 0, 0, 0), R(0, 0, 100, 0), R(10, 10, 5, 20)} {
		if _, err := CanvasTransform(s); !errors.Is(err, ErrDegenerateSurface) {
			t.Errorf("CanvasTransform(%v) err = %v", s, err)
		}
	}
}

// identity maps one canvas unit to one pixel.
func identity(t *testing.T) Transform {
	t.Helper()
	return FromTo(R(0, 0, 100, 100), R(0, 0, 100, 100))
}

func down(x, y float64) Pointer { return Pointer{Pos: Point{x, y}, Down: true} }
func up() Pointer               { return Pointer{} }

func TestHandlePointerAppendsDistinctPoints(t *testing.T) {
	tr := identity(t)
	var d Drawing
	pts := []Point{{1, 1}, {2, 2}, {3, 5}, {8, 1}}
	for _, p := range pts {
		if !d.HandlePointer(tr, down(p.X, p.Y)) {
			t.Fatalf("point %v did not change the drawing", p)
		}
	}
	if d.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", d.Len())
	}
	cur := d.Current()
	if len(cur) != len(pts) {
		t.Fatalf("current = %v", cur)
	}
	for i := range pts {
		if cur[i] != pts[i] {
			t.Errorf("point %d = %v, want %v", i, cur[i], pts[i])
		}
	}
}

func TestHandlePointerDropsAdjacentDuplicates(t *testing.T) {
	tr := identity(t)
	var d Drawing
	seq := []Point{{1, 1}, {1, 1}, {2, 2}, {2, 2}, {1, 1}}
	for _, p := range seq {
		d.HandlePointer(tr, down(p.X, p.Y))
	}
	want := Polyline{{1, 1}, {2, 2}, {1, 1}}
	cur := d.Current()
	if len(cur) != len(want) {
		t.Fatalf("current = %v, want %v", cur, want)
	}
	for i := range want {
		if cur[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, cur[i], want[i])
		}
	}
}

func TestHandlePointerRelease(t *testing.T) {
	tr := identity(t)
	var d Drawing

	if d.HandlePointer(tr, up()) {
		t.Fatal("idle frame on an empty drawing reported a change")
	}
	if d.Len() != 1 || len(d.Current()) != 0 {
		t.Fatalf("idle frame should seed one empty polyline, got %v", d.Lines())
	}

	d.HandlePointer(tr, down(1, 1))
	if !d.HandlePointer(tr, up()) {
		t.Fatal("release did not report a change")
	}
	if d.Len() != 2 {
		t.Fatalf("Len() = %d after release, want 2", d.Len())
	}
	for i := 0; i < 3; i++ {
		if d.HandlePointer(tr, up()) {
			t.Fatal("repeated idle frame reported a change")
		}
	}
	if d.Len() != 2 {
		t.Fatalf("idle frames appended empties: %v", d.Lines())
	}
}

func TestHandlePointerTwoStrokes(t *testing.T) {
	tr := identity(t)
	var d Drawing
	for _, stroke := range [][]Point{{{1, 1}, {2, 2}}, {{5, 5}, {6, 6}, {7, 7}}} {
		for _, p := range stroke {
			d.HandlePointer(tr, down(p.X, p.Y))
		}
		d.HandlePointer(tr, up())
	}
	lines := d.Lines()
	if len(lines) != 3 {
		t.Fatalf("got %d polylines, want 3: %v", len(lines), lines)
	}
	if len(lines[0]) != 2 || len(lines[1]) != 3 || len(lines[2]) != 0 {
		t.Fatalf("unexpected polylines %v", lines)
	}
	if d.Strokes() != 2 {
		t.Fatalf("Strokes() = %d", d.Strokes())
	}
}

func TestHandlePointerMapsThroughInverse(t *testing.T) {
	tr, err := CanvasTransform(R(0, 0, 200, 100))
	if err != nil {
		t.Fatal(err)
	}
	var d Drawing
	d.HandlePointer(tr, down(150, 50))
	got := d.Current()[0]
	if got != (Point{1.5, 0.5}) {
		t.Fatalf("canvas point = %v, want (1.5,0.5)", got)
	}
}

func TestShapes(t *testing.T) {
	tr, err := CanvasTransform(R(0, 0, 200, 100))
	if err != nil {
		t.Fatal(err)
	}
	var d Drawing
	d.HandlePointer(tr, down(10, 10))
	d.HandlePointer(tr, up())
	d.HandlePointer(tr, down(20, 20))
	d.HandlePointer(tr, down(40, 30))

	s := Stroke{Width: 3, Color: color.RGBA{254, 100, 11, 255}}
	shapes := d.Shapes(tr, s)
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	if shapes[0].Stroke != s {
		t.Errorf("stroke = %+v", shapes[0].Stroke)
	}
	want := []Point{{20, 20}, {40, 30}}
	for i, p := range shapes[0].Points {
		if math.Abs(p.X-want[i].X) > 1e-9 || math.Abs(p.Y-want[i].Y) > 1e-9 {
			t.Errorf("shape point %d = %v, want %v", i, p, want[i])
		}
	}
}

func TestLinesIsACopy(t *testing.T) {
	tr := identity(t)
	var d Drawing
	d.HandlePointer(tr, down(1, 1))
	lines := d.Lines()
	lines[0][0] = Point{9, 9}
	if d.Current()[0] != (Point{1, 1}) {
		t.Fatal("Lines exposed internal storage")
	}
}

func TestRectHelpers(t *testing.T) {
	r := R(0, 0, 100, 50)
	if got := r.Shrink(4); got != R(4, 4, 96, 46) {
		t.Errorf("Shrink = %v", got)
	}
	if w, h := r.SquareProportions(); w != 2 || h != 1 {
		t.Errorf("SquareProportions = %v,%v", w, h)
	}
	if !r.Contains(Point{0, 0}) || r.Contains(Point{100, 10}) {
		t.Error("Contains edge handling")
	}
}
