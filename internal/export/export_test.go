package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
)

func TestNextPath(t *testing.T) {
	dir := t.TempDir()
	p1, err := NextPath(dir, "abcd1234", "png")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(p1) != "octopus-abcd1234-1.png" {
		t.Fatalf("first path = %s", p1)
	}
	if err := os.WriteFile(p1, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	p2, err := NextPath(dir, "abcd1234", "png")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(p2) != "octopus-abcd1234-2.png" {
		t.Fatalf("second path = %s", p2)
	}
}

func TestEncodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 7, 5))
	img.Set(3, 2, color.RGBA{25, 200, 100, 255})
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		t.Fatal(err)
	}
	out, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if out.Bounds().Dx() != 7 || out.Bounds().Dy() != 5 {
		t.Fatalf("bounds = %v", out.Bounds())
	}
	r, g, b, _ := out.At(3, 2).RGBA()
	if r>>8 != 25 || g>>8 != 200 || b>>8 != 100 {
		t.Fatalf("pixel = %v %v %v", r>>8, g>>8, b>>8)
	}
}

func TestPDF(t *testing.T) {
	shapes := []canvas.Shape{{
		Points: []canvas.Point{{X: 10, Y: 10}, {X: 50, Y: 40}, {X: 90, Y: 10}},
		Stroke: canvas.Stroke{Width: 3, Color: color.RGBA{254, 100, 11, 255}},
	}}
	var buf bytes.Buffer
	if err := PDF(&buf, canvas.R(4, 4, 204, 104), shapes); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output does not look like a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}

	path := filepath.Join(t.TempDir(), "out.pdf")
	if err := SavePDF(path, canvas.R(0, 0, 100, 100), shapes); err != nil {
		t.Fatal(err)
	}
	if st, err := os.Stat(path); err != nil || st.Size() == 0 {
		t.Fatalf("saved pdf: %v %v", st, err)
	}
}

func TestPDFDegenerate(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, canvas.R(0, 0, 0, 10), nil); !errors.Is(err, canvas.ErrDegenerateSurface) {
		t.Fatalf("err = %v", err)
	}
}
