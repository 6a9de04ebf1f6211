// Package export writes the drawing out as PNG or PDF files.
package export

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"
	"github.com/jung-kurt/gofpdf"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
)

// NextPath returns the first unused octopus-<session>-<n>.<ext> in dir.
func NextPath(dir, session, ext string) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}
	for n := 1; n < 10000; n++ {
		p := filepath.Join(dir, fmt.Sprintf("octopus-%s-%d.%s", session, n, ext))
		if _, err := os.Stat(p); os.IsNotExist(err) {
			return p, nil
		}
	}
	return "", fmt.Errorf("no free file name in %s", dir)
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return gg.NewContextForImage(img).EncodePNG(w)
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	if err := gg.NewContextForImage(img).SavePNG(path); err != nil {
		return fmt.Errorf("save png %s: %w", path, err)
	}
	return nil
}

// PDF writes shapes as vector lines on a page the size of surface, one point
// per pixel with the surface origin at the top left of the page.
func PDF(w io.Writer, surface canvas.Rect, shapes []canvas.Shape) error {
	if surface.Empty() {
		return canvas.ErrDegenerateSurface
	}
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: surface.Width(), Ht: surface.Height()},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()
	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")

	for _, sh := range shapes {
		if sh.Stroke.Width <= 0 || len(sh.Points) < 2 {
			continue
		}
		c := sh.Stroke.Color
		p.SetDrawColor(int(c.R), int(c.G), int(c.B))
		p.SetAlpha(float64(c.A)/255, "Normal")
		p.SetLineWidth(sh.Stroke.Width)
		for i := 1; i < len(sh.Points); i++ {
			a, b := sh.Points[i-1], sh.Points[i]
			p.Line(a.X-surface.Min.X, a.Y-surface.Min.Y, b.X-surface.Min.X, b.Y-surface.Min.Y)
		}
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SavePDF writes the PDF to path.
func SavePDF(path string, surface canvas.Rect, shapes []canvas.Shape) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := PDF(f, surface, shapes); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
