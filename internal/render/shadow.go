package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn under strokes.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions is a soft shadow that keeps light strokes readable on
// a light desktop.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  3,
		Offset:  image.Pt(2, 2),
		Opacity: 0.5,
	}
}

// DrawShadow blurs the alpha of layer and draws it, shifted by opts.Offset,
// onto dst in black. The layer itself is not drawn.
func DrawShadow(dst, layer *image.RGBA, opts ShadowOptions) {
	if dst == nil || layer == nil || layer.Bounds().Empty() || opts.Opacity <= 0 {
		return
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	src := layer.Bounds()
	mask := image.NewGray(src.Sub(src.Min))
	empty := true
	for y := src.Min.Y; y < src.Max.Y; y++ {
		row := layer.Pix[layer.PixOffset(src.Min.X, y):]
		for x := 0; x < src.Dx(); x++ {
			a := row[x*4+3]
			if a == 0 {
				continue
			}
			empty = false
			mask.Pix[(y-src.Min.Y)*mask.Stride+x] = a
		}
	}
	if empty {
		return
	}

	blurred := blurGray(mask, radius)
	shade := image.NewUniform(color.RGBA{0, 0, 0, uint8(opacity*255 + 0.5)})
	target := src.Add(opts.Offset)
	draw.DrawMask(dst, target, shade, image.Point{}, blurred, image.Point{}, draw.Over)
}

// blurGray is a separable box blur built on running sums.
func blurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	tmp := image.NewGray(bounds)
	dst := image.NewGray(bounds)

	prefix := make([]int, max(w, h)+1)
	box := func(get func(i int) uint8, set func(i int, v uint8), n int) {
		for i := 0; i < n; i++ {
			prefix[i+1] = prefix[i] + int(get(i))
		}
		for i := 0; i < n; i++ {
			lo, hi := max(i-radius, 0), min(i+radius, n-1)
			set(i, uint8((prefix[hi+1]-prefix[lo])/(hi-lo+1)))
		}
	}
	for y := 0; y < h; y++ {
		row := y * src.Stride
		box(func(i int) uint8 { return src.Pix[row+i] },
			func(i int, v uint8) { tmp.Pix[y*tmp.Stride+i] = v }, w)
	}
	for x := 0; x < w; x++ {
		box(func(i int) uint8 { return tmp.Pix[i*tmp.Stride+x] },
			func(i int, v uint8) { dst.Pix[i*dst.Stride+x] = v }, h)
	}
	return dst
}
