package appstate

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/egxn/octopus-chalkboard/internal/render"
)

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 32, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// paintState is an immutable copy of everything one frame needs, handed to
// the paint goroutine.
type paintState struct {
	size    image.Point
	scene   render.Scene
	message toast
	msgBG   color.RGBA
	msgFG   color.RGBA
}

func (a *AppState) paintState(size image.Point, msg toast) paintState {
	return paintState{
		size:    size,
		scene:   a.scene(size),
		message: msg,
		msgBG:   a.Theme.MessageBackground,
		msgFG:   a.Theme.MessageText,
	}
}

// compose draws st into dst, checking ctx between layers so a newer frame can
// cancel it.
func compose(ctx context.Context, dst *image.RGBA, st paintState, now time.Time) bool {
	st.scene.Draw(dst)
	if ctx.Err() != nil {
		return false
	}
	if st.message.visible(now) {
		drawMessage(dst, st.message.text, st.msgBG, st.msgFG)
	}
	return ctx.Err() == nil
}

// drawMessage centres text in a filled box near the bottom of dst.
func drawMessage(dst *image.RGBA, text string, bg, fg color.RGBA) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: messageFace}
	wmsg := d.MeasureString(text).Ceil()
	ascent := messageFace.Metrics().Ascent.Ceil()
	descent := messageFace.Metrics().Descent.Ceil()
	b := dst.Bounds()
	px := b.Min.X + (b.Dx()-wmsg)/2
	py := b.Max.Y - b.Dy()/8 - descent
	rect := image.Rect(px-12, py-ascent-8, px+wmsg+12, py+descent+8)
	draw.Draw(dst, rect, image.NewUniform(bg), image.Point{}, draw.Over)
	d.Dot = fixed.P(px, py)
	d.DrawString(text)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	if st.size.X <= 0 || st.size.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(st.size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	if !compose(ctx, b.RGBA(), st, time.Now()) {
		return
	}
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
