package appstate

import (
	"golang.org/x/mobile/event/mouse"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
)

// pointerTracker folds mouse events into the pointer state a session frame
// expects. A drag counts only if its press landed on the drawing surface;
// once started it keeps going outside the surface until the button is
// released.
type pointerTracker struct {
	pos      canvas.Point
	dragging bool
}

func (p *pointerTracker) handle(e mouse.Event, surface canvas.Rect) canvas.Pointer {
	p.pos = canvas.Point{X: float64(e.X), Y: float64(e.Y)}
	if e.Button == mouse.ButtonLeft {
		switch e.Direction {
		case mouse.DirPress:
			p.dragging = surface.Contains(p.pos)
		case mouse.DirRelease:
			p.dragging = false
		}
	}
	return p.current()
}

func (p *pointerTracker) current() canvas.Pointer {
	return canvas.Pointer{Pos: p.pos, Down: p.dragging}
}
