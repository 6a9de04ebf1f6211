package appstate

import (
	"context"
	"image"
	"log"
	"sync"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
	"github.com/egxn/octopus-chalkboard/internal/capture"
	"github.com/egxn/octopus-chalkboard/internal/overlay"
	"github.com/egxn/octopus-chalkboard/internal/render"
)

// promoteTimeout bounds how long Main waits for the window manager to map
// the window before giving up on the hints.
const promoteTimeout = 5 * time.Second

var promoteFn = capture.Promote

func (a *AppState) notifyClose() {
	if a.onClose != nil {
		a.onClose()
	}
}

func (a *AppState) promote(ctx context.Context) {
	if a.Hints == (capture.Hints{}) {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, promoteTimeout)
	defer cancel()
	if err := promoteFn(ctx, a.Title, a.Hints); err != nil {
		log.Printf("window hints: %v", err)
	}
}

// surfaceFor is the drawing surface of a window of the given size.
func surfaceFor(sz image.Point) canvas.Rect {
	_, surface := render.Layout(image.Rectangle{Max: sz})
	return surface
}

// Main opens the overlay window and runs its event loop until the window
// closes or a quit action fires. It is meant to be passed to driver.Main.
func (a *AppState) Main(s screen.Screen) {
	sz := a.windowSize()
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: sz.X, Height: sz.Y, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.promote(ctx)

	log.Printf("session %s: %dx%d", a.Session.ID(), sz.X, sz.Y)

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	defer close(paintCh)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()

	var msg toast
	var ptr pointerTracker
	var expiry expiryTimer
	defer expiry.stop()

	apply := func(res overlay.Result) bool {
		for _, act := range res.Actions {
			text, quit := a.perform(act, sz)
			if quit {
				return true
			}
			if text != "" {
				msg.show(text)
				res.Changed = true
				expiry.schedule(messageDuration, func() { w.Send(paint.Event{}) })
			}
		}
		if res.Changed {
			w.Send(paint.Event{})
		}
		return false
	}

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				paintMu.Lock()
				if paintCancel != nil {
					paintCancel()
				}
				paintMu.Unlock()
				return
			}
		case size.Event:
			sz = e.Size()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			st := a.paintState(sz, msg)
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			surface := surfaceFor(sz)
			res := a.Session.Update(overlay.Frame{Surface: surface, Pointer: ptr.handle(e, surface)})
			if apply(res) {
				return
			}
		case key.Event:
			res := a.Session.Update(overlay.Frame{Surface: surfaceFor(sz), Keys: []key.Event{e}, Pointer: ptr.current()})
			if apply(res) {
				return
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}
