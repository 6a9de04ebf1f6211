// Package appstate hosts a drawing session in a shiny window: it turns
// window events into session frames and paints the result.
package appstate

import (
	"image"
	"log"
	"sync"
	"time"

	"github.com/egxn/octopus-chalkboard/internal/capture"
	"github.com/egxn/octopus-chalkboard/internal/notify"
	"github.com/egxn/octopus-chalkboard/internal/overlay"
	"github.com/egxn/octopus-chalkboard/internal/render"
	"github.com/egxn/octopus-chalkboard/internal/theme"
)

// DefaultTitle is the window title. The window manager hints are applied to
// the window that carries it.
const DefaultTitle = "Octopus 🐙"

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

// messageDuration is how long a toast stays on screen.
const messageDuration = 2 * time.Second

// fallbackSize is used when no monitor geometry can be read.
var fallbackSize = image.Pt(1280, 800)

// AppState owns the session and everything the window needs to present it.
type AppState struct {
	Session   *overlay.Session
	Theme     *theme.Theme
	Backdrop  *image.RGBA
	Title     string
	ExportDir string
	Shadow    *render.ShadowOptions
	Hints     capture.Hints
	Notifier  *notify.Notifier

	onClose func()
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithSession sets the drawing session. New creates a default one otherwise.
func WithSession(s *overlay.Session) Option { return func(a *AppState) { a.Session = s } }

// WithTheme sets the chrome colours.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithBackdrop sets the desktop snapshot painted behind the strokes.
func WithBackdrop(img *image.RGBA) Option { return func(a *AppState) { a.Backdrop = img } }

// WithTitle overrides the window title.
func WithTitle(title string) Option { return func(a *AppState) { a.Title = title } }

// WithExportDir sets where PNG and PDF exports are written.
func WithExportDir(dir string) Option { return func(a *AppState) { a.ExportDir = dir } }

// WithShadow enables a drop shadow under the strokes.
func WithShadow(o *render.ShadowOptions) Option { return func(a *AppState) { a.Shadow = o } }

// WithHints sets the window manager requests.
func WithHints(h capture.Hints) Option { return func(a *AppState) { a.Hints = h } }

// WithNotifier sets the desktop notifier for exports.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.Notifier = n } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

// New returns an AppState for a fullscreen, always-on-top overlay.
func New(opts ...Option) *AppState {
	a := &AppState{
		Title:     DefaultTitle,
		ExportDir: ".",
		Hints:     capture.Hints{Fullscreen: true, Above: true, Undecorated: true},
	}
	for _, o := range opts {
		o(a)
	}
	if a.Session == nil {
		a.Session = overlay.New()
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

// windowSize picks the initial window size: the backdrop if there is one,
// else the primary monitor.
func (a *AppState) windowSize() image.Point {
	if a.Backdrop != nil && !a.Backdrop.Bounds().Empty() {
		return a.Backdrop.Bounds().Size()
	}
	mon, err := capture.PrimaryMonitor()
	if err != nil {
		log.Printf("primary monitor: %v; using %dx%d", err, fallbackSize.X, fallbackSize.Y)
		return fallbackSize
	}
	return mon.Rect.Size()
}

// scene assembles what a window of the given size shows right now.
func (a *AppState) scene(size image.Point) render.Scene {
	border, surface := render.Layout(image.Rectangle{Max: size})
	sc := render.Scene{
		Fill:        a.Theme.Backdrop,
		Shapes:      a.Session.Shapes(surface),
		Shadow:      a.Shadow,
		Border:      border,
		BorderColor: a.Theme.Border,
	}
	if a.Backdrop != nil {
		sc.Backdrop = a.Backdrop
	}
	return sc
}

// snapshot renders the drawing surface without the border, for exports.
func (a *AppState) snapshot(size image.Point) *image.RGBA {
	sc := a.scene(size)
	sc.BorderColor = nil
	full := image.NewRGBA(image.Rectangle{Max: size})
	sc.Draw(full)
	_, surface := render.Layout(full.Bounds())
	r := surface.Image().Intersect(full.Bounds())
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	for y := 0; y < r.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+r.Dx()*4], full.Pix[full.PixOffset(r.Min.X, r.Min.Y+y):])
	}
	return out
}

// toast is a short message drawn over the board.
type toast struct {
	text  string
	until time.Time
}

func (t toast) visible(now time.Time) bool {
	return t.text != "" && now.Before(t.until)
}

func (t *toast) show(text string) {
	t.text = text
	t.until = time.Now().Add(messageDuration)
}

// expiryTimer repaints once when the visible toast runs out. A new toast
// replaces the pending timer; after stop nothing fires.
type expiryTimer struct {
	mu      sync.Mutex
	t       *time.Timer
	stopped bool
}

func (e *expiryTimer) schedule(d time.Duration, fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	if e.t != nil {
		e.t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		e.mu.Lock()
		live := !e.stopped && e.t == t
		e.mu.Unlock()
		if live {
			fn()
		}
	})
	e.t = t
}

func (e *expiryTimer) stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopped = true
	if e.t != nil {
		e.t.Stop()
	}
}
