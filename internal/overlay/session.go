// Package overlay holds the state of one drawing session: the polylines on
// the board, the current pen and the keys that change it.
package overlay

import (
	"image/color"
	"log"

	"github.com/google/uuid"
	"golang.org/x/mobile/event/key"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
	"github.com/egxn/octopus-chalkboard/internal/keymap"
)

// Action is what a key press asked the session to do.
type Action int

const (
	ActionNone Action = iota
	ActionColor
	ActionWidth
	ActionDiagnostic
	ActionCopy
	ActionSave
	ActionExportPDF
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionColor:
		return "color"
	case ActionWidth:
		return "width"
	case ActionDiagnostic:
		return "diagnostic"
	case ActionCopy:
		return "copy"
	case ActionSave:
		return "save"
	case ActionExportPDF:
		return "pdf"
	case ActionQuit:
		return "quit"
	}
	return "none"
}

// Session is mutated by one goroutine only, the host's event loop.
type Session struct {
	id        string
	drawing   canvas.Drawing
	width     float64
	color     color.RGBA
	minWidth  float64
	bindings  keymap.Bindings
	shortcuts keymap.Shortcuts
	logf      func(format string, args ...any)
}

// Option configures a Session.
type Option func(*Session)

// WithStroke sets the starting pen.
func WithStroke(s canvas.Stroke) Option {
	return func(ss *Session) {
		ss.width = s.Width
		ss.color = s.Color
	}
}

// WithBindings replaces the stroke key tables.
func WithBindings(b keymap.Bindings) Option {
	return func(s *Session) { s.bindings = b }
}

// WithShortcuts replaces the modifier chords.
func WithShortcuts(sc keymap.Shortcuts) Option {
	return func(s *Session) { s.shortcuts = sc }
}

// WithMinWidth clamps width changes at min. Zero leaves the width unclamped.
func WithMinWidth(min float64) Option {
	return func(s *Session) { s.minWidth = min }
}

// WithLogf redirects diagnostics.
func WithLogf(f func(format string, args ...any)) Option {
	return func(s *Session) { s.logf = f }
}

// WithID fixes the session id instead of generating one.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// New creates a session with a black 1.0 pen and the default bindings.
func New(opts ...Option) *Session {
	s := &Session{
		width:     1.0,
		color:     color.RGBA{0, 0, 0, 255},
		bindings:  keymap.DefaultBindings(),
		shortcuts: keymap.DefaultShortcuts(),
		logf:      log.Printf,
	}
	for _, o := range opts {
		o(s)
	}
	if s.id == "" {
		s.id = uuid.NewString()[:8]
	}
	return s
}

// ID is a short identifier used in window titles and export names.
func (s *Session) ID() string { return s.id }

// Stroke is the pen every polyline is drawn with.
func (s *Session) Stroke() canvas.Stroke {
	return canvas.Stroke{Width: s.width, Color: s.color}
}

// Drawing exposes the polylines for export.
func (s *Session) Drawing() *canvas.Drawing { return &s.drawing }

// Bindings returns the stroke key tables.
func (s *Session) Bindings() keymap.Bindings { return s.bindings }

// Shortcuts returns the modifier chords.
func (s *Session) Shortcuts() keymap.Shortcuts { return s.shortcuts }

// HandleKey applies one key event. Only presses count. Colour keys are
// checked first, then width keys, then chords; held modifiers do not stop
// a stroke key from matching.
func (s *Session) HandleKey(e key.Event) Action {
	if e.Direction != key.DirPress {
		return ActionNone
	}
	if s.bindings.IsColorKey(e.Code) {
		s.color = s.bindings.ColorFor(e.Code)
		return ActionColor
	}
	if d, ok := s.bindings.WidthDelta(e.Code); ok {
		s.width += d
		if s.minWidth > 0 && s.width < s.minWidth {
			s.width = s.minWidth
		}
		return ActionWidth
	}
	switch {
	case s.shortcuts.Diagnostic.Matches(e):
		s.logf("%s pressed", s.shortcuts.Diagnostic)
		return ActionDiagnostic
	case s.shortcuts.Copy.Matches(e):
		return ActionCopy
	case s.shortcuts.Save.Matches(e):
		return ActionSave
	case s.shortcuts.PDF.Matches(e):
		return ActionExportPDF
	case s.shortcuts.Quit.Matches(e):
		return ActionQuit
	}
	return ActionNone
}

// HandlePointer feeds one frame of pointer state into the drawing. It
// returns false without touching the drawing when surface has no area.
func (s *Session) HandlePointer(surface canvas.Rect, p canvas.Pointer) bool {
	t, err := canvas.CanvasTransform(surface)
	if err != nil {
		return false
	}
	return s.drawing.HandlePointer(t, p)
}

// Shapes returns the polylines mapped onto surface with the current pen.
func (s *Session) Shapes(surface canvas.Rect) []canvas.Shape {
	t, err := canvas.CanvasTransform(surface)
	if err != nil {
		return nil
	}
	return s.drawing.Shapes(t, s.Stroke())
}

// Frame is the input gathered for one iteration of the host loop.
type Frame struct {
	Surface canvas.Rect
	Keys    []key.Event
	Pointer canvas.Pointer
}

// Result reports what a frame did.
type Result struct {
	Actions []Action
	Changed bool
}

// Update dispatches the frame's keys in order, then its pointer state.
func (s *Session) Update(f Frame) Result {
	var r Result
	for _, e := range f.Keys {
		a := s.HandleKey(e)
		if a == ActionNone {
			continue
		}
		r.Actions = append(r.Actions, a)
		if a == ActionColor || a == ActionWidth {
			r.Changed = true
		}
	}
	if s.HandlePointer(f.Surface, f.Pointer) {
		r.Changed = true
	}
	return r
}
