package overlay

import (
	"fmt"
	"image/color"
	"math"
	"testing"

	"golang.org/x/mobile/event/key"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
	"github.com/egxn/octopus-chalkboard/internal/keymap"
)

var surface = canvas.R(0, 0, 100, 100)

func press(c key.Code) key.Event {
	return key.Event{Code: c, Direction: key.DirPress}
}

func ctrl(c key.Code) key.Event {
	return key.Event{Code: c, Direction: key.DirPress, Modifiers: key.ModControl}
}

func quiet() Option { return WithLogf(func(string, ...any) {}) }

func TestNewDefaults(t *testing.T) {
	s := New(quiet())
	if got := s.Stroke(); got.Width != 1.0 || got.Color != (color.RGBA{0, 0, 0, 255}) {
		t.Fatalf("default stroke = %+v", got)
	}
	if len(s.ID()) != 8 {
		t.Fatalf("ID() = %q", s.ID())
	}
	if New(quiet(), WithID("fixed")).ID() != "fixed" {
		t.Fatal("WithID ignored")
	}
}

func TestColorKeysAreDeterministic(t *testing.T) {
	for _, ck := range keymap.DefaultColors {
		s := New(quiet())
		s.HandleKey(press(key.CodeQ))
		s.HandleKey(press(key.Code7))
		if a := s.HandleKey(press(ck.Code)); a != ActionColor {
			t.Fatalf("%s: action %v", keymap.KeyName(ck.Code), a)
		}
		if s.Stroke().Color != ck.Color {
			t.Errorf("%s: colour %v, want %v", keymap.KeyName(ck.Code), s.Stroke().Color, ck.Color)
		}
		if s.Stroke().Width != 2.0 {
			t.Errorf("%s: width changed to %v", keymap.KeyName(ck.Code), s.Stroke().Width)
		}
	}
}

func TestWidthKeysUnclamped(t *testing.T) {
	for _, tt := range []struct{ up, down int }{{0, 0}, {2, 0}, {0, 3}, {5, 2}, {1, 4}} {
		t.Run(fmt.Sprintf("%d_up_%d_down", tt.up, tt.down), func(t *testing.T) {
			s := New(quiet())
			for i := 0; i < tt.up; i++ {
				s.HandleKey(press(key.CodeQ))
			}
			for i := 0; i < tt.down; i++ {
				s.HandleKey(press(key.CodeW))
			}
			want := 1.0 + float64(tt.up-tt.down)
			if got := s.Stroke().Width; got != want {
				t.Fatalf("width = %v, want %v", got, want)
			}
		})
	}
}

func TestMinWidthClamp(t *testing.T) {
	s := New(quiet(), WithMinWidth(1))
	for i := 0; i < 3; i++ {
		s.HandleKey(press(key.CodeW))
	}
	if got := s.Stroke().Width; got != 1 {
		t.Fatalf("width = %v, want 1", got)
	}
}

func TestReleasesAndUnboundKeysIgnored(t *testing.T) {
	s := New(quiet())
	before := s.Stroke()
	events := []key.Event{
		{Code: key.Code3, Direction: key.DirRelease},
		{Code: key.CodeQ, Direction: key.DirNone},
		press(key.Code0),
		press(key.CodeE),
	}
	for _, e := range events {
		if a := s.HandleKey(e); a != ActionNone {
			t.Errorf("event %+v gave %v", e, a)
		}
	}
	if s.Stroke() != before {
		t.Fatalf("stroke changed to %+v", s.Stroke())
	}
}

func TestModifiersDoNotMaskStrokeKeys(t *testing.T) {
	peach := color.RGBA{254, 100, 11, 255}
	tests := []struct {
		name   string
		ev     key.Event
		want   Action
		stroke canvas.Stroke
	}{
		{"ctrl+q widens", ctrl(key.CodeQ), ActionWidth, canvas.Stroke{Width: 2, Color: color.RGBA{0, 0, 0, 255}}},
		{"ctrl+w narrows", ctrl(key.CodeW), ActionWidth, canvas.Stroke{Width: 0, Color: color.RGBA{0, 0, 0, 255}}},
		{"ctrl+3 colours", ctrl(key.Code3), ActionColor, canvas.Stroke{Width: 1, Color: peach}},
		{"alt+3 colours", key.Event{Code: key.Code3, Direction: key.DirPress, Modifiers: key.ModAlt}, ActionColor, canvas.Stroke{Width: 1, Color: peach}},
		{"meta+q widens", key.Event{Code: key.CodeQ, Direction: key.DirPress, Modifiers: key.ModMeta}, ActionWidth, canvas.Stroke{Width: 2, Color: color.RGBA{0, 0, 0, 255}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logged []string
			s := New(WithLogf(func(format string, args ...any) {
				logged = append(logged, fmt.Sprintf(format, args...))
			}))
			if a := s.HandleKey(tt.ev); a != tt.want {
				t.Fatalf("action = %v, want %v", a, tt.want)
			}
			if s.Stroke() != tt.stroke {
				t.Fatalf("stroke = %+v, want %+v", s.Stroke(), tt.stroke)
			}
			if len(logged) != 0 {
				t.Fatalf("stroke key should not reach the diagnostic, logged %q", logged)
			}
		})
	}

	s := New(quiet())
	s.HandleKey(ctrl(key.CodeQ))
	s.HandleKey(ctrl(key.Code3))
	if got := s.Stroke(); got != (canvas.Stroke{Width: 2, Color: peach}) {
		t.Fatalf("ctrl+q then ctrl+3 = %+v", got)
	}
}

func TestDiagnosticChordDoesNotChangeState(t *testing.T) {
	var logged []string
	s := New(WithBindings(keymap.Bindings{}), WithLogf(func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}))
	s.Update(Frame{Surface: surface, Pointer: canvas.Pointer{Pos: canvas.Point{X: 5, Y: 5}, Down: true}})
	before, lines := s.Stroke(), s.Drawing().Lines()

	for _, e := range []key.Event{ctrl(key.CodeQ), {Code: key.CodeQ, Direction: key.DirPress, Modifiers: key.ModMeta}} {
		if a := s.HandleKey(e); a != ActionDiagnostic {
			t.Fatalf("action = %v", a)
		}
	}
	if len(logged) != 2 || logged[0] != "ctrl+q pressed" {
		t.Fatalf("logged %q", logged)
	}
	if s.Stroke() != before {
		t.Errorf("stroke changed to %+v", s.Stroke())
	}
	if got := s.Drawing().Lines(); len(got) != len(lines) || len(got[0]) != len(lines[0]) {
		t.Errorf("drawing changed: %v", got)
	}
}

func TestShortcutActions(t *testing.T) {
	sc := keymap.DefaultShortcuts()
	sc.Quit = keymap.MustChord("escape")
	s := New(quiet(), WithShortcuts(sc))
	tests := []struct {
		ev   key.Event
		want Action
	}{
		{ctrl(key.CodeC), ActionCopy},
		{ctrl(key.CodeS), ActionSave},
		{ctrl(key.CodeP), ActionExportPDF},
		{press(key.CodeEscape), ActionQuit},
	}
	for _, tt := range tests {
		if got := s.HandleKey(tt.ev); got != tt.want {
			t.Errorf("%+v: got %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestDrawScenario(t *testing.T) {
	s := New(quiet())
	keys := []key.Event{press(key.Code3), press(key.CodeQ), press(key.CodeQ)}
	res := s.Update(Frame{Surface: surface, Keys: keys})
	want := []Action{ActionColor, ActionWidth, ActionWidth}
	if fmt.Sprint(res.Actions) != fmt.Sprint(want) || !res.Changed {
		t.Fatalf("result = %+v", res)
	}

	pts := []canvas.Point{{X: 10, Y: 10}, {X: 20, Y: 15}, {X: 30, Y: 40}}
	for _, p := range pts {
		s.Update(Frame{Surface: surface, Pointer: canvas.Pointer{Pos: p, Down: true}})
	}

	st := s.Stroke()
	if st.Width != 3.0 || st.Color != (color.RGBA{254, 100, 11, 255}) {
		t.Fatalf("stroke = %+v", st)
	}
	cur := s.Drawing().Current()
	if len(cur) != 3 {
		t.Fatalf("current polyline = %v", cur)
	}
	for i, p := range pts {
		want := canvas.Point{X: p.X / 100, Y: p.Y / 100}
		if math.Abs(cur[i].X-want.X) > 1e-9 || math.Abs(cur[i].Y-want.Y) > 1e-9 {
			t.Errorf("canvas point %d = %v, want %v", i, cur[i], want)
		}
	}
	shapes := s.Shapes(surface)
	if len(shapes) != 1 || shapes[0].Stroke != st || len(shapes[0].Points) != 3 {
		t.Fatalf("shapes = %+v", shapes)
	}
}

func TestStrokeAppliesToEarlierLines(t *testing.T) {
	s := New(quiet())
	for _, p := range []canvas.Point{{X: 1, Y: 1}, {X: 2, Y: 2}} {
		s.Update(Frame{Surface: surface, Pointer: canvas.Pointer{Pos: p, Down: true}})
	}
	s.Update(Frame{Surface: surface})
	s.Update(Frame{Surface: surface, Keys: []key.Event{press(key.Code2)}})
	shapes := s.Shapes(surface)
	if len(shapes) != 1 || shapes[0].Stroke.Color != (color.RGBA{210, 15, 57, 255}) {
		t.Fatalf("shapes = %+v", shapes)
	}
}

func TestDegenerateSurface(t *testing.T) {
	s := New(quiet())
	res := s.Update(Frame{Surface: canvas.R(0, 0, 0, 0), Pointer: canvas.Pointer{Down: true}})
	if res.Changed || s.Drawing().Len() != 0 {
		t.Fatalf("degenerate frame touched the drawing: %+v", res)
	}
	if s.Shapes(canvas.R(0, 0, 10, 0)) != nil {
		t.Fatal("degenerate surface produced shapes")
	}
}

func TestSimplePreset(t *testing.T) {
	p, err := ParsePreset("Simple")
	if err != nil {
		t.Fatal(err)
	}
	s := New(append(p.Options(), quiet())...)
	for _, c := range []key.Code{key.Code1, key.Code5, key.CodeQ, key.CodeW} {
		if a := s.HandleKey(press(c)); a != ActionNone {
			t.Errorf("%s gave %v", keymap.KeyName(c), a)
		}
	}
	if s.Stroke() != SimpleStroke {
		t.Fatalf("stroke = %+v", s.Stroke())
	}
	if _, err := ParsePreset("fancy"); err == nil {
		t.Fatal("expected error for unknown preset")
	}
}
