package keymap

import (
	"fmt"
	"image/color"

	"golang.org/x/mobile/event/key"
)

// WidthStep is how much one width key press changes the stroke width.
const WidthStep = 1.0

// Bindings holds the keys that change the stroke. Colour keys each select a
// fixed colour; the first width key widens the stroke and the second one
// narrows it. The zero value binds nothing.
type Bindings struct {
	colors  []ColorKey
	widths  []key.Code
	palette map[key.Code]color.RGBA
}

// NewBindings validates and builds a binding table.
func NewBindings(colors []ColorKey, widths []key.Code) (Bindings, error) {
	if len(widths) > 2 {
		return Bindings{}, fmt.Errorf("at most two width keys, got %d", len(widths))
	}
	seen := map[key.Code]bool{}
	b := Bindings{
		colors:  append([]ColorKey(nil), colors...),
		widths:  append([]key.Code(nil), widths...),
		palette: make(map[key.Code]color.RGBA, len(colors)),
	}
	check := func(c key.Code) error {
		if c == key.CodeUnknown {
			return fmt.Errorf("unknown key in bindings")
		}
		if seen[c] {
			return fmt.Errorf("key %s bound twice", KeyName(c))
		}
		seen[c] = true
		return nil
	}
	for _, ck := range colors {
		if err := check(ck.Code); err != nil {
			return Bindings{}, err
		}
		b.palette[ck.Code] = ck.Color
	}
	for _, c := range widths {
		if err := check(c); err != nil {
			return Bindings{}, err
		}
	}
	return b, nil
}

// DefaultBindings binds the number row to DefaultColors and Q/W to width.
func DefaultBindings() Bindings {
	b, err := NewBindings(DefaultColors, []key.Code{key.CodeQ, key.CodeW})
	if err != nil {
		panic(err)
	}
	return b
}

// IsColorKey reports whether c selects a colour.
func (b Bindings) IsColorKey(c key.Code) bool {
	_, ok := b.palette[c]
	return ok
}

// ColorFor returns the colour bound to c. Callers check IsColorKey first; a
// key outside the table is a bug and panics.
func (b Bindings) ColorFor(c key.Code) color.RGBA {
	col, ok := b.palette[c]
	if !ok {
		panic(fmt.Sprintf("keymap: %s is not a colour key", KeyName(c)))
	}
	return col
}

// WidthDelta returns the width change for c and whether c is a width key.
func (b Bindings) WidthDelta(c key.Code) (float64, bool) {
	for i, w := range b.widths {
		if w == c {
			if i == 0 {
				return WidthStep, true
			}
			return -WidthStep, true
		}
	}
	return 0, false
}

// Colors returns the colour keys in binding order.
func (b Bindings) Colors() []ColorKey { return append([]ColorKey(nil), b.colors...) }

// Widths returns the width keys, increase first.
func (b Bindings) Widths() []key.Code { return append([]key.Code(nil), b.widths...) }

// Empty reports whether no key changes the stroke.
func (b Bindings) Empty() bool { return len(b.colors) == 0 && len(b.widths) == 0 }

// Shortcuts are modifier chords handled outside the stroke tables.
type Shortcuts struct {
	Diagnostic Chord
	Copy       Chord
	Save       Chord
	PDF        Chord
	Quit       Chord
}

// DefaultShortcuts has no quit chord; the window manager closes the overlay.
func DefaultShortcuts() Shortcuts {
	return Shortcuts{
		Diagnostic: MustChord("ctrl+q"),
		Copy:       MustChord("ctrl+c"),
		Save:       MustChord("ctrl+s"),
		PDF:        MustChord("ctrl+p"),
	}
}
