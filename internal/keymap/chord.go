package keymap

import (
	"fmt"
	"strings"

	"golang.org/x/mobile/event/key"
)

// Chord is a key pressed together with modifiers. The zero Chord is unbound.
type Chord struct {
	Code      key.Code
	Modifiers key.Modifiers
}

// Bound reports whether c refers to a key.
func (c Chord) Bound() bool { return c.Code != key.CodeUnknown }

// Matches reports whether e is a press of c. Meta (command) counts as
// Control so the same chord works on every platform.
func (c Chord) Matches(e key.Event) bool {
	if !c.Bound() || e.Code != c.Code {
		return false
	}
	return normalize(e.Modifiers) == normalize(c.Modifiers)
}

func normalize(m key.Modifiers) key.Modifiers {
	if m&key.ModMeta != 0 {
		m = m&^key.ModMeta | key.ModControl
	}
	return m
}

var modNames = []struct {
	name string
	mod  key.Modifiers
}{
	{"ctrl", key.ModControl},
	{"alt", key.ModAlt},
	{"shift", key.ModShift},
	{"meta", key.ModMeta},
}

// ParseChord parses chords written as "ctrl+q" or "ctrl+shift+s". "cmd" and
// "super" are accepted for meta. An empty string yields the unbound chord.
func ParseChord(s string) (Chord, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "none" {
		return Chord{}, nil
	}
	parts := strings.Split(s, "+")
	var c Chord
	for _, p := range parts[:len(parts)-1] {
		switch strings.TrimSpace(p) {
		case "ctrl", "control":
			c.Modifiers |= key.ModControl
		case "alt":
			c.Modifiers |= key.ModAlt
		case "shift":
			c.Modifiers |= key.ModShift
		case "meta", "cmd", "super":
			c.Modifiers |= key.ModMeta
		default:
			return Chord{}, fmt.Errorf("unknown modifier %q in %q", p, s)
		}
	}
	code, err := ParseKey(parts[len(parts)-1])
	if err != nil {
		return Chord{}, fmt.Errorf("chord %q: %w", s, err)
	}
	c.Code = code
	return c, nil
}

// String formats c so that ParseChord reads it back.
func (c Chord) String() string {
	if !c.Bound() {
		return ""
	}
	var sb strings.Builder
	for _, m := range modNames {
		if c.Modifiers&m.mod != 0 {
			sb.WriteString(m.name)
			sb.WriteByte('+')
		}
	}
	sb.WriteString(KeyName(c.Code))
	return sb.String()
}

// MustChord is ParseChord for package level defaults.
func MustChord(s string) Chord {
	c, err := ParseChord(s)
	if err != nil {
		panic(err)
	}
	return c
}
