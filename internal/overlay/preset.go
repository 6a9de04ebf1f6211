package overlay

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
	"github.com/egxn/octopus-chalkboard/internal/keymap"
)

// Preset names a starting pen plus key tables.
type Preset string

const (
	PresetFull   Preset = "full"
	PresetSimple Preset = "simple"
)

// SimpleStroke is the fixed pen of the simple preset.
var SimpleStroke = canvas.Stroke{Width: 1.0, Color: color.RGBA{25, 200, 100, 255}}

// ParsePreset accepts "full", "simple" or an empty string for full.
func ParsePreset(s string) (Preset, error) {
	switch Preset(strings.ToLower(strings.TrimSpace(s))) {
	case "", PresetFull:
		return PresetFull, nil
	case PresetSimple:
		return PresetSimple, nil
	}
	return "", fmt.Errorf("unknown preset %q (want full or simple)", s)
}

// Stroke is the pen a session of preset p starts with.
func (p Preset) Stroke() canvas.Stroke {
	if p == PresetSimple {
		return SimpleStroke
	}
	return canvas.Stroke{Width: 1.0, Color: color.RGBA{0, 0, 0, 255}}
}

// Options returns the session options for p. The simple preset binds no
// stroke keys, so its pen never changes.
func (p Preset) Options() []Option {
	if p == PresetSimple {
		return []Option{WithStroke(p.Stroke()), WithBindings(keymap.Bindings{})}
	}
	return []Option{WithStroke(p.Stroke()), WithBindings(keymap.DefaultBindings())}
}
