package config

import (
	"fmt"
	"image"

	"golang.org/x/mobile/event/key"

	"github.com/egxn/octopus-chalkboard/internal/keymap"
	"github.com/egxn/octopus-chalkboard/internal/overlay"
	"github.com/egxn/octopus-chalkboard/internal/render"
)

// Bindings builds the stroke key tables. Each colour key takes its colour
// from [palette], falling back to the default colour for the same key.
func (c *Config) Bindings() (keymap.Bindings, error) {
	codes, err := keymap.ParseKeys(c.Keys.Colors)
	if err != nil {
		return keymap.Bindings{}, fmt.Errorf("keys.colors: %w", err)
	}
	overrides := make(map[string]string, len(c.Palette))
	for k, v := range c.Palette {
		code, err := keymap.ParseKey(k)
		if err != nil {
			return keymap.Bindings{}, fmt.Errorf("palette: %w", err)
		}
		overrides[keymap.KeyName(code)] = v
	}

	colors := make([]keymap.ColorKey, 0, len(codes))
	for _, code := range codes {
		ck, ok := defaultFor(code)
		if spec, set := overrides[keymap.KeyName(code)]; set {
			col, err := keymap.ParseColor(spec)
			if err != nil {
				return keymap.Bindings{}, fmt.Errorf("palette %s: %w", keymap.KeyName(code), err)
			}
			ck = keymap.ColorKey{Code: code, Swatch: keymap.Swatch{Name: spec, Color: col}}
		} else if !ok {
			return keymap.Bindings{}, fmt.Errorf("no palette colour for key %s", keymap.KeyName(code))
		}
		colors = append(colors, ck)
	}

	widths, err := keymap.ParseKeys(c.Keys.Width)
	if err != nil {
		return keymap.Bindings{}, fmt.Errorf("keys.width: %w", err)
	}
	return keymap.NewBindings(colors, widths)
}

func defaultFor(code key.Code) (keymap.ColorKey, bool) {
	for _, ck := range keymap.DefaultColors {
		if ck.Code == code {
			return ck, true
		}
	}
	return keymap.ColorKey{}, false
}

// Shortcuts parses the modifier chords.
func (c *Config) Shortcuts() (keymap.Shortcuts, error) {
	var sc keymap.Shortcuts
	for _, f := range []struct {
		name string
		spec string
		dst  *keymap.Chord
	}{
		{"diagnostic", c.Keys.Diagnostic, &sc.Diagnostic},
		{"copy", c.Keys.Copy, &sc.Copy},
		{"save", c.Keys.Save, &sc.Save},
		{"pdf", c.Keys.PDF, &sc.PDF},
		{"quit", c.Keys.Quit, &sc.Quit},
	} {
		ch, err := keymap.ParseChord(f.spec)
		if err != nil {
			return keymap.Shortcuts{}, fmt.Errorf("keys.%s: %w", f.name, err)
		}
		*f.dst = ch
	}
	return sc, nil
}

// SessionOptions turns the preset, [stroke] and [keys] into session options.
// The simple preset keeps its empty key tables whatever [keys] says.
func (c *Config) SessionOptions() ([]overlay.Option, error) {
	preset, err := overlay.ParsePreset(c.Preset)
	if err != nil {
		return nil, err
	}
	opts := preset.Options()

	if preset == overlay.PresetFull {
		b, err := c.Bindings()
		if err != nil {
			return nil, err
		}
		opts = append(opts, overlay.WithBindings(b))
	}
	sc, err := c.Shortcuts()
	if err != nil {
		return nil, err
	}
	opts = append(opts, overlay.WithShortcuts(sc))

	if c.Stroke.Width != 0 || c.Stroke.Color != "" {
		pen := preset.Stroke()
		if c.Stroke.Width != 0 {
			pen.Width = c.Stroke.Width
		}
		if c.Stroke.Color != "" {
			col, err := keymap.ParseColor(c.Stroke.Color)
			if err != nil {
				return nil, fmt.Errorf("stroke.color: %w", err)
			}
			pen.Color = col
		}
		opts = append(opts, overlay.WithStroke(pen))
	}
	if c.Stroke.MinWidth > 0 {
		opts = append(opts, overlay.WithMinWidth(c.Stroke.MinWidth))
	}
	return opts, nil
}

// ShadowOptions returns nil when the shadow is disabled.
func (c *Config) ShadowOptions() *render.ShadowOptions {
	if !c.Shadow.Enabled {
		return nil
	}
	return &render.ShadowOptions{
		Radius:  c.Shadow.Radius,
		Offset:  image.Pt(c.Shadow.OffsetX, c.Shadow.OffsetY),
		Opacity: c.Shadow.Opacity,
	}
}
