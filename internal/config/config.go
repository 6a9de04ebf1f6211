package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/egxn/octopus-chalkboard/internal/keymap"
	"github.com/egxn/octopus-chalkboard/internal/theme"
)

// Stroke overrides the preset's starting pen. Zero values keep the preset.
type Stroke struct {
	Width    float64
	Color    string
	MinWidth float64
}

// Keys holds key lists and chords in their written form.
type Keys struct {
	Colors     string
	Width      string
	Diagnostic string
	Copy       string
	Save       string
	PDF        string
	Quit       string
}

// Notify holds notification settings.
type Notify struct {
	Save   bool
	Copy   bool
	Export bool
}

// Shadow configures the drop shadow under strokes.
type Shadow struct {
	Enabled bool
	Radius  int
	Opacity float64
	OffsetX int
	OffsetY int
}

// Config holds the application configuration.
type Config struct {
	Title       string
	Preset      string
	Theme       string
	ExportDir   string
	Transparent bool
	Fullscreen  bool

	Stroke  Stroke
	Keys    Keys
	Palette map[string]string
	Notify  Notify
	Shadow  Shadow
	Themes  map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	sc := keymap.DefaultShortcuts()
	return &Config{
		Transparent: true,
		Fullscreen:  true,
		Keys: Keys{
			Colors:     "1 2 3 4 5 6 7 8 9",
			Width:      "q w",
			Diagnostic: sc.Diagnostic.String(),
			Copy:       sc.Copy.String(),
			Save:       sc.Save.String(),
			PDF:        sc.PDF.String(),
		},
		Palette: make(map[string]string),
		Shadow: Shadow{
			Radius:  3,
			Opacity: 0.5,
			OffsetX: 2,
			OffsetY: 2,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	root := []struct{ k, v string }{
		{"title", c.Title},
		{"preset", c.Preset},
		{"theme", c.Theme},
		{"export_dir", c.ExportDir},
	}
	for _, kv := range root {
		if kv.v != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv.k, kv.v)
		}
	}
	fmt.Fprintf(&sb, "transparent = %v\n", c.Transparent)
	fmt.Fprintf(&sb, "fullscreen = %v\n", c.Fullscreen)
	sb.WriteString("\n")

	sb.WriteString("[stroke]\n")
	if c.Stroke.Width != 0 {
		fmt.Fprintf(&sb, "width = %g\n", c.Stroke.Width)
	}
	if c.Stroke.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Stroke.Color)
	}
	fmt.Fprintf(&sb, "min_width = %g\n", c.Stroke.MinWidth)
	sb.WriteString("\n")

	sb.WriteString("[keys]\n")
	fmt.Fprintf(&sb, "colors = %s\n", c.Keys.Colors)
	fmt.Fprintf(&sb, "width = %s\n", c.Keys.Width)
	fmt.Fprintf(&sb, "diagnostic = %s\n", c.Keys.Diagnostic)
	fmt.Fprintf(&sb, "copy = %s\n", c.Keys.Copy)
	fmt.Fprintf(&sb, "save = %s\n", c.Keys.Save)
	fmt.Fprintf(&sb, "pdf = %s\n", c.Keys.PDF)
	fmt.Fprintf(&sb, "quit = %s\n", c.Keys.Quit)
	sb.WriteString("\n")

	if len(c.Palette) > 0 {
		sb.WriteString("[palette]\n")
		for _, k := range sortedKeys(c.Palette) {
			fmt.Fprintf(&sb, "%s = %s\n", k, c.Palette[k])
		}
		sb.WriteString("\n")
	}

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	sb.WriteString("\n")

	sb.WriteString("[shadow]\n")
	fmt.Fprintf(&sb, "enabled = %v\n", c.Shadow.Enabled)
	fmt.Fprintf(&sb, "radius = %d\n", c.Shadow.Radius)
	fmt.Fprintf(&sb, "opacity = %g\n", c.Shadow.Opacity)
	fmt.Fprintf(&sb, "offset = %d,%d\n", c.Shadow.OffsetX, c.Shadow.OffsetY)
	sb.WriteString("\n")

	// Sort keys for deterministic output
	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		sb.WriteString(c.Themes[name].String())
		sb.WriteString("\n")
	}

	return sb.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
