package keymap

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/mobile/event/key"
)

// Swatch is a named colour.
type Swatch struct {
	Name  string
	Color color.RGBA
}

// ColorKey binds a key to a swatch.
type ColorKey struct {
	Code key.Code
	Swatch
}

// DefaultColors is the number row palette. Key 0 is not bound.
var DefaultColors = []ColorKey{
	{key.Code1, Swatch{"mauve", color.RGBA{136, 57, 239, 255}}},
	{key.Code2, Swatch{"red", color.RGBA{210, 15, 57, 255}}},
	{key.Code3, Swatch{"peach", color.RGBA{254, 100, 11, 255}}},
	{key.Code4, Swatch{"green", color.RGBA{64, 160, 43, 255}}},
	{key.Code5, Swatch{"sapphire", color.RGBA{32, 159, 181, 255}}},
	{key.Code6, Swatch{"blue", color.RGBA{30, 102, 245, 255}}},
	{key.Code7, Swatch{"lavender", color.RGBA{114, 135, 253, 255}}},
	{key.Code8, Swatch{"text", color.RGBA{76, 79, 105, 255}}},
	{key.Code9, Swatch{"base", color.RGBA{239, 241, 245, 255}}},
}

// ParseColor accepts #RRGGBB, #RRGGBBAA, an SVG colour name or a name from
// DefaultColors.
func ParseColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	for _, ck := range DefaultColors {
		if ck.Name == spec {
			return ck.Color, nil
		}
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") && (len(spec) == 7 || len(spec) == 9) {
		v, err := strconv.ParseUint(spec[1:], 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q", s)
		}
		if len(spec) == 7 {
			return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
		}
		return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

// FormatColor writes c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func FormatColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}
