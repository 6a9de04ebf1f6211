package theme

import (
	"image/color"
)

// Theme holds the colours of the overlay chrome. Stroke colours come from the
// key palette, not from here.
type Theme struct {
	Name string

	// Border is the thin outline around the drawing surface.
	Border color.RGBA
	// Backdrop fills the window when no desktop snapshot is available.
	Backdrop color.RGBA

	// Toast message shown after saving or copying
	MessageBackground color.RGBA
	MessageText       color.RGBA
}

// Default returns the built-in light theme.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Border:            color.RGBA{76, 79, 105, 255},
		Backdrop:          color.RGBA{239, 241, 245, 255},
		MessageBackground: color.RGBA{0, 0, 0, 200},
		MessageText:       color.RGBA{255, 255, 255, 255},
	}
}
