package capture

import (
	"errors"
	"image"
)

type platformBackend interface {
	Monitors() ([]MonitorInfo, error)
	RootImage(image.Rectangle) (*image.RGBA, error)
	FindWindow(title string) (uint32, error)
	ApplyHints(id uint32, h Hints) error
}

var backend = newBackend()

var (
	errNoMonitors     = errors.New("no monitors available")
	errWindowNotFound = errors.New("window not found")
)

// MonitorInfo describes an individual monitor in the display layout.
type MonitorInfo struct {
	Index   int
	Name    string
	Rect    image.Rectangle
	Primary bool
}

// Hints are the window manager requests made for the overlay window.
type Hints struct {
	Fullscreen  bool
	Above       bool
	Undecorated bool
}
