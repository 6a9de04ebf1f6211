// Package capture snapshots the desktop behind the overlay and asks the
// window manager to keep the overlay fullscreen and on top.
package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"log"
	"time"
)

var portalScreenshotFn = portalScreenshot

// Desktop returns the pixels of the primary monitor. X11 is read directly;
// Wayland sessions, or an X server that refuses, go through the screenshot
// portal.
func Desktop(ctx context.Context) (*image.RGBA, error) {
	mon, monErr := PrimaryMonitor()
	if monErr == nil && !runningOnWayland() {
		img, err := backend.RootImage(mon.Rect)
		if err == nil {
			return img, nil
		}
		log.Printf("capture: x11 root image: %v; trying portal", err)
	}
	shot, err := portalScreenshotFn(ctx)
	if err != nil {
		if monErr != nil {
			return nil, fmt.Errorf("desktop snapshot: %w", errors.Join(monErr, err))
		}
		return nil, fmt.Errorf("desktop snapshot: %w", err)
	}
	if monErr != nil {
		return shot, nil
	}
	return cropToRect(shot, mon.Rect)
}

// PrimaryMonitor returns the primary monitor, or the first one when none is
// flagged primary.
func PrimaryMonitor() (MonitorInfo, error) {
	monitors, err := backend.Monitors()
	if err != nil {
		return MonitorInfo{}, err
	}
	if len(monitors) == 0 {
		return MonitorInfo{}, errNoMonitors
	}
	for _, m := range monitors {
		if m.Primary {
			return m, nil
		}
	}
	return monitors[0], nil
}

const promotePoll = 50 * time.Millisecond

// Promote waits for a top-level window titled title to appear and applies
// hints to it. It gives up when ctx is done.
func Promote(ctx context.Context, title string, hints Hints) error {
	ticker := time.NewTicker(promotePoll)
	defer ticker.Stop()
	for {
		id, err := backend.FindWindow(title)
		if err == nil {
			if err := backend.ApplyHints(id, hints); err != nil {
				return fmt.Errorf("window hints for %q: %w", title, err)
			}
			return nil
		}
		if !errors.Is(err, errWindowNotFound) {
			return fmt.Errorf("find window %q: %w", title, err)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("find window %q: %w", title, ctx.Err())
		case <-ticker.C:
		}
	}
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
