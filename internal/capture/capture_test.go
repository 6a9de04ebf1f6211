package capture

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"
)

type fakeBackend struct {
	monitors    []MonitorInfo
	monitorsErr error
	root        *image.RGBA
	rootErr     error
	// window appears after this many FindWindow calls
	findAfter int
	finds     int
	hinted    []Hints
}

func (f *fakeBackend) Monitors() ([]MonitorInfo, error) {
	return f.monitors, f.monitorsErr
}

func (f *fakeBackend) RootImage(r image.Rectangle) (*image.RGBA, error) {
	if f.rootErr != nil {
		return nil, f.rootErr
	}
	return cropToRect(f.root, r)
}

func (f *fakeBackend) FindWindow(title string) (uint32, error) {
	f.finds++
	if f.finds <= f.findAfter {
		return 0, errWindowNotFound
	}
	return 42, nil
}

func (f *fakeBackend) ApplyHints(id uint32, h Hints) error {
	f.hinted = append(f.hinted, h)
	return nil
}

func useBackend(t *testing.T, b platformBackend) {
	t.Helper()
	prev := backend
	backend = b
	t.Cleanup(func() { backend = prev })
}

func usePortal(t *testing.T, fn func(context.Context) (*image.RGBA, error)) {
	t.Helper()
	prev := portalScreenshotFn
	portalScreenshotFn = fn
	t.Cleanup(func() { portalScreenshotFn = prev })
}

func x11Session(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
}

func desktop(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

var twoMonitors = []MonitorInfo{
	{Index: 0, Name: "HDMI-1", Rect: image.Rect(0, 0, 10, 10)},
	{Index: 1, Name: "eDP-1", Rect: image.Rect(10, 0, 30, 10), Primary: true},
}

func TestPrimaryMonitor(t *testing.T) {
	useBackend(t, &fakeBackend{monitors: twoMonitors})
	m, err := PrimaryMonitor()
	if err != nil || m.Name != "eDP-1" {
		t.Fatalf("PrimaryMonitor = %+v, %v", m, err)
	}

	useBackend(t, &fakeBackend{monitors: twoMonitors[:1]})
	if m, _ := PrimaryMonitor(); m.Name != "HDMI-1" {
		t.Fatalf("fallback to first monitor, got %+v", m)
	}

	useBackend(t, &fakeBackend{})
	if _, err := PrimaryMonitor(); !errors.Is(err, errNoMonitors) {
		t.Fatalf("err = %v", err)
	}
}

func TestDesktopUsesRootImage(t *testing.T) {
	x11Session(t)
	useBackend(t, &fakeBackend{monitors: twoMonitors, root: desktop(30, 10)})
	usePortal(t, func(context.Context) (*image.RGBA, error) {
		t.Fatal("portal should not be used")
		return nil, nil
	})
	img, err := Desktop(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 20 || img.RGBAAt(0, 0).R != 10 {
		t.Fatalf("expected the primary monitor crop, got %v first pixel %v", img.Bounds(), img.RGBAAt(0, 0))
	}
}

func TestDesktopFallsBackToPortal(t *testing.T) {
	x11Session(t)
	useBackend(t, &fakeBackend{monitors: twoMonitors, rootErr: errors.New("BadMatch")})
	called := false
	usePortal(t, func(context.Context) (*image.RGBA, error) {
		called = true
		return desktop(30, 10), nil
	})
	img, err := Desktop(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !called {
		t.Fatal("portal not used")
	}
	if img.Bounds() != image.Rect(0, 0, 20, 10) || img.RGBAAt(0, 0).R != 10 {
		t.Fatalf("portal shot not cropped to the primary monitor: %v", img.Bounds())
	}
}

func TestDesktopOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	fb := &fakeBackend{monitorsErr: errors.New("no X")}
	useBackend(t, fb)
	usePortal(t, func(context.Context) (*image.RGBA, error) { return desktop(5, 5), nil })
	img, err := Desktop(context.Background())
	if err != nil || img.Bounds().Dx() != 5 {
		t.Fatalf("Desktop = %v, %v", img, err)
	}

	portalErr := errors.New("portal denied")
	usePortal(t, func(context.Context) (*image.RGBA, error) { return nil, portalErr })
	if _, err := Desktop(context.Background()); !errors.Is(err, portalErr) || !strings.Contains(err.Error(), "no X") {
		t.Fatalf("err = %v", err)
	}
}

func TestPromoteWaitsForWindow(t *testing.T) {
	fb := &fakeBackend{findAfter: 2}
	useBackend(t, fb)
	hints := Hints{Fullscreen: true, Above: true, Undecorated: true}
	if err := Promote(context.Background(), "Octopus", hints); err != nil {
		t.Fatal(err)
	}
	if fb.finds != 3 || len(fb.hinted) != 1 || fb.hinted[0] != hints {
		t.Fatalf("finds=%d hinted=%v", fb.finds, fb.hinted)
	}
}

func TestPromoteTimesOut(t *testing.T) {
	useBackend(t, &fakeBackend{findAfter: 1 << 30})
	ctx, cancel := context.WithTimeout(context.Background(), 3*promotePoll)
	defer cancel()
	start := time.Now()
	err := Promote(ctx, "Octopus", Hints{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("Promote ignored the deadline")
	}
}

func TestCropToRect(t *testing.T) {
	if _, err := cropToRect(desktop(4, 4), image.Rect(10, 10, 20, 20)); err == nil {
		t.Fatal("expected error for region outside image")
	}
}
