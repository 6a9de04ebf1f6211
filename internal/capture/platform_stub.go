//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import (
	"fmt"
	"image"
)

type unsupportedBackend struct{}

func newBackend() platformBackend {
	return unsupportedBackend{}
}

func (unsupportedBackend) Monitors() ([]MonitorInfo, error) {
	return nil, fmt.Errorf("monitor listing is not supported on this platform")
}

func (unsupportedBackend) RootImage(image.Rectangle) (*image.RGBA, error) {
	return nil, fmt.Errorf("desktop capture is not supported on this platform")
}

func (unsupportedBackend) FindWindow(string) (uint32, error) {
	return 0, fmt.Errorf("window lookup is not supported on this platform")
}

func (unsupportedBackend) ApplyHints(uint32, Hints) error {
	return fmt.Errorf("window hints are not supported on this platform")
}

func runningOnWayland() bool { return false }
