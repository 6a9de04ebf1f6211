//go:build !linux && !darwin && !windows

package platform

import (
	"fmt"
	"runtime"
)

// Notify reports that this platform has no notification service.
func Notify(title, body string, opts Options) error {
	return fmt.Errorf("%s: desktop notifications not supported on %s", appName(opts), runtime.GOOS)
}
