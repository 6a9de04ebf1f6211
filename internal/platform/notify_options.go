// Package platform sends desktop notifications through the native service of
// each operating system.
package platform

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName identifies the sender where the platform shows one.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
}

func appName(opts Options) string {
	if opts.AppName == "" {
		return "Octopus"
	}
	return opts.AppName
}
