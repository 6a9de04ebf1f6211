// Package notify sends desktop notifications after exports.
package notify

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/egxn/octopus-chalkboard/internal/platform"
)

// Event identifies a notification trigger.
type Event string

const (
	// EventSave fires when a PNG of the board is written.
	EventSave Event = "save"
	// EventCopy fires when the board is put on the clipboard.
	EventCopy Event = "copy"
	// EventExport fires when a PDF of the strokes is written.
	EventExport Event = "export"
)

// Preferences describes notification wording.
type Preferences struct {
	Title     string
	Templates map[Event]string
}

// DefaultPreferences returns the default notification settings.
func DefaultPreferences() Preferences {
	return Preferences{
		Title: "Octopus",
		Templates: map[Event]string{
			EventSave:   "Saved %s",
			EventCopy:   "Copied %s to clipboard",
			EventExport: "Exported %s",
		},
	}
}

// LoadPreferences applies OCTOPUS_NOTIFY_* environment overrides.
func LoadPreferences() Preferences {
	prefs := DefaultPreferences()
	if v := strings.TrimSpace(os.Getenv("OCTOPUS_NOTIFY_TITLE")); v != "" {
		prefs.Title = v
	}
	for event, key := range map[Event]string{
		EventSave:   "OCTOPUS_NOTIFY_SAVE_TEXT",
		EventCopy:   "OCTOPUS_NOTIFY_COPY_TEXT",
		EventExport: "OCTOPUS_NOTIFY_EXPORT_TEXT",
	} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			prefs.Templates[event] = v
		}
	}
	return prefs
}

var notifyFn = platform.Notify

// Notifier sends OS-level notifications for enabled events. A nil Notifier
// sends nothing.
type Notifier struct {
	prefs   Preferences
	enabled map[Event]bool
}

// New creates a Notifier with every event disabled.
func New(prefs Preferences) *Notifier {
	cloned := Preferences{Title: prefs.Title, Templates: make(map[Event]string, len(prefs.Templates))}
	for k, v := range prefs.Templates {
		cloned.Templates[k] = v
	}
	return &Notifier{prefs: cloned, enabled: make(map[Event]bool)}
}

// Enable toggles the notifier for the provided event.
func (n *Notifier) Enable(event Event, enabled bool) {
	if n == nil {
		return
	}
	n.enabled[event] = enabled
}

// Save reports a written PNG, showing it as the notification icon.
func (n *Notifier) Save(path string) {
	n.file(EventSave, path, true)
}

// Export reports a written PDF.
func (n *Notifier) Export(path string) {
	n.file(EventExport, path, false)
}

// Copy reports a clipboard copy.
func (n *Notifier) Copy(detail string) {
	if strings.TrimSpace(detail) == "" {
		detail = "drawing"
	}
	n.dispatch(EventCopy, detail, platform.Options{})
}

func (n *Notifier) file(event Event, path string, icon bool) {
	detail := strings.TrimSpace(path)
	var opts platform.Options
	if abs, err := filepath.Abs(path); err == nil {
		detail = abs
		if _, statErr := os.Stat(abs); statErr == nil && icon {
			opts.IconPath = abs
		}
	}
	n.dispatch(event, detail, opts)
}

func (n *Notifier) enabledFor(event Event) bool {
	return n != nil && n.enabled[event]
}

func (n *Notifier) dispatch(event Event, detail string, opts platform.Options) {
	if !n.enabledFor(event) {
		return
	}
	template := strings.TrimSpace(n.prefs.Templates[event])
	if template == "" {
		return
	}
	body := strings.TrimSpace(fmt.Sprintf(template, detail))
	opts.AppName = n.prefs.Title
	if err := notifyFn(n.prefs.Title, body, opts); err != nil {
		log.Printf("notification %s: %v", event, err)
	}
}
