package appstate

import (
	"image"
	"log"
	"path/filepath"

	"github.com/egxn/octopus-chalkboard/internal/clipboard"
	"github.com/egxn/octopus-chalkboard/internal/export"
	"github.com/egxn/octopus-chalkboard/internal/overlay"
	"github.com/egxn/octopus-chalkboard/internal/render"
)

var (
	copyImageFn = clipboard.WriteImage
	savePNGFn   = export.SavePNG
	savePDFFn   = export.SavePDF
)

// perform runs the side effect of a session action for a window of the
// given size. It returns the toast text, if any, and whether the window
// should close.
func (a *AppState) perform(act overlay.Action, size image.Point) (string, bool) {
	switch act {
	case overlay.ActionCopy:
		if err := copyImageFn(a.snapshot(size)); err != nil {
			log.Printf("copy to clipboard: %v", err)
			return "Copy failed", false
		}
		a.Notifier.Copy("drawing")
		return "Copied to clipboard", false

	case overlay.ActionSave:
		path, err := export.NextPath(a.ExportDir, a.Session.ID(), "png")
		if err == nil {
			err = savePNGFn(path, a.snapshot(size))
		}
		if err != nil {
			log.Printf("save png: %v", err)
			return "Save failed", false
		}
		log.Printf("saved %s", path)
		a.Notifier.Save(path)
		return "Saved " + filepath.Base(path), false

	case overlay.ActionExportPDF:
		_, surface := render.Layout(image.Rectangle{Max: size})
		path, err := export.NextPath(a.ExportDir, a.Session.ID(), "pdf")
		if err == nil {
			err = savePDFFn(path, surface, a.Session.Shapes(surface))
		}
		if err != nil {
			log.Printf("export pdf: %v", err)
			return "Export failed", false
		}
		log.Printf("exported %s", path)
		a.Notifier.Export(path)
		return "Exported " + filepath.Base(path), false

	case overlay.ActionQuit:
		return "", true
	}
	return "", false
}
