package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"

	"github.com/egxn/octopus-chalkboard/internal/appstate"
	"github.com/egxn/octopus-chalkboard/internal/capture"
	"github.com/egxn/octopus-chalkboard/internal/overlay"
)

const backdropTimeout = 3 * time.Second

var (
	desktopFn = capture.Desktop
	mainFn    = driver.Main
)

// runCmd opens the overlay.
type runCmd struct {
	*root
	fs         *flag.FlagSet
	preset     string
	title      string
	exportDir  string
	noBackdrop bool
	windowed   bool
}

func (c *runCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *runCmd) Template() string {
	return "run.txt"
}

func parseRunCmd(args []string, r *root) (*runCmd, error) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	c := &runCmd{root: r, fs: fs}
	fs.StringVar(&c.preset, "preset", "", "starting preset (full, simple)")
	fs.StringVar(&c.title, "title", "", "window title")
	fs.StringVar(&c.exportDir, "export-dir", "", "directory for saved PNG and PDF files")
	fs.BoolVar(&c.noBackdrop, "no-backdrop", false, "paint the theme backdrop instead of a desktop snapshot")
	fs.BoolVar(&c.windowed, "windowed", false, "do not ask the window manager for fullscreen")
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *runCmd) Run() error {
	if c.preset != "" {
		c.config.Preset = c.preset
	}
	opts, err := c.config.SessionOptions()
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	session := overlay.New(opts...)
	st := appstate.New(c.appOptions(session)...)
	mainFn(st.Main)
	return nil
}

func (c *runCmd) appOptions(session *overlay.Session) []appstate.Option {
	opts := []appstate.Option{
		appstate.WithSession(session),
		appstate.WithTheme(c.activeTheme),
		appstate.WithNotifier(c.notifier),
		appstate.WithShadow(c.config.ShadowOptions()),
	}
	if title := firstNonEmpty(c.title, c.config.Title); title != "" {
		opts = append(opts, appstate.WithTitle(title))
	}
	if dir := firstNonEmpty(c.exportDir, c.config.ExportDir); dir != "" {
		opts = append(opts, appstate.WithExportDir(dir))
	}
	if c.windowed || !c.config.Fullscreen {
		opts = append(opts, appstate.WithHints(capture.Hints{}))
	}
	if !c.noBackdrop && c.config.Transparent {
		ctx, cancel := context.WithTimeout(context.Background(), backdropTimeout)
		defer cancel()
		img, err := desktopFn(ctx)
		if err != nil {
			log.Printf("desktop backdrop unavailable, using theme: %v", err)
		} else {
			opts = append(opts, appstate.WithBackdrop(img))
		}
	}
	return opts
}
