package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/egxn/octopus-chalkboard/internal/config"
	"github.com/egxn/octopus-chalkboard/internal/notify"
	"github.com/egxn/octopus-chalkboard/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	configPath   string
	saveAlerts   bool
	copyAlerts   bool
	exportAlerts bool
	themeName    string
	presetName   string
	activeTheme  *theme.Theme
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("octopus", flag.ContinueOnError),
		program:  "octopus",
		notifier: notify.New(notify.LoadPreferences()),
	}
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "path to a config.rc file")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving a PNG")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")
	r.fs.BoolVar(&r.exportAlerts, "notify-export", false, "show a desktop notification after exporting a PDF")

	// Precedence: CLI > Env > Config > Default. Empty flags fall through.
	r.fs.StringVar(&r.themeName, "theme", "", "chrome theme to use (default, dark, chalkboard or a file)")
	r.fs.StringVar(&r.presetName, "preset", "", "starting preset (full, simple)")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the config file, keeping defaults when it is broken so
// that "config print" still works.
func (r *root) loadConfig() {
	cfg, err := config.NewLoader(version, r.configPath).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg
}

// applyNotify enables notifications from the config unless the matching
// flag was given explicitly.
func (r *root) applyNotify() {
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	pick := func(name string, flagVal, cfgVal bool) bool {
		if set[name] {
			return flagVal
		}
		return cfgVal
	}
	r.notifier.Enable(notify.EventSave, pick("notify-save", r.saveAlerts, r.config.Notify.Save))
	r.notifier.Enable(notify.EventCopy, pick("notify-copy", r.copyAlerts, r.config.Notify.Copy))
	r.notifier.Enable(notify.EventExport, pick("notify-export", r.exportAlerts, r.config.Notify.Export))
}

// resolveTheme picks the chrome theme: config-defined themes win over the
// loader's file, embedded and system lookup.
func (r *root) resolveTheme() *theme.Theme {
	name := firstNonEmpty(r.themeName, os.Getenv("OCTOPUS_THEME"), r.config.Theme)
	if t, ok := r.config.Themes[name]; ok {
		return t
	}
	t, err := theme.NewLoader().Load(name)
	if err != nil {
		if name != "" && name != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		return theme.Default()
	}
	return t
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()
	if p := firstNonEmpty(r.presetName, os.Getenv("OCTOPUS_PRESET")); p != "" {
		r.config.Preset = p
	}
	r.applyNotify()
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "run":
		cmd, err = parseRunCmd(subArgs, r)
	case "keys":
		cmd, err = parseKeysCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		switch {
		case errors.As(err, &uerr):
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		case errors.Is(err, flag.ErrHelp):
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
