package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/egxn/octopus-chalkboard/internal/canvas"
	"github.com/egxn/octopus-chalkboard/internal/keymap"
	"github.com/egxn/octopus-chalkboard/internal/overlay"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

// keysCmd prints the key tables of the configured preset.
type keysCmd struct {
	*root
	fs  *flag.FlagSet
	out io.Writer
}

func (k *keysCmd) FlagSet() *flag.FlagSet {
	return k.fs
}

func (k *keysCmd) Template() string {
	return "keys.txt"
}

func parseKeysCmd(args []string, r *root) (*keysCmd, error) {
	fs := flag.NewFlagSet("keys", flag.ContinueOnError)
	k := &keysCmd{root: r, fs: fs, out: os.Stdout}
	fs.Usage = usageFunc(k)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: k}
	}
	return k, nil
}

func (k *keysCmd) Run() error {
	opts, err := k.config.SessionOptions()
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s := overlay.New(append(opts, overlay.WithLogf(func(string, ...any) {}))...)
	_, err = io.WriteString(k.out, renderKeys(s.Bindings(), s.Shortcuts(), s.Stroke()))
	return err
}

func swatch(c canvas.Stroke) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(keymap.FormatColor(c.Color))).Render("    ")
}

func renderKeys(b keymap.Bindings, sc keymap.Shortcuts, pen canvas.Stroke) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n  %s width %.1f %s\n\n", headingStyle.Render("Pen"), swatch(pen), pen.Width, keymap.FormatColor(pen.Color))

	sb.WriteString(headingStyle.Render("Colours") + "\n")
	if len(b.Colors()) == 0 {
		sb.WriteString(dimStyle.Render("  none") + "\n")
	}
	for _, ck := range b.Colors() {
		fmt.Fprintf(&sb, "  %-6s %s %s\n", keymap.KeyName(ck.Code), swatch(canvas.Stroke{Color: ck.Color}), ck.Name)
	}

	sb.WriteString("\n" + headingStyle.Render("Width") + "\n")
	if len(b.Widths()) == 0 {
		sb.WriteString(dimStyle.Render("  none") + "\n")
	}
	for _, code := range b.Widths() {
		delta, _ := b.WidthDelta(code)
		fmt.Fprintf(&sb, "  %-6s %+.1f\n", keymap.KeyName(code), delta)
	}

	sb.WriteString("\n" + headingStyle.Render("Shortcuts") + "\n")
	for _, s := range []struct {
		name  string
		chord keymap.Chord
	}{
		{"diagnostic", sc.Diagnostic},
		{"copy", sc.Copy},
		{"save", sc.Save},
		{"pdf", sc.PDF},
		{"quit", sc.Quit},
	} {
		if !s.chord.Bound() {
			continue
		}
		fmt.Fprintf(&sb, "  %-12s %s\n", s.chord.String(), s.name)
	}
	return sb.String()
}
