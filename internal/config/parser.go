package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/egxn/octopus-chalkboard/internal/theme"
)

// Parse reads configuration from an io.Reader.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var currentTheme *theme.Theme
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSpace(line[1 : len(line)-1]))
			currentTheme = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				// Start with defaults so missing keys are fine
				currentTheme = theme.Default()
				currentTheme.Name = name
				cfg.Themes[name] = currentTheme
			}
			continue
		}

		// Key = Value or Key: Value
		var key, value string
		var ok bool
		if key, value, ok = strings.Cut(line, "="); !ok {
			if key, value, ok = strings.Cut(line, ":"); !ok {
				continue
			}
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
			value = value[1 : len(value)-1]
		}

		var err error
		switch {
		case currentTheme != nil:
			err = currentTheme.Set(key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		case section == "stroke":
			err = setStrokeField(&cfg.Stroke, key, value)
		case section == "keys":
			setKeysField(&cfg.Keys, key, value)
		case section == "palette":
			cfg.Palette[key] = value
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "shadow":
			err = setShadowField(&cfg.Shadow, key, value)
		}
		if err != nil {
			name := section
			if name == "" {
				name = "root"
			}
			return nil, fmt.Errorf("line %d [%s]: %w", lineNo, name, err)
		}
	}

	return cfg, scanner.Err()
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch key {
	case "title":
		cfg.Title = value
	case "preset":
		cfg.Preset = value
	case "theme":
		cfg.Theme = value
	case "export_dir", "save_dir":
		cfg.ExportDir = value
	case "transparent":
		cfg.Transparent, err = parseBool(key, value)
	case "fullscreen":
		cfg.Fullscreen, err = parseBool(key, value)
	}
	return err
}

func setStrokeField(s *Stroke, key, value string) error {
	var err error
	switch key {
	case "width":
		s.Width, err = parseFloat(key, value)
	case "min_width":
		s.MinWidth, err = parseFloat(key, value)
	case "color", "colour":
		s.Color = value
	}
	return err
}

func setKeysField(k *Keys, key, value string) {
	switch key {
	case "colors", "colours":
		k.Colors = value
	case "width":
		k.Width = value
	case "diagnostic":
		k.Diagnostic = value
	case "copy":
		k.Copy = value
	case "save":
		k.Save = value
	case "pdf":
		k.PDF = value
	case "quit":
		k.Quit = value
	}
}

func setNotifyField(n *Notify, key, value string) error {
	b, err := parseBool(key, value)
	if err != nil {
		return err
	}
	switch key {
	case "save":
		n.Save = b
	case "copy":
		n.Copy = b
	case "export":
		n.Export = b
	}
	return nil
}

func setShadowField(s *Shadow, key, value string) error {
	var err error
	switch key {
	case "enabled":
		s.Enabled, err = parseBool(key, value)
	case "radius":
		s.Radius, err = strconv.Atoi(value)
	case "opacity":
		s.Opacity, err = parseFloat(key, value)
	case "offset":
		x, y, ok := strings.Cut(value, ",")
		if !ok {
			return fmt.Errorf("offset must be x,y")
		}
		if s.OffsetX, err = strconv.Atoi(strings.TrimSpace(x)); err != nil {
			return fmt.Errorf("invalid offset: %w", err)
		}
		if s.OffsetY, err = strconv.Atoi(strings.TrimSpace(y)); err != nil {
			return fmt.Errorf("invalid offset: %w", err)
		}
	}
	if err != nil {
		return fmt.Errorf("invalid value for key %s: %w", key, err)
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number for key %s: %w", key, err)
	}
	return f, nil
}
