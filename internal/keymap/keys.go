// Package keymap maps keyboard keys to stroke changes and shortcuts.
package keymap

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/mobile/event/key"
)

var (
	codeByName = map[string]key.Code{}
	nameByCode = map[key.Code]string{}
)

func init() {
	add := func(c key.Code, names ...string) {
		for _, n := range names {
			codeByName[n] = c
		}
		if _, ok := nameByCode[c]; !ok {
			nameByCode[c] = names[0]
		}
	}
	for i := 0; i < 26; i++ {
		add(key.CodeA+key.Code(i), string(rune('a'+i)))
	}
	for i := 1; i <= 9; i++ {
		d := fmt.Sprint(i)
		add(key.Code1+key.Code(i-1), d, "num"+d)
		add(key.CodeKeypad1+key.Code(i-1), "kp"+d)
	}
	add(key.Code0, "0", "num0")
	add(key.CodeKeypad0, "kp0")
	for i := 1; i <= 12; i++ {
		add(key.CodeF1+key.Code(i-1), fmt.Sprintf("f%d", i))
	}
	add(key.CodeEscape, "escape", "esc")
	add(key.CodeReturnEnter, "enter", "return")
	add(key.CodeDeleteBackspace, "backspace")
	add(key.CodeDeleteForward, "delete", "del")
	add(key.CodeTab, "tab")
	add(key.CodeSpacebar, "space")
	add(key.CodeHyphenMinus, "minus", "-")
	add(key.CodeEqualSign, "equal", "=")
	add(key.CodeLeftArrow, "left")
	add(key.CodeRightArrow, "right")
	add(key.CodeUpArrow, "up")
	add(key.CodeDownArrow, "down")
}

// ParseKey resolves a key name such as "q", "3", "num3" or "f5".
func ParseKey(name string) (key.Code, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if c, ok := codeByName[n]; ok {
		return c, nil
	}
	return key.CodeUnknown, fmt.Errorf("unknown key %q", name)
}

// KeyName is the canonical name of c as accepted by ParseKey.
func KeyName(c key.Code) string {
	if n, ok := nameByCode[c]; ok {
		return n
	}
	return c.String()
}

// KeyNames lists every name ParseKey accepts.
func KeyNames() []string {
	names := make([]string, 0, len(codeByName))
	for n := range codeByName {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// ParseKeys splits a space or comma separated key list.
func ParseKeys(list string) ([]key.Code, error) {
	fields := strings.FieldsFunc(list, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	codes := make([]key.Code, 0, len(fields))
	for _, f := range fields {
		c, err := ParseKey(f)
		if err != nil {
			return nil, err
		}
		codes = append(codes, c)
	}
	return codes, nil
}

// FormatKeys is the inverse of ParseKeys.
func FormatKeys(codes []key.Code) string {
	names := make([]string, len(codes))
	for i, c := range codes {
		names[i] = KeyName(c)
	}
	return strings.Join(names, " ")
}
