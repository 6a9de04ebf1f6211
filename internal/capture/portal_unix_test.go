//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalScreenshotOptions(t *testing.T) {
	prevToken := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prevToken })

	values := portalScreenshotOptions()
	if got := boolVariant(t, values, "interactive"); got {
		t.Fatal("backdrop capture must not be interactive")
	}
	if got := boolVariant(t, values, "modal"); got {
		t.Fatal("backdrop capture must not be modal")
	}
	if got, _ := values["handle_token"].Value().(string); got != "test-token" {
		t.Fatalf("handle_token = %q", got)
	}
}

func TestResponseFile(t *testing.T) {
	ok := map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/Screenshot%201.png")}
	tests := []struct {
		name    string
		body    []any
		want    string
		wantErr bool
	}{
		{"ok", []any{uint32(0), ok}, "/tmp/Screenshot 1.png", false},
		{"denied", []any{uint32(1), ok}, "", true},
		{"short", []any{uint32(0)}, "", true},
		{"no uri", []any{uint32(0), map[string]dbus.Variant{}}, "", true},
		{"remote", []any{uint32(0), map[string]dbus.Variant{"uri": dbus.MakeVariant("https://x/y.png")}}, "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := responseFile(tc.body)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v", err)
			}
			if got != tc.want {
				t.Fatalf("path = %q, want %q", got, tc.want)
			}
		})
	}
}

func boolVariant(t *testing.T, values map[string]dbus.Variant, key string) bool {
	t.Helper()
	variant, ok := values[key]
	if !ok {
		t.Fatalf("missing key %q", key)
	}
	v, ok := variant.Value().(bool)
	if !ok {
		t.Fatalf("key %q value is %T, want bool", key, variant.Value())
	}
	return v
}
