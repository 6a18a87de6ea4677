//go:build darwin

package autostart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEnableDisable(t *testing.T) {
	m := &Manager{dir: t.TempDir(), execPath: "/Applications/keyclip.app/Contents/MacOS/keyclip"}

	if err := m.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	if !m.IsEnabled() {
		t.Fatal("not enabled after Enable")
	}

	data, err := os.ReadFile(filepath.Join(m.dir, "dev.keyclip.plist"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<string>"+m.execPath+"</string>") {
		t.Errorf("plist has no exec path:\n%s", data)
	}

	if err := m.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if err := m.Disable(); err != nil {
		t.Fatalf("second Disable: %v", err)
	}
	if m.IsEnabled() {
		t.Error("enabled after Disable")
	}
}

func TestEnableEscapesExecPath(t *testing.T) {
	m := &Manager{dir: t.TempDir(), execPath: "/Users/a&b/<keyclip>"}
	if err := m.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	data, err := os.ReadFile(m.path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<string>/Users/a&amp;b/&lt;keyclip&gt;</string>") {
		t.Errorf("exec path not escaped:\n%s", data)
	}
}
