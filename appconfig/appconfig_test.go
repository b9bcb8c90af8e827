package appconfig

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadCreatesFileWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	c := Load(path, nil)
	if c.DefaultPreset() != "" {
		t.Fatalf("fresh config should have empty default preset")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file should have been created: %v", err)
	}
	if !strings.Contains(string(data), "default_preset") {
		t.Fatalf("defaults not backfilled: %q", data)
	}
}

func TestSetDefaultPresetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	c := Load(path, nil)
	if err := c.SetDefaultPreset("Drawings"); err != nil {
		t.Fatal(err)
	}
	if got := Load(path, nil).DefaultPreset(); got != "Drawings" {
		t.Fatalf("DefaultPreset = %q; want Drawings", got)
	}
}

func TestLoadKeepsExistingValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	content := "[General]\ndefault_preset = Existing\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := Load(path, nil).DefaultPreset(); got != "Existing" {
		t.Fatalf("DefaultPreset = %q; want Existing", got)
	}
}

func TestLoadUnwritableDirDegrades(t *testing.T) {
	// Point at a path whose parent does not exist; Load must still return a
	// usable in-memory config.
	c := Load(filepath.Join(t.TempDir(), "missing", "config.ini"), nil)
	if c == nil || c.DefaultPreset() != "" {
		t.Fatal("Load should degrade to in-memory defaults")
	}
}
