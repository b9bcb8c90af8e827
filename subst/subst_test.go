package subst

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleFile = "1003375-0042-015-02 REV AB PartTitle.pdf"

func defaultEngine() *Engine { return NewEngine(Defaults, nil) }

func TestExtractFromSampleFilename(t *testing.T) {
	got := defaultEngine().Extract(sampleFile)
	want := map[string]string{
		"PartNumber": "1003375",
		"Version":    "0042",
		"DocType":    "015",
		"TabNumber":  "02",
		"Revision":   "AB",
		"Title":      "PartTitle",
		"DocNumber":  "1003375-0042-015-02 REV AB",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Extract mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractStripsDirectoryAndExtension(t *testing.T) {
	got := defaultEngine().Extract(filepath.Join("some", "dir", sampleFile))
	if got["PartNumber"] != "1003375" {
		t.Fatalf("extraction should use the base name: %v", got)
	}
}

func TestApplyDropsBarePlaceholderLine(t *testing.T) {
	text, missing := defaultEngine().Apply("$PartNumber\n$Unknown\nRev: $Revision", sampleFile)
	if text != "1003375\nRev: AB" {
		t.Fatalf("Apply = %q", text)
	}
	if !missing["Unknown"] {
		t.Fatalf("missing keys = %v", missing)
	}
}

func TestApplyBlanksInlineMissingPlaceholder(t *testing.T) {
	text, missing := defaultEngine().Apply("Item: $Nope end", sampleFile)
	if text != "Item:  end" {
		t.Fatalf("inline missing placeholder should blank, got %q", text)
	}
	if !missing["Nope"] {
		t.Fatalf("missing keys = %v", missing)
	}
}

func TestNewEngineDropsUncompilable(t *testing.T) {
	defs := []Definition{
		{Name: "Bad", Regex: `(?<Bad>[`},
		{Name: "Good", Regex: `(?<Good>\d+)`},
	}
	e := NewEngine(defs, nil)
	if len(e.Definitions()) != 1 || e.Definitions()[0].Name != "Good" {
		t.Fatalf("definitions = %v", e.Definitions())
	}
}

func TestLoadRegeneratesDefaults(t *testing.T) {
	dir := t.TempDir()

	// Missing file.
	path := filepath.Join(dir, "substitutions.json")
	defs := Load(path, nil)
	if len(defs) != len(Defaults) {
		t.Fatalf("missing file should yield defaults, got %d", len(defs))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("defaults file should have been written: %v", err)
	}

	// Corrupt file.
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if defs = Load(path, nil); len(defs) != len(Defaults) {
		t.Fatalf("corrupt file should yield defaults, got %d", len(defs))
	}
}

func TestLoadDropsBadEntriesKeepsGood(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "substitutions.json")
	content := `[
		{"name": "Good", "description": "", "regex": "(?<Good>\\d+)"},
		{"name": "Broken", "description": "", "regex": "(?<Broken>["},
		{"name": "", "description": "no name", "regex": "x"}
	]`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	defs := Load(path, nil)
	if len(defs) != 1 || defs[0].Name != "Good" {
		t.Fatalf("Load = %v", defs)
	}
}
