package preset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	m, err := NewManager(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestSaveLoadDelete(t *testing.T) {
	m := newTestManager(t)
	p := samplePreset()

	if err := m.Save(p, false); err != nil {
		t.Fatal(err)
	}
	if err := m.Save(p, false); !errors.Is(err, ErrExists) {
		t.Fatalf("second save without overwrite should fail with ErrExists, got %v", err)
	}

	got, err := m.Load(p.Name)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != p.Name || !got.Text.Enabled {
		t.Fatalf("loaded preset mismatch: %+v", got)
	}
	if got.Modified != nil {
		t.Fatal("modified must stay null on first save")
	}

	if err := m.Save(p, true); err != nil {
		t.Fatal(err)
	}
	got, err = m.Load(p.Name)
	if err != nil {
		t.Fatal(err)
	}
	if got.Modified == nil {
		t.Fatal("overwrite must set the modified timestamp")
	}
	if got.Created != p.Created {
		t.Fatal("overwrite must preserve the creation time")
	}

	if err := m.Delete(p.Name); err != nil {
		t.Fatal(err)
	}
	if m.Exists(p.Name) {
		t.Fatal("preset should be gone after delete")
	}
}

func TestRename(t *testing.T) {
	m := newTestManager(t)
	p := samplePreset()
	if err := m.Save(p, false); err != nil {
		t.Fatal(err)
	}

	if err := m.Rename(p.Name, "Renamed"); err != nil {
		t.Fatal(err)
	}
	if m.Exists(p.Name) {
		t.Fatal("old preset file should be removed")
	}
	got, err := m.Load("Renamed")
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Renamed" {
		t.Fatalf("renamed preset carries old name %q", got.Name)
	}
}

func TestListIncludesInvalidFiles(t *testing.T) {
	m := newTestManager(t)
	if err := m.Save(samplePreset(), false); err != nil {
		t.Fatal(err)
	}
	badPath := filepath.Join(m.dir, "broken.json")
	if err := os.WriteFile(badPath, []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}

	infos := m.List()
	if len(infos) != 2 {
		t.Fatalf("List returned %d entries; want 2", len(infos))
	}
	var sawInvalid bool
	for _, info := range infos {
		if !info.Valid {
			sawInvalid = true
			if info.Name != "broken" || info.Description != "(Invalid preset file)" {
				t.Fatalf("unexpected invalid entry: %+v", info)
			}
		}
	}
	if !sawInvalid {
		t.Fatal("invalid file missing from listing")
	}
}

func TestExportImport(t *testing.T) {
	m := newTestManager(t)
	p := samplePreset()
	if err := m.Save(p, false); err != nil {
		t.Fatal(err)
	}

	dest := filepath.Join(t.TempDir(), "exported.json")
	if err := m.Export(p.Name, dest); err != nil {
		t.Fatal(err)
	}

	other := newTestManager(t)
	if err := other.Import(dest, ""); err != nil {
		t.Fatal(err)
	}
	if !other.Exists(p.Name) {
		t.Fatal("imported preset missing")
	}
	if err := other.Import(dest, ""); !errors.Is(err, ErrExists) {
		t.Fatalf("duplicate import should fail with ErrExists, got %v", err)
	}
	if err := other.Import(dest, "Copy"); err != nil {
		t.Fatal(err)
	}
	if !other.Exists("Copy") {
		t.Fatal("renamed import missing")
	}
}
