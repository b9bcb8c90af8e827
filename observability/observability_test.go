package observability

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestFieldsCarryTypedValues(t *testing.T) {
	if f := String("file", "a.pdf"); f.Key() != "file" || f.Value() != "a.pdf" {
		t.Fatalf("string field mismatch: %v", f.Value())
	}
	if f := Int("pages", 3); f.Value() != 3 {
		t.Fatalf("int field mismatch: %v", f.Value())
	}
	err := errors.New("boom")
	if f := Error("err", err); f.Value() != err {
		t.Fatalf("error field mismatch: %v", f.Value())
	}
}

func TestConsoleLoggerLevelFilterAndWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewConsoleLogger(&buf, LevelInfo)
	log.Debug("hidden")
	log.With(String("job", "j1")).Info("processing", Int("idx", 2))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "processing") || !strings.Contains(out, "job=j1") || !strings.Contains(out, "idx=2") {
		t.Fatalf("unexpected output: %q", out)
	}
}
