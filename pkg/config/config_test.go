package config

import (
	"testing"

	"github.com/irisgriv/fitc/internal/testutil"
)

func TestLoad(t *testing.T) {
	content := `model: model.fit
data: events.csv
func: signal_nll
output: signal_nll.c
events: 1000
`
	path := testutil.TempFile(t, content, ".yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Model != "model.fit" {
		t.Errorf("Model = %q, want model.fit", cfg.Model)
	}
	if cfg.Data != "events.csv" {
		t.Errorf("Data = %q, want events.csv", cfg.Data)
	}
	if cfg.Func != "signal_nll" {
		t.Errorf("Func = %q, want signal_nll", cfg.Func)
	}
	if cfg.Output != "signal_nll.c" {
		t.Errorf("Output = %q, want signal_nll.c", cfg.Output)
	}
	if cfg.Events != 1000 {
		t.Errorf("Events = %d, want 1000", cfg.Events)
	}
}

func TestLoad_PartialFile(t *testing.T) {
	path := testutil.TempFile(t, "model: m.fit\n", ".yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Model != "m.fit" {
		t.Errorf("Model = %q, want m.fit", cfg.Model)
	}
	if cfg.Events != 0 || cfg.Data != "" {
		t.Errorf("unset fields should stay zero, got %+v", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/fitc.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := testutil.TempFile(t, "model: [unclosed\n", ".yaml")
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}
