package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.DayStart != 8 || c.DayEnd != 22 || c.NightStart != 0 || c.NightEnd != 6 {
		t.Errorf("windows = %d/%d %d/%d", c.DayStart, c.DayEnd, c.NightStart, c.NightEnd)
	}
	if c.MaxRows != 100000 || c.Workers != 4 || c.SampleRows != 10 {
		t.Errorf("limits = %d/%d/%d", c.MaxRows, c.Workers, c.SampleRows)
	}
	if c.OutputFormat != "markdown" || c.LogLevel != "info" || c.LogFormat != "console" {
		t.Errorf("formats = %s/%s/%s", c.OutputFormat, c.LogLevel, c.LogFormat)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	in, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	in.DayStart = 7
	in.Workers = 8
	in.OutputFormat = "json"
	if err := Save(in, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if out.DayStart != 7 || out.Workers != 8 || out.OutputFormat != "json" {
		t.Fatalf("reloaded = %+v", out)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("BPVAR_WORKERS", "12")
	c, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Workers != 12 {
		t.Fatalf("workers = %d, want 12 from env", c.Workers)
	}
}

func TestLoadInvalidWindows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("day_start: 22\nday_end: 8\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for inverted day window")
	}
}
