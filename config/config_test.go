package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Fatalf("got %+v want defaults", *cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.DisplayIndex = 2
	cfg.Backend = "screenshot"
	cfg.Cursor = false
	cfg.FrameRate = 30
	cfg.QueueDepth = 5
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *got != *cfg {
		t.Fatalf("round trip: got %+v want %+v", *got, *cfg)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"frame_rate": 24, "backend": "BLIT"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.FrameRate != 24 || cfg.Backend != "blit" {
		t.Fatalf("overrides lost: rate=%d backend=%q", cfg.FrameRate, cfg.Backend)
	}
	if !cfg.Cursor || cfg.QueueDepth != 3 || cfg.PreviewWidth != 640 {
		t.Fatalf("defaults lost: %+v", *cfg)
	}
}

func TestLoad_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"frame_rate": `), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if cfg == nil || *cfg != *DefaultConfig() {
		t.Fatalf("bad JSON should yield defaults, got %+v", cfg)
	}
}

func TestValidate_Clamps(t *testing.T) {
	cfg := &Config{
		LogLevel:       "verbose",
		Backend:        "dxgi",
		DisplayIndex:   -1,
		PollIntervalMS: 5000,
	}
	_ = cfg.Validate()
	if cfg.LogLevel != "info" || cfg.Backend != "auto" || cfg.DisplayIndex != 0 {
		t.Fatalf("not normalized: %+v", *cfg)
	}
	if cfg.QueueDepth != 3 || cfg.PollIntervalMS != 1000 || cfg.PreviewWidth != 640 || cfg.PreviewHeight != 360 {
		t.Fatalf("not clamped: %+v", *cfg)
	}
}
