package model

import (
	"testing"

	"github.com/soocke/pixel-stream-go/config"
)

func TestApplyFields_ParsesAndValidates(t *testing.T) {
	base := *config.DefaultConfig()
	got, err := ApplyFields(base, map[string]string{
		"displayIndex":   " 2 ",
		"backend":        "Screenshot",
		"cursor":         "off",
		"frameRate":      "30",
		"queueDepth":     "6",
		"pollIntervalMS": "5000",
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.DisplayIndex != 2 || got.Backend != "screenshot" || got.Cursor || got.FrameRate != 30 || got.QueueDepth != 6 {
		t.Fatalf("fields not applied: %+v", got)
	}
	if got.PollIntervalMS != 1000 {
		t.Fatalf("poll interval not clamped: %d", got.PollIntervalMS)
	}
	if base.FrameRate != 0 {
		t.Fatalf("input config mutated")
	}
}

func TestApplyFields_BadValuesKeepPrevious(t *testing.T) {
	base := *config.DefaultConfig()
	got, err := ApplyFields(base, map[string]string{
		"frameRate":  "-1",
		"queueDepth": "300",
		"cursor":     "maybe",
	})
	if err == nil {
		t.Fatalf("expected error for invalid fields")
	}
	if got.FrameRate != base.FrameRate || got.QueueDepth != base.QueueDepth || got.Cursor != base.Cursor {
		t.Fatalf("invalid input changed config: %+v", got)
	}
}

func TestConfigFields_RoundTrip(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.FrameRate = 24
	values := map[string]string{}
	for _, f := range ConfigFields(cfg) {
		values[f.ID] = f.Value
	}
	got, err := ApplyFields(*cfg, values)
	if err != nil || got != *cfg {
		t.Fatalf("rendered fields do not parse back: %+v err=%v", got, err)
	}
}
