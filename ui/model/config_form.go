package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/soocke/pixel-stream-go/config"
)

// FormField is one editable config entry as shown in the config panel.
type FormField struct {
	ID    string
	Label string
	Value string
}

// ConfigFields renders the editable subset of cfg, in display order.
func ConfigFields(cfg *config.Config) []FormField {
	return []FormField{
		{"displayIndex", "Display (0 = primary)", strconv.Itoa(cfg.DisplayIndex)},
		{"backend", "Backend (auto/stream/blit/screenshot)", cfg.Backend},
		{"cursor", "Show Cursor (true/false)", strconv.FormatBool(cfg.Cursor)},
		{"frameRate", "Frame Rate (0 = uncapped)", strconv.FormatUint(uint64(cfg.FrameRate), 10)},
		{"queueDepth", "Queue Depth", strconv.Itoa(int(cfg.QueueDepth))},
		{"pollIntervalMS", "Poll Interval ms", strconv.Itoa(cfg.PollIntervalMS)},
	}
}

// ApplyFields parses values (keyed by FormField.ID) over a copy of cfg.
// Unparseable entries keep their previous value and are reported together.
// The result is validated.
func ApplyFields(cfg config.Config, values map[string]string) (config.Config, error) {
	var bad []string
	get := func(id string) (string, bool) {
		v, ok := values[id]
		return strings.TrimSpace(v), ok
	}
	if s, ok := get("displayIndex"); ok {
		if i, err := strconv.Atoi(s); err == nil {
			cfg.DisplayIndex = i
		} else {
			bad = append(bad, "displayIndex")
		}
	}
	if s, ok := get("backend"); ok && s != "" {
		cfg.Backend = s
	}
	if s, ok := get("cursor"); ok {
		if b, ok := parseBoolLoose(s); ok {
			cfg.Cursor = b
		} else {
			bad = append(bad, "cursor")
		}
	}
	if s, ok := get("frameRate"); ok {
		if u, err := strconv.ParseUint(s, 10, 32); err == nil {
			cfg.FrameRate = uint32(u)
		} else {
			bad = append(bad, "frameRate")
		}
	}
	if s, ok := get("queueDepth"); ok {
		if u, err := strconv.ParseUint(s, 10, 8); err == nil {
			cfg.QueueDepth = uint8(u)
		} else {
			bad = append(bad, "queueDepth")
		}
	}
	if s, ok := get("pollIntervalMS"); ok {
		if i, err := strconv.Atoi(s); err == nil {
			cfg.PollIntervalMS = i
		} else {
			bad = append(bad, "pollIntervalMS")
		}
	}
	_ = cfg.Validate()
	if len(bad) > 0 {
		return cfg, fmt.Errorf("invalid fields: %s", strings.Join(bad, ", "))
	}
	return cfg, nil
}

func parseBoolLoose(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, true
	case "false", "0", "no", "n", "off", "f":
		return false, true
	default:
		return false, false
	}
}
