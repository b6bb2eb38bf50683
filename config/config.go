package config

import (
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Config holds runtime configuration for capture and the viewer.
// Fields may be loaded from a JSON file and overridden by command-line flags.
type Config struct {
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level"`

	// Capture parameters
	DisplayIndex int    `json:"display_index"` // 0 = primary, n = nth enumerated display
	Backend      string `json:"backend"`       // auto | stream | blit | screenshot
	Cursor       bool   `json:"cursor"`
	FrameRate    uint32 `json:"frame_rate"` // 0 = uncapped
	QueueDepth   uint8  `json:"queue_depth"`

	// Viewer
	PollIntervalMS int `json:"poll_interval_ms"`
	PreviewWidth   int `json:"preview_width"`
	PreviewHeight  int `json:"preview_height"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:          false,
		LogLevel:       "info",
		DisplayIndex:   0,
		Backend:        "auto",
		Cursor:         true,
		FrameRate:      0,
		QueueDepth:     3,
		PollIntervalMS: 1,
		PreviewWidth:   640,
		PreviewHeight:  360,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
		c.LogLevel = strings.ToLower(c.LogLevel)
	default:
		c.LogLevel = "info"
	}
	switch strings.ToLower(strings.TrimSpace(c.Backend)) {
	case "auto", "stream", "blit", "screenshot":
		c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	default:
		c.Backend = "auto"
	}
	if c.DisplayIndex < 0 {
		c.DisplayIndex = 0
	}
	if c.QueueDepth == 0 {
		c.QueueDepth = 3
	}
	if c.PollIntervalMS <= 0 {
		c.PollIntervalMS = 1
	}
	if c.PollIntervalMS > 1000 {
		c.PollIntervalMS = 1000
	}
	if c.PreviewWidth <= 0 {
		c.PreviewWidth = 640
	}
	if c.PreviewHeight <= 0 {
		c.PreviewHeight = 360
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return DefaultConfig(), err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
