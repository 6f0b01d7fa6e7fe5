// Package config loads windowstack settings from a TOML file and watches it
// for changes.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/BrandonKowalski/windowstack/pkg/windowstack"
)

// Platform names accepted in the config file.
const (
	PlatformStack = "stack"
	PlatformFlat  = "flat"
)

// Config is the on-disk configuration.
type Config struct {
	Platform   string           `toml:"platform"`    // "stack" or "flat"
	DockTarget string           `toml:"dock_target"` // "center", "left" or "right"
	LogLevel   string           `toml:"log_level"`   // "debug", "info", "warn" or "error"
	LogPath    string           `toml:"log_path"`    // Log file path; empty logs to stdout only
	Locale     string           `toml:"locale"`      // BCP 47 tag used for screen titles
	Home       HomeConfig       `toml:"home"`
	BackButton BackButtonConfig `toml:"back_button"`
}

// HomeConfig configures Home teardowns.
type HomeConfig struct {
	Instant      bool          `toml:"instant"`
	TickInterval time.Duration `toml:"tick_interval"`
}

// BackButtonConfig configures the hardware back button.
type BackButtonConfig struct {
	Device   string        `toml:"device"`   // Event device path; empty disables the listener
	Codes    []uint16      `toml:"codes"`    // Key codes treated as back
	Cooldown time.Duration `toml:"cooldown"` // Presses closer together than this are ignored
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Platform:   PlatformFlat,
		DockTarget: windowstack.DockCenter.String(),
		LogLevel:   "info",
		Locale:     "en",
		Home: HomeConfig{
			TickInterval: windowstack.DefaultTickInterval,
		},
		BackButton: BackButtonConfig{
			Codes:    []uint16{158, 1}, // KEY_BACK, KEY_ESC
			Cooldown: 250 * time.Millisecond,
		},
	}
}

// Load reads path on top of Default. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML data on top of Default.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("config: unknown keys: %v", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the fields that cannot be ignored. An unknown dock target
// is not an error: the controller keeps its previous target.
func (c *Config) Validate() error {
	switch c.Platform {
	case PlatformStack, PlatformFlat:
	default:
		return fmt.Errorf("config: unknown platform %q", c.Platform)
	}
	if c.Home.TickInterval < 0 {
		return fmt.Errorf("config: negative home.tick_interval %s", c.Home.TickInterval)
	}
	return nil
}

// Target returns the configured dock target. ok is false when the value is
// not a known slot, in which case callers keep whatever they had.
func (c *Config) Target() (windowstack.DockTarget, bool) {
	t, err := windowstack.ParseDockTarget(c.DockTarget)
	return t, err == nil
}

// HomeOptions converts the [home] table.
func (c *Config) HomeOptions() windowstack.HomeOptions {
	return windowstack.HomeOptions{Instant: c.Home.Instant}
}
