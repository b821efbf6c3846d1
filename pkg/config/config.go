// Package config loads and validates the svcpulse configuration from a
// TOML file, with environment variable overrides for deployment knobs.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// minTick is the floor on the cooperative tick; anything faster burns CPU
// without improving keystroke latency.
const minTick = 20 * time.Millisecond

// Config is the full svcpulse configuration.
type Config struct {
	General GeneralConfig `toml:"general"`
	Service ServiceConfig `toml:"service"`
	Sources SourcesConfig `toml:"sources"`
	UI      UIConfig      `toml:"ui"`
}

// GeneralConfig holds logging settings.
type GeneralConfig struct {
	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`
}

// ServiceConfig identifies the monitored service.
type ServiceConfig struct {
	// BaseURL is the root of the monitored service, e.g. "http://127.0.0.1:8080".
	BaseURL string `toml:"base_url"`

	// AuthToken, when set, is sent as the X-Auth-Token header on every poll.
	AuthToken string `toml:"auth_token"`

	// OpenURL is the page opened by the 'o' command. Defaults to BaseURL.
	OpenURL string `toml:"open_url"`
}

// SourcesConfig configures the individual poll sources.
type SourcesConfig struct {
	HealthPath string `toml:"health_path"`
	StatsPath  string `toml:"stats_path"`

	// StatsFile is an optional local JSON file polled alongside the HTTP
	// endpoints. Empty disables the file source.
	StatsFile string `toml:"stats_file"`

	// Timeout bounds each HTTP poll attempt.
	Timeout Duration `toml:"timeout"`
}

// UIConfig holds dashboard behavior settings.
type UIConfig struct {
	RefreshInterval Duration `toml:"refresh_interval"`
	Tick            Duration `toml:"tick"`

	// Width overrides terminal width detection when non-zero.
	Width int `toml:"width"`

	// SystemSection shows the local system widget at startup.
	SystemSection bool `toml:"system_section"`
}

// Validate checks the configuration for values that cannot work at
// runtime. It returns the first problem found.
func (c *Config) Validate() error {
	if c.Service.BaseURL == "" {
		return fmt.Errorf("service.base_url is required")
	}
	u, err := url.Parse(c.Service.BaseURL)
	if err != nil {
		return fmt.Errorf("service.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("service.base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("service.base_url: missing host")
	}

	if !strings.HasPrefix(c.Sources.HealthPath, "/") {
		return fmt.Errorf("sources.health_path must start with /, got %q", c.Sources.HealthPath)
	}
	if !strings.HasPrefix(c.Sources.StatsPath, "/") {
		return fmt.Errorf("sources.stats_path must start with /, got %q", c.Sources.StatsPath)
	}

	if c.UI.RefreshInterval.Duration <= 0 {
		return fmt.Errorf("ui.refresh_interval must be positive")
	}

	switch c.General.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("general.log_level must be one of debug, info, warn, error; got %q", c.General.LogLevel)
	}

	return nil
}

// TickInterval returns the effective cooperative tick: the configured
// value clamped to minTick, or 100ms when unset.
func (c *Config) TickInterval() time.Duration {
	tick := c.UI.Tick.Duration
	if tick <= 0 {
		return 100 * time.Millisecond
	}
	if tick < minTick {
		return minTick
	}
	return tick
}
