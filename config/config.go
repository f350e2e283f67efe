package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment override, e.g. BADGE_DEBOUNCE_MS
const EnvPrefix = "BADGE_"

// Config holds all application-level configuration
type Config struct {
	Debug bool `koanf:"debug"`

	// Browser
	Headless             bool   `koanf:"headless"`
	UserAgent            string `koanf:"user_agent"`
	WindowWidth          int    `koanf:"window_width"`
	WindowHeight         int    `koanf:"window_height"`
	NavigationTimeoutSec int    `koanf:"navigation_timeout_sec"`
	SettleMS             int    `koanf:"settle_ms"` // wait after navigation before the first run
	MaxRetries           int    `koanf:"max_retries"`
	RateLimitDelay       int    `koanf:"rate_limit_delay_ms"` // milliseconds between page visits

	// Rerun
	DebounceMS int `koanf:"debounce_ms"`

	// Site
	SiteURL          string `koanf:"site_url"`
	PathMarker       string `koanf:"path_marker"`
	PayloadElementID string `koanf:"payload_element_id"`
	PreferredTag     string `koanf:"preferred_tag"`
	BadgeID          string `koanf:"badge_id"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Debug:                false,
		Headless:             true,
		UserAgent:            "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		WindowWidth:          1280,
		WindowHeight:         900,
		NavigationTimeoutSec: 60,
		SettleMS:             3000,
		MaxRetries:           3,
		RateLimitDelay:       2000,
		DebounceMS:           200,
		SiteURL:              "https://leetcode.com",
		PathMarker:           "problems",
		PayloadElementID:     "__NEXT_DATA__",
		PreferredTag:         "questionDetail",
		BadgeID:              "lc-like-dislike-badge-v5",
	}
}

// Load layers defaults, an optional YAML file named by BADGE_CONFIG, and
// BADGE_* environment variables (highest precedence).
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvPrefix + "CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := *Default()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the pipeline cannot work with
func (c *Config) Validate() error {
	var errs []error
	if c.DebounceMS <= 0 {
		errs = append(errs, errors.New("debounce_ms must be positive"))
	}
	if c.MaxRetries < 1 {
		errs = append(errs, errors.New("max_retries must be at least 1"))
	}
	if c.NavigationTimeoutSec <= 0 {
		errs = append(errs, errors.New("navigation_timeout_sec must be positive"))
	}
	if c.PathMarker == "" || strings.Contains(c.PathMarker, "/") {
		errs = append(errs, errors.New("path_marker must be a single non-empty path segment"))
	}
	if c.PayloadElementID == "" {
		errs = append(errs, errors.New("payload_element_id must not be empty"))
	}
	if c.BadgeID == "" {
		errs = append(errs, errors.New("badge_id must not be empty"))
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		errs = append(errs, errors.New("window size must be positive"))
	}
	return errors.Join(errs...)
}

// Debounce returns the rerun debounce interval
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// Settle returns the post-navigation wait
func (c *Config) Settle() time.Duration {
	return time.Duration(c.SettleMS) * time.Millisecond
}

// NavigationTimeout returns the per-page navigation budget
func (c *Config) NavigationTimeout() time.Duration {
	return time.Duration(c.NavigationTimeoutSec) * time.Second
}
