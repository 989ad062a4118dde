// Package config loads the proxy tool configuration.
package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen   string      `yaml:"listen"`
	Upstream string      `yaml:"upstream"`
	Tap      TapSpec     `yaml:"tap"`
	Capture  CaptureSpec `yaml:"capture"`
	Profiles ProfileSpec `yaml:"profiles"`
	Timeouts TimeoutSpec `yaml:"timeouts"`
}

type TapSpec struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

type CaptureSpec struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	Prefix  string `yaml:"prefix"`
}

type ProfileSpec struct {
	Enabled     bool   `yaml:"enabled"`
	CachePath   string `yaml:"cache_path"`
	CacheTTLSec int    `yaml:"cache_ttl_sec"`
	APIBase     string `yaml:"api_base"`
	SessionBase string `yaml:"session_base"`
}

type TimeoutSpec struct {
	DialSec int `yaml:"dial_sec"`
	IdleSec int `yaml:"idle_sec"`
}

// Load reads the config at path, or returns normalized defaults when
// path is empty.
func Load(path string) (Config, error) {
	cfg := defaults()
	if strings.TrimSpace(path) == "" {
		cfg.Normalize()
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("proxy config: %w", err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("proxy config: %w", err)
	}
	return cfg, nil
}

func defaults() Config {
	return Config{
		Listen:   "127.0.0.1:25565",
		Upstream: "127.0.0.1:25566",
		Tap: TapSpec{
			Enabled: false,
			Listen:  "127.0.0.1:8091",
		},
		Capture: CaptureSpec{
			Enabled: false,
			Dir:     "captures",
			Prefix:  "session",
		},
		Profiles: ProfileSpec{
			Enabled:     false,
			CachePath:   "profiles.db",
			CacheTTLSec: 6 * 60 * 60,
		},
		Timeouts: TimeoutSpec{
			DialSec: 10,
			IdleSec: 300,
		},
	}
}

// Normalize fills gaps left by a sparse file.
func (c *Config) Normalize() {
	d := defaults()
	if strings.TrimSpace(c.Listen) == "" {
		c.Listen = d.Listen
	}
	if strings.TrimSpace(c.Upstream) == "" {
		c.Upstream = d.Upstream
	}
	if strings.TrimSpace(c.Tap.Listen) == "" {
		c.Tap.Listen = d.Tap.Listen
	}
	if strings.TrimSpace(c.Capture.Prefix) == "" {
		c.Capture.Prefix = d.Capture.Prefix
	}
	if c.Profiles.CacheTTLSec <= 0 {
		c.Profiles.CacheTTLSec = d.Profiles.CacheTTLSec
	}
	if c.Timeouts.DialSec <= 0 {
		c.Timeouts.DialSec = d.Timeouts.DialSec
	}
	if c.Timeouts.IdleSec <= 0 {
		c.Timeouts.IdleSec = d.Timeouts.IdleSec
	}
}

// Validate rejects configs the tools cannot run with.
func (c *Config) Validate() error {
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		return fmt.Errorf("listen %q: %w", c.Listen, err)
	}
	if _, _, err := net.SplitHostPort(c.Upstream); err != nil {
		return fmt.Errorf("upstream %q: %w", c.Upstream, err)
	}
	if c.Tap.Enabled {
		if _, _, err := net.SplitHostPort(c.Tap.Listen); err != nil {
			return fmt.Errorf("tap listen %q: %w", c.Tap.Listen, err)
		}
	}
	if c.Capture.Enabled && strings.TrimSpace(c.Capture.Dir) == "" {
		return fmt.Errorf("capture enabled with empty dir")
	}
	if c.Profiles.Enabled && strings.TrimSpace(c.Profiles.CachePath) == "" {
		return fmt.Errorf("profiles enabled with empty cache_path")
	}
	return nil
}

// DialTimeout is the upstream connect budget.
func (c *Config) DialTimeout() time.Duration {
	return time.Duration(c.Timeouts.DialSec) * time.Second
}

// IdleTimeout is how long a silent connection is kept.
func (c *Config) IdleTimeout() time.Duration {
	return time.Duration(c.Timeouts.IdleSec) * time.Second
}

// CacheTTL is how long cached profiles stay fresh.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Profiles.CacheTTLSec) * time.Second
}
