package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Listen != "127.0.0.1:25565" || cfg.Upstream != "127.0.0.1:25566" {
		t.Fatalf("addresses: %+v", cfg)
	}
	if cfg.Tap.Enabled || cfg.Capture.Enabled || cfg.Profiles.Enabled {
		t.Fatalf("optional features should default off: %+v", cfg)
	}
	if cfg.DialTimeout() != 10*time.Second || cfg.IdleTimeout() != 5*time.Minute {
		t.Fatalf("timeouts: %v %v", cfg.DialTimeout(), cfg.IdleTimeout())
	}
}

func TestLoadFileAndNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "proxy.yaml")
	doc := `
listen: "0.0.0.0:25565"
upstream: "mc.internal:25565"
tap:
  enabled: true
capture:
  enabled: true
  dir: /var/log/mc
profiles:
  enabled: true
  cache_path: /var/cache/profiles.db
  cache_ttl_sec: 60
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Upstream != "mc.internal:25565" {
		t.Fatalf("upstream: %q", cfg.Upstream)
	}
	// Gaps fall back to defaults.
	if cfg.Tap.Listen != "127.0.0.1:8091" {
		t.Fatalf("tap listen: %q", cfg.Tap.Listen)
	}
	if cfg.Capture.Prefix != "session" {
		t.Fatalf("capture prefix: %q", cfg.Capture.Prefix)
	}
	if cfg.CacheTTL() != time.Minute {
		t.Fatalf("cache ttl: %v", cfg.CacheTTL())
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []string{
		"listen: \"no-port\"\n",
		"upstream: \"also bad\"\n",
		"capture:\n  enabled: true\n  dir: \"\"\n",
	}
	dir := t.TempDir()
	for i, doc := range cases {
		path := filepath.Join(dir, "bad.yaml")
		if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		_, err := Load(path)
		if err == nil || !strings.Contains(err.Error(), "proxy config") {
			t.Fatalf("case %d: got %v", i, err)
		}
	}
}
