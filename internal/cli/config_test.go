package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.toml", `
[log]
level = "debug"

[codec]
format = "json"

[store]
backend = "redis"
ttl = "72h"

[store.redis]
addr = "cache:6379"
db = 2
`)
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Log.Level != "debug" || cfg.Codec.Format != "json" {
		t.Errorf("log/codec = %+v %+v", cfg.Log, cfg.Codec)
	}
	if cfg.Store.Backend != "redis" || cfg.Store.Redis.Addr != "cache:6379" || cfg.Store.Redis.DB != 2 {
		t.Errorf("store = %+v", cfg.Store)
	}
	if ttl, _ := cfg.Store.ttl(); ttl.Hours() != 72 {
		t.Errorf("ttl = %v, want 72h", ttl)
	}
	if cfg.Store.Mongo.Collection != "snapshots" {
		t.Errorf("unset sections should keep defaults, got %+v", cfg.Store.Mongo)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "config.yaml", `
store:
  backend: mongo
  mongo:
    uri: mongodb://db:27017
metrics:
  file: /tmp/stablegraph.prom
`)
	cfg, err := LoadConfig(path, true)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Store.Backend != "mongo" || cfg.Store.Mongo.URI != "mongodb://db:27017" {
		t.Errorf("store = %+v", cfg.Store)
	}
	if cfg.Store.Mongo.Database != appName {
		t.Errorf("database = %q, want default %q", cfg.Store.Mongo.Database, appName)
	}
	if cfg.Metrics.File != "/tmp/stablegraph.prom" {
		t.Errorf("metrics file = %q", cfg.Metrics.File)
	}
	if cfg.Codec.Format != "msgpack" {
		t.Errorf("codec format = %q, want default msgpack", cfg.Codec.Format)
	}
}

func TestLoadConfigMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.toml")

	cfg, err := LoadConfig(path, false)
	if err != nil {
		t.Fatalf("optional config: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("missing optional file should give defaults, got %+v", cfg)
	}

	if _, err := LoadConfig(path, true); err == nil {
		t.Error("missing required file should fail")
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[store\nbackend = 1"},
		{"backend", "[store]\nbackend = \"etcd\""},
		{"format", "[codec]\nformat = \"xml\""},
		{"ttl", "[store]\nttl = \"soon\""},
		{"negative ttl", "[store]\nttl = \"-1h\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, tt.name+".toml", tt.content)
			if _, err := LoadConfig(path, true); err == nil {
				t.Errorf("LoadConfig(%q) should fail", tt.content)
			}
		})
	}
}

func TestXDGDirs(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")

	if dir, _ := configDir(); dir != filepath.Join("/tmp/cfg", appName) {
		t.Errorf("configDir() = %q", dir)
	}
	if dir, _ := dataDir(); dir != filepath.Join("/tmp/data", appName) {
		t.Errorf("dataDir() = %q", dir)
	}

	t.Setenv("XDG_DATA_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if dir, _ := dataDir(); dir != filepath.Join(home, ".local", "share", appName) {
		t.Errorf("dataDir() fallback = %q", dir)
	}
}
