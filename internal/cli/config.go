package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stablegraph/pkg/codec"
)

// Config is the on-disk configuration. Files ending in .yaml or .yml are
// read as YAML, anything else as TOML.
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log"`
	Codec   CodecConfig   `toml:"codec" yaml:"codec"`
	Store   StoreConfig   `toml:"store" yaml:"store"`
	Metrics MetricsConfig `toml:"metrics" yaml:"metrics"`
}

// LogConfig sets the default log level (debug, info, warn, error).
type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// CodecConfig selects the encoding for snapshots and for output files
// whose extension names no format.
type CodecConfig struct {
	Format string `toml:"format" yaml:"format"`
}

// StoreConfig selects and configures the snapshot backend.
type StoreConfig struct {
	// Backend is one of memory, file, badger, redis or mongo.
	Backend string `toml:"backend" yaml:"backend"`

	// Dir is the directory for the file and badger backends. Empty means
	// $XDG_DATA_HOME/stablegraph/<backend>.
	Dir string `toml:"dir" yaml:"dir"`

	// TTL expires snapshots after a Go duration such as "72h". Empty keeps
	// them forever. Mongo ignores it.
	TTL string `toml:"ttl" yaml:"ttl"`

	Redis RedisConfig `toml:"redis" yaml:"redis"`
	Mongo MongoConfig `toml:"mongo" yaml:"mongo"`
}

type RedisConfig struct {
	Addr     string `toml:"addr" yaml:"addr"`
	Password string `toml:"password" yaml:"password"`
	DB       int    `toml:"db" yaml:"db"`
	Prefix   string `toml:"prefix" yaml:"prefix"`
}

type MongoConfig struct {
	URI        string `toml:"uri" yaml:"uri"`
	Database   string `toml:"database" yaml:"database"`
	Collection string `toml:"collection" yaml:"collection"`
}

// MetricsConfig names a Prometheus textfile written when a command exits.
type MetricsConfig struct {
	File string `toml:"file" yaml:"file"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Log:   LogConfig{Level: "info"},
		Codec: CodecConfig{Format: string(codec.MsgPack)},
		Store: StoreConfig{
			Backend: "file",
			Redis:   RedisConfig{Addr: "localhost:6379"},
			Mongo: MongoConfig{
				URI:        "mongodb://localhost:27017",
				Database:   appName,
				Collection: "snapshots",
			},
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is an error only
// when required is set.
func LoadConfig(path string, required bool) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = toml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := codec.ParseFormat(c.Codec.Format); err != nil {
		return fmt.Errorf("codec.format: %w", err)
	}
	switch c.Store.Backend {
	case "memory", "file", "badger", "redis", "mongo":
	default:
		return fmt.Errorf("store.backend: unknown backend %q", c.Store.Backend)
	}
	if _, err := c.Store.ttl(); err != nil {
		return err
	}
	return nil
}

func (s StoreConfig) ttl() (time.Duration, error) {
	if s.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.TTL)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("store.ttl: invalid duration %q", s.TTL)
	}
	return d, nil
}
