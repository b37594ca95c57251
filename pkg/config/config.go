// Package config loads the optional TOML configuration file.
//
// The file lives at $XDG_CONFIG_HOME/bubbletreemap/config.toml unless a path
// is given explicitly. Every section is optional; missing keys keep the
// pipeline defaults and command-line flags override whatever the file sets.
//
//	[defaults]
//	width = 1024
//	padding = 8
//	colormap = ["#1b9e77", "#d95f02", "#7570b3"]
//	formats = ["svg", "png"]
//
//	[defaults.physics]
//	steps = 500
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//	timeout = "30s"
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bubbletreemap/pkg/errors"
	"github.com/matzehuels/bubbletreemap/pkg/pipeline"
)

// AppName names the configuration directory.
const AppName = "bubbletreemap"

// FileName is the configuration file name inside the directory.
const FileName = "config.toml"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the decoded configuration file.
type Config struct {
	Defaults pipeline.Options `toml:"defaults"`
	Cache    CacheConfig      `toml:"cache"`
	Server   ServerConfig     `toml:"server"`
	Log      LogConfig        `toml:"log"`

	// Path is the file the configuration came from, empty for defaults.
	Path string `toml:"-"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"` // file, redis or none
	Dir      string `toml:"dir"`
	RedisURL string `toml:"redis_url"`
	Prefix   string `toml:"prefix"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr          string   `toml:"addr"`
	Timeout       Duration `toml:"timeout"`
	MaxBodyBytes  int64    `toml:"max_body_bytes"`
	MongoURI      string   `toml:"mongo_uri"`
	MongoDatabase string   `toml:"mongo_database"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
}

// Duration is a time.Duration written as a string such as "30s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Cache: CacheConfig{Backend: CacheFile},
		Server: ServerConfig{
			Addr:          ":8080",
			Timeout:       Duration{30 * time.Second},
			MaxBodyBytes:  10 << 20,
			MongoDatabase: AppName,
		},
		Log: LogConfig{Level: "info"},
	}
}

// DefaultPath returns the per-user configuration file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locate config dir: %w", err)
	}
	return filepath.Join(dir, AppName, FileName), nil
}

// Load reads the configuration at path on top of [Default]. An empty path
// loads the default location, where a missing file is not an error. An
// explicit path must exist. Unknown keys are rejected so typos do not go
// unnoticed.
func Load(path string) (*Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errors.New(errors.ErrCodeInvalidOption, "unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses configuration text on top of [Default].
func Decode(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section. Pipeline defaults are validated on a copy
// so unset fields stay unset for flags to fill in.
func (c *Config) Validate() error {
	opts := c.Options()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case "", CacheFile, CacheNone:
	case CacheRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidOption, "cache backend redis needs redis_url")
		}
	default:
		return errors.New(errors.ErrCodeInvalidOption, "invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Server.Timeout.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "server timeout must not be negative")
	}
	if c.Server.MaxBodyBytes < 0 {
		return errors.New(errors.ErrCodeInvalidOption, "server max_body_bytes must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidOption, "invalid log level: %q", c.Log.Level)
	}
	return nil
}

// Options returns a copy of the pipeline defaults that callers may modify.
func (c *Config) Options() pipeline.Options {
	opts := c.Defaults
	if c.Defaults.Padding != nil {
		opts.Padding = pipeline.Float(*c.Defaults.Padding)
	}
	if c.Defaults.Curvature != nil {
		opts.Curvature = pipeline.Float(*c.Defaults.Curvature)
	}
	if c.Defaults.Colormap != nil {
		opts.Colormap = append([]string{}, c.Defaults.Colormap...)
	}
	if c.Defaults.Formats != nil {
		opts.Formats = append([]string(nil), c.Defaults.Formats...)
	}
	return opts
}
