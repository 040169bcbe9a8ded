// Package config loads coverenum defaults from a TOML file.
//
// Command-line flags always win; the file only changes defaults. The file is
// looked up at $XDG_CONFIG_HOME/coverenum/config.toml (or the platform
// equivalent from os.UserConfigDir) unless a path is given explicitly.
//
//	[enumerate]
//	interval = 500
//	threshold = "high-water"
//
//	[cache]
//	backend = "redis"      # file, redis or none
//	ttl = "72h"
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//
//	[batch]
//	jobs = 4
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/cohensara/coverenum/pkg/errors"
	"github.com/cohensara/coverenum/pkg/setcover"
)

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the parsed configuration file.
type Config struct {
	Enumerate Enumerate `toml:"enumerate"`
	Cache     Cache     `toml:"cache"`
	Server    Server    `toml:"server"`
	Batch     Batch     `toml:"batch"`
}

// Enumerate holds enumeration defaults.
type Enumerate struct {
	Interval  int    `toml:"interval"`
	Threshold string `toml:"threshold"`
}

// Cache selects and configures the result cache.
type Cache struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	TTL           Duration `toml:"ttl"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	KeyPrefix     string   `toml:"key_prefix"`
}

// Server configures the HTTP API.
type Server struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
	MaxResults   int      `toml:"max_results"`
}

// Batch holds batch-mode defaults.
type Batch struct {
	Jobs int `toml:"jobs"`
}

// Duration is a time.Duration written as a Go duration string in TOML.
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
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Enumerate: Enumerate{
			Interval:  setcover.DefaultInterval,
			Threshold: setcover.HighWater.String(),
		},
		Cache: Cache{
			Backend:   BackendFile,
			TTL:       Duration{7 * 24 * time.Hour},
			RedisAddr: "localhost:6379",
		},
		Server: Server{
			Addr:         ":8080",
			ReadTimeout:  Duration{30 * time.Second},
			WriteTimeout: Duration{5 * time.Minute},
			MaxResults:   100_000,
		},
		Batch: Batch{Jobs: 1},
	}
}

// DefaultPath returns the per-user configuration file path.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "coverenum", "config.toml"), nil
}

// Load reads path over the defaults. An empty path means DefaultPath, and a
// missing default file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return Default(), nil
	}
	if os.IsNotExist(err) {
		return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidFormat, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidFormat, "config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}

// Validate checks field values.
func (c Config) Validate() error {
	if c.Enumerate.Interval < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "enumerate.interval cannot be negative")
	}
	if _, err := setcover.ParseThresholdPolicy(c.Enumerate.Threshold); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "enumerate.threshold")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Batch.Jobs < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "batch.jobs cannot be negative")
	}
	if c.Server.MaxResults < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "server.max_results cannot be negative")
	}
	return nil
}

// Write encodes c as TOML to path, creating parent directories.
func Write(c Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("encode: %w", err)
	}
	return f.Close()
}
