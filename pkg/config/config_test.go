package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/cohensara/coverenum/pkg/errors"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := write(t, `
[enumerate]
interval = 250
threshold = "exact"

[cache]
backend = "redis"
ttl = "90m"
redis_addr = "cache:6379"

[batch]
jobs = 8
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Enumerate.Interval != 250 || cfg.Enumerate.Threshold != "exact" {
		t.Errorf("Enumerate = %+v", cfg.Enumerate)
	}
	if cfg.Cache.Backend != BackendRedis || cfg.Cache.TTL.Duration != 90*time.Minute || cfg.Cache.RedisAddr != "cache:6379" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Batch.Jobs != 8 {
		t.Errorf("Batch.Jobs = %d, want 8", cfg.Batch.Jobs)
	}
	if cfg.Server.Addr != Default().Server.Addr {
		t.Errorf("unset Server.Addr should keep its default, got %q", cfg.Server.Addr)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[enumerate\n", errors.ErrCodeInvalidFormat},
		{"unknown key", "[enumerate]\ncolour = 1\n", errors.ErrCodeInvalidFormat},
		{"bad duration", "[cache]\nttl = \"soon\"\n", errors.ErrCodeInvalidFormat},
		{"bad backend", "[cache]\nbackend = \"s3\"\n", errors.ErrCodeInvalidInput},
		{"bad threshold", "[enumerate]\nthreshold = \"lowest\"\n", errors.ErrCodeInvalidInput},
		{"negative jobs", "[batch]\njobs = -1\n", errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Errorf("Load error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load(absent) error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestWriteRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Cache.Backend = BackendNone
	cfg.Batch.Jobs = 3

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := Write(cfg, path); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(back, cfg) {
		t.Errorf("round trip = %+v, want %+v", back, cfg)
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}
