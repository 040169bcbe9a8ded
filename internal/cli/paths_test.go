package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestNewCacheBackends(t *testing.T) {
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = t.TempDir()

	cc, err := c.newCache(t.Context(), false)
	if err != nil {
		t.Fatalf("newCache(file) error: %v", err)
	}
	if _, ok := cc.(interface{ Dir() string }); !ok {
		t.Errorf("file backend returned %T", cc)
	}

	cc, err = c.newCache(t.Context(), true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := cc.(interface{ Dir() string }); ok {
		t.Error("--no-cache should bypass the file cache")
	}
}
