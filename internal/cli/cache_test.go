package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/cabinetry/pkg/cache"
	"github.com/matzehuels/cabinetry/pkg/config"
)

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
		c, _ := testCLI(t)
		dir, err := c.cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("configured", func(t *testing.T) {
		c, _ := testCLI(t)
		c.Config.Cache.Dir = "/srv/cabinetry-cache"
		dir, err := c.cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if dir != "/srv/cabinetry-cache" {
			t.Errorf("cacheDir() = %q", dir)
		}
	})
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		backend string
		noCache bool
		file    bool
	}{
		{"file backend", config.BackendFile, false, true},
		{"none backend", config.BackendNone, false, false},
		{"no-cache flag wins", config.BackendFile, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testCLI(t)
			c.Config.Cache.Backend = tt.backend
			c.Config.Cache.Dir = t.TempDir()

			ch, err := c.newCache(ctx, tt.noCache)
			if err != nil {
				t.Fatalf("newCache: %v", err)
			}
			defer ch.Close()

			_, isFile := ch.(*cache.FileCache)
			if isFile != tt.file {
				t.Errorf("got %T, want file cache = %v", ch, tt.file)
			}
		})
	}
}
