package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, path, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if path != "" {
		t.Errorf("path = %q, want empty", path)
	}
	def := Default()
	if cfg.Designs.Backend != def.Designs.Backend || cfg.Server.Addr != def.Server.Addr {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[designs]
backend = "mongo"
mongo_uri = "mongodb://db:27017"

[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "90m"

[server]
addr = "127.0.0.1:9000"

[render]
formats = ["png", "txt"]
`)
	cfg, got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != path {
		t.Errorf("path = %q, want %q", got, path)
	}
	if cfg.Designs.Backend != BackendMongo || cfg.Designs.MongoURI != "mongodb://db:27017" {
		t.Errorf("designs = %+v", cfg.Designs)
	}
	if cfg.Designs.MongoDatabase != "cabinetry" {
		t.Errorf("mongo_database = %q, want default", cfg.Designs.MongoDatabase)
	}
	if cfg.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("ttl = %v, want 90m", cfg.Cache.TTL)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.Sessions != BackendMemory {
		t.Errorf("server = %+v", cfg.Server)
	}
	if strings.Join(cfg.Render.Formats, ",") != "png,txt" {
		t.Errorf("formats = %v", cfg.Render.Formats)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[server]\naddr = \":7000\"\n")
	t.Setenv(EnvConfig, path)
	cfg, _, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("addr = %q, want :7000", cfg.Server.Addr)
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", "[designs\n"},
		{"unknown key", "[designs]\nbackend = \"file\"\ncolour = \"red\"\n"},
		{"bad backend", "[designs]\nbackend = \"sqlite\"\n"},
		{"mongo without uri", "[designs]\nbackend = \"mongo\"\n"},
		{"redis without addr", "[cache]\nbackend = \"redis\"\n"},
		{"bad sessions", "[server]\nsessions = \"cookie\"\n"},
		{"bad ttl", "[cache]\nttl = \"soon\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/designs"); got != filepath.Join(home, "designs") {
		t.Errorf("expandHome(~/designs) = %q", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("expandHome(/abs) = %q", got)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	data, err := Default().Encode()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `ttl = "168h0m0s"`) {
		t.Errorf("encoded config missing ttl:\n%s", data)
	}
	cfg, _, err := Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("reload encoded default: %v", err)
	}
	if cfg.Cache.TTL != Default().Cache.TTL {
		t.Errorf("ttl = %v after round trip", cfg.Cache.TTL)
	}
}

func TestCacheDir(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	dir, err := CacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(xdg, "cabinetry") {
		t.Errorf("CacheDir() = %q", dir)
	}
}
