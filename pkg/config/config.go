// Package config loads cabinetry's TOML configuration.
//
// The file is looked up in order: the --config flag, $CABINETRY_CONFIG,
// $XDG_CONFIG_HOME/cabinetry/config.toml and ~/.config/cabinetry/config.toml.
// A missing file at one of the implicit locations is not an error; the
// defaults from [Default] apply.
//
//	[designs]
//	backend = "file"          # file | mongo
//	dir = "~/designs"
//	mongo_uri = "mongodb://localhost:27017"
//	mongo_database = "cabinetry"
//
//	[cache]
//	backend = "file"          # file | redis | none
//	redis_addr = "localhost:6379"
//	ttl = "168h"
//
//	[server]
//	addr = ":8080"
//	sessions = "file"         # memory | file
//
//	[render]
//	font = "/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/cabinetry/pkg/errors"
)

const appName = "cabinetry"

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "CABINETRY_CONFIG"

// Backend names.
const (
	BackendFile   = "file"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendNone   = "none"
	BackendMemory = "memory"
)

// Config is the decoded configuration file.
type Config struct {
	Designs DesignsConfig `toml:"designs"`
	Cache   CacheConfig   `toml:"cache"`
	Server  ServerConfig  `toml:"server"`
	Render  RenderConfig  `toml:"render"`
}

// DesignsConfig selects the named design store.
type DesignsConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`
}

// CacheConfig selects the render artifact cache.
type CacheConfig struct {
	Backend       string   `toml:"backend"`
	Dir           string   `toml:"dir"`
	RedisAddr     string   `toml:"redis_addr"`
	RedisPassword string   `toml:"redis_password"`
	RedisDB       int      `toml:"redis_db"`
	Prefix        string   `toml:"prefix"`
	TTL           Duration `toml:"ttl"`
}

// ServerConfig configures `cabinetry serve`.
type ServerConfig struct {
	Addr       string `toml:"addr"`
	Sessions   string `toml:"sessions"`
	SessionDir string `toml:"session_dir"`
}

// RenderConfig holds render defaults.
type RenderConfig struct {
	Font    string   `toml:"font"`
	Formats []string `toml:"formats"`
}

// Duration is a time.Duration written as a Go duration string ("90m").
type Duration struct{ time.Duration }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
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

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Designs: DesignsConfig{Backend: BackendFile, MongoDatabase: "cabinetry"},
		Cache:   CacheConfig{Backend: BackendFile, TTL: Duration{7 * 24 * time.Hour}},
		Server:  ServerConfig{Addr: ":8080", Sessions: BackendMemory},
		Render:  RenderConfig{Formats: []string{"png"}},
	}
}

// Path resolves the config file location. explicit is the --config flag
// value; the bool reports whether the path was asked for rather than
// implied, in which case it must exist.
func Path(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return env, true
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName, "config.toml"), false
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", false
	}
	return filepath.Join(home, ".config", appName, "config.toml"), false
}

// Load reads the config file resolved by [Path]. Keys the file sets
// override [Default]; unknown keys are an error.
func Load(explicit string) (Config, string, error) {
	cfg := Default()
	path, required := Path(explicit)
	if path == "" {
		return cfg, "", nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, "", nil
		}
		return cfg, path, errors.Wrap(errors.ErrCodeNotFound, err, "config file %s", path)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, path, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return cfg, path, errors.New(errors.ErrCodeInvalidInput,
			"unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	cfg.expand()
	return cfg, path, cfg.Validate()
}

// Validate checks backend names and the settings each backend needs.
func (c Config) Validate() error {
	switch c.Designs.Backend {
	case BackendFile:
	case BackendMongo:
		if c.Designs.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidInput, "designs.mongo_uri is required for the mongo backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "designs.backend %q (want file or mongo)", c.Designs.Backend)
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend %q (want file, redis or none)", c.Cache.Backend)
	}
	switch c.Server.Sessions {
	case BackendMemory, BackendFile:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "server.sessions %q (want memory or file)", c.Server.Sessions)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *Config) expand() {
	c.Designs.Dir = expandHome(c.Designs.Dir)
	c.Cache.Dir = expandHome(c.Cache.Dir)
	c.Server.SessionDir = expandHome(c.Server.SessionDir)
	c.Render.Font = expandHome(c.Render.Font)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// CacheDir returns the default artifact cache directory
// ($XDG_CACHE_HOME/cabinetry or ~/.cache/cabinetry).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
