package api

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/posterkit/posterkit/pkg/cache"
)

// Cache backend names accepted in the configuration file.
const (
	BackendNone  = "none"  // no caching, every request renders
	BackendFile  = "file"  // on-disk cache of encoded output
	BackendRedis = "redis" // shared redis cache of encoded output
)

// Config holds the server configuration, loaded from a TOML file.
//
// Example:
//
//	addr = ":3000"
//	output_dir = "/var/lib/posterkit"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "1h"
type Config struct {
	// Addr is the listen address (host:port).
	Addr string `toml:"addr"`

	// OutputDir receives PNG files for requests with format "file".
	OutputDir string `toml:"output_dir"`

	// Cache configures the render output cache.
	Cache CacheConfig `toml:"cache"`
}

// CacheConfig selects and configures the render output cache backend.
type CacheConfig struct {
	// Backend is one of "none", "file", or "redis".
	Backend string `toml:"backend"`

	// Dir is the file backend's directory. Empty means the OS temp dir.
	Dir string `toml:"dir"`

	// RedisAddr is the redis backend's address (host:port).
	RedisAddr string `toml:"redis_addr"`

	// TTL is how long cached output stays valid (e.g., "30m", "2h").
	// Zero means entries never expire.
	TTL duration `toml:"ttl"`
}

// duration wraps time.Duration so TOML files can use strings like "1h30m".
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// listen on :3000, write files to the OS temp dir, no caching.
func DefaultConfig() Config {
	return Config{
		Addr:      ":3000",
		OutputDir: os.TempDir(),
		Cache: CacheConfig{
			Backend:   BackendNone,
			RedisAddr: "localhost:6379",
			TTL:       duration{time.Hour},
		},
	}
}

// LoadConfig reads a TOML configuration file, applying defaults for any
// fields the file omits. An unknown cache backend is a configuration error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	switch cfg.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis:
	default:
		return Config{}, fmt.Errorf("unknown cache backend: %q (must be %q, %q, or %q)",
			cfg.Cache.Backend, BackendNone, BackendFile, BackendRedis)
	}
	return cfg, nil
}

// OpenCache builds the render output cache described by the configuration.
// The redis backend pings the server and fails fast if it is unreachable.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Cache.Backend {
	case BackendFile:
		dir := c.Cache.Dir
		if dir == "" {
			dir = os.TempDir()
		}
		return cache.NewFileCache(dir)
	case BackendRedis:
		return cache.NewRedisCache(ctx, c.Cache.RedisAddr)
	default:
		return cache.NewNullCache(), nil
	}
}
