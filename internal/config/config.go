// Package config loads the client's TOML configuration, structured the way
// the teacher structures its own server config: one struct per concern, a
// defaults() function, and an env var override for the config path.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// EnvOverride is the environment variable a caller may set to point Load at
// a config file instead of passing a path explicitly.
const EnvOverride = "PYREBORN_CONFIG"

// Config is the root configuration document.
type Config struct {
	Connection ConnectionConfig `toml:"connection"`
	Timeouts   TimeoutsConfig   `toml:"timeouts"`
	RateLimit  RateLimitConfig  `toml:"rate_limit"`
	Logging    LoggingConfig    `toml:"logging"`
	Cache      CacheConfig      `toml:"cache"`
}

// ConnectionConfig names the server to dial and the identity to present.
type ConnectionConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	Account         string `toml:"account"`
	Version         string `toml:"version"`
	EncryptionKeyID int    `toml:"encryption_key_id"`
}

// TimeoutsConfig bounds the blocking operations of a session.
type TimeoutsConfig struct {
	Dial      time.Duration `toml:"dial"`
	Handshake time.Duration `toml:"handshake"`
	Heartbeat time.Duration `toml:"heartbeat"`
}

// RateLimitConfig governs the outbound send queue's pacing (spec §4.7: a
// 50ms floor between frames).
type RateLimitConfig struct {
	MinFrameInterval time.Duration `toml:"min_frame_interval"`
	SendQueueSize    int           `toml:"send_queue_size"`
}

// LoggingConfig controls the zap logger construction.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// CacheConfig controls on-disk caches (level cache bound, file cache dir,
// known-servers cache).
type CacheConfig struct {
	LevelCacheBound int    `toml:"level_cache_bound"`
	FileCacheDir    string `toml:"file_cache_dir"`
}

// Load reads and parses a TOML config file at path, applying defaults()
// first so an omitted section keeps its default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromEnvOrPath resolves the config path from PYREBORN_CONFIG if set,
// falling back to path.
func LoadFromEnvOrPath(path string) (*Config, error) {
	if v := os.Getenv(EnvOverride); v != "" {
		path = v
	}
	return Load(path)
}

// Defaults returns a fresh Config populated with the library's built-in
// defaults, for callers that construct a Client without a config file.
func Defaults() *Config {
	return defaults()
}

func defaults() *Config {
	return &Config{
		Connection: ConnectionConfig{
			Host:            "127.0.0.1",
			Port:            14900,
			Version:         "GNW22122",
			EncryptionKeyID: 0,
		},
		Timeouts: TimeoutsConfig{
			Dial:      10 * time.Second,
			Handshake: 10 * time.Second,
			Heartbeat: 90 * time.Second,
		},
		RateLimit: RateLimitConfig{
			MinFrameInterval: 50 * time.Millisecond,
			SendQueueSize:    256,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Cache: CacheConfig{
			LevelCacheBound: 32,
			FileCacheDir:    "~/.pyreborn/files",
		},
	}
}
