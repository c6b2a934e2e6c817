// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package config loads the logicsim configuration file.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Store kinds.
const (
	StoreNone  = "none"
	StoreFile  = "file"
	StoreRedis = "redis"
)

// Config is the content of the configuration file.
type Config struct {
	Listen   string `yaml:"listen"`
	LogLevel string `yaml:"log_level"`
	Store    Store  `yaml:"store"`
}

// Store selects where input levels are persisted by the server.
type Store struct {
	Kind  string `yaml:"kind"`
	Dir   string `yaml:"dir"`
	Redis Redis  `yaml:"redis"`
}

// Redis holds the Redis connection settings.
type Redis struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	Prefix   string        `yaml:"prefix"`
	TTL      time.Duration `yaml:"ttl"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:   "127.0.0.1:8080",
		LogLevel: "info",
		Store: Store{
			Kind: StoreNone,
			Dir:  ".",
			Redis: Redis{
				Addr:   "127.0.0.1:6379",
				Prefix: "logicsim:levels:",
			},
		},
	}
}

// Load reads a YAML configuration file on top of the defaults. A missing
// file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(err, "failed to read config")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse %s", path)
	}
	return cfg, cfg.Validate()
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.Store.Kind {
	case "", StoreNone, StoreFile, StoreRedis:
	default:
		return errors.Errorf("unknown store kind %q", c.Store.Kind)
	}
	if c.Store.Kind == StoreRedis && c.Store.Redis.Addr == "" {
		return errors.New("redis store needs an address")
	}
	return nil
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, errors.Errorf("unknown log level %q", s)
}
