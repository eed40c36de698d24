// Package config loads the server configuration from a YAML file with
// environment variable overrides.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Environment variable overrides.
const (
	EnvAddr      = "BLINKO_ADDR"
	EnvDSN       = "BLINKO_DSN"
	EnvJWTSecret = "BLINKO_JWT_SECRET"
	EnvLogLevel  = "BLINKO_LOG_LEVEL"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds the store connection settings.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// JWTConfig holds session token settings.
type JWTConfig struct {
	Secret      string `yaml:"secret"`
	ExpiryHours int    `yaml:"expiry_hours"`
}

// Expiry returns the configured token lifetime.
func (j JWTConfig) Expiry() time.Duration {
	if j.ExpiryHours <= 0 {
		return 14 * 24 * time.Hour
	}
	return time.Duration(j.ExpiryHours) * time.Hour
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // "text" (default) or "json".
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Config is the root server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
}

// Load reads the configuration file when it exists, applies environment
// overrides and fills in defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if strings.TrimSpace(path) != "" {
		data, errRead := os.ReadFile(path)
		switch {
		case errRead == nil:
			if errParse := yaml.Unmarshal(data, cfg); errParse != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, errParse)
			}
		case os.IsNotExist(errRead):
			// defaults + env only
		default:
			return nil, fmt.Errorf("config: read %s: %w", path, errRead)
		}
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvAddr)); v != "" {
		cfg.Server.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvDSN)); v != "" {
		cfg.Database.DSN = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJWTSecret)); v != "" {
		cfg.JWT.Secret = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":1111"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:blinko.db"
	}
	if cfg.JWT.Secret == "" {
		// Sessions will not survive a restart without a configured secret.
		cfg.JWT.Secret = randomSecret()
		log.Warn("config: no jwt secret configured, generated an ephemeral one")
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand read failures are not recoverable at startup.
		panic(fmt.Sprintf("config: read random: %v", err))
	}
	return hex.EncodeToString(buf)
}
