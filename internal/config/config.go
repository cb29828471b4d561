// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"ESTATES_DB_PATH" envDefault:"./data/estates.db"`
	MySQLDSN      string `env:"ESTATES_MYSQL_DSN"` // Optional MySQL DSN; overrides the SQLite store backend
	SessionSecret string `env:"ESTATES_SESSION_SECRET,required"`
	ServerHost    string `env:"ESTATES_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"ESTATES_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"ESTATES_ENV" envDefault:"development"`
	LogLevel      string `env:"ESTATES_LOG_LEVEL" envDefault:"info"`
	SiteName      string `env:"ESTATES_SITE_NAME" envDefault:"Azure Estates"`

	// Admin credentials. The original catalog shipped with this exact pair;
	// there is no user table and no hashing by design.
	AdminUsername string `env:"ESTATES_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ESTATES_ADMIN_PASSWORD" envDefault:"Sign@2025"`

	// Cache configuration
	RedisURL     string `env:"ESTATES_REDIS_URL"`                        // Optional Redis URL for distributed caching
	CachePrefix  string `env:"ESTATES_CACHE_PREFIX" envDefault:"estates:"`
	CacheTTL     int    `env:"ESTATES_CACHE_TTL" envDefault:"600"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"ESTATES_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries

	// Copy assist configuration
	OpenAIAPIKey string `env:"ESTATES_OPENAI_API_KEY"`
	OpenAIModel  string `env:"ESTATES_OPENAI_MODEL" envDefault:"gpt-4o-mini"`

	// GeoIP configuration
	GeoIPDBPath string `env:"ESTATES_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Demo mode restores the seed catalog nightly
	DemoMode bool `env:"ESTATES_DEMO_MODE" envDefault:"false"`

	// Upload limits for media embedding
	MaxUploadMB int `env:"ESTATES_MAX_UPLOAD_MB" envDefault:"25"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// UseMySQL returns true if the store backend should use MySQL instead of SQLite.
func (c Config) UseMySQL() bool {
	return c.MySQLDSN != ""
}

// CopyAssistEnabled returns true if the generative copy assist is configured.
func (c Config) CopyAssistEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// GeoIPEnabled returns true if GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("ESTATES_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("ESTATES_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("ESTATES_SERVER_PORT must be between 1 and 65535, got %d", cfg.ServerPort)
	}

	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("ESTATES_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
