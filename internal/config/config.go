// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Supported database drivers.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	Env        string `env:"BP_ENV" envDefault:"development"`
	ServerHost string `env:"BP_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"BP_SERVER_PORT" envDefault:"8080"`
	LogLevel   string `env:"BP_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"BP_UPLOADS_DIR" envDefault:"./uploads"`
	SecretKey  string `env:"BP_SECRET_KEY"` // CSRF auth key; random per process when unset

	// Database configuration. SQLite is the default; set BP_DB_DRIVER=mysql
	// together with the BP_DB_HOST/PORT/USER/PASSWORD/NAME variables for a
	// MySQL-backed deployment.
	DBDriver   string `env:"BP_DB_DRIVER" envDefault:"sqlite"`
	DBPath     string `env:"BP_DB_PATH" envDefault:"./data/brightpath.db"`
	DBHost     string `env:"BP_DB_HOST" envDefault:"localhost"`
	DBPort     int    `env:"BP_DB_PORT" envDefault:"3306"`
	DBUser     string `env:"BP_DB_USER"`
	DBPassword string `env:"BP_DB_PASSWORD"`
	DBName     string `env:"BP_DB_NAME" envDefault:"brightpath"`

	// SMTP configuration for lead/booking notifications. Notifications are
	// disabled when BP_SMTP_HOST is empty.
	SMTPHost    string `env:"BP_SMTP_HOST"`
	SMTPPort    int    `env:"BP_SMTP_PORT" envDefault:"587"`
	SMTPUser    string `env:"BP_SMTP_USER"`
	SMTPPass    string `env:"BP_SMTP_PASSWORD"`
	SMTPFrom    string `env:"BP_SMTP_FROM"`
	NotifyEmail string `env:"BP_NOTIFY_EMAIL"`

	// Cache configuration
	RedisURL    string `env:"BP_REDIS_URL"`                     // Optional Redis URL for a shared cache
	CachePrefix string `env:"BP_CACHE_PREFIX" envDefault:"bp:"` // Redis key prefix
	CacheTTL    int    `env:"BP_CACHE_TTL" envDefault:"300"`    // Default cache TTL in seconds

	// GeoIP configuration
	GeoIPDBPath string `env:"BP_GEOIP_DB_PATH"` // Path to GeoLite2-Country.mmdb file

	// Seeding configuration
	DoSeed bool `env:"BP_DO_SEED" envDefault:"false"` // Seed demo content on startup
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

// MailEnabled returns true if SMTP notifications are configured.
func (c Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.NotifyEmail != ""
}

// GeoIPEnabled returns true if the GeoIP database is configured.
func (c Config) GeoIPEnabled() bool {
	return c.GeoIPDBPath != ""
}

// MySQLDSN returns the DSN for the configured MySQL database.
func (c Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.DBDriver {
	case DriverSQLite, DriverMySQL:
	default:
		return nil, fmt.Errorf("unsupported BP_DB_DRIVER %q (expected %q or %q)",
			cfg.DBDriver, DriverSQLite, DriverMySQL)
	}

	if cfg.DBDriver == DriverMySQL && cfg.DBUser == "" {
		return nil, fmt.Errorf("BP_DB_USER is required when BP_DB_DRIVER=mysql")
	}

	if cfg.SMTPHost != "" && cfg.NotifyEmail == "" {
		return nil, fmt.Errorf("BP_NOTIFY_EMAIL is required when BP_SMTP_HOST is set")
	}

	return cfg, nil
}
