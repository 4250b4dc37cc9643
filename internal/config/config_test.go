// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Errorf("DBDriver = %q, want sqlite", cfg.DBDriver)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment should be true by default")
	}
	if cfg.MailEnabled() {
		t.Error("MailEnabled should be false without SMTP settings")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache should be false without a Redis URL")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BP_ENV", "production")
	t.Setenv("BP_SERVER_HOST", "0.0.0.0")
	t.Setenv("BP_SERVER_PORT", "9000")
	t.Setenv("BP_SMTP_HOST", "mail.example.com")
	t.Setenv("BP_NOTIFY_EMAIL", "sales@example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.IsDevelopment() {
		t.Error("IsDevelopment should be false in production")
	}
	if got := cfg.ServerAddr(); got != "0.0.0.0:9000" {
		t.Errorf("ServerAddr = %q", got)
	}
	if !cfg.MailEnabled() {
		t.Error("MailEnabled should be true with host and notify address")
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("BP_DB_DRIVER", "postgres")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "BP_DB_DRIVER") {
		t.Errorf("Load: err = %v, want unsupported driver error", err)
	}
}

func TestLoadMySQLRequiresUser(t *testing.T) {
	t.Setenv("BP_DB_DRIVER", "mysql")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "BP_DB_USER") {
		t.Errorf("Load: err = %v, want missing user error", err)
	}

	t.Setenv("BP_DB_USER", "brightpath")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	dsn := cfg.MySQLDSN()
	if !strings.Contains(dsn, "brightpath:@tcp(localhost:3306)/brightpath") {
		t.Errorf("MySQLDSN = %q", dsn)
	}
	if !strings.Contains(dsn, "parseTime=true") {
		t.Errorf("MySQLDSN missing parseTime: %q", dsn)
	}
}

func TestLoadSMTPRequiresNotifyEmail(t *testing.T) {
	t.Setenv("BP_SMTP_HOST", "mail.example.com")

	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "BP_NOTIFY_EMAIL") {
		t.Errorf("Load: err = %v, want missing notify email error", err)
	}
}
