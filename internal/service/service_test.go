// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/brightpathhr/brightpath/internal/auth"
	"github.com/brightpathhr/brightpath/internal/config"
	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/store"
)

// testDB creates a temporary migrated test database.
func testDB(t *testing.T) (*sql.DB, *store.Queries) {
	t.Helper()

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "service-test.db"),
	}
	db, err := store.NewDB(cfg)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db, store.New(db)
}

// createAdmin inserts a back-office account with a real password hash.
func createAdmin(t *testing.T, q *store.Queries, email, password string, role model.Role) store.AdminUser {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	user, err := q.CreateAdminUser(context.Background(), store.CreateAdminUserParams{
		Email: email, PasswordHash: hash, Name: "Test Admin", Role: role,
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}
	return user
}
