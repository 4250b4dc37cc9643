// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/brightpathhr/brightpath/internal/auth"
	"github.com/brightpathhr/brightpath/internal/config"
	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/store"
)

func TestSetupStatusFresh(t *testing.T) {
	db, q := testDB(t)
	svc := NewSetupService(db, q, config.DriverSQLite)

	status := svc.Status(context.Background())
	if !status.DatabaseOK {
		t.Error("DatabaseOK should be true")
	}
	if !status.Migrated {
		t.Error("Migrated should be true on a migrated test database")
	}
	if status.AdminExists {
		t.Error("AdminExists should be false on a fresh database")
	}
	if status.SetupComplete {
		t.Error("SetupComplete should be false before setup runs")
	}
}

func TestSetupRun(t *testing.T) {
	db, q := testDB(t)
	svc := NewSetupService(db, q, config.DriverSQLite)
	ctx := context.Background()

	if err := svc.Run(ctx, "founder@example.com", "first-password", "Founder"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	status := svc.Status(ctx)
	if !status.AdminExists {
		t.Error("AdminExists should be true after setup")
	}
	if !status.SetupComplete {
		t.Error("SetupComplete should be true after setup")
	}

	// The first account gets the admin role and a working password.
	user, err := q.GetAdminUserByEmail(ctx, "founder@example.com")
	if err != nil {
		t.Fatalf("GetAdminUserByEmail: %v", err)
	}
	if user.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", user.Role, model.RoleAdmin)
	}
	ok, err := auth.CheckPassword("first-password", user.PasswordHash)
	if err != nil || !ok {
		t.Errorf("stored password hash does not verify (ok=%v, err=%v)", ok, err)
	}

	setting, err := q.GetSetting(ctx, store.SettingSetupComplete)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if setting.Value != "true" {
		t.Errorf("sentinel = %q, want %q", setting.Value, "true")
	}
}

func TestSetupRunTwice(t *testing.T) {
	db, q := testDB(t)
	svc := NewSetupService(db, q, config.DriverSQLite)
	ctx := context.Background()

	if err := svc.Run(ctx, "founder@example.com", "first-password", "Founder"); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := svc.Run(ctx, "second@example.com", "other-password", "Second"); !errors.Is(err, ErrAlreadySetUp) {
		t.Fatalf("second Run: err = %v, want ErrAlreadySetUp", err)
	}

	// The second call must not have created another account.
	count, err := q.CountAdminUsers(ctx)
	if err != nil {
		t.Fatalf("CountAdminUsers: %v", err)
	}
	if count != 1 {
		t.Errorf("admin count = %d, want 1", count)
	}
}

func TestSetupRunSkipsAdminWhenOneExists(t *testing.T) {
	db, q := testDB(t)
	svc := NewSetupService(db, q, config.DriverSQLite)
	ctx := context.Background()

	createAdmin(t, q, "existing@example.com", "password-123", model.RoleAdmin)

	// Setup without sentinel and with an existing admin: the admin step is
	// a no-op and the sentinel gets written.
	if err := svc.Run(ctx, "", "", ""); err != nil {
		t.Fatalf("Run: %v", err)
	}

	count, err := q.CountAdminUsers(ctx)
	if err != nil {
		t.Fatalf("CountAdminUsers: %v", err)
	}
	if count != 1 {
		t.Errorf("admin count = %d, want 1", count)
	}
	if !svc.Status(ctx).SetupComplete {
		t.Error("SetupComplete should be true")
	}
}

func TestSeededDatabaseReadsAsSetUp(t *testing.T) {
	db, q := testDB(t)
	svc := NewSetupService(db, q, config.DriverSQLite)
	ctx := context.Background()

	if err := store.Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	status := svc.Status(ctx)
	if !status.AdminExists {
		t.Error("AdminExists should be true after seeding")
	}
	if !status.SetupComplete {
		t.Error("SetupComplete should be true after seeding")
	}

	// A seeded install must not accept a second setup run.
	if err := svc.Run(ctx, "second@example.com", "other-password", "Second"); !errors.Is(err, ErrAlreadySetUp) {
		t.Errorf("Run after seed: err = %v, want ErrAlreadySetUp", err)
	}
}

func TestSetupStepErrorNamesStep(t *testing.T) {
	err := &SetupStepError{Step: StepAdminCreation, Err: errors.New("boom")}

	if got := err.Error(); got != `setup step "admin_creation" failed: boom` {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, err.Err) {
		t.Error("SetupStepError should unwrap to its cause")
	}

	var stepErr *SetupStepError
	if !errors.As(error(err), &stepErr) || stepErr.Step != StepAdminCreation {
		t.Error("errors.As should recover the step name")
	}
}
