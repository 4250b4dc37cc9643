// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brightpathhr/brightpath/internal/auth"
	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/store"
)

// Setup step names, reported verbatim when a step fails.
const (
	StepConnectivity  = "connectivity"
	StepMigrations    = "migrations"
	StepAdminCreation = "admin_creation"
	StepSentinel      = "setup_complete"
)

// ErrAlreadySetUp is returned when setup is re-run after completion.
var ErrAlreadySetUp = errors.New("setup is already complete")

// SetupStatus reports the observable first-run state.
type SetupStatus struct {
	DatabaseOK    bool `json:"database_ok"`
	Migrated      bool `json:"migrated"`
	AdminExists   bool `json:"admin_exists"`
	SetupComplete bool `json:"setup_complete"`
}

// SetupStepError identifies which setup step failed. Applied steps are not
// rolled back; re-running setup resumes from observable state.
type SetupStepError struct {
	Step string
	Err  error
}

func (e *SetupStepError) Error() string {
	return fmt.Sprintf("setup step %q failed: %v", e.Step, e.Err)
}

func (e *SetupStepError) Unwrap() error { return e.Err }

// SetupService drives the first-run flow: connectivity check, migrations,
// first admin account, and the completion sentinel.
type SetupService struct {
	db      *sql.DB
	queries *store.Queries
	driver  string
}

// NewSetupService creates a SetupService for the given driver.
func NewSetupService(db *sql.DB, queries *store.Queries, driver string) *SetupService {
	return &SetupService{db: db, queries: queries, driver: driver}
}

// Status inspects the database without mutating it.
func (s *SetupService) Status(ctx context.Context) SetupStatus {
	var status SetupStatus

	if err := s.db.PingContext(ctx); err != nil {
		return status
	}
	status.DatabaseOK = true

	// An answerable admin count implies the schema is in place.
	count, err := s.queries.CountAdminUsers(ctx)
	if err != nil {
		return status
	}
	status.Migrated = true
	status.AdminExists = count > 0

	setting, err := s.queries.GetSetting(ctx, store.SettingSetupComplete)
	status.SetupComplete = err == nil && setting.Value == "true"

	return status
}

// Run executes the setup steps in order, stopping at the first failure.
// The returned error is a *SetupStepError naming the failed step.
func (s *SetupService) Run(ctx context.Context, adminEmail, adminPassword, adminName string) error {
	status := s.Status(ctx)
	if status.SetupComplete {
		return ErrAlreadySetUp
	}

	if err := s.db.PingContext(ctx); err != nil {
		return &SetupStepError{Step: StepConnectivity, Err: err}
	}

	if err := store.Migrate(s.db, s.driver); err != nil {
		return &SetupStepError{Step: StepMigrations, Err: err}
	}

	count, err := s.queries.CountAdminUsers(ctx)
	if err != nil {
		return &SetupStepError{Step: StepAdminCreation, Err: err}
	}
	if count == 0 {
		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return &SetupStepError{Step: StepAdminCreation, Err: err}
		}
		admin, err := s.queries.CreateAdminUser(ctx, store.CreateAdminUserParams{
			Email:        adminEmail,
			PasswordHash: hash,
			Name:         adminName,
			Role:         model.RoleAdmin,
		})
		if err != nil {
			return &SetupStepError{Step: StepAdminCreation, Err: err}
		}
		slog.Info("first admin account created", "user_id", admin.ID, "email", admin.Email)
	}

	if err := s.queries.UpsertSetting(ctx, store.SettingSetupComplete, "true"); err != nil {
		return &SetupStepError{Step: StepSentinel, Err: err}
	}

	slog.Info("setup complete")
	return nil
}
