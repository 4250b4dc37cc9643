// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic above the store layer: login
// orchestration, content-block composition, media handling, stats folding,
// and outbound notifications.
package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/brightpathhr/brightpath/internal/auth"
	"github.com/brightpathhr/brightpath/internal/session"
	"github.com/brightpathhr/brightpath/internal/store"
)

// ErrInvalidCredentials is the single error returned for every credential
// failure. Unknown email and wrong password are deliberately
// indistinguishable so accounts cannot be enumerated.
var ErrInvalidCredentials = errors.New("Invalid email or password")

// SiteLoginResult is a successful site-realm login.
type SiteLoginResult struct {
	User    store.User
	Session store.Session
}

// AdminLoginResult is a successful back-office login.
type AdminLoginResult struct {
	User    store.AdminUser
	Session store.Session
}

// AuthService orchestrates credential verification and session issuance
// for both realms.
type AuthService struct {
	queries      *store.Queries
	siteSessions *session.Manager
	adminSession *session.Manager
}

// NewAuthService creates an AuthService.
func NewAuthService(queries *store.Queries, site, admin *session.Manager) *AuthService {
	return &AuthService{queries: queries, siteSessions: site, adminSession: admin}
}

// LoginSite verifies site-visitor credentials and issues a session.
func (s *AuthService) LoginSite(ctx context.Context, email, password string) (SiteLoginResult, error) {
	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("login lookup failed", "error", err)
		}
		return SiteLoginResult{}, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !ok {
		if err != nil {
			slog.Error("password verification failed", "error", err, "user_id", user.ID)
		}
		return SiteLoginResult{}, ErrInvalidCredentials
	}

	sess, err := s.siteSessions.Create(ctx, user.ID)
	if err != nil {
		slog.Error("session creation failed", "error", err, "user_id", user.ID)
		return SiteLoginResult{}, ErrInvalidCredentials
	}

	if err := s.queries.TouchUserLastLogin(ctx, user.ID); err != nil {
		slog.Warn("recording last login failed", "error", err, "user_id", user.ID)
	}

	return SiteLoginResult{User: user, Session: sess}, nil
}

// LoginAdmin verifies back-office credentials and issues an admin session.
func (s *AuthService) LoginAdmin(ctx context.Context, email, password string) (AdminLoginResult, error) {
	user, err := s.queries.GetAdminUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Error("admin login lookup failed", "error", err)
		}
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil || !ok {
		if err != nil {
			slog.Error("admin password verification failed", "error", err, "user_id", user.ID)
		}
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	sess, err := s.adminSession.Create(ctx, user.ID)
	if err != nil {
		slog.Error("admin session creation failed", "error", err, "user_id", user.ID)
		return AdminLoginResult{}, ErrInvalidCredentials
	}

	if err := s.queries.TouchAdminLastLogin(ctx, user.ID); err != nil {
		slog.Warn("recording admin last login failed", "error", err, "user_id", user.ID)
	}

	return AdminLoginResult{User: user, Session: sess}, nil
}
