// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightpathhr/brightpath/internal/auth"
	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/session"
	"github.com/brightpathhr/brightpath/internal/store"
)

func newAuthService(t *testing.T) (*AuthService, *store.Queries) {
	t.Helper()
	_, q := testDB(t)
	site := session.NewSiteManager(q, false)
	admin := session.NewAdminManager(q, false)
	return NewAuthService(q, site, admin), q
}

func TestLoginAdmin(t *testing.T) {
	svc, q := newAuthService(t)
	ctx := context.Background()

	created := createAdmin(t, q, "admin@example.com", "correct-password", model.RoleAdmin)

	result, err := svc.LoginAdmin(ctx, "admin@example.com", "correct-password")
	require.NoError(t, err)
	assert.Equal(t, created.ID, result.User.ID)
	assert.NotEmpty(t, result.Session.Token)

	// The issued session resolves back to the user.
	sess, err := q.GetAdminSession(ctx, result.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, sess.UserID)

	// Successful login records last_login_at.
	user, err := q.GetAdminUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, user.LastLoginAt.Valid)
}

func TestLoginAdminFailuresAreIndistinguishable(t *testing.T) {
	svc, q := newAuthService(t)
	ctx := context.Background()

	createAdmin(t, q, "admin@example.com", "correct-password", model.RoleAdmin)

	_, wrongPassword := svc.LoginAdmin(ctx, "admin@example.com", "wrong-password")
	_, unknownEmail := svc.LoginAdmin(ctx, "nobody@example.com", "correct-password")

	// Wrong password and unknown account must produce the same error so
	// accounts cannot be enumerated.
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestLoginSite(t *testing.T) {
	svc, q := newAuthService(t)
	ctx := context.Background()

	hash, err := auth.HashPassword("visitor-pass")
	require.NoError(t, err)
	user, err := q.CreateUser(ctx, store.CreateUserParams{
		Email: "visitor@example.com", PasswordHash: hash, Name: "Visitor",
	})
	require.NoError(t, err)

	result, err := svc.LoginSite(ctx, "visitor@example.com", "visitor-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)

	// A site login must not mint an admin-realm session.
	_, err = q.GetAdminSession(ctx, result.Session.Token)
	assert.Error(t, err)

	_, err = svc.LoginSite(ctx, "visitor@example.com", "bad")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
