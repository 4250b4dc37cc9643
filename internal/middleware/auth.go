// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, setup gating, and request protection.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/session"
	"github.com/brightpathhr/brightpath/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for authenticated principals.
const (
	ContextKeyUser      ContextKey = "user"
	ContextKeyAdminUser ContextKey = "admin_user"
)

// errorBody is the uniform failure envelope, mirrored from the handler
// package to avoid an import cycle.
type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Success: false, Error: message})
}

// AdminAuth requires a valid back-office session. The token is validated
// against the admin session store on every request, not merely checked for
// presence, and the account is loaded into the request context.
func AdminAuth(sessions *session.Manager, queries *store.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessions.TokenFromRequest(r)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			sess, err := sessions.Get(r.Context(), token)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					slog.Error("admin session lookup failed", "error", err)
				}
				sessions.ClearCookie(w)
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			user, err := queries.GetAdminUserByID(r.Context(), sess.UserID)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					slog.Error("admin user lookup failed", "error", err, "user_id", sess.UserID)
				}
				sessions.ClearCookie(w)
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyAdminUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LoadSiteUser loads the site visitor into context when a valid session
// cookie is present. Requests without one proceed unauthenticated.
func LoadSiteUser(sessions *session.Manager, queries *store.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessions.TokenFromRequest(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			sess, err := sessions.Get(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			user, err := queries.GetUserByID(r.Context(), sess.UserID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetAdminUser retrieves the authenticated admin account from context.
// Returns nil outside AdminAuth-guarded routes.
func GetAdminUser(r *http.Request) *store.AdminUser {
	user, ok := r.Context().Value(ContextKeyAdminUser).(store.AdminUser)
	if !ok {
		return nil
	}
	return &user
}

// GetUser retrieves the site visitor from context, or nil.
func GetUser(r *http.Request) *store.User {
	user, ok := r.Context().Value(ContextKeyUser).(store.User)
	if !ok {
		return nil
	}
	return &user
}

// RequireRole restricts a route to admin accounts whose role passes the
// given capability check, e.g. model.Role.CanManageUsers.
func RequireRole(allowed func(model.Role) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetAdminUser(r)
			if user == nil {
				writeError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			if !allowed(user.Role) {
				slog.Warn("access denied",
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.ID,
					"user_role", string(user.Role),
				)
				writeError(w, http.StatusForbidden, "Insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin restricts a route to the admin role.
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.Role.CanManageUsers)
}

// RequireEditor restricts a route to admin and editor roles.
func RequireEditor() func(http.Handler) http.Handler {
	return RequireRole(model.Role.CanEditContent)
}
