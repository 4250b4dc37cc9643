// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session implements opaque-token database-backed sessions for the
// two credential realms (site visitors and back-office users). A session is
// a random token handed out in an HTTP-only cookie and stored as a row with
// an expiry; validation is a filtered lookup, and expired rows linger until
// the cleanup entry point runs.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/brightpathhr/brightpath/internal/store"
)

// Lifetime is how long a session stays valid after creation.
const Lifetime = 7 * 24 * time.Hour

// Cookie names per realm.
const (
	SiteCookie  = "session"
	AdminCookie = "admin_session"
)

// Realm selects which session table a manager operates on.
type Realm int

// Session realms.
const (
	RealmSite Realm = iota
	RealmAdmin
)

// Manager issues, validates, and destroys sessions for one realm. The two
// realm instances are structurally identical and differ only in the backing
// table and cookie name.
type Manager struct {
	queries    *store.Queries
	realm      Realm
	cookieName string
	secure     bool
}

// NewSiteManager creates a session manager for the site visitor realm.
func NewSiteManager(queries *store.Queries, secure bool) *Manager {
	return &Manager{queries: queries, realm: RealmSite, cookieName: SiteCookie, secure: secure}
}

// NewAdminManager creates a session manager for the back-office realm.
func NewAdminManager(queries *store.Queries, secure bool) *Manager {
	return &Manager{queries: queries, realm: RealmAdmin, cookieName: AdminCookie, secure: secure}
}

// CookieName returns the realm's cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// newToken generates an opaque session token from 32 random bytes.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Create issues a new session for the user. There is no per-user session
// limit; every login produces an independent row.
func (m *Manager) Create(ctx context.Context, userID int64) (store.Session, error) {
	token, err := newToken()
	if err != nil {
		return store.Session{}, err
	}
	expiresAt := time.Now().UTC().Add(Lifetime)

	if m.realm == RealmAdmin {
		return m.queries.CreateAdminSession(ctx, token, userID, expiresAt)
	}
	return m.queries.CreateSession(ctx, token, userID, expiresAt)
}

// Get returns the unexpired session for a token. Expired rows are treated
// as absent (sql.ErrNoRows), not deleted.
func (m *Manager) Get(ctx context.Context, token string) (store.Session, error) {
	if m.realm == RealmAdmin {
		return m.queries.GetAdminSession(ctx, token)
	}
	return m.queries.GetSession(ctx, token)
}

// Destroy removes the session row for a token. Destroying an unknown token
// is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if m.realm == RealmAdmin {
		return m.queries.DeleteAdminSession(ctx, token)
	}
	return m.queries.DeleteSession(ctx, token)
}

// CleanExpired purges expired rows for this realm and reports the count.
func (m *Manager) CleanExpired(ctx context.Context) (int64, error) {
	if m.realm == RealmAdmin {
		return m.queries.DeleteExpiredAdminSessions(ctx)
	}
	return m.queries.DeleteExpiredSessions(ctx)
}

// TokenFromRequest extracts the realm's session token from the request
// cookie, or returns the empty string.
func (m *Manager) TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetCookie writes the session cookie on a response.
func (m *Manager) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(Lifetime.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie expires the session cookie on a response.
func (m *Manager) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
	})
}
