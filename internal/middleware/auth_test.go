// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/brightpathhr/brightpath/internal/config"
	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/session"
	"github.com/brightpathhr/brightpath/internal/store"
)

func testQueries(t *testing.T) *store.Queries {
	t.Helper()

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "middleware-test.db"),
	}
	db, err := store.NewDB(cfg)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return store.New(db)
}

// okHandler records whether it ran and which admin user it saw.
type okHandler struct {
	called bool
	user   *store.AdminUser
}

func (h *okHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.called = true
	h.user = GetAdminUser(r)
	w.WriteHeader(http.StatusOK)
}

func TestAdminAuthNoCookie(t *testing.T) {
	q := testQueries(t)
	sessions := session.NewAdminManager(q, false)
	next := &okHandler{}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	AdminAuth(sessions, q)(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if next.called {
		t.Error("handler should not run without a session")
	}
}

func TestAdminAuthInvalidToken(t *testing.T) {
	q := testQueries(t)
	sessions := session.NewAdminManager(q, false)
	next := &okHandler{}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	r.AddCookie(&http.Cookie{Name: session.AdminCookie, Value: "forged-token"})
	AdminAuth(sessions, q)(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	// A bad token gets its cookie cleared.
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Errorf("expected a clearing cookie, got %+v", cookies)
	}
}

func TestAdminAuthExpiredSession(t *testing.T) {
	q := testQueries(t)
	sessions := session.NewAdminManager(q, false)
	ctx := context.Background()

	user, err := q.CreateAdminUser(ctx, store.CreateAdminUserParams{
		Email: "admin@example.com", PasswordHash: "hash", Name: "Admin", Role: model.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}
	if _, err := q.CreateAdminSession(ctx, "stale", user.ID, time.Now().UTC().Add(-24*time.Hour)); err != nil {
		t.Fatalf("CreateAdminSession: %v", err)
	}

	next := &okHandler{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	r.AddCookie(&http.Cookie{Name: session.AdminCookie, Value: "stale"})
	AdminAuth(sessions, q)(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for an expired session", w.Code)
	}
}

func TestAdminAuthValidSession(t *testing.T) {
	q := testQueries(t)
	sessions := session.NewAdminManager(q, false)
	ctx := context.Background()

	user, err := q.CreateAdminUser(ctx, store.CreateAdminUserParams{
		Email: "admin@example.com", PasswordHash: "hash", Name: "Admin", Role: model.RoleEditor,
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}
	sess, err := sessions.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	next := &okHandler{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	r.AddCookie(&http.Cookie{Name: session.AdminCookie, Value: sess.Token})
	AdminAuth(sessions, q)(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !next.called {
		t.Fatal("handler should run for a valid session")
	}
	if next.user == nil || next.user.ID != user.ID {
		t.Errorf("context user = %+v, want ID %d", next.user, user.ID)
	}
	if next.user.Role != model.RoleEditor {
		t.Errorf("context role = %q, want editor", next.user.Role)
	}
}

func requestWithAdmin(role model.Role) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/admin/users", nil)
	user := store.AdminUser{ID: 1, Email: "u@example.com", Role: role}
	return r.WithContext(context.WithValue(r.Context(), ContextKeyAdminUser, user))
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name       string
		mw         func(http.Handler) http.Handler
		role       model.Role
		wantStatus int
	}{
		{"admin manages users", RequireAdmin(), model.RoleAdmin, http.StatusOK},
		{"editor cannot manage users", RequireAdmin(), model.RoleEditor, http.StatusForbidden},
		{"author cannot manage users", RequireAdmin(), model.RoleAuthor, http.StatusForbidden},
		{"editor edits content", RequireEditor(), model.RoleEditor, http.StatusOK},
		{"author cannot edit content", RequireEditor(), model.RoleAuthor, http.StatusForbidden},
		{"author writes blog", RequireRole(model.Role.CanWriteBlog), model.RoleAuthor, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &okHandler{}
			w := httptest.NewRecorder()
			tt.mw(next).ServeHTTP(w, requestWithAdmin(tt.role))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if (w.Code == http.StatusOK) != next.called {
				t.Errorf("handler called = %v with status %d", next.called, w.Code)
			}
		})
	}
}

func TestRequireRoleUnauthenticated(t *testing.T) {
	next := &okHandler{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	RequireAdmin()(next).ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 without a context user", w.Code)
	}
}

func TestGetAdminUserAbsent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetAdminUser(r) != nil {
		t.Error("GetAdminUser should be nil outside guarded routes")
	}
	if GetUser(r) != nil {
		t.Error("GetUser should be nil outside guarded routes")
	}
}
