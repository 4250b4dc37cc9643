// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/brightpathhr/brightpath/internal/config"
	"github.com/brightpathhr/brightpath/internal/service"
	"github.com/brightpathhr/brightpath/internal/store"
)

func testSetupService(t *testing.T) (*service.SetupService, *store.Queries) {
	t.Helper()

	cfg := &config.Config{
		DBDriver: config.DriverSQLite,
		DBPath:   filepath.Join(t.TempDir(), "setup-test.db"),
	}
	db, err := store.NewDB(cfg)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	q := store.New(db)
	return service.NewSetupService(db, q, cfg.DBDriver), q
}

func TestSetupGuardBlocksBeforeSetup(t *testing.T) {
	setup, _ := testSetupService(t)
	guard := NewSetupGuard(setup)
	next := &okHandler{}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	guard.Middleware()(next).ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403 before setup", w.Code)
	}
	if next.called {
		t.Error("handler should not run before setup")
	}
}

func TestSetupGuardAllowsAfterSetup(t *testing.T) {
	setup, _ := testSetupService(t)
	guard := NewSetupGuard(setup)
	next := &okHandler{}

	if err := setup.Run(httptest.NewRequest(http.MethodPost, "/", nil).Context(),
		"admin@example.com", "setup-password", "Admin"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/admin/login", nil)
	guard.Middleware()(next).ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 after setup", w.Code)
	}
	if !next.called {
		t.Error("handler should run after setup")
	}

	// Subsequent requests hit the latched fast path.
	next2 := &okHandler{}
	w = httptest.NewRecorder()
	guard.Middleware()(next2).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil))
	if !next2.called {
		t.Error("latched guard should pass requests through")
	}
}
