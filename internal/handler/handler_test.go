// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/brightpathhr/brightpath/internal/cache"
	"github.com/brightpathhr/brightpath/internal/config"
	"github.com/brightpathhr/brightpath/internal/geoip"
	"github.com/brightpathhr/brightpath/internal/middleware"
	"github.com/brightpathhr/brightpath/internal/service"
	"github.com/brightpathhr/brightpath/internal/session"
	"github.com/brightpathhr/brightpath/internal/store"
)

const (
	testAdminEmail    = "admin@brightpathhr.test"
	testAdminPassword = "correct-horse-battery"
)

// testApp wires the full route tree against a temporary SQLite database.
type testApp struct {
	router  http.Handler
	queries *store.Queries
	db      *sql.DB
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	cfg := &config.Config{
		Env:        "development",
		DBDriver:   config.DriverSQLite,
		DBPath:     filepath.Join(t.TempDir(), "brightpath-test.db"),
		UploadsDir: t.TempDir(),
	}

	db, err := store.NewDB(cfg)
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := store.Migrate(db, cfg.DBDriver); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}

	queries := store.New(db)
	site := session.NewSiteManager(queries, false)
	admin := session.NewAdminManager(queries, false)

	geo, err := geoip.New("")
	if err != nil {
		t.Fatalf("geoip.New: %v", err)
	}

	setup := service.NewSetupService(db, queries, cfg.DBDriver)

	h := New(Deps{
		Cfg:           cfg,
		DB:            db,
		Queries:       queries,
		Auth:          service.NewAuthService(queries, site, admin),
		SiteSessions:  site,
		AdminSessions: admin,
		Content:       service.NewContentService(queries, cache.NewMemoryCache(time.Minute)),
		Media:         service.NewMediaService(queries, cfg.UploadsDir),
		Mailer:        service.NewMailer(cfg),
		Stats:         service.NewStatsService(queries),
		Setup:         setup,
		Tagger:        service.NewIntakeTagger(geo),
		// Rate limits stay out of the way; they have their own tests.
		LoginProt: middleware.NewLoginProtection(middleware.LoginProtectionConfig{
			IPRateLimit: 1000,
			IPBurst:     1000,
		}),
	})

	return &testApp{
		router:  h.Routes(RouterDeps{SetupGuard: middleware.NewSetupGuard(setup)}),
		queries: queries,
		db:      db,
	}
}

// do performs a request against the route tree. A non-nil body is sent as
// JSON.
func (a *testApp) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(b)
	}

	r := httptest.NewRequest(method, path, reader)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		r.AddCookie(c)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, r)
	return w
}

// envelope mirrors the API response wrapper with the data left raw.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding response envelope: %v (%s)", err, w.Body.String())
	}
	return env
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()

	env := decodeEnvelope(t, w)
	if !env.Success {
		t.Fatalf("response not successful: %q", env.Error)
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decoding response data: %v (%s)", err, env.Data)
	}
}

// runSetup drives the first-run flow, creating the standard test admin.
func (a *testApp) runSetup(t *testing.T) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/admin/setup", RunSetupRequest{
		AdminEmail:    testAdminEmail,
		AdminPassword: testAdminPassword,
		AdminName:     "Test Admin",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("setup failed: %d %s", w.Code, w.Body.String())
	}
}

// login authenticates a back-office account and returns its session cookie.
func (a *testApp) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Email: email, Password: password})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed for %s: %d %s", email, w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == session.AdminCookie && c.Value != "" {
			return c
		}
	}
	t.Fatalf("login for %s did not set a session cookie", email)
	return nil
}

// createStaff creates an additional back-office account through the API
// using the standard admin, then returns a login cookie for it.
func (a *testApp) createStaff(t *testing.T, adminCookie *http.Cookie, email, role string) *http.Cookie {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/admin/users", CreateAdminUserRequest{
		Email:    email,
		Password: "staff-password-1",
		Name:     "Staff",
		Role:     role,
	}, adminCookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("creating %s account: %d %s", role, w.Code, w.Body.String())
	}
	return a.login(t, email, "staff-password-1")
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)

	w := app.do(t, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz = %d", w.Code)
	}

	var data map[string]string
	decodeData(t, w, &data)
	if data["status"] != "ok" {
		t.Errorf("status = %q", data["status"])
	}
}

func TestSetupFlow(t *testing.T) {
	app := newTestApp(t)

	// Fresh install: database reachable and migrated, nothing else.
	w := app.do(t, http.MethodGet, "/api/admin/setup", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("setup status = %d", w.Code)
	}
	var status service.SetupStatus
	decodeData(t, w, &status)
	if !status.DatabaseOK || !status.Migrated {
		t.Errorf("fresh status = %+v, want database and migrations OK", status)
	}
	if status.AdminExists || status.SetupComplete {
		t.Errorf("fresh status = %+v, want no admin and setup incomplete", status)
	}

	// The back office is gated until setup completes.
	w = app.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Email: testAdminEmail, Password: testAdminPassword})
	if w.Code != http.StatusForbidden {
		t.Errorf("login before setup = %d, want 403", w.Code)
	}

	// Admin credentials are validated before anything runs.
	w = app.do(t, http.MethodPost, "/api/admin/setup", RunSetupRequest{AdminEmail: testAdminEmail})
	if w.Code != http.StatusBadRequest {
		t.Errorf("setup without password = %d, want 400", w.Code)
	}
	w = app.do(t, http.MethodPost, "/api/admin/setup", RunSetupRequest{AdminEmail: testAdminEmail, AdminPassword: "short"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("setup with short password = %d, want 400", w.Code)
	}
	w = app.do(t, http.MethodPost, "/api/admin/setup", RunSetupRequest{AdminEmail: "not-an-email", AdminPassword: testAdminPassword})
	if w.Code != http.StatusBadRequest {
		t.Errorf("setup with bad email = %d, want 400", w.Code)
	}

	app.runSetup(t)

	w = app.do(t, http.MethodGet, "/api/admin/setup", nil)
	decodeData(t, w, &status)
	if !status.AdminExists || !status.SetupComplete {
		t.Errorf("post-setup status = %+v", status)
	}

	// Re-running setup is refused.
	w = app.do(t, http.MethodPost, "/api/admin/setup", RunSetupRequest{
		AdminEmail:    "second@brightpathhr.test",
		AdminPassword: "another-password",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("second setup run = %d, want 400", w.Code)
	}

	// And the admin created during setup can log in.
	cookie := app.login(t, testAdminEmail, testAdminPassword)
	w = app.do(t, http.MethodGet, "/api/admin/session", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("admin session = %d", w.Code)
	}
	var user AdminUserResponse
	decodeData(t, w, &user)
	if user.Email != testAdminEmail || user.Role != "admin" {
		t.Errorf("session user = %+v", user)
	}
}

func TestAdminLoginFailures(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)

	w := app.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Email: testAdminEmail, Password: "wrong-password"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password = %d, want 401", w.Code)
	}
	w = app.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Email: "ghost@brightpathhr.test", Password: testAdminPassword})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("unknown account = %d, want 401", w.Code)
	}
	w = app.do(t, http.MethodPost, "/api/admin/login", LoginRequest{Email: testAdminEmail})
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing password = %d, want 400", w.Code)
	}

	// No cookie, no session.
	w = app.do(t, http.MethodGet, "/api/admin/stats", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("stats without cookie = %d, want 401", w.Code)
	}
}

func TestAdminLogoutDestroysSession(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)
	cookie := app.login(t, testAdminEmail, testAdminPassword)

	w := app.do(t, http.MethodPost, "/api/admin/logout", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("logout = %d", w.Code)
	}

	w = app.do(t, http.MethodGet, "/api/admin/session", nil, cookie)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("session after logout = %d, want 401", w.Code)
	}
}

func TestRoleGating(t *testing.T) {
	app := newTestApp(t)
	app.runSetup(t)
	adminCookie := app.login(t, testAdminEmail, testAdminPassword)

	editorCookie := app.createStaff(t, adminCookie, "editor@brightpathhr.test", "editor")
	authorCookie := app.createStaff(t, adminCookie, "author@brightpathhr.test", "author")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		cookie *http.Cookie
		want   int
	}{
		{"editor reads services", http.MethodGet, "/api/admin/services", nil, editorCookie, http.StatusOK},
		{"editor reads blog", http.MethodGet, "/api/admin/blog", nil, editorCookie, http.StatusOK},
		{"editor cannot list users", http.MethodGet, "/api/admin/users", nil, editorCookie, http.StatusForbidden},
		{"editor cannot read leads", http.MethodGet, "/api/admin/leads", nil, editorCookie, http.StatusForbidden},
		{"author reads blog", http.MethodGet, "/api/admin/blog", nil, authorCookie, http.StatusOK},
		{"author cannot read services", http.MethodGet, "/api/admin/services", nil, authorCookie, http.StatusForbidden},
		{"author cannot list users", http.MethodGet, "/api/admin/users", nil, authorCookie, http.StatusForbidden},
		{"admin reads everything", http.MethodGet, "/api/admin/leads", nil, adminCookie, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := app.do(t, tt.method, tt.path, tt.body, tt.cookie)
			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
			}
		})
	}
}
