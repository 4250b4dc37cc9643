// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brightpathhr/brightpath/internal/config"
	"github.com/brightpathhr/brightpath/internal/middleware"
	"github.com/brightpathhr/brightpath/internal/service"
	"github.com/brightpathhr/brightpath/internal/session"
	"github.com/brightpathhr/brightpath/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	cfg           *config.Config
	db            *sql.DB
	queries       *store.Queries
	auth          *service.AuthService
	siteSessions  *session.Manager
	adminSessions *session.Manager
	content       *service.ContentService
	media         *service.MediaService
	mailer        *service.Mailer
	stats         *service.StatsService
	setup         *service.SetupService
	tagger        *service.IntakeTagger
	loginProt     *middleware.LoginProtection
}

// Deps bundles the dependencies needed by the Handler.
type Deps struct {
	Cfg           *config.Config
	DB            *sql.DB
	Queries       *store.Queries
	Auth          *service.AuthService
	SiteSessions  *session.Manager
	AdminSessions *session.Manager
	Content       *service.ContentService
	Media         *service.MediaService
	Mailer        *service.Mailer
	Stats         *service.StatsService
	Setup         *service.SetupService
	Tagger        *service.IntakeTagger
	LoginProt     *middleware.LoginProtection
}

// New creates a Handler.
func New(d Deps) *Handler {
	return &Handler{
		cfg:           d.Cfg,
		db:            d.DB,
		queries:       d.Queries,
		auth:          d.Auth,
		siteSessions:  d.SiteSessions,
		adminSessions: d.AdminSessions,
		content:       d.Content,
		media:         d.Media,
		mailer:        d.Mailer,
		stats:         d.Stats,
		setup:         d.Setup,
		tagger:        d.Tagger,
		loginProt:     d.LoginProt,
	}
}

// includeUnpublished reports whether a list request may include
// unpublished rows: only authenticated back-office requests asking for
// ?all=true.
func (h *Handler) includeUnpublished(r *http.Request) bool {
	return middleware.GetAdminUser(r) != nil && r.URL.Query().Get("all") == "true"
}

// isAdminRequest reports whether the request carries an authenticated
// back-office account.
func (h *Handler) isAdminRequest(r *http.Request) bool {
	return middleware.GetAdminUser(r) != nil
}

// pathID parses the {id} path parameter, writing a 400 on failure.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid id")
		return 0, false
	}
	return id, true
}

// parseJSONArray decodes a stored JSON array column into a string slice.
// Stored values are validated at write time, so a decode failure means a
// corrupted row; it is surfaced to the caller, not silently dropped.
func parseJSONArray(raw string) ([]string, error) {
	if raw == "" {
		return []string{}, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// marshalJSONArray encodes a string slice for a JSON array column.
func marshalJSONArray(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}
