// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"sync/atomic"

	"github.com/brightpathhr/brightpath/internal/service"
)

// SetupGuard blocks back-office routes until first-run setup finishes.
// Once setup is observed complete the result is latched, so the settings
// table is not consulted on every request. Setup can only move from
// incomplete to complete.
type SetupGuard struct {
	setup    *service.SetupService
	complete atomic.Bool
}

// NewSetupGuard creates a SetupGuard.
func NewSetupGuard(setup *service.SetupService) *SetupGuard {
	return &SetupGuard{setup: setup}
}

// Middleware rejects requests with 403 until setup is complete. Mount it
// ahead of the admin routes; the setup endpoints themselves stay outside.
func (g *SetupGuard) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.complete.Load() {
				status := g.setup.Status(r.Context())
				if !status.AdminExists || !status.SetupComplete {
					writeError(w, http.StatusForbidden, "Setup required")
					return
				}
				g.complete.Store(true)
			}
			next.ServeHTTP(w, r)
		})
	}
}
