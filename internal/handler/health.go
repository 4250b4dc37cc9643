// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import "net/http"

// Healthz handles GET /healthz. It reports 503 when the database is
// unreachable so load balancers can rotate the instance out.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}
	WriteSuccess(w, map[string]string{"status": "ok"})
}
