// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/brightpathhr/brightpath/internal/store"
)

// internalSettings are never exposed through the public settings endpoint.
var internalSettings = map[string]bool{
	store.SettingSetupComplete: true,
}

// UpdateSettingsRequest is a key/value map; each entry is upserted.
type UpdateSettingsRequest map[string]string

// settingsToMap flattens setting rows, optionally hiding internal keys.
func settingsToMap(rows []store.Setting, includeInternal bool) map[string]string {
	out := make(map[string]string, len(rows))
	for _, s := range rows {
		if !includeInternal && internalSettings[s.Key] {
			continue
		}
		out[s.Key] = s.Value
	}
	return out
}

// GetSettings handles GET /api/settings, the public subset.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListSettings(r.Context())
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, settingsToMap(rows, false))
}

// GetAdminSettings handles GET /api/admin/settings, including internal
// keys.
func (h *Handler) GetAdminSettings(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListSettings(r.Context())
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, settingsToMap(rows, true))
}

// UpdateSettings handles PATCH /api/admin/settings, upserting each
// submitted key.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req UpdateSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if len(req) == 0 {
		WriteBadRequest(w, "No settings provided")
		return
	}
	for key := range req {
		if key == "" {
			WriteBadRequest(w, "Setting keys must not be empty")
			return
		}
		if internalSettings[key] {
			WriteBadRequest(w, "Setting "+key+" cannot be modified")
			return
		}
	}

	for key, value := range req {
		if err := h.queries.UpsertSetting(r.Context(), key, value); err != nil {
			WriteInternalError(w, err)
			return
		}
	}

	rows, err := h.queries.ListSettings(r.Context())
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, settingsToMap(rows, true))
}
