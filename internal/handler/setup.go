// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"

	"github.com/brightpathhr/brightpath/internal/service"
)

// RunSetupRequest is the request body for the first-run setup flow. The
// admin fields are ignored when an admin account already exists.
type RunSetupRequest struct {
	AdminEmail    string `json:"admin_email"`
	AdminPassword string `json:"admin_password"`
	AdminName     string `json:"admin_name"`
}

// setupFailure reports which setup step failed.
type setupFailure struct {
	Step   string              `json:"step"`
	Status service.SetupStatus `json:"status"`
}

// GetSetupStatus handles GET /api/admin/setup.
func (h *Handler) GetSetupStatus(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, h.setup.Status(r.Context()))
}

// RunSetup handles POST /api/admin/setup. Steps run in order and stop at
// the first failure; the failing step is named in the response.
func (h *Handler) RunSetup(w http.ResponseWriter, r *http.Request) {
	var req RunSetupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	status := h.setup.Status(r.Context())
	if !status.AdminExists {
		if req.AdminEmail == "" || req.AdminPassword == "" {
			WriteBadRequest(w, "Admin email and password are required")
			return
		}
		if !validEmail(req.AdminEmail) {
			WriteBadRequest(w, "Invalid admin email address")
			return
		}
		if len(req.AdminPassword) < 8 {
			WriteBadRequest(w, "Admin password must be at least 8 characters")
			return
		}
	}

	err := h.setup.Run(r.Context(), req.AdminEmail, req.AdminPassword, req.AdminName)
	if err != nil {
		if errors.Is(err, service.ErrAlreadySetUp) {
			WriteBadRequest(w, service.ErrAlreadySetUp.Error())
			return
		}
		var stepErr *service.SetupStepError
		if errors.As(err, &stepErr) {
			WriteJSON(w, http.StatusInternalServerError, Response{
				Success: false,
				Error:   "Setup failed at step " + stepErr.Step,
				Data:    setupFailure{Step: stepErr.Step, Status: h.setup.Status(r.Context())},
			})
			return
		}
		WriteInternalError(w, err)
		return
	}

	WriteSuccess(w, h.setup.Status(r.Context()))
}
