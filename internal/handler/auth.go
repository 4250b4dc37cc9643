// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"time"

	"github.com/brightpathhr/brightpath/internal/middleware"
	"github.com/brightpathhr/brightpath/internal/service"
	"github.com/brightpathhr/brightpath/internal/store"
)

// UserResponse represents a site account in API responses.
type UserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// AdminUserResponse represents a back-office account in API responses.
type AdminUserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginRequest is the request body for both login endpoints.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func userToResponse(u store.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
	if u.LastLoginAt.Valid {
		resp.LastLoginAt = &u.LastLoginAt.Time
	}
	return resp
}

func adminUserToResponse(u store.AdminUser) AdminUserResponse {
	resp := AdminUserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
	if u.LastLoginAt.Valid {
		resp.LastLoginAt = &u.LastLoginAt.Time
	}
	return resp
}

// SiteLogin handles POST /api/auth/login.
func (h *Handler) SiteLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required")
		return
	}

	if locked, _ := h.loginProt.IsAccountLocked(req.Email); locked {
		WriteError(w, http.StatusTooManyRequests, "Account temporarily locked, try again later")
		return
	}

	result, err := h.auth.LoginSite(r.Context(), req.Email, req.Password)
	if err != nil {
		h.loginProt.RecordFailedAttempt(req.Email)
		WriteError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		return
	}

	h.loginProt.RecordSuccessfulLogin(req.Email)
	h.siteSessions.SetCookie(w, result.Session.Token)
	WriteSuccess(w, userToResponse(result.User))
}

// SiteLogout handles POST /api/auth/logout.
func (h *Handler) SiteLogout(w http.ResponseWriter, r *http.Request) {
	if token := h.siteSessions.TokenFromRequest(r); token != "" {
		_ = h.siteSessions.Destroy(r.Context(), token)
	}
	h.siteSessions.ClearCookie(w)
	WriteSuccess(w, nil)
}

// SiteSession handles GET /api/auth/session.
func (h *Handler) SiteSession(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)
	if user == nil {
		WriteUnauthorized(w)
		return
	}
	WriteSuccess(w, userToResponse(*user))
}

// AdminLogin handles POST /api/admin/login.
func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required")
		return
	}

	if locked, _ := h.loginProt.IsAccountLocked(req.Email); locked {
		WriteError(w, http.StatusTooManyRequests, "Account temporarily locked, try again later")
		return
	}

	result, err := h.auth.LoginAdmin(r.Context(), req.Email, req.Password)
	if err != nil {
		h.loginProt.RecordFailedAttempt(req.Email)
		WriteError(w, http.StatusUnauthorized, service.ErrInvalidCredentials.Error())
		return
	}

	h.loginProt.RecordSuccessfulLogin(req.Email)
	h.adminSessions.SetCookie(w, result.Session.Token)
	WriteSuccess(w, adminUserToResponse(result.User))
}

// AdminLogout handles POST /api/admin/logout.
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if token := h.adminSessions.TokenFromRequest(r); token != "" {
		_ = h.adminSessions.Destroy(r.Context(), token)
	}
	h.adminSessions.ClearCookie(w)
	WriteSuccess(w, nil)
}

// AdminSession handles GET /api/admin/session.
func (h *Handler) AdminSession(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetAdminUser(r)
	if user == nil {
		WriteUnauthorized(w)
		return
	}
	WriteSuccess(w, adminUserToResponse(*user))
}
