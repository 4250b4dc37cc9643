// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/brightpathhr/brightpath/internal/auth"
	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/store"
)

// CreateAdminUserRequest is the request body for creating a back-office
// account.
type CreateAdminUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// UpdateAdminUserRequest is the request body for updating a back-office
// account.
type UpdateAdminUserRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Role     *string `json:"role,omitempty"`
}

// ListAdminUsers handles GET /api/admin/users.
func (h *Handler) ListAdminUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListAdminUsers(r.Context())
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	out := make([]AdminUserResponse, 0, len(rows))
	for _, u := range rows {
		out = append(out, adminUserToResponse(u))
	}
	WriteSuccess(w, out)
}

// GetAdminUser handles GET /api/admin/users/{id}.
func (h *Handler) GetAdminUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	user, err := h.queries.GetAdminUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "User not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, adminUserToResponse(user))
}

// CreateAdminUser handles POST /api/admin/users.
func (h *Handler) CreateAdminUser(w http.ResponseWriter, r *http.Request) {
	var req CreateAdminUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required")
		return
	}
	if !validEmail(req.Email) {
		WriteBadRequest(w, "Invalid email address")
		return
	}
	if len(req.Password) < 8 {
		WriteBadRequest(w, "Password must be at least 8 characters")
		return
	}
	role := model.Role(req.Role)
	if !role.Valid() {
		WriteBadRequest(w, "Role must be admin, editor, or author")
		return
	}

	if _, err := h.queries.GetAdminUserByEmail(r.Context(), req.Email); err == nil {
		WriteBadRequest(w, "Email is already in use")
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	user, err := h.queries.CreateAdminUser(r.Context(), store.CreateAdminUserParams{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         role,
	})
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteCreated(w, adminUserToResponse(user))
}

// UpdateAdminUser handles PATCH /api/admin/users/{id}.
func (h *Handler) UpdateAdminUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateAdminUserRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Email != nil && !validEmail(*req.Email) {
		WriteBadRequest(w, "Invalid email address")
		return
	}
	if req.Password != nil && len(*req.Password) < 8 {
		WriteBadRequest(w, "Password must be at least 8 characters")
		return
	}

	params := store.UpdateAdminUserParams{
		Email: req.Email,
		Name:  req.Name,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		if !role.Valid() {
			WriteBadRequest(w, "Role must be admin, editor, or author")
			return
		}
		params.Role = &role
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			WriteInternalError(w, err)
			return
		}
		params.PasswordHash = &hash
	}

	user, err := h.queries.UpdateAdminUser(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "User not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, adminUserToResponse(user))
}

// DeleteAdminUser handles DELETE /api/admin/users/{id}. Deleting the last
// remaining admin-role account is refused.
func (h *Handler) DeleteAdminUser(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.queries.DeleteAdminUser(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrLastAdmin) {
			WriteBadRequest(w, "Cannot delete the last admin account")
			return
		}
		WriteInternalError(w, err)
		return
	}
	if !deleted {
		WriteNotFound(w, "User not found")
		return
	}
	WriteSuccess(w, nil)
}
