// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightpathhr/brightpath/internal/store"
	"github.com/brightpathhr/brightpath/internal/util"
)

// ServiceResponse represents a consulting service in API responses.
type ServiceResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Summary     string    `json:"summary"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	Features    []string  `json:"features"`
	SortOrder   int64     `json:"sort_order"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateServiceRequest is the request body for creating a service.
type CreateServiceRequest struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Summary     string   `json:"summary"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Features    []string `json:"features"`
	SortOrder   int64    `json:"sort_order"`
	Published   bool     `json:"published"`
}

// UpdateServiceRequest is the request body for updating a service. Absent
// fields are left unchanged.
type UpdateServiceRequest struct {
	Title       *string   `json:"title,omitempty"`
	Slug        *string   `json:"slug,omitempty"`
	Summary     *string   `json:"summary,omitempty"`
	Description *string   `json:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty"`
	Features    *[]string `json:"features,omitempty"`
	SortOrder   *int64    `json:"sort_order,omitempty"`
	Published   *bool     `json:"published,omitempty"`
}

func serviceToResponse(s store.Service) (ServiceResponse, error) {
	features, err := parseJSONArray(s.Features)
	if err != nil {
		return ServiceResponse{}, fmt.Errorf("service %d: decoding features: %w", s.ID, err)
	}
	return ServiceResponse{
		ID:          s.ID,
		Title:       s.Title,
		Slug:        s.Slug,
		Summary:     s.Summary,
		Description: s.Description,
		Icon:        s.Icon,
		Features:    features,
		SortOrder:   s.SortOrder,
		Published:   s.Published,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

func servicesToResponse(rows []store.Service) ([]ServiceResponse, error) {
	out := make([]ServiceResponse, 0, len(rows))
	for _, s := range rows {
		resp, err := serviceToResponse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListServices handles GET /api/services and GET /api/admin/services.
// Only admin requests may pass ?all=true to include unpublished rows.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	var (
		rows []store.Service
		err  error
	)
	if h.includeUnpublished(r) {
		rows, err = h.queries.ListServices(r.Context())
	} else {
		rows, err = h.queries.ListPublishedServices(r.Context())
	}
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	out, err := servicesToResponse(rows)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, out)
}

// GetService handles GET /api/services/{idOrSlug}. Numeric path values
// look up by id, anything else by slug. Unpublished rows are hidden from
// public requests.
func (h *Handler) GetService(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	var (
		svc store.Service
		err error
	)
	if id, convErr := strconv.ParseInt(idOrSlug, 10, 64); convErr == nil {
		svc, err = h.queries.GetServiceByID(r.Context(), id)
	} else {
		svc, err = h.queries.GetServiceBySlug(r.Context(), idOrSlug)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Service not found")
			return
		}
		WriteInternalError(w, err)
		return
	}

	if !svc.Published && !h.isAdminRequest(r) {
		WriteNotFound(w, "Service not found")
		return
	}

	resp, err := serviceToResponse(svc)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, resp)
}

// CreateService handles POST /api/admin/services.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Title == "" {
		WriteBadRequest(w, "Title is required")
		return
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(req.Slug) {
		WriteBadRequest(w, "Invalid slug")
		return
	}

	svc, err := h.queries.CreateService(r.Context(), store.CreateServiceParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Description: req.Description,
		Icon:        req.Icon,
		Features:    marshalJSONArray(req.Features),
		SortOrder:   req.SortOrder,
		Published:   req.Published,
	})
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	resp, err := serviceToResponse(svc)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteCreated(w, resp)
}

// UpdateService handles PATCH /api/admin/services/{id}.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Slug != nil && !util.IsValidSlug(*req.Slug) {
		WriteBadRequest(w, "Invalid slug")
		return
	}

	params := store.UpdateServiceParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     req.Summary,
		Description: req.Description,
		Icon:        req.Icon,
		SortOrder:   req.SortOrder,
		Published:   req.Published,
	}
	if req.Features != nil {
		features := marshalJSONArray(*req.Features)
		params.Features = &features
	}

	svc, err := h.queries.UpdateService(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Service not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	resp, err := serviceToResponse(svc)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, resp)
}

// DeleteService handles DELETE /api/admin/services/{id}.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.queries.DeleteService(r.Context(), id)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	if !deleted {
		WriteNotFound(w, "Service not found")
		return
	}
	WriteSuccess(w, nil)
}
