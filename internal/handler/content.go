// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightpathhr/brightpath/internal/service"
	"github.com/brightpathhr/brightpath/internal/store"
)

// ContentBlockResponse represents a content block in API responses.
// Content is the stored JSON payload, emitted verbatim.
type ContentBlockResponse struct {
	ID        int64           `json:"id"`
	Page      string          `json:"page"`
	Section   string          `json:"section"`
	BlockKey  string          `json:"block_key"`
	Content   json.RawMessage `json:"content"`
	SortOrder int64           `json:"sort_order"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateContentBlockRequest is the request body for creating a block.
type CreateContentBlockRequest struct {
	Page      string          `json:"page"`
	Section   string          `json:"section"`
	BlockKey  string          `json:"block_key"`
	Content   json.RawMessage `json:"content"`
	SortOrder int64           `json:"sort_order"`
	IsActive  bool            `json:"is_active"`
}

// UpdateContentBlockRequest is the request body for updating a block.
type UpdateContentBlockRequest struct {
	Page      *string          `json:"page,omitempty"`
	Section   *string          `json:"section,omitempty"`
	BlockKey  *string          `json:"block_key,omitempty"`
	Content   *json.RawMessage `json:"content,omitempty"`
	SortOrder *int64           `json:"sort_order,omitempty"`
	IsActive  *bool            `json:"is_active,omitempty"`
}

func contentBlockToResponse(b store.ContentBlock) ContentBlockResponse {
	return ContentBlockResponse{
		ID:        b.ID,
		Page:      b.Page,
		Section:   b.Section,
		BlockKey:  b.BlockKey,
		Content:   json.RawMessage(b.Content),
		SortOrder: b.SortOrder,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

func contentBlocksToResponse(rows []store.ContentBlock) []ContentBlockResponse {
	out := make([]ContentBlockResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, contentBlockToResponse(b))
	}
	return out
}

// ListContentBlocks handles GET /api/content?page=&section=, returning
// active blocks filtered by the optional parameters.
func (h *Handler) ListContentBlocks(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	section := r.URL.Query().Get("section")

	rows, err := h.content.Blocks(r.Context(), page, section)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, contentBlocksToResponse(rows))
}

// GetPageContent handles GET /api/content/page/{page}, returning the
// page's active blocks grouped by section.
func (h *Handler) GetPageContent(w http.ResponseWriter, r *http.Request) {
	page := chi.URLParam(r, "page")
	if page == "" {
		WriteBadRequest(w, "Page is required")
		return
	}

	grouped, err := h.content.PageContent(r.Context(), page)
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	out := make(map[string][]ContentBlockResponse, len(grouped))
	for section, blocks := range grouped {
		out[section] = contentBlocksToResponse(blocks)
	}
	WriteSuccess(w, out)
}

// ListAllContentBlocks handles GET /api/admin/content, including inactive
// blocks.
func (h *Handler) ListAllContentBlocks(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListAllContentBlocks(r.Context())
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, contentBlocksToResponse(rows))
}

// CreateContentBlock handles POST /api/admin/content.
func (h *Handler) CreateContentBlock(w http.ResponseWriter, r *http.Request) {
	var req CreateContentBlockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Page == "" || req.Section == "" || req.BlockKey == "" {
		WriteBadRequest(w, "Page, section, and block key are required")
		return
	}
	if err := service.ValidateBlockContent(string(req.Content)); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	block, err := h.queries.CreateContentBlock(r.Context(), store.CreateContentBlockParams{
		Page:      req.Page,
		Section:   req.Section,
		BlockKey:  req.BlockKey,
		Content:   string(req.Content),
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	})
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	h.content.Invalidate(r.Context())
	WriteCreated(w, contentBlockToResponse(block))
}

// UpdateContentBlock handles PATCH /api/admin/content/{id}.
func (h *Handler) UpdateContentBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateContentBlockRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	params := store.UpdateContentBlockParams{
		Page:      req.Page,
		Section:   req.Section,
		BlockKey:  req.BlockKey,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	}
	if req.Content != nil {
		if err := service.ValidateBlockContent(string(*req.Content)); err != nil {
			WriteBadRequest(w, err.Error())
			return
		}
		content := string(*req.Content)
		params.Content = &content
	}

	block, err := h.queries.UpdateContentBlock(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content block not found")
			return
		}
		WriteInternalError(w, err)
		return
	}

	h.content.Invalidate(r.Context())
	WriteSuccess(w, contentBlockToResponse(block))
}

// DeleteContentBlock handles DELETE /api/admin/content/{id}.
func (h *Handler) DeleteContentBlock(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.queries.DeleteContentBlock(r.Context(), id)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	if !deleted {
		WriteNotFound(w, "Content block not found")
		return
	}

	h.content.Invalidate(r.Context())
	WriteSuccess(w, nil)
}
