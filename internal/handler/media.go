// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/brightpathhr/brightpath/internal/middleware"
	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/service"
	"github.com/brightpathhr/brightpath/internal/store"
)

// MediaResponse represents an uploaded file in API responses.
type MediaResponse struct {
	ID           int64     `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	FileSize     int64     `json:"file_size"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Width        *int64    `json:"width,omitempty"`
	Height       *int64    `json:"height,omitempty"`
	Tags         []string  `json:"tags"`
	UploadedBy   *int64    `json:"uploaded_by,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func (h *Handler) mediaToResponse(m store.Media) (MediaResponse, error) {
	tags, err := parseJSONArray(m.Tags)
	if err != nil {
		return MediaResponse{}, fmt.Errorf("media %d: decoding tags: %w", m.ID, err)
	}
	resp := MediaResponse{
		ID:           m.ID,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		FileSize:     m.FileSize,
		URL:          h.media.URL(m, ""),
		ThumbnailURL: h.media.URL(m, model.VariantThumbnail),
		Tags:         tags,
		CreatedAt:    m.CreatedAt,
	}
	if m.Width.Valid {
		resp.Width = &m.Width.Int64
	}
	if m.Height.Valid {
		resp.Height = &m.Height.Int64
	}
	if m.UploadedBy.Valid {
		resp.UploadedBy = &m.UploadedBy.Int64
	}
	return resp, nil
}

// ListMedia handles GET /api/admin/media.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListMedia(r.Context())
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	out := make([]MediaResponse, 0, len(rows))
	for _, m := range rows {
		resp, err := h.mediaToResponse(m)
		if err != nil {
			WriteInternalError(w, err)
			return
		}
		out = append(out, resp)
	}
	WriteSuccess(w, out)
}

// UploadMedia handles POST /api/admin/media as multipart/form-data with a
// "file" field.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	// Headroom above the file ceiling for the multipart framing.
	r.Body = http.MaxBytesReader(w, r.Body, model.MaxUploadSize+64*1024)

	if err := r.ParseMultipartForm(model.MaxUploadSize); err != nil {
		WriteBadRequest(w, "File too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "A file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	var uploadedBy *int64
	if user := middleware.GetAdminUser(r); user != nil {
		uploadedBy = &user.ID
	}

	media, err := h.media.Upload(r.Context(), file, header, uploadedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFileTooLarge):
			WriteBadRequest(w, "File too large")
		case errors.Is(err, service.ErrUnsupportedType):
			WriteBadRequest(w, "File type is not allowed")
		default:
			WriteInternalError(w, err)
		}
		return
	}

	resp, err := h.mediaToResponse(media)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteCreated(w, resp)
}

// GetMedia handles GET /api/admin/media/{id}.
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	m, err := h.queries.GetMediaByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Media not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	resp, err := h.mediaToResponse(m)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, resp)
}

// DeleteMedia handles DELETE /api/admin/media/{id}.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.media.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrMediaNotFound) {
			WriteNotFound(w, "Media not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, nil)
}
