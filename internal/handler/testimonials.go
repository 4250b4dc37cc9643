// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/brightpathhr/brightpath/internal/store"
)

// TestimonialResponse represents a client testimonial in API responses.
type TestimonialResponse struct {
	ID          int64     `json:"id"`
	AuthorName  string    `json:"author_name"`
	AuthorTitle string    `json:"author_title"`
	Company     string    `json:"company"`
	Quote       string    `json:"quote"`
	Rating      int64     `json:"rating"`
	SortOrder   int64     `json:"sort_order"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateTestimonialRequest is the request body for creating a testimonial.
type CreateTestimonialRequest struct {
	AuthorName  string `json:"author_name"`
	AuthorTitle string `json:"author_title"`
	Company     string `json:"company"`
	Quote       string `json:"quote"`
	Rating      int64  `json:"rating"`
	SortOrder   int64  `json:"sort_order"`
	Published   bool   `json:"published"`
}

// UpdateTestimonialRequest is the request body for updating a testimonial.
type UpdateTestimonialRequest struct {
	AuthorName  *string `json:"author_name,omitempty"`
	AuthorTitle *string `json:"author_title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Quote       *string `json:"quote,omitempty"`
	Rating      *int64  `json:"rating,omitempty"`
	SortOrder   *int64  `json:"sort_order,omitempty"`
	Published   *bool   `json:"published,omitempty"`
}

func testimonialToResponse(t store.Testimonial) TestimonialResponse {
	return TestimonialResponse{
		ID:          t.ID,
		AuthorName:  t.AuthorName,
		AuthorTitle: t.AuthorTitle,
		Company:     t.Company,
		Quote:       t.Quote,
		Rating:      t.Rating,
		SortOrder:   t.SortOrder,
		Published:   t.Published,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func validRating(rating int64) bool {
	return rating >= 1 && rating <= 5
}

// ListTestimonials handles GET /api/testimonials and the admin variant.
func (h *Handler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	var (
		rows []store.Testimonial
		err  error
	)
	if h.includeUnpublished(r) {
		rows, err = h.queries.ListTestimonials(r.Context())
	} else {
		rows, err = h.queries.ListPublishedTestimonials(r.Context())
	}
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	out := make([]TestimonialResponse, 0, len(rows))
	for _, t := range rows {
		out = append(out, testimonialToResponse(t))
	}
	WriteSuccess(w, out)
}

// GetTestimonial handles GET /api/admin/testimonials/{id}.
func (h *Handler) GetTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	t, err := h.queries.GetTestimonialByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Testimonial not found")
			return
		}
		WriteInternalError(w, err)
		return
	}

	if !t.Published && !h.isAdminRequest(r) {
		WriteNotFound(w, "Testimonial not found")
		return
	}

	WriteSuccess(w, testimonialToResponse(t))
}

// CreateTestimonial handles POST /api/admin/testimonials.
func (h *Handler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req CreateTestimonialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.AuthorName == "" || req.Quote == "" {
		WriteBadRequest(w, "Author name and quote are required")
		return
	}
	if !validRating(req.Rating) {
		WriteBadRequest(w, "Rating must be between 1 and 5")
		return
	}

	t, err := h.queries.CreateTestimonial(r.Context(), store.CreateTestimonialParams{
		AuthorName:  req.AuthorName,
		AuthorTitle: req.AuthorTitle,
		Company:     req.Company,
		Quote:       req.Quote,
		Rating:      req.Rating,
		SortOrder:   req.SortOrder,
		Published:   req.Published,
	})
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteCreated(w, testimonialToResponse(t))
}

// UpdateTestimonial handles PATCH /api/admin/testimonials/{id}.
func (h *Handler) UpdateTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTestimonialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Rating != nil && !validRating(*req.Rating) {
		WriteBadRequest(w, "Rating must be between 1 and 5")
		return
	}

	t, err := h.queries.UpdateTestimonial(r.Context(), id, store.UpdateTestimonialParams{
		AuthorName:  req.AuthorName,
		AuthorTitle: req.AuthorTitle,
		Company:     req.Company,
		Quote:       req.Quote,
		Rating:      req.Rating,
		SortOrder:   req.SortOrder,
		Published:   req.Published,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Testimonial not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, testimonialToResponse(t))
}

// DeleteTestimonial handles DELETE /api/admin/testimonials/{id}.
func (h *Handler) DeleteTestimonial(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.queries.DeleteTestimonial(r.Context(), id)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	if !deleted {
		WriteNotFound(w, "Testimonial not found")
		return
	}
	WriteSuccess(w, nil)
}
