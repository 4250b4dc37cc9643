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

// CaseStudyResponse represents a client case study in API responses.
type CaseStudyResponse struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	ClientName string    `json:"client_name"`
	Industry   string    `json:"industry"`
	Summary    string    `json:"summary"`
	Challenge  string    `json:"challenge"`
	Solution   string    `json:"solution"`
	Results    []string  `json:"results"`
	Published  bool      `json:"published"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateCaseStudyRequest is the request body for creating a case study.
type CreateCaseStudyRequest struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	ClientName string   `json:"client_name"`
	Industry   string   `json:"industry"`
	Summary    string   `json:"summary"`
	Challenge  string   `json:"challenge"`
	Solution   string   `json:"solution"`
	Results    []string `json:"results"`
	Published  bool     `json:"published"`
}

// UpdateCaseStudyRequest is the request body for updating a case study.
type UpdateCaseStudyRequest struct {
	Title      *string   `json:"title,omitempty"`
	Slug       *string   `json:"slug,omitempty"`
	ClientName *string   `json:"client_name,omitempty"`
	Industry   *string   `json:"industry,omitempty"`
	Summary    *string   `json:"summary,omitempty"`
	Challenge  *string   `json:"challenge,omitempty"`
	Solution   *string   `json:"solution,omitempty"`
	Results    *[]string `json:"results,omitempty"`
	Published  *bool     `json:"published,omitempty"`
}

func caseStudyToResponse(c store.CaseStudy) (CaseStudyResponse, error) {
	results, err := parseJSONArray(c.Results)
	if err != nil {
		return CaseStudyResponse{}, fmt.Errorf("case study %d: decoding results: %w", c.ID, err)
	}
	return CaseStudyResponse{
		ID:         c.ID,
		Title:      c.Title,
		Slug:       c.Slug,
		ClientName: c.ClientName,
		Industry:   c.Industry,
		Summary:    c.Summary,
		Challenge:  c.Challenge,
		Solution:   c.Solution,
		Results:    results,
		Published:  c.Published,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}, nil
}

// ListCaseStudies handles GET /api/case-studies and the admin variant.
func (h *Handler) ListCaseStudies(w http.ResponseWriter, r *http.Request) {
	var (
		rows []store.CaseStudy
		err  error
	)
	if h.includeUnpublished(r) {
		rows, err = h.queries.ListCaseStudies(r.Context())
	} else {
		rows, err = h.queries.ListPublishedCaseStudies(r.Context())
	}
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	out := make([]CaseStudyResponse, 0, len(rows))
	for _, c := range rows {
		resp, err := caseStudyToResponse(c)
		if err != nil {
			WriteInternalError(w, err)
			return
		}
		out = append(out, resp)
	}
	WriteSuccess(w, out)
}

// GetCaseStudy handles GET /api/case-studies/{idOrSlug}.
func (h *Handler) GetCaseStudy(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	var (
		cs  store.CaseStudy
		err error
	)
	if id, convErr := strconv.ParseInt(idOrSlug, 10, 64); convErr == nil {
		cs, err = h.queries.GetCaseStudyByID(r.Context(), id)
	} else {
		cs, err = h.queries.GetCaseStudyBySlug(r.Context(), idOrSlug)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Case study not found")
			return
		}
		WriteInternalError(w, err)
		return
	}

	if !cs.Published && !h.isAdminRequest(r) {
		WriteNotFound(w, "Case study not found")
		return
	}

	resp, err := caseStudyToResponse(cs)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, resp)
}

// CreateCaseStudy handles POST /api/admin/case-studies.
func (h *Handler) CreateCaseStudy(w http.ResponseWriter, r *http.Request) {
	var req CreateCaseStudyRequest
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

	cs, err := h.queries.CreateCaseStudy(r.Context(), store.CreateCaseStudyParams{
		Title:      req.Title,
		Slug:       req.Slug,
		ClientName: req.ClientName,
		Industry:   req.Industry,
		Summary:    req.Summary,
		Challenge:  req.Challenge,
		Solution:   req.Solution,
		Results:    marshalJSONArray(req.Results),
		Published:  req.Published,
	})
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	resp, err := caseStudyToResponse(cs)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteCreated(w, resp)
}

// UpdateCaseStudy handles PATCH /api/admin/case-studies/{id}.
func (h *Handler) UpdateCaseStudy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateCaseStudyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Slug != nil && !util.IsValidSlug(*req.Slug) {
		WriteBadRequest(w, "Invalid slug")
		return
	}

	params := store.UpdateCaseStudyParams{
		Title:      req.Title,
		Slug:       req.Slug,
		ClientName: req.ClientName,
		Industry:   req.Industry,
		Summary:    req.Summary,
		Challenge:  req.Challenge,
		Solution:   req.Solution,
		Published:  req.Published,
	}
	if req.Results != nil {
		results := marshalJSONArray(*req.Results)
		params.Results = &results
	}

	cs, err := h.queries.UpdateCaseStudy(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Case study not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	resp, err := caseStudyToResponse(cs)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, resp)
}

// DeleteCaseStudy handles DELETE /api/admin/case-studies/{id}.
func (h *Handler) DeleteCaseStudy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.queries.DeleteCaseStudy(r.Context(), id)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	if !deleted {
		WriteNotFound(w, "Case study not found")
		return
	}
	WriteSuccess(w, nil)
}
