// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/store"
)

// LeadResponse represents a contact-form submission in API responses.
type LeadResponse struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Company         string    `json:"company"`
	ServiceInterest string    `json:"service_interest"`
	Message         string    `json:"message"`
	Status          string    `json:"status"`
	Source          string    `json:"source"`
	Browser         string    `json:"browser"`
	OS              string    `json:"os"`
	Device          string    `json:"device"`
	Country         string    `json:"country"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateLeadRequest is the public contact-form body.
type CreateLeadRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Company         string `json:"company"`
	ServiceInterest string `json:"service_interest"`
	Message         string `json:"message"`
	Source          string `json:"source"`
}

// UpdateLeadRequest is the admin patch body.
type UpdateLeadRequest struct {
	Status  *string `json:"status,omitempty"`
	Message *string `json:"message,omitempty"`
}

func leadToResponse(l store.Lead) LeadResponse {
	return LeadResponse{
		ID:              l.ID,
		Name:            l.Name,
		Email:           l.Email,
		Phone:           l.Phone,
		Company:         l.Company,
		ServiceInterest: l.ServiceInterest,
		Message:         l.Message,
		Status:          l.Status,
		Source:          l.Source,
		Browser:         l.Browser,
		OS:              l.OS,
		Device:          l.Device,
		Country:         l.Country,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}

// validEmail does a cheap structural check; real validation happens when
// the sales team replies.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

// CreateLead handles POST /api/leads, the public contact form. New leads
// always enter with status "new"; a notification email is sent
// best-effort after the row is written.
func (h *Handler) CreateLead(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Name == "" || req.Email == "" {
		WriteBadRequest(w, "Name and email are required")
		return
	}
	if !validEmail(req.Email) {
		WriteBadRequest(w, "Invalid email address")
		return
	}

	meta := h.tagger.Tag(r)
	lead, err := h.queries.CreateLead(r.Context(), store.CreateLeadParams{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Company:         req.Company,
		ServiceInterest: req.ServiceInterest,
		Message:         req.Message,
		Source:          req.Source,
		Browser:         meta.Browser,
		OS:              meta.OS,
		Device:          meta.Device,
		Country:         meta.Country,
	})
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	h.mailer.NotifyLead(lead)

	WriteCreated(w, leadToResponse(lead))
}

// ListLeads handles GET /api/admin/leads.
func (h *Handler) ListLeads(w http.ResponseWriter, r *http.Request) {
	rows, err := h.queries.ListLeads(r.Context())
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	out := make([]LeadResponse, 0, len(rows))
	for _, l := range rows {
		out = append(out, leadToResponse(l))
	}
	WriteSuccess(w, out)
}

// GetLead handles GET /api/admin/leads/{id}.
func (h *Handler) GetLead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	lead, err := h.queries.GetLeadByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Lead not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, leadToResponse(lead))
}

// UpdateLead handles PATCH /api/admin/leads/{id}, primarily for status
// advancement.
func (h *Handler) UpdateLead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateLeadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Status != nil && !model.IsValidLeadStatus(*req.Status) {
		WriteBadRequest(w, "Invalid lead status")
		return
	}

	lead, err := h.queries.UpdateLead(r.Context(), id, store.UpdateLeadParams{
		Status:  req.Status,
		Message: req.Message,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Lead not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, leadToResponse(lead))
}

// DeleteLead handles DELETE /api/admin/leads/{id}.
func (h *Handler) DeleteLead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.queries.DeleteLead(r.Context(), id)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	if !deleted {
		WriteNotFound(w, "Lead not found")
		return
	}
	WriteSuccess(w, nil)
}
