// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/store"
)

// BookingResponse represents a consultation booking in API responses.
type BookingResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	Company       string    `json:"company"`
	ServiceType   string    `json:"service_type"`
	PreferredDate string    `json:"preferred_date"`
	PreferredTime string    `json:"preferred_time"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	Browser       string    `json:"browser"`
	OS            string    `json:"os"`
	Device        string    `json:"device"`
	Country       string    `json:"country"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateBookingRequest is the public booking-form body.
type CreateBookingRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Company       string `json:"company"`
	ServiceType   string `json:"service_type"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	Notes         string `json:"notes"`
}

// UpdateBookingRequest is the admin patch body.
type UpdateBookingRequest struct {
	Status        *string `json:"status,omitempty"`
	PreferredDate *string `json:"preferred_date,omitempty"`
	PreferredTime *string `json:"preferred_time,omitempty"`
	Notes         *string `json:"notes,omitempty"`
}

func bookingToResponse(b store.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		Company:       b.Company,
		ServiceType:   b.ServiceType,
		PreferredDate: b.PreferredDate,
		PreferredTime: b.PreferredTime,
		Notes:         b.Notes,
		Status:        b.Status,
		Browser:       b.Browser,
		OS:            b.OS,
		Device:        b.Device,
		Country:       b.Country,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// validBookingDate checks the YYYY-MM-DD wire format.
func validBookingDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}

// CreateBooking handles POST /api/bookings, the public booking form. New
// bookings always enter with status "pending".
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.PreferredDate == "" {
		WriteBadRequest(w, "Name, email, and preferred date are required")
		return
	}
	if !validEmail(req.Email) {
		WriteBadRequest(w, "Invalid email address")
		return
	}
	if !validBookingDate(req.PreferredDate) {
		WriteBadRequest(w, "Preferred date must be YYYY-MM-DD")
		return
	}

	meta := h.tagger.Tag(r)
	booking, err := h.queries.CreateBooking(r.Context(), store.CreateBookingParams{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Company:       req.Company,
		ServiceType:   req.ServiceType,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
		Browser:       meta.Browser,
		OS:            meta.OS,
		Device:        meta.Device,
		Country:       meta.Country,
	})
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	h.mailer.NotifyBooking(booking)

	WriteCreated(w, bookingToResponse(booking))
}

// ListBookings handles GET /api/admin/bookings. ?upcoming=true restricts
// to pending/confirmed bookings from today forward.
func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request) {
	var (
		rows []store.Booking
		err  error
	)
	if r.URL.Query().Get("upcoming") == "true" {
		rows, err = h.queries.ListUpcomingBookings(r.Context())
	} else {
		rows, err = h.queries.ListBookings(r.Context())
	}
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	out := make([]BookingResponse, 0, len(rows))
	for _, b := range rows {
		out = append(out, bookingToResponse(b))
	}
	WriteSuccess(w, out)
}

// GetBooking handles GET /api/admin/bookings/{id}.
func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	booking, err := h.queries.GetBookingByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Booking not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, bookingToResponse(booking))
}

// UpdateBooking handles PATCH /api/admin/bookings/{id}.
func (h *Handler) UpdateBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Status != nil && !model.IsValidBookingStatus(*req.Status) {
		WriteBadRequest(w, "Invalid booking status")
		return
	}
	if req.PreferredDate != nil && !validBookingDate(*req.PreferredDate) {
		WriteBadRequest(w, "Preferred date must be YYYY-MM-DD")
		return
	}

	booking, err := h.queries.UpdateBooking(r.Context(), id, store.UpdateBookingParams{
		Status:        req.Status,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		Notes:         req.Notes,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Booking not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, bookingToResponse(booking))
}

// DeleteBooking handles DELETE /api/admin/bookings/{id}.
func (h *Handler) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	deleted, err := h.queries.DeleteBooking(r.Context(), id)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	if !deleted {
		WriteNotFound(w, "Booking not found")
		return
	}
	WriteSuccess(w, nil)
}
