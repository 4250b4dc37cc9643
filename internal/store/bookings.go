// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"

	"github.com/brightpathhr/brightpath/internal/model"
)

// Booking is a consultation booking-form submission row. PreferredDate is
// stored as YYYY-MM-DD text.
type Booking struct {
	ID            int64
	Name          string
	Email         string
	Phone         string
	Company       string
	ServiceType   string
	PreferredDate string
	PreferredTime string
	Notes         string
	Status        string
	Browser       string
	OS            string
	Device        string
	Country       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

const bookingColumns = "id, name, email, phone, company, service_type, preferred_date, preferred_time, notes, status, browser, os, device, country, created_at, updated_at"

func (q *Queries) listBookings(ctx context.Context, query string, args ...any) ([]Booking, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Company, &b.ServiceType,
			&b.PreferredDate, &b.PreferredTime, &b.Notes, &b.Status, &b.Browser, &b.OS,
			&b.Device, &b.Country, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// ListBookings returns all bookings, newest first.
func (q *Queries) ListBookings(ctx context.Context) ([]Booking, error) {
	return q.listBookings(ctx,
		"SELECT "+bookingColumns+" FROM bookings ORDER BY created_at DESC, id DESC")
}

// ListUpcomingBookings returns pending and confirmed bookings with a
// preferred date of today or later, soonest first.
func (q *Queries) ListUpcomingBookings(ctx context.Context) ([]Booking, error) {
	today := time.Now().UTC().Format("2006-01-02")
	return q.listBookings(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE preferred_date >= ? AND status IN (?, ?) ORDER BY preferred_date, preferred_time, id",
		today, model.BookingStatusPending, model.BookingStatusConfirmed)
}

// GetBookingByID returns the booking with the given id.
func (q *Queries) GetBookingByID(ctx context.Context, id int64) (Booking, error) {
	var b Booking
	err := q.db.QueryRowContext(ctx,
		"SELECT "+bookingColumns+" FROM bookings WHERE id = ?", id).
		Scan(&b.ID, &b.Name, &b.Email, &b.Phone, &b.Company, &b.ServiceType,
			&b.PreferredDate, &b.PreferredTime, &b.Notes, &b.Status, &b.Browser, &b.OS,
			&b.Device, &b.Country, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// CreateBookingParams holds the fields for creating a booking. Status
// always starts at "pending".
type CreateBookingParams struct {
	Name          string
	Email         string
	Phone         string
	Company       string
	ServiceType   string
	PreferredDate string
	PreferredTime string
	Notes         string
	Browser       string
	OS            string
	Device        string
	Country       string
}

// CreateBooking inserts a booking and re-fetches the inserted row.
func (q *Queries) CreateBooking(ctx context.Context, p CreateBookingParams) (Booking, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO bookings (name, email, phone, company, service_type, preferred_date, preferred_time, notes, status, browser, os, device, country, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Email, p.Phone, p.Company, p.ServiceType, p.PreferredDate, p.PreferredTime,
		p.Notes, model.BookingStatusPending, p.Browser, p.OS, p.Device, p.Country, now, now)
	if err != nil {
		return Booking{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Booking{}, err
	}
	return q.GetBookingByID(ctx, id)
}

// UpdateBookingParams is a patch of booking fields; nil members are left
// unchanged.
type UpdateBookingParams struct {
	Status        *string
	PreferredDate *string
	PreferredTime *string
	Notes         *string
}

// UpdateBooking applies a partial update and returns the current row.
func (q *Queries) UpdateBooking(ctx context.Context, id int64, p UpdateBookingParams) (Booking, error) {
	var (
		sets []string
		args []any
	)
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.PreferredDate != nil {
		sets = append(sets, "preferred_date = ?")
		args = append(args, *p.PreferredDate)
	}
	if p.PreferredTime != nil {
		sets = append(sets, "preferred_time = ?")
		args = append(args, *p.PreferredTime)
	}
	if p.Notes != nil {
		sets = append(sets, "notes = ?")
		args = append(args, *p.Notes)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC(), id)
		query := "UPDATE bookings SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
			return Booking{}, err
		}
	}
	return q.GetBookingByID(ctx, id)
}

// DeleteBooking removes a booking, reporting success via affected rows.
func (q *Queries) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM bookings WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// BookingStatusCounts returns booking counts grouped by status.
func (q *Queries) BookingStatusCounts(ctx context.Context) ([]StatusCount, error) {
	return q.queryStatusCounts(ctx, "SELECT status, COUNT(*) FROM bookings GROUP BY status")
}
