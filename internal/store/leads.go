// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"

	"github.com/brightpathhr/brightpath/internal/model"
)

// Lead is a contact-form submission row.
type Lead struct {
	ID              int64
	Name            string
	Email           string
	Phone           string
	Company         string
	ServiceInterest string
	Message         string
	Status          string
	Source          string
	Browser         string
	OS              string
	Device          string
	Country         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

const leadColumns = "id, name, email, phone, company, service_interest, message, status, source, browser, os, device, country, created_at, updated_at"

func (q *Queries) listLeads(ctx context.Context, query string, args ...any) ([]Lead, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var leads []Lead
	for rows.Next() {
		var l Lead
		if err := rows.Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.ServiceInterest,
			&l.Message, &l.Status, &l.Source, &l.Browser, &l.OS, &l.Device, &l.Country,
			&l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, err
		}
		leads = append(leads, l)
	}
	return leads, rows.Err()
}

// ListLeads returns all leads, newest first.
func (q *Queries) ListLeads(ctx context.Context) ([]Lead, error) {
	return q.listLeads(ctx,
		"SELECT "+leadColumns+" FROM leads ORDER BY created_at DESC, id DESC")
}

// GetLeadByID returns the lead with the given id.
func (q *Queries) GetLeadByID(ctx context.Context, id int64) (Lead, error) {
	var l Lead
	err := q.db.QueryRowContext(ctx,
		"SELECT "+leadColumns+" FROM leads WHERE id = ?", id).
		Scan(&l.ID, &l.Name, &l.Email, &l.Phone, &l.Company, &l.ServiceInterest,
			&l.Message, &l.Status, &l.Source, &l.Browser, &l.OS, &l.Device, &l.Country,
			&l.CreatedAt, &l.UpdatedAt)
	return l, err
}

// CreateLeadParams holds the fields for creating a lead. Status always
// starts at "new".
type CreateLeadParams struct {
	Name            string
	Email           string
	Phone           string
	Company         string
	ServiceInterest string
	Message         string
	Source          string
	Browser         string
	OS              string
	Device          string
	Country         string
}

// CreateLead inserts a lead and re-fetches the inserted row.
func (q *Queries) CreateLead(ctx context.Context, p CreateLeadParams) (Lead, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO leads (name, email, phone, company, service_interest, message, status, source, browser, os, device, country, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Name, p.Email, p.Phone, p.Company, p.ServiceInterest, p.Message,
		model.LeadStatusNew, p.Source, p.Browser, p.OS, p.Device, p.Country, now, now)
	if err != nil {
		return Lead{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Lead{}, err
	}
	return q.GetLeadByID(ctx, id)
}

// UpdateLeadParams is a patch of lead fields; nil members are left unchanged.
type UpdateLeadParams struct {
	Status  *string
	Message *string
}

// UpdateLead applies a partial update and returns the current row.
func (q *Queries) UpdateLead(ctx context.Context, id int64, p UpdateLeadParams) (Lead, error) {
	var (
		sets []string
		args []any
	)
	if p.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *p.Status)
	}
	if p.Message != nil {
		sets = append(sets, "message = ?")
		args = append(args, *p.Message)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC(), id)
		query := "UPDATE leads SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
			return Lead{}, err
		}
	}
	return q.GetLeadByID(ctx, id)
}

// DeleteLead removes a lead, reporting success via affected rows.
func (q *Queries) DeleteLead(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM leads WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// LeadStatusCounts returns lead counts grouped by status. Statuses with no
// rows are absent; callers fold into a fixed-key summary.
func (q *Queries) LeadStatusCounts(ctx context.Context) ([]StatusCount, error) {
	return q.queryStatusCounts(ctx, "SELECT status, COUNT(*) FROM leads GROUP BY status")
}
