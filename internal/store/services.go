// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Service is a consulting service offering row. Features holds a JSON
// array serialized as text.
type Service struct {
	ID          int64
	Title       string
	Slug        string
	Summary     string
	Description string
	Icon        string
	Features    string
	SortOrder   int64
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const serviceColumns = "id, title, slug, summary, description, icon, features, sort_order, published, created_at, updated_at"

func (q *Queries) listServices(ctx context.Context, query string, args ...any) ([]Service, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Title, &s.Slug, &s.Summary, &s.Description, &s.Icon,
			&s.Features, &s.SortOrder, &s.Published, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

func scanService(row *sql.Row) (Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.Title, &s.Slug, &s.Summary, &s.Description, &s.Icon,
		&s.Features, &s.SortOrder, &s.Published, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// ListServices returns all services ordered for display.
func (q *Queries) ListServices(ctx context.Context) ([]Service, error) {
	return q.listServices(ctx,
		"SELECT "+serviceColumns+" FROM services ORDER BY sort_order, id")
}

// ListPublishedServices returns only published services.
func (q *Queries) ListPublishedServices(ctx context.Context) ([]Service, error) {
	return q.listServices(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE published = 1 ORDER BY sort_order, id")
}

// GetServiceByID returns the service with the given id.
func (q *Queries) GetServiceByID(ctx context.Context, id int64) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE id = ?", id))
}

// GetServiceBySlug returns the service with the given slug.
func (q *Queries) GetServiceBySlug(ctx context.Context, slug string) (Service, error) {
	return scanService(q.db.QueryRowContext(ctx,
		"SELECT "+serviceColumns+" FROM services WHERE slug = ?", slug))
}

// CreateServiceParams holds the fields for creating a service.
type CreateServiceParams struct {
	Title       string
	Slug        string
	Summary     string
	Description string
	Icon        string
	Features    string // JSON array
	SortOrder   int64
	Published   bool
}

// CreateService inserts a service and re-fetches the inserted row.
func (q *Queries) CreateService(ctx context.Context, p CreateServiceParams) (Service, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO services (title, slug, summary, description, icon, features, sort_order, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Summary, p.Description, p.Icon, p.Features, p.SortOrder, p.Published, now, now)
	if err != nil {
		return Service{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Service{}, err
	}
	return q.GetServiceByID(ctx, id)
}

// UpdateServiceParams is a patch of service fields; nil members are left
// unchanged.
type UpdateServiceParams struct {
	Title       *string
	Slug        *string
	Summary     *string
	Description *string
	Icon        *string
	Features    *string
	SortOrder   *int64
	Published   *bool
}

// UpdateService applies a partial update and returns the current row.
func (q *Queries) UpdateService(ctx context.Context, id int64, p UpdateServiceParams) (Service, error) {
	var (
		sets []string
		args []any
	)
	if p.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *p.Title)
	}
	if p.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *p.Slug)
	}
	if p.Summary != nil {
		sets = append(sets, "summary = ?")
		args = append(args, *p.Summary)
	}
	if p.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *p.Description)
	}
	if p.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *p.Icon)
	}
	if p.Features != nil {
		sets = append(sets, "features = ?")
		args = append(args, *p.Features)
	}
	if p.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *p.SortOrder)
	}
	if p.Published != nil {
		sets = append(sets, "published = ?")
		args = append(args, *p.Published)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC(), id)
		query := "UPDATE services SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
			return Service{}, err
		}
	}
	return q.GetServiceByID(ctx, id)
}

// DeleteService removes a service, reporting success via affected rows.
func (q *Queries) DeleteService(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM services WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountServices returns total and published service counts.
func (q *Queries) CountServices(ctx context.Context) (total, published int64, err error) {
	if total, err = q.count(ctx, "SELECT COUNT(*) FROM services"); err != nil {
		return 0, 0, err
	}
	if published, err = q.count(ctx, "SELECT COUNT(*) FROM services WHERE published = 1"); err != nil {
		return 0, 0, err
	}
	return total, published, nil
}
