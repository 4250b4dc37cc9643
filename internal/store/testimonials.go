// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// Testimonial is a client quote row.
type Testimonial struct {
	ID          int64
	AuthorName  string
	AuthorTitle string
	Company     string
	Quote       string
	Rating      int64
	SortOrder   int64
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const testimonialColumns = "id, author_name, author_title, company, quote, rating, sort_order, published, created_at, updated_at"

func (q *Queries) listTestimonials(ctx context.Context, query string, args ...any) ([]Testimonial, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var testimonials []Testimonial
	for rows.Next() {
		var t Testimonial
		if err := rows.Scan(&t.ID, &t.AuthorName, &t.AuthorTitle, &t.Company, &t.Quote,
			&t.Rating, &t.SortOrder, &t.Published, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		testimonials = append(testimonials, t)
	}
	return testimonials, rows.Err()
}

func scanTestimonial(row *sql.Row) (Testimonial, error) {
	var t Testimonial
	err := row.Scan(&t.ID, &t.AuthorName, &t.AuthorTitle, &t.Company, &t.Quote,
		&t.Rating, &t.SortOrder, &t.Published, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

// ListTestimonials returns all testimonials ordered for display.
func (q *Queries) ListTestimonials(ctx context.Context) ([]Testimonial, error) {
	return q.listTestimonials(ctx,
		"SELECT "+testimonialColumns+" FROM testimonials ORDER BY sort_order, id")
}

// ListPublishedTestimonials returns only published testimonials.
func (q *Queries) ListPublishedTestimonials(ctx context.Context) ([]Testimonial, error) {
	return q.listTestimonials(ctx,
		"SELECT "+testimonialColumns+" FROM testimonials WHERE published = 1 ORDER BY sort_order, id")
}

// GetTestimonialByID returns the testimonial with the given id.
func (q *Queries) GetTestimonialByID(ctx context.Context, id int64) (Testimonial, error) {
	return scanTestimonial(q.db.QueryRowContext(ctx,
		"SELECT "+testimonialColumns+" FROM testimonials WHERE id = ?", id))
}

// CreateTestimonialParams holds the fields for creating a testimonial.
type CreateTestimonialParams struct {
	AuthorName  string
	AuthorTitle string
	Company     string
	Quote       string
	Rating      int64
	SortOrder   int64
	Published   bool
}

// CreateTestimonial inserts a testimonial and re-fetches the inserted row.
func (q *Queries) CreateTestimonial(ctx context.Context, p CreateTestimonialParams) (Testimonial, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO testimonials (author_name, author_title, company, quote, rating, sort_order, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.AuthorName, p.AuthorTitle, p.Company, p.Quote, p.Rating, p.SortOrder, p.Published, now, now)
	if err != nil {
		return Testimonial{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Testimonial{}, err
	}
	return q.GetTestimonialByID(ctx, id)
}

// UpdateTestimonialParams is a patch of testimonial fields; nil members are
// left unchanged.
type UpdateTestimonialParams struct {
	AuthorName  *string
	AuthorTitle *string
	Company     *string
	Quote       *string
	Rating      *int64
	SortOrder   *int64
	Published   *bool
}

// UpdateTestimonial applies a partial update and returns the current row.
func (q *Queries) UpdateTestimonial(ctx context.Context, id int64, p UpdateTestimonialParams) (Testimonial, error) {
	var (
		sets []string
		args []any
	)
	if p.AuthorName != nil {
		sets = append(sets, "author_name = ?")
		args = append(args, *p.AuthorName)
	}
	if p.AuthorTitle != nil {
		sets = append(sets, "author_title = ?")
		args = append(args, *p.AuthorTitle)
	}
	if p.Company != nil {
		sets = append(sets, "company = ?")
		args = append(args, *p.Company)
	}
	if p.Quote != nil {
		sets = append(sets, "quote = ?")
		args = append(args, *p.Quote)
	}
	if p.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *p.Rating)
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
		query := "UPDATE testimonials SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
			return Testimonial{}, err
		}
	}
	return q.GetTestimonialByID(ctx, id)
}

// DeleteTestimonial removes a testimonial, reporting success via affected rows.
func (q *Queries) DeleteTestimonial(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM testimonials WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
