// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// CaseStudy is a client engagement write-up row. Results holds a JSON
// array serialized as text.
type CaseStudy struct {
	ID         int64
	Title      string
	Slug       string
	ClientName string
	Industry   string
	Summary    string
	Challenge  string
	Solution   string
	Results    string
	Published  bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

const caseStudyColumns = "id, title, slug, client_name, industry, summary, challenge, solution, results, published, created_at, updated_at"

func (q *Queries) listCaseStudies(ctx context.Context, query string, args ...any) ([]CaseStudy, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var studies []CaseStudy
	for rows.Next() {
		var c CaseStudy
		if err := rows.Scan(&c.ID, &c.Title, &c.Slug, &c.ClientName, &c.Industry, &c.Summary,
			&c.Challenge, &c.Solution, &c.Results, &c.Published, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		studies = append(studies, c)
	}
	return studies, rows.Err()
}

func scanCaseStudy(row *sql.Row) (CaseStudy, error) {
	var c CaseStudy
	err := row.Scan(&c.ID, &c.Title, &c.Slug, &c.ClientName, &c.Industry, &c.Summary,
		&c.Challenge, &c.Solution, &c.Results, &c.Published, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// ListCaseStudies returns all case studies, newest first.
func (q *Queries) ListCaseStudies(ctx context.Context) ([]CaseStudy, error) {
	return q.listCaseStudies(ctx,
		"SELECT "+caseStudyColumns+" FROM case_studies ORDER BY created_at DESC, id DESC")
}

// ListPublishedCaseStudies returns only published case studies.
func (q *Queries) ListPublishedCaseStudies(ctx context.Context) ([]CaseStudy, error) {
	return q.listCaseStudies(ctx,
		"SELECT "+caseStudyColumns+" FROM case_studies WHERE published = 1 ORDER BY created_at DESC, id DESC")
}

// GetCaseStudyByID returns the case study with the given id.
func (q *Queries) GetCaseStudyByID(ctx context.Context, id int64) (CaseStudy, error) {
	return scanCaseStudy(q.db.QueryRowContext(ctx,
		"SELECT "+caseStudyColumns+" FROM case_studies WHERE id = ?", id))
}

// GetCaseStudyBySlug returns the case study with the given slug.
func (q *Queries) GetCaseStudyBySlug(ctx context.Context, slug string) (CaseStudy, error) {
	return scanCaseStudy(q.db.QueryRowContext(ctx,
		"SELECT "+caseStudyColumns+" FROM case_studies WHERE slug = ?", slug))
}

// CreateCaseStudyParams holds the fields for creating a case study.
type CreateCaseStudyParams struct {
	Title      string
	Slug       string
	ClientName string
	Industry   string
	Summary    string
	Challenge  string
	Solution   string
	Results    string // JSON array
	Published  bool
}

// CreateCaseStudy inserts a case study and re-fetches the inserted row.
func (q *Queries) CreateCaseStudy(ctx context.Context, p CreateCaseStudyParams) (CaseStudy, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO case_studies (title, slug, client_name, industry, summary, challenge, solution, results, published, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.ClientName, p.Industry, p.Summary, p.Challenge, p.Solution, p.Results, p.Published, now, now)
	if err != nil {
		return CaseStudy{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return CaseStudy{}, err
	}
	return q.GetCaseStudyByID(ctx, id)
}

// UpdateCaseStudyParams is a patch of case study fields; nil members are
// left unchanged.
type UpdateCaseStudyParams struct {
	Title      *string
	Slug       *string
	ClientName *string
	Industry   *string
	Summary    *string
	Challenge  *string
	Solution   *string
	Results    *string
	Published  *bool
}

// UpdateCaseStudy applies a partial update and returns the current row.
func (q *Queries) UpdateCaseStudy(ctx context.Context, id int64, p UpdateCaseStudyParams) (CaseStudy, error) {
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
	if p.ClientName != nil {
		sets = append(sets, "client_name = ?")
		args = append(args, *p.ClientName)
	}
	if p.Industry != nil {
		sets = append(sets, "industry = ?")
		args = append(args, *p.Industry)
	}
	if p.Summary != nil {
		sets = append(sets, "summary = ?")
		args = append(args, *p.Summary)
	}
	if p.Challenge != nil {
		sets = append(sets, "challenge = ?")
		args = append(args, *p.Challenge)
	}
	if p.Solution != nil {
		sets = append(sets, "solution = ?")
		args = append(args, *p.Solution)
	}
	if p.Results != nil {
		sets = append(sets, "results = ?")
		args = append(args, *p.Results)
	}
	if p.Published != nil {
		sets = append(sets, "published = ?")
		args = append(args, *p.Published)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC(), id)
		query := "UPDATE case_studies SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
			return CaseStudy{}, err
		}
	}
	return q.GetCaseStudyByID(ctx, id)
}

// DeleteCaseStudy removes a case study, reporting success via affected rows.
func (q *Queries) DeleteCaseStudy(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM case_studies WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountCaseStudies returns total and published case study counts.
func (q *Queries) CountCaseStudies(ctx context.Context) (total, published int64, err error) {
	if total, err = q.count(ctx, "SELECT COUNT(*) FROM case_studies"); err != nil {
		return 0, 0, err
	}
	if published, err = q.count(ctx, "SELECT COUNT(*) FROM case_studies WHERE published = 1"); err != nil {
		return 0, 0, err
	}
	return total, published, nil
}
