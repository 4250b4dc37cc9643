// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides database access: connection construction,
// embedded migrations, and a typed parameterized query layer.
package store

import (
	"context"
	"database/sql"
)

// DBTX is the subset of *sql.DB used by the query layer. It allows the
// queries to run against a transaction should a caller ever need one.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Queries exposes typed query methods over a database handle.
type Queries struct {
	db DBTX
}

// New creates a Queries value bound to the given database handle.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// StatusCount is one row of a GROUP BY status aggregate.
type StatusCount struct {
	Status string
	Count  int64
}

// queryStatusCounts runs a GROUP BY status query and collects the rows.
func (q *Queries) queryStatusCounts(ctx context.Context, query string) ([]StatusCount, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var counts []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, sc)
	}
	return counts, rows.Err()
}

// count runs a single-value COUNT query.
func (q *Queries) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}
