// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Session is an opaque-token session row. The same shape backs both the
// site (`sessions`) and admin (`admin_sessions`) realms.
type Session struct {
	Token     string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

const sessionColumns = "token, user_id, created_at, expires_at"

func scanSession(row *sql.Row) (Session, error) {
	var s Session
	err := row.Scan(&s.Token, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	return s, err
}

// CreateSession inserts a site session row.
func (q *Queries) CreateSession(ctx context.Context, token string, userID int64, expiresAt time.Time) (Session, error) {
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)",
		token, userID, now, expiresAt)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, UserID: userID, CreatedAt: now, ExpiresAt: expiresAt}, nil
}

// GetSession returns the site session for a token if it has not expired.
// Expired rows are excluded, not deleted; cleanup is a separate entry point.
func (q *Queries) GetSession(ctx context.Context, token string) (Session, error) {
	return scanSession(q.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM sessions WHERE token = ? AND expires_at > ?",
		token, time.Now().UTC()))
}

// DeleteSession removes a site session row.
func (q *Queries) DeleteSession(ctx context.Context, token string) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	return err
}

// DeleteExpiredSessions purges expired site session rows and reports how
// many were removed.
func (q *Queries) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM sessions WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// CreateAdminSession inserts an admin session row.
func (q *Queries) CreateAdminSession(ctx context.Context, token string, userID int64, expiresAt time.Time) (Session, error) {
	now := time.Now().UTC()
	_, err := q.db.ExecContext(ctx,
		"INSERT INTO admin_sessions (token, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)",
		token, userID, now, expiresAt)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, UserID: userID, CreatedAt: now, ExpiresAt: expiresAt}, nil
}

// GetAdminSession returns the admin session for a token if it has not expired.
func (q *Queries) GetAdminSession(ctx context.Context, token string) (Session, error) {
	return scanSession(q.db.QueryRowContext(ctx,
		"SELECT "+sessionColumns+" FROM admin_sessions WHERE token = ? AND expires_at > ?",
		token, time.Now().UTC()))
}

// DeleteAdminSession removes an admin session row.
func (q *Queries) DeleteAdminSession(ctx context.Context, token string) error {
	_, err := q.db.ExecContext(ctx, "DELETE FROM admin_sessions WHERE token = ?", token)
	return err
}

// DeleteExpiredAdminSessions purges expired admin session rows.
func (q *Queries) DeleteExpiredAdminSessions(ctx context.Context) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		"DELETE FROM admin_sessions WHERE expires_at <= ?", time.Now().UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
