// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Well-known setting keys.
const (
	SettingSetupComplete = "setup_complete"
	SettingSiteName      = "site_name"
)

// Setting is a key/value site setting row.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// ListSettings returns all settings ordered by key.
func (q *Queries) ListSettings(ctx context.Context) ([]Setting, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT `key`, value, updated_at FROM settings ORDER BY `key`")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var settings []Setting
	for rows.Next() {
		var s Setting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// GetSetting returns the setting for a key.
func (q *Queries) GetSetting(ctx context.Context, key string) (Setting, error) {
	var s Setting
	err := q.db.QueryRowContext(ctx,
		"SELECT `key`, value, updated_at FROM settings WHERE `key` = ?", key).
		Scan(&s.Key, &s.Value, &s.UpdatedAt)
	return s, err
}

// UpsertSetting creates or replaces the value for a key. Implemented as
// select-then-write so the same statements work on both SQLite and MySQL;
// concurrent writers are last-write-wins like every other update path.
func (q *Queries) UpsertSetting(ctx context.Context, key, value string) error {
	now := time.Now().UTC()
	_, err := q.GetSetting(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		_, err = q.db.ExecContext(ctx,
			"INSERT INTO settings (`key`, value, updated_at) VALUES (?, ?, ?)", key, value, now)
		return err
	}
	if err != nil {
		return err
	}
	_, err = q.db.ExecContext(ctx,
		"UPDATE settings SET value = ?, updated_at = ? WHERE `key` = ?", value, now, key)
	return err
}
