// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// Media is an uploaded file metadata row. Tags holds a JSON array
// serialized as text; FilePath is relative to the uploads directory.
type Media struct {
	ID           int64
	Filename     string
	OriginalName string
	MimeType     string
	FileSize     int64
	FilePath     string
	Width        sql.NullInt64
	Height       sql.NullInt64
	Tags         string
	UploadedBy   sql.NullInt64
	CreatedAt    time.Time
}

const mediaColumns = "id, filename, original_name, mime_type, file_size, file_path, width, height, tags, uploaded_by, created_at"

// ListMedia returns all media rows, newest first.
func (q *Queries) ListMedia(ctx context.Context) ([]Media, error) {
	rows, err := q.db.QueryContext(ctx,
		"SELECT "+mediaColumns+" FROM media ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var media []Media
	for rows.Next() {
		var m Media
		if err := rows.Scan(&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.FileSize,
			&m.FilePath, &m.Width, &m.Height, &m.Tags, &m.UploadedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		media = append(media, m)
	}
	return media, rows.Err()
}

// GetMediaByID returns the media row with the given id.
func (q *Queries) GetMediaByID(ctx context.Context, id int64) (Media, error) {
	var m Media
	err := q.db.QueryRowContext(ctx,
		"SELECT "+mediaColumns+" FROM media WHERE id = ?", id).
		Scan(&m.ID, &m.Filename, &m.OriginalName, &m.MimeType, &m.FileSize,
			&m.FilePath, &m.Width, &m.Height, &m.Tags, &m.UploadedBy, &m.CreatedAt)
	return m, err
}

// CreateMediaParams holds the fields for creating a media row.
type CreateMediaParams struct {
	Filename     string
	OriginalName string
	MimeType     string
	FileSize     int64
	FilePath     string
	Width        sql.NullInt64
	Height       sql.NullInt64
	Tags         string // JSON array
	UploadedBy   sql.NullInt64
}

// CreateMedia inserts a media row and re-fetches it.
func (q *Queries) CreateMedia(ctx context.Context, p CreateMediaParams) (Media, error) {
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO media (filename, original_name, mime_type, file_size, file_path, width, height, tags, uploaded_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Filename, p.OriginalName, p.MimeType, p.FileSize, p.FilePath,
		p.Width, p.Height, p.Tags, p.UploadedBy, time.Now().UTC())
	if err != nil {
		return Media{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Media{}, err
	}
	return q.GetMediaByID(ctx, id)
}

// DeleteMedia removes a media row, reporting success via affected rows.
// Unlinking the underlying file is the caller's concern.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM media WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
