// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"strings"
	"time"
)

// ContentBlock is a page/section/key-addressed row of editable JSON copy.
type ContentBlock struct {
	ID        int64
	Page      string
	Section   string
	BlockKey  string
	Content   string
	SortOrder int64
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

const contentBlockColumns = "id, page, section, block_key, content, sort_order, is_active, created_at, updated_at"

func (q *Queries) listContentBlocks(ctx context.Context, query string, args ...any) ([]ContentBlock, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var blocks []ContentBlock
	for rows.Next() {
		var b ContentBlock
		if err := rows.Scan(&b.ID, &b.Page, &b.Section, &b.BlockKey, &b.Content,
			&b.SortOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// ListActiveContentBlocks returns active blocks, optionally filtered by page
// and section. The predicate is built incrementally from the provided
// filters; ordering is sort_order with id as a stable tiebreak.
func (q *Queries) ListActiveContentBlocks(ctx context.Context, page, section string) ([]ContentBlock, error) {
	query := "SELECT " + contentBlockColumns + " FROM content_blocks WHERE is_active = 1"
	var args []any
	if page != "" {
		query += " AND page = ?"
		args = append(args, page)
	}
	if section != "" {
		query += " AND section = ?"
		args = append(args, section)
	}
	query += " ORDER BY sort_order, id"
	return q.listContentBlocks(ctx, query, args...)
}

// ListAllContentBlocks returns every block including inactive ones, for the
// admin editor.
func (q *Queries) ListAllContentBlocks(ctx context.Context) ([]ContentBlock, error) {
	return q.listContentBlocks(ctx,
		"SELECT "+contentBlockColumns+" FROM content_blocks ORDER BY page, section, sort_order, id")
}

// GetContentBlockByID returns the block with the given id.
func (q *Queries) GetContentBlockByID(ctx context.Context, id int64) (ContentBlock, error) {
	var b ContentBlock
	err := q.db.QueryRowContext(ctx,
		"SELECT "+contentBlockColumns+" FROM content_blocks WHERE id = ?", id).
		Scan(&b.ID, &b.Page, &b.Section, &b.BlockKey, &b.Content,
			&b.SortOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

// CreateContentBlockParams holds the fields for creating a content block.
type CreateContentBlockParams struct {
	Page      string
	Section   string
	BlockKey  string
	Content   string // JSON object
	SortOrder int64
	IsActive  bool
}

// CreateContentBlock inserts a block and re-fetches the inserted row.
func (q *Queries) CreateContentBlock(ctx context.Context, p CreateContentBlockParams) (ContentBlock, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO content_blocks (page, section, block_key, content, sort_order, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Page, p.Section, p.BlockKey, p.Content, p.SortOrder, p.IsActive, now, now)
	if err != nil {
		return ContentBlock{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return ContentBlock{}, err
	}
	return q.GetContentBlockByID(ctx, id)
}

// UpdateContentBlockParams is a patch of block fields; nil members are left
// unchanged.
type UpdateContentBlockParams struct {
	Page      *string
	Section   *string
	BlockKey  *string
	Content   *string
	SortOrder *int64
	IsActive  *bool
}

// UpdateContentBlock applies a partial update and returns the current row.
func (q *Queries) UpdateContentBlock(ctx context.Context, id int64, p UpdateContentBlockParams) (ContentBlock, error) {
	var (
		sets []string
		args []any
	)
	if p.Page != nil {
		sets = append(sets, "page = ?")
		args = append(args, *p.Page)
	}
	if p.Section != nil {
		sets = append(sets, "section = ?")
		args = append(args, *p.Section)
	}
	if p.BlockKey != nil {
		sets = append(sets, "block_key = ?")
		args = append(args, *p.BlockKey)
	}
	if p.Content != nil {
		sets = append(sets, "content = ?")
		args = append(args, *p.Content)
	}
	if p.SortOrder != nil {
		sets = append(sets, "sort_order = ?")
		args = append(args, *p.SortOrder)
	}
	if p.IsActive != nil {
		sets = append(sets, "is_active = ?")
		args = append(args, *p.IsActive)
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC(), id)
		query := "UPDATE content_blocks SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
			return ContentBlock{}, err
		}
	}
	return q.GetContentBlockByID(ctx, id)
}

// DeleteContentBlock removes a block, reporting success via affected rows.
func (q *Queries) DeleteContentBlock(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM content_blocks WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
