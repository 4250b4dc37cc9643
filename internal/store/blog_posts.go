// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// BlogPost is an insights article row. Body is markdown; Tags holds a JSON
// array serialized as text.
type BlogPost struct {
	ID          int64
	Title       string
	Slug        string
	Excerpt     string
	Body        string
	CoverImage  string
	AuthorID    sql.NullInt64
	AuthorName  string
	Tags        string
	Published   bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const blogPostColumns = "id, title, slug, excerpt, body, cover_image, author_id, author_name, tags, published, published_at, created_at, updated_at"

func (q *Queries) listBlogPosts(ctx context.Context, query string, args ...any) ([]BlogPost, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var posts []BlogPost
	for rows.Next() {
		var p BlogPost
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.CoverImage,
			&p.AuthorID, &p.AuthorName, &p.Tags, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

func scanBlogPost(row *sql.Row) (BlogPost, error) {
	var p BlogPost
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Body, &p.CoverImage,
		&p.AuthorID, &p.AuthorName, &p.Tags, &p.Published, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListBlogPosts returns all posts, newest first.
func (q *Queries) ListBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.listBlogPosts(ctx,
		"SELECT "+blogPostColumns+" FROM blog_posts ORDER BY created_at DESC, id DESC")
}

// ListPublishedBlogPosts returns only published posts, newest first.
func (q *Queries) ListPublishedBlogPosts(ctx context.Context) ([]BlogPost, error) {
	return q.listBlogPosts(ctx,
		"SELECT "+blogPostColumns+" FROM blog_posts WHERE published = 1 ORDER BY published_at DESC, id DESC")
}

// GetBlogPostByID returns the post with the given id.
func (q *Queries) GetBlogPostByID(ctx context.Context, id int64) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx,
		"SELECT "+blogPostColumns+" FROM blog_posts WHERE id = ?", id))
}

// GetBlogPostBySlug returns the post with the given slug.
func (q *Queries) GetBlogPostBySlug(ctx context.Context, slug string) (BlogPost, error) {
	return scanBlogPost(q.db.QueryRowContext(ctx,
		"SELECT "+blogPostColumns+" FROM blog_posts WHERE slug = ?", slug))
}

// CreateBlogPostParams holds the fields for creating a post.
type CreateBlogPostParams struct {
	Title      string
	Slug       string
	Excerpt    string
	Body       string
	CoverImage string
	AuthorID   sql.NullInt64
	AuthorName string
	Tags       string // JSON array
	Published  bool
}

// CreateBlogPost inserts a post and re-fetches the inserted row. A post
// created as published gets published_at set to the insert time.
func (q *Queries) CreateBlogPost(ctx context.Context, p CreateBlogPostParams) (BlogPost, error) {
	now := time.Now().UTC()
	publishedAt := sql.NullTime{}
	if p.Published {
		publishedAt = sql.NullTime{Time: now, Valid: true}
	}
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO blog_posts (title, slug, excerpt, body, cover_image, author_id, author_name, tags, published, published_at, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Slug, p.Excerpt, p.Body, p.CoverImage, p.AuthorID, p.AuthorName, p.Tags, p.Published, publishedAt, now, now)
	if err != nil {
		return BlogPost{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return BlogPost{}, err
	}
	return q.GetBlogPostByID(ctx, id)
}

// UpdateBlogPostParams is a patch of post fields; nil members are left
// unchanged.
type UpdateBlogPostParams struct {
	Title      *string
	Slug       *string
	Excerpt    *string
	Body       *string
	CoverImage *string
	AuthorName *string
	Tags       *string
	Published  *bool
}

// UpdateBlogPost applies a partial update and returns the current row.
// Publishing a previously unpublished post stamps published_at.
func (q *Queries) UpdateBlogPost(ctx context.Context, id int64, p UpdateBlogPostParams) (BlogPost, error) {
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
	if p.Excerpt != nil {
		sets = append(sets, "excerpt = ?")
		args = append(args, *p.Excerpt)
	}
	if p.Body != nil {
		sets = append(sets, "body = ?")
		args = append(args, *p.Body)
	}
	if p.CoverImage != nil {
		sets = append(sets, "cover_image = ?")
		args = append(args, *p.CoverImage)
	}
	if p.AuthorName != nil {
		sets = append(sets, "author_name = ?")
		args = append(args, *p.AuthorName)
	}
	if p.Tags != nil {
		sets = append(sets, "tags = ?")
		args = append(args, *p.Tags)
	}
	if p.Published != nil {
		sets = append(sets, "published = ?")
		args = append(args, *p.Published)
		if *p.Published {
			sets = append(sets, "published_at = COALESCE(published_at, ?)")
			args = append(args, time.Now().UTC())
		}
	}
	if len(sets) > 0 {
		sets = append(sets, "updated_at = ?")
		args = append(args, time.Now().UTC(), id)
		query := "UPDATE blog_posts SET " + strings.Join(sets, ", ") + " WHERE id = ?"
		if _, err := q.db.ExecContext(ctx, query, args...); err != nil {
			return BlogPost{}, err
		}
	}
	return q.GetBlogPostByID(ctx, id)
}

// DeleteBlogPost removes a post, reporting success via affected rows.
func (q *Queries) DeleteBlogPost(ctx context.Context, id int64) (bool, error) {
	res, err := q.db.ExecContext(ctx, "DELETE FROM blog_posts WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountBlogPosts returns total and published post counts.
func (q *Queries) CountBlogPosts(ctx context.Context) (total, published int64, err error) {
	if total, err = q.count(ctx, "SELECT COUNT(*) FROM blog_posts"); err != nil {
		return 0, 0, err
	}
	if published, err = q.count(ctx, "SELECT COUNT(*) FROM blog_posts WHERE published = 1"); err != nil {
		return 0, 0, err
	}
	return total, published, nil
}
