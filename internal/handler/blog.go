// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brightpathhr/brightpath/internal/middleware"
	"github.com/brightpathhr/brightpath/internal/render"
	"github.com/brightpathhr/brightpath/internal/store"
	"github.com/brightpathhr/brightpath/internal/util"
)

// BlogPostResponse represents a blog post in API responses. Body is the
// stored markdown; BodyHTML is rendered and sanitized server-side.
type BlogPostResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt"`
	Body        string     `json:"body"`
	BodyHTML    string     `json:"body_html,omitempty"`
	CoverImage  string     `json:"cover_image"`
	AuthorID    *int64     `json:"author_id,omitempty"`
	AuthorName  string     `json:"author_name"`
	Tags        []string   `json:"tags"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateBlogPostRequest is the request body for creating a blog post.
type CreateBlogPostRequest struct {
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	Excerpt    string   `json:"excerpt"`
	Body       string   `json:"body"`
	CoverImage string   `json:"cover_image"`
	AuthorName string   `json:"author_name"`
	Tags       []string `json:"tags"`
	Published  bool     `json:"published"`
}

// UpdateBlogPostRequest is the request body for updating a blog post.
type UpdateBlogPostRequest struct {
	Title      *string   `json:"title,omitempty"`
	Slug       *string   `json:"slug,omitempty"`
	Excerpt    *string   `json:"excerpt,omitempty"`
	Body       *string   `json:"body,omitempty"`
	CoverImage *string   `json:"cover_image,omitempty"`
	AuthorName *string   `json:"author_name,omitempty"`
	Tags       *[]string `json:"tags,omitempty"`
	Published  *bool     `json:"published,omitempty"`
}

// blogPostToResponse converts a row. renderBody controls whether the
// markdown body is rendered to HTML (detail views only; lists skip it).
func blogPostToResponse(p store.BlogPost, renderBody bool) (BlogPostResponse, error) {
	tags, err := parseJSONArray(p.Tags)
	if err != nil {
		return BlogPostResponse{}, fmt.Errorf("blog post %d: decoding tags: %w", p.ID, err)
	}
	resp := BlogPostResponse{
		ID:         p.ID,
		Title:      p.Title,
		Slug:       p.Slug,
		Excerpt:    p.Excerpt,
		Body:       p.Body,
		CoverImage: p.CoverImage,
		AuthorName: p.AuthorName,
		Tags:       tags,
		Published:  p.Published,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
	if p.AuthorID.Valid {
		resp.AuthorID = &p.AuthorID.Int64
	}
	if p.PublishedAt.Valid {
		resp.PublishedAt = &p.PublishedAt.Time
	}
	if renderBody {
		resp.BodyHTML = render.MarkdownToHTML(p.Body)
	}
	return resp, nil
}

// ListBlogPosts handles GET /api/blog and the admin variant.
func (h *Handler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	var (
		rows []store.BlogPost
		err  error
	)
	if h.includeUnpublished(r) {
		rows, err = h.queries.ListBlogPosts(r.Context())
	} else {
		rows, err = h.queries.ListPublishedBlogPosts(r.Context())
	}
	if err != nil {
		WriteInternalError(w, err)
		return
	}

	out := make([]BlogPostResponse, 0, len(rows))
	for _, p := range rows {
		resp, err := blogPostToResponse(p, false)
		if err != nil {
			WriteInternalError(w, err)
			return
		}
		out = append(out, resp)
	}
	WriteSuccess(w, out)
}

// GetBlogPost handles GET /api/blog/{idOrSlug}.
func (h *Handler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	var (
		post store.BlogPost
		err  error
	)
	if id, convErr := strconv.ParseInt(idOrSlug, 10, 64); convErr == nil {
		post, err = h.queries.GetBlogPostByID(r.Context(), id)
	} else {
		post, err = h.queries.GetBlogPostBySlug(r.Context(), idOrSlug)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Blog post not found")
			return
		}
		WriteInternalError(w, err)
		return
	}

	if !post.Published && !h.isAdminRequest(r) {
		WriteNotFound(w, "Blog post not found")
		return
	}

	resp, err := blogPostToResponse(post, true)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, resp)
}

// CreateBlogPost handles POST /api/admin/blog. The authenticated account
// becomes the author.
func (h *Handler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetAdminUser(r)

	var req CreateBlogPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Title == "" {
		WriteBadRequest(w, "Title is required")
		return
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	}
	if !util.IsValidSlug(req.Slug) {
		WriteBadRequest(w, "Invalid slug")
		return
	}
	if req.AuthorName == "" && user != nil {
		req.AuthorName = user.Name
	}

	params := store.CreateBlogPostParams{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		AuthorName: req.AuthorName,
		Tags:       marshalJSONArray(req.Tags),
		Published:  req.Published,
	}
	if user != nil {
		params.AuthorID = sql.NullInt64{Int64: user.ID, Valid: true}
	}

	post, err := h.queries.CreateBlogPost(r.Context(), params)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	resp, err := blogPostToResponse(post, false)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteCreated(w, resp)
}

// UpdateBlogPost handles PATCH /api/admin/blog/{id}. Authors may only
// touch their own posts; editors and admins may touch any.
func (h *Handler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if !h.canTouchBlogPost(w, r, id) {
		return
	}

	var req UpdateBlogPostRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteBadRequest(w, err.Error())
		return
	}
	if req.Slug != nil && !util.IsValidSlug(*req.Slug) {
		WriteBadRequest(w, "Invalid slug")
		return
	}

	params := store.UpdateBlogPostParams{
		Title:      req.Title,
		Slug:       req.Slug,
		Excerpt:    req.Excerpt,
		Body:       req.Body,
		CoverImage: req.CoverImage,
		AuthorName: req.AuthorName,
		Published:  req.Published,
	}
	if req.Tags != nil {
		tags := marshalJSONArray(*req.Tags)
		params.Tags = &tags
	}

	post, err := h.queries.UpdateBlogPost(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Blog post not found")
			return
		}
		WriteInternalError(w, err)
		return
	}
	resp, err := blogPostToResponse(post, false)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	WriteSuccess(w, resp)
}

// DeleteBlogPost handles DELETE /api/admin/blog/{id}.
func (h *Handler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	if !h.canTouchBlogPost(w, r, id) {
		return
	}

	deleted, err := h.queries.DeleteBlogPost(r.Context(), id)
	if err != nil {
		WriteInternalError(w, err)
		return
	}
	if !deleted {
		WriteNotFound(w, "Blog post not found")
		return
	}
	WriteSuccess(w, nil)
}

// canTouchBlogPost enforces author ownership: accounts without the content
// editing capability may only modify posts they wrote. Writes the response
// on failure.
func (h *Handler) canTouchBlogPost(w http.ResponseWriter, r *http.Request, id int64) bool {
	user := middleware.GetAdminUser(r)
	if user == nil {
		WriteUnauthorized(w)
		return false
	}
	if user.Role.CanEditContent() {
		return true
	}

	post, err := h.queries.GetBlogPostByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Blog post not found")
			return false
		}
		WriteInternalError(w, err)
		return false
	}
	if !post.AuthorID.Valid || post.AuthorID.Int64 != user.ID {
		WriteError(w, http.StatusForbidden, "Insufficient permissions")
		return false
	}
	return true
}
