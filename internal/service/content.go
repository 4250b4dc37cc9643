// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/brightpathhr/brightpath/internal/cache"
	"github.com/brightpathhr/brightpath/internal/store"
)

// cacheKeyPrefix namespaces content-block entries in the shared cache.
const contentCachePrefix = "content:"

// ContentService composes content blocks for page rendering. Read results
// are cached; every mutation drops the whole content namespace.
type ContentService struct {
	queries *store.Queries
	cache   cache.Cache
}

// NewContentService creates a ContentService.
func NewContentService(queries *store.Queries, c cache.Cache) *ContentService {
	return &ContentService{queries: queries, cache: c}
}

// Blocks returns active content blocks, optionally filtered by page and
// section, ordered by sort_order.
func (s *ContentService) Blocks(ctx context.Context, page, section string) ([]store.ContentBlock, error) {
	key := contentCachePrefix + "blocks:" + page + ":" + section

	if cached, ok := s.cache.Get(ctx, key); ok {
		var blocks []store.ContentBlock
		if err := json.Unmarshal([]byte(cached), &blocks); err == nil {
			return blocks, nil
		}
		// A corrupt cache entry falls through to the database.
		s.cache.Delete(ctx, key)
	}

	blocks, err := s.queries.ListActiveContentBlocks(ctx, page, section)
	if err != nil {
		return nil, fmt.Errorf("listing content blocks: %w", err)
	}

	if encoded, err := json.Marshal(blocks); err == nil {
		s.cache.Set(ctx, key, string(encoded))
	}

	return blocks, nil
}

// PageContent returns a page's active blocks grouped by section. Each group
// is re-sorted by sort_order even though the query already orders rows, so
// the grouping stays correct for callers that fetch blocks another way.
func (s *ContentService) PageContent(ctx context.Context, page string) (map[string][]store.ContentBlock, error) {
	blocks, err := s.Blocks(ctx, page, "")
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]store.ContentBlock)
	for _, b := range blocks {
		grouped[b.Section] = append(grouped[b.Section], b)
	}
	for section := range grouped {
		group := grouped[section]
		sort.SliceStable(group, func(i, j int) bool {
			if group[i].SortOrder != group[j].SortOrder {
				return group[i].SortOrder < group[j].SortOrder
			}
			return group[i].ID < group[j].ID
		})
	}

	return grouped, nil
}

// Invalidate drops all cached content-block results. Called after any
// content-block mutation.
func (s *ContentService) Invalidate(ctx context.Context) {
	s.cache.DeletePrefix(ctx, contentCachePrefix)
}

// ValidateBlockContent rejects content payloads that are not well-formed
// JSON. Guarding the write path keeps the read path from ever hitting a
// parse failure on stored content.
func ValidateBlockContent(content string) error {
	if !json.Valid([]byte(content)) {
		return fmt.Errorf("content is not valid JSON")
	}
	return nil
}
