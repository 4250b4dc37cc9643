// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/brightpathhr/brightpath/internal/cache"
	"github.com/brightpathhr/brightpath/internal/store"
)

func seedBlocks(t *testing.T, q *store.Queries) {
	t.Helper()
	blocks := []store.CreateContentBlockParams{
		{Page: "home", Section: "hero", BlockKey: "headline", Content: `{"text":"Welcome"}`, SortOrder: 2, IsActive: true},
		{Page: "home", Section: "hero", BlockKey: "subline", Content: `{"text":"We help"}`, SortOrder: 1, IsActive: true},
		{Page: "home", Section: "cta", BlockKey: "button", Content: `{"label":"Book"}`, SortOrder: 1, IsActive: true},
		{Page: "home", Section: "hero", BlockKey: "off", Content: `{}`, SortOrder: 9, IsActive: false},
	}
	for _, b := range blocks {
		if _, err := q.CreateContentBlock(context.Background(), b); err != nil {
			t.Fatalf("CreateContentBlock: %v", err)
		}
	}
}

func TestBlocksServesFromCache(t *testing.T) {
	_, q := testDB(t)
	c := cache.NewMemoryCache(time.Minute)
	svc := NewContentService(q, c)
	ctx := context.Background()

	seedBlocks(t, q)

	first, err := svc.Blocks(ctx, "home", "hero")
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("len(first) = %d, want 2", len(first))
	}

	// A row added behind the cache is invisible until invalidation.
	if _, err := q.CreateContentBlock(ctx, store.CreateContentBlockParams{
		Page: "home", Section: "hero", BlockKey: "extra", Content: `{}`, SortOrder: 5, IsActive: true,
	}); err != nil {
		t.Fatalf("CreateContentBlock: %v", err)
	}

	cached, err := svc.Blocks(ctx, "home", "hero")
	if err != nil {
		t.Fatalf("Blocks(cached): %v", err)
	}
	if len(cached) != 2 {
		t.Errorf("len(cached) = %d, want 2 (stale cache expected)", len(cached))
	}

	svc.Invalidate(ctx)

	fresh, err := svc.Blocks(ctx, "home", "hero")
	if err != nil {
		t.Fatalf("Blocks(fresh): %v", err)
	}
	if len(fresh) != 3 {
		t.Errorf("len(fresh) = %d, want 3 after invalidation", len(fresh))
	}
}

func TestBlocksCorruptCacheEntry(t *testing.T) {
	_, q := testDB(t)
	c := cache.NewMemoryCache(time.Minute)
	svc := NewContentService(q, c)
	ctx := context.Background()

	seedBlocks(t, q)

	c.Set(ctx, "content:blocks:home:hero", "{not json")

	blocks, err := svc.Blocks(ctx, "home", "hero")
	if err != nil {
		t.Fatalf("Blocks: %v", err)
	}
	if len(blocks) != 2 {
		t.Errorf("len(blocks) = %d, want 2 (corrupt entry should fall back to DB)", len(blocks))
	}
}

func TestPageContentGroupsBySection(t *testing.T) {
	_, q := testDB(t)
	svc := NewContentService(q, cache.NewMemoryCache(time.Minute))
	ctx := context.Background()

	seedBlocks(t, q)

	grouped, err := svc.PageContent(ctx, "home")
	if err != nil {
		t.Fatalf("PageContent: %v", err)
	}

	if len(grouped) != 2 {
		t.Fatalf("len(grouped) = %d, want 2 sections", len(grouped))
	}
	hero := grouped["hero"]
	if len(hero) != 2 {
		t.Fatalf("len(hero) = %d, want 2", len(hero))
	}
	if hero[0].BlockKey != "subline" || hero[1].BlockKey != "headline" {
		t.Errorf("hero order = [%s, %s], want [subline, headline]", hero[0].BlockKey, hero[1].BlockKey)
	}
	if len(grouped["cta"]) != 1 {
		t.Errorf("len(cta) = %d, want 1", len(grouped["cta"]))
	}
}

func TestValidateBlockContent(t *testing.T) {
	valid := []string{`{}`, `{"text":"hi"}`, `[]`, `"string"`, `42`}
	for _, c := range valid {
		if err := ValidateBlockContent(c); err != nil {
			t.Errorf("ValidateBlockContent(%q) = %v, want nil", c, err)
		}
	}

	invalid := []string{``, `{`, `{"unterminated": `, `not json`}
	for _, c := range invalid {
		if err := ValidateBlockContent(c); err == nil {
			t.Errorf("ValidateBlockContent(%q) = nil, want error", c)
		}
	}
}
