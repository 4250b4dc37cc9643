// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"

	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/store"
)

func TestFoldStatusCounts(t *testing.T) {
	known := []string{"new", "contacted", "qualified"}
	rows := []store.StatusCount{
		{Status: "new", Count: 4},
		{Status: "legacy", Count: 2}, // unknown status still counted
	}

	got := foldStatusCounts(known, rows)

	if got["new"] != 4 {
		t.Errorf("new = %d, want 4", got["new"])
	}
	// Known statuses with no rows are present at zero.
	if v, ok := got["contacted"]; !ok || v != 0 {
		t.Errorf("contacted = %d (present=%v), want 0 present", v, ok)
	}
	if v, ok := got["qualified"]; !ok || v != 0 {
		t.Errorf("qualified = %d (present=%v), want 0 present", v, ok)
	}
	if got["legacy"] != 2 {
		t.Errorf("legacy = %d, want 2", got["legacy"])
	}
	if got["total"] != 6 {
		t.Errorf("total = %d, want 6", got["total"])
	}
}

func TestFoldStatusCountsEmpty(t *testing.T) {
	got := foldStatusCounts([]string{"pending", "confirmed"}, nil)

	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (two statuses + total)", len(got))
	}
	for k, v := range got {
		if v != 0 {
			t.Errorf("%s = %d, want 0", k, v)
		}
	}
}

func TestDashboard(t *testing.T) {
	_, q := testDB(t)
	svc := NewStatsService(q)
	ctx := context.Background()

	if _, err := q.CreateLead(ctx, store.CreateLeadParams{Name: "L", Email: "l@example.com"}); err != nil {
		t.Fatalf("CreateLead: %v", err)
	}
	if _, err := q.CreateService(ctx, store.CreateServiceParams{
		Title: "Svc", Slug: "svc", Features: "[]", Published: true,
	}); err != nil {
		t.Fatalf("CreateService: %v", err)
	}
	if _, err := q.CreateService(ctx, store.CreateServiceParams{
		Title: "Draft", Slug: "draft", Features: "[]",
	}); err != nil {
		t.Fatalf("CreateService: %v", err)
	}

	stats, err := svc.Dashboard(ctx)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}

	if stats.Leads[model.LeadStatusNew] != 1 {
		t.Errorf("leads new = %d, want 1", stats.Leads[model.LeadStatusNew])
	}
	if stats.Leads["total"] != 1 {
		t.Errorf("leads total = %d, want 1", stats.Leads["total"])
	}
	// Every known status appears even with no rows.
	for _, s := range model.LeadStatuses() {
		if _, ok := stats.Leads[s]; !ok {
			t.Errorf("lead status %q missing from stats", s)
		}
	}
	for _, s := range model.BookingStatuses() {
		if _, ok := stats.Bookings[s]; !ok {
			t.Errorf("booking status %q missing from stats", s)
		}
	}
	if stats.Bookings["total"] != 0 {
		t.Errorf("bookings total = %d, want 0", stats.Bookings["total"])
	}

	if stats.Services.Total != 2 || stats.Services.Published != 1 {
		t.Errorf("services = %+v, want total 2 published 1", stats.Services)
	}
	if stats.BlogPosts.Total != 0 {
		t.Errorf("blog posts total = %d, want 0", stats.BlogPosts.Total)
	}
}
