// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"

	"github.com/brightpathhr/brightpath/internal/model"
	"github.com/brightpathhr/brightpath/internal/store"
)

// ContentCounts summarizes a published/unpublished entity table.
type ContentCounts struct {
	Total     int64 `json:"total"`
	Published int64 `json:"published"`
}

// DashboardStats is the admin dashboard summary. Lead and booking maps
// carry every known status, defaulted to zero, plus a "total" key.
type DashboardStats struct {
	Leads       map[string]int64 `json:"leads"`
	Bookings    map[string]int64 `json:"bookings"`
	Services    ContentCounts    `json:"services"`
	CaseStudies ContentCounts    `json:"case_studies"`
	BlogPosts   ContentCounts    `json:"blog_posts"`
}

// StatsService folds database counts into the dashboard summary.
type StatsService struct {
	queries *store.Queries
}

// NewStatsService creates a StatsService.
func NewStatsService(queries *store.Queries) *StatsService {
	return &StatsService{queries: queries}
}

// LeadStats returns lead counts keyed by status, zero-defaulted, with a
// "total" entry.
func (s *StatsService) LeadStats(ctx context.Context) (map[string]int64, error) {
	rows, err := s.queries.LeadStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting leads: %w", err)
	}
	return foldStatusCounts(model.LeadStatuses(), rows), nil
}

// BookingStats returns booking counts keyed by status, zero-defaulted,
// with a "total" entry.
func (s *StatsService) BookingStats(ctx context.Context) (map[string]int64, error) {
	rows, err := s.queries.BookingStatusCounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting bookings: %w", err)
	}
	return foldStatusCounts(model.BookingStatuses(), rows), nil
}

// Dashboard assembles the full admin dashboard summary.
func (s *StatsService) Dashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats
	var err error

	if stats.Leads, err = s.LeadStats(ctx); err != nil {
		return DashboardStats{}, err
	}
	if stats.Bookings, err = s.BookingStats(ctx); err != nil {
		return DashboardStats{}, err
	}

	if stats.Services.Total, stats.Services.Published, err = s.queries.CountServices(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("counting services: %w", err)
	}
	if stats.CaseStudies.Total, stats.CaseStudies.Published, err = s.queries.CountCaseStudies(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("counting case studies: %w", err)
	}
	if stats.BlogPosts.Total, stats.BlogPosts.Published, err = s.queries.CountBlogPosts(ctx); err != nil {
		return DashboardStats{}, fmt.Errorf("counting blog posts: %w", err)
	}

	return stats, nil
}

// foldStatusCounts turns GROUP BY rows into a fixed-key map: every known
// status present (zero when missing), unknown statuses still counted, and
// "total" summed across all rows.
func foldStatusCounts(known []string, rows []store.StatusCount) map[string]int64 {
	out := make(map[string]int64, len(known)+1)
	for _, status := range known {
		out[status] = 0
	}
	var total int64
	for _, row := range rows {
		out[row.Status] += row.Count
		total += row.Count
	}
	out["total"] = total
	return out
}
