// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the periodic maintenance jobs: session sweeps
// and event log pruning.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/brightpathhr/brightpath/internal/session"
	"github.com/brightpathhr/brightpath/internal/store"
)

// eventRetention is how long event log rows are kept.
const eventRetention = 90 * 24 * time.Hour

// jobTimeout bounds each maintenance run.
const jobTimeout = time.Minute

// Scheduler owns the cron instance and its registered jobs.
type Scheduler struct {
	cron          *cron.Cron
	queries       *store.Queries
	siteSessions  *session.Manager
	adminSessions *session.Manager
}

// New creates a Scheduler with the standard maintenance jobs registered:
// hourly expired-session sweeps for both realms, daily event pruning.
func New(queries *store.Queries, site, admin *session.Manager) (*Scheduler, error) {
	s := &Scheduler{
		cron:          cron.New(),
		queries:       queries,
		siteSessions:  site,
		adminSessions: admin,
	}

	if _, err := s.cron.AddFunc("@hourly", s.sweepSessions); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc("@daily", s.pruneEvents); err != nil {
		return nil, err
	}

	return s, nil
}

// Start launches the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	slog.Info("scheduler started")
}

// Stop stops the cron loop, waiting for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	slog.Info("scheduler stopped")
}

// sweepSessions removes expired rows from both session stores. Reads
// already exclude expired sessions, so this is purely hygiene.
func (s *Scheduler) sweepSessions() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	siteN, err := s.siteSessions.CleanExpired(ctx)
	if err != nil {
		slog.Error("site session sweep failed", "error", err)
	}
	adminN, err := s.adminSessions.CleanExpired(ctx)
	if err != nil {
		slog.Error("admin session sweep failed", "error", err)
	}
	if siteN > 0 || adminN > 0 {
		slog.Info("expired sessions swept", "site", siteN, "admin", adminN)
	}
}

// pruneEvents deletes event log rows older than the retention window.
func (s *Scheduler) pruneEvents() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	cutoff := time.Now().UTC().Add(-eventRetention)
	n, err := s.queries.DeleteEventsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("event prune failed", "error", err)
		return
	}
	if n > 0 {
		slog.Info("old events pruned", "count", n, "cutoff", cutoff)
	}
}
