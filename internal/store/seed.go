// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/brightpathhr/brightpath/internal/auth"
	"github.com/brightpathhr/brightpath/internal/model"
)

// Default admin credentials for development seeding. Production first-run
// setup creates its own admin through the setup flow instead.
const (
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "changeme"
	DefaultAdminName     = "Administrator"
)

// Seed creates a default admin account and starter marketing content.
// It is idempotent: if the default admin already exists, nothing happens.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetAdminUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("default admin already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	admin, err := queries.CreateAdminUser(ctx, CreateAdminUserParams{
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Name:         DefaultAdminName,
		Role:         model.RoleAdmin,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	if err := queries.UpsertSetting(ctx, SettingSetupComplete, "true"); err != nil {
		return fmt.Errorf("marking setup complete: %w", err)
	}
	if err := queries.UpsertSetting(ctx, SettingSiteName, "BrightPath HR"); err != nil {
		return fmt.Errorf("setting site name: %w", err)
	}

	if err := seedContent(ctx, queries); err != nil {
		return fmt.Errorf("seeding content: %w", err)
	}

	slog.Info("seeded default admin user",
		"id", admin.ID,
		"email", admin.Email,
		"password", DefaultAdminPassword,
	)

	return nil
}

// seedContent inserts starter services, testimonials, and homepage content
// blocks so a fresh install renders something meaningful.
func seedContent(ctx context.Context, queries *Queries) error {
	services := []CreateServiceParams{
		{
			Title:     "Talent Acquisition",
			Slug:      "talent-acquisition",
			Summary:   "End-to-end recruiting support, from role definition to offer.",
			Icon:      "users",
			Features:  `["Role scoping","Sourcing strategy","Structured interviews","Offer negotiation"]`,
			SortOrder: 1,
			Published: true,
		},
		{
			Title:     "HR Compliance",
			Slug:      "hr-compliance",
			Summary:   "Policy reviews and audits that keep you ahead of regulation.",
			Icon:      "shield",
			Features:  `["Handbook reviews","Audit preparation","Policy drafting"]`,
			SortOrder: 2,
			Published: true,
		},
		{
			Title:     "Leadership Coaching",
			Slug:      "leadership-coaching",
			Summary:   "One-on-one coaching programs for new and seasoned managers.",
			Icon:      "compass",
			Features:  `["360 assessments","Coaching plans","Quarterly reviews"]`,
			SortOrder: 3,
			Published: true,
		},
	}
	for _, p := range services {
		if _, err := queries.CreateService(ctx, p); err != nil {
			return err
		}
	}

	if _, err := queries.CreateTestimonial(ctx, CreateTestimonialParams{
		AuthorName:  "Dana Whitfield",
		AuthorTitle: "COO",
		Company:     "Harbor Logistics",
		Quote:       "BrightPath rebuilt our hiring process in a quarter. Offer acceptance went from 60% to 85%.",
		Rating:      5,
		SortOrder:   1,
		Published:   true,
	}); err != nil {
		return err
	}

	blocks := []CreateContentBlockParams{
		{
			Page:      "home",
			Section:   "hero",
			BlockKey:  "headline",
			Content:   `{"title":"People operations, handled.","subtitle":"HR consulting for growing teams."}`,
			SortOrder: 1,
			IsActive:  true,
		},
		{
			Page:      "home",
			Section:   "hero",
			BlockKey:  "cta",
			Content:   `{"label":"Book a consultation","href":"/book"}`,
			SortOrder: 2,
			IsActive:  true,
		},
		{
			Page:      "home",
			Section:   "about",
			BlockKey:  "intro",
			Content:   `{"text":"We help companies between 20 and 500 people build HR functions that scale."}`,
			SortOrder: 1,
			IsActive:  true,
		},
	}
	for _, p := range blocks {
		if _, err := queries.CreateContentBlock(ctx, p); err != nil {
			return err
		}
	}

	return nil
}
