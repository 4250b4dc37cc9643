// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"testing"

	"github.com/brightpathhr/brightpath/internal/config"
	"github.com/brightpathhr/brightpath/internal/store"
)

func TestNewMailerDisabledWithoutSMTP(t *testing.T) {
	m := NewMailer(&config.Config{})
	if m.enabled {
		t.Error("mailer should be disabled without SMTP configuration")
	}

	// A disabled mailer drops messages without dialing anything.
	m.NotifyLead(store.Lead{Name: "Quiet"})
	m.NotifyBooking(store.Booking{Name: "Quiet"})
}

func TestNewMailerFromFallsBackToUser(t *testing.T) {
	m := NewMailer(&config.Config{
		SMTPHost:    "mail.example.com",
		SMTPPort:    587,
		SMTPUser:    "notify@example.com",
		NotifyEmail: "sales@example.com",
	})

	if !m.enabled {
		t.Error("mailer should be enabled with host and notify address")
	}
	if m.from != "notify@example.com" {
		t.Errorf("from = %q, want SMTP user fallback", m.from)
	}

	m = NewMailer(&config.Config{
		SMTPHost:    "mail.example.com",
		SMTPFrom:    "no-reply@example.com",
		SMTPUser:    "notify@example.com",
		NotifyEmail: "sales@example.com",
	})
	if m.from != "no-reply@example.com" {
		t.Errorf("from = %q, want explicit SMTPFrom", m.from)
	}
}
