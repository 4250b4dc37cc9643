// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/brightpathhr/brightpath/internal/config"
	"github.com/brightpathhr/brightpath/internal/store"
)

// Mailer sends plain-text notification emails for new leads and bookings.
// Sending is best-effort: a delivery failure is logged and never blocks
// the request that captured the submission.
type Mailer struct {
	host    string
	port    int
	user    string
	pass    string
	from    string
	to      string
	enabled bool
}

// NewMailer creates a Mailer from the SMTP configuration. When SMTP is not
// configured the mailer silently drops every message.
func NewMailer(cfg *config.Config) *Mailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &Mailer{
		host:    cfg.SMTPHost,
		port:    cfg.SMTPPort,
		user:    cfg.SMTPUser,
		pass:    cfg.SMTPPass,
		from:    from,
		to:      cfg.NotifyEmail,
		enabled: cfg.MailEnabled(),
	}
}

// NotifyLead sends a notification for a newly captured lead. Runs in a
// goroutine so the HTTP response is never delayed by SMTP.
func (m *Mailer) NotifyLead(lead store.Lead) {
	if !m.enabled {
		return
	}

	subject := fmt.Sprintf("New lead: %s", lead.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "A new lead was submitted on %s.\r\n\r\n", lead.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "Name:    %s\r\n", lead.Name)
	fmt.Fprintf(&b, "Email:   %s\r\n", lead.Email)
	if lead.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\r\n", lead.Phone)
	}
	if lead.Company != "" {
		fmt.Fprintf(&b, "Company: %s\r\n", lead.Company)
	}
	if lead.Source != "" {
		fmt.Fprintf(&b, "Source:  %s\r\n", lead.Source)
	}
	if lead.Message != "" {
		fmt.Fprintf(&b, "\r\nMessage:\r\n%s\r\n", lead.Message)
	}

	go m.send(subject, b.String(), "lead", lead.ID)
}

// NotifyBooking sends a notification for a newly requested booking.
func (m *Mailer) NotifyBooking(booking store.Booking) {
	if !m.enabled {
		return
	}

	subject := fmt.Sprintf("New booking request: %s", booking.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "A new consultation booking was requested on %s.\r\n\r\n", booking.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "Name:    %s\r\n", booking.Name)
	fmt.Fprintf(&b, "Email:   %s\r\n", booking.Email)
	if booking.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\r\n", booking.Phone)
	}
	if booking.Company != "" {
		fmt.Fprintf(&b, "Company: %s\r\n", booking.Company)
	}
	if booking.ServiceType != "" {
		fmt.Fprintf(&b, "Service: %s\r\n", booking.ServiceType)
	}
	fmt.Fprintf(&b, "Date:    %s", booking.PreferredDate)
	if booking.PreferredTime != "" {
		fmt.Fprintf(&b, " at %s", booking.PreferredTime)
	}
	b.WriteString("\r\n")
	if booking.Notes != "" {
		fmt.Fprintf(&b, "\r\nNotes:\r\n%s\r\n", booking.Notes)
	}

	go m.send(subject, b.String(), "booking", booking.ID)
}

// send delivers one message over SMTP with PLAIN auth when credentials
// are configured.
func (m *Mailer) send(subject, body, kind string, id int64) {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, m.to, subject, body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.pass, m.host)
	}

	if err := smtp.SendMail(addr, auth, m.from, []string{m.to}, []byte(msg)); err != nil {
		slog.Error("notification email failed", "error", err, "kind", kind, "id", id)
		return
	}
	slog.Info("notification email sent", "kind", kind, "id", id)
}
