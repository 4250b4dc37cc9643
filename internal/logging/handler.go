// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors WARN-and-above log
// records into the database-backed event log for auditing.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/brightpathhr/brightpath/internal/store"
)

// Event categories used when mirroring log records.
const (
	CategoryAuth    = "auth"
	CategoryContent = "content"
	CategoryLeads   = "leads"
	CategoryMedia   = "media"
	CategoryMail    = "mail"
	CategorySystem  = "system"
)

// EventLogHandler wraps another slog.Handler and also writes records at or
// above a threshold level to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewEventLogHandler wraps inner so that WARN and ERROR records are also
// recorded as events.
func NewEventLogHandler(inner slog.Handler, queries *store.Queries) *EventLogHandler {
	return &EventLogHandler{inner: inner, queries: queries, level: slog.LevelWarn}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeEvent(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), queries: h.queries, level: h.level}
}

// writeEvent records one log record as an event row. A background context
// is used so the event lands even when the request context is cancelled.
func (h *EventLogHandler) writeEvent(r slog.Record) {
	_ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:    eventLevel(r.Level),
		Category: extractCategory(r),
		Message:  r.Message,
		UserID:   sql.NullInt64{},
		Metadata: extractMetadata(r),
	})
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return store.EventLevelError
	case level >= slog.LevelWarn:
		return store.EventLevelWarning
	default:
		return store.EventLevelInfo
	}
}

// extractCategory uses an explicit "category" attribute when present, and
// otherwise infers one from the message.
func extractCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "login") || strings.Contains(msg, "session") || strings.Contains(msg, "password"):
		return CategoryAuth
	case strings.Contains(msg, "lead") || strings.Contains(msg, "booking"):
		return CategoryLeads
	case strings.Contains(msg, "media") || strings.Contains(msg, "upload") || strings.Contains(msg, "image"):
		return CategoryMedia
	case strings.Contains(msg, "email") || strings.Contains(msg, "smtp"):
		return CategoryMail
	case strings.Contains(msg, "content") || strings.Contains(msg, "cache"):
		return CategoryContent
	default:
		return CategorySystem
	}
}

// extractMetadata collects record attributes into a flat JSON object.
func extractMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	attrs := make(map[string]string, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "category" {
			attrs[a.Key] = a.Value.String()
		}
		return true
	})
	if len(attrs) == 0 {
		return "{}"
	}

	b, err := json.Marshal(attrs)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func parseLevel(name string) slog.Level {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// rootHandler builds the output handler: human-readable text in
// development, JSON lines in production.
func rootHandler(w io.Writer, levelName string, dev bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(levelName)}
	if dev {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}

// Setup builds the process-wide logger: stderr output at the given level,
// mirrored to the event log.
func Setup(queries *store.Queries, levelName string, dev bool) *slog.Logger {
	logger := slog.New(NewEventLogHandler(rootHandler(os.Stderr, levelName, dev), queries))
	slog.SetDefault(logger)
	return logger
}
