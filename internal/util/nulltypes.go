// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"database/sql"
	"time"
)

// NullStringFrom returns a valid sql.NullString for s; an empty string is
// stored as NULL.
func NullStringFrom(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// NullTimeFrom returns a valid sql.NullTime for t; the zero time is stored
// as NULL.
func NullTimeFrom(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

// NullInt64FromPtr converts an *int64 to sql.NullInt64.
func NullInt64FromPtr(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}

// TimePtr returns a *time.Time for a valid sql.NullTime, nil otherwise.
func TimePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	return &t.Time
}
