// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"net/http"

	"github.com/mileusna/useragent"

	"github.com/brightpathhr/brightpath/internal/geoip"
	"github.com/brightpathhr/brightpath/internal/util"
)

// IntakeMetadata describes the client that submitted a public form.
type IntakeMetadata struct {
	Browser string
	OS      string
	Device  string
	Country string
}

// IntakeTagger derives browser, OS, device, and country metadata from an
// incoming request for lead and booking rows.
type IntakeTagger struct {
	geo *geoip.Lookup
}

// NewIntakeTagger creates an IntakeTagger. geo may be a disabled lookup.
func NewIntakeTagger(geo *geoip.Lookup) *IntakeTagger {
	return &IntakeTagger{geo: geo}
}

// Tag extracts intake metadata from a request.
func (t *IntakeTagger) Tag(r *http.Request) IntakeMetadata {
	ua := useragent.Parse(r.UserAgent())

	meta := IntakeMetadata{
		Browser: ua.Name,
		OS:      ua.OS,
	}
	if meta.Browser == "" {
		meta.Browser = "Unknown"
	}
	if meta.OS == "" {
		meta.OS = "Unknown"
	}

	switch {
	case ua.Mobile:
		meta.Device = "mobile"
	case ua.Tablet:
		meta.Device = "tablet"
	case ua.Bot:
		meta.Device = "bot"
	default:
		meta.Device = "desktop"
	}

	if t.geo != nil {
		meta.Country = t.geo.Country(util.ClientIP(r))
	}

	return meta
}
