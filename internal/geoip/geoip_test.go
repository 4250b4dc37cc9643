// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package geoip

import (
	"path/filepath"
	"testing"
)

func TestNewDisabledWithoutPath(t *testing.T) {
	l, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.IsEnabled() {
		t.Error("IsEnabled should be false without a database")
	}
	if err := l.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestNewMissingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.mmdb")
	if _, err := New(path); err == nil {
		t.Error("New should fail for a missing database file")
	}
}

func TestCountryDisabledLookup(t *testing.T) {
	l, err := New("")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	tests := []struct {
		ip   string
		want string
	}{
		{"8.8.8.8", ""},         // public, no database
		{"127.0.0.1", "LOCAL"},  // loopback
		{"::1", "LOCAL"},        // IPv6 loopback
		{"10.1.2.3", "LOCAL"},   // RFC 1918
		{"172.16.0.9", "LOCAL"}, // RFC 1918
		{"192.168.1.50", "LOCAL"},
		{"fe80::1", "LOCAL"}, // link-local
		{"not-an-ip", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := l.Country(tt.ip); got != tt.want {
			t.Errorf("Country(%q) = %q, want %q", tt.ip, got, tt.want)
		}
	}
}
