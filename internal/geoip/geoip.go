// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package geoip provides IP-to-country lookup backed by a MaxMind
// GeoLite2-Country database. Lookups degrade to an empty country when no
// database is configured.
package geoip

import (
	"fmt"
	"net"
	"os"
	"sync"

	"github.com/oschwald/maxminddb-golang"
)

// privateCIDRs contains parsed CIDR blocks for private IP ranges.
var privateCIDRs []*net.IPNet

func init() {
	privateBlocks := []string{
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		"fc00::/7",  // IPv6 unique local
		"fe80::/10", // IPv6 link-local
	}

	for _, block := range privateBlocks {
		_, cidr, err := net.ParseCIDR(block)
		if err == nil {
			privateCIDRs = append(privateCIDRs, cidr)
		}
	}
}

// Lookup resolves client IPs to 2-letter ISO country codes.
type Lookup struct {
	mu      sync.RWMutex
	db      *maxminddb.Reader
	enabled bool
}

// geoRecord matches the GeoLite2-Country database structure.
type geoRecord struct {
	Country struct {
		ISOCode string `maxminddb:"iso_code"`
	} `maxminddb:"country"`
}

// New creates a Lookup from the given database path. An empty path yields
// a disabled lookup rather than an error.
func New(dbPath string) (*Lookup, error) {
	l := &Lookup{}
	if dbPath == "" {
		return l, nil
	}

	db, err := maxminddb.Open(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("geoip database not found: %s", dbPath)
		}
		return nil, fmt.Errorf("opening geoip database: %w", err)
	}

	l.db = db
	l.enabled = true
	return l, nil
}

// Country returns the 2-letter ISO country code for an IP address, "LOCAL"
// for private and loopback addresses, and "" when the lookup is disabled
// or the address cannot be resolved.
func (l *Lookup) Country(ip string) string {
	parsedIP := net.ParseIP(ip)
	if parsedIP == nil {
		return ""
	}

	if parsedIP.IsLoopback() || isPrivateIP(parsedIP) {
		return "LOCAL"
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	if !l.enabled || l.db == nil {
		return ""
	}

	var record geoRecord
	if err := l.db.Lookup(parsedIP, &record); err != nil {
		return ""
	}
	return record.Country.ISOCode
}

// IsEnabled reports whether country lookups are available.
func (l *Lookup) IsEnabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

// Close releases the database.
func (l *Lookup) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		err := l.db.Close()
		l.db = nil
		l.enabled = false
		return err
	}
	return nil
}

func isPrivateIP(ip net.IP) bool {
	for _, cidr := range privateCIDRs {
		if cidr.Contains(ip) {
			return true
		}
	}
	return false
}
