// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"

	"github.com/brightpathhr/brightpath/internal/config"
)

// NewFromConfig builds the configured cache backend. A Redis connection
// failure falls back to the memory cache rather than failing startup.
func NewFromConfig(cfg *config.Config) Cache {
	ttl := time.Duration(cfg.CacheTTL) * time.Second
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	if cfg.UseRedisCache() {
		rc, err := NewRedisCache(cfg.RedisURL, cfg.CachePrefix, ttl)
		if err != nil {
			slog.Warn("redis cache unavailable, using memory cache", "error", err)
		} else {
			slog.Info("using redis cache", "prefix", cfg.CachePrefix)
			return rc
		}
	}

	return NewMemoryCache(ttl)
}
