// Copyright (c) 2025-2026 BrightPath HR
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides a small string cache used for site settings and
// content-block composition results. A process-local memory cache is the
// default; a Redis-backed implementation is used when configured so
// multiple processes share invalidation.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache stores string values under string keys with a TTL.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
	Delete(ctx context.Context, key string)
	// DeletePrefix removes every key with the given prefix.
	DeletePrefix(ctx context.Context, prefix string)
	Close() error
}

// memoryEntry holds a cached value with its expiration time.
type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryEntry
	ttl  time.Duration
}

// NewMemoryCache creates an in-memory cache with the given default TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		ttl:  ttl,
	}
}

// Get retrieves a value. Expired entries are removed on access.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.data[key]
	c.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.data, key)
		c.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

// Set stores a value with the default TTL.
func (c *MemoryCache) Set(_ context.Context, key, value string) {
	c.mu.Lock()
	c.data[key] = memoryEntry{value: value, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Delete removes a key.
func (c *MemoryCache) Delete(_ context.Context, key string) {
	c.mu.Lock()
	delete(c.data, key)
	c.mu.Unlock()
}

// DeletePrefix removes every key with the given prefix.
func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) {
	c.mu.Lock()
	for k := range c.data {
		if len(k) >= len(prefix) && k[:len(prefix)] == prefix {
			delete(c.data, k)
		}
	}
	c.mu.Unlock()
}

// Close is a no-op for the memory cache.
func (c *MemoryCache) Close() error {
	return nil
}
