// DirDock Core
// Copyright (c) 2026 The DirDock Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of DirDock Core.
//
// DirDock Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// DirDock Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with DirDock Core.  If not, see <http://www.gnu.org/licenses/>.

// Package ttlcache provides a small time-boxed memoization store for
// platform probe results. Entries expire after a fixed TTL or when
// explicitly invalidated. The clock is injectable so expiry is
// deterministic in tests.
package ttlcache

import (
	"time"

	"github.com/DirDockProject/dirdock-core/pkg/helpers/syncutil"
	"github.com/jonboulle/clockwork"
)

// DefaultTTL is how long a probe result stays valid before the
// subprocess probe runs again.
const DefaultTTL = 5 * time.Minute

type entry struct {
	storedAt time.Time
	value    any
}

// Cache is a concurrent-safe TTL memoization store. The zero value is not
// usable; create one with New.
type Cache struct {
	clock   clockwork.Clock
	entries map[string]entry
	ttl     time.Duration
	mu      syncutil.RWMutex
}

// New creates a Cache with the given TTL. A nil clock falls back to the
// real system clock.
func New(ttl time.Duration, clock clockwork.Clock) *Cache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Cache{
		clock:   clock,
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Lookup returns the cached value for key if present and not expired.
func (c *Cache) Lookup(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.clock.Since(e.storedAt) >= c.ttl {
		return nil, false
	}
	return e.value, true
}

// Store saves a value for key, replacing any existing entry. Concurrent
// writers race last-write-wins, which is acceptable: staleness is bounded
// by the TTL.
func (c *Cache) Store(key string, value any) {
	c.mu.Lock()
	c.entries[key] = entry{value: value, storedAt: c.clock.Now()}
	c.mu.Unlock()
}

// Invalidate removes a single entry.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateAll clears every entry, forcing re-probes on next access.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

// Get returns the cached value for key, running produce to fill the cache
// on a miss or after expiry. Producer errors are returned without being
// cached, so a failed probe is retried on the next call.
func Get[T any](c *Cache, key string, produce func() (T, error)) (T, error) {
	if v, ok := c.Lookup(key); ok {
		if typed, isT := v.(T); isT {
			return typed, nil
		}
	}
	value, err := produce()
	if err != nil {
		var zero T
		return zero, err
	}
	c.Store(key, value)
	return value, nil
}
