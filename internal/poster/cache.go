// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

package poster

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/animerec/internal/cache"
)

// Cache stores resolved poster URLs by anime id.
type Cache interface {
	// Get returns the cached URL and true on a hit.
	Get(ctx context.Context, animeID int64) (string, bool, error)

	// Set stores url for animeID.
	Set(ctx context.Context, animeID int64, url string) error

	// Close releases resources held by the cache.
	Close() error
}

// Cache backend names.
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendNone   = "none"
)

// NewCache creates the cache for backend. path is only used by badger.
func NewCache(backend, path string, size int, ttl time.Duration) (Cache, error) {
	switch backend {
	case BackendMemory, "":
		return NewMemoryCache(size, ttl), nil
	case BackendBadger:
		opts := badger.DefaultOptions(path).WithLogger(nil)
		db, err := badger.Open(opts)
		if err != nil {
			return nil, fmt.Errorf("open poster cache at %s: %w", path, err)
		}
		return NewBadgerCache(db, ttl, true), nil
	case BackendNone:
		return noopCache{}, nil
	default:
		return nil, fmt.Errorf("unknown poster cache backend %q", backend)
	}
}

// MemoryCache is an in-process LRU cache with TTL.
type MemoryCache struct {
	lru *cache.LRU[int64, string]
}

// NewMemoryCache creates a MemoryCache holding up to size entries.
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: cache.NewLRU[int64, string](size, ttl)}
}

// Get implements Cache.
func (c *MemoryCache) Get(_ context.Context, animeID int64) (string, bool, error) {
	url, ok := c.lru.Get(animeID)
	return url, ok, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(_ context.Context, animeID int64, url string) error {
	c.lru.Add(animeID, url)
	return nil
}

// CleanupExpired drops expired entries and returns how many were removed.
func (c *MemoryCache) CleanupExpired() int {
	return c.lru.CleanupExpired()
}

// Close implements Cache.
func (c *MemoryCache) Close() error {
	c.lru.Clear()
	return nil
}

const badgerKeyPrefix = "poster:"

// badgerEntry is the stored value.
type badgerEntry struct {
	URL       string    `json:"url"`
	FetchedAt time.Time `json:"fetched_at"`
}

// BadgerCache persists poster URLs in BadgerDB with per-entry TTL.
type BadgerCache struct {
	db     *badger.DB
	ttl    time.Duration
	owning bool
}

// NewBadgerCache wraps db. When owning is true Close also closes db.
func NewBadgerCache(db *badger.DB, ttl time.Duration, owning bool) *BadgerCache {
	return &BadgerCache{db: db, ttl: ttl, owning: owning}
}

func badgerKey(animeID int64) []byte {
	return []byte(badgerKeyPrefix + strconv.FormatInt(animeID, 10))
}

// Get implements Cache.
func (c *BadgerCache) Get(_ context.Context, animeID int64) (string, bool, error) {
	var entry badgerEntry
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(badgerKey(animeID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entry)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get poster %d: %w", animeID, err)
	}
	return entry.URL, true, nil
}

// Set implements Cache.
func (c *BadgerCache) Set(_ context.Context, animeID int64, url string) error {
	data, err := json.Marshal(badgerEntry{URL: url, FetchedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("marshal poster entry: %w", err)
	}
	return c.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry(badgerKey(animeID), data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Close implements Cache.
func (c *BadgerCache) Close() error {
	if !c.owning {
		return nil
	}
	return c.db.Close()
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64) (string, bool, error) { return "", false, nil }
func (noopCache) Set(context.Context, int64, string) error         { return nil }
func (noopCache) Close() error                                     { return nil }
