// Cartographus - Media Server Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cartographus

/*
Package cache provides an in-process, size-bounded LRU cache with TTL.

LRU is generic over key and value types and is safe for concurrent use.
Entries expire lazily on access; CleanupExpired sweeps them eagerly.

	c := cache.NewLRU[int64, string](20000, 7*24*time.Hour)
	c.Add(20, "https://cdn.myanimelist.net/images/anime/13/17405.jpg")
	if url, ok := c.Get(20); ok {
	    // use url
	}

The poster package uses it as the default poster URL cache.
*/
package cache
