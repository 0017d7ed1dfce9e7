package cache

import (
	"context"
	"errors"
)

var (
	// ErrCacheMiss indicates no page is cached for the requested offset.
	ErrCacheMiss = errors.New("cache miss")
)

// Store persists raw page payloads keyed by pagination offset.
//
// Entries are written once on first fetch and never invalidated or
// expired by the scraper itself; a stale entry masks a changed
// server-side page until the cache is cleared manually.
type Store interface {
	// Get returns the raw page payload cached for offset.
	// Returns ErrCacheMiss when no entry exists.
	Get(ctx context.Context, offset int) ([]byte, error)

	// Set persists the raw page payload for offset, overwriting any
	// existing entry.
	Set(ctx context.Context, offset int, data []byte) error

	// Init prepares the backend (e.g. creates the cache directory).
	// Safe to call when already initialized.
	Init(ctx context.Context) error
}
