// Package cache provides per-page on-disk memoization of raw ratings API
// responses, with an alternative Redis backend.
//
// Each pagination offset maps to one cache entry holding the full raw
// page JSON (not just the items). The disk backend stores one file per
// offset under a cache directory, named deterministically so re-runs are
// idempotent:
//
//	cache/page_0.json
//	cache/page_100.json
//	cache/page_200.json
//
// The Redis backend keys entries as fc25:page:<offset> and supports an
// optional TTL (0 means entries never expire, matching the disk backend).
//
// Both backends report hits, misses and errors through Prometheus
// counters labelled by layer.
package cache
