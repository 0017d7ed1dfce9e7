// Package scraper implements the pagination loop that collects the full
// ratings dataset, page by page, through the page cache.
package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sauravhiremath/ea-fc25-scraper/pkg/cache"
	"github.com/sauravhiremath/ea-fc25-scraper/pkg/ratelimit"
	"github.com/sauravhiremath/ea-fc25-scraper/pkg/ratings"
)

// PageFetcher fetches one raw page by offset. Implemented by pkg/client;
// tests substitute stubs.
type PageFetcher interface {
	FetchPage(ctx context.Context, offset int) ([]byte, error)
}

// Options configures a Scraper.
type Options struct {
	// PageLimit is the page size; a page with fewer items ends the run.
	PageLimit int

	// Limiter paces page fetches. Nil disables pacing.
	Limiter *ratelimit.Limiter
}

// Result is the outcome of a run.
type Result struct {
	// Items is the concatenation of all fetched pages, in offset order.
	Items []json.RawMessage

	// Pages is the number of pages resolved (cache hits included).
	Pages int

	// Complete is false when a fetch error ended the run early. The
	// accumulated items are still valid, just possibly truncated; Err
	// holds the fetch error. A truncated dataset is NOT flagged in the
	// output files themselves, callers must check this field.
	Complete bool

	// Err is the fetch error that truncated the run, nil when Complete.
	Err error
}

// Scraper drives the pagination loop.
type Scraper struct {
	fetcher PageFetcher
	store   cache.Store
	limiter *ratelimit.Limiter
	limit   int
	logger  zerolog.Logger
}

// New creates a scraper over the given fetcher and page store.
func New(fetcher PageFetcher, store cache.Store, opts Options) (*Scraper, error) {
	if fetcher == nil {
		return nil, fmt.Errorf("page fetcher is required")
	}
	if store == nil {
		return nil, fmt.Errorf("page store is required")
	}
	if opts.PageLimit <= 0 {
		return nil, fmt.Errorf("page limit must be positive (got %d)", opts.PageLimit)
	}

	return &Scraper{
		fetcher: fetcher,
		store:   store,
		limiter: opts.Limiter,
		limit:   opts.PageLimit,
		logger:  log.With().Str("component", "scraper").Logger(),
	}, nil
}

// Run collects all pages starting at offset 0 and stepping by the page
// limit. Each page is resolved cache-first unless skipCache is set;
// fetched pages are always persisted, overwriting existing entries.
//
// A fetch error ends the loop early and yields a partial Result with
// Complete=false; cache I/O failures and malformed pages are returned
// as hard errors.
func (s *Scraper) Run(ctx context.Context, skipCache bool) (*Result, error) {
	start := time.Now()

	if err := s.store.Init(ctx); err != nil {
		return nil, fmt.Errorf("init page store: %w", err)
	}

	s.logger.Info().
		Bool("skip_cache", skipCache).
		Int("page_limit", s.limit).
		Msg("Starting ratings scrape")

	result := &Result{Items: []json.RawMessage{}, Complete: true}

	for offset := 0; ; offset += s.limit {
		data, cacheHit, err := s.resolvePage(ctx, offset, skipCache)
		if err != nil {
			var fetchErr *fetchError
			if errors.As(err, &fetchErr) {
				// Keep what was accumulated so far; the caller decides
				// whether a truncated dataset is acceptable.
				s.logger.Warn().
					Err(fetchErr.err).
					Int("offset", offset).
					Int("items_so_far", len(result.Items)).
					Msg("Fetch failed, keeping partial result")
				result.Complete = false
				result.Err = fetchErr.err
				break
			}
			return nil, err
		}

		page, err := ratings.ParsePage(data)
		if err != nil {
			return nil, fmt.Errorf("page at offset %d: %w", offset, err)
		}

		result.Items = append(result.Items, page.Items...)
		result.Pages++

		s.logger.Debug().
			Int("offset", offset).
			Int("items", len(page.Items)).
			Bool("cache_hit", cacheHit).
			Msg("Page resolved")

		if page.Last(s.limit) {
			break
		}
	}

	s.logger.Info().
		Int("pages", result.Pages).
		Int("items", len(result.Items)).
		Bool("complete", result.Complete).
		Dur("duration", time.Since(start)).
		Msg("Scrape finished")

	return result, nil
}

// resolvePage returns the raw page for offset, consulting the cache
// first unless skipCache is set. Freshly fetched pages are persisted
// before being returned.
func (s *Scraper) resolvePage(ctx context.Context, offset int, skipCache bool) ([]byte, bool, error) {
	if !skipCache {
		data, err := s.store.Get(ctx, offset)
		if err == nil {
			return data, true, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			return nil, false, fmt.Errorf("cache get offset %d: %w", offset, err)
		}
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, false, &fetchError{err: err}
		}
	}

	data, err := s.fetcher.FetchPage(ctx, offset)
	if err != nil {
		return nil, false, &fetchError{err: err}
	}

	if err := s.store.Set(ctx, offset, data); err != nil {
		return nil, false, fmt.Errorf("cache set offset %d: %w", offset, err)
	}

	return data, false, nil
}

// fetchError marks errors from the network fetch path, which truncate
// the run instead of failing it.
type fetchError struct {
	err error
}

func (e *fetchError) Error() string {
	return fmt.Sprintf("fetch page: %v", e.err)
}

func (e *fetchError) Unwrap() error {
	return e.err
}
