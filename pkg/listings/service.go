// Package listings reads partner and gallery rows from the table store
// behind a read-through cache. A storage failure degrades to an empty
// list so pages still render.
package listings

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/pytogo/website/pkg/observability/logger"
	"github.com/pytogo/website/pkg/observability/tracing"
	"github.com/pytogo/website/pkg/store"
)

// Partner is a partner organization row.
type Partner struct {
	Name        string `json:"name"`
	Logo        string `json:"logo"`
	Website     string `json:"website"`
	Description string `json:"description"`
}

// GalleryItem is a gallery entry row linking to hosted media.
type GalleryItem struct {
	Title string `json:"title"`
	Image string `json:"image"`
	URL   string `json:"url"`
}

// Service serves partner and gallery listings.
type Service struct {
	tables store.TableStore
	cache  CacheStore
	ttl    time.Duration
	logger logger.Logger
}

// NewService creates a listings service backed by the given table store
// and cache. A zero TTL falls back to five minutes.
func NewService(tables store.TableStore, cache CacheStore, ttl time.Duration, log logger.Logger) *Service {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		tables: tables,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// Partners returns the current partner listing, never an error.
func (s *Service) Partners(ctx context.Context) []Partner {
	var partners []Partner
	s.load(ctx, store.TablePartners, &partners)
	if partners == nil {
		partners = []Partner{}
	}
	return partners
}

// Galleries returns the current gallery listing, never an error.
func (s *Service) Galleries(ctx context.Context) []GalleryItem {
	var items []GalleryItem
	s.load(ctx, store.TableGalleries, &items)
	if items == nil {
		items = []GalleryItem{}
	}
	return items
}

// load fills out from cache, falling back to the table store and
// refreshing the cache on the way out.
func (s *Service) load(ctx context.Context, table string, out any) {
	_, getSpan := tracing.StartCacheSpan(ctx, tracing.SpanOperationCacheGet, table)
	cached, cacheErr := s.cache.Get(table)
	if cacheErr != nil && !errors.Is(cacheErr, ErrCacheMiss) {
		tracing.RecordError(getSpan, cacheErr)
	}
	getSpan.End()
	if cacheErr == nil {
		if err := json.Unmarshal(cached, out); err == nil {
			return
		}
		s.logger.Warn("discarding corrupt cache entry", "table", table)
	}

	rows, err := s.tables.SelectAll(ctx, table)
	if err != nil {
		s.logger.Warn("listing fetch failed, serving empty list", "table", table, "error", err)
		return
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		s.logger.Error("failed to encode listing rows", "table", table, "error", err)
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Error("failed to decode listing rows", "table", table, "error", err)
		return
	}
	_, setSpan := tracing.StartCacheSpan(ctx, tracing.SpanOperationCacheSet, table)
	if err := s.cache.Set(table, raw, s.ttl); err != nil {
		tracing.RecordError(setSpan, err)
		s.logger.Warn("failed to cache listing", "table", table, "error", err)
	}
	setSpan.End()
}
