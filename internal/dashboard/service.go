// Package dashboard owns the cache-aware snapshot pipeline: resolve the
// lookback window to a start date, run the batch normalizer, and memoize
// the result per (catalog, start date).
package dashboard

import (
	"context"
	"log"
	"time"

	"macrodash/internal/cache"
	"macrodash/internal/collector"
	"macrodash/internal/config"
	"macrodash/internal/model"
	"macrodash/internal/normalize"
	"macrodash/internal/snapshot"
)

// Service produces dashboard snapshots for a fixed catalog.
type Service struct {
	Fetcher     collector.Fetcher
	Catalog     model.Catalog
	DetailLabel string
	Cache       *cache.SnapshotCache

	now func() time.Time
}

// NewService wires the snapshot pipeline.
func NewService(fetcher collector.Fetcher, catalog model.Catalog, detailLabel string, c *cache.SnapshotCache) *Service {
	return &Service{
		Fetcher:     fetcher,
		Catalog:     catalog,
		DetailLabel: detailLabel,
		Cache:       c,
		now:         time.Now,
	}
}

// Snapshot returns the dashboard snapshot for a lookback window of the
// given whole years, served from cache when fresh.
func (s *Service) Snapshot(ctx context.Context, years int) snapshot.Snapshot {
	key := s.key(years)
	if snap, ok := s.Cache.Get(key); ok {
		return snap
	}
	return s.refresh(ctx, years, key)
}

// Refresh recomputes the snapshot for the given window, bypassing and
// replacing the cache entry.
func (s *Service) Refresh(ctx context.Context, years int) snapshot.Snapshot {
	return s.refresh(ctx, years, s.key(years))
}

func (s *Service) refresh(ctx context.Context, years int, key cache.Key) snapshot.Snapshot {
	start := config.StartDate(s.now(), years)
	log.Printf("[INFO] refreshing snapshot key=%s source=%s", key, s.Fetcher.Name())
	outcomes := normalize.NormalizeAll(ctx, s.Fetcher, s.Catalog, start)
	snap := snapshot.Build(s.Catalog, outcomes, s.DetailLabel)
	s.Cache.Put(key, snap)
	return snap
}

func (s *Service) key(years int) cache.Key {
	start := config.StartDate(s.now(), years)
	return cache.Key{
		CatalogHash: s.Catalog.Hash(),
		StartDate:   start.Format("2006-01-02"),
	}
}
