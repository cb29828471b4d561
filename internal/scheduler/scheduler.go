// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package scheduler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/azure-estates/estates-go/internal/cache"
	"github.com/azure-estates/estates-go/internal/geoip"
	"github.com/azure-estates/estates-go/internal/store"
)

// CacheKeyProjects is the cache entry holding the serialized catalog.
const CacheKeyProjects = "projects:list"

// Scheduler runs the periodic maintenance jobs: catalog cache refresh,
// GeoIP database reload and the demo catalog reset.
type Scheduler struct {
	store  *store.Store
	cache  cache.Cacher
	geo    *geoip.Lookup
	cron   *cron.Cron
	logger *slog.Logger

	demoMode bool
}

// New creates a scheduler. geo may be nil when GeoIP is disabled.
func New(st *store.Store, c cache.Cacher, geo *geoip.Lookup, demoMode bool, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:    st,
		cache:    c,
		geo:      geo,
		cron:     cron.New(),
		logger:   logger,
		demoMode: demoMode,
	}
}

// Start registers the jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Keep the catalog cache warm every five minutes.
	if _, err := s.cron.AddFunc("*/5 * * * *", func() {
		if err := s.RefreshCatalogCache(context.Background()); err != nil {
			s.logger.Error("failed to refresh catalog cache", "error", err)
		}
	}); err != nil {
		return err
	}

	if s.geo != nil {
		// Pick up replaced GeoLite2 database files once a day.
		if _, err := s.cron.AddFunc("30 3 * * *", func() {
			if err := s.geo.Reload(); err != nil {
				s.logger.Warn("geoip database reload failed", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	if s.demoMode {
		// Demo installs restore the showcase catalog nightly.
		if _, err := s.cron.AddFunc("0 4 * * *", func() {
			if err := s.ResetDemoCatalog(context.Background()); err != nil {
				s.logger.Error("failed to reset demo catalog", "error", err)
			}
		}); err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// RefreshCatalogCache loads the catalog from the store and rewrites the
// cache entry.
func (s *Scheduler) RefreshCatalogCache(ctx context.Context) error {
	projects := s.store.Projects(ctx)

	data, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, CacheKeyProjects, data, 0); err != nil {
		return err
	}

	s.logger.Debug("catalog cache refreshed", "projects", len(projects))
	return nil
}

// ResetDemoCatalog restores the seed catalog and invalidates the cache.
func (s *Scheduler) ResetDemoCatalog(ctx context.Context) error {
	start := time.Now()
	if err := s.store.ResetCatalog(ctx); err != nil {
		return err
	}
	if err := s.cache.Delete(ctx, CacheKeyProjects); err != nil {
		s.logger.Warn("failed to invalidate catalog cache after reset", "error", err)
	}

	s.logger.Info("demo catalog reset", "took", time.Since(start))
	return nil
}
