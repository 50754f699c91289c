package app

import (
	"context"
	"fmt"

	"go.trai.ch/sho/internal/core/domain"
	"go.trai.ch/sho/internal/engine/cache"
	"go.trai.ch/zerr"
)

// CachePrune drops persisted entries whose model file is gone or has changed.
func (a *App) CachePrune(ctx context.Context, opts Options) error {
	cfg, err := a.resolveConfig(opts)
	if err != nil {
		return err
	}

	metricStore, err := a.stores.Open(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	c := cache.New(metricStore, a.stater, a.logger)
	defer func() {
		if err := c.Close(); err != nil {
			a.logger.Error(err)
		}
	}()

	kept, dropped, err := c.Revalidate(ctx)
	if err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("cache pruned: %d kept, %d dropped", kept, dropped))
	return nil
}

// CacheClean deletes the persisted metric cache.
func (a *App) CacheClean(_ context.Context, opts Options) error {
	cfg, err := a.resolveConfig(opts)
	if err != nil {
		return err
	}

	if cfg.Cache.Backend == domain.BackendMemory {
		a.logger.Info("memory cache has nothing to remove")
		return nil
	}

	a.logger.Info(fmt.Sprintf("removing %s cache...", cfg.Cache.Backend))
	if err := a.stores.Remove(cfg.Cache); err != nil {
		return zerr.Wrap(err, "failed to remove metric cache")
	}
	a.logger.Info("removed " + cfg.Cache.Path)
	return nil
}
