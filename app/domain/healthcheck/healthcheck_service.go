package healthcheck

import (
	"context"
	"time"

	"github.com/mileusna/crontab"

	"github.com/RumenDamyanov/go-seo/app/domain/ai"
	"github.com/RumenDamyanov/go-seo/app/domain/generationlog"
	"github.com/RumenDamyanov/go-seo/app/infrastructure/cache"
	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/app/utils/metrics"
	"github.com/RumenDamyanov/go-seo/config/environment_variables"
)

const historyRetention = 30 * 24 * time.Hour

type HealthcheckCrontabService struct {
	Registry *ai.Registry
	Store    cache.KeyValueStore
	History  *generationlog.Service
}

func NewService(registry *ai.Registry, store cache.KeyValueStore, history *generationlog.Service) *HealthcheckCrontabService {
	return &HealthcheckCrontabService{
		Registry: registry,
		Store:    store,
		History:  history,
	}
}

func (hs *HealthcheckCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) {
	hs.CheckProviders(ctx)
	hs.CheckCacheStore(ctx)
	// Check every 2 minutes instead of every minute
	ctab.AddJob("*/2 * * * *", func() {
		hs.CheckProviders(ctx)
		hs.CheckCacheStore(ctx)
		environment_variables.EnvironmentVariables.LoadFromEnv()
	})
	// Housekeeping once an hour
	ctab.AddJob("0 * * * *", func() {
		hs.PurgeExpiredEntries(ctx)
		hs.PruneHistory(ctx)
	})
}

// CheckProviders sweeps the fallback chain and records how many backends
// can currently serve requests
func (hs *HealthcheckCrontabService) CheckProviders(ctx context.Context) {
	available := 0
	for _, summary := range hs.Registry.ProviderSummaries() {
		if summary.Available {
			available++
		}
	}
	metrics.SetProvidersAvailable(available)
	if available == 0 {
		logger.GetLogger().Warn("No AI provider is currently available, generation falls back to templates")
	}
}

func (hs *HealthcheckCrontabService) CheckCacheStore(ctx context.Context) {
	if err := hs.Store.HealthCheck(ctx); err != nil {
		logger.GetLogger().Warnf("Cache store health check failed: %v", err)
	}
}

// PurgeExpiredEntries drops expired rows from stores that keep them
// around, like SQLite
func (hs *HealthcheckCrontabService) PurgeExpiredEntries(ctx context.Context) {
	purgeable, ok := hs.Store.(cache.PurgeableStore)
	if !ok {
		return
	}
	purged, err := purgeable.PurgeExpired(ctx)
	if err != nil {
		logger.GetLogger().Warnf("Failed to purge expired cache entries: %v", err)
		return
	}
	if purged > 0 {
		logger.GetLogger().Infof("Purged %d expired cache entries", purged)
	}
}

func (hs *HealthcheckCrontabService) PruneHistory(ctx context.Context) {
	deleted, err := hs.History.Prune(ctx, historyRetention)
	if err != nil {
		logger.GetLogger().Warnf("Failed to prune generation history: %v", err)
		return
	}
	if deleted > 0 {
		logger.GetLogger().Infof("Pruned %d generation history records", deleted)
	}
}
