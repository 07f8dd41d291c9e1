package cache

import (
	"fmt"
	"strings"

	"github.com/RumenDamyanov/go-seo/app/utils/logger"
	"github.com/RumenDamyanov/go-seo/config"
)

// NewKeyValueStore creates a cache store based on configuration
func NewKeyValueStore(cfg *config.Config) KeyValueStore {
	if !cfg.Cache.Enabled {
		return &NoOpStore{}
	}

	storeType := strings.ToLower(cfg.Cache.Store)

	// Default to the in-process store if no store type is specified
	if storeType == "" {
		storeType = "memory"
	}

	switch storeType {
	case "redis":
		return NewRedisStore(cfg.Cache.URL, cfg.Cache.Namespace+":")
	case "sqlite":
		store, err := NewSQLiteStore(cfg.Cache.SQLitePath)
		if err != nil {
			logger.GetLogger().Error(fmt.Sprintf("Failed to open SQLite cache, falling back to memory: %v", err))
			return NewMemoryStore()
		}
		return store
	case "memory":
		return NewMemoryStore()
	case "none":
		return &NoOpStore{}
	default:
		logger.GetLogger().Warnf("Unknown cache store %q, falling back to memory", storeType)
		return NewMemoryStore()
	}
}
