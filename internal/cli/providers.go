package cli

import (
	"fmt"
	"strings"

	"github.com/ppiankov/casebench/internal/cache"
	"github.com/ppiankov/casebench/internal/llm"
	"github.com/ppiankov/casebench/internal/model"
	"go.uber.org/zap"
)

// buildProvider layers cache over retries over the raw provider
func buildProvider(c model.LLMConfig, completions cache.Cache, logger *zap.Logger) (llm.Provider, error) {
	config := llm.ConfigFromModel(c)
	config.Logger = logger

	base, err := llm.NewProvider(config)
	if err != nil {
		return nil, fmt.Errorf("%s provider: %w", c.Provider, err)
	}

	var p llm.Provider = llm.NewRetryingProvider(base, llm.DefaultMaxAttempts, logger)
	if completions != nil {
		p = llm.NewCachingProvider(p, completions, config, 0, logger)
	}
	return p, nil
}

// newCompletionCache returns nil when caching is disabled
func newCompletionCache(cfg model.CacheConfig) cache.Cache {
	if !cfg.Enabled {
		return nil
	}
	return cache.NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}

// modelDirName makes a model name safe to use as a directory
func modelDirName(name string) string {
	return strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(name)
}
