package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/casebench/internal/cache"
	"github.com/ppiankov/casebench/internal/logging"
	"go.uber.org/zap"
)

// CachingProvider serves repeated identical requests from a cache
type CachingProvider struct {
	next   Provider
	cache  cache.Cache
	config Config
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachingProvider wraps next. config supplies the defaults used to build
// cache keys for requests that leave fields unset.
func NewCachingProvider(next Provider, c cache.Cache, config Config, ttl time.Duration, logger *zap.Logger) *CachingProvider {
	return &CachingProvider{
		next:   next,
		cache:  c,
		config: config,
		ttl:    ttl,
		logger: logging.OrNop(logger),
	}
}

// Name returns the wrapped provider's name
func (p *CachingProvider) Name() string {
	return p.next.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *CachingProvider) IsAvailable(ctx context.Context) bool {
	return p.next.IsAvailable(ctx)
}

// Complete returns a cached answer when one exists, otherwise calls through
// and stores the answer. Errors are never cached.
func (p *CachingProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	modelName, maxTokens, temperature := p.config.resolve(req, "")
	key := cache.CompletionKey(p.next.Name(), modelName, temperature, maxTokens, req.System, req.Prompt)

	if data, ok := p.cache.Get(key); ok {
		var resp CompletionResponse
		if err := json.Unmarshal(data, &resp); err == nil {
			resp.Cached = true
			p.logger.Debug("completion cache hit", zap.String("provider", p.next.Name()), zap.String("model", modelName))
			return &resp, nil
		}
		_ = p.cache.Delete(key)
	}

	resp, err := p.next.Complete(ctx, req)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := p.cache.Set(key, data, p.ttl); err != nil {
			p.logger.Warn("completion cache write failed", zap.Error(err))
		}
	}
	return resp, nil
}
