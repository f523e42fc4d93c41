package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ppiankov/casebench/internal/logging"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// DefaultMaxAttempts is the number of tries RetryingProvider makes by default
const DefaultMaxAttempts = 3

// APIError is a non-200 answer from an HTTP provider
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (%d): %s", e.StatusCode, e.Message)
}

// RetryingProvider retries transient failures with exponential backoff
type RetryingProvider struct {
	next        Provider
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
	logger      *zap.Logger
}

// NewRetryingProvider wraps next. maxAttempts <= 0 uses DefaultMaxAttempts.
func NewRetryingProvider(next Provider, maxAttempts int, logger *zap.Logger) *RetryingProvider {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &RetryingProvider{
		next:        next,
		maxAttempts: maxAttempts,
		baseDelay:   time.Second,
		sleep:       sleepContext,
		logger:      logging.OrNop(logger),
	}
}

// Name returns the wrapped provider's name
func (p *RetryingProvider) Name() string {
	return p.next.Name()
}

// IsAvailable delegates to the wrapped provider
func (p *RetryingProvider) IsAvailable(ctx context.Context) bool {
	return p.next.IsAvailable(ctx)
}

// Complete calls the wrapped provider, retrying transient failures
func (p *RetryingProvider) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	var lastErr error
	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		resp, err := p.next.Complete(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !IsRetryable(err) || attempt == p.maxAttempts-1 {
			break
		}

		backoff := p.baseDelay * time.Duration(1<<uint(attempt))
		p.logger.Warn("retrying completion",
			zap.String("provider", p.next.Name()),
			zap.Int("attempt", attempt+1),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		if err := p.sleep(ctx, backoff); err != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

// IsRetryable reports whether err looks like a transient provider failure:
// rate limiting, a 5xx answer or a dropped connection
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.StatusCode)
	}
	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		return retryableStatus(openaiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return retryableStatus(reqErr.HTTPStatusCode)
	}

	s := strings.ToLower(err.Error())
	return strings.Contains(s, "timeout") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "connection reset")
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || (code >= 500 && code < 600)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
