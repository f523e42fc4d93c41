package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noSleep(p *RetryingProvider) *[]time.Duration {
	var slept []time.Duration
	p.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		return ctx.Err()
	}
	return &slept
}

func TestRetryingProvider_TransientThenSuccess(t *testing.T) {
	stub := echoProvider()
	inner := stub.answer
	stub.answer = func(req CompletionRequest) (*CompletionResponse, error) {
		if stub.calls < 3 {
			return nil, &APIError{StatusCode: http.StatusTooManyRequests, Message: "slow down"}
		}
		return inner(req)
	}

	p := NewRetryingProvider(stub, 0, nil)
	slept := noSleep(p)

	resp, err := p.Complete(context.Background(), CompletionRequest{Prompt: "a"})
	require.NoError(t, err)
	assert.Equal(t, "echo: a", resp.Text)
	assert.Equal(t, 3, stub.calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, *slept)
}

func TestRetryingProvider_PermanentFailure(t *testing.T) {
	stub := echoProvider()
	stub.answer = func(req CompletionRequest) (*CompletionResponse, error) {
		return nil, &APIError{StatusCode: http.StatusUnauthorized, Message: "bad key"}
	}

	p := NewRetryingProvider(stub, 5, nil)
	slept := noSleep(p)

	_, err := p.Complete(context.Background(), CompletionRequest{})
	require.Error(t, err)
	assert.Equal(t, 1, stub.calls)
	assert.Empty(t, *slept)
}

func TestRetryingProvider_AllAttemptsExhausted(t *testing.T) {
	stub := echoProvider()
	stub.answer = func(req CompletionRequest) (*CompletionResponse, error) {
		return nil, fmt.Errorf("anthropic API error: %w", &APIError{StatusCode: 503, Message: "overloaded"})
	}

	p := NewRetryingProvider(stub, 3, nil)
	noSleep(p)

	_, err := p.Complete(context.Background(), CompletionRequest{})
	assert.Contains(t, err.Error(), "overloaded")
	assert.Equal(t, 3, stub.calls)
}

func TestRetryingProvider_StopsOnCancel(t *testing.T) {
	stub := echoProvider()
	stub.answer = func(req CompletionRequest) (*CompletionResponse, error) {
		return nil, errors.New("connection reset by peer")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewRetryingProvider(stub, 3, nil)
	noSleep(p)

	_, err := p.Complete(ctx, CompletionRequest{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, stub.calls)
}

func TestRetryingProvider_OpenAIServerError(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error": {"message": "boom", "type": "server_error"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"model": "gpt-4o-mini", "choices": [{"message": {"role": "assistant", "content": "ok"}}]}`))
	}))
	defer server.Close()

	provider, err := NewOpenAIProvider(Config{APIKey: "test-key", BaseURL: server.URL, Model: "gpt-4o-mini"})
	require.NoError(t, err)

	p := NewRetryingProvider(provider, 2, nil)
	noSleep(p)

	resp, err := p.Complete(context.Background(), CompletionRequest{Prompt: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text)
	assert.Equal(t, 2, calls)
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"rate limited", &APIError{StatusCode: 429}, true},
		{"server error", &APIError{StatusCode: 502}, true},
		{"client error", &APIError{StatusCode: 400}, false},
		{"openai 500", &openai.APIError{HTTPStatusCode: 500}, true},
		{"openai 401", fmt.Errorf("openai API error: %w", &openai.APIError{HTTPStatusCode: 401}), false},
		{"openai request error", &openai.RequestError{HTTPStatusCode: 503}, true},
		{"timeout", errors.New("dial tcp: i/o timeout"), true},
		{"refused", errors.New("connection refused"), true},
		{"cancelled", context.Canceled, false},
		{"empty", ErrEmptyResponse, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}
