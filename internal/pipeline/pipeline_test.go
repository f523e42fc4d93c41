package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/casebench/internal/dataset"
	"github.com/ppiankov/casebench/internal/llm"
	"github.com/ppiankov/casebench/internal/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider answers from a function and records every request
type scriptedProvider struct {
	name   string
	answer func(req llm.CompletionRequest) (string, error)

	mu       sync.Mutex
	requests []llm.CompletionRequest
}

func (p *scriptedProvider) Name() string { return p.name }

func (p *scriptedProvider) IsAvailable(ctx context.Context) bool { return true }

func (p *scriptedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	p.mu.Lock()
	p.requests = append(p.requests, req)
	p.mu.Unlock()

	text, err := p.answer(req)
	if err != nil {
		return nil, err
	}
	return &llm.CompletionResponse{Text: text, Model: p.name, TokensUsed: 10}, nil
}

func arguer() *scriptedProvider {
	return &scriptedProvider{
		name: "arguer",
		answer: func(req llm.CompletionRequest) (string, error) {
			// later rows answer first
			if strings.HasSuffix(req.Prompt, "0") {
				time.Sleep(20 * time.Millisecond)
			}
			return "draft\n```json\n{\"draft\": 1}\n```\nfinal\n```json\n{\"for\": \"" + req.Prompt + "\"}\n```", nil
		},
	}
}

func distiller() *scriptedProvider {
	return &scriptedProvider{
		name: "distiller",
		answer: func(req llm.CompletionRequest) (string, error) {
			return `{"Input Case": {}, "TSC1": {}, "TSC2": {}}`, nil
		},
	}
}

func TestRunner_Run(t *testing.T) {
	arg, dist := arguer(), distiller()
	runLog := dataset.NewRunLog(filepath.Join(t.TempDir(), "responses.json"))
	runner := NewRunner(arg, dist, runLog, Options{Workers: 3, Limiter: worker.NewLimiter(0, 1)})

	scenarios := []string{"scenario 0", "scenario 1", "scenario 2", "scenario 3"}
	records, err := runner.Run(context.Background(), scenarios)
	require.NoError(t, err)
	require.Len(t, records, 4)

	for i, rec := range records {
		assert.Equal(t, scenarios[i], rec.Scenario)
		assert.NotEmpty(t, rec.RunID)
		assert.Contains(t, rec.Argument, "draft", "the full argument answer is kept")
		assert.Equal(t, `{"Input Case": {}, "TSC1": {}, "TSC2": {}}`, rec.DistilledFactors)
	}

	logged := runLog.Records()
	require.Len(t, logged, 4)
	for i, rec := range logged {
		assert.Equal(t, scenarios[i], rec.Scenario, "run log keeps input order")
	}

	for _, req := range dist.requests {
		assert.Equal(t, llm.FactorDistillerTask, req.System)
		assert.True(t, strings.HasPrefix(req.Prompt, `{"for": "scenario `), "distiller gets the last JSON block, got %q", req.Prompt)
		assert.Equal(t, DistillerMaxTokens, req.MaxTokens)
		require.NotNil(t, req.Temperature)
		assert.InDelta(t, DistillerTemperature, *req.Temperature, 1e-6)
	}
	for _, req := range arg.requests {
		assert.Equal(t, llm.ArgumentDeveloperTask, req.System)
		assert.Nil(t, req.Temperature, "argument calls use the configured temperature")
	}
}

func TestRunner_Run_PlainAnswerGoesToDistillerVerbatim(t *testing.T) {
	arg := &scriptedProvider{name: "arguer", answer: func(req llm.CompletionRequest) (string, error) {
		return llm.NoCommonFactorAnswer, nil
	}}
	dist := distiller()
	runner := NewRunner(arg, dist, nil, Options{})

	_, err := runner.Run(context.Background(), []string{"s"})
	require.NoError(t, err)
	require.Len(t, dist.requests, 1)
	assert.Equal(t, llm.NoCommonFactorAnswer, dist.requests[0].Prompt)
}

func TestRunner_Run_RowFailureDoesNotStopOthers(t *testing.T) {
	arg := &scriptedProvider{name: "arguer", answer: func(req llm.CompletionRequest) (string, error) {
		if req.Prompt == "bad" {
			return "", errors.New("upstream 500")
		}
		return "ok", nil
	}}
	runLog := dataset.NewRunLog(filepath.Join(t.TempDir(), "responses.json"))
	runner := NewRunner(arg, distiller(), runLog, Options{Workers: 2})

	records, err := runner.Run(context.Background(), []string{"a", "bad", "c"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
	assert.Contains(t, err.Error(), "upstream 500")

	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].Scenario)
	assert.Equal(t, "c", records[1].Scenario)
	assert.Equal(t, 2, runLog.Len())
}

func TestRunner_Run_FailFast(t *testing.T) {
	arg := &scriptedProvider{name: "arguer", answer: func(req llm.CompletionRequest) (string, error) {
		if req.Prompt == "s0" {
			return "", errors.New("quota exceeded")
		}
		return "ok", nil
	}}
	runner := NewRunner(arg, distiller(), nil, Options{Workers: 1, FailFast: true})

	scenarios := make([]string, 10)
	for i := range scenarios {
		scenarios[i] = "s" + string(rune('0'+i))
	}

	records, err := runner.Run(context.Background(), scenarios)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.Less(t, len(records), 10)
	assert.Less(t, len(arg.requests), 10)
}

func TestRunner_Run_DistillerError(t *testing.T) {
	dist := &scriptedProvider{name: "distiller", answer: func(req llm.CompletionRequest) (string, error) {
		return "", llm.ErrEmptyResponse
	}}
	runner := NewRunner(arguer(), dist, nil, Options{})

	records, err := runner.Run(context.Background(), []string{"scenario 1"})
	assert.Empty(t, records)
	assert.ErrorIs(t, err, llm.ErrEmptyResponse)
	assert.Contains(t, err.Error(), "distill")
}
