package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ppiankov/casebench/internal/dataset"
	"github.com/ppiankov/casebench/internal/llm"
	"github.com/ppiankov/casebench/internal/logging"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/ppiankov/casebench/internal/worker"
	"go.uber.org/zap"
)

// Distiller request settings used for every row
const (
	DistillerTemperature = 0.6
	DistillerMaxTokens   = 1000
)

// Options tunes a Runner
type Options struct {
	Workers  int
	FailFast bool
	Limiter  *worker.Limiter // nil disables pacing
	Logger   *zap.Logger
}

// Runner sends scenarios through the argument model and then the distiller
type Runner struct {
	argument  llm.Provider
	distiller llm.Provider
	runLog    *dataset.RunLog
	limiter   *worker.Limiter
	workers   int
	failFast  bool
	logger    *zap.Logger

	// completed rows wait here until every earlier row is logged
	mu      sync.Mutex
	next    int
	pending map[int]*model.RunRecord
	done    map[int]bool
	logErr  error
}

// NewRunner creates a runner. runLog may be nil to skip the response log.
func NewRunner(argument, distiller llm.Provider, runLog *dataset.RunLog, opts Options) *Runner {
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Runner{
		argument:  argument,
		distiller: distiller,
		runLog:    runLog,
		limiter:   opts.Limiter,
		workers:   workers,
		failFast:  opts.FailFast,
		logger:    logging.OrNop(opts.Logger),
	}
}

// Run processes every scenario and returns the successful records in input
// order. Without fail-fast, row failures are joined into the returned error
// and the remaining rows still run.
func (r *Runner) Run(ctx context.Context, scenarios []string) ([]model.RunRecord, error) {
	r.mu.Lock()
	r.next = 0
	r.pending = make(map[int]*model.RunRecord)
	r.done = make(map[int]bool)
	r.logErr = nil
	r.mu.Unlock()

	processor := worker.NewBatchProcessor(r, r.workers)

	var results []*worker.RowResult
	var runErr error
	if r.failFast {
		results, runErr = processor.ProcessRowsFailFast(ctx, scenarios)
	} else {
		results = processor.ProcessRows(ctx, scenarios)
		var rowErrs []error
		for _, res := range results {
			if res.Error != nil {
				rowErrs = append(rowErrs, fmt.Errorf("row %d: %w", res.Index, res.Error))
			}
		}
		runErr = errors.Join(rowErrs...)
	}

	records := make([]model.RunRecord, 0, len(results))
	for _, res := range results {
		if res != nil && res.Record != nil {
			records = append(records, *res.Record)
		}
	}

	r.mu.Lock()
	r.flushPendingLocked()
	logErr := r.logErr
	r.mu.Unlock()
	if logErr != nil {
		return records, errors.Join(runErr, logErr)
	}
	return records, runErr
}

// HandleRow runs one scenario through both models
func (r *Runner) HandleRow(ctx context.Context, index int, scenario string) (*model.RunRecord, error) {
	record, err := r.process(ctx, index, scenario)
	r.complete(index, record)
	if err != nil {
		r.logger.Warn("row failed", zap.Int("row", index), zap.Error(err))
		return nil, err
	}
	return record, nil
}

func (r *Runner) process(ctx context.Context, index int, scenario string) (*model.RunRecord, error) {
	r.logger.Debug("processing scenario", zap.Int("row", index))

	if err := r.pace(ctx, r.argument); err != nil {
		return nil, err
	}
	argument, err := r.argument.Complete(ctx, llm.CompletionRequest{
		System: llm.ArgumentDeveloperTask,
		Prompt: scenario,
	})
	if err != nil {
		return nil, fmt.Errorf("argument: %w", err)
	}

	if err := r.pace(ctx, r.distiller); err != nil {
		return nil, err
	}
	distilled, err := r.distiller.Complete(ctx, llm.CompletionRequest{
		System:      llm.FactorDistillerTask,
		Prompt:      llm.ExtractLastJSONBlock(argument.Text),
		MaxTokens:   DistillerMaxTokens,
		Temperature: llm.Float32(DistillerTemperature),
	})
	if err != nil {
		return nil, fmt.Errorf("distill: %w", err)
	}

	r.logger.Debug("scenario done",
		zap.Int("row", index),
		zap.Int("argument_tokens", argument.TokensUsed),
		zap.Int("distiller_tokens", distilled.TokensUsed),
		zap.Bool("cached", argument.Cached && distilled.Cached),
	)

	return &model.RunRecord{
		RunID:            uuid.NewString(),
		Timestamp:        time.Now().UTC(),
		Scenario:         scenario,
		Argument:         argument.Text,
		DistilledFactors: distilled.Text,
	}, nil
}

func (r *Runner) pace(ctx context.Context, p llm.Provider) error {
	if r.limiter == nil {
		return nil
	}
	if err := r.limiter.Wait(ctx, p.Name()); err != nil {
		return fmt.Errorf("rate limit %s: %w", p.Name(), err)
	}
	return nil
}

// complete marks a row finished and appends every row that is now in order.
// record is nil for failed rows.
func (r *Runner) complete(index int, record *model.RunRecord) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.done[index] = true
	if record != nil {
		r.pending[index] = record
	}

	for r.done[r.next] {
		if rec, ok := r.pending[r.next]; ok && r.runLog != nil && r.logErr == nil {
			r.appendLocked(rec)
		}
		delete(r.pending, r.next)
		delete(r.done, r.next)
		r.next++
	}
}

// flushPendingLocked logs rows stranded behind rows that never ran
func (r *Runner) flushPendingLocked() {
	indexes := make([]int, 0, len(r.pending))
	for i := range r.pending {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for _, i := range indexes {
		if r.runLog != nil && r.logErr == nil {
			r.appendLocked(r.pending[i])
		}
		delete(r.pending, i)
	}
}

func (r *Runner) appendLocked(rec *model.RunRecord) {
	if _, err := r.runLog.Append(*rec); err != nil {
		r.logErr = fmt.Errorf("append run log: %w", err)
	}
}
