package worker

import (
	"context"
	"fmt"

	"github.com/ppiankov/casebench/internal/model"
	"golang.org/x/sync/errgroup"
)

// RowHandler turns one scenario into a run record
type RowHandler interface {
	HandleRow(ctx context.Context, index int, scenario string) (*model.RunRecord, error)
}

// RowJob represents one scenario row
type RowJob struct {
	Index    int
	Scenario string
	Handler  RowHandler
}

// Execute executes the row job
func (j *RowJob) Execute(ctx context.Context) Result {
	record, err := j.Handler.HandleRow(ctx, j.Index, j.Scenario)
	if err != nil {
		return &RowResult{Index: j.Index, Error: err}
	}
	return &RowResult{Index: j.Index, Record: record}
}

// RowResult represents the result of a row job
type RowResult struct {
	Index  int
	Record *model.RunRecord
	Error  error
}

// GetError returns the error from the row result
func (r *RowResult) GetError() error {
	return r.Error
}

// BatchProcessor runs scenario rows concurrently
type BatchProcessor struct {
	handler     RowHandler
	concurrency int
}

// NewBatchProcessor creates a new batch processor
func NewBatchProcessor(handler RowHandler, concurrency int) *BatchProcessor {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &BatchProcessor{
		handler:     handler,
		concurrency: concurrency,
	}
}

// ProcessRows runs every row and returns one result per row in input order.
// Row failures are reported on their result and do not stop other rows.
func (b *BatchProcessor) ProcessRows(ctx context.Context, scenarios []string) []*RowResult {
	if len(scenarios) == 0 {
		return []*RowResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	for i, scenario := range scenarios {
		if !pool.Submit(&RowJob{Index: i, Scenario: scenario, Handler: b.handler}) {
			break
		}
	}

	results := pool.Wait()

	rowResults := make([]*RowResult, len(scenarios))
	for _, result := range results {
		r := result.(*RowResult)
		rowResults[r.Index] = r
	}

	// rows the pool never ran were cut off by cancellation
	for i := range rowResults {
		if rowResults[i] == nil {
			err := ctx.Err()
			if err == nil {
				err = context.Canceled
			}
			rowResults[i] = &RowResult{Index: i, Error: fmt.Errorf("row %d not run: %w", i, err)}
		}
	}

	return rowResults
}

// ProcessRowsFailFast runs rows until the first failure, which cancels the
// remaining rows and is returned. Completed rows keep their results.
func (b *BatchProcessor) ProcessRowsFailFast(ctx context.Context, scenarios []string) ([]*RowResult, error) {
	rowResults := make([]*RowResult, len(scenarios))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, scenario := range scenarios {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			record, err := b.handler.HandleRow(gctx, i, scenario)
			if err != nil {
				rowResults[i] = &RowResult{Index: i, Error: err}
				return fmt.Errorf("row %d: %w", i, err)
			}
			rowResults[i] = &RowResult{Index: i, Record: record}
			return nil
		})
	}

	err := g.Wait()
	return rowResults, err
}
