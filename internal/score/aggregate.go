package score

import "github.com/ppiankov/casebench/internal/model"

// Aggregator accumulates row scores for one batch pass. It is not safe for
// concurrent use.
type Aggregator struct {
	mode        model.GenerationMode
	rows        int
	accuracySum float64
	strengthSum float64
	report      model.AggregateReport
}

// NewAggregator starts an empty batch for a mode
func NewAggregator(mode model.GenerationMode) *Aggregator {
	return &Aggregator{mode: mode}
}

// Add folds one row into the running totals
func (a *Aggregator) Add(r model.ScoreRecord) {
	a.rows++
	a.accuracySum += r.Accuracy * 100
	a.strengthSum += r.Strength * 100

	a.report.TotalFactors += r.TotalFactors
	a.report.OriginalFactors += r.OriginalFactorCount
	a.report.DistilledFactors += r.DistilledFactorCount
	a.report.TotalMismatches += r.MismatchCount
	a.report.TotalWeaknesses += r.WeaknessCount
	if r.IsSuccessfulAbstention {
		a.report.SuccessfulAbstention++
	}
}

// Report returns the batch summary. Means are unweighted over rows.
func (a *Aggregator) Report() model.AggregateReport {
	out := a.report
	out.Mode = a.mode
	out.Rows = a.rows

	if a.rows > 0 {
		out.MeanAccuracyPct = a.accuracySum / float64(a.rows)
		out.MeanStrengthPct = a.strengthSum / float64(a.rows)
	}

	if a.mode == model.ModeUnarguable {
		out.HasAbstention = true
		if a.rows > 0 {
			out.AbstentionRatioPct = float64(out.SuccessfulAbstention) / float64(a.rows) * 100
		}
	}
	return out
}

// Aggregate summarizes a complete batch of row scores
func Aggregate(records []model.ScoreRecord, mode model.GenerationMode) model.AggregateReport {
	agg := NewAggregator(mode)
	for _, r := range records {
		agg.Add(r)
	}
	return agg.Report()
}
