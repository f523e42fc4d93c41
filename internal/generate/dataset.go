package generate

import (
	"fmt"

	"github.com/ppiankov/casebench/internal/model"
	"go.uber.org/zap"
)

// DatasetSummary counts how many scenarios needed repair
type DatasetSummary struct {
	Scenarios int
	Restarted int // scenarios regenerated at least once
	GaveUp    int // scenarios emitted with residual overlap
}

// Dataset generates caseCount independent scenarios in generation order.
// Unarguable scenarios that still overlap after their side repairs are
// regenerated from scratch, at most MaxRepairAttempts times.
func (g *Generator) Dataset(mode model.GenerationMode, caseCount, complexity int) ([]model.Scenario, DatasetSummary, error) {
	if caseCount < 0 {
		return nil, DatasetSummary{}, fmt.Errorf("case count must not be negative, got %d", caseCount)
	}

	scenarios := make([]model.Scenario, 0, caseCount)
	var summary DatasetSummary

	for i := 0; i < caseCount; i++ {
		sc, err := g.Scenario(mode, complexity)
		if err != nil {
			return nil, summary, fmt.Errorf("scenario %d: %w", i+1, err)
		}

		if mode == model.ModeUnarguable {
			sc, err = g.restartUntilDisjoint(sc, i+1)
			if err != nil {
				return nil, summary, err
			}
			if sc.Restart.Attempts > 0 {
				summary.Restarted++
			}
			if sc.Restart.GaveUp() {
				summary.GaveUp++
			}
		}

		g.logger.Debug("generated scenario",
			zap.Int("index", i+1),
			zap.Int("input", sc.Input.Len()),
			zap.Int("tsc1", sc.TSC1.Len()),
			zap.Int("tsc2", sc.TSC2.Len()))
		scenarios = append(scenarios, sc)
	}

	summary.Scenarios = len(scenarios)
	return scenarios, summary, nil
}

func (g *Generator) restartUntilDisjoint(sc model.Scenario, index int) (model.Scenario, error) {
	overlapping := func(s model.Scenario) bool {
		return s.Overlap(model.TSC1) > 0 || s.Overlap(model.TSC2) > 0
	}

	attempts := 0
	for overlapping(sc) && attempts < MaxRepairAttempts {
		attempts++
		g.logger.Debug("scenario overlaps after generation, restarting",
			zap.Int("index", index),
			zap.Int("tsc1_overlap", sc.Overlap(model.TSC1)),
			zap.Int("tsc2_overlap", sc.Overlap(model.TSC2)),
			zap.Int("attempt", attempts))

		next, err := g.Scenario(sc.Mode, sc.Complexity)
		if err != nil {
			return sc, fmt.Errorf("restart scenario %d: %w", index, err)
		}
		sc = next
	}

	switch {
	case overlapping(sc):
		residual := sc.Overlap(model.TSC1) + sc.Overlap(model.TSC2)
		g.logger.Warn("could not eliminate all overlaps",
			zap.Int("index", index),
			zap.Int("attempts", attempts),
			zap.Int("residual", residual))
		sc.Restart = model.RepairOutcome{Status: model.RepairGaveUp, Attempts: attempts, Residual: residual}
	case attempts > 0:
		sc.Restart = model.RepairOutcome{Status: model.RepairSatisfied, Attempts: attempts}
	default:
		sc.Restart = model.RepairOutcome{Status: model.RepairNotNeeded}
	}
	return sc, nil
}
