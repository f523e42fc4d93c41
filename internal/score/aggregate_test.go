package score

import (
	"testing"

	"github.com/ppiankov/casebench/internal/model"
)

func TestAggregate_MeansAreUnweighted(t *testing.T) {
	records := []model.ScoreRecord{
		{Accuracy: 1, Strength: 0.5, TotalFactors: 10, OriginalFactorCount: 10, DistilledFactorCount: 8, WeaknessCount: 5},
		{Accuracy: 0.5, Strength: 1, TotalFactors: 2, OriginalFactorCount: 2, DistilledFactorCount: 3, MismatchCount: 1},
	}

	report := Aggregate(records, model.ModeArguable)

	if report.Rows != 2 {
		t.Errorf("Expected 2 rows, got %d", report.Rows)
	}
	if !almostEqual(report.MeanAccuracyPct, 75) {
		t.Errorf("Expected mean accuracy 75%%, got %v", report.MeanAccuracyPct)
	}
	if !almostEqual(report.MeanStrengthPct, 75) {
		t.Errorf("Expected mean strength 75%%, got %v", report.MeanStrengthPct)
	}
	if report.TotalFactors != 12 || report.OriginalFactors != 12 || report.DistilledFactors != 11 {
		t.Errorf("Unexpected factor sums: %+v", report)
	}
	if report.TotalMismatches != 1 || report.TotalWeaknesses != 5 {
		t.Errorf("Unexpected error sums: %+v", report)
	}
	if report.HasAbstention {
		t.Error("Expected no abstention ratio outside unarguable mode")
	}
}

func TestAggregate_UnarguableAbstentionRatio(t *testing.T) {
	records := []model.ScoreRecord{
		{IsSuccessfulAbstention: true, Strength: 1},
		{Strength: 0},
		{Strength: 0.5},
		{IsSuccessfulAbstention: true, Strength: 1},
	}

	report := Aggregate(records, model.ModeUnarguable)

	if !report.HasAbstention {
		t.Fatal("Expected abstention ratio in unarguable mode")
	}
	if report.SuccessfulAbstention != 2 {
		t.Errorf("Expected 2 abstentions, got %d", report.SuccessfulAbstention)
	}
	if !almostEqual(report.AbstentionRatioPct, 50) {
		t.Errorf("Expected abstention ratio 50%%, got %v", report.AbstentionRatioPct)
	}
	if !almostEqual(report.MeanStrengthPct, 62.5) {
		t.Errorf("Expected mean strength 62.5%%, got %v", report.MeanStrengthPct)
	}
}

func TestAggregate_Empty(t *testing.T) {
	report := Aggregate(nil, model.ModeUnarguable)

	if report.Rows != 0 || report.MeanAccuracyPct != 0 || report.AbstentionRatioPct != 0 {
		t.Errorf("Expected zero report, got %+v", report)
	}
	if report.Mode != model.ModeUnarguable {
		t.Errorf("Expected mode to be carried, got %v", report.Mode)
	}
}

func TestAggregator_Incremental(t *testing.T) {
	agg := NewAggregator(model.ModeReordered)
	agg.Add(model.ScoreRecord{Accuracy: 0.2})
	first := agg.Report()
	agg.Add(model.ScoreRecord{Accuracy: 0.4})
	second := agg.Report()

	if !almostEqual(first.MeanAccuracyPct, 20) || !almostEqual(second.MeanAccuracyPct, 30) {
		t.Errorf("Expected 20%% then 30%%, got %v then %v", first.MeanAccuracyPct, second.MeanAccuracyPct)
	}
}

func TestAggregate_NoAbstentionOutsideUnarguable(t *testing.T) {
	records := []model.ScoreRecord{{IsSuccessfulAbstention: true, Strength: 1}}

	for _, mode := range []model.GenerationMode{model.ModeArguable, model.ModeReordered, model.ModeUnspecified} {
		report := Aggregate(records, mode)
		if report.HasAbstention {
			t.Errorf("Expected no abstention ratio in %s mode", mode)
		}
		if report.AbstentionRatioPct != 0 {
			t.Errorf("Expected zero abstention ratio in %s mode, got %v", mode, report.AbstentionRatioPct)
		}
	}
}
