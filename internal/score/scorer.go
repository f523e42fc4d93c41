package score

import (
	"github.com/ppiankov/casebench/internal/model"
)

// Scorer compares parsed ground truth with a model's factor claim
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Mismatches counts, per section, claimed factors absent from the actual
// section (hallucinations)
func (s *Scorer) Mismatches(actual model.ParsedCaseFactors, claimed model.DistilledFactorClaim) model.SectionCounts {
	counts := totals(actual, claimed)
	for _, section := range model.Sections {
		counts.Set(section, missingFrom(claimed.Section(section), actual.Section(section)))
	}
	return counts
}

// Weaknesses counts, per section, actual factors the claim omitted
func (s *Scorer) Weaknesses(actual model.ParsedCaseFactors, claimed model.DistilledFactorClaim) model.SectionCounts {
	counts := totals(actual, claimed)
	for _, section := range model.Sections {
		counts.Set(section, missingFrom(actual.Section(section), claimed.Section(section)))
	}
	return counts
}

// Row scores one row. Strength for unarguable rows rewards claiming
// nothing; every other mode penalizes omissions.
func (s *Scorer) Row(actual model.ParsedCaseFactors, claimed model.DistilledFactorClaim, mode model.GenerationMode) model.ScoreRecord {
	mismatches := s.Mismatches(actual, claimed)
	weaknesses := s.Weaknesses(actual, claimed)

	totalFactors := actual.Total()
	totalMismatches := mismatches.Sum()
	totalWeaknesses := weaknesses.Sum()
	orig := mismatches.TotalActual
	dist := mismatches.TotalClaimed

	record := model.ScoreRecord{
		TotalFactors:         totalFactors,
		OriginalFactorCount:  orig,
		DistilledFactorCount: dist,
		MismatchCount:        totalMismatches,
		WeaknessCount:        totalWeaknesses,
		Mismatches:           mismatches,
		Weaknesses:           weaknesses,
		Accuracy:             ratioComplement(totalMismatches, totalFactors),
	}

	if mode == model.ModeUnarguable {
		switch {
		case orig > 0:
			record.Strength = 1 - float64(dist)/float64(orig)
		case dist == 0:
			record.Strength = 1
		default:
			record.Strength = 0
		}
	} else {
		record.Strength = ratioComplement(totalWeaknesses, totalFactors)
	}

	// Literal predicate: only satisfiable when the actual sets are empty.
	record.IsSuccessfulAbstention = totalWeaknesses == 0 && dist == 0

	return record
}

// ratioComplement returns 1 - n/total, or 0 when total is 0
func ratioComplement(n, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 1 - float64(n)/float64(total)
}

func totals(actual model.ParsedCaseFactors, claimed model.DistilledFactorClaim) model.SectionCounts {
	return model.SectionCounts{
		TotalActual:  actual.Total(),
		TotalClaimed: claimed.Total(),
	}
}

// missingFrom counts entries of from whose identity is absent in in
func missingFrom(from, in []model.FactorRef) int {
	present := make(map[string]bool, len(in))
	for _, ref := range in {
		present[ref.Key()] = true
	}

	missing := 0
	for _, ref := range from {
		if !present[ref.Key()] {
			missing++
		}
	}
	return missing
}

// ComputeMismatches counts hallucinated factors with a default scorer
func ComputeMismatches(actual model.ParsedCaseFactors, claimed model.DistilledFactorClaim) model.SectionCounts {
	return NewScorer().Mismatches(actual, claimed)
}

// ComputeWeaknesses counts omitted factors with a default scorer
func ComputeWeaknesses(actual model.ParsedCaseFactors, claimed model.DistilledFactorClaim) model.SectionCounts {
	return NewScorer().Weaknesses(actual, claimed)
}

// ScoreRow scores one row with a default scorer
func ScoreRow(actual model.ParsedCaseFactors, claimed model.DistilledFactorClaim, mode model.GenerationMode) model.ScoreRecord {
	return NewScorer().Row(actual, claimed, mode)
}
