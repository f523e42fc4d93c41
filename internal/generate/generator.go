package generate

import (
	"fmt"
	"math/rand/v2"

	"github.com/ppiankov/casebench/internal/logging"
	"github.com/ppiankov/casebench/internal/model"
	"go.uber.org/zap"
)

const (
	// MaxRepairAttempts bounds every overlap repair loop
	MaxRepairAttempts = 5

	// extraSharedProbability is the chance an arguable side picks up more
	// input factors beyond its polarity seeds
	extraSharedProbability = 0.7
	maxShared              = 3
)

// Rand is the random source the generator draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a seeded source
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Generator builds scenarios from the factor catalog
type Generator struct {
	catalog []model.Factor
	rng     Rand
	logger  *zap.Logger
}

// NewGenerator creates a generator over the full catalog
func NewGenerator(rng Rand, logger *zap.Logger) *Generator {
	return NewGeneratorWithCatalog(model.Catalog(), rng, logger)
}

// NewGeneratorWithCatalog creates a generator over a custom vocabulary
func NewGeneratorWithCatalog(catalog []model.Factor, rng Rand, logger *zap.Logger) *Generator {
	return &Generator{
		catalog: catalog,
		rng:     rng,
		logger:  logging.OrNop(logger).Named("generate"),
	}
}

// checkComplexity rejects complexities whose size range cannot be drawn.
// Unarguable cases may still shrink when the input leaves too few factors.
func (g *Generator) checkComplexity(complexity int) error {
	if complexity < 1 {
		return fmt.Errorf("complexity must be at least 1, got %d", complexity)
	}
	if _, hi := model.ComplexityBounds(complexity); hi > len(g.catalog) {
		return fmt.Errorf("complexity %d needs up to %d factors, catalog has %d", complexity, hi, len(g.catalog))
	}
	return nil
}

// targetCount draws uniformly from [max(1,c-1), c+1]
func (g *Generator) targetCount(complexity int) int {
	lo, hi := model.ComplexityBounds(complexity)
	return lo + g.rng.IntN(hi-lo+1)
}

// InputFactors draws the input case by rejection sampling over the catalog
func (g *Generator) InputFactors(complexity int) model.FactorSet {
	target := g.targetCount(complexity)
	selected := make([]model.Factor, 0, target)
	used := make(map[int]bool, target)

	for len(selected) < target {
		idx := g.rng.IntN(len(g.catalog))
		if !used[idx] {
			used[idx] = true
			selected = append(selected, g.catalog[idx])
		}
	}

	g.logger.Debug("generated input factors", zap.Int("target", target), zap.Ints("ids", model.NewFactorSet(selected...).IDs()))
	return model.NewFactorSet(selected...)
}

// ComparisonFactors draws one comparison case for the given side.
// Reordered is generated with arguable semantics; the swap happens in Scenario.
func (g *Generator) ComparisonFactors(input model.FactorSet, mode model.GenerationMode, side model.Side, complexity int) model.FactorSet {
	target := g.targetCount(complexity)
	if mode == model.ModeUnarguable {
		return g.unarguable(input, side, target)
	}
	return g.arguable(input, side, target)
}

func (g *Generator) arguable(input model.FactorSet, side model.Side, target int) model.FactorSet {
	inputFactors := input.Factors()
	polarity := model.Plaintiff
	if side == model.TSC2 {
		polarity = model.Defendant
	}

	var seeds []model.Factor
	for _, f := range inputFactors {
		if f.Polarity == polarity {
			seeds = append(seeds, f)
		}
	}

	selected := make([]model.Factor, 0, target)
	chosen := make(map[int]bool)
	add := func(fs ...model.Factor) {
		for _, f := range fs {
			if !chosen[f.ID] {
				chosen[f.ID] = true
				selected = append(selected, f)
			}
		}
	}

	if len(seeds) > 0 {
		n := 1 + g.rng.IntN(min(maxShared, len(seeds)))
		add(g.sample(seeds, n)...)
	}

	var others []model.Factor
	for _, f := range inputFactors {
		if !chosen[f.ID] {
			others = append(others, f)
		}
	}
	if len(others) > 0 && g.rng.Float64() < extraSharedProbability {
		n := 1 + g.rng.IntN(min(maxShared, len(others)))
		add(g.sample(others, n)...)
	}

	for len(selected) < target {
		add(g.catalog[g.rng.IntN(len(g.catalog))])
	}

	g.logger.Debug("generated arguable side",
		zap.Stringer("side", side),
		zap.Int("target", target),
		zap.Int("seeds", len(seeds)),
		zap.Int("size", len(selected)))
	return model.NewFactorSet(selected...)
}

func (g *Generator) unarguable(input model.FactorSet, side model.Side, target int) model.FactorSet {
	var available []model.Factor
	for _, f := range g.catalog {
		if !input.Contains(f.ID) {
			available = append(available, f)
		}
	}

	if len(available) < target {
		g.logger.Warn("not enough disjoint factors, shrinking target",
			zap.Stringer("side", side),
			zap.Int("target", target),
			zap.Int("available", len(available)))
		target = len(available)
	}

	return model.NewFactorSet(g.sample(available, target)...)
}

// sample draws n distinct elements with a partial Fisher-Yates shuffle
func (g *Generator) sample(pool []model.Factor, n int) []model.Factor {
	work := make([]model.Factor, len(pool))
	copy(work, pool)
	if n > len(work) {
		n = len(work)
	}
	for i := 0; i < n; i++ {
		j := i + g.rng.IntN(len(work)-i)
		work[i], work[j] = work[j], work[i]
	}
	return work[:n]
}

// Scenario generates the input case and both comparison cases
func (g *Generator) Scenario(mode model.GenerationMode, complexity int) (model.Scenario, error) {
	if err := g.checkComplexity(complexity); err != nil {
		return model.Scenario{}, err
	}

	input := g.InputFactors(complexity)
	sc := model.Scenario{
		Input:      input,
		Mode:       mode,
		Complexity: complexity,
		Repairs:    make(map[model.Side]model.RepairOutcome),
	}

	if mode == model.ModeReordered {
		a := g.ComparisonFactors(input, model.ModeArguable, model.TSC1, complexity)
		b := g.ComparisonFactors(input, model.ModeArguable, model.TSC2, complexity)
		sc.TSC1, sc.TSC2 = b, a
		g.logger.Debug("swapped comparison cases for reordered mode")
		return sc, nil
	}

	sc.TSC1 = g.ComparisonFactors(input, mode, model.TSC1, complexity)
	sc.TSC2 = g.ComparisonFactors(input, mode, model.TSC2, complexity)

	if mode == model.ModeUnarguable {
		for _, side := range []model.Side{model.TSC1, model.TSC2} {
			set, outcome := g.repairSide(input, sc.Side(side), side, func() model.FactorSet {
				return g.ComparisonFactors(input, mode, side, complexity)
			})
			if side == model.TSC1 {
				sc.TSC1 = set
			} else {
				sc.TSC2 = set
			}
			sc.Repairs[side] = outcome
		}
	}

	return sc, nil
}

// RegenerateSide redraws one comparison case of an existing scenario.
// For reordered mode both sides are redrawn and swapped.
func (g *Generator) RegenerateSide(sc model.Scenario, side model.Side, mode model.GenerationMode) model.Scenario {
	out := sc
	out.Mode = mode
	out.Repairs = make(map[model.Side]model.RepairOutcome)

	if mode == model.ModeReordered {
		a := g.ComparisonFactors(sc.Input, model.ModeArguable, model.TSC1, sc.Complexity)
		b := g.ComparisonFactors(sc.Input, model.ModeArguable, model.TSC2, sc.Complexity)
		out.TSC1, out.TSC2 = b, a
		return out
	}

	set := g.ComparisonFactors(sc.Input, mode, side, sc.Complexity)
	if mode == model.ModeUnarguable {
		var outcome model.RepairOutcome
		set, outcome = g.repairSide(sc.Input, set, side, func() model.FactorSet {
			return g.ComparisonFactors(sc.Input, mode, side, sc.Complexity)
		})
		out.Repairs[side] = outcome
	}
	if side == model.TSC2 {
		out.TSC2 = set
	} else {
		out.TSC1 = set
	}
	return out
}

// repairSide regenerates a side while it overlaps the input, at most
// MaxRepairAttempts times
func (g *Generator) repairSide(input, set model.FactorSet, side model.Side, regenerate func() model.FactorSet) (model.FactorSet, model.RepairOutcome) {
	overlap := input.Intersect(set).Len()
	if overlap == 0 {
		return set, model.RepairOutcome{Status: model.RepairNotNeeded}
	}

	attempts := 0
	for overlap > 0 && attempts < MaxRepairAttempts {
		attempts++
		g.logger.Debug("overlap found, regenerating side",
			zap.Stringer("side", side),
			zap.Int("overlap", overlap),
			zap.Int("attempt", attempts))
		set = regenerate()
		overlap = input.Intersect(set).Len()
	}

	if overlap > 0 {
		g.logger.Warn("could not eliminate overlap",
			zap.Stringer("side", side),
			zap.Int("attempts", attempts),
			zap.Int("residual", overlap))
		return set, model.RepairOutcome{Status: model.RepairGaveUp, Attempts: attempts, Residual: overlap}
	}
	return set, model.RepairOutcome{Status: model.RepairSatisfied, Attempts: attempts}
}
