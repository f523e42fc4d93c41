package model

import (
	"fmt"
	"sort"
	"strings"
)

// GenerationMode controls how a comparison case relates to the input case
type GenerationMode int

const (
	ModeUnarguable GenerationMode = iota
	ModeArguable
	ModeReordered

	// ModeUnspecified marks a scored file whose name carries no known mode.
	// It scores like the arguable modes and reports no abstention.
	ModeUnspecified GenerationMode = -1
)

func (m GenerationMode) String() string {
	switch m {
	case ModeUnarguable:
		return "unarguable"
	case ModeArguable:
		return "arguable"
	case ModeReordered:
		return "reordered"
	case ModeUnspecified:
		return "unspecified"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ExternalName is the name used on the command line and in file names
func (m GenerationMode) ExternalName() string {
	if m == ModeUnarguable {
		return "non-arguable"
	}
	return m.String()
}

// LookupMode maps an external or internal mode name to a GenerationMode
func LookupMode(name string) (GenerationMode, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "non-arguable", "unarguable":
		return ModeUnarguable, true
	case "arguable":
		return ModeArguable, true
	case "reordered":
		return ModeReordered, true
	}
	return 0, false
}

// ScenarioMode resolves a mode name for single-scenario generation.
// Unknown names fall back to reordered.
func ScenarioMode(name string) GenerationMode {
	if m, ok := LookupMode(name); ok {
		return m
	}
	return ModeReordered
}

// DatasetMode resolves a mode name for dataset generation.
// Unknown names fall back to unarguable.
func DatasetMode(name string) GenerationMode {
	if m, ok := LookupMode(name); ok {
		return m
	}
	return ModeUnarguable
}

// ScoringMode resolves a mode name for scoring. Unknown names are
// ModeUnspecified, never unarguable.
func ScoringMode(name string) GenerationMode {
	if m, ok := LookupMode(name); ok {
		return m
	}
	return ModeUnspecified
}

// Side selects one of the two comparison cases
type Side int

const (
	TSC1 Side = iota + 1
	TSC2
)

func (s Side) String() string {
	if s == TSC2 {
		return "TSC2"
	}
	return "TSC1"
}

// FactorSet is a set of catalog factors keyed by id
type FactorSet struct {
	byID map[int]Factor
}

// NewFactorSet builds a set from factors, ignoring duplicates
func NewFactorSet(factors ...Factor) FactorSet {
	s := FactorSet{byID: make(map[int]Factor, len(factors))}
	for _, f := range factors {
		s.byID[f.ID] = f
	}
	return s
}

// FactorSetFromIDs builds a set from catalog ids. Unknown ids are an error.
func FactorSetFromIDs(ids ...int) (FactorSet, error) {
	factors := make([]Factor, 0, len(ids))
	for _, id := range ids {
		f, ok := LookupFactor(id)
		if !ok {
			return FactorSet{}, fmt.Errorf("unknown factor id F%d", id)
		}
		factors = append(factors, f)
	}
	return NewFactorSet(factors...), nil
}

func (s FactorSet) Len() int { return len(s.byID) }

func (s FactorSet) Contains(id int) bool {
	_, ok := s.byID[id]
	return ok
}

// Factors returns the members ascending by id
func (s FactorSet) Factors() []Factor {
	out := make([]Factor, 0, len(s.byID))
	for _, f := range s.byID {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// IDs returns the member ids ascending
func (s FactorSet) IDs() []int {
	factors := s.Factors()
	ids := make([]int, len(factors))
	for i, f := range factors {
		ids[i] = f.ID
	}
	return ids
}

// Intersect returns the factors present in both sets
func (s FactorSet) Intersect(other FactorSet) FactorSet {
	out := NewFactorSet()
	for id, f := range s.byID {
		if other.Contains(id) {
			out.byID[id] = f
		}
	}
	return out
}

// Equal reports whether both sets hold the same ids
func (s FactorSet) Equal(other FactorSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.byID {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

// WithPolarity returns the subset favoring one side
func (s FactorSet) WithPolarity(p Polarity) FactorSet {
	out := NewFactorSet()
	for id, f := range s.byID {
		if f.Polarity == p {
			out.byID[id] = f
		}
	}
	return out
}

// Strings returns the canonical strings ascending by id
func (s FactorSet) Strings() []string {
	factors := s.Factors()
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = f.String()
	}
	return out
}

// RepairStatus is the result of a bounded overlap repair loop
type RepairStatus int

const (
	RepairNotNeeded RepairStatus = iota
	RepairSatisfied
	RepairGaveUp
)

func (s RepairStatus) String() string {
	switch s {
	case RepairSatisfied:
		return "satisfied"
	case RepairGaveUp:
		return "gave_up"
	default:
		return "not_needed"
	}
}

// RepairOutcome records how a side (or a whole scenario) met the zero-overlap
// requirement. Attempts counts regenerations. Residual is the overlap left
// when the loop gave up.
type RepairOutcome struct {
	Status   RepairStatus `json:"status"`
	Attempts int          `json:"attempts"`
	Residual int          `json:"residual,omitempty"`
}

// GaveUp reports whether the bound was exhausted with overlap remaining
func (r RepairOutcome) GaveUp() bool { return r.Status == RepairGaveUp }

// Scenario is one generated input case and its two comparison cases
type Scenario struct {
	Input      FactorSet
	TSC1       FactorSet
	TSC2       FactorSet
	Mode       GenerationMode
	Complexity int

	// Repairs holds the overlap repair outcome per side (Unarguable only)
	Repairs map[Side]RepairOutcome
	// Restart is the whole-scenario restart outcome from dataset generation
	Restart RepairOutcome
}

// Side returns the comparison set for s
func (sc Scenario) Side(s Side) FactorSet {
	if s == TSC2 {
		return sc.TSC2
	}
	return sc.TSC1
}

// Outcome returns the outcome label rendered for a comparison case.
// Reordered scenarios flip the default Plaintiff/Defendant assignment.
func (sc Scenario) Outcome(s Side) Polarity {
	flipped := sc.Mode == ModeReordered
	if (s == TSC1) != flipped {
		return Plaintiff
	}
	return Defendant
}

// Overlap returns |Input ∩ side|
func (sc Scenario) Overlap(s Side) int {
	return sc.Input.Intersect(sc.Side(s)).Len()
}

// ComplexityBounds returns the inclusive size range for a complexity
func ComplexityBounds(complexity int) (int, int) {
	lo := complexity - 1
	if lo < 1 {
		lo = 1
	}
	return lo, complexity + 1
}
