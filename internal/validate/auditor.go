package validate

import (
	"fmt"

	"github.com/ppiankov/casebench/internal/extract"
	"github.com/ppiankov/casebench/internal/model"
)

// Severity grades a finding
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding codes
const (
	CodeUnknownFactor = "unknown_factor"
	CodeLabelMismatch = "label_mismatch"
	CodeDuplicate     = "duplicate_factor"
	CodeSize          = "size_out_of_range"
	CodeOverlap       = "unarguable_overlap"
	CodeMissingShared = "missing_shared_factor"
)

// Finding is one problem found in a scenario
type Finding struct {
	Section  model.Section `json:"section"`
	Severity Severity      `json:"severity"`
	Code     string        `json:"code"`
	Message  string        `json:"message"`
}

func (f Finding) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Section, f.Message)
}

// RowFindings groups the findings of one dataset row
type RowFindings struct {
	Row      int       `json:"row"`
	Findings []Finding `json:"findings"`
}

// Auditor checks scenarios against the generation invariants of one
// complexity level
type Auditor struct {
	complexity int
	parser     *extract.CaseFactorParser
}

// NewAuditor creates an auditor for scenarios of the given complexity
func NewAuditor(complexity int) *Auditor {
	return &Auditor{
		complexity: complexity,
		parser:     extract.NewCaseFactorParser(),
	}
}

// Audit checks a generated scenario
func (a *Auditor) Audit(sc model.Scenario) []Finding {
	var findings []Finding
	for _, s := range model.Sections {
		findings = append(findings, a.checkSize(s, setOf(sc, s).Len(), sc.Mode)...)
	}
	return append(findings, a.checkRelations(sc.Input, sc.TSC1, sc.TSC2, sc.Mode)...)
}

// AuditParsed checks factors recovered from a rendered scenario. Mentions are
// resolved against the catalog before the set checks run.
func (a *Auditor) AuditParsed(parsed model.ParsedCaseFactors, mode model.GenerationMode) []Finding {
	var findings []Finding
	sets := make(map[model.Section]model.FactorSet, len(model.Sections))

	for _, s := range model.Sections {
		set, resolved := resolve(s, parsed.Section(s))
		findings = append(findings, resolved...)
		findings = append(findings, a.checkSize(s, set.Len(), mode)...)
		sets[s] = set
	}

	return append(findings, a.checkRelations(sets[model.SectionInput], sets[model.SectionTSC1], sets[model.SectionTSC2], mode)...)
}

// AuditText parses a rendered scenario and audits it
func (a *Auditor) AuditText(text string, mode model.GenerationMode) []Finding {
	return a.AuditParsed(a.parser.Parse(text), mode)
}

// AuditDataset audits every rendered scenario and returns only rows with
// findings
func (a *Auditor) AuditDataset(texts []string, mode model.GenerationMode) []RowFindings {
	var rows []RowFindings
	for i, text := range texts {
		if findings := a.AuditText(text, mode); len(findings) > 0 {
			rows = append(rows, RowFindings{Row: i, Findings: findings})
		}
	}
	return rows
}

func (a *Auditor) checkSize(s model.Section, n int, mode model.GenerationMode) []Finding {
	if a.complexity <= 0 {
		return nil
	}
	lo, hi := model.ComplexityBounds(a.complexity)
	if n >= lo && n <= hi {
		return nil
	}

	severity := SeverityError
	// arguable seeding and unarguable catalog exhaustion are known to stray
	if s != model.SectionInput {
		if (mode != model.ModeUnarguable && n > hi) || (mode == model.ModeUnarguable && n < lo) {
			severity = SeverityWarning
		}
	}
	return []Finding{{
		Section:  s,
		Severity: severity,
		Code:     CodeSize,
		Message:  fmt.Sprintf("%d factors, want %d..%d for complexity %d", n, lo, hi, a.complexity),
	}}
}

func (a *Auditor) checkRelations(input, tsc1, tsc2 model.FactorSet, mode model.GenerationMode) []Finding {
	if mode == model.ModeUnspecified {
		return nil
	}

	var findings []Finding
	// each comparison case is seeded from input factors favoring its outcome
	labels := model.Scenario{Mode: mode}
	sides := []struct {
		section  model.Section
		set      model.FactorSet
		polarity model.Polarity
	}{
		{model.SectionTSC1, tsc1, labels.Outcome(model.TSC1)},
		{model.SectionTSC2, tsc2, labels.Outcome(model.TSC2)},
	}

	for _, side := range sides {
		if mode == model.ModeUnarguable {
			if shared := input.Intersect(side.set); shared.Len() > 0 {
				findings = append(findings, Finding{
					Section:  side.section,
					Severity: SeverityError,
					Code:     CodeOverlap,
					Message:  fmt.Sprintf("shares %v with the input case", shared.Strings()),
				})
			}
			continue
		}

		seeds := input.WithPolarity(side.polarity)
		if seeds.Len() > 0 && seeds.Intersect(side.set).Len() == 0 {
			findings = append(findings, Finding{
				Section:  side.section,
				Severity: SeverityError,
				Code:     CodeMissingShared,
				Message:  fmt.Sprintf("shares no %s factor with the input case", side.polarity),
			})
		}
	}
	return findings
}

// resolve maps mentions to catalog factors and reports the ones that do not
// name a catalog entry exactly
func resolve(s model.Section, refs []model.FactorRef) (model.FactorSet, []Finding) {
	var findings []Finding
	factors := make([]model.Factor, 0, len(refs))
	seen := make(map[int]bool, len(refs))

	for _, ref := range refs {
		f, ok := ref.Catalog()
		if !ok {
			findings = append(findings, Finding{
				Section:  s,
				Severity: SeverityError,
				Code:     CodeUnknownFactor,
				Message:  fmt.Sprintf("%q is not a catalog factor", ref.Text),
			})
			continue
		}
		if seen[f.ID] {
			findings = append(findings, Finding{
				Section:  s,
				Severity: SeverityWarning,
				Code:     CodeDuplicate,
				Message:  fmt.Sprintf("F%d listed more than once", f.ID),
			})
			continue
		}
		seen[f.ID] = true

		if ref.Text != f.String() {
			findings = append(findings, Finding{
				Section:  s,
				Severity: SeverityWarning,
				Code:     CodeLabelMismatch,
				Message:  fmt.Sprintf("%q, catalog says %q", ref.Text, f.String()),
			})
		}
		factors = append(factors, f)
	}
	return model.NewFactorSet(factors...), findings
}

func setOf(sc model.Scenario, s model.Section) model.FactorSet {
	switch s {
	case model.SectionTSC1:
		return sc.TSC1
	case model.SectionTSC2:
		return sc.TSC2
	default:
		return sc.Input
	}
}

// Audit checks a generated scenario at the given complexity
func Audit(sc model.Scenario, complexity int) []Finding {
	return NewAuditor(complexity).Audit(sc)
}

// AuditParsed checks parsed scenario factors at the given complexity
func AuditParsed(parsed model.ParsedCaseFactors, mode model.GenerationMode, complexity int) []Finding {
	return NewAuditor(complexity).AuditParsed(parsed, mode)
}

// HasErrors reports whether any finding is an error
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}
