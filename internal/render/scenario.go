// Package render serializes generated scenarios into the prompt template
// that models receive and that extract.ParseCaseFactors reads back.
package render

import (
	"strings"

	"github.com/ppiankov/casebench/internal/model"
)

// Separator joins factor lines inside a section: a comma, an escaped
// newline (backslash + 'n') and a real tab. Existing datasets carry exactly
// these bytes, so it must not be "fixed" to a real newline.
const Separator = ",\\n\t"

const (
	HeaderInput = "Input Scenario"
	HeaderTSC1  = "TSC 1"
	HeaderTSC2  = "TSC 2"
)

// Scenario renders the three sections of a scenario. Factors are listed
// ascending by id; each comparison case carries its outcome line.
func Scenario(sc model.Scenario) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(HeaderInput)
	b.WriteString(" \n\t")
	b.WriteString(strings.Join(sc.Input.Strings(), Separator))
	b.WriteString("\n\n")

	writeComparison(&b, HeaderTSC1, sc.Outcome(model.TSC1), sc.TSC1)
	b.WriteString("\n")
	writeComparison(&b, HeaderTSC2, sc.Outcome(model.TSC2), sc.TSC2)

	return b.String()
}

func writeComparison(b *strings.Builder, header string, outcome model.Polarity, set model.FactorSet) {
	b.WriteString(header)
	b.WriteString("\noutcome ")
	b.WriteString(outcome.String())
	b.WriteString("\n\t")
	b.WriteString(strings.Join(set.Strings(), Separator))
	b.WriteString("\n")
}

// Scenarios renders each scenario in order
func Scenarios(scenarios []model.Scenario) []string {
	out := make([]string, len(scenarios))
	for i, sc := range scenarios {
		out[i] = Scenario(sc)
	}
	return out
}
