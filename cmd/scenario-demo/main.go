// Demo program that generates one scenario per mode, audits it, and scores
// an answer that repeats the ground truth exactly
package main

import (
	"fmt"
	"strings"

	"github.com/ppiankov/casebench/internal/extract"
	"github.com/ppiankov/casebench/internal/generate"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/ppiankov/casebench/internal/render"
	"github.com/ppiankov/casebench/internal/score"
	"github.com/ppiankov/casebench/internal/validate"
	"go.uber.org/zap"
)

const complexity = 4

func main() {
	fmt.Println("=== Scenario Generation Demo ===")
	fmt.Println()

	gen := generate.NewGenerator(generate.NewRand(42), zap.NewNop())
	modes := []model.GenerationMode{model.ModeUnarguable, model.ModeArguable, model.ModeReordered}

	for _, mode := range modes {
		fmt.Printf("Mode: %s\n", mode.ExternalName())
		fmt.Println(strings.Repeat("-", 60))

		sc, err := gen.Scenario(mode, complexity)
		if err != nil {
			fmt.Printf("  Generation error: %v\n\n", err)
			continue
		}

		text := render.Scenario(sc)
		fmt.Println(text)

		findings := validate.Audit(sc, complexity)
		if len(findings) == 0 {
			fmt.Println("  ✓ Scenario passes the audit")
		} else {
			fmt.Printf("  ⚠️  %d findings\n", len(findings))
			for _, f := range findings {
				fmt.Printf("     - %s\n", f)
			}
		}

		actual := extract.ParseCaseFactors(text)
		claim := extract.ParseDistilledClaims(echoAnswer(sc))
		record := score.ScoreRow(actual, claim, mode)
		fmt.Printf("  Echo answer: %d factors, %d mismatches, %d weaknesses, strength %.2f\n\n",
			record.TotalFactors, record.MismatchCount, record.WeaknessCount, record.Strength)
	}
}

// echoAnswer writes the scenario's own factors in the distiller's format
func echoAnswer(sc model.Scenario) string {
	quote := func(set model.FactorSet) string {
		parts := make([]string, 0, set.Len())
		for _, s := range set.Strings() {
			parts = append(parts, fmt.Sprintf("%q", s))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}
	return fmt.Sprintf("{\n  \"Input Case\": %s,\n  \"TSC1\": %s,\n  \"TSC2\": %s\n}",
		quote(sc.Input), quote(sc.Side(model.TSC1)), quote(sc.Side(model.TSC2)))
}
