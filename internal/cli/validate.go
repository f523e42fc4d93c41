package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ppiankov/casebench/internal/dataset"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/ppiankov/casebench/internal/validate"
	"github.com/spf13/cobra"
)

var (
	validateMode       string
	validateComplexity int
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate <dataset.csv>",
	Short: "Audit a scenario dataset against the factor catalog",
	Long: `Validate parses every scenario of a dataset and reports unknown factors,
labels that disagree with the catalog, repeated factors, case sizes outside
complexity±1 and comparison cases that break the generation mode.

Mode and complexity are read from the file name unless given.

Example:
  casebench validate data/arguable_factor_10_complexity5.csv
  casebench validate scenarios.csv --mode non-arguable --complexity 3`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateMode, "mode", "", "generation mode (default: read from the file name)")
	validateCmd.Flags().IntVarP(&validateComplexity, "complexity", "c", -1, "target factors per case, 0 skips size checks (default: read from the file name)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	input := args[0]

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	texts, err := dataset.ReadScenarioTexts(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	info := dataset.ParseFileInfo(input)
	mode := info.GenerationMode()
	if validateMode != "" {
		m, ok := model.LookupMode(validateMode)
		if !ok {
			return fmt.Errorf("unknown mode %q", validateMode)
		}
		mode = m
	}
	if mode == model.ModeUnspecified {
		return fmt.Errorf("no mode in file name %s, pass --mode", filepath.Base(input))
	}
	complexity := validateComplexity
	if complexity < 0 {
		complexity, _ = strconv.Atoi(info.Complexity)
	}

	rows := validate.NewAuditor(complexity).AuditDataset(texts, mode)

	banner("casebench Dataset Audit")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", input)
	fmt.Fprintf(os.Stderr, "  Mode:         %s\n", mode.ExternalName())
	fmt.Fprintf(os.Stderr, "  Complexity:   %d\n", complexity)
	fmt.Fprintf(os.Stderr, "  Scenarios:    %d\n", len(texts))
	fmt.Fprintf(os.Stderr, "\n")

	errorRows := 0
	for _, row := range rows {
		if validate.HasErrors(row.Findings) {
			errorRows++
		}
		for _, finding := range row.Findings {
			fmt.Printf("row %d: %s\n", row.Row+1, finding)
		}
	}

	if len(rows) == 0 {
		fmt.Fprintf(os.Stderr, "✅ No findings\n")
		return nil
	}
	fmt.Fprintf(os.Stderr, "\n%d of %d scenarios have findings (%d with errors)\n", len(rows), len(texts), errorRows)
	if errorRows > 0 {
		return fmt.Errorf("%d scenarios failed validation", errorRows)
	}
	return nil
}
