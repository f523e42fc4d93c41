package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/casebench/internal/dataset"
	"github.com/ppiankov/casebench/internal/generate"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/ppiankov/casebench/internal/render"
	"github.com/ppiankov/casebench/internal/validate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	genOutputDir string
	genPreview   bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a scenario dataset",
	Long: `Generate writes a CSV dataset of rendered scenarios. Each scenario has an
input case and two comparison cases drawn from the factor catalog:

  non-arguable  comparison cases share no factor with the input case
  arguable      each comparison case shares factors favoring its outcome
  reordered     arguable, with the comparison cases swapped

The file is named <mode>_factor_<n>_complexity<c>.csv, where non-arguable
datasets use the mode name unarguable.

Example:
  casebench generate --mode arguable -n 20 -c 5
  casebench generate --mode non-arguable -n 10 -c 3 --seed 42 -o data`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().String("mode", "", "generation mode (non-arguable, arguable, reordered)")
	generateCmd.Flags().IntP("cases", "n", 0, "number of scenarios")
	generateCmd.Flags().IntP("complexity", "c", 0, "target factors per case (size is complexity±1)")
	generateCmd.Flags().Int64("seed", 0, "random seed (0 picks a time-based seed)")
	generateCmd.Flags().StringVarP(&genOutputDir, "output-dir", "o", "data", "output directory")
	generateCmd.Flags().BoolVar(&genPreview, "preview", false, "print one rendered scenario instead of writing a dataset")

	_ = viper.BindPFlag("generation.mode", generateCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("generation.case_count", generateCmd.Flags().Lookup("cases"))
	_ = viper.BindPFlag("generation.complexity", generateCmd.Flags().Lookup("complexity"))
	_ = viper.BindPFlag("generation.seed", generateCmd.Flags().Lookup("seed"))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	seed := cfg.Generation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	gen := generate.NewGenerator(generate.NewRand(seed), logger)

	if genPreview {
		return previewScenario(gen, model.ScenarioMode(cfg.Generation.Mode), cfg.Generation.Complexity)
	}

	mode, ok := model.LookupMode(cfg.Generation.Mode)
	if !ok {
		mode = model.DatasetMode(cfg.Generation.Mode)
		logger.Warn("unknown mode, using default", zap.String("mode", cfg.Generation.Mode), zap.Stringer("default", mode))
	}

	banner("casebench Dataset Generation")
	fmt.Fprintf(os.Stderr, "  Mode:         %s\n", mode.ExternalName())
	fmt.Fprintf(os.Stderr, "  Cases:        %d\n", cfg.Generation.CaseCount)
	fmt.Fprintf(os.Stderr, "  Complexity:   %d\n", cfg.Generation.Complexity)
	fmt.Fprintf(os.Stderr, "  Seed:         %d\n", seed)
	fmt.Fprintf(os.Stderr, "\n")

	scenarios, summary, err := gen.Dataset(mode, cfg.Generation.CaseCount, cfg.Generation.Complexity)
	if err != nil {
		return fmt.Errorf("generate dataset: %w", err)
	}

	path := filepath.Join(genOutputDir, dataset.DatasetFileName(mode, cfg.Generation.CaseCount, cfg.Generation.Complexity))
	if err := dataset.WriteScenariosFile(path, render.Scenarios(scenarios)); err != nil {
		return err
	}

	auditor := validate.NewAuditor(cfg.Generation.Complexity)
	flagged := 0
	for i, sc := range scenarios {
		if findings := auditor.Audit(sc); validate.HasErrors(findings) {
			flagged++
			for _, f := range findings {
				logger.Warn("scenario finding", zap.Int("row", i), zap.Stringer("finding", f))
			}
		}
	}

	fmt.Fprintf(os.Stderr, "✓ Wrote %d scenarios: %s\n", summary.Scenarios, path)
	if mode == model.ModeUnarguable {
		fmt.Fprintf(os.Stderr, "  Restarted:    %d\n", summary.Restarted)
		fmt.Fprintf(os.Stderr, "  Gave up:      %d\n", summary.GaveUp)
	}
	if flagged > 0 {
		fmt.Fprintf(os.Stderr, "⚠️  %d scenarios violate generation invariants (see log)\n", flagged)
	}
	fmt.Fprintf(os.Stderr, "\n")
	return nil
}

// previewScenario prints a single scenario with its audit findings
func previewScenario(gen *generate.Generator, mode model.GenerationMode, complexity int) error {
	sc, err := gen.Scenario(mode, complexity)
	if err != nil {
		return fmt.Errorf("generate scenario: %w", err)
	}

	fmt.Println(render.Scenario(sc))
	for _, f := range validate.Audit(sc, complexity) {
		fmt.Fprintf(os.Stderr, "⚠️  %s\n", f)
	}
	return nil
}
