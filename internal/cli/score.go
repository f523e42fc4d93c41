package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/casebench/internal/dataset"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/ppiankov/casebench/internal/pipeline"
	"github.com/ppiankov/casebench/internal/report"
	"github.com/spf13/cobra"
)

var (
	scoreMode      string
	scoreExisting  bool
	scoreJSON      bool
	scoreReportDir string
	scoreNoReport  bool
)

// scoreCmd represents the score command
var scoreCmd = &cobra.Command{
	Use:   "score <file.csv | run-log.json | run-dir>",
	Short: "Score distilled factors against the scenario ground truth",
	Long: `Score reads a CSV with scenario and distilled_factors columns, parses the
ground truth factors from each scenario, and scores the distilled answer.

A factor_responses_*.json run log can be scored directly.

With --existing the argument is a run directory and the newest
messages_factor_*.csv inside it is scored.

The generation mode is read from the file name unless --mode is given.

Example:
  casebench score results/arguable_factor_10_complexity5.csv
  casebench score pipeline_results/gpt-4o-mini/arguable_factor_10_complexity5 --existing
  casebench score answers.csv --mode non-arguable --json`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringVar(&scoreMode, "mode", "", "generation mode (default: read from the file name)")
	scoreCmd.Flags().BoolVar(&scoreExisting, "existing", false, "score the newest messages file of a run directory")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "print the evaluation as JSON")
	scoreCmd.Flags().StringVar(&scoreReportDir, "report-dir", "", "directory for the markdown report (default: next to the input)")
	scoreCmd.Flags().BoolVar(&scoreNoReport, "no-report", false, "skip writing the markdown report")
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	input := args[0]
	kind := report.KindInputFile
	if scoreExisting {
		input, err = latestMessagesFile(args[0])
		if err != nil {
			return err
		}
		kind = report.KindExisting
	}

	rows, err := readScoringInput(input)
	if err != nil {
		return err
	}

	info := dataset.ParseFileInfo(input)
	mode := info.GenerationMode()
	if scoreMode != "" {
		m, ok := model.LookupMode(scoreMode)
		if !ok {
			return fmt.Errorf("unknown mode %q", scoreMode)
		}
		mode = m
	}

	eval := pipeline.Evaluate(rows, mode)

	if scoreJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(eval)
	}

	banner("casebench Score")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", input)
	fmt.Fprintf(os.Stderr, "  Mode:         %s\n", mode.ExternalName())
	fmt.Fprintf(os.Stderr, "  Rows:         %d\n", len(rows))
	fmt.Fprintf(os.Stderr, "  Unreadable:   %d\n", eval.Unreadable)
	fmt.Fprintf(os.Stderr, "\n")

	fmt.Println(report.Table(info, eval.Report, false))

	if scoreNoReport {
		return nil
	}

	dir := scoreReportDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	path, err := report.WriteMarkdown(dir, report.Document{
		Kind:   kind,
		Source: input,
		Date:   time.Now(),
		Info:   info,
		Report: eval.Report,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "📄 Report: %s\n", path)
	return nil
}

// readScoringInput reads a scoring table, or the records of a JSON run log
func readScoringInput(path string) ([]model.ScoringRow, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return dataset.ReadScoringRowsFile(path)
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open run log: %w", err)
	}
	runLog, err := dataset.OpenRunLog(path)
	if err != nil {
		return nil, err
	}
	records := runLog.Records()
	rows := make([]model.ScoringRow, len(records))
	for i, rec := range records {
		rows[i] = rec.ScoringRow()
	}
	return rows, nil
}

// latestMessagesFile finds the newest messages_factor_*.csv in dir. Names
// end in a sortable timestamp.
func latestMessagesFile(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "messages_factor_*.csv"))
	if err != nil {
		return "", fmt.Errorf("find messages file: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no messages_factor_*.csv in %s", dir)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
