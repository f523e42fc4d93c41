package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ppiankov/casebench/internal/cache"
	"github.com/ppiankov/casebench/internal/dataset"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/ppiankov/casebench/internal/pipeline"
	"github.com/ppiankov/casebench/internal/report"
	"github.com/ppiankov/casebench/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	runTimeout time.Duration
	runMode    string
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <dataset.csv>",
	Short: "Run a dataset through the argument model and the distiller, then score it",
	Long: `Run sends every scenario of a generated dataset to the argument model,
passes the last JSON block of each answer to the factor distiller, and scores
the distilled factors against the scenario ground truth.

Artifacts go to <output-dir>/<model>/<mode>_factor_<n>_complexity<c>/:
  factor_responses_<ts>.json                   incremental response log (--keep-logs)
  messages_factor_<name>_<ts>.csv              scenario, argument, distilled factors
  factor_report_<name>_<ts>.md                 score report

Example:
  casebench run data/arguable_factor_10_complexity5.csv
  casebench run data/unarguable_factor_10_complexity3.csv --provider groq --model llama-3.3-70b-versatile
  casebench run data/reordered_factor_5_complexity4.csv --workers 4 --fail-fast`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("provider", "", "argument model provider (openai, groq, anthropic, ollama)")
	runCmd.Flags().String("model", "", "argument model name")
	runCmd.Flags().String("distiller-provider", "", "distiller provider")
	runCmd.Flags().String("distiller-model", "", "distiller model name")
	runCmd.Flags().Int("workers", 0, "scenarios processed concurrently")
	runCmd.Flags().Bool("fail-fast", false, "stop the run at the first failed scenario")
	runCmd.Flags().Float64("rps", 0, "requests per second per provider")
	runCmd.Flags().Bool("no-cache", false, "disable the completion cache")
	runCmd.Flags().Bool("keep-logs", false, "keep the JSON response log")
	runCmd.Flags().String("output-dir", "", "directory for run artifacts")
	runCmd.Flags().StringVar(&runMode, "mode", "", "scoring mode (default: read from the file name)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", time.Hour, "total timeout for the run")

	_ = viper.BindPFlag("llm.provider", runCmd.Flags().Lookup("provider"))
	_ = viper.BindPFlag("llm.model", runCmd.Flags().Lookup("model"))
	_ = viper.BindPFlag("distiller.provider", runCmd.Flags().Lookup("distiller-provider"))
	_ = viper.BindPFlag("distiller.model", runCmd.Flags().Lookup("distiller-model"))
	_ = viper.BindPFlag("concurrency.workers", runCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("concurrency.fail_fast", runCmd.Flags().Lookup("fail-fast"))
	_ = viper.BindPFlag("rate_limiting.requests_per_second", runCmd.Flags().Lookup("rps"))
	_ = viper.BindPFlag("output.keep_logs", runCmd.Flags().Lookup("keep-logs"))
	_ = viper.BindPFlag("output.dir", runCmd.Flags().Lookup("output-dir"))
}

func runRun(cmd *cobra.Command, args []string) error {
	input := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	f, err := os.Open(input)
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	scenarios, err := dataset.ReadScenarioTexts(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("read dataset: %w", err)
	}

	info := dataset.ParseFileInfo(input)
	mode := info.GenerationMode()
	if runMode != "" {
		m, ok := model.LookupMode(runMode)
		if !ok {
			return fmt.Errorf("unknown mode %q", runMode)
		}
		mode = m
	}
	scenarioDir := filepath.Join(cfg.Output.Dir, modelDirName(cfg.LLM.Model), info.StandardName())
	if err := os.MkdirAll(scenarioDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	banner("casebench Run")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", input)
	fmt.Fprintf(os.Stderr, "  Scenarios:    %d\n", len(scenarios))
	fmt.Fprintf(os.Stderr, "  Argument:     %s/%s\n", cfg.LLM.Provider, cfg.LLM.Model)
	fmt.Fprintf(os.Stderr, "  Distiller:    %s/%s\n", cfg.Distiller.Provider, cfg.Distiller.Model)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", scenarioDir)
	fmt.Fprintf(os.Stderr, "\n")

	completions := newCompletionCache(cfg.Cache)
	argument, err := buildProvider(cfg.LLM, completions, logger)
	if err != nil {
		return err
	}
	distiller, err := buildProvider(cfg.Distiller, completions, logger)
	if err != nil {
		return err
	}

	started := time.Now()
	timestamp := started.Format("20060102_150405")
	runLog := dataset.NewRunLog(filepath.Join(scenarioDir, dataset.RunLogFileName(started)))

	runner := pipeline.NewRunner(argument, distiller, runLog, pipeline.Options{
		Workers:  cfg.Concurrency.Workers,
		FailFast: cfg.Concurrency.FailFast,
		Limiter:  worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize),
		Logger:   logger,
	})

	fmt.Fprintf(os.Stderr, "⚙️  Processing scenarios...\n")
	records, runErr := runner.Run(ctx, scenarios)
	if runErr != nil {
		logger.Warn("run finished with failures", zap.Error(runErr))
	}
	if len(records) == 0 {
		if runErr != nil {
			return fmt.Errorf("run: %w", runErr)
		}
		return fmt.Errorf("run: no scenarios in %s", input)
	}

	messagesCSV := filepath.Join(scenarioDir, "messages_factor_"+info.StandardName()+"_"+timestamp+".csv")
	if err := runLog.ExportCSVFile(messagesCSV); err != nil {
		return err
	}
	if !cfg.Output.KeepLogs {
		if err := runLog.Remove(); err != nil {
			logger.Warn("remove run log", zap.Error(err))
		}
	}

	rows := make([]model.ScoringRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rec.ScoringRow())
	}
	eval := pipeline.Evaluate(rows, mode)

	doc := report.Document{
		Kind:   report.KindRun,
		Model:  cfg.LLM.Model,
		Date:   started,
		Info:   info,
		Report: eval.Report,
	}
	reportPath, err := report.WriteMarkdown(scenarioDir, doc)
	if err != nil {
		return err
	}

	fmt.Println(report.Table(info, eval.Report, false))

	banner("Run Complete")
	fmt.Fprintf(os.Stderr, "  Scored:       %d/%d scenarios\n", len(records), len(scenarios))
	fmt.Fprintf(os.Stderr, "  Unreadable:   %d distiller answers\n", eval.Unreadable)
	fmt.Fprintf(os.Stderr, "  Duration:     %s\n", time.Since(started).Round(time.Second))
	if layered, ok := completions.(*cache.LayeredCache); ok {
		stats := layered.Stats()
		fmt.Fprintf(os.Stderr, "  Cache:        %d memory hits, %d disk hits, %d misses\n", stats.MemoryHits, stats.DiskHits, stats.Misses)
	}
	fmt.Fprintf(os.Stderr, "  Messages:     %s\n", messagesCSV)
	fmt.Fprintf(os.Stderr, "  Report:       %s\n", reportPath)
	fmt.Fprintf(os.Stderr, "\n")

	if runErr != nil {
		return fmt.Errorf("%d of %d scenarios failed: %w", len(scenarios)-len(records), len(scenarios), runErr)
	}
	return nil
}
