package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/casebench/internal/llm"
	"github.com/ppiankov/casebench/internal/logging"
	"github.com/ppiankov/casebench/internal/model"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Version is set at build time
var Version = "0.1.0"

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "casebench",
	Short: "casebench - factor-based legal reasoning benchmark",
	Long: `casebench builds synthetic trade secret scenarios from a fixed factor
vocabulary and measures how faithfully a language model reuses those factors
when it argues by analogy to two comparison cases.

The pipeline has three steps:
  generate   write a dataset of rendered scenarios
  run        send each scenario through an argument model and a distiller
  score      compare the distilled factors against the scenario ground truth

Scores never call a model; they are a pure function of the run table.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number of casebench.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("casebench v%s\n", Version)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.casebench/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (console, json)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(filepath.Join(home, ".casebench"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// CASEBENCH_LLM_MODEL overrides llm.model
	viper.SetEnvPrefix("CASEBENCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := registerDefaults(viper.GetViper(), model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every config key known to viper so env overrides
// reach Unmarshal
func registerDefaults(v *viper.Viper, cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal defaults: %w", err)
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return fmt.Errorf("unmarshal defaults: %w", err)
	}

	var walk func(prefix string, node map[string]any)
	walk = func(prefix string, node map[string]any) {
		for k, val := range node {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			if child, ok := val.(map[string]any); ok {
				walk(key, child)
				continue
			}
			v.SetDefault(key, val)
		}
	}
	walk("", tree)

	// keys hidden from or omitted by yaml output
	for _, section := range []string{"llm", "distiller"} {
		for _, key := range []string{"api_key", "base_url", "http_proxy", "https_proxy"} {
			v.SetDefault(section+"."+key, "")
		}
	}
	return nil
}

// loadConfig resolves the effective configuration: flags and env over the
// config file over defaults
func loadConfig() (*model.Config, error) {
	return loadConfigFrom(viper.GetViper())
}

func loadConfigFrom(v *viper.Viper) (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyProviderEnv(&cfg.LLM)
	applyProviderEnv(&cfg.Distiller)
	return cfg, nil
}

// applyProviderEnv fills credentials and endpoints from the provider's own
// environment variables
func applyProviderEnv(c *model.LLMConfig) {
	if c.APIKey == "" {
		if env := llm.APIKeyEnv(c.Provider); env != "" {
			c.APIKey = os.Getenv(env)
		}
	}
	if strings.EqualFold(c.Provider, "ollama") && c.BaseURL == "" {
		c.BaseURL = os.Getenv("OLLAMA_BASE_URL")
	}
}

// newLogger builds the structured logger for a command
func newLogger(cfg *model.Config) (*zap.Logger, error) {
	level := cfg.Log.Level
	if cfg.Output.Verbose && strings.EqualFold(level, "info") {
		level = "debug"
	}
	return logging.New(level, cfg.Log.Format)
}

func banner(title string) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  %s\n", title)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
}
