package model

import "time"

// Config is the complete casebench configuration
type Config struct {
	Generation   GenerationConfig   `yaml:"generation" mapstructure:"generation"`
	LLM          LLMConfig          `yaml:"llm" mapstructure:"llm"`
	Distiller    LLMConfig          `yaml:"distiller" mapstructure:"distiller"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
	Log          LogConfig          `yaml:"log" mapstructure:"log"`
}

// GenerationConfig controls scenario dataset generation
type GenerationConfig struct {
	Mode       string `yaml:"mode" mapstructure:"mode"`
	CaseCount  int    `yaml:"case_count" mapstructure:"case_count"`
	Complexity int    `yaml:"complexity" mapstructure:"complexity"`
	Seed       int64  `yaml:"seed" mapstructure:"seed"` // 0 picks a time-based seed
}

// LLMConfig configures one model collaborator
type LLMConfig struct {
	Provider    string  `yaml:"provider" mapstructure:"provider"` // openai, groq, anthropic, ollama
	Model       string  `yaml:"model" mapstructure:"model"`
	APIKey      string  `yaml:"-" mapstructure:"api_key"`
	BaseURL     string  `yaml:"base_url,omitempty" mapstructure:"base_url"`
	Timeout     int     `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`
	HTTPProxy   string  `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy  string  `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
}

// CacheConfig configures the completion cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig bounds parallel model calls
type ConcurrencyConfig struct {
	Workers  int  `yaml:"workers" mapstructure:"workers"`
	FailFast bool `yaml:"fail_fast" mapstructure:"fail_fast"` // cancel the run on the first row error
}

// RateLimitingConfig paces requests per provider
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls where run artifacts go
type OutputConfig struct {
	Dir      string `yaml:"dir" mapstructure:"dir"`
	KeepLogs bool   `yaml:"keep_logs" mapstructure:"keep_logs"`
	Verbose  bool   `yaml:"verbose" mapstructure:"verbose"`
}

// LogConfig configures the structured logger
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console, json
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Generation: GenerationConfig{
			Mode:       "reordered",
			CaseCount:  10,
			Complexity: 5,
		},
		LLM: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4o-mini",
			Timeout:     60,
			MaxTokens:   2000,
			Temperature: 0.1,
		},
		Distiller: LLMConfig{
			Provider:    "openai",
			Model:       "gpt-4.1",
			Timeout:     60,
			MaxTokens:   1000,
			Temperature: 0.6,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".casebench-cache",
			MemoryTTL: time.Hour,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 2,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 1,
			BurstSize:         1,
		},
		Output: OutputConfig{
			Dir: "pipeline_results",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
