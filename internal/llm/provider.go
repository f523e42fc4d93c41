package llm

import (
	"context"
	"errors"

	"github.com/ppiankov/casebench/internal/model"
	"go.uber.org/zap"
)

var (
	// ErrEmptyResponse is returned when a provider answers with no text
	ErrEmptyResponse = errors.New("empty response from provider")

	// ErrUnknownProvider is returned by NewProvider for unsupported names
	ErrUnknownProvider = errors.New("unknown LLM provider")
)

// Provider defines the interface for chat model backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends one system + user exchange and returns the answer text
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest is a single-turn chat request
type CompletionRequest struct {
	// System is the task description sent as the system message
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the provider's configured model when set
	Model string

	// MaxTokens overrides the configured response limit when > 0
	MaxTokens int

	// Temperature overrides the configured temperature when set
	Temperature *float32
}

// CompletionResponse is the model's answer
type CompletionResponse struct {
	Text       string `json:"text"`
	Model      string `json:"model"`
	TokensUsed int    `json:"tokens_used"`
	Cached     bool   `json:"-"`
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "groq", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Groq/Anthropic
	APIKey string

	// BaseURL for custom endpoints
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Temperature used when a request does not set one
	Temperature float32

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string

	// Logger receives availability diagnostics; nil disables them
	Logger *zap.Logger
}

// DefaultConfig returns the argument model defaults
func DefaultConfig() Config {
	return ConfigFromModel(model.DefaultConfig().LLM)
}

// Float32 returns a pointer to v, for CompletionRequest.Temperature
func Float32(v float32) *float32 {
	return &v
}

// resolve fills request fields from provider defaults
func (c Config) resolve(req CompletionRequest, fallbackModel string) (modelName string, maxTokens int, temperature float32) {
	modelName = req.Model
	if modelName == "" {
		modelName = c.Model
	}
	if modelName == "" {
		modelName = fallbackModel
	}

	maxTokens = req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 1000
	}

	temperature = c.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	return modelName, maxTokens, temperature
}
