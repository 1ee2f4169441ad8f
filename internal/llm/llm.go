package llm

import (
	"context"
	"fmt"
)

// Invoker is the model-invocation capability: prompt text in, response text
// out. Implementations wrap a concrete provider SDK; everything above this
// interface treats the model as opaque.
type Invoker interface {
	Invoke(ctx context.Context, prompt string) (string, error)
}

// Config holds provider selection and credentials for building an Invoker
type Config struct {
	Provider  string
	APIKey    string
	Model     string
	MaxTokens int
}

// DefaultMaxTokens is used when Config.MaxTokens is not set
const DefaultMaxTokens = 1024

// New creates an Invoker for the configured provider
func New(cfg *Config) (Invoker, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("model is required")
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}

	var (
		inv Invoker
		err error
	)
	switch cfg.Provider {
	case "anthropic":
		inv, err = NewAnthropic(cfg)
	case "openai":
		inv, err = NewOpenAI(cfg)
	case "ollama":
		inv, err = NewOllama(cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// InvokerFunc adapts a plain function to the Invoker interface, mostly for
// test doubles.
type InvokerFunc func(ctx context.Context, prompt string) (string, error)

// Invoke calls f
func (f InvokerFunc) Invoke(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
