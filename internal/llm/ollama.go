package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaInvoker invokes a local Ollama server
type OllamaInvoker struct {
	client *api.Client
	model  string
}

// NewOllama creates an Ollama-backed invoker. The server address comes from
// OLLAMA_HOST via the SDK's environment lookup.
func NewOllama(cfg *Config) (*OllamaInvoker, error) {
	client, err := api.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("failed to create ollama client: %w", err)
	}

	return &OllamaInvoker{
		client: client,
		model:  cfg.Model,
	}, nil
}

// Invoke generates a completion for the prompt with streaming disabled
func (o *OllamaInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	stream := false
	var b strings.Builder

	err := o.client.Generate(ctx, &api.GenerateRequest{
		Model:  o.model,
		Prompt: prompt,
		Stream: &stream,
	}, func(resp api.GenerateResponse) error {
		b.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate failed: %w", err)
	}

	return b.String(), nil
}
