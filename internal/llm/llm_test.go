package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(&Config{Provider: "carrier-pigeon", Model: "m"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown provider")
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	_, err = New(&Config{Provider: "anthropic"})
	require.Error(t, err, "model is required")

	// openai requires an explicit api key
	_, err = New(&Config{Provider: "openai", Model: "gpt-4o"})
	require.Error(t, err)
}

func TestInvokerFunc(t *testing.T) {
	var seen string
	inv := InvokerFunc(func(ctx context.Context, prompt string) (string, error) {
		seen = prompt
		return "pong", nil
	})

	got, err := inv.Invoke(context.Background(), "ping")
	require.NoError(t, err)
	require.Equal(t, "pong", got)
	require.Equal(t, "ping", seen)
}
