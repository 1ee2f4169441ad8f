// Package llm defines the model-invocation boundary and its provider adapters.
//
// The Invoker interface is the only contract the rest of the worker depends
// on: prompt text in, response text out. Networking, authentication, and
// response decoding live entirely inside the provider adapters, and the
// invoker is always passed in explicitly rather than held as shared global
// state, so tests can substitute an InvokerFunc double.
//
// Example usage:
//
//	invoker, err := llm.New(&llm.Config{
//	    Provider: "anthropic",
//	    APIKey:   apiKey,
//	    Model:    "claude-sonnet-4-20250514",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	reply, err := invoker.Invoke(ctx, "Say hello")
//
// Supported providers: anthropic, openai, ollama.
package llm
