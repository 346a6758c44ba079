// Package providers defines the vision LLM provider boundary used by the
// extraction service.
package providers

import (
	"context"
	"fmt"
	"os"
)

// Config represents the configuration for a vision LLM provider.
type Config struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider defines the interface for a vision-capable LLM provider. One call
// sends the extraction prompt plus the image inline and returns the model's
// raw textual reply.
type Provider interface {
	// Ready reports whether the provider can be called, returning an error
	// when its credential or endpoint is not configured.
	Ready() error
	ExtractDocument(ctx context.Context, config Config, prompt, imageDataURL string) (string, error)
}

// StatusError carries an upstream HTTP status so callers can distinguish
// rate limiting and credit exhaustion from other gateway failures.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}

// DefaultModel returns the configured model for a provider, falling back to
// a sensible default when the environment does not name one.
func DefaultModel(provider string) string {
	switch provider {
	case "openai":
		if model := os.Getenv("OPENAI_MODEL"); model != "" {
			return model
		}
		return "gpt-4o"
	case "ollama":
		if model := os.Getenv("OLLAMA_MODEL"); model != "" {
			return model
		}
		return "mistral-small3.2:24b"
	case "gemini":
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			return model
		}
		return "gemini-1.5-flash"
	default:
		return ""
	}
}
