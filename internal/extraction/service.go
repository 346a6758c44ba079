// Package extraction runs one score sheet image through a vision LLM and
// cleans up the model's textual JSON reply.
package extraction

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/22331a1268-rgb/read-sum-magic/internal/providers"
	"github.com/22331a1268-rgb/read-sum-magic/internal/providers/gemini"
	"github.com/22331a1268-rgb/read-sum-magic/internal/providers/ollama"
	"github.com/22331a1268-rgb/read-sum-magic/internal/providers/openai"
)

// ParseError reports a model reply that was not valid JSON after fence
// stripping. Raw holds the original unstripped text so it can be surfaced to
// aid debugging malformed replies.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse extracted data: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Service ties a vision provider to the extraction prompt.
type Service struct {
	provider providers.Provider
	config   providers.Config
}

// NewService builds a service from the environment. EXTRACTION_PROVIDER
// selects openai (default), ollama, or gemini; the model falls back to the
// provider's default when unset.
func NewService(providerName, model string) (*Service, error) {
	if providerName == "" {
		providerName = os.Getenv("EXTRACTION_PROVIDER")
		if providerName == "" {
			providerName = "openai"
		}
	}
	if model == "" {
		model = providers.DefaultModel(providerName)
	}

	var p providers.Provider
	switch providerName {
	case "openai":
		p = openai.New()
	case "ollama":
		p = ollama.New()
	case "gemini":
		p = gemini.New()
	default:
		return nil, fmt.Errorf("unsupported extraction provider: %s", providerName)
	}

	return &Service{
		provider: p,
		config: providers.Config{
			Model:       model,
			Temperature: 0.0,
			MaxTokens:   4000,
		},
	}, nil
}

// NewServiceWith builds a service around an explicit provider. Used by tests
// and by callers that already hold a configured provider.
func NewServiceWith(p providers.Provider, config providers.Config) *Service {
	return &Service{provider: p, config: config}
}

// Ready reports whether the underlying provider is configured.
func (s *Service) Ready() error {
	return s.provider.Ready()
}

// Extract sends one image to the provider and returns the model's reply as
// cleaned JSON bytes. A reply that is not valid JSON after fence stripping
// comes back as a *ParseError carrying the original text; upstream HTTP
// failures come back as the provider's error, unwrapped.
func (s *Service) Extract(ctx context.Context, imageDataURL string) ([]byte, error) {
	raw, err := s.provider.ExtractDocument(ctx, s.config, BuildPrompt(), imageDataURL)
	if err != nil {
		return nil, err
	}

	cleaned := StripFences(raw)
	if !json.Valid([]byte(cleaned)) {
		return nil, &ParseError{Raw: raw, Err: fmt.Errorf("model reply is not valid JSON")}
	}

	slog.Info("Extracted score sheet data", "model", s.config.Model, "length", len(cleaned))
	return []byte(cleaned), nil
}

// StripFences removes surrounding markdown code fences from a model reply.
func StripFences(response string) string {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	return strings.TrimSpace(response)
}
