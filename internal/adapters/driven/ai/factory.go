// Package ai provides factory functions for creating AI service
// adapters from configuration.
package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	ollamaembed "github.com/custodia-labs/deskmate/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/deskmate/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/custodia-labs/deskmate/internal/adapters/driven/llm/anthropic"
	geminillm "github.com/custodia-labs/deskmate/internal/adapters/driven/llm/gemini"
	"github.com/custodia-labs/deskmate/internal/core/domain"
	"github.com/custodia-labs/deskmate/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// Provider identifiers accepted in configuration.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
)

// NewTextGenerator creates the configured text generator. With nothing
// configured and no API key present it returns (nil, nil) and the
// services degrade to retrieval-only behaviour. An explicitly
// configured provider with a missing key, or an unsupported provider,
// is an error: better to fail at startup than on the first query.
func NewTextGenerator(cfg driven.ConfigStore) (driven.TextGenerator, error) {
	provider := cfg.GetString("llm.provider")
	explicit := provider != ""
	if !explicit {
		provider = ProviderGemini
	}

	switch provider {
	case ProviderGemini:
		apiKey := firstNonEmpty(cfg.GetString("llm.api_key"),
			os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY"))
		if apiKey == "" {
			if explicit {
				return nil, fmt.Errorf("%w: gemini provider configured without an API key", domain.ErrLLMUnavailable)
			}
			return nil, nil
		}
		svc, err := geminillm.NewTextGenerator(geminillm.Config{
			APIKey:            apiKey,
			BaseURL:           cfg.GetString("llm.base_url"),
			Model:             cfg.GetString("llm.model"),
			RequestsPerMinute: cfg.GetInt("llm.requests_per_minute"),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
		}
		return svc, nil

	case ProviderAnthropic:
		apiKey := firstNonEmpty(cfg.GetString("llm.api_key"), os.Getenv("ANTHROPIC_API_KEY"))
		if apiKey == "" {
			return nil, fmt.Errorf("%w: anthropic provider configured without an API key", domain.ErrLLMUnavailable)
		}
		svc, err := anthropicllm.NewTextGenerator(anthropicllm.Config{
			APIKey:  apiKey,
			BaseURL: cfg.GetString("llm.base_url"),
			Model:   cfg.GetString("llm.model"),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("%w: unsupported LLM provider: %s", domain.ErrLLMUnavailable, provider)
	}
}

// NewEmbeddingService creates the configured embedding service. Ollama
// is the default and needs no credentials.
func NewEmbeddingService(cfg driven.ConfigStore) (driven.EmbeddingService, error) {
	provider := cfg.GetString("embedding.provider")
	if provider == "" {
		provider = ProviderOllama
	}

	switch provider {
	case ProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		}), nil

	case ProviderOpenAI:
		apiKey := firstNonEmpty(cfg.GetString("embedding.api_key"), os.Getenv("OPENAI_API_KEY"))
		if apiKey == "" {
			return nil, nil
		}
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     apiKey,
			BaseURL:    cfg.GetString("embedding.base_url"),
			Model:      cfg.GetString("embedding.model"),
			Dimensions: cfg.GetInt("embedding.dimensions"),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		return svc, nil

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider: %s", domain.ErrEmbeddingUnavailable, provider)
	}
}

// ValidateTextGenerator pings an already-created generator with a
// short timeout. Intended for startup checks so credential problems
// surface before the first query.
func ValidateTextGenerator(svc driven.TextGenerator) error {
	if svc == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrLLMUnavailable, err)
	}
	return nil
}

// ValidateEmbeddingService pings an already-created embedding service
// with a short timeout.
func ValidateEmbeddingService(svc driven.EmbeddingService) error {
	if svc == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		return fmt.Errorf("%w: service unreachable (%w)", domain.ErrEmbeddingUnavailable, err)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
