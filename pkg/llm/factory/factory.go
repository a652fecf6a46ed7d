// Package factory constructs llm.LLMClient instances by provider name.
package factory

import (
	"fmt"

	"talentscout/pkg/llm"
	"talentscout/pkg/llm/anthropic"
	"talentscout/pkg/llm/gemini"
	"talentscout/pkg/llm/ollama"
	"talentscout/pkg/llm/openai"
)

// Provider name constants.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
	ProviderMock      = "mock"
)

// NewClient creates an LLM client from the given configuration. The mock
// provider needs no credentials and is used for offline runs and tests.
// Configured MaxTokens/Temperature apply to every request the client sends.
func NewClient(cfg *llm.Config) (llm.LLMClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid llm config: %w", err)
	}

	var client llm.LLMClient
	switch cfg.Provider {
	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		client = openai.NewClient(cfg.APIKey, cfg.ModelName)
	case ProviderAnthropic:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an API key")
		}
		client = anthropic.NewClient(cfg.APIKey, cfg.ModelName)
	case ProviderGemini:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini provider requires an API key")
		}
		client = gemini.NewClient(cfg.APIKey, cfg.ModelName)
	case ProviderOllama:
		host := cfg.Host
		if host == "" {
			host = ollama.DefaultHost
		}
		client = ollama.NewClient(host, cfg.ModelName)
	case ProviderMock:
		client = llm.NewMockClient([]llm.CompletionResponse{{Content: "Thank you for sharing that!"}}, nil)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}

	if cfg.MaxTokens > 0 || cfg.Temperature > 0 {
		client = llm.NewTunedClient(client, cfg.MaxTokens, cfg.Temperature)
	}
	return client, nil
}
