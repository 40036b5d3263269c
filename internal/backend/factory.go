package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/blastlab/testgen/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// ProviderType enumerates supported inference providers.
type ProviderType string

const (
	// ProviderOllama calls Ollama's /api/generate directly.
	ProviderOllama ProviderType = "ollama"
	// ProviderLangChainOllama goes through langchaingo's Ollama chat client.
	ProviderLangChainOllama ProviderType = "langchain-ollama"
	ProviderOpenAI          ProviderType = "openai"
	ProviderGemini          ProviderType = "gemini"
)

// Config holds the settings needed to build a Backend.
type Config struct {
	Provider ProviderType
	BaseURL  string
	Model    string
}

// FromConfig maps the backend section of config.yaml.
func FromConfig(c config.BackendConfig) *Config {
	return &Config{
		Provider: ProviderType(strings.ToLower(strings.TrimSpace(c.Provider))),
		BaseURL:  c.URL,
		Model:    c.Model,
	}
}

// Secret carries an API key resolved from the vault.
type Secret struct {
	Value string
}

// Factory constructs provider-specific backends.
type Factory interface {
	New(ctx context.Context, cfg *Config, secret *Secret) (Backend, error)
}

type factoryImpl struct{}

// NewFactory returns the default Factory.
func NewFactory() Factory { return &factoryImpl{} }

// New creates a Backend based on cfg.Provider.
func (f *factoryImpl) New(ctx context.Context, cfg *Config, secret *Secret) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("backend: missing config")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, fmt.Errorf("backend: missing model for provider %q", cfg.Provider)
	}
	key := ""
	if secret != nil {
		key = strings.TrimSpace(secret.Value)
	}

	switch cfg.Provider {
	case "", ProviderOllama:
		return NewOllama(cfg.BaseURL, nil), nil

	case ProviderLangChainOllama:
		build := func(format string) (llms.Model, error) {
			opts := []ollama.Option{ollama.WithModel(cfg.Model)}
			if strings.TrimSpace(cfg.BaseURL) != "" {
				opts = append(opts, ollama.WithServerURL(cfg.BaseURL))
			}
			if format != "" {
				opts = append(opts, ollama.WithFormat(format))
			}
			return ollama.New(opts...)
		}
		plain, err := build("")
		if err != nil {
			return nil, fmt.Errorf("backend: ollama init: %w", err)
		}
		jsonLLM, err := build(FormatJSON)
		if err != nil {
			return nil, fmt.Errorf("backend: ollama init: %w", err)
		}
		return NewLangChain(plain, jsonLLM, cfg.Model), nil

	case ProviderOpenAI:
		opts := []openai.Option{openai.WithModel(cfg.Model)}
		if key != "" {
			opts = append(opts, openai.WithToken(key))
		}
		// BaseURL points at OpenAI-compatible local servers (llama.cpp, vLLM).
		if strings.TrimSpace(cfg.BaseURL) != "" && cfg.BaseURL != DefaultOllamaURL {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("backend: openai init: %w", err)
		}
		return NewLangChain(llm, llm, cfg.Model), nil

	case ProviderGemini:
		gopts := []googleai.Option{googleai.WithDefaultModel(cfg.Model)}
		if key != "" {
			gopts = append(gopts, googleai.WithAPIKey(key))
		}
		llm, err := googleai.New(ctx, gopts...)
		if err != nil {
			return nil, fmt.Errorf("backend: gemini init: %w", err)
		}
		return NewLangChain(llm, llm, cfg.Model), nil

	default:
		return nil, fmt.Errorf("backend: unsupported provider %q", cfg.Provider)
	}
}

// NeedsSecret reports whether the provider authenticates with an API key.
func NeedsSecret(p ProviderType) bool {
	return p == ProviderOpenAI || p == ProviderGemini
}
