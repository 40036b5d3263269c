package backend

import (
	"context"
	"testing"

	"github.com/blastlab/testgen/internal/config"
	"github.com/stretchr/testify/require"
)

func TestFactoryNew(t *testing.T) {
	f := NewFactory()
	ctx := context.Background()

	b, err := f.New(ctx, FromConfig(config.Defaults().Backend), nil)
	require.NoError(t, err)
	require.IsType(t, &Ollama{}, b)

	b, err = f.New(ctx, &Config{Provider: ProviderLangChainOllama, Model: "llama3.2"}, nil)
	require.NoError(t, err)
	require.IsType(t, &LangChain{}, b)

	b, err = f.New(ctx, &Config{Provider: ProviderOpenAI, Model: "gpt-4o-mini"}, &Secret{Value: "sk-test"})
	require.NoError(t, err)
	require.IsType(t, &LangChain{}, b)
}

func TestFactoryNew_Errors(t *testing.T) {
	f := NewFactory()
	ctx := context.Background()

	_, err := f.New(ctx, nil, nil)
	require.ErrorContains(t, err, "missing config")

	_, err = f.New(ctx, &Config{Provider: ProviderOllama}, nil)
	require.ErrorContains(t, err, "missing model")

	_, err = f.New(ctx, &Config{Provider: "bedrock", Model: "m"}, nil)
	require.ErrorContains(t, err, `unsupported provider "bedrock"`)
}

func TestFromConfigNormalizesProvider(t *testing.T) {
	c := FromConfig(config.BackendConfig{Provider: " OpenAI ", Model: "m", URL: "http://x"})
	require.Equal(t, ProviderOpenAI, c.Provider)
	require.True(t, NeedsSecret(c.Provider))
	require.False(t, NeedsSecret(ProviderOllama))
}
