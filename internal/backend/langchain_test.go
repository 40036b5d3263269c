package backend

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	reply     string
	err       error
	gotPrompt string
	gotModel  string
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, o := range options {
		o(&opts)
	}
	f.gotModel = opts.Model
	for _, m := range messages {
		for _, p := range m.Parts {
			if tc, ok := p.(llms.TextContent); ok {
				f.gotPrompt += tc.Text
			}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.reply}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestLangChainGenerate_PicksModelByFormat(t *testing.T) {
	plain := &fakeModel{reply: "hello"}
	js := &fakeModel{reply: `{"ok":true}`}
	lc := NewLangChain(plain, js, "llama3.2")

	out, err := lc.Generate(context.Background(), Request{Prompt: "Hello"})
	require.NoError(t, err)
	require.Equal(t, "hello", out)
	require.Equal(t, "Hello", plain.gotPrompt)
	require.Equal(t, "llama3.2", plain.gotModel)

	out, err = lc.Generate(context.Background(), Request{Prompt: "json please", Model: "qwen", Format: FormatJSON})
	require.NoError(t, err)
	require.Equal(t, `{"ok":true}`, out)
	require.Equal(t, "qwen", js.gotModel)
}

func TestLangChainGenerate_WrapsError(t *testing.T) {
	lc := NewLangChain(&fakeModel{err: errors.New("offline")}, nil, "m")
	_, err := lc.Generate(context.Background(), Request{Prompt: "p", Format: FormatJSON})
	require.ErrorContains(t, err, "langchain generate: offline")
}
