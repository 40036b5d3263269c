package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// LangChain adapts a langchaingo model to Backend. Providers that cannot be
// switched into JSON mode per call get the same model for both fields and rely
// on the prompt wording.
type LangChain struct {
	plain llms.Model
	json  llms.Model
	model string
}

// NewLangChain wraps plain (free text) and jsonLLM (JSON constrained) models.
func NewLangChain(plain, jsonLLM llms.Model, model string) *LangChain {
	if jsonLLM == nil {
		jsonLLM = plain
	}
	return &LangChain{plain: plain, json: jsonLLM, model: model}
}

// Generate runs a single non-streaming completion.
func (l *LangChain) Generate(ctx context.Context, req Request) (string, error) {
	llm := l.plain
	if req.Format == FormatJSON {
		llm = l.json
	}
	if llm == nil {
		return "", fmt.Errorf("langchain: no model configured")
	}
	var opts []llms.CallOption
	if m := firstNonEmpty(req.Model, l.model); m != "" {
		opts = append(opts, llms.WithModel(m))
	}
	text, err := llms.GenerateFromSinglePrompt(ctx, llm, req.Prompt, opts...)
	if err != nil {
		return "", fmt.Errorf("langchain generate: %w", err)
	}
	return text, nil
}

// firstNonEmpty returns a if non-empty, else b.
func firstNonEmpty(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}
