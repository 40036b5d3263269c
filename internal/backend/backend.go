// Package backend talks to the inference server that turns prompts into text.
package backend

import (
	"context"
	"net/http"
	"strconv"
	"strings"
)

// FormatJSON asks the backend to constrain its output to JSON.
const FormatJSON = "json"

// Request is a single non-streamed generation call.
type Request struct {
	Model  string
	Prompt string
	// Format is passed through to the backend; empty means free text.
	Format string
}

// Backend returns the raw text the model produced for a prompt.
type Backend interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// StatusError is returned when the inference server answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string // full status line, e.g. "500 Internal Server Error"
}

// StatusText returns the reason phrase of the response status.
func (e *StatusError) StatusText() string {
	if txt := strings.TrimSpace(strings.TrimPrefix(e.Status, strconv.Itoa(e.Code))); txt != "" {
		return txt
	}
	return http.StatusText(e.Code)
}

func (e *StatusError) Error() string {
	return "Ollama API error: " + e.StatusText()
}
