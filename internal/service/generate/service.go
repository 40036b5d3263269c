// Package generate turns a requirement into the model's test-case JSON.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/blastlab/testgen/internal/backend"
	"github.com/blastlab/testgen/internal/service/generate/normalize"
	"github.com/rs/zerolog"
)

// ErrRequirementRequired is returned for a missing or blank requirement.
// No backend call is made in that case.
var ErrRequirementRequired = errors.New("requirement is required")

// ParseError means the model text did not parse as JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// Generator is implemented by Service and faked in transport tests.
type Generator interface {
	Generate(ctx context.Context, requirement string) (json.RawMessage, error)
}

// Options configures a Service.
type Options struct {
	Model  string
	Output normalize.Mode
	Logger zerolog.Logger
}

// Service builds the prompt, calls the backend and normalizes its reply.
// It holds no per-request state.
type Service struct {
	backend backend.Backend
	model   string
	mode    normalize.Mode
	log     zerolog.Logger
}

// New creates a Service on top of b.
func New(b backend.Backend, opts Options) *Service {
	mode := opts.Output
	if mode == "" {
		mode = normalize.Strict
	}
	return &Service{backend: b, model: opts.Model, mode: mode, log: opts.Logger}
}

// Generate returns the parsed model JSON. The shape is not validated: a document
// without "test_cases" is returned as-is.
func (s *Service) Generate(ctx context.Context, requirement string) (json.RawMessage, error) {
	s.log.Info().Str("requirement", requirement).Msg("received requirement")
	if strings.TrimSpace(requirement) == "" {
		s.log.Error().Str("kind", "validation").Msg("generation rejected: requirement is required")
		return nil, ErrRequirementRequired
	}

	s.log.Info().Str("model", s.model).Msg("sending to inference backend")
	text, err := s.backend.Generate(ctx, backend.Request{
		Model:  s.model,
		Prompt: BuildPrompt(requirement),
		Format: backend.FormatJSON,
	})
	if err != nil {
		kind := "backend_transport"
		var se *backend.StatusError
		if errors.As(err, &se) {
			kind = "backend_status"
		}
		s.log.Error().Str("kind", kind).Err(err).Msg("generation failed")
		return nil, err
	}

	out, err := normalize.Output(text, s.mode)
	if err != nil {
		s.log.Error().Str("kind", "parse").Err(err).Msg("generation failed")
		return nil, &ParseError{Err: err}
	}
	s.log.Info().Int("test_cases", countTestCases(out)).Msg("successfully generated test cases")
	return out, nil
}

// countTestCases is for logging only; anything unexpected counts as zero.
func countTestCases(doc json.RawMessage) int {
	var probe struct {
		TestCases []json.RawMessage `json:"test_cases"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return 0
	}
	return len(probe.TestCases)
}
