package chat

import (
	"context"

	"github.com/blastlab/testgen/internal/testcase"
	"github.com/rs/zerolog"
)

// Generator is the proxy call; *client.Client implements it.
type Generator interface {
	Generate(ctx context.Context, requirement string) (*testcase.Result, error)
}

// Sender runs one send: Begin, a single Generate call, Finish.
type Sender struct {
	Conv *Conversation
	Gen  Generator
	Log  zerolog.Logger
}

// Send returns the resolved assistant entry. The error is the gate error from
// Begin or the Generate error; in the latter case the entry already carries
// FailureMessage.
func (s *Sender) Send(ctx context.Context, text string) (Entry, error) {
	p, err := s.Conv.Begin(text)
	if err != nil {
		return Entry{}, err
	}
	res, err := s.Gen.Generate(ctx, p.Requirement)
	s.Resolve(p, res, err)
	return s.entry(p.ID), err
}

// Resolve finishes p and logs the outcome.
func (s *Sender) Resolve(p Pending, res *testcase.Result, err error) {
	if err != nil {
		s.Log.Error().Err(err).Str("entry", p.ID).Msg("generate failed")
	} else if res != nil {
		s.Log.Info().Str("entry", p.ID).Int("test_cases", len(res.TestCases)).Msg("generate succeeded")
	}
	if !s.Conv.Finish(p.ID, res, err) {
		s.Log.Debug().Str("entry", p.ID).Msg("reply arrived after clear")
	}
}

func (s *Sender) entry(id string) Entry {
	for _, e := range s.Conv.Entries() {
		if e.ID == id {
			return e
		}
	}
	return Entry{ID: id}
}
