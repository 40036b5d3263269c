// Package chat holds the client-side conversation: user requirements and the
// assistant replies carrying generated test cases.
package chat

import (
	"crypto/rand"
	"errors"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/blastlab/testgen/internal/testcase"
	"github.com/oklog/ulid/v2"
)

const (
	LoadingMessage = "Analyzing requirements and generating test cases..."
	SuccessMessage = "I have generated the following test cases based on your requirements:"
	FailureMessage = "Failed to generate test cases. Please ensure the inference backend is running and the model is pulled."
	WelcomeMessage = "Hello! Describe a feature or paste a requirement and I will draft test cases for it."
)

var (
	ErrEmptyRequirement = errors.New("requirement is empty")
	ErrInFlight         = errors.New("a request is already in flight")
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Entry is one message of the conversation.
type Entry struct {
	ID        string
	Role      Role
	Content   string
	TestCases []testcase.TestCase
	IsLoading bool
	CreatedAt time.Time
}

// Pending identifies the assistant placeholder created by Begin.
type Pending struct {
	ID          string
	Requirement string
}

// Conversation is an ordered, append-only log with a single in-flight gate.
// It is safe for concurrent use.
type Conversation struct {
	mu      sync.Mutex
	entries []Entry
	// pending is the placeholder ID of the outstanding request, "" when idle.
	pending  string
	entropy  io.Reader
	now      func() time.Time
}

// NewConversation returns an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
}

func (c *Conversation) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), c.entropy).String()
}

// Begin appends the user entry and a loading assistant placeholder. It
// refuses blank text and concurrent sends without changing anything.
func (c *Conversation) Begin(text string) (Pending, error) {
	if strings.TrimSpace(text) == "" {
		return Pending{}, ErrEmptyRequirement
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending != "" {
		return Pending{}, ErrInFlight
	}
	now := c.now()
	c.entries = append(c.entries, Entry{
		ID:        c.newID(now),
		Role:      RoleUser,
		Content:   text,
		CreatedAt: now,
	})
	p := Pending{ID: c.newID(now), Requirement: text}
	c.entries = append(c.entries, Entry{
		ID:        p.ID,
		Role:      RoleAssistant,
		Content:   LoadingMessage,
		IsLoading: true,
		CreatedAt: now,
	})
	c.pending = p.ID
	return p, nil
}

// Finish resolves the placeholder id and releases the gate if id is the
// outstanding request. It reports false when id is not a loading entry,
// e.g. after Clear.
func (c *Conversation) Finish(id string, res *testcase.Result, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id != "" && id == c.pending {
		c.pending = ""
	}
	for i := range c.entries {
		e := &c.entries[i]
		if e.ID != id || !e.IsLoading {
			continue
		}
		e.IsLoading = false
		if err != nil {
			e.Content = FailureMessage
			return true
		}
		e.Content = SuccessMessage
		if res != nil {
			e.TestCases = res.TestCases
		}
		return true
	}
	return false
}

// Clear drops every entry. An outstanding request keeps the gate closed
// until its Finish arrives.
func (c *Conversation) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
}

// Entries returns a copy of the log.
func (c *Conversation) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Conversation) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != ""
}

// LatestTestCases returns the test cases of the most recent successful reply.
func (c *Conversation) LatestTestCases() []testcase.TestCase {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.entries) - 1; i >= 0; i-- {
		if e := c.entries[i]; e.Role == RoleAssistant && len(e.TestCases) > 0 {
			return e.TestCases
		}
	}
	return nil
}
