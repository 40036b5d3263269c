package chat

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/blastlab/testgen/internal/client"
	"github.com/blastlab/testgen/internal/testcase"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestBegin_Gate(t *testing.T) {
	c := NewConversation()

	_, err := c.Begin("   ")
	require.ErrorIs(t, err, ErrEmptyRequirement)
	require.Empty(t, c.Entries())

	p, err := c.Begin("login")
	require.NoError(t, err)
	require.True(t, c.InFlight())

	_, err = c.Begin("another")
	require.ErrorIs(t, err, ErrInFlight)

	entries := c.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, RoleUser, entries[0].Role)
	require.Equal(t, "login", entries[0].Content)
	require.Equal(t, p.ID, entries[1].ID)
	require.True(t, entries[1].IsLoading)
	require.Equal(t, LoadingMessage, entries[1].Content)
	require.Less(t, entries[0].ID, entries[1].ID)
}

func TestFinish(t *testing.T) {
	c := NewConversation()
	p, err := c.Begin("login")
	require.NoError(t, err)

	res := &testcase.Result{TestCases: []testcase.TestCase{{ID: "TC-001"}}}
	require.True(t, c.Finish(p.ID, res, nil))
	require.False(t, c.InFlight())
	require.False(t, c.Finish(p.ID, res, nil), "an entry resolves once")

	last := c.Entries()[1]
	require.False(t, last.IsLoading)
	require.Equal(t, SuccessMessage, last.Content)
	require.Equal(t, res.TestCases, c.LatestTestCases())

	p, err = c.Begin("logout")
	require.NoError(t, err)
	require.True(t, c.Finish(p.ID, nil, errors.New("boom")))
	last = c.Entries()[3]
	require.Equal(t, FailureMessage, last.Content)
	require.Nil(t, last.TestCases)
	require.Equal(t, res.TestCases, c.LatestTestCases())
}

func TestClearDuringFlight(t *testing.T) {
	c := NewConversation()
	p, err := c.Begin("first")
	require.NoError(t, err)
	c.Clear()
	require.Empty(t, c.Entries())
	require.True(t, c.InFlight(), "clear keeps the outstanding request gated")

	_, err = c.Begin("second")
	require.ErrorIs(t, err, ErrInFlight)

	require.False(t, c.Finish(p.ID, nil, nil))
	require.False(t, c.InFlight())
	require.Empty(t, c.Entries())
	require.Nil(t, c.LatestTestCases())

	_, err = c.Begin("second")
	require.NoError(t, err)
}

func TestStaleFinishKeepsGate(t *testing.T) {
	c := NewConversation()
	p1, err := c.Begin("first")
	require.NoError(t, err)
	require.True(t, c.Finish(p1.ID, &testcase.Result{}, nil))

	p2, err := c.Begin("second")
	require.NoError(t, err)

	// a late duplicate of the first reply must not release the second request
	require.False(t, c.Finish(p1.ID, nil, errors.New("late")))
	require.True(t, c.InFlight())
	_, err = c.Begin("third")
	require.ErrorIs(t, err, ErrInFlight)

	require.True(t, c.Finish(p2.ID, &testcase.Result{}, nil))
	require.False(t, c.InFlight())
	require.Len(t, c.Entries(), 4)
}

func TestSend_AgainstProxy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"test_cases":[{"id":"TC-001","priority":"High"},{"id":"TC-002","priority":"Low"}]}`))
	}))
	defer srv.Close()

	s := &Sender{Conv: NewConversation(), Gen: client.New(srv.URL, srv.Client()), Log: zerolog.Nop()}
	got, err := s.Send(context.Background(), "checkout flow")
	require.NoError(t, err)

	entries := s.Conv.Entries()
	require.Len(t, entries, 2)
	require.Equal(t, got, entries[1])
	require.Len(t, entries[1].TestCases, 2)
	require.False(t, entries[1].IsLoading)
	require.False(t, s.Conv.InFlight())
}

func TestSend_ProxyFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to generate test cases","details":"Ollama API error: Not Found"}`))
	}))
	defer srv.Close()

	s := &Sender{Conv: NewConversation(), Gen: client.New(srv.URL, srv.Client()), Log: zerolog.Nop()}
	got, err := s.Send(context.Background(), "checkout flow")
	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, FailureMessage, got.Content)
	require.False(t, got.IsLoading)
	require.Nil(t, got.TestCases)
}

type blockingGen struct {
	release chan struct{}
}

func (b *blockingGen) Generate(ctx context.Context, _ string) (*testcase.Result, error) {
	<-b.release
	return &testcase.Result{}, nil
}

func TestSend_SecondSendWhileInFlight(t *testing.T) {
	gen := &blockingGen{release: make(chan struct{})}
	s := &Sender{Conv: NewConversation(), Gen: gen, Log: zerolog.Nop()}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, _ = s.Send(context.Background(), "first")
	}()
	require.Eventually(t, s.Conv.InFlight, time.Second, time.Millisecond)

	_, err := s.Send(context.Background(), "second")
	require.ErrorIs(t, err, ErrInFlight)

	close(gen.release)
	wg.Wait()
	require.Len(t, s.Conv.Entries(), 2)
}
