package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/blastlab/testgen/internal/backend"
	gensvc "github.com/blastlab/testgen/internal/service/generate"
	"github.com/blastlab/testgen/internal/service/generate/normalize"
	"github.com/blastlab/testgen/internal/testcase"
	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeInference mimics the inference server's /api/generate endpoint.
type fakeInference struct {
	calls  atomic.Int32
	status int
	reply  func() string
}

func (f *fakeInference) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	if f.status != 0 && f.status != http.StatusOK {
		w.WriteHeader(f.status)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"response": f.reply(), "done": true})
}

func newProxy(t *testing.T, inf *fakeInference) *httptest.Server {
	t.Helper()
	backendSrv := httptest.NewServer(inf)
	t.Cleanup(backendSrv.Close)
	svc := gensvc.New(backend.NewOllama(backendSrv.URL, backendSrv.Client()), gensvc.Options{
		Model:  "llama3.2",
		Output: normalize.Strict,
		Logger: zerolog.Nop(),
	})
	proxy := httptest.NewServer(New(svc, zerolog.Nop()).Router())
	t.Cleanup(proxy.Close)
	return proxy
}

func post(t *testing.T, srv *httptest.Server, body string) (int, []byte) {
	t.Helper()
	resp, err := srv.Client().Post(srv.URL+"/api/generate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, buf.Bytes()
}

func makeCases(n int) []testcase.TestCase {
	out := make([]testcase.TestCase, n)
	for i := range out {
		out[i] = testcase.TestCase{
			ID:             fmt.Sprintf("TC-%03d", i+1),
			Title:          fmt.Sprintf("Case %d", i+1),
			Preconditions:  "User is logged out",
			Steps:          []string{"Open login page", fmt.Sprintf("Enter credentials #%d", i)},
			ExpectedResult: "User sees the dashboard",
			Priority:       []testcase.Priority{testcase.PriorityHigh, testcase.PriorityMedium, testcase.PriorityLow}[i%3],
		}
	}
	return out
}

func TestGenerate_RoundTripPreservesTestCases(t *testing.T) {
	for _, n := range []int{0, 1, 5} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			want := makeCases(n)
			inf := &fakeInference{reply: func() string {
				b, _ := json.Marshal(testcase.Result{TestCases: want})
				return string(b)
			}}
			srv := newProxy(t, inf)

			status, body := post(t, srv, `{"requirement":"Login with email and password"}`)
			require.Equal(t, http.StatusOK, status)

			var got testcase.Result
			require.NoError(t, json.Unmarshal(body, &got))
			require.Len(t, got.TestCases, n)
			if diff := cmp.Diff(want, got.TestCases); diff != "" {
				t.Fatalf("test cases changed in transit (-want +got):\n%s", diff)
			}
		})
	}
}

func TestGenerate_MissingRequirementNeverCallsBackend(t *testing.T) {
	inf := &fakeInference{reply: func() string { return `{}` }}
	srv := newProxy(t, inf)

	for _, body := range []string{`{}`, `{"requirement":""}`, `{"requirement":"   "}`, ``} {
		status, raw := post(t, srv, body)
		require.Equal(t, http.StatusBadRequest, status, "body %q", body)
		require.JSONEq(t, `{"error":"Requirement is required"}`, string(raw))
	}
	require.EqualValues(t, 0, inf.calls.Load())
}

func TestGenerate_InvalidBody(t *testing.T) {
	inf := &fakeInference{reply: func() string { return `{}` }}
	srv := newProxy(t, inf)

	status, raw := post(t, srv, `{"requirement":`)
	require.Equal(t, http.StatusBadRequest, status)
	var er ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &er))
	require.Equal(t, "Invalid JSON body", er.Error)
	require.EqualValues(t, 0, inf.calls.Load())
}

func TestGenerate_BackendStatusError(t *testing.T) {
	inf := &fakeInference{status: http.StatusInternalServerError}
	srv := newProxy(t, inf)

	status, raw := post(t, srv, `{"requirement":"checkout"}`)
	require.Equal(t, http.StatusInternalServerError, status)
	var er ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &er))
	require.Equal(t, "Failed to generate test cases", er.Error)
	require.Contains(t, er.Details, "Internal Server Error")
}

func TestGenerate_UnparseableModelTextKeepsServing(t *testing.T) {
	var reply atomic.Value
	reply.Store("not json")
	inf := &fakeInference{reply: func() string { return reply.Load().(string) }}
	srv := newProxy(t, inf)

	status, raw := post(t, srv, `{"requirement":"search"}`)
	require.Equal(t, http.StatusInternalServerError, status)
	var er ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &er))
	require.Equal(t, "Failed to generate test cases", er.Error)
	require.Contains(t, er.Details, "invalid character")

	reply.Store(`{"test_cases":[]}`)
	status, raw = post(t, srv, `{"requirement":"search"}`)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"test_cases":[]}`, string(raw))
}

func TestGenerate_MissingTestCasesPassesThrough(t *testing.T) {
	inf := &fakeInference{reply: func() string { return `{"summary":"no cases"}` }}
	srv := newProxy(t, inf)

	status, raw := post(t, srv, `{"requirement":"x"}`)
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"summary":"no cases"}`, string(raw))
}

type panicGenerator struct{}

func (panicGenerator) Generate(ctx context.Context, requirement string) (json.RawMessage, error) {
	panic("boom")
}

func TestRouter_RecoversFromPanics(t *testing.T) {
	srv := httptest.NewServer(New(panicGenerator{}, zerolog.Nop()).Router())
	defer srv.Close()

	status, _ := post(t, srv, `{"requirement":"x"}`)
	require.Equal(t, http.StatusInternalServerError, status)

	resp, err := srv.Client().Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_CORSPreflight(t *testing.T) {
	srv := httptest.NewServer(New(panicGenerator{}, zerolog.Nop()).Router())
	defer srv.Close()

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/api/generate", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
