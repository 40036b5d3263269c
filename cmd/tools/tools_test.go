package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/blastlab/testgen/internal/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	t.Setenv("TESTGEN_HOME_DIR", t.TempDir())
	var out, errOut bytes.Buffer
	ToolsCmd.SetOut(&out)
	ToolsCmd.SetErr(&errOut)
	ToolsCmd.SetArgs(args)
	err := ToolsCmd.Execute()
	var ec *exitcode.Error
	switch {
	case err == nil:
	case errors.As(err, &ec):
		code = ec.Code
	default:
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String(), errOut.String(), code
}

func TestVerify(t *testing.T) {
	cases := []struct {
		name, input, stdout, stderr string
		code                        int
	}{
		{"schema", `{"test_cases":[]}`, "VALID_JSON_SCHEMA\n", "", 0},
		{"object", `{"id":"TC-1","steps":["a"]}`, "VALID_JSON_OBJECT\n", "", 0},
		{"empty id", `{"id":"","steps":["a"]}`, "", "INVALID_SCHEMA\n", 1},
		{"array", `[1,2]`, "", "INVALID_SCHEMA\n", 1},
		{"garbage", `not json`, "", "JSON_PARSE_ERROR\n", 1},
		{"null", `null`, "", "JSON_PARSE_ERROR\n", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stdout, stderr, code := run(t, "verify", tc.input)
			require.Equal(t, tc.stdout, stdout)
			require.Equal(t, tc.stderr, stderr)
			require.Equal(t, tc.code, code)
		})
	}
}

func fakeOllama(t *testing.T, status int, reply string, seen *map[string]any) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"response": reply, "done": true})
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestHandshake(t *testing.T) {
	var seen map[string]any
	url := fakeOllama(t, http.StatusOK, "Yes, ready.", &seen)

	stdout, _, code := run(t, "handshake", "--url", url)
	require.Equal(t, 0, code)
	require.Equal(t, "Handshake Accepted!\nResponse: Yes, ready.\n", stdout)
	require.Equal(t, handshakePrompt, seen["prompt"])
	require.Equal(t, "llama3.2", seen["model"])
	require.NotContains(t, seen, "format")
	require.Equal(t, false, seen["stream"])
}

func TestHandshake_Refused(t *testing.T) {
	url := fakeOllama(t, http.StatusServiceUnavailable, "", nil)

	stdout, stderr, code := run(t, "handshake", "--url", url)
	require.Equal(t, 1, code)
	require.Empty(t, stdout)
	require.Equal(t, "Handshake Refused: HTTP Error: 503\n", stderr)
}

func TestGenerate(t *testing.T) {
	var seen map[string]any
	url := fakeOllama(t, http.StatusOK, `{"test_cases":[]}`, &seen)

	stdout, _, code := run(t, "generate", "list test cases", "qwen2.5", "--url", url)
	require.Equal(t, 0, code)
	require.Equal(t, "{\"test_cases\":[]}\n", stdout)
	require.Equal(t, "qwen2.5", seen["model"])
	require.Equal(t, "json", seen["format"])
	require.Equal(t, "list test cases", seen["prompt"])
}

func TestGenerate_Failed(t *testing.T) {
	url := fakeOllama(t, http.StatusNotFound, "", nil)

	_, stderr, code := run(t, "generate", "hi", "--url", url)
	require.Equal(t, 1, code)
	require.Equal(t, "Tool Failed: Ollama Error: Not Found\n", stderr)
}
