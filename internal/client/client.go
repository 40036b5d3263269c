// Package client talks to the testgen proxy over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/blastlab/testgen/internal/testcase"
)

// APIError is a non-2xx reply from the proxy.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.Details != "" {
		return fmt.Sprintf("proxy %d: %s: %s", e.StatusCode, msg, e.Details)
	}
	return fmt.Sprintf("proxy %d: %s", e.StatusCode, msg)
}

// Client calls POST <base>/api/generate.
type Client struct {
	base string
	http *http.Client
}

// New returns a Client for baseURL. A nil hc uses a client without timeout.
func New(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{base: strings.TrimRight(baseURL, "/"), http: hc}
}

// Generate sends requirement and decodes the test cases.
func (c *Client) Generate(ctx context.Context, requirement string) (*testcase.Result, error) {
	body, err := json.Marshal(map[string]string{"requirement": requirement})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("proxy request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read proxy response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		_ = json.Unmarshal(raw, apiErr)
		return nil, apiErr
	}
	var out testcase.Result
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode proxy response: %w", err)
	}
	return &out, nil
}
