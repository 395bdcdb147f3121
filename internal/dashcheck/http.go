package dashcheck

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// client wraps http.Client with the dashboard's base URL.
type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string, timeout time.Duration) *client {
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// getJSON performs a GET and decodes a 200 response into out.
func (c *client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, http.StatusOK, out)
}

// postJSON performs a POST with a JSON body and decodes the response into out.
func (c *client) postJSON(ctx context.Context, path string, want int, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, want, out)
}

func (c *client) do(req *http.Request, want int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want {
		var e errorResponse
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if json.Unmarshal(body, &e) == nil && e.Code != "" {
			return fmt.Errorf("%s %s: status %d: %s: %s", req.Method, req.URL.Path, resp.StatusCode, e.Code, e.Message)
		}
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: decode: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

func (c *client) health(ctx context.Context) error {
	return c.getJSON(ctx, "/healthz", nil)
}

func (c *client) countries(ctx context.Context) ([]string, error) {
	var out []string
	return out, c.getJSON(ctx, "/api/countries", &out)
}

func (c *client) newSession(ctx context.Context) (string, error) {
	var out sessionResponse
	if err := c.postJSON(ctx, "/api/session", http.StatusCreated, nil, &out); err != nil {
		return "", err
	}
	return out.SessionID, nil
}

func (c *client) clickMap(ctx context.Context, session, country string) (callbackResponse, error) {
	req := callbackRequest{SessionID: session, Source: sourceMap}
	req.Click.Points = []callbackPoint{{Location: country}}
	var out callbackResponse
	return out, c.postJSON(ctx, "/api/callback", http.StatusOK, req, &out)
}

func (c *client) clickTrend(ctx context.Context, session string, year int) (callbackResponse, error) {
	req := callbackRequest{SessionID: session, Source: sourceTrend}
	req.Click.Points = []callbackPoint{{X: &year}}
	var out callbackResponse
	return out, c.postJSON(ctx, "/api/callback", http.StatusOK, req, &out)
}
