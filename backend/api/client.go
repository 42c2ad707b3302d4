/*
 * backend/api/client.go
 *
 * Authenticated HTTP client for the remote analysis/collection service.
 * Credential injection and 401 handling live in the auth-aware transport
 * (backend/internal/authstate); this layer shapes requests and classifies
 * everything else into typed errors.
 */

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/argusdeck/app/backend/internal/config"
	"github.com/argusdeck/app/backend/model"
)

// maxErrorBodyBytes caps how much of an error response body lands in a
// StatusError message.
const maxErrorBodyBytes = 512

// Client talks to the remote SIEM service.
type Client struct {
	mu      sync.RWMutex
	baseURL string
	http    *http.Client
}

// NewClient builds a Client for the given base URL. The transport should be
// an auth-aware wrapper so Basic auth and 401 handling apply uniformly.
func NewClient(baseURL string, transport http.RoundTripper) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: transport,
			Timeout:   config.RequestTimeout,
		},
	}
}

// SetBaseURL swaps the service base URL, e.g. after a settings reload.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// BaseURL returns the current service base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// Incidents fetches up to limit incidents starting at offset.
func (c *Client) Incidents(ctx context.Context, limit, offset int) ([]model.Incident, error) {
	var out []model.Incident
	query := url.Values{"limit": {strconv.Itoa(limit)}, "offset": {strconv.Itoa(offset)}}
	if err := c.call(ctx, http.MethodGet, "/api/incidents/", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Events fetches up to limit events starting at offset.
func (c *Client) Events(ctx context.Context, limit, offset int) ([]model.Event, error) {
	var out []model.Event
	query := url.Values{"limit": {strconv.Itoa(limit)}, "offset": {strconv.Itoa(offset)}}
	if err := c.call(ctx, http.MethodGet, "/api/events/", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RunAnalysis triggers remote re-analysis over the trailing window.
// The call is idempotent-enough to repeat; dedup happens server-side.
func (c *Client) RunAnalysis(ctx context.Context, sinceMinutes int) (*model.AnalysisResult, error) {
	out := &model.AnalysisResult{}
	query := url.Values{"since_minutes": {strconv.Itoa(sinceMinutes)}}
	if err := c.call(ctx, http.MethodPost, "/api/analyze/run", query, out); err != nil {
		return nil, err
	}
	return out, nil
}

// CollectFile asks the service to ingest events from a log file it can reach.
func (c *Client) CollectFile(ctx context.Context, filePath string, maxLines int) (*model.CollectResult, error) {
	out := &model.CollectResult{}
	query := url.Values{"file_path": {filePath}, "max_lines": {strconv.Itoa(maxLines)}}
	if err := c.call(ctx, http.MethodPost, "/api/collect/file", query, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Me returns the authenticated principal. A 401 surfaces as
// *authstate.AuthInvalidError via the transport.
func (c *Client) Me(ctx context.Context) (*model.Principal, error) {
	out := &model.Principal{}
	if err := c.call(ctx, http.MethodGet, "/api/auth/me", nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// call issues one JSON request and decodes the response into out.
func (c *Client) call(ctx context.Context, method, path string, query url.Values, out any) error {
	endpoint := c.BaseURL() + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &StatusError{
			Status:  resp.StatusCode,
			Message: strings.TrimSpace(string(body)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ShapeError{Endpoint: path, Err: err}
	}
	return nil
}
