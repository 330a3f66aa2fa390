package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nhle/taskbot/internal/tracker"
)

// APIError is a non-2xx response from Jira. Messages and Fields hold the
// decoded standard error body when present.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Messages   []string
	Fields     map[string]string
	Body       string
}

func (e *APIError) Error() string {
	if len(e.Messages) > 0 || len(e.Fields) > 0 {
		return fmt.Sprintf("jira API error (%d) on %s %s: %s %v",
			e.StatusCode, e.Method, e.Path, strings.Join(e.Messages, "; "), e.Fields)
	}
	return fmt.Sprintf("unexpected status %d on %s %s: %s",
		e.StatusCode, e.Method, e.Path, e.Body)
}

// IsNotFound reports whether err is a 404 from Jira.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client is a thin HTTP client for the Jira Server/DC REST API v2 and the
// agile API. It handles Bearer token authentication, JSON marshaling and
// retry with exponential backoff on HTTP 429.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	maxRetries int
	maxBackoff time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default 30s-timeout HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithMaxBackoff caps the wait between 429 retries.
func WithMaxBackoff(d time.Duration) Option {
	return func(c *Client) { c.maxBackoff = d }
}

// NewClient creates a Jira HTTP client. baseURL is the root URL of the
// instance (e.g. https://jira.corp.example.com), token a Personal Access
// Token.
func NewClient(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: 3,
		maxBackoff: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the instance root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(ctx context.Context, path string, result any) error {
	return c.doJSON(ctx, http.MethodGet, path, nil, result)
}

// Post performs an HTTP POST request with a JSON body and unmarshals the
// JSON response.
func (c *Client) Post(ctx context.Context, path string, body, result any) error {
	return c.doJSON(ctx, http.MethodPost, path, body, result)
}

// PostFile uploads data as the multipart form field "file".
func (c *Client) PostFile(ctx context.Context, path, filename string, data []byte, result any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("creating form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("writing form file: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing multipart body: %w", err)
	}

	headers := http.Header{}
	headers.Set("Content-Type", w.FormDataContentType())
	// Jira rejects attachment uploads without this header.
	headers.Set("X-Atlassian-Token", "no-check")
	return c.do(ctx, http.MethodPost, path, buf.Bytes(), headers, result)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, result any) error {
	var payload []byte
	headers := http.Header{}
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		payload = data
		headers.Set("Content-Type", "application/json")
	}
	return c.do(ctx, method, path, payload, headers, result)
}

// do builds the request, handles auth, rate limiting and JSON decoding of
// the response. payload is replayed on every retry.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	payload []byte,
	headers http.Header,
	result any,
) error {
	url := c.baseURL + path

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}

		req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+c.token)
		req.Header.Set("Accept", "application/json")
		for k, v := range headers {
			req.Header[k] = v
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("executing request %s %s: %w", method, path, err)
		}

		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			return fmt.Errorf("reading response body: %w", readErr)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			wait := c.retryAfterDuration(resp, attempt)
			lastErr = fmt.Errorf("rate limited (429) on %s %s", method, path)
			slog.WarnContext(ctx, "jira rate limited", "path", path, "attempt", attempt, "wait", wait)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
				continue
			}
		}

		if resp.StatusCode == http.StatusUnauthorized {
			return &tracker.AuthError{
				Tracker: "jira",
				Message: "authentication failed (401): check your Personal Access Token for " + c.baseURL,
			}
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := &APIError{
				StatusCode: resp.StatusCode,
				Method:     method,
				Path:       path,
				Body:       string(respBody),
			}
			var jiraErr ErrorResponse
			if json.Unmarshal(respBody, &jiraErr) == nil {
				apiErr.Messages = jiraErr.ErrorMessages
				apiErr.Fields = jiraErr.Errors
			}
			return apiErr
		}

		// No content to parse (e.g. 204).
		if result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
			return nil
		}

		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
		}

		return nil
	}

	return fmt.Errorf("max retries (%d) exceeded: %w", c.maxRetries, lastErr)
}

// retryAfterDuration reads the Retry-After header and computes a wait
// duration, falling back to exponential backoff when it is missing.
func (c *Client) retryAfterDuration(resp *http.Response, attempt int) time.Duration {
	if header := resp.Header.Get("Retry-After"); header != "" {
		if seconds, err := strconv.Atoi(header); err == nil {
			return min(time.Duration(seconds)*time.Second, c.maxBackoff)
		}
	}

	// 1s, 2s, 4s, ...
	return min(time.Duration(1<<uint(attempt))*time.Second, c.maxBackoff)
}
