// Package client is the outbound facade the terminal front end uses to reach
// the dashboard API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/school-dashboard-api/pkg/session"
)

// ErrServerUnreachable is returned when no HTTP response came back at all.
var ErrServerUnreachable = errors.New("cannot reach the server, make sure the backend is running")

// APIError is an envelope with success=false, or a non-2xx status.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s (%s, HTTP %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.Status)
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Code    string          `json:"code"`
}

type sessionSource interface {
	Current() *session.Record
}

// Client calls the dashboard API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	session sessionSource
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithSession attaches the bearer token of the current session to requests.
func WithSession(s sessionSource) Option {
	return func(c *Client) { c.session = s }
}

// New returns a Client rooted at baseURL, e.g. http://localhost:3000/api.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) (string, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// do performs the request and decodes data into out. On an APIError the data
// payload, if any, is still decoded into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) (string, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.session != nil {
		if rec := c.session.Current(); rec != nil && rec.AccessToken != "" {
			req.Header.Set("Authorization", "Bearer "+rec.AccessToken)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("%w: %v", ErrServerUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrServerUnreachable, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return "", &APIError{Status: resp.StatusCode, Message: "HTTP error! status: " + strconv.Itoa(resp.StatusCode)}
		}
		return "", fmt.Errorf("decode response: %w", err)
	}

	if out != nil && len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return env.Message, fmt.Errorf("decode data: %w", err)
		}
	}

	if !env.Success || resp.StatusCode >= http.StatusBadRequest {
		message := env.Message
		if message == "" {
			message = "HTTP error! status: " + strconv.Itoa(resp.StatusCode)
		}
		return message, &APIError{Status: resp.StatusCode, Code: env.Code, Message: message}
	}
	return env.Message, nil
}

func pageQuery(page, limit int) url.Values {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}
