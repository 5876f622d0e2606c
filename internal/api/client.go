// Package api is the HTTP client of the fleet REST backend. Every method
// returns canonical domain records built through package normalize.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ositopolar/fleet-console/internal/domain"
	"github.com/ositopolar/fleet-console/internal/normalize"
)

// ErrNotFound is matched by a *StatusError carrying a 404.
var ErrNotFound = errors.New("not found")

// TokenSource supplies the bearer token sent with every request. An empty
// token sends no Authorization header.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned for any non-2xx backend response.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	// Message is the backend's own message, when the body carried one.
	Message string
	// Resource names what was requested, for the 404 message.
	Resource string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	switch e.StatusCode {
	case http.StatusBadRequest:
		return "Invalid request: " + msg
	case http.StatusUnauthorized:
		return "Unauthorized access"
	case http.StatusForbidden:
		return "Access forbidden"
	case http.StatusNotFound:
		resource := e.Resource
		if resource == "" {
			resource = "Resource"
		}
		return resource + " not found"
	case http.StatusInternalServerError:
		return "Server error. Please try again later."
	}
	return fmt.Sprintf("Error %d: %s", e.StatusCode, msg)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// request describes one backend call.
type request struct {
	method   string
	path     string
	params   url.Values
	body     any
	resource string
}

// do performs r and returns the decoded payload, numbers kept as
// json.Number.
func (c *Client) do(ctx context.Context, r request) (any, error) {
	u := c.baseURL + r.path
	if len(r.params) > 0 {
		u += "?" + r.params.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", r.method, r.path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s: %w", r.method, r.path, err)
	}
	if resp.StatusCode >= 300 {
		return nil, &StatusError{
			Method:     r.method,
			Path:       r.path,
			StatusCode: resp.StatusCode,
			Message:    backendMessage(raw),
			Resource:   r.resource,
		}
	}
	return normalize.Decode(raw)
}

func backendMessage(body []byte) string {
	var m struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &m) != nil {
		return ""
	}
	return m.Message
}

func getMany[T any](ctx context.Context, c *Client, r request, build func(domain.Raw) T) ([]T, error) {
	r.method = http.MethodGet
	payload, err := c.do(ctx, r)
	if err != nil {
		return nil, err
	}
	return normalize.Many(normalize.Data(payload), build)
}

func callOne[T any](ctx context.Context, c *Client, r request, build func(domain.Raw) T) (T, error) {
	payload, err := c.do(ctx, r)
	if err != nil {
		var zero T
		return zero, err
	}
	return normalize.One(payload, build)
}

// first returns the first record of a filtered list lookup.
func first[T any](items []T, resource string, path string) (T, error) {
	if len(items) == 0 {
		var zero T
		return zero, &StatusError{Method: http.MethodGet, Path: path, StatusCode: http.StatusNotFound, Resource: resource}
	}
	return items[0], nil
}

func rawRecord(r domain.Raw) domain.Raw { return r }

func idPath(base string, id any) string {
	return base + "/" + url.PathEscape(fmt.Sprint(id))
}
