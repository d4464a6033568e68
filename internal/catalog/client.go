// Package catalog talks to the two remote catalogs: the species catalog
// (PokeAPI shaped) and the card catalog (pokemontcg.io shaped).
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/arcanaland/korkdex/internal/logging"
)

// DefaultTimeout bounds a single catalog request.
const DefaultTimeout = 60 * time.Second

// UserAgent is sent with every request.
const UserAgent = "korkdex"

// Transport failures.
var (
	ErrNotFound    = errors.New("not found")
	ErrRateLimited = errors.New("rate limited")
	ErrUnavailable = errors.New("catalog unavailable")
)

// APIError is a non-200 answer from a catalog.
type APIError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("catalog error from %s (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
}

// Is maps status codes onto the transport sentinels.
func (e *APIError) Is(target error) bool {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return target == ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return target == ErrRateLimited
	case e.StatusCode >= 500:
		return target == ErrUnavailable
	}
	return false
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithDelay sets the minimum pause between two consecutive requests.
func WithDelay(d time.Duration) Option {
	return func(c *Client) { c.delay = d }
}

// WithAccept replaces the Accept header, application/json by default.
func WithAccept(accept string) Option {
	return func(c *Client) { c.accept = accept }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *Client) {
		if value != "" {
			c.headers.Set(key, value)
		}
	}
}

// Client performs catalog requests one at a time.
type Client struct {
	http    *http.Client
	headers http.Header
	accept  string
	delay   time.Duration

	mu   sync.Mutex
	last time.Time
}

// NewClient creates a Client with DefaultTimeout and no delay.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: DefaultTimeout},
		headers: make(http.Header),
		accept:  "application/json",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// wait blocks until the configured delay since the previous request passed.
func (c *Client) wait(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.delay > 0 && !c.last.IsZero() {
		if d := c.delay - time.Since(c.last); d > 0 {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}
	}
	c.last = time.Now()
	return nil
}

// Get performs a GET request and returns the body of a 200 answer.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", c.accept)
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	logging.FromContext(ctx).Trace().
		Str("url", url).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("catalog request")

	if resp.StatusCode != http.StatusOK {
		msg := string(body)
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return nil, &APIError{Endpoint: req.URL.Host + req.URL.Path, StatusCode: resp.StatusCode, Message: msg}
	}
	return body, nil
}

// GetJSON performs a GET request and decodes the JSON answer into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	body, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
