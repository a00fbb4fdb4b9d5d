package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// Default polite-client settings.
const (
	defaultTimeout     = 20 * time.Second
	defaultMinInterval = 1200 * time.Millisecond
	defaultMaxBody     = 4 << 20
	// footballdb returns 403 without a browser-like User-Agent.
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_11_5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/50.0.2661.102 Safari/537.36"
)

// ClientOption applies a configuration option to the Client.
type ClientOption func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithMinInterval sets the minimum delay between requests.
func WithMinInterval(d time.Duration) ClientOption {
	return func(c *Client) {
		if d >= 0 {
			c.minInterval = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient swaps the underlying http client, used by tests with
// httptest servers.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client is a polite scraping client: spaced requests, bounded bodies,
// a fixed User-Agent.
type Client struct {
	http        *http.Client
	userAgent   string
	minInterval time.Duration
	maxBody     int64

	mu   sync.Mutex
	last time.Time
}

// NewClient creates a polite client with configuration options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		http:        &http.Client{Timeout: defaultTimeout},
		userAgent:   defaultUserAgent,
		minInterval: defaultMinInterval,
		maxBody:     defaultMaxBody,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches a URL and returns the body, waiting out the politeness
// interval since the previous request first.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	if err := c.pace(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %d for %s", ErrUnexpectedStatus, resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}

func (c *Client) pace(ctx context.Context) error {
	c.mu.Lock()
	wait := c.minInterval - time.Since(c.last)
	c.last = time.Now().Add(wait)
	c.mu.Unlock()

	if wait <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}
