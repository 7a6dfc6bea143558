package codevf

// This file defines functional options that configure the Client during
// construction. Keeping them in a standalone file avoids cluttering
// client.go and makes it easy to discover all available knobs at a glance.

import (
	"fmt"
	"net/http"
	"time"
)

// Option mutates the Client during New().
type Option func(*Client) error

// WithBaseURL points the client at a non-production endpoint.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) error {
		if baseURL == "" {
			return fmt.Errorf("empty base URL")
		}
		c.baseURL = baseURL
		return nil
	}
}

// WithHTTPClient injects a custom *http.Client. Useful for setting
// transport timeouts, tracing, custom TLS settings, etc.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return fmt.Errorf("nil http client")
		}
		c.http = hc
		return nil
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive")
		}
		c.cfg.Timeout = d
		if c.http != nil {
			c.http.Timeout = d
		}
		return nil
	}
}

// WithMaxAttempts bounds the total tries per operation, the first call
// included. 1 disables retries.
func WithMaxAttempts(n int) Option {
	return func(c *Client) error {
		if n < 1 {
			return fmt.Errorf("max attempts must be at least 1")
		}
		c.cfg.MaxAttempts = n
		return nil
	}
}

// WithBackoff sets the initial and maximum retry backoff intervals.
// Server-supplied Retry-After hints still override computed waits.
func WithBackoff(base, max time.Duration) Option {
	return func(c *Client) error {
		if base <= 0 || max < base {
			return fmt.Errorf("invalid backoff bounds")
		}
		c.cfg.BaseBackoff = base
		c.cfg.MaxInterval = max
		return nil
	}
}

// WithUserAgent overrides the default codevf-go/<version> User-Agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		c.userAgent = ua
		return nil
	}
}

// WithDebugLogging wraps the client's transport such that every
// request/response is logged when `enabled` is true.
func WithDebugLogging(enabled bool) Option {
	return func(c *Client) error {
		if enabled {
			if c.http == nil {
				c.http = &http.Client{Timeout: c.cfg.Timeout}
			}
			transport := c.http.Transport
			if transport == nil {
				transport = http.DefaultTransport
			}
			c.http.Transport = &debugTransport{base: transport}
		}
		return nil
	}
}
