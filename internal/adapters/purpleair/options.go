package purpleair

import (
	"net/http"
	"time"

	"github.com/okian/stratus/pkg/logger"
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithPageSpan sets the size of each history page.
func WithPageSpan(span time.Duration) Option {
	return func(c *Client) {
		if span > 0 {
			c.pageSpan = span
		}
	}
}

// WithAverageMinutes sets the server-side averaging window in minutes.
func WithAverageMinutes(minutes int) Option {
	return func(c *Client) {
		if minutes > 0 {
			c.averageMinutes = minutes
		}
	}
}

// WithRequestDelay sets the fixed delay between page requests and
// between retries.
func WithRequestDelay(delay time.Duration) Option {
	return func(c *Client) {
		if delay >= 0 {
			c.requestDelay = delay
		}
	}
}

// WithMaxRetries sets how many times a failed page request is retried.
func WithMaxRetries(retries int) Option {
	return func(c *Client) {
		if retries >= 0 {
			c.maxRetries = retries
		}
	}
}

// WithLogger sets a custom logger for the client.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}
