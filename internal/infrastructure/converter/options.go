package converter

import (
	"net/http"
	"strings"
	"time"
)

type Option func(*Client)

func Timeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.http.Timeout = timeout
		}
	}
}

// Format sets the model format; the suggested filename is model.<format>.
func Format(format string) Option {
	return func(c *Client) {
		format = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
		if format != "" {
			c.format = format
		}
	}
}

// MaxModelSize caps the bytes accepted from the service for one model.
func MaxModelSize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxModelSize = size
		}
	}
}

// HTTPClient replaces the underlying client, keeping no settings from the default.
func HTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}
