// Package netstatus reports whether the shop's remote endpoint is reachable.
// The browser shows an offline banner when a check fails; local data stays
// usable either way.
package netstatus

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Status is the outcome of a connectivity check.
type Status int

const (
	// Unknown means no remote URL is configured.
	Unknown Status = iota
	Online
	Offline
)

// DefaultTimeout bounds a single check.
const DefaultTimeout = 3 * time.Second

func (s Status) String() string {
	switch s {
	case Online:
		return "online"
	case Offline:
		return "offline"
	default:
		return "unknown"
	}
}

// Checker checks URL with a HEAD request.
type Checker struct {
	URL     string
	Client  *http.Client
	Timeout time.Duration
	Logger  *zap.Logger
}

// New returns a Checker for url with the default client and timeout.
func New(url string, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{URL: url, Client: http.DefaultClient, Timeout: DefaultTimeout, Logger: logger}
}

// Check sends a HEAD request to the remote endpoint. Any response below
// 500 counts as online. An empty URL yields Unknown without touching the network.
func (c *Checker) Check(ctx context.Context) Status {
	if c.URL == "" {
		return Unknown
	}
	if err := c.ping(ctx); err != nil {
		c.logger().Debug("remote unreachable", zap.String("url", c.URL), zap.Error(err))
		return Offline
	}
	return Online
}

func (c *Checker) ping(ctx context.Context) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.URL, nil)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	return nil
}

func (c *Checker) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
