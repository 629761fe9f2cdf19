// Package openlibrary provides access to the Open Library search API for book covers.
package openlibrary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoCover indicates the search completed but produced no usable cover.
var ErrNoCover = errors.New("openlibrary: no cover found")

// Client provides access to the Open Library search API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new Open Library client.
// Open Library asks for at most 100 requests per 5 minutes; one request per
// 3 seconds with a small burst stays comfortably inside that.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(3*time.Second), 5),
		logger:      logger,
	}
}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
