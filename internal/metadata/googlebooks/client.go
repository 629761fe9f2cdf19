// Package googlebooks provides access to the Google Books volumes API for book covers.
package googlebooks

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// ErrNoCover indicates the search completed but produced no usable cover.
var ErrNoCover = errors.New("googlebooks: no cover found")

// Client provides access to the Google Books volumes API.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a new Google Books client.
// The unauthenticated volumes endpoint tolerates roughly one request per
// second sustained; burst of 5 covers interactive use.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		logger:      logger,
	}
}

// wait blocks until rate limiter allows a request.
func (c *Client) wait(ctx context.Context) error {
	return c.rateLimiter.Wait(ctx)
}
