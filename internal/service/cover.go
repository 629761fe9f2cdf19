package service

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/readquest/readquest-server/internal/config"
)

// ErrNoCover indicates both sources completed without producing a cover.
// The absence is deliberately not cached so later requests retry.
var ErrNoCover = errors.New("no cover found")

// CoverSource finds a cover image URL for a title/author pair.
// Implementations return their package-level no-cover sentinel when the
// lookup succeeds but produces nothing usable.
type CoverSource interface {
	FindCover(ctx context.Context, title, author string) (string, error)
}

// CoverService resolves cover URLs by racing two metadata sources.
//
// Successful resolutions are cached for the process lifetime, and concurrent
// requests for the same book collapse into a single in-flight lookup. Once a
// lookup settles, its in-flight entry is removed so a future request starts
// fresh rather than latching onto a stale failure.
type CoverService struct {
	primary   CoverSource
	secondary CoverSource
	covers    config.CoversConfig
	logger    *slog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	resolved map[string]string
}

// NewCoverService creates the resolution engine over the two sources.
func NewCoverService(primary, secondary CoverSource, covers config.CoversConfig, logger *slog.Logger) *CoverService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CoverService{
		primary:   primary,
		secondary: secondary,
		covers:    covers,
		logger:    logger,
		resolved:  make(map[string]string),
	}
}

// Resolve returns a proxied cover URL for the book, or ErrNoCover when
// neither source has one. The first source to return a usable URL wins;
// the loser's result is discarded.
func (s *CoverService) Resolve(ctx context.Context, title, author string) (string, error) {
	key := coverKey(title, author)

	s.mu.RLock()
	cached, ok := s.resolved[key]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	result, err, _ := s.group.Do(key, func() (any, error) {
		defer s.group.Forget(key)

		// Re-check under the flight: a caller that raced a just-settled
		// lookup lands here instead of querying the sources again.
		s.mu.RLock()
		settled, ok := s.resolved[key]
		s.mu.RUnlock()
		if ok {
			return settled, nil
		}

		raw, err := s.race(ctx, title, author)
		if err != nil {
			return "", err
		}

		proxied := s.proxyURL(raw)
		s.mu.Lock()
		s.resolved[key] = proxied
		s.mu.Unlock()

		return proxied, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// Reset drops the completed-resolution cache.
func (s *CoverService) Reset() {
	s.mu.Lock()
	s.resolved = make(map[string]string)
	s.mu.Unlock()
}

// race queries both sources concurrently and settles on the first usable URL.
// Only when both have failed does it report ErrNoCover.
func (s *CoverService) race(ctx context.Context, title, author string) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type outcome struct {
		url string
		err error
	}

	results := make(chan outcome, 2)
	lookup := func(src CoverSource) {
		u, err := src.FindCover(ctx, title, author)
		results <- outcome{url: u, err: err}
	}
	go lookup(s.primary)
	go lookup(s.secondary)

	for range 2 {
		r := <-results
		if r.err != nil || r.url == "" {
			if r.err != nil && !errors.Is(r.err, context.Canceled) {
				s.logger.Debug("cover source failed",
					"title", title,
					"author", author,
					"error", r.err,
				)
			}
			continue
		}
		// Winner found; cancel the straggler and stop waiting.
		cancel()
		return r.url, nil
	}

	return "", ErrNoCover
}

// proxyURL rewrites a raw source URL through the image proxy with the
// configured width and output format. The scheme is stripped because the
// proxy expects a protocol-relative target.
func (s *CoverService) proxyURL(raw string) string {
	if s.covers.ProxyBaseURL == "" {
		return raw
	}

	target := strings.TrimPrefix(raw, "https://")
	target = strings.TrimPrefix(target, "http://")

	params := url.Values{}
	params.Set("url", target)
	params.Set("w", strconv.Itoa(s.covers.ProxyWidth))
	params.Set("output", s.covers.ProxyFormat)

	return s.covers.ProxyBaseURL + "?" + params.Encode()
}

// coverKey builds the dedup key for a title/author pair.
func coverKey(title, author string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.ToLower(strings.TrimSpace(author))
}
