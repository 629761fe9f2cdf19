package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	searchBaseURL = "https://openlibrary.org/search.json"
	coversBaseURL = "https://covers.openlibrary.org/b/id"
	defaultLimit  = 5
)

// FindCover searches Open Library for the book and returns a large cover URL.
// Returns ErrNoCover when the search succeeds but no hit carries a cover.
func (c *Client) FindCover(ctx context.Context, title, author string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("title", strings.TrimSpace(title))
	if author = strings.TrimSpace(author); author != "" {
		params.Set("author", author)
	}
	params.Set("limit", fmt.Sprintf("%d", defaultLimit))
	params.Set("fields", "key,title,author_name,cover_i")

	searchURL := searchBaseURL + "?" + params.Encode()

	c.logger.Debug("searching Open Library",
		"title", title,
		"author", author,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	for _, doc := range searchResp.Docs {
		if doc.CoverID > 0 {
			return fmt.Sprintf("%s/%d-L.jpg", coversBaseURL, doc.CoverID), nil
		}
	}

	return "", ErrNoCover
}
