package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	volumesBaseURL = "https://www.googleapis.com/books/v1/volumes"
	defaultLimit   = 5
)

// FindCover searches Google Books for the book and returns a thumbnail URL.
// Returns ErrNoCover when the search succeeds but no hit carries an image.
func (c *Client) FindCover(ctx context.Context, title, author string) (string, error) {
	if err := c.wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	query := "intitle:" + strings.TrimSpace(title)
	if author = strings.TrimSpace(author); author != "" {
		query += " inauthor:" + author
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("maxResults", fmt.Sprintf("%d", defaultLimit))
	params.Set("fields", "totalItems,items(id,volumeInfo(title,authors,imageLinks))")

	searchURL := volumesBaseURL + "?" + params.Encode()

	c.logger.Debug("searching Google Books",
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

	var volumesResp volumesResponse
	if err := json.UnmarshalRead(resp.Body, &volumesResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}

	for _, item := range volumesResp.Items {
		if u := item.VolumeInfo.ImageLinks.Thumbnail; u != "" {
			return u, nil
		}
		if u := item.VolumeInfo.ImageLinks.SmallThumbnail; u != "" {
			return u, nil
		}
	}

	return "", ErrNoCover
}
