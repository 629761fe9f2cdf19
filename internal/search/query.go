package search

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a catalog search.
type SearchParams struct {
	Query string // User's search query

	// Filters
	Genre    string  // Filter by exact genre
	Theme    string  // Filter by exact theme
	MinLevel float64 // Minimum book level (0 = unbounded)
	MaxLevel float64 // Maximum book level (0 = unbounded)

	// Pagination
	Limit  int
	Offset int

	// Sorting
	SortBy    string // "relevance", "title", "author", "level"
	SortOrder string // "asc", "desc"

	// Options
	Highlight bool // Include match highlighting
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:     20,
		Offset:    0,
		SortBy:    "relevance",
		SortOrder: "desc",
		Highlight: true,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit represents a single search result.
type SearchHit struct {
	ID         string            `json:"id"`
	Score      float64           `json:"score"`
	Title      string            `json:"title"`
	Series     string            `json:"series,omitempty"`
	Author     string            `json:"author,omitempty"`
	Code       string            `json:"code,omitempty"`
	Level      float64           `json:"level,omitempty"`
	Genre      string            `json:"genre,omitempty"`
	Theme      string            `json:"theme,omitempty"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search executes a catalog search.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	searchQuery := buildSearchQuery(params)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)

	addSorting(searchRequest, params)

	if params.Highlight {
		searchRequest.Highlight = bleve.NewHighlight()
		searchRequest.Highlight.AddField("title")
		searchRequest.Highlight.AddField("author")
		searchRequest.Highlight.AddField("series")
	}

	searchRequest.Fields = []string{
		"id", "code", "title", "series", "author", "level", "genre", "theme",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{
			ID:    hit.ID,
			Score: hit.Score,
		}

		if t, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = t
		}
		if sn, ok := hit.Fields["series"].(string); ok {
			searchHit.Series = sn
		}
		if a, ok := hit.Fields["author"].(string); ok {
			searchHit.Author = a
		}
		if c, ok := hit.Fields["code"].(string); ok {
			searchHit.Code = c
		}
		if l, ok := hit.Fields["level"].(float64); ok {
			searchHit.Level = l
		}
		if g, ok := hit.Fields["genre"].(string); ok {
			searchHit.Genre = g
		}
		if th, ok := hit.Fields["theme"].(string); ok {
			searchHit.Theme = th
		}

		if len(hit.Fragments) > 0 {
			searchHit.Highlights = make(map[string]string)
			for field, fragments := range hit.Fragments {
				if len(fragments) > 0 {
					searchHit.Highlights[field] = fragments[0]
				}
			}
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query from params.
func buildSearchQuery(params SearchParams) query.Query {
	var queries []query.Query

	// Main text query: title carries the highest boost, then author and
	// series. Fuzzy and prefix variants on the title give typo tolerance
	// and autocomplete behavior.
	if params.Query != "" {
		textQueries := []query.Query{}

		titleMatch := bleve.NewMatchQuery(params.Query)
		titleMatch.SetField("title")
		titleMatch.SetBoost(3.0)
		textQueries = append(textQueries, titleMatch)

		authorMatch := bleve.NewMatchQuery(params.Query)
		authorMatch.SetField("author")
		authorMatch.SetBoost(2.0)
		textQueries = append(textQueries, authorMatch)

		seriesMatch := bleve.NewMatchQuery(params.Query)
		seriesMatch.SetField("series")
		seriesMatch.SetBoost(1.5)
		textQueries = append(textQueries, seriesMatch)

		summaryMatch := bleve.NewMatchQuery(params.Query)
		summaryMatch.SetField("summary")
		summaryMatch.SetBoost(0.5)
		textQueries = append(textQueries, summaryMatch)

		fuzzyQuery := bleve.NewFuzzyQuery(params.Query)
		fuzzyQuery.SetFuzziness(1)
		fuzzyQuery.SetField("title")
		fuzzyQuery.SetBoost(0.8)
		textQueries = append(textQueries, fuzzyQuery)

		if len(params.Query) >= 2 {
			prefixQuery := bleve.NewPrefixQuery(strings.ToLower(params.Query))
			prefixQuery.SetField("title")
			prefixQuery.SetBoost(0.5)
			textQueries = append(textQueries, prefixQuery)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(textQueries...))
	}

	// Genre filter (exact match)
	if params.Genre != "" {
		gq := bleve.NewTermQuery(params.Genre)
		gq.SetField("genre")
		queries = append(queries, gq)
	}

	// Theme filter (exact match)
	if params.Theme != "" {
		tq := bleve.NewTermQuery(params.Theme)
		tq.SetField("theme")
		queries = append(queries, tq)
	}

	// Level range filter
	if params.MinLevel > 0 || params.MaxLevel > 0 {
		min := params.MinLevel
		max := params.MaxLevel
		if params.MaxLevel == 0 {
			max = math.MaxFloat64
		}
		rangeQuery := bleve.NewNumericRangeQuery(&min, &max)
		rangeQuery.SetField("level")
		queries = append(queries, rangeQuery)
	}

	// Combine all queries with AND
	if len(queries) == 0 {
		return bleve.NewMatchAllQuery()
	}
	if len(queries) == 1 {
		return queries[0]
	}
	return bleve.NewConjunctionQuery(queries...)
}

// addSorting configures sort order.
func addSorting(req *bleve.SearchRequest, params SearchParams) {
	switch params.SortBy {
	case "title":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-title"})
		} else {
			req.SortBy([]string{"title"})
		}
	case "author":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-author", "-title"})
		} else {
			req.SortBy([]string{"author", "title"})
		}
	case "level":
		if params.SortOrder == "desc" {
			req.SortBy([]string{"-level", "title"})
		} else {
			req.SortBy([]string{"level", "title"})
		}
	default:
		// Relevance (score) is default - Bleve handles this
		req.SortBy([]string{"-_score"})
	}
}
