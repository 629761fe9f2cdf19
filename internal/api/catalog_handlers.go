package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readquest/readquest-server/internal/search"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Browse the catalog",
		Description: "Full-text search over the book catalog with genre, theme, and level filters",
		Tags:        []string{"Catalog"},
	}, s.handleCatalogSearch)
}

// === DTOs ===

// CatalogSearchInput contains parameters for browsing the catalog.
type CatalogSearchInput struct {
	Query    string  `query:"q" doc:"Search query; omit to browse everything"`
	Genre    string  `query:"genre" doc:"Exact genre filter"`
	Theme    string  `query:"theme" doc:"Exact theme filter"`
	MinLevel float64 `query:"min_level" doc:"Minimum book level"`
	MaxLevel float64 `query:"max_level" doc:"Maximum book level"`
	Limit    int     `query:"limit" doc:"Max results (default 20)"`
	Offset   int     `query:"offset" doc:"Pagination offset"`
	SortBy   string  `query:"sort" doc:"relevance, title, author, or level"`
	Order    string  `query:"order" doc:"asc or desc"`
}

// CatalogHitResponse is a single catalog search result.
type CatalogHitResponse struct {
	ID         string            `json:"id" doc:"Catalog book ID"`
	Score      float64           `json:"score" doc:"Search relevance score"`
	Title      string            `json:"title" doc:"Book title"`
	Series     string            `json:"series,omitempty" doc:"Series name"`
	Author     string            `json:"author,omitempty" doc:"Author name"`
	Code       string            `json:"code,omitempty" doc:"Quiz code"`
	Level      float64           `json:"level,omitempty" doc:"Numeric book level"`
	Genre      string            `json:"genre,omitempty" doc:"Genre"`
	Theme      string            `json:"theme,omitempty" doc:"Theme"`
	Highlights map[string]string `json:"highlights,omitempty" doc:"Highlighted matches"`
}

// CatalogSearchResponse contains catalog search results.
type CatalogSearchResponse struct {
	Query  string               `json:"query" doc:"Original search query"`
	Total  uint64               `json:"total" doc:"Total matches"`
	TookMs int64                `json:"took_ms" doc:"Search duration in milliseconds"`
	Hits   []CatalogHitResponse `json:"hits" doc:"Search results"`
}

// CatalogSearchOutput wraps the search response for Huma.
type CatalogSearchOutput struct {
	Body CatalogSearchResponse
}

// === Handlers ===

func (s *Server) handleCatalogSearch(ctx context.Context, input *CatalogSearchInput) (*CatalogSearchOutput, error) {
	params := search.DefaultSearchParams()
	params.Query = input.Query
	params.Genre = input.Genre
	params.Theme = input.Theme
	params.MinLevel = input.MinLevel
	params.MaxLevel = input.MaxLevel
	if input.Limit > 0 {
		params.Limit = input.Limit
	}
	if input.Offset > 0 {
		params.Offset = input.Offset
	}
	if input.SortBy != "" {
		params.SortBy = input.SortBy
	}
	if input.Order != "" {
		params.SortOrder = input.Order
	}

	result, err := s.searchIndex.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	resp := CatalogSearchResponse{
		Query:  result.Query,
		Total:  result.Total,
		TookMs: result.TookMs,
		Hits:   make([]CatalogHitResponse, 0, len(result.Hits)),
	}
	for _, hit := range result.Hits {
		resp.Hits = append(resp.Hits, CatalogHitResponse{
			ID:         hit.ID,
			Score:      hit.Score,
			Title:      hit.Title,
			Series:     hit.Series,
			Author:     hit.Author,
			Code:       hit.Code,
			Level:      hit.Level,
			Genre:      hit.Genre,
			Theme:      hit.Theme,
			Highlights: hit.Highlights,
		})
	}

	return &CatalogSearchOutput{Body: resp}, nil
}
