package api

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readquest/readquest-server/internal/domain"
	"github.com/readquest/readquest-server/internal/export"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createRecommendations",
		Method:      http.MethodPost,
		Path:        "/api/v1/recommendations",
		Summary:     "Build a reading list",
		Description: "Curates a reading list for a grade, theme, and month. Identical requests are served from the cache.",
		Tags:        []string{"Recommendations"},
	}, s.handleRecommendations)

	huma.Register(s.api, huma.Operation{
		OperationID: "exportRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/export",
		Summary:     "Export a reading list as XML",
		Description: "Curates (or fetches the cached) reading list and renders it as a downloadable XML document.",
		Tags:        []string{"Recommendations"},
	}, s.handleExportRecommendations)
}

// === DTOs ===

// RecommendationInput is the request body for building a reading list.
type RecommendationInput struct {
	Body struct {
		Grade string `json:"grade" doc:"Grade label, e.g. \"3rd Grade\""`
		Month string `json:"month" doc:"Month name used for seasonal boosts"`
		Theme string `json:"theme" doc:"Theme filter, or \"All Themes\" for none"`
		Count int    `json:"count" doc:"Number of books to curate (1-50)"`
		Query string `json:"query,omitempty" doc:"Optional free-text search; overrides grade filtering"`
	}
}

// CuratedBookResponse is one book of a curated list.
type CuratedBookResponse struct {
	ID         string  `json:"id" doc:"Catalog book ID"`
	Code       string  `json:"code,omitempty" doc:"Quiz code"`
	Title      string  `json:"title" doc:"Book title"`
	Series     string  `json:"series,omitempty" doc:"Series name"`
	Author     string  `json:"author" doc:"Author name"`
	Lexile     string  `json:"lexile,omitempty" doc:"Lexile label"`
	Level      float64 `json:"level" doc:"Numeric book level"`
	Genre      string  `json:"genre,omitempty" doc:"Genre"`
	Theme      string  `json:"theme,omitempty" doc:"Theme"`
	Summary    string  `json:"summary,omitempty" doc:"Short summary"`
	VideoLink  string  `json:"video_link,omitempty" doc:"Optional booktalk video link"`
	Difficulty string  `json:"difficulty" doc:"Beginner, Intermediate, or Advanced"`
	Category   string  `json:"category" doc:"Must Read or Recommended Reading"`
	CoverURL   string  `json:"cover_url,omitempty" doc:"Resolved cover URL, if any"`
}

// RecommendationResponse contains the curated reading list.
type RecommendationResponse struct {
	Books []CuratedBookResponse `json:"books" doc:"Curated books in oracle order"`
}

// RecommendationOutput wraps the response for Huma.
type RecommendationOutput struct {
	Body RecommendationResponse
}

// ExportInput describes the reading list to export.
type ExportInput struct {
	Grade string `query:"grade" doc:"Grade label"`
	Month string `query:"month" doc:"Month name"`
	Theme string `query:"theme" doc:"Theme filter"`
	Count int    `query:"count" doc:"Number of books"`
	Query string `query:"query" doc:"Optional free-text search"`
}

// ExportOutput is the raw XML document.
type ExportOutput struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	Body               []byte
}

// === Handlers ===

func (s *Server) handleRecommendations(ctx context.Context, input *RecommendationInput) (*RecommendationOutput, error) {
	result, err := s.recommendations.Recommend(ctx, domain.RecommendationRequest{
		Grade: input.Body.Grade,
		Month: input.Body.Month,
		Theme: input.Body.Theme,
		Count: input.Body.Count,
		Query: input.Body.Query,
	})
	if err != nil {
		return nil, err
	}

	resp := RecommendationResponse{Books: make([]CuratedBookResponse, 0, len(result.Books))}
	for _, b := range result.Books {
		resp.Books = append(resp.Books, CuratedBookResponse{
			ID:         b.ID,
			Code:       b.Code,
			Title:      b.Title,
			Series:     b.Series,
			Author:     b.Author,
			Lexile:     b.Lexile,
			Level:      b.Level,
			Genre:      b.Genre,
			Theme:      b.Theme,
			Summary:    b.Summary,
			VideoLink:  b.VideoLink,
			Difficulty: string(b.Difficulty),
			Category:   string(b.Category),
			CoverURL:   b.CoverURL,
		})
	}

	return &RecommendationOutput{Body: resp}, nil
}

func (s *Server) handleExportRecommendations(ctx context.Context, input *ExportInput) (*ExportOutput, error) {
	req := domain.RecommendationRequest{
		Grade: input.Grade,
		Month: input.Month,
		Theme: input.Theme,
		Count: input.Count,
		Query: input.Query,
	}

	result, err := s.recommendations.Recommend(ctx, req)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	list := export.NewReadingList(req, result, time.Now().Year())
	if err := list.Write(&buf); err != nil {
		return nil, err
	}

	return &ExportOutput{
		ContentType:        "application/xml; charset=utf-8",
		ContentDisposition: `attachment; filename="reading-list.xml"`,
		Body:               buf.Bytes(),
	}, nil
}
