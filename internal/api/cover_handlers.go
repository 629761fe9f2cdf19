package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	domainerrors "github.com/readquest/readquest-server/internal/errors"
	"github.com/readquest/readquest-server/internal/service"
)

func (s *Server) registerCoverRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "resolveCover",
		Method:      http.MethodGet,
		Path:        "/api/v1/covers",
		Summary:     "Resolve a book cover",
		Description: "Races the cover sources for a title/author pair and returns the proxied URL of the first hit",
		Tags:        []string{"Covers"},
	}, s.handleResolveCover)
}

// === DTOs ===

// ResolveCoverInput identifies the book to find a cover for.
type ResolveCoverInput struct {
	Title  string `query:"title" validate:"required" doc:"Book title"`
	Author string `query:"author" doc:"Author name"`
}

// CoverResponse carries the resolved cover URL.
type CoverResponse struct {
	URL string `json:"url" doc:"Proxied cover image URL"`
}

// CoverOutput wraps the cover response for Huma.
type CoverOutput struct {
	Body CoverResponse
}

// === Handlers ===

func (s *Server) handleResolveCover(ctx context.Context, input *ResolveCoverInput) (*CoverOutput, error) {
	if input.Title == "" {
		return nil, domainerrors.Validation("title is required")
	}

	url, err := s.covers.Resolve(ctx, input.Title, input.Author)
	if err != nil {
		if errors.Is(err, service.ErrNoCover) {
			return nil, domainerrors.NotFoundf("no cover found for %q", input.Title)
		}
		return nil, err
	}

	return &CoverOutput{Body: CoverResponse{URL: url}}, nil
}
