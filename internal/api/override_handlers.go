package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerOverrideRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "uploadCoverOverride",
		Method:      http.MethodPut,
		Path:        "/api/v1/books/{id}/cover",
		Summary:     "Upload a replacement cover",
		Description: "Verifies the image against the catalog entry and stores it as the book's cover. Rejected uploads return the verifier's reason.",
		Tags:        []string{"Covers"},
	}, s.handleUploadOverride)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCoverOverride",
		Method:      http.MethodGet,
		Path:        "/api/v1/books/{id}/cover",
		Summary:     "Get a replacement cover",
		Description: "Returns the stored replacement cover image for a book",
		Tags:        []string{"Covers"},
	}, s.handleGetOverride)

	huma.Register(s.api, huma.Operation{
		OperationID:   "deleteCoverOverride",
		Method:        http.MethodDelete,
		Path:          "/api/v1/books/{id}/cover",
		Summary:       "Remove a replacement cover",
		Description:   "Removes the stored replacement cover. Removing a missing cover succeeds.",
		Tags:          []string{"Covers"},
		DefaultStatus: http.StatusNoContent,
	}, s.handleDeleteOverride)
}

// === DTOs ===

// UploadOverrideInput carries the raw image bytes for a book.
type UploadOverrideInput struct {
	BookID  string `path:"id" doc:"Catalog book ID"`
	RawBody []byte `contentType:"application/octet-stream"`
}

// OverrideResponse describes a stored replacement cover.
type OverrideResponse struct {
	BookID      string `json:"book_id" doc:"Catalog book ID"`
	AssetID     string `json:"asset_id" doc:"Stored asset identifier"`
	ContentType string `json:"content_type" doc:"Image content type"`
	BlurHash    string `json:"blur_hash,omitempty" doc:"Placeholder hash for progressive loading"`
}

// UploadOverrideOutput wraps the override metadata for Huma.
type UploadOverrideOutput struct {
	Body OverrideResponse
}

// GetOverrideInput identifies the book whose override to fetch.
type GetOverrideInput struct {
	BookID string `path:"id" doc:"Catalog book ID"`
}

// GetOverrideOutput is the raw stored image.
type GetOverrideOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// DeleteOverrideInput identifies the book whose override to remove.
type DeleteOverrideInput struct {
	BookID string `path:"id" doc:"Catalog book ID"`
}

// === Handlers ===

func (s *Server) handleUploadOverride(ctx context.Context, input *UploadOverrideInput) (*UploadOverrideOutput, error) {
	override, err := s.overrides.Upload(ctx, input.BookID, input.RawBody)
	if err != nil {
		return nil, err
	}

	return &UploadOverrideOutput{Body: OverrideResponse{
		BookID:      override.BookID,
		AssetID:     override.AssetID,
		ContentType: override.ContentType,
		BlurHash:    override.BlurHash,
	}}, nil
}

func (s *Server) handleGetOverride(_ context.Context, input *GetOverrideInput) (*GetOverrideOutput, error) {
	override, err := s.overrides.Get(input.BookID)
	if err != nil {
		return nil, err
	}

	return &GetOverrideOutput{
		ContentType: override.ContentType,
		Body:        override.Data,
	}, nil
}

func (s *Server) handleDeleteOverride(_ context.Context, input *DeleteOverrideInput) (*struct{}, error) {
	if err := s.overrides.Delete(input.BookID); err != nil {
		return nil, err
	}
	return &struct{}{}, nil
}
