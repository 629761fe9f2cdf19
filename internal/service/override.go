package service

import (
	"context"
	"log/slog"

	"github.com/readquest/readquest-server/internal/catalog"
	"github.com/readquest/readquest-server/internal/domain"
	domainerrors "github.com/readquest/readquest-server/internal/errors"
	"github.com/readquest/readquest-server/internal/id"
	"github.com/readquest/readquest-server/internal/images"
	"github.com/readquest/readquest-server/internal/store"
)

// maxOverrideBytes bounds the accepted upload size. Covers are small; a
// multi-megabyte upload is almost always a mistake.
const maxOverrideBytes = 5 * 1024 * 1024

// CoverVerifier judges whether an uploaded image actually shows the cover of
// the claimed book. Implementations are fail-closed: a negative verdict with
// a reason, never an error.
type CoverVerifier interface {
	VerifyCover(ctx context.Context, image []byte, format, title, author string) (bool, string)
}

// OverrideService manages user-supplied replacement covers.
//
// Every upload is verified against the catalog entry before it is accepted;
// an image the verifier cannot positively match is rejected with the
// verifier's reason.
type OverrideService struct {
	catalog   *catalog.Catalog
	overrides *store.CoverOverrides
	verifier  CoverVerifier
	logger    *slog.Logger
}

// NewOverrideService creates the override manager.
func NewOverrideService(c *catalog.Catalog, overrides *store.CoverOverrides, verifier CoverVerifier, logger *slog.Logger) *OverrideService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OverrideService{
		catalog:   c,
		overrides: overrides,
		verifier:  verifier,
		logger:    logger,
	}
}

// Upload verifies and stores a replacement cover for a catalog book.
// Returns the stored override on success, or a validation error carrying the
// rejection reason when verification fails.
func (s *OverrideService) Upload(ctx context.Context, bookID string, data []byte) (*domain.CoverOverride, error) {
	book, ok := s.catalog.FindByID(bookID)
	if !ok {
		return nil, domainerrors.NotFoundf("book %s not found in catalog", bookID)
	}

	if len(data) == 0 {
		return nil, domainerrors.Validation("cover image is empty")
	}
	if len(data) > maxOverrideBytes {
		return nil, domainerrors.Validation("cover image exceeds the 5 MB limit")
	}

	img, format, err := images.Decode(data)
	if err != nil {
		return nil, domainerrors.Validation("cover image is not a supported format (jpeg, png, gif, webp)")
	}

	data, format, err = images.DownscaleIfOversized(data, img, format)
	if err != nil {
		return nil, domainerrors.Wrap(err, domainerrors.CodeInternal, "process cover image")
	}

	match, reason := s.verifier.VerifyCover(ctx, data, format, book.Title, book.Author)
	if !match {
		s.logger.Info("cover override rejected",
			"book_id", bookID,
			"title", book.Title,
			"reason", reason,
		)
		return nil, domainerrors.Validation(reason)
	}

	override := &domain.CoverOverride{
		BookID:      bookID,
		AssetID:     id.MustGenerate("cov"),
		ContentType: "image/" + format,
		Data:        data,
	}

	if hash, err := images.ComputeBlurHash(img); err == nil {
		override.BlurHash = hash
	} else {
		s.logger.Warn("blurhash computation failed", "book_id", bookID, "error", err)
	}

	if err := s.overrides.Put(override); err != nil {
		return nil, err
	}

	s.logger.Info("cover override stored",
		"book_id", bookID,
		"asset_id", override.AssetID,
		"content_type", override.ContentType,
		"size", len(data),
	)

	return override, nil
}

// Get returns the stored override for a book.
func (s *OverrideService) Get(bookID string) (*domain.CoverOverride, error) {
	return s.overrides.Get(bookID)
}

// Delete removes the override for a book. Removing a missing override
// succeeds.
func (s *OverrideService) Delete(bookID string) error {
	if err := s.overrides.Delete(bookID); err != nil {
		return err
	}
	s.logger.Info("cover override removed", "book_id", bookID)
	return nil
}
