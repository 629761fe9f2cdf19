// Package service provides the business logic layer for building reading
// lists, resolving covers, and managing cover overrides.
package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/readquest/readquest-server/internal/curator"
	"github.com/readquest/readquest-server/internal/domain"
	domainerrors "github.com/readquest/readquest-server/internal/errors"
	"github.com/readquest/readquest-server/internal/recommend"
	"github.com/readquest/readquest-server/internal/store"
	"github.com/readquest/readquest-server/internal/validation"
)

// minMustRead is the floor for the "Must Read" bucket. The split is
// mustRead = max(minMustRead, count/2), clamped to the requested total.
const minMustRead = 5

// CurationOracle produces a curated reading list from a candidate pool.
type CurationOracle interface {
	Curate(ctx context.Context, req curator.CurationRequest) (*domain.RecommendationResult, error)
}

// RecommendationService orchestrates one reading-list request: validate,
// check the cache, build the candidate pool, delegate curation, cache the
// result.
type RecommendationService struct {
	selector  *recommend.Selector
	cache     *store.RecommendationCache
	oracle    CurationOracle
	validator *validation.Validator
	logger    *slog.Logger
}

// NewRecommendationService creates the orchestrator.
func NewRecommendationService(
	selector *recommend.Selector,
	cache *store.RecommendationCache,
	oracle CurationOracle,
	validator *validation.Validator,
	logger *slog.Logger,
) *RecommendationService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &RecommendationService{
		selector:  selector,
		cache:     cache,
		oracle:    oracle,
		validator: validator,
		logger:    logger,
	}
}

// Recommend returns the curated reading list for the request.
//
// A cache hit short-circuits everything else. On a miss, the candidate pool
// is built locally and handed to the oracle with exact count requirements;
// the oracle's output is stored verbatim, even when it diverges from the
// requested split (divergence is logged, not repaired). Empty results are
// returned but never cached, so the next identical request retries.
func (s *RecommendationService) Recommend(ctx context.Context, req domain.RecommendationRequest) (*domain.RecommendationResult, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	log := s.logger.With(
		"request_id", uuid.NewString(),
		"grade", req.Grade,
		"theme", req.Theme,
		"month", req.Month,
		"count", req.Count,
	)

	if cached, ok := s.cache.Get(req); ok {
		log.Info("recommendation cache hit", "books", len(cached.Books))
		return cached, nil
	}

	pool := s.selector.Select(req)
	if len(pool) == 0 {
		// Legitimate outcome for a query with no matches. Not cached.
		log.Info("no candidates for request", "query", req.Query)
		return &domain.RecommendationResult{Books: []domain.CuratedBook{}}, nil
	}

	mustRead := max(minMustRead, req.Count/2)
	if mustRead > req.Count {
		mustRead = req.Count
	}
	recommended := req.Count - mustRead

	result, err := s.oracle.Curate(ctx, curator.CurationRequest{
		Candidates:  pool,
		Total:       req.Count,
		MustRead:    mustRead,
		Recommended: recommended,
		Grade:       req.Grade,
		Theme:       req.Theme,
		Month:       req.Month,
		Query:       req.Query,
	})
	if err != nil {
		log.Error("curation failed", "error", err)
		return nil, domainerrors.Wrap(err, domainerrors.CodeUnavailable, "curation service failed")
	}

	s.observeSplit(log, result, req.Count, mustRead, recommended)

	if err := s.cache.Put(req, result); err != nil {
		// Caching is best-effort; the curated result is still good.
		log.Warn("failed to cache recommendation", "error", err)
	}

	log.Info("recommendation curated",
		"pool_size", len(pool),
		"books", len(result.Books),
	)

	return result, nil
}

// observeSplit logs when the oracle's output diverges from the mandated
// total or category split. The output is served as-is either way.
func (s *RecommendationService) observeSplit(log *slog.Logger, result *domain.RecommendationResult, total, mustRead, recommended int) {
	var gotMust, gotRec int
	for _, b := range result.Books {
		switch b.Category {
		case domain.CategoryMustRead:
			gotMust++
		case domain.CategoryRecommended:
			gotRec++
		}
	}

	if len(result.Books) != total || gotMust != mustRead || gotRec != recommended {
		log.Warn("oracle diverged from requested split",
			"want_total", total,
			"got_total", len(result.Books),
			"want_must_read", mustRead,
			"got_must_read", gotMust,
			"want_recommended", recommended,
			"got_recommended", gotRec,
		)
	}
}
