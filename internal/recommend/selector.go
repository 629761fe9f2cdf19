package recommend

import (
	"log/slog"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/readquest/readquest-server/internal/catalog"
	"github.com/readquest/readquest-server/internal/domain"
)

// Defaults for the empirically chosen selection tunables. Kept configurable
// rather than hard-coded.
const (
	// DefaultCandidateFloor is the minimum candidate pool size after truncation.
	DefaultCandidateFloor = 40

	// DefaultDisqualifyThreshold removes candidates whose combined score
	// (relevance plus jitter) is at or below it. Looser than the raw query
	// sentinel so near-miss non-matches survive when not query-disqualified.
	DefaultDisqualifyThreshold = -5.0

	// gradeWidening expands the resolved grade interval on both sides to
	// avoid starving the pool at range edges.
	gradeWidening = 0.3
)

// scoredCandidate pairs a book with its transient combined score.
// It exists only within a single selection pass.
type scoredCandidate struct {
	book  domain.Book
	score float64
}

// Selector builds the bounded, ordered candidate pool handed to the
// curation oracle.
type Selector struct {
	catalog             *catalog.Catalog
	jitter              func() float64
	candidateFloor      int
	disqualifyThreshold float64
	logger              *slog.Logger
}

// Option configures a Selector.
type Option func(*Selector)

// WithJitter replaces the tie-breaking randomness source. The function must
// return values in [0, 1). Inject a seeded source for deterministic tests.
func WithJitter(fn func() float64) Option {
	return func(s *Selector) { s.jitter = fn }
}

// WithCandidateFloor overrides the minimum pool size after truncation.
func WithCandidateFloor(n int) Option {
	return func(s *Selector) { s.candidateFloor = n }
}

// WithDisqualifyThreshold overrides the combined-score cutoff.
func WithDisqualifyThreshold(v float64) Option {
	return func(s *Selector) { s.disqualifyThreshold = v }
}

// NewSelector creates a selector over the given catalog.
func NewSelector(c *catalog.Catalog, logger *slog.Logger, opts ...Option) *Selector {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Selector{
		catalog:             c,
		jitter:              rand.Float64,
		candidateFloor:      DefaultCandidateFloor,
		disqualifyThreshold: DefaultDisqualifyThreshold,
		logger:              logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select filters, scores, and truncates the catalog into the candidate pool
// for the request.
//
// Without a free-text query, candidates are limited to books whose level falls
// inside the grade's resolved interval widened by 0.3 on each side. With a
// query, grade filtering is skipped entirely; text relevance overrides grade
// targeting. Ordering is by combined score descending, with uniform jitter in
// [0, 1) breaking ties.
func (s *Selector) Select(req domain.RecommendationRequest) []domain.Book {
	hasQuery := strings.TrimSpace(req.Query) != ""

	min, max := GradeRange(req.Grade)
	lo, hi := min-gradeWidening, max+gradeWidening

	var candidates []scoredCandidate
	for _, book := range s.catalog.Books() {
		if !hasQuery && (book.Level < lo || book.Level > hi) {
			continue
		}

		combined := Score(&book, req.Month, req.Theme, req.Query) + s.jitter()
		if combined <= s.disqualifyThreshold {
			continue
		}

		candidates = append(candidates, scoredCandidate{book: book, score: combined})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	limit := s.candidateFloor
	if n := req.Count * 2; n > limit {
		limit = n
	}
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	pool := make([]domain.Book, len(candidates))
	for i, c := range candidates {
		pool[i] = c.book
	}

	s.logger.Debug("candidate pool selected",
		"grade", req.Grade,
		"theme", req.Theme,
		"query", req.Query,
		"pool_size", len(pool),
	)

	return pool
}
