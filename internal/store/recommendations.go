package store

import (
	"strconv"
	"strings"

	"github.com/readquest/readquest-server/internal/domain"
)

// recPrefix versions the recommendation cache keyspace. Bumping it orphans
// old entries instead of migrating them.
const recPrefix = "recs:v2:"

// RecommendationCache persists curated results keyed by the full request.
//
// Entries are only written for non-empty results so a failed or empty curation
// can be retried. Corrupt entries are evicted on read and reported as a miss.
type RecommendationCache struct {
	store *Store
}

// Key derives the deterministic cache key for a request. Every request field
// participates, so changing any one of them changes the key.
func (c *RecommendationCache) Key(req domain.RecommendationRequest) string {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = "none"
	}

	var b strings.Builder
	b.WriteString(recPrefix)
	b.WriteString(req.Grade)
	b.WriteByte(':')
	b.WriteString(req.Theme)
	b.WriteByte(':')
	b.WriteString(req.Month)
	b.WriteString(":count_")
	b.WriteString(strconv.Itoa(req.Count))
	b.WriteString(":search_")
	b.WriteString(query)
	return b.String()
}

// Get returns the cached result for the request, or (nil, false) on a miss.
// A stored value that no longer parses is deleted and treated as a miss;
// parse errors never propagate to the caller.
func (c *RecommendationCache) Get(req domain.RecommendationRequest) (*domain.RecommendationResult, bool) {
	key := []byte(c.Key(req))

	var result domain.RecommendationResult
	err := c.store.get(key, &result)
	if isNotFound(err) {
		return nil, false
	}
	if err != nil {
		c.store.logger.Warn("evicting corrupt recommendation cache entry",
			"key", string(key),
			"error", err,
		)
		_ = c.store.delete(key)
		return nil, false
	}

	return &result, true
}

// Put stores the result for the request. Empty results are never persisted.
func (c *RecommendationCache) Put(req domain.RecommendationRequest, result *domain.RecommendationResult) error {
	if result.Empty() {
		return nil
	}
	return c.store.set([]byte(c.Key(req)), result)
}
