package recommend

import (
	"strings"

	"github.com/readquest/readquest-server/internal/domain"
	"github.com/readquest/readquest-server/internal/normalize"
)

// Query match contributions.
const (
	titleMatchScore  = 50
	authorMatchScore = 40
	textMatchScore   = 20

	// queryMatchMinimum is the score a query-mode candidate must reach to stay
	// in contention. Below it the candidate is disqualified outright.
	queryMatchMinimum = 20

	// DisqualifiedScore marks a query-mode candidate with no match anywhere.
	// The strongly negative value lets the selector filter non-matches without
	// a separate boolean.
	DisqualifiedScore = -100
)

// themeBucketScore is awarded when the requested theme matches a bucket and
// the book's text contains one of the bucket's keywords.
const themeBucketScore = 30

// seasonalScore is the bonus for season-specific keywords in matching months.
const seasonalScore = 5

// themeBuckets maps each theme to its associated keyword set. Matching is
// keyword-based rather than field-based, so cross-bucket false positives are
// possible by design.
var themeBuckets = map[string][]string{
	"animals":    {"animal", "dog", "cat", "pig", "spider", "mouse", "bear", "horse", "pet", "zoo"},
	"fantasy":    {"magic", "dragon", "wizard", "fairy", "enchanted", "kingdom"},
	"history":    {"history", "historical", "president", "pioneer", "ancient", "colonial"},
	"science":    {"science", "space", "planet", "experiment", "invention", "dinosaur"},
	"friendship": {"friend", "friendship", "kindness", "together"},
	"mystery":    {"mystery", "detective", "clue", "secret", "missing"},
	"sports":     {"sport", "baseball", "soccer", "basketball", "team", "race"},
	"holidays":   {"holiday", "christmas", "halloween", "thanksgiving", "valentine"},
	"humor":      {"funny", "humor", "laugh", "silly", "joke"},
}

// seasonalKeywords maps months to their season-specific keyword pairs.
// Months outside this table contribute no seasonal bonus.
var seasonalKeywords = map[string][]string{
	"january":  {"snow", "winter"},
	"february": {"valentine", "heart"},
	"october":  {"halloween", "pumpkin"},
	"december": {"christmas", "holiday"},
}

// Score computes the deterministic relevance score for a book given the
// request's month, theme, and optional free-text query. Randomized
// tie-breaking is the caller's concern, not the scorer's.
func Score(book *domain.Book, month, theme, query string) float64 {
	text := book.SearchableText()
	score := 0.0

	if strings.TrimSpace(query) != "" {
		if normalize.Contains(book.Title, query) {
			score += titleMatchScore
		}
		if normalize.Contains(book.Author, query) {
			score += authorMatchScore
		}
		if normalize.Contains(text, query) {
			score += textMatchScore
		}
		if score < queryMatchMinimum {
			return DisqualifiedScore
		}
	}

	if theme != domain.AllThemes {
		folded := normalize.Fold(theme)
		for bucket, keywords := range themeBuckets {
			if !strings.Contains(folded, bucket) {
				continue
			}
			if containsAny(text, keywords) {
				score += themeBucketScore
			}
		}
	}

	if keywords, ok := seasonalKeywords[normalize.Fold(month)]; ok {
		if containsAny(text, keywords) {
			score += seasonalScore
		}
	}

	return score
}

// containsAny reports whether text contains at least one of the keywords,
// under folded comparison.
func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if normalize.Contains(text, kw) {
			return true
		}
	}
	return false
}
