package curator

import (
	"encoding/json/v2"
	"fmt"
	"strings"
)

// buildCurationPrompt renders the curation contract: the serialized candidate
// pool, the exact required counts, and the difficulty thresholds. Counts are
// mandated in the contract even though the oracle is not guaranteed to honor
// them; the caller observes divergence.
func buildCurationPrompt(req CurationRequest) (string, error) {
	pool, err := json.Marshal(req.Candidates)
	if err != nil {
		return "", fmt.Errorf("marshal candidate pool: %w", err)
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		query = "N/A"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a children's librarian assembling a reading list for %s.
Month: %s. Theme: %s. Search query: %s.

Choose exactly %d books from the candidate pool below: exactly %d in category
"Must Read" and exactly %d in category "Recommended Reading". Use only books
from the pool; do not invent titles.

Assign each book a difficulty from its level: "Beginner" if level < 3.0,
"Intermediate" if 3.0 <= level <= 5.0, "Advanced" if level > 5.0.

Respond with a JSON array only. Each element must have exactly these fields:
id, code, title, series, author, lexile, level (number), genre, theme,
summary, video_link, difficulty, category, cover_url. Leave video_link and
cover_url as empty strings.

Candidate pool:
%s`, req.Grade, req.Month, req.Theme, query, req.Total, req.MustRead, req.Recommended, pool)

	return b.String(), nil
}

// buildVerificationPrompt renders the cover-match verification question.
func buildVerificationPrompt(title, author string) string {
	return fmt.Sprintf(`Look at this book cover image. Does it show the cover of
%q by %s? Respond with a JSON object only, with exactly two fields:
"match" (boolean) and "reason" (short string explaining the verdict).`, title, author)
}
