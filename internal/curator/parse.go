package curator

import (
	"encoding/json/v2"
	"fmt"
	"strings"

	"github.com/readquest/readquest-server/internal/domain"
)

// curatedBookWire is the oracle's response schema for a single book.
// All fields are required by the contract; level must be numeric and
// difficulty/category must be members of their enums.
type curatedBookWire struct {
	ID         string  `json:"id"`
	Code       string  `json:"code"`
	Title      string  `json:"title"`
	Series     string  `json:"series"`
	Author     string  `json:"author"`
	Lexile     string  `json:"lexile"`
	Level      float64 `json:"level"`
	Genre      string  `json:"genre"`
	Theme      string  `json:"theme"`
	Summary    string  `json:"summary"`
	VideoLink  string  `json:"video_link"`
	Difficulty string  `json:"difficulty"`
	Category   string  `json:"category"`
	CoverURL   string  `json:"cover_url"`
}

// parseCuration validates the oracle response against the fixed schema.
// Any violation is a parse failure; the caller surfaces it as an error.
func parseCuration(text string) (*domain.RecommendationResult, error) {
	var wire []curatedBookWire
	if err := json.Unmarshal([]byte(stripFences(text)), &wire); err != nil {
		return nil, fmt.Errorf("decode book array: %w", err)
	}

	books := make([]domain.CuratedBook, 0, len(wire))
	for i, w := range wire {
		if w.Title == "" {
			return nil, fmt.Errorf("book %d: missing title", i)
		}

		category := domain.Category(w.Category)
		if category != domain.CategoryMustRead && category != domain.CategoryRecommended {
			return nil, fmt.Errorf("book %d (%s): invalid category %q", i, w.Title, w.Category)
		}

		difficulty := domain.Difficulty(w.Difficulty)
		switch difficulty {
		case domain.DifficultyBeginner, domain.DifficultyIntermediate, domain.DifficultyAdvanced:
		default:
			return nil, fmt.Errorf("book %d (%s): invalid difficulty %q", i, w.Title, w.Difficulty)
		}

		books = append(books, domain.CuratedBook{
			Book: domain.Book{
				ID:      w.ID,
				Code:    w.Code,
				Title:   w.Title,
				Series:  w.Series,
				Author:  w.Author,
				Lexile:  w.Lexile,
				Level:   w.Level,
				Genre:   w.Genre,
				Theme:   w.Theme,
				Summary: w.Summary,
			},
			VideoLink:  w.VideoLink,
			Difficulty: difficulty,
			Category:   category,
			CoverURL:   w.CoverURL,
		})
	}

	return &domain.RecommendationResult{Books: books}, nil
}

// verificationWire is the oracle's response schema for cover verification.
type verificationWire struct {
	Match  bool   `json:"match"`
	Reason string `json:"reason"`
}

// parseVerification decodes the verification verdict.
func parseVerification(text string) (bool, string, error) {
	var wire verificationWire
	if err := json.Unmarshal([]byte(stripFences(text)), &wire); err != nil {
		return false, "", fmt.Errorf("decode verdict: %w", err)
	}
	if wire.Reason == "" {
		return false, "", fmt.Errorf("verdict missing reason")
	}
	return wire.Match, wire.Reason, nil
}

// stripFences removes a Markdown code fence wrapper if the model added one
// despite the JSON response mandate.
func stripFences(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
