// Package domain contains the core business entities for the ReadQuest reading-list service.
package domain

// Book represents a single catalog entry parsed from the source dataset.
// Books are constructed once during catalog load and never mutated.
type Book struct {
	ID      string  `json:"id"`
	Code    string  `json:"code"`
	Title   string  `json:"title"`
	Series  string  `json:"series,omitempty"`
	Author  string  `json:"author"`
	Lexile  string  `json:"lexile,omitempty"` // Free-text label, e.g. "540L". Not used for filtering.
	Level   float64 `json:"level"`            // Numeric book level (BL) used for grade filtering.
	Genre   string  `json:"genre,omitempty"`
	Theme   string  `json:"theme,omitempty"`
	Summary string  `json:"summary,omitempty"`
}

// SearchableText concatenates the fields considered by free-text and keyword
// matching: title, author, theme, summary, genre.
func (b *Book) SearchableText() string {
	return b.Title + " " + b.Author + " " + b.Theme + " " + b.Summary + " " + b.Genre
}

// Category is the curated output bucket a book is assigned to.
type Category string

// The two mandatory output categories.
const (
	CategoryMustRead    Category = "Must Read"
	CategoryRecommended Category = "Recommended Reading"
)

// Difficulty is the tier derived from a book's numeric level.
type Difficulty string

// Difficulty tiers.
const (
	DifficultyBeginner     Difficulty = "Beginner"     // level < 3.0
	DifficultyIntermediate Difficulty = "Intermediate" // 3.0 <= level <= 5.0
	DifficultyAdvanced     Difficulty = "Advanced"     // level > 5.0
)

// DifficultyForLevel maps a numeric book level to its tier.
func DifficultyForLevel(level float64) Difficulty {
	switch {
	case level < 3.0:
		return DifficultyBeginner
	case level <= 5.0:
		return DifficultyIntermediate
	default:
		return DifficultyAdvanced
	}
}

// RecommendationRequest fully determines one curation run and its cache key.
type RecommendationRequest struct {
	Grade string `json:"grade" validate:"required"`
	Month string `json:"month" validate:"required"`
	Theme string `json:"theme" validate:"required"`
	Count int    `json:"count" validate:"required,min=1,max=50"`
	Query string `json:"query,omitempty"`
}

// AllThemes is the sentinel theme meaning "no thematic filter".
const AllThemes = "All Themes"

// CuratedBook is a catalog book as returned by the curation oracle,
// tagged with its category, difficulty tier, and display extras.
type CuratedBook struct {
	Book
	VideoLink  string     `json:"video_link,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Category   Category   `json:"category"`
	CoverURL   string     `json:"cover_url,omitempty"`
}

// RecommendationResult is the curated output for one request.
type RecommendationResult struct {
	Books []CuratedBook `json:"books"`
}

// Empty reports whether the result carries no books.
// Empty results are legitimate (query mode with no matches) but are never cached.
func (r *RecommendationResult) Empty() bool {
	return r == nil || len(r.Books) == 0
}

// CoverOverride is a user-supplied replacement cover for a catalog book.
// It lives in durable storage keyed by book ID and survives restarts.
type CoverOverride struct {
	BookID      string `json:"book_id"`
	AssetID     string `json:"asset_id"`
	ContentType string `json:"content_type"`
	BlurHash    string `json:"blur_hash,omitempty"`
	Data        []byte `json:"data"`
}
