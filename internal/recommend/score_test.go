package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/readquest/readquest-server/internal/domain"
)

func charlottesWeb() domain.Book {
	return domain.Book{
		ID:      "7",
		Code:    "M0007",
		Title:   "Charlotte's Web",
		Author:  "E.B. White",
		Lexile:  "680L",
		Level:   3.4,
		Genre:   "Fiction",
		Theme:   "Animals",
		Summary: "A pig and a spider become friends.",
	}
}

func TestScore_TitleQueryMatch(t *testing.T) {
	book := charlottesWeb()

	// "charlotte" matches the title (+50) and the searchable text (+20).
	score := Score(&book, "March", domain.AllThemes, "charlotte")
	assert.InDelta(t, 70, score, 0.0001)
}

func TestScore_AuthorQueryMatch(t *testing.T) {
	book := charlottesWeb()

	// "white" matches the author (+40) and the searchable text (+20).
	score := Score(&book, "March", domain.AllThemes, "white")
	assert.InDelta(t, 60, score, 0.0001)
}

func TestScore_QueryDisqualification(t *testing.T) {
	book := charlottesWeb()

	// No match anywhere yields the sentinel, independent of theme and month.
	assert.InDelta(t, DisqualifiedScore, Score(&book, "March", domain.AllThemes, "volcano"), 0.0001)
	assert.InDelta(t, DisqualifiedScore, Score(&book, "December", "Animals", "volcano"), 0.0001)
}

func TestScore_ThemeBucketMatch(t *testing.T) {
	book := charlottesWeb()

	// "Animals" theme: summary mentions a pig and a spider.
	score := Score(&book, "March", "Animals", "")
	assert.InDelta(t, 30, score, 0.0001)
}

func TestScore_AllThemesSkipsBuckets(t *testing.T) {
	book := charlottesWeb()

	score := Score(&book, "March", domain.AllThemes, "")
	assert.InDelta(t, 0, score, 0.0001)
}

func TestScore_SeasonalBonus(t *testing.T) {
	book := domain.Book{
		Title:   "The Snowy Day",
		Author:  "Ezra Jack Keats",
		Summary: "A boy explores his neighborhood after the first snow of winter.",
	}

	assert.InDelta(t, seasonalScore, Score(&book, "January", domain.AllThemes, ""), 0.0001)
	// Other months contribute no seasonal bonus.
	assert.InDelta(t, 0, Score(&book, "June", domain.AllThemes, ""), 0.0001)
}

func TestScore_ContributionsAreAdditive(t *testing.T) {
	book := domain.Book{
		Title:   "The Christmas Dog",
		Author:  "Jane Doe",
		Theme:   "Holidays",
		Summary: "A stray dog finds a home on Christmas Eve.",
	}

	// Title query match (+50) + text match (+20), holidays bucket (+30),
	// animals bucket via "dog" (+30)... theme is Holidays so only the
	// holidays bucket applies, plus December seasonal (+5).
	score := Score(&book, "December", "Holidays", "christmas")
	assert.InDelta(t, 50+20+30+5, score, 0.0001)
}

func TestScore_DeterministicForIdenticalInputs(t *testing.T) {
	book := charlottesWeb()

	first := Score(&book, "October", "Animals", "charlotte")
	second := Score(&book, "October", "Animals", "charlotte")
	assert.Equal(t, first, second)
}
