package recommend

import (
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readquest/readquest-server/internal/catalog"
	"github.com/readquest/readquest-server/internal/domain"
)

// buildCatalog assembles a catalog from raw rows in dataset format.
func buildCatalog(t *testing.T, rows ...string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Parse(strings.NewReader(strings.Join(rows, "\n")), slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	return c
}

// row builds a dataset line with the given id, title, level, and theme.
func row(id, title string, level float64, theme string) string {
	return fmt.Sprintf("%s\tX\tC%s\t%s\t\tSome Author\t500L\t%.1f\tFiction\t\t%s\t\tA story.", id, id, title, level, theme)
}

// seededJitter returns a deterministic jitter source.
func seededJitter(seed uint64) func() float64 {
	r := rand.New(rand.NewPCG(seed, seed))
	return r.Float64
}

func TestSelect_GradeFilterUsesWidenedInterval(t *testing.T) {
	// 3rd grade resolves to [2.0, 3.8]; widened to [1.7, 4.1].
	c := buildCatalog(t,
		row("1", "Below", 1.6, "Animals"),
		row("2", "Edge Low", 1.7, "Animals"),
		row("3", "Middle", 3.0, "Animals"),
		row("4", "Edge High", 4.1, "Animals"),
		row("5", "Above", 4.2, "Animals"),
	)

	s := NewSelector(c, nil, WithJitter(seededJitter(1)))
	pool := s.Select(domain.RecommendationRequest{
		Grade: "3rd Grade", Month: "March", Theme: domain.AllThemes, Count: 10,
	})

	ids := make([]string, 0, len(pool))
	for _, b := range pool {
		ids = append(ids, b.ID)
	}
	assert.ElementsMatch(t, []string{"2", "3", "4"}, ids)
}

func TestSelect_QuerySkipsGradeFilter(t *testing.T) {
	c := buildCatalog(t,
		row("1", "Advanced Dragons", 9.9, "Fantasy"),
		row("2", "Easy Dragons", 1.0, "Fantasy"),
	)

	s := NewSelector(c, nil, WithJitter(seededJitter(1)))
	pool := s.Select(domain.RecommendationRequest{
		Grade: "3rd Grade", Month: "March", Theme: domain.AllThemes, Count: 10, Query: "dragons",
	})

	assert.Len(t, pool, 2)
}

func TestSelect_QueryDisqualifiesNonMatches(t *testing.T) {
	c := buildCatalog(t,
		row("1", "Dragon Tales", 3.0, "Fantasy"),
		row("2", "Ocean Life", 3.0, "Science"),
	)

	s := NewSelector(c, nil, WithJitter(seededJitter(1)))
	pool := s.Select(domain.RecommendationRequest{
		Grade: "3rd Grade", Month: "March", Theme: domain.AllThemes, Count: 10, Query: "dragon",
	})

	require.Len(t, pool, 1)
	assert.Equal(t, "Dragon Tales", pool[0].Title)
}

func TestSelect_SortsByScoreDescending(t *testing.T) {
	// Theme match puts thematic books ahead of neutral ones; jitter in [0,1)
	// can never bridge the 30-point bucket gap.
	c := buildCatalog(t,
		row("1", "Plain Story", 3.0, ""),
		row("2", "Dog Story", 3.0, "Animals"),
		row("3", "Another Plain", 3.0, ""),
	)

	s := NewSelector(c, nil, WithJitter(seededJitter(7)))
	pool := s.Select(domain.RecommendationRequest{
		Grade: "3rd Grade", Month: "March", Theme: "Animals", Count: 10,
	})

	require.NotEmpty(t, pool)
	assert.Equal(t, "2", pool[0].ID)
}

func TestSelect_TruncatesToFloorOrTwiceCount(t *testing.T) {
	rows := make([]string, 0, 100)
	for i := range 100 {
		rows = append(rows, row(fmt.Sprintf("%d", i), fmt.Sprintf("Book %d", i), 3.0, "Animals"))
	}
	c := buildCatalog(t, rows...)

	s := NewSelector(c, nil, WithJitter(seededJitter(3)))

	// Small count: floor of 40 applies.
	pool := s.Select(domain.RecommendationRequest{
		Grade: "3rd Grade", Month: "March", Theme: domain.AllThemes, Count: 10,
	})
	assert.Len(t, pool, 40)

	// Large count: 2x count wins over the floor.
	pool = s.Select(domain.RecommendationRequest{
		Grade: "3rd Grade", Month: "March", Theme: domain.AllThemes, Count: 30,
	})
	assert.Len(t, pool, 60)
}

func TestSelect_DeterministicWithSeededJitter(t *testing.T) {
	rows := make([]string, 0, 20)
	for i := range 20 {
		rows = append(rows, row(fmt.Sprintf("%d", i), fmt.Sprintf("Book %d", i), 3.0, "Animals"))
	}
	c := buildCatalog(t, rows...)

	req := domain.RecommendationRequest{Grade: "3rd Grade", Month: "March", Theme: "Animals", Count: 5}

	first := NewSelector(c, nil, WithJitter(seededJitter(42))).Select(req)
	second := NewSelector(c, nil, WithJitter(seededJitter(42))).Select(req)
	assert.Equal(t, first, second)
}
