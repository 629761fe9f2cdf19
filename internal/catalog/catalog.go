// Package catalog loads and holds the static book catalog.
//
// The catalog is parsed once at startup from a tab-separated dataset and is
// immutable afterwards. Malformed rows are skipped, never fatal.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/readquest/readquest-server/internal/domain"
)

// minColumns is the minimum number of tab-separated fields a row must have.
// Rows shorter than this are dropped.
const minColumns = 8

// Fixed column positions in the source dataset.
const (
	colID      = 0
	colCode    = 2
	colTitle   = 3
	colSeries  = 4
	colAuthor  = 5
	colLexile  = 6
	colLevel   = 7
	colGenre   = 8
	colTheme   = 10
	colSummary = 12
)

// Catalog is the ordered, immutable set of books available for selection.
type Catalog struct {
	books []domain.Book
	byID  map[string]int
}

// Books returns the catalog entries in dataset order.
// Callers must not mutate the returned slice.
func (c *Catalog) Books() []domain.Book {
	return c.books
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.books)
}

// FindByID returns the book with the given dataset ID. When the dataset
// carries duplicate IDs, the first occurrence wins.
func (c *Catalog) FindByID(id string) (domain.Book, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Book{}, false
	}
	return c.books[i], true
}

// Parse reads tab-separated book rows and builds a catalog.
//
// A row is discarded when it has fewer than 8 columns or when its level column
// does not parse as a finite decimal number. Every surviving entry therefore
// carries a usable numeric level.
func Parse(r io.Reader, logger *slog.Logger) (*Catalog, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var books []domain.Book
	skipped := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < minColumns {
			skipped++
			continue
		}

		level, err := strconv.ParseFloat(strings.TrimSpace(fields[colLevel]), 64)
		if err != nil || math.IsInf(level, 0) || math.IsNaN(level) {
			skipped++
			continue
		}

		books = append(books, domain.Book{
			ID:      fields[colID],
			Code:    fields[colCode],
			Title:   fields[colTitle],
			Series:  fields[colSeries],
			Author:  fields[colAuthor],
			Lexile:  fields[colLexile],
			Level:   level,
			Genre:   column(fields, colGenre),
			Theme:   column(fields, colTheme),
			Summary: column(fields, colSummary),
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	logger.Info("catalog loaded",
		"books", len(books),
		"skipped_rows", skipped,
	)

	byID := make(map[string]int, len(books))
	for i, b := range books {
		if _, exists := byID[b.ID]; !exists {
			byID[b.ID] = i
		}
	}

	return &Catalog{books: books, byID: byID}, nil
}

// Load parses the dataset file at path.
func Load(path string, logger *slog.Logger) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	return Parse(f, logger)
}

// column returns fields[i], or the empty string when the row is too short.
func column(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}
