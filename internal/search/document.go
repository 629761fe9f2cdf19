// Package search provides full-text catalog browsing on a Bleve index.
//
// The index is a read-optimized projection of the immutable catalog: it is
// built once at startup and only rebuilt when the mapping version changes.
package search

import "github.com/readquest/readquest-server/internal/domain"

// BookDocument is the indexed projection of a catalog book.
type BookDocument struct {
	ID      string
	Code    string
	Title   string
	Series  string
	Author  string
	Level   float64
	Genre   string
	Theme   string
	Summary string
}

// NewBookDocument projects a catalog book into its indexed form.
func NewBookDocument(b domain.Book) *BookDocument {
	return &BookDocument{
		ID:      b.ID,
		Code:    b.Code,
		Title:   b.Title,
		Series:  b.Series,
		Author:  b.Author,
		Level:   b.Level,
		Genre:   b.Genre,
		Theme:   b.Theme,
		Summary: b.Summary,
	}
}

// ToMap converts the document to a map so field names match the mapping
// (lowercase) regardless of struct field casing.
func (d *BookDocument) ToMap() map[string]any {
	return map[string]any{
		"id":      d.ID,
		"code":    d.Code,
		"title":   d.Title,
		"series":  d.Series,
		"author":  d.Author,
		"level":   d.Level,
		"genre":   d.Genre,
		"theme":   d.Theme,
		"summary": d.Summary,
	}
}
