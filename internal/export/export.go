// Package export renders curated reading lists as downloadable XML.
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/readquest/readquest-server/internal/domain"
)

// ReadingList is the XML document root for an exported list.
type ReadingList struct {
	XMLName xml.Name     `xml:"ReadingList"`
	Grade   string       `xml:"grade,attr"`
	Theme   string       `xml:"theme,attr"`
	Month   string       `xml:"month,attr"`
	Year    int          `xml:"year,attr"`
	Books   []exportBook `xml:"Book"`
}

type exportBook struct {
	Title      string  `xml:"Title"`
	Author     string  `xml:"Author"`
	Lexile     string  `xml:"Lexile,omitempty"`
	BookLevel  float64 `xml:"BookLevel"`
	Difficulty string  `xml:"Difficulty"`
	Category   string  `xml:"Category"`
}

// NewReadingList builds the export document for a curated result.
func NewReadingList(req domain.RecommendationRequest, result *domain.RecommendationResult, year int) *ReadingList {
	if year == 0 {
		year = time.Now().Year()
	}

	list := &ReadingList{
		Grade: req.Grade,
		Theme: req.Theme,
		Month: req.Month,
		Year:  year,
		Books: make([]exportBook, 0, len(result.Books)),
	}

	for _, b := range result.Books {
		list.Books = append(list.Books, exportBook{
			Title:      b.Title,
			Author:     b.Author,
			Lexile:     b.Lexile,
			BookLevel:  b.Level,
			Difficulty: string(b.Difficulty),
			Category:   string(b.Category),
		})
	}

	return list
}

// Write renders the list as indented XML with the standard header.
func (l *ReadingList) Write(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode reading list: %w", err)
	}

	return enc.Close()
}
