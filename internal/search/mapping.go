package search

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/lang/en"
	"github.com/blevesearch/bleve/v2/mapping"
)

// buildIndexMapping creates the Bleve index mapping for book documents.
//
// The mapping is designed with these priorities:
//  1. Fast full-text search on titles with English stemming
//  2. Boosted relevance for author and series matches
//  3. Exact keyword matching for genre and theme filters
//  4. Numeric range queries on the book level
func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultAnalyzer = en.AnalyzerName

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields (full-text searchable) ---

	// Title - primary search target
	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = en.AnalyzerName
	titleFieldMapping.Store = true
	titleFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("title", titleFieldMapping)

	// Author - searchable, important for book search
	authorFieldMapping := bleve.NewTextFieldMapping()
	authorFieldMapping.Analyzer = en.AnalyzerName
	authorFieldMapping.Store = true
	authorFieldMapping.IncludeTermVectors = true // For highlighting
	docMapping.AddFieldMappingsAt("author", authorFieldMapping)

	// Series - searchable
	seriesFieldMapping := bleve.NewTextFieldMapping()
	seriesFieldMapping.Analyzer = en.AnalyzerName
	seriesFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("series", seriesFieldMapping)

	// Summary - searchable but not stored (too large)
	summaryFieldMapping := bleve.NewTextFieldMapping()
	summaryFieldMapping.Analyzer = en.AnalyzerName
	summaryFieldMapping.Store = false
	docMapping.AddFieldMappingsAt("summary", summaryFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	// ID - stored but not analyzed
	idFieldMapping := bleve.NewTextFieldMapping()
	idFieldMapping.Analyzer = keyword.Name
	idFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("id", idFieldMapping)

	// Code - accelerated-reader style quiz code, exact match only
	codeFieldMapping := bleve.NewTextFieldMapping()
	codeFieldMapping.Analyzer = keyword.Name
	codeFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("code", codeFieldMapping)

	// Genre - for exact filtering and faceting
	genreFieldMapping := bleve.NewTextFieldMapping()
	genreFieldMapping.Analyzer = keyword.Name
	genreFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("genre", genreFieldMapping)

	// Theme - for exact filtering and faceting
	themeFieldMapping := bleve.NewTextFieldMapping()
	themeFieldMapping.Analyzer = keyword.Name
	themeFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("theme", themeFieldMapping)

	// --- Numeric fields (range queries, sorting) ---

	// Level - for range filtering by reading level
	levelFieldMapping := bleve.NewNumericFieldMapping()
	levelFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("level", levelFieldMapping)

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping
}
