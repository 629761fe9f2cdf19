package openlibrary

// searchResponse is the wire format of the Open Library search endpoint.
type searchResponse struct {
	NumFound int         `json:"numFound"`
	Docs     []searchDoc `json:"docs"`
}

// searchDoc is a single search hit. CoverID references the covers service.
type searchDoc struct {
	Key        string   `json:"key"`
	Title      string   `json:"title"`
	AuthorName []string `json:"author_name"`
	CoverID    int64    `json:"cover_i"`
}
