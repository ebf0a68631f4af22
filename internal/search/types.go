package search

import "github.com/kamusis/kwfinder/internal/keyword"

// Match is an installed artifact whose name matched the query.
type Match struct {
	Fingerprint string
	Filename    string
}

// Row is one keyword record found for a match.
type Row struct {
	Layer       keyword.LayerID
	Filename    string
	Fingerprint string
	Keywords    string
	DisplayName string
}

// Outcome is the result of resolving a query.
type Outcome struct {
	Query string

	// Matches lists every installed artifact that matched the query.
	Matches []Match

	// MaxNameLen is the longest Filename among Matches, in runes.
	MaxNameLen int

	// Rows holds keyword hits ordered by layer (keyword.Layers), then by
	// match order. A match can contribute one row per layer.
	Rows []Row

	// Unresolved lists matches with no keyword data in any layer.
	Unresolved []Match
}

// Installed returns the number of installed artifacts that matched.
func (o Outcome) Installed() int {
	return len(o.Matches)
}

// KeywordMatches returns the number of keyword rows found.
func (o Outcome) KeywordMatches() int {
	return len(o.Rows)
}

// RowsIn returns the rows that came from layer id.
func (o Outcome) RowsIn(id keyword.LayerID) []Row {
	var out []Row
	for _, r := range o.Rows {
		if r.Layer == id {
			out = append(out, r)
		}
	}
	return out
}
