// Package search resolves fuzzy artifact name fragments to keyword records.
package search

import (
	"strings"
	"unicode/utf8"

	"github.com/kamusis/kwfinder/internal/identity"
	"github.com/kamusis/kwfinder/internal/keyword"
)

// MaxEditDistance is the edit tolerance of the fuzzy fallback.
const MaxEditDistance = 1

// Matches reports whether bareName matches query: either bareName starts with
// query, or query is within MaxEditDistance of a substring of bareName.
// query must already be folded.
func Matches(bareName, query string) bool {
	if strings.HasPrefix(bareName, query) {
		return true
	}
	return NearMatch(query, bareName, MaxEditDistance)
}

// Resolve matches query against every cached artifact name and looks each
// match up in all keyword layers. No layer shadows another; every hit is
// reported.
func Resolve(c *identity.Cache, set *keyword.Set, query string) Outcome {
	q := identity.Fold(query)
	out := Outcome{Query: q}

	for _, key := range c.Keys() {
		if !Matches(identity.BareName(key), q) {
			continue
		}
		e, _ := c.Get(key)
		out.Matches = append(out.Matches, Match{Fingerprint: e.Fingerprint, Filename: e.Filename})
		if n := utf8.RuneCountInString(e.Filename); n > out.MaxNameLen {
			out.MaxNameLen = n
		}
	}

	found := make([]bool, len(out.Matches))
	for _, id := range keyword.Layers {
		layer := set.Layer(id)
		for i, m := range out.Matches {
			rec, ok := layer.Get(m.Fingerprint)
			if !ok {
				continue
			}
			found[i] = true
			out.Rows = append(out.Rows, Row{
				Layer:       id,
				Filename:    m.Filename,
				Fingerprint: m.Fingerprint,
				Keywords:    rec.Keywords,
				DisplayName: rec.DisplayName,
			})
		}
	}
	for i, m := range out.Matches {
		if !found[i] {
			out.Unresolved = append(out.Unresolved, m)
		}
	}
	return out
}
