package pokedex

import "strings"

// NormalizeQuery trims and lower-cases raw. ok is false when nothing is left,
// in which case no lookup should be issued.
func NormalizeQuery(raw string) (query string, ok bool) {
	query = strings.ToLower(strings.TrimSpace(raw))
	return query, query != ""
}
