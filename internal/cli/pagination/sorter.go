package pagination

import (
	"cmp"
	"fmt"
	"slices"
)

// Sort fields for catalog entries.
const (
	SortByIndex = "index"
	SortByName  = "name"
)

// Entry is one name from the catalog with its 1-based position in API order.
type Entry struct {
	Index int    `json:"index" yaml:"index"`
	Name  string `json:"name"  yaml:"name"`
}

// Entries numbers names in the order given.
func Entries(names []string) []Entry {
	out := make([]Entry, len(names))
	for i, n := range names {
		out[i] = Entry{Index: i + 1, Name: n}
	}
	return out
}

// ValidSortFields lists the fields SortEntries accepts.
func ValidSortFields() []string {
	return []string{SortByIndex, SortByName}
}

// SortEntries returns a sorted copy of entries. Ties keep their index order.
func SortEntries(entries []Entry, field, order string) ([]Entry, error) {
	var less func(a, b Entry) int
	switch field {
	case SortByIndex:
		less = func(a, b Entry) int { return cmp.Compare(a.Index, b.Index) }
	case SortByName:
		less = func(a, b Entry) int { return cmp.Compare(a.Name, b.Name) }
	default:
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrInvalidSortField, field, ValidSortFields())
	}

	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int {
		if order == SortOrderDesc {
			return less(b, a)
		}
		return less(a, b)
	})
	return sorted, nil
}
