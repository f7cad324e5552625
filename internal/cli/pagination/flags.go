package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Defaults and bounds.
const (
	DefaultLimit     = 100
	MaxLimit         = 10000
	MaxPageSize      = 1000
	DefaultSortOrder = SortOrderAsc
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
)

// sortPartsMax is the number of parts in "field:order".
const sortPartsMax = 2

// Validation errors.
var (
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'name:desc')")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the paging flags. Page > 0 selects page-based mode.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int
}

// NewParams returns offset-based defaults.
func NewParams() Params {
	return Params{Limit: DefaultLimit}
}

// Validate checks bounds and that only one mode is in use.
func (p Params) Validate() error {
	switch {
	case p.Limit < 0:
		return errors.New("limit cannot be negative")
	case p.Limit > MaxLimit:
		return fmt.Errorf("limit must be at most %d", MaxLimit)
	case p.Offset < 0:
		return errors.New("offset cannot be negative")
	case p.Page < 0:
		return errors.New("page cannot be negative")
	case p.PageSize < 0:
		return errors.New("page-size cannot be negative")
	case p.PageSize > MaxPageSize:
		return fmt.Errorf("page-size must be at most %d", MaxPageSize)
	case p.Page > 0 && p.Offset > 0:
		return errors.New("page and offset parameters are mutually exclusive")
	case p.Page == 0 && p.PageSize > 0:
		return errors.New("page must be specified when using page-size")
	case p.Page > 0 && p.PageSize == 0:
		return errors.New("page-size must be specified when using page")
	}
	return nil
}

// IsPageBased reports whether page-based mode is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// Window returns the offset and limit to apply. A zero limit means no limit.
//
//nolint:nonamedreturns // Named returns document the pair.
func (p Params) Window() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// ApplyToSlice returns the window of items selected by p. In page-based mode a
// page past the end is clamped to the last page; in offset mode it is empty.
func ApplyToSlice[T any](p Params, items []T) []T {
	if len(items) == 0 {
		return items
	}

	offset, limit := p.Window()
	if p.IsPageBased() && offset >= len(items) {
		offset = ((len(items) - 1) / p.PageSize) * p.PageSize
	}
	if offset >= len(items) {
		return []T{}
	}

	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}

// ParseSort parses "field" or "field:order". An empty string yields the
// fallback field in ascending order.
//
//nolint:nonamedreturns // Named returns document the pair.
func ParseSort(expr, fallback string) (field, order string, err error) {
	if strings.TrimSpace(expr) == "" {
		return fallback, DefaultSortOrder, nil
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	field = strings.TrimSpace(parts[0])
	order = DefaultSortOrder
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	if field == "" {
		return "", "", ErrEmptySortField
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}
