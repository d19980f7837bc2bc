package pagination

import (
	"errors"
	"fmt"
	"strings"
)

// Limits and defaults for the pagination flags.
const (
	MaxLimit         = 10000
	MaxPageSize      = 1000
	SortOrderAsc     = "asc"
	SortOrderDesc    = "desc"
	DefaultSortOrder = SortOrderAsc
)

// Validation errors.
var (
	ErrInvalidLimit      = fmt.Errorf("limit must be between 0 and %d", MaxLimit)
	ErrInvalidPageSize   = fmt.Errorf("page-size must be between 1 and %d", MaxPageSize)
	ErrNegativeOffset    = errors.New("offset cannot be negative")
	ErrNegativePage      = errors.New("page cannot be negative")
	ErrMixedModes        = errors.New("page and offset parameters are mutually exclusive")
	ErrPageSizeNoPage    = errors.New("page-size requires page to be set")
	ErrPageNoPageSize    = errors.New("page requires page-size to be set")
	ErrInvalidSortFormat = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'tco_keep:desc')")
	ErrEmptySortField    = errors.New("sort field cannot be empty")
	ErrInvalidSortOrder  = errors.New("sort order must be 'asc' or 'desc'")
	ErrInvalidSortField  = errors.New("invalid sort field")
)

// Params holds the pagination flags. Offset mode (Limit, Offset) and page
// mode (Page, PageSize) are mutually exclusive. A zero Limit means no limit.
type Params struct {
	Limit    int
	Offset   int
	Page     int
	PageSize int

	// Sort is "field" or "field:order".
	Sort string
}

// Validate checks bounds and mode exclusivity.
func (p Params) Validate() error {
	switch {
	case p.Limit < 0 || p.Limit > MaxLimit:
		return ErrInvalidLimit
	case p.Offset < 0:
		return ErrNegativeOffset
	case p.Page < 0:
		return ErrNegativePage
	case p.PageSize < 0 || p.PageSize > MaxPageSize:
		return ErrInvalidPageSize
	case p.Page > 0 && p.Offset > 0:
		return ErrMixedModes
	case p.Page == 0 && p.PageSize > 0:
		return ErrPageSizeNoPage
	case p.Page > 0 && p.PageSize == 0:
		return ErrPageNoPageSize
	}
	if p.Sort != "" {
		if _, _, err := ParseSort(p.Sort); err != nil {
			return err
		}
	}
	return nil
}

// sortPartsMax is the number of parts in "field:order".
const sortPartsMax = 2

// ParseSort splits "field" or "field:order". The order defaults to asc.
//
//nolint:nonamedreturns // Named returns document the pair.
func ParseSort(expr string) (field, order string, err error) {
	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortField
	}

	order = DefaultSortOrder
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}
	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}
	return field, order, nil
}

// IsPageBased reports whether page mode is active.
func (p Params) IsPageBased() bool {
	return p.Page > 0
}

// IsEnabled reports whether any window flag is set.
func (p Params) IsEnabled() bool {
	return p.Limit > 0 || p.Offset > 0 || p.Page > 0
}

// OffsetLimit returns the window for either mode. A zero limit means
// everything after the offset.
//
//nolint:nonamedreturns // Named returns document the pair.
func (p Params) OffsetLimit() (offset, limit int) {
	if p.IsPageBased() {
		return (p.Page - 1) * p.PageSize, p.PageSize
	}
	return p.Offset, p.Limit
}

// Apply returns the window of items selected by p. In page mode a page past
// the end is clamped to the last page; in offset mode it yields nothing.
func Apply[T any](p Params, items []T) []T {
	if len(items) == 0 {
		return items
	}

	offset, limit := p.OffsetLimit()
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
