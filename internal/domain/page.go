package domain

// PaginationParams carries page/limit values from the HTTP layer to the
// in-memory list operations. Page is 1-indexed. Limit is capped at 100 by
// NewPaginationParams.
type PaginationParams struct {
	// Page is the current page number, starting at 1.
	Page int
	// Limit is the maximum number of items to return.
	Limit int
}

// NewPaginationParams builds a PaginationParams from optional HTTP query params.
// Nil pointers fall back to sane defaults (page=1, limit=20).
// The limit is capped at 100 to bound response sizes.
func NewPaginationParams(page, limit *int) PaginationParams {
	p := PaginationParams{Page: 1, Limit: 20}
	if page != nil && *page >= 1 {
		p.Page = *page
	}
	if limit != nil && *limit >= 1 {
		p.Limit = *limit
		if p.Limit > 100 {
			p.Limit = 100
		}
	}
	return p
}

// Offset returns the zero-based index of the first item on the page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Paginate returns the sub-slice of items selected by p, plus the total count.
// Out-of-range pages yield an empty (non-nil) slice.
func Paginate[T any](items []T, p PaginationParams) ([]T, int) {
	total := len(items)
	lo := p.Offset()
	if lo >= total {
		return []T{}, total
	}
	hi := lo + p.Limit
	if hi > total {
		hi = total
	}
	return items[lo:hi], total
}
