package models

// Paginated wraps a page of results with the counters the admin UI needs to
// render pagination controls.
type Paginated[T any] struct {
	// TotalItems is the total number of matching records across all pages.
	TotalItems int64 `json:"totalItems"`

	// TotalPages is TotalItems divided by the page size, rounded up.
	TotalPages int64 `json:"totalPages"`

	// CurrentPage is the 1-based page number that was served.
	CurrentPage int64 `json:"currentPage"`

	// ItemsPerPage is the page size that was applied.
	ItemsPerPage int64 `json:"itemsPerPage"`

	// Data holds the records of the current page.
	Data []T `json:"data"`
}

// NewPaginated assembles a Paginated result from a page of records and the
// total match count.
func NewPaginated[T any](data []T, total, page, limit int64) Paginated[T] {
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	if data == nil {
		data = []T{}
	}
	return Paginated[T]{
		TotalItems:   total,
		TotalPages:   totalPages,
		CurrentPage:  page,
		ItemsPerPage: limit,
		Data:         data,
	}
}

// PageRequest carries the pagination parameters of a list request.
type PageRequest struct {
	Page  int64
	Limit int64
}

// Normalize clamps the request to sane values: page >= 1, 1 <= limit <= 100,
// defaulting to page 1 / limit 10 when unset.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

// Offset returns the number of records to skip for the current page.
func (p PageRequest) Offset() int64 {
	return (p.Page - 1) * p.Limit
}
