package shared

import "math"

// Pagination contains metadata for paginated listings. Page is zero-based.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata.
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 10
	}
	if page < 0 {
		page = 0
	}
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool {
	return p.Page > 0
}

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool {
	return p.Page+1 < p.TotalPages
}

// From returns the one-based index of the first row on the page.
func (p Pagination) From() int {
	if p.Total == 0 {
		return 0
	}
	return p.Page*p.PerPage + 1
}

// To returns the one-based index of the last row on the page.
func (p Pagination) To() int {
	to := (p.Page + 1) * p.PerPage
	if to > p.Total {
		return p.Total
	}
	return to
}
