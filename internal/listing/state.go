// Package listing keeps listing view state (filters, sort and pagination) in the
// URL query string. The query string is the only persistence layer: FilterState is
// derived from it on every read and writes are replace-navigations of the URL.
package listing

import (
	"math"
	"net/url"
	"sort"
	"strconv"
)

// Reserved query keys.
const (
	KeyPage            = "page"
	KeyPageSize        = "pageSize"
	KeySortBy          = "sortBy"
	KeySortOrder       = "sortOrder"
	KeyIncludeInActive = "includeInActive"
)

const (
	// DefaultPage is the zero-based page used when the URL carries none.
	DefaultPage = 0
	// DefaultPageSize is the number of rows per page used when the URL carries none.
	DefaultPageSize = 10
	// MaxPageSize caps pageSize; larger values are clamped.
	MaxPageSize = 100

	maxOffset = math.MaxInt32
)

// SortOrder is the direction of a sorted column.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Valid reports whether o is asc or desc.
func (o SortOrder) Valid() bool {
	return o == SortAsc || o == SortDesc
}

// FilterState is the canonical listing state of one view.
type FilterState struct {
	Page            int
	PageSize        int
	SortBy          string
	SortOrder       SortOrder
	IncludeInActive *bool
	// Extra holds domain filters such as branchId or name, as raw strings.
	Extra map[string]string
}

// ParseFilters derives the FilterState from query parameters using the default
// page size.
func ParseFilters(values url.Values) FilterState {
	return parseFilters(values, DefaultPageSize)
}

// ParseFiltersPageSize is ParseFilters with a custom default page size.
func ParseFiltersPageSize(values url.Values, pageSize int) FilterState {
	return parseFilters(values, pageSize)
}

// ParseQuery parses a raw query string. Malformed pairs are skipped.
func ParseQuery(rawQuery string) FilterState {
	values, _ := url.ParseQuery(rawQuery)
	return ParseFilters(values)
}

func parseFilters(values url.Values, defaultPageSize int) FilterState {
	if defaultPageSize <= 0 {
		defaultPageSize = DefaultPageSize
	}
	defaultPageSize = min(defaultPageSize, MaxPageSize)
	state := FilterState{
		Page:     DefaultPage,
		PageSize: defaultPageSize,
		Extra:    make(map[string]string),
	}
	for key := range values {
		raw := values.Get(key)
		switch key {
		case KeyPage:
			if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
				state.Page = n
			}
		case KeyPageSize:
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				state.PageSize = min(n, MaxPageSize)
			}
		case KeySortBy:
			state.SortBy = raw
		case KeySortOrder:
			if o := SortOrder(raw); o.Valid() {
				state.SortOrder = o
			}
		case KeyIncludeInActive:
			if b, err := strconv.ParseBool(raw); err == nil {
				state.IncludeInActive = &b
			}
		default:
			state.Extra[key] = raw
		}
	}
	if state.Page > maxOffset/state.PageSize {
		state.Page = DefaultPage
	}
	return state
}

// Get returns the serialized value of key and whether it is present.
func (s FilterState) Get(key string) (string, bool) {
	switch key {
	case KeyPage:
		return strconv.Itoa(s.Page), true
	case KeyPageSize:
		return strconv.Itoa(s.PageSize), true
	case KeySortBy:
		return s.SortBy, s.SortBy != ""
	case KeySortOrder:
		return string(s.SortOrder), s.SortOrder != ""
	case KeyIncludeInActive:
		if s.IncludeInActive == nil {
			return "", false
		}
		return strconv.FormatBool(*s.IncludeInActive), true
	}
	v, ok := s.Extra[key]
	return v, ok
}

// Keys returns the present keys in sorted order.
func (s FilterState) Keys() []string {
	values := s.Values()
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IncludesInactive reports whether inactive rows were requested.
func (s FilterState) IncludesInactive() bool {
	return s.IncludeInActive != nil && *s.IncludeInActive
}

// Limit returns PageSize bounded to 1..MaxPageSize.
func (s FilterState) Limit() int {
	switch {
	case s.PageSize <= 0:
		return DefaultPageSize
	case s.PageSize > MaxPageSize:
		return MaxPageSize
	}
	return s.PageSize
}

// Offset returns the row offset of the current page, or 0 when the page is
// negative or too far out to address.
func (s FilterState) Offset() int {
	limit := s.Limit()
	if s.Page <= 0 || s.Page > maxOffset/limit {
		return 0
	}
	return s.Page * limit
}

// Values serializes the state. page and pageSize are always present; empty domain
// filters are kept so an explicitly blanked field stays in the URL as "field=".
func (s FilterState) Values() url.Values {
	values := make(url.Values, len(s.Extra)+5)
	for k, v := range s.Extra {
		values.Set(k, v)
	}
	values.Set(KeyPage, strconv.Itoa(s.Page))
	values.Set(KeyPageSize, strconv.Itoa(s.PageSize))
	if s.SortBy != "" {
		values.Set(KeySortBy, s.SortBy)
	}
	if s.SortOrder != "" {
		values.Set(KeySortOrder, string(s.SortOrder))
	}
	if s.IncludeInActive != nil {
		values.Set(KeyIncludeInActive, strconv.FormatBool(*s.IncludeInActive))
	}
	return values
}

// Encode returns the query string form of the state.
func (s FilterState) Encode() string {
	return s.Values().Encode()
}

// With returns the query string of s merged with p, for building links such as
// pager or sort headers in templates.
func (s FilterState) With(p Patch) string {
	return merge(s, p).Encode()
}

// merge applies p over s and drops unset keys.
func merge(s FilterState, p Patch) url.Values {
	values := s.Values()
	for k, v := range p {
		if !v.IsSet() {
			values.Del(k)
			continue
		}
		values.Set(k, v.String())
	}
	return values
}
