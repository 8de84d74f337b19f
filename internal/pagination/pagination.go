// Package pagination tracks list-view position (page, page size, search and
// filters) in query parameters and slices already-fetched lists.
package pagination

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Query parameter names.
const (
	ParamPage     = "page"
	ParamPageSize = "page_size"
	ParamSearch   = "search"
)

// PageSizes are the sizes offered by the page-size selector.
var PageSizes = []int{10, 20, 50}

// State is the position of one list view. Page is 1-indexed.
type State struct {
	Page     int
	PageSize int
	Search   string
	Filters  map[string]string
}

// FromQuery reads a state from URL parameters. filterKeys names the extra
// parameters kept as filters.
func FromQuery(q url.Values, defaultSize int, filterKeys ...string) State {
	st := State{
		Page:     atoiDefault(q.Get(ParamPage), 1),
		PageSize: atoiDefault(q.Get(ParamPageSize), defaultSize),
		Search:   strings.TrimSpace(q.Get(ParamSearch)),
	}
	for _, key := range filterKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" {
			if st.Filters == nil {
				st.Filters = make(map[string]string)
			}
			st.Filters[key] = v
		}
	}
	return st.normalize(defaultSize)
}

func (s State) normalize(defaultSize int) State {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize < 1 {
		s.PageSize = defaultSize
	}
	return s
}

// Filter returns the value of a filter, or "".
func (s State) Filter(key string) string {
	return s.Filters[key]
}

// WithPage moves to page n.
func (s State) WithPage(n int) State {
	if n < 1 {
		n = 1
	}
	s.Page = n
	return s
}

// WithPageSize changes the page size and returns to page 1.
func (s State) WithPageSize(size int) State {
	s.PageSize = size
	s.Page = 1
	return s
}

// WithSearch changes the search text and returns to page 1.
func (s State) WithSearch(search string) State {
	s.Search = strings.TrimSpace(search)
	s.Page = 1
	return s
}

// WithFilter sets or clears one filter and returns to page 1.
func (s State) WithFilter(key, value string) State {
	filters := make(map[string]string, len(s.Filters)+1)
	for k, v := range s.Filters {
		filters[k] = v
	}
	if value = strings.TrimSpace(value); value == "" {
		delete(filters, key)
	} else {
		filters[key] = value
	}
	s.Filters = filters
	s.Page = 1
	return s
}

// Values encodes the state as query parameters.
func (s State) Values() url.Values {
	q := url.Values{}
	q.Set(ParamPage, strconv.Itoa(s.Page))
	q.Set(ParamPageSize, strconv.Itoa(s.PageSize))
	if s.Search != "" {
		q.Set(ParamSearch, s.Search)
	}
	keys := make([]string, 0, len(s.Filters))
	for k := range s.Filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, s.Filters[k])
	}
	return q
}

// URL renders the state onto path.
func (s State) URL(path string) string {
	return path + "?" + s.Values().Encode()
}

// TotalPages is ceil(total / size).
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Result is one page of a list together with the state that produced it.
type Result[T any] struct {
	State
	Items      []T
	Total      int
	TotalPages int
}

// HasPrev reports whether a previous page exists.
func (r Result[T]) HasPrev() bool { return r.Page > 1 }

// HasNext reports whether a next page exists.
func (r Result[T]) HasNext() bool { return r.Page < r.TotalPages }

// Pages returns up to width page numbers centred on the current page.
func (r Result[T]) Pages(width int) []int {
	if r.TotalPages == 0 || width <= 0 {
		return nil
	}
	start := r.Page - width/2
	if start < 1 {
		start = 1
	}
	end := start + width - 1
	if end > r.TotalPages {
		end = r.TotalPages
		start = max(1, end-width+1)
	}
	pages := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Paginate filters items by case-insensitive substring match of st.Search
// against text and returns the requested page. A page past the end is
// clamped to the last page.
func Paginate[T any](items []T, st State, text func(T) string) Result[T] {
	matched := items
	if needle := strings.ToLower(st.Search); needle != "" {
		matched = make([]T, 0, len(items))
		for _, item := range items {
			if strings.Contains(strings.ToLower(text(item)), needle) {
				matched = append(matched, item)
			}
		}
	}

	total := len(matched)
	pages := TotalPages(total, st.PageSize)
	if st.Page > pages && pages > 0 {
		st.Page = pages
	}
	start := (st.Page - 1) * st.PageSize
	end := min(start+st.PageSize, total)
	if start > total {
		start = total
	}

	return Result[T]{State: st, Items: matched[start:end], Total: total, TotalPages: pages}
}

// FromServer wraps a page the API already sliced. A missing server page
// count is computed from total.
func FromServer[T any](items []T, total, totalPages int, st State) Result[T] {
	if totalPages == 0 {
		totalPages = TotalPages(total, st.PageSize)
	}
	return Result[T]{State: st, Items: items, Total: total, TotalPages: totalPages}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
