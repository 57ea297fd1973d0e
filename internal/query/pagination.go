package query

import "github.com/phrazzld/tasks-api/internal/store"

// Page is one page of a listing. The JSON shape is what the web client reads.
type Page[T any] struct {
	Current  int   `json:"current"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
	List     []T   `json:"list"`
}

// Pagination is the window a (page, size, total) triple selects.
type Pagination struct {
	Page     int
	PageSize int
	Total    int64
}

// Paginate builds the pagination for page (1-based) of pageSize items out
// of total. Callers are expected to clamp page and size beforehand.
func Paginate(page, pageSize int, total int64) Pagination {
	return Pagination{Page: page, PageSize: pageSize, Total: total}
}

// Empty reports whether there is nothing to fetch. Services skip the list
// query entirely in that case.
func (p Pagination) Empty() bool {
	return p.Total <= 0
}

// Offset is the number of rows skipped before the page starts.
func (p Pagination) Offset() int {
	if p.Page < 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}

// Window converts the pagination into a store window.
func (p Pagination) Window() store.Window {
	return store.Window{Offset: p.Offset(), Limit: p.PageSize}
}

// EmptyPage returns a page with zero total and a non-nil empty list.
func EmptyPage[T any](page, pageSize int) Page[T] {
	return Page[T]{
		Current:  page,
		PageSize: pageSize,
		Total:    0,
		List:     []T{},
	}
}

// NewPage wraps list in the page described by p. A nil list becomes empty
// so the JSON output always carries an array.
func NewPage[T any](p Pagination, list []T) Page[T] {
	if list == nil {
		list = []T{}
	}
	return Page[T]{
		Current:  p.Page,
		PageSize: p.PageSize,
		Total:    p.Total,
		List:     list,
	}
}
