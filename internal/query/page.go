package query

import "strconv"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// Window selects one page of an ordered result set. Page is 1-based.
type Window struct {
	Page     int
	PageSize int
}

// ResolveWindow coerces the raw page/limit query parameters into a valid
// window. Non-numeric, absent or non-positive inputs resolve to the
// defaults. No upper bound is placed on the page size: callers may request
// arbitrarily large pages.
func ResolveWindow(page, limit string) Window {
	return Window{
		Page:     parsePositive(page, DefaultPage),
		PageSize: parsePositive(limit, DefaultPageSize),
	}
}

func parsePositive(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

// Offset is the number of records preceding the window.
func (w Window) Offset() int {
	return (w.Page - 1) * w.PageSize
}

// PageInfo is the pagination metadata block echoed alongside a listing page.
type PageInfo struct {
	TotalUsers  int `json:"totalUsers"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// PageInfo combines the window with the total count reported for the same
// predicate. A page beyond the last one is not an error: the metadata still
// reflects the true totals.
func (w Window) PageInfo(total int) PageInfo {
	totalPages := 0
	if total > 0 {
		totalPages = (total + w.PageSize - 1) / w.PageSize
	}
	return PageInfo{
		TotalUsers:  total,
		TotalPages:  totalPages,
		CurrentPage: w.Page,
		PageSize:    w.PageSize,
	}
}
