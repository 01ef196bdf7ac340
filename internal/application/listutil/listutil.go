// Package listutil provides pagination helpers for list endpoints.
package listutil

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is the default number of profiles per page. The roster is
// browsed as a card grid, so the sizes are multiples of the grid width.
const DefaultPerPage = 12

// PerPageOptions are the allowed page sizes.
var PerPageOptions = []int{12, 24, 48}

// PageParams carries pagination parameters parsed from a request.
type PageParams struct {
	Page    int // 1-indexed page number
	PerPage int // rows per page
}

// PageInfo carries pagination metadata returned alongside a page of results.
type PageInfo struct {
	Page       int // current page (1-indexed)
	PerPage    int // rows per page
	Total      int // total matching rows
	TotalPages int // ceil(Total / PerPage)
}

// ParsePageParams extracts page and per_page from URL query values.
// Out-of-range values fall back to the defaults.
// PRE: none
// POST: Page >= 1 and PerPage is one of PerPageOptions
func ParsePageParams(q url.Values) PageParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	if !validPerPage(perPage) {
		perPage = DefaultPerPage
	}
	return PageParams{Page: page, PerPage: perPage}
}

// NewPageInfo computes pagination metadata for a result set of total rows.
// A page past the end is clamped to the last page, so a stale page number
// still returns results after rows were deleted.
// PRE: total >= 0
// POST: 1 <= Page <= TotalPages and TotalPages >= 1
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset returns the index of the first row on the current page.
// POST: Returns (Page-1) * PerPage
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

func validPerPage(n int) bool {
	for _, opt := range PerPageOptions {
		if n == opt {
			return true
		}
	}
	return false
}
