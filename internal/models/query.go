package models

import (
	"math"
	"strings"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	DefaultSortField = "createdAt"
)

// ListQuery carries the filters, sorting and paging of a list request.
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
}

// Normalized returns q with paging clamped and sort defaults filled in.
func (q ListQuery) Normalized() ListQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	switch {
	case q.Limit < 1:
		q.Limit = DefaultPageLimit
	case q.Limit > MaxPageLimit:
		q.Limit = MaxPageLimit
	}
	// keep Offset inside int
	if maxPage := math.MaxInt/q.Limit + 1; q.Page > maxPage {
		q.Page = maxPage
	}
	q.Search = strings.TrimSpace(q.Search)
	q.Category = strings.TrimSpace(q.Category)
	if q.SortBy == "" {
		q.SortBy = DefaultSortField
	}
	if strings.EqualFold(q.SortOrder, "asc") {
		q.SortOrder = "asc"
	} else {
		q.SortOrder = "desc"
	}
	return q
}

// Offset is the number of rows skipped before the current page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Pagination describes where a page sits in the full result set.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

// NewPagination computes the pagination block for a page of a result set.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: page < pages,
		HasPrev: page > 1,
	}
}

// Page is one page of list results.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}
