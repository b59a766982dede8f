package dto

import "math"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pagination is embedded in list requests. Page is 1-based.
type Pagination struct {
	Page  int `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit int `form:"limit,default=20" validate:"omitempty,gte=1"`
}

// Normalize fills defaults and clamps the limit to maxLimit (MaxPageSize when 0).
func (p Pagination) Normalize(maxLimit int) Pagination {
	if maxLimit <= 0 {
		maxLimit = MaxPageSize
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageSize
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset is the index of the first item on the page. Pages too far out to
// address saturate at math.MaxInt instead of overflowing.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit < 1 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// PageResponse wraps one page of a list endpoint.
type PageResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
