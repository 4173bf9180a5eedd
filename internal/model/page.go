package model

// Page is the pagination envelope every list endpoint answers with.
type Page[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	PagesCount int `json:"pagesCount"`
}

var PageSizes = []int{5, 10, 20, 50}

const DefaultPageSize = 10

type PageRequest struct {
	PageNumber int
	PageSize   int
}

// Normalize clamps the request to a known page size and a positive page number.
func (p PageRequest) Normalize(fallbackSize int) PageRequest {
	if p.PageNumber < 1 {
		p.PageNumber = 1
	}
	if !ValidPageSize(p.PageSize) {
		p.PageSize = fallbackSize
	}
	if !ValidPageSize(p.PageSize) {
		p.PageSize = DefaultPageSize
	}
	return p
}

func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

func (p Page[T]) HasPrev() bool {
	return p.Page > 1
}

func (p Page[T]) HasNext() bool {
	return p.Page < p.PagesCount
}
