package view

import (
	"net/url"
	"strconv"

	"blogger-web/internal/model"
)

// Pager renders the page links of one paginated list.
type Pager struct {
	Path       string
	Query      url.Values
	Page       int
	PageSize   int
	PagesCount int
	TotalCount int
}

// NewPager takes the counts from the backend's envelope and falls back to
// the request for fields the backend left out.
func NewPager[T any](path string, page model.Page[T], req model.PageRequest) Pager {
	p := Pager{
		Path:       path,
		Page:       page.Page,
		PageSize:   req.PageSize,
		PagesCount: page.PagesCount,
		TotalCount: page.TotalCount,
	}
	if p.Page < 1 {
		p.Page = req.PageNumber
	}
	return p
}

func (p Pager) HasPrev() bool {
	return p.Page > 1
}

func (p Pager) HasNext() bool {
	return p.Page < p.PagesCount
}

func (p Pager) PrevURL() string {
	return p.URL(p.Page-1, p.PageSize)
}

func (p Pager) NextURL() string {
	return p.URL(p.Page+1, p.PageSize)
}

// SizeURL switches the page size and goes back to the first page.
func (p Pager) SizeURL(size int) string {
	return p.URL(1, size)
}

func (p Pager) Sizes() []int {
	return model.PageSizes
}

func (p Pager) URL(page int, size int) string {
	q := url.Values{}
	for k, v := range p.Query {
		q[k] = append([]string(nil), v...)
	}
	q.Set("pageNumber", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(size))
	return p.Path + "?" + q.Encode()
}
