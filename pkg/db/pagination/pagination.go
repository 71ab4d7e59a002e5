// Package pagination implements page/limit paging shared by all list
// endpoints.
package pagination

// Pagination is the page/limit pair bound from list query strings.
type Pagination struct {
	Page  int `form:"page,default=1" json:"page"`
	Limit int `form:"limit,default=10" json:"limit"`
}

// Normalize clamps the pair to sane bounds.
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}
	if p.Limit > 250 {
		p.Limit = 250
	}
	return p
}

// Offset converts the page/limit pair into a row offset.
func (p Pagination) Offset() int {
	p = p.Normalize()
	return (p.Page - 1) * p.Limit
}

// PageInfo describes the paged window returned alongside list results.
type PageInfo struct {
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	HasMore bool  `json:"has_more"`
}

// BuildPageInfo computes the window metadata for a total row count.
func BuildPageInfo(total int64, page Pagination) PageInfo {
	page = page.Normalize()
	return PageInfo{
		Total:   total,
		Page:    page.Page,
		Limit:   page.Limit,
		HasMore: total > int64(page.Page*page.Limit),
	}
}
