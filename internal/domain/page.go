package domain

type ProductPage struct {
	Category   Category     `json:"category"`
	PageNumber int          `json:"page_number"` // 1-based
	TotalItems int          `json:"total_items"` // meta.total
	PerPage    int          `json:"per_page"`    // meta.per_page
	TotalPages int          `json:"total_pages"`
	Listings   []RawListing `json:"listings"`
}

// HasMore reports whether the server advertises a page after this one.
func (p *ProductPage) HasMore() bool {
	return p.PageNumber < p.TotalPages
}

func (p *ProductPage) NextPage() int {
	return p.PageNumber + 1
}

// TotalPages is ceil(total / perPage), zero for non-positive inputs.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

type CategoryResults struct {
	Category   Category `json:"category"`
	Pages      int      `json:"pages"`       // Pages fetched successfully
	TotalPages int      `json:"total_pages"` // As reported by the last fetched page
	Items      []Item   `json:"items"`
	Err        error    `json:"-"` // Reason the chain stopped early, if any
}
