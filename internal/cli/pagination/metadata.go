package pagination

// Meta describes where a page sits in the full result set.
type Meta struct {
	CurrentPage int  `json:"current_page" yaml:"current_page"`
	PageSize    int  `json:"page_size"    yaml:"page_size"`
	TotalPages  int  `json:"total_pages"  yaml:"total_pages"`
	TotalItems  int  `json:"total_items"  yaml:"total_items"`
	HasPrevious bool `json:"has_previous" yaml:"has_previous"`
	HasNext     bool `json:"has_next"     yaml:"has_next"`
}

// NewMeta builds metadata for p over total items.
func NewMeta(p Params, total int) Meta {
	_, size := p.Window()
	if size <= 0 {
		size = total
	}

	page := p.Page
	if page == 0 && size > 0 {
		page = p.Offset/size + 1
	}
	if page == 0 {
		page = 1
	}

	pages := 0
	if size > 0 {
		pages = (total + size - 1) / size
	}
	if p.IsPageBased() && pages > 0 && page > pages {
		page = pages
	}

	return Meta{
		CurrentPage: page,
		PageSize:    size,
		TotalPages:  pages,
		TotalItems:  total,
		HasPrevious: page > 1,
		HasNext:     page < pages,
	}
}
