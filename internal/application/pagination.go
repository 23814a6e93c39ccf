package application

// Pagination describes one page of a fixed-size listing. Pages are
// 1-based; out-of-range pages are not clamped and simply come back
// empty with truthful metadata.
type Pagination struct {
	Total       int  `json:"total"`
	PerPage     int  `json:"per_page"`
	CurrentPage int  `json:"current_page"`
	LastPage    int  `json:"last_page"`
	HasNext     bool `json:"has_next_page"`
	HasPrev     bool `json:"has_previous_page"`
	NextPage    int  `json:"next_page"`
	PrevPage    int  `json:"previous_page"`
}

func paginate(total, page, perPage int) Pagination {
	if page < 1 {
		page = 1
	}
	last := (total + perPage - 1) / perPage
	return Pagination{
		Total:       total,
		PerPage:     perPage,
		CurrentPage: page,
		LastPage:    last,
		HasNext:     page < last,
		HasPrev:     page > 1,
		NextPage:    page + 1,
		PrevPage:    page - 1,
	}
}

func pageOffset(page, perPage int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * perPage
}
