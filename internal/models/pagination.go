package models

// Pagination describes one page of a list result. HasNext and HasPrev are
// derived from the requested page, which is never clamped to the last page.
type Pagination struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalData   int  `json:"total_data"`
	PerPage     int  `json:"per_page"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
}

// PageRequest is a validated page/limit pair.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// NewPagination computes the descriptor for total rows matching the filter.
func NewPagination(req PageRequest, total int) Pagination {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = (total + req.Limit - 1) / req.Limit
	}
	return Pagination{
		CurrentPage: req.Page,
		TotalPages:  totalPages,
		TotalData:   total,
		PerPage:     req.Limit,
		HasNext:     req.Page < totalPages,
		HasPrev:     req.Page > 1,
	}
}
