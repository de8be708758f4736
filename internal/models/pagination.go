package models

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	// MaxPage keeps (page-1)*limit far from int overflow.
	MaxPage = 1_000_000
)

// PageRequest carries the caller's page and limit before clamping.
type PageRequest struct {
	Page  int
	Limit int
}

// Normalize clamps page to [1, MaxPage] and limit to [1, MaxPageLimit]; a zero
// limit falls back to DefaultPageLimit.
func (p PageRequest) Normalize() PageRequest {
	switch {
	case p.Page < 1:
		p.Page = 1
	case p.Page > MaxPage:
		p.Page = MaxPage
	}
	switch {
	case p.Limit == 0:
		p.Limit = DefaultPageLimit
	case p.Limit < 1:
		p.Limit = 1
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset returns the row offset of the first item on the page.
func (p PageRequest) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.Limit
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page            int  `json:"page"`
	Limit           int  `json:"limit"`
	Total           int  `json:"total"`
	TotalPages      int  `json:"total_pages"`
	HasNextPage     bool `json:"has_next_page"`
	HasPreviousPage bool `json:"has_previous_page"`
}

// NewPagination computes page metadata for total rows.
func NewPagination(req PageRequest, total int) *Pagination {
	req = req.Normalize()
	if total < 0 {
		total = 0
	}
	totalPages := (total + req.Limit - 1) / req.Limit
	return &Pagination{
		Page:            req.Page,
		Limit:           req.Limit,
		Total:           total,
		TotalPages:      totalPages,
		HasNextPage:     req.Page < totalPages,
		HasPreviousPage: req.Page > 1,
	}
}
