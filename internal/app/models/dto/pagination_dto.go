package dto

// PaginationInfo describes the current page of a list
type PaginationInfo struct {
	CurrentPage int
	TotalPages  int
	PageSize    int
	TotalItems  int64
}

// HasPrev reports whether a previous page exists
func (p PaginationInfo) HasPrev() bool {
	return p.CurrentPage > 1
}

// HasNext reports whether a next page exists
func (p PaginationInfo) HasNext() bool {
	return p.CurrentPage < p.TotalPages
}

// PrevPage returns the previous page number
func (p PaginationInfo) PrevPage() int {
	return p.CurrentPage - 1
}

// NextPage returns the next page number
func (p PaginationInfo) NextPage() int {
	return p.CurrentPage + 1
}
