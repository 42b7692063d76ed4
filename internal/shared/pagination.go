package shared

// DefaultPageWindow is the number of page buttons shown in pagination bars.
const DefaultPageWindow = 5

// Pagination contains metadata for paginated listings.
type Pagination struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPagination computes pagination metadata. Page is clamped into [1, TotalPages].
func NewPagination(page, perPage, total int) Pagination {
	if perPage <= 0 {
		perPage = 10
	}
	if total < 0 {
		total = 0
	}
	totalPages := (total + perPage - 1) / perPage
	return Pagination{Page: clampPage(page, totalPages), PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Offset is the index of the first item on the current page.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev reports whether a previous page exists.
func (p Pagination) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p Pagination) HasNext() bool { return p.Page < p.TotalPages }

// PrevPage returns the previous page number, never below 1.
func (p Pagination) PrevPage() int {
	if p.Page <= 1 {
		return 1
	}
	return p.Page - 1
}

// NextPage returns the next page number, never above TotalPages.
func (p Pagination) NextPage() int {
	if p.Page >= p.TotalPages {
		return p.Page
	}
	return p.Page + 1
}

// Window returns the page buttons to render around the current page.
func (p Pagination) Window() []int {
	return PageWindow(p.Page, p.TotalPages, DefaultPageWindow)
}

// PageWindow returns up to windowSize consecutive page numbers centred on current
// and clamped to [1, total]. The window always contains the clamped current page.
func PageWindow(current, total, windowSize int) []int {
	if total <= 0 {
		return []int{}
	}
	if windowSize <= 0 {
		windowSize = DefaultPageWindow
	}
	current = clampPage(current, total)
	size := min(windowSize, total)

	start := current - size/2
	if start < 1 {
		start = 1
	}
	end := start + size - 1
	if end > total {
		end = total
		start = end - size + 1
	}

	pages := make([]int, 0, size)
	for page := start; page <= end; page++ {
		pages = append(pages, page)
	}
	return pages
}

// Paginate slices items down to a single page.
func Paginate[T any](items []T, page, perPage int) ([]T, Pagination) {
	p := NewPagination(page, perPage, len(items))
	if p.Total == 0 {
		return []T{}, p
	}
	start := p.Offset()
	end := min(start+p.PerPage, p.Total)
	return items[start:end], p
}

func clampPage(page, total int) int {
	if page < 1 || total < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
