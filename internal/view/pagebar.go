package view

import "github.com/solarhub/solarhub-admin/internal/shared"

// PageLink is a single numbered button of a pagination bar.
type PageLink struct {
	Number int
	URL    string
	Active bool
}

// PageBar is the view model of the pagination partial.
type PageBar struct {
	Pages   []PageLink
	HasPrev bool
	HasNext bool
	PrevURL string
	NextURL string
	Summary string
}

// NewPageBar builds a PageBar; link renders the URL for a page number.
func NewPageBar(p shared.Pagination, link func(page int) string) PageBar {
	bar := PageBar{
		HasPrev: p.HasPrev(),
		HasNext: p.HasNext(),
		PrevURL: link(p.PrevPage()),
		NextURL: link(p.NextPage()),
	}
	for _, n := range p.Window() {
		bar.Pages = append(bar.Pages, PageLink{Number: n, URL: link(n), Active: n == p.Page})
	}
	if p.Total > 0 {
		first := p.Offset() + 1
		last := min(p.Offset()+p.PerPage, p.Total)
		bar.Summary = printer.Sprintf("Showing %d–%d of %d", first, last, p.Total)
	}
	return bar
}
