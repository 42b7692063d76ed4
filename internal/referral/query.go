package referral

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort orders accepted by the list endpoint.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// DefaultPerPage is the list page size when none is configured.
const DefaultPerPage = 10

// SortOption maps a label shown in the sort menu to the API field it sorts by.
type SortOption struct {
	Label string
	Field string
}

// DefaultSortLabel is used when the requested label is unknown.
const DefaultSortLabel = "Date Joined"

// SortOptions lists the sort menu in display order.
var SortOptions = []SortOption{
	{Label: "Name", Field: "name"},
	{Label: "Email", Field: "email"},
	{Label: "No. of Referrals", Field: "no_of_referral"},
	{Label: "Amount Earned", Field: "amount_earned"},
	{Label: DefaultSortLabel, Field: "created_at"},
}

// SortField resolves a menu label to its API field, falling back to the default.
func SortField(label string) string {
	for _, opt := range SortOptions {
		if strings.EqualFold(opt.Label, strings.TrimSpace(label)) {
			return opt.Field
		}
	}
	return SortField(DefaultSortLabel)
}

// SortLabel resolves an API field back to its menu label.
func SortLabel(field string) string {
	for _, opt := range SortOptions {
		if opt.Field == field {
			return opt.Label
		}
	}
	return DefaultSortLabel
}

// ListQuery describes a referral list request as the UI expresses it.
type ListQuery struct {
	Search    string
	SortLabel string
	SortOrder string
	Page      int
	PerPage   int
}

// Normalize fills defaults and clamps values the API would reject.
func (q ListQuery) Normalize() ListQuery {
	q.Search = strings.TrimSpace(q.Search)
	q.SortLabel = SortLabel(SortField(q.SortLabel))
	q.SortOrder = strings.ToLower(strings.TrimSpace(q.SortOrder))
	if q.SortOrder != SortAsc {
		q.SortOrder = SortDesc
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = DefaultPerPage
	}
	return q
}

// Values builds the query string for GET /admin/referral/list.
func (q ListQuery) Values() url.Values {
	q = q.Normalize()
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	values.Set("sort_by", SortField(q.SortLabel))
	values.Set("sort_order", q.SortOrder)
	values.Set("per_page", strconv.Itoa(q.PerPage))
	values.Set("page", strconv.Itoa(q.Page))
	return values
}

// PageLink keeps search and sort while switching to page.
func (q ListQuery) PageLink(page int) string {
	q = q.Normalize()
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	values.Set("sort", q.SortLabel)
	values.Set("order", q.SortOrder)
	values.Set("page", strconv.Itoa(page))
	return "?" + values.Encode()
}

// ToggleOrder returns the opposite sort direction.
func (q ListQuery) ToggleOrder() string {
	if q.Normalize().SortOrder == SortAsc {
		return SortDesc
	}
	return SortAsc
}

// ParseListQuery reads a ListQuery from dashboard query parameters.
func ParseListQuery(values url.Values, perPage int) ListQuery {
	page, _ := strconv.Atoi(values.Get("page"))
	return ListQuery{
		Search:    values.Get("search"),
		SortLabel: values.Get("sort"),
		SortOrder: values.Get("order"),
		Page:      page,
		PerPage:   perPage,
	}.Normalize()
}
