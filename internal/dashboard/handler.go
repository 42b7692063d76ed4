// Package dashboard serves the admin landing page.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/solarhub/solarhub-admin/internal/shared"
	"github.com/solarhub/solarhub-admin/internal/users"
	"github.com/solarhub/solarhub-admin/internal/view"
)

// LatestUsersPerPage is the page size of the latest users table.
const LatestUsersPerPage = 5

// UserSource provides the latest users.
type UserSource interface {
	Latest(ctx context.Context, page, perPage int) ([]users.User, shared.Pagination, error)
}

// Handler renders the dashboard.
type Handler struct {
	logger    *slog.Logger
	users     UserSource
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, users UserSource, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, users: users, templates: templates, csrf: csrf}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDashboard)
}

type filterTab struct {
	Label  string
	URL    string
	Active bool
}

type pageData struct {
	Stats       []view.StatCard
	Filters     []filterTab
	Filter      Filter
	Points      []Point
	Orders      []Order
	OrdersTotal decimal.Decimal
	LatestUsers []users.User
	Pager       view.PageBar
	UsersError  string
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	filter := ParseFilter(r.URL.Query().Get("filter"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	data := pageData{
		Stats:       Stats,
		Filters:     filterTabs(filter, page),
		Filter:      filter,
		Points:      Datasets[filter],
		Orders:      Orders,
		OrdersTotal: OrdersTotal(Orders),
	}
	latest, p, err := h.users.Latest(r.Context(), page, LatestUsersPerPage)
	if err != nil {
		h.logger.Error("load latest users failed", slog.Any("error", err))
		data.UsersError = "Failed to load latest users."
	} else {
		data.LatestUsers = latest
		data.Pager = view.NewPageBar(p, func(n int) string { return link(filter, n) })
	}

	if err := h.templates.Render(w, http.StatusOK, "pages/dashboard.html", view.PageData(r, h.csrf, "Dashboard", data)); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}

func filterTabs(active Filter, page int) []filterTab {
	tabs := make([]filterTab, 0, len(FilterOptions))
	for _, opt := range FilterOptions {
		tabs = append(tabs, filterTab{Label: opt.Label, URL: link(opt.Value, page), Active: opt.Value == active})
	}
	return tabs
}

func link(filter Filter, page int) string {
	v := url.Values{}
	v.Set("filter", string(filter))
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return "?" + v.Encode()
}
