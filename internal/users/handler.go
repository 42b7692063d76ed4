package users

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/solarhub/solarhub-admin/internal/shared"
	"github.com/solarhub/solarhub-admin/internal/view"
)

// Handler manages user management endpoints.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountRoutes registers user routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listUsers)
}

type listPageData struct {
	Stats []view.StatCard
	Query string
	Users []User
	Pager view.PageBar
	Error string
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	users, p, err := h.service.Search(r.Context(), Filter{Query: query, Page: page})
	if err != nil {
		h.fail(w, r, err)
		return
	}

	data := listPageData{
		Stats: StatCards(stats),
		Query: query,
		Users: users,
		Pager: view.NewPageBar(p, func(n int) string { return pageLink(query, n) }),
	}
	h.render(w, r, http.StatusOK, data)
}

// StatCards maps directory stats onto the stat tile partial.
func StatCards(s Stats) []view.StatCard {
	return []view.StatCard{
		{Title: "Total Users", Value: view.FormatNumber(s.Total), Color: "blue", Icon: "users"},
		{Title: "Users with BVN", Value: view.FormatNumber(s.WithBVN), Color: "green", Icon: "badge-check"},
		{Title: "Joined This Month", Value: view.FormatNumber(s.JoinedThisMonth), Color: "orange", Icon: "user-plus"},
	}
}

func pageLink(query string, page int) string {
	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	v.Set("page", strconv.Itoa(page))
	return "?" + v.Encode()
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("list users failed", slog.Any("error", err))
	h.render(w, r, http.StatusInternalServerError, listPageData{Error: "Failed to load users. Please try again."})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data listPageData) {
	if err := h.templates.Render(w, status, "pages/users.html", view.PageData(r, h.csrf, "User Management", data)); err != nil {
		h.logger.Error("render template", slog.Any("error", err))
	}
}
