package referral

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/solarhub/solarhub-admin/internal/auth"
	"github.com/solarhub/solarhub-admin/internal/backend"
	"github.com/solarhub/solarhub-admin/internal/shared"
	"github.com/solarhub/solarhub-admin/internal/view"
)

const requestTimeout = 10 * time.Second

// Backend is the referral data contract used by the handler.
type Backend interface {
	List(ctx context.Context, q ListQuery) (List, error)
	Settings(ctx context.Context) (Settings, error)
	UpdateSettings(ctx context.Context, form SettingsForm) (FieldErrors, error)
	UserDetail(ctx context.Context, userID int64) (Detail, error)
}

// Handler serves the referral management pages.
type Handler struct {
	logger    *slog.Logger
	service   Backend
	templates *view.Engine
	csrf      *shared.CSRFManager
	perPage   int
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service Backend, templates *view.Engine, csrf *shared.CSRFManager, perPage int) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, perPage: perPage}
}

// MountRoutes registers referral routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listReferrals)
	r.Post("/settings", h.updateSettings)
	r.Get("/users/{userID}", h.showUser)
	r.Get("/export.csv", h.exportCSV)
}

type listPageData struct {
	Query        ListQuery
	SortOptions  []SortOption
	NextOrder    string
	Referrers    []Referrer
	Pager        view.PageBar
	Settings     Settings
	SettingsForm SettingsForm
	Errors       FieldErrors
	ShowSettings bool
	LoadError    string
	ExportURL    string
}

func (h *Handler) listReferrals(w http.ResponseWriter, r *http.Request) {
	q := ParseListQuery(r.URL.Query(), h.perPage)
	data := listPageData{SettingsForm: SettingsForm{}, Errors: FieldErrors{}}
	status := h.loadListPage(w, r, q, &data)
	if status == 0 {
		return
	}
	if data.LoadError == "" {
		data.SettingsForm = SettingsForm{
			CommissionPercentage: data.Settings.CommissionPercentage.String(),
			MinimumWithdrawal:    data.Settings.MinimumWithdrawal.String(),
		}
	}
	h.render(w, r, status, "pages/referrals.html", "Referral Management", data)
}

// loadListPage fills list and settings concurrently. It returns the status to
// render with, or 0 when the response was already handled.
func (h *Handler) loadListPage(w http.ResponseWriter, r *http.Request, q ListQuery, data *listPageData) int {
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	var list List
	var settings Settings
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = h.service.List(gctx, q)
		return err
	})
	g.Go(func() error {
		var err error
		settings, err = h.service.Settings(gctx)
		return err
	})
	err := g.Wait()

	data.Query = q
	data.SortOptions = SortOptions
	data.NextOrder = q.ToggleOrder()
	data.ExportURL = "/referrals/export.csv" + q.PageLink(q.Page)
	if err != nil {
		if auth.ExpireOnUnauthorized(w, r, err) {
			return 0
		}
		h.logger.Error("load referrals failed", slog.Any("error", err))
		data.LoadError = "Failed to load referrals. Please try again."
		data.Referrers = []Referrer{}
		return http.StatusBadGateway
	}

	data.Referrers = list.Referrers
	data.Settings = settings
	p := shared.NewPagination(list.Page.CurrentPage, list.Page.PerPage, list.Page.Total)
	data.Pager = view.NewPageBar(p, func(page int) string { return q.PageLink(page) })
	return http.StatusOK
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := SettingsForm{
		CommissionPercentage: r.PostFormValue(fieldCommission),
		MinimumWithdrawal:    r.PostFormValue(fieldWithdrawal),
	}
	q := ParseListQuery(r.PostForm, h.perPage)
	back := "/referrals" + q.PageLink(q.Page)

	fieldErrs, err := h.service.UpdateSettings(r.Context(), form)
	switch {
	case len(fieldErrs) > 0:
		data := listPageData{}
		status := h.loadListPage(w, r, q, &data)
		if status == 0 {
			return
		}
		data.SettingsForm = form
		data.Errors = fieldErrs
		data.ShowSettings = true
		h.render(w, r, http.StatusUnprocessableEntity, "pages/referrals.html", "Referral Management", data)
	case err != nil:
		if auth.ExpireOnUnauthorized(w, r, err) {
			return
		}
		h.logger.Error("update referral settings failed", slog.Any("error", err))
		h.redirectWithFlash(w, r, back, shared.FlashError, "Failed to update settings: "+backend.UserMessage(err))
	default:
		h.redirectWithFlash(w, r, back, shared.FlashSuccess, "Referral settings updated")
	}
}

type detailPageData struct {
	Detail    Detail
	LoadError string
}

func (h *Handler) showUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || userID <= 0 {
		http.NotFound(w, r)
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	detail, err := h.service.UserDetail(ctx, userID)
	if err != nil {
		if auth.ExpireOnUnauthorized(w, r, err) {
			return
		}
		status := http.StatusBadGateway
		message := "Failed to load referral details. Please try again."
		if errors.Is(err, backend.ErrNotFound) {
			status = http.StatusNotFound
			message = "Referral user not found."
		} else {
			h.logger.Error("load referral user failed", slog.Int64("user_id", userID), slog.Any("error", err))
		}
		h.render(w, r, status, "pages/referral_detail.html", "Referral Details", detailPageData{LoadError: message})
		return
	}
	h.render(w, r, http.StatusOK, "pages/referral_detail.html", detail.Name, detailPageData{Detail: detail})
}

func (h *Handler) exportCSV(w http.ResponseWriter, r *http.Request) {
	q := ParseListQuery(r.URL.Query(), h.perPage)
	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	list, err := h.service.List(ctx, q)
	if err != nil {
		if auth.ExpireOnUnauthorized(w, r, err) {
			return
		}
		h.logger.Error("export referrals failed", slog.Any("error", err))
		http.Error(w, "Failed to load referrals", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"referrals-page-%d.csv\"", q.Page))
	if err := WriteCSV(w, list.Referrers); err != nil {
		h.logger.Error("write referrals csv", slog.Any("error", err))
	}
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, template, title string, data any) {
	if err := h.templates.Render(w, status, template, view.PageData(r, h.csrf, title, data)); err != nil {
		h.logger.Error("render template", slog.String("template", template), slog.Any("error", err))
	}
}

func (h *Handler) redirectWithFlash(w http.ResponseWriter, r *http.Request, location, kind, message string) {
	shared.AddFlash(r.Context(), kind, message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// WriteCSV serialises referrers with a header row.
func WriteCSV(w io.Writer, referrers []Referrer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Name", "Email", "User Code", "No. of Referrals", "Amount Earned", "Date Joined"}); err != nil {
		return err
	}
	for _, ref := range referrers {
		if err := writer.Write([]string{
			ref.Name,
			ref.Email,
			ref.UserCode,
			strconv.Itoa(ref.NoOfReferral),
			ref.AmountEarned.StringFixed(2),
			ref.DateJoined,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
