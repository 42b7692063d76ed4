package calculator

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/solarhub/solarhub-admin/internal/platform/httpx"
	"github.com/solarhub/solarhub-admin/internal/shared"
	"github.com/solarhub/solarhub-admin/internal/view"
)

const sessionKeyPrefix = "calc:"

// Handler serves the load calculator tools.
type Handler struct {
	logger    *slog.Logger
	catalog   *Catalog
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, catalog *Catalog, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, catalog: catalog, templates: templates, csrf: csrf}
}

// MountRoutes registers calculator routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showIndex)
	r.Route("/{mode}", func(r chi.Router) {
		r.Get("/", h.showWorksheet)
		r.Post("/room", h.selectRoom)
		r.Post("/items/{itemID}/increment", h.increment)
		r.Post("/items/{itemID}/decrement", h.decrement)
		r.Post("/items/{itemID}/wattage", h.setWattage)
		r.Post("/reset", h.reset)
		r.Post("/summary", h.summary)
	})
}

type toolLink struct {
	Mode  Mode
	Title string
	URL   string
}

type indexPageData struct {
	Tools []toolLink
}

func (h *Handler) showIndex(w http.ResponseWriter, r *http.Request) {
	tools := make([]toolLink, 0, len(Modes))
	for _, m := range Modes {
		tools = append(tools, toolLink{Mode: m, Title: m.Title(), URL: worksheetURL(m)})
	}
	h.render(w, r, http.StatusOK, "pages/tools.html", "Tools", indexPageData{Tools: tools})
}

type worksheetPageData struct {
	Mode       Mode
	TotalLabel string
	Rooms      []RoomType
	Worksheet  *Worksheet
	Summary    Summary
	ShowRating bool
	Error      string
}

func (h *Handler) showWorksheet(w http.ResponseWriter, r *http.Request) {
	mode, ok := h.mode(w, r)
	if !ok {
		return
	}
	ws, err := h.worksheet(r, mode)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.renderWorksheet(w, r, http.StatusOK, ws, "")
}

func (h *Handler) selectRoom(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ws *Worksheet) error {
		room, err := h.catalog.Room(ws.Mode, r.PostFormValue("room"))
		if err != nil {
			return err
		}
		ws.SelectRoom(room)
		return nil
	})
}

func (h *Handler) increment(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ws *Worksheet) error {
		return ws.Increment(chi.URLParam(r, "itemID"))
	})
}

func (h *Handler) decrement(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ws *Worksheet) error {
		return ws.Decrement(chi.URLParam(r, "itemID"))
	})
}

func (h *Handler) setWattage(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ws *Worksheet) error {
		watts, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("wattage")))
		if err != nil {
			return ErrInvalidWattage
		}
		return ws.SetWattage(chi.URLParam(r, "itemID"), watts)
	})
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ws *Worksheet) error {
		room, err := h.catalog.Room(ws.Mode, ws.RoomID)
		if err != nil {
			room, err = h.catalog.DefaultRoom(ws.Mode)
			if err != nil {
				return err
			}
		}
		ws.SelectRoom(room)
		return nil
	})
}

// mutate loads the worksheet of the routed mode, applies fn, stores the
// result and redirects back. Validation failures re-render with 422.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(*Worksheet) error) {
	mode, ok := h.mode(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	ws, err := h.worksheet(r, mode)
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := fn(ws); err != nil {
		switch {
		case errors.Is(err, ErrInvalidWattage):
			h.renderWorksheet(w, r, http.StatusUnprocessableEntity, ws, "Wattage must be a whole number between 0 and "+view.FormatNumber(MaxWattage)+".")
		case errors.Is(err, ErrItemNotFound), errors.Is(err, ErrUnknownRoom):
			http.NotFound(w, r)
		default:
			h.fail(w, err)
		}
		return
	}
	if err := storeWorksheet(r, ws); err != nil {
		h.fail(w, err)
		return
	}
	http.Redirect(w, r, worksheetURL(mode), http.StatusSeeOther)
}

type summaryRequest struct {
	Items []ApplianceItem `json:"items"`
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	if _, err := ParseMode(chi.URLParam(r, "mode")); err != nil {
		httpx.RespondError(w, httpx.ErrNotFound)
		return
	}
	var req summaryRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, Summarize(req.Items))
}

func (h *Handler) mode(w http.ResponseWriter, r *http.Request) (Mode, bool) {
	mode, err := ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		http.NotFound(w, r)
		return "", false
	}
	return mode, true
}

// worksheet restores the mode's worksheet from the session, falling back to
// the first preset room.
func (h *Handler) worksheet(r *http.Request, mode Mode) (*Worksheet, error) {
	sess := shared.SessionFromContext(r.Context())
	if raw := sess.Get(sessionKeyPrefix + string(mode)); raw != "" {
		var ws Worksheet
		if err := json.Unmarshal([]byte(raw), &ws); err == nil && ws.Mode == mode {
			return &ws, nil
		}
		h.logger.Warn("discarding unreadable worksheet", slog.String("mode", string(mode)))
	}
	room, err := h.catalog.DefaultRoom(mode)
	if err != nil {
		return nil, err
	}
	return NewWorksheet(mode, room), nil
}

func storeWorksheet(r *http.Request, ws *Worksheet) error {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return shared.ErrSessionMissing
	}
	raw, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	sess.Set(sessionKeyPrefix+string(ws.Mode), string(raw))
	return nil
}

func (h *Handler) renderWorksheet(w http.ResponseWriter, r *http.Request, status int, ws *Worksheet, message string) {
	data := worksheetPageData{
		Mode:       ws.Mode,
		TotalLabel: ws.Mode.TotalLabel(),
		Rooms:      h.catalog.Rooms(ws.Mode),
		Worksheet:  ws,
		Summary:    ws.Summary(),
		ShowRating: ws.Mode == ModeSolar,
		Error:      message,
	}
	h.render(w, r, status, "pages/calculator.html", ws.Mode.Title(), data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, template, title string, data any) {
	if err := h.templates.Render(w, status, template, view.PageData(r, h.csrf, title, data)); err != nil {
		h.logger.Error("render template", slog.String("template", template), slog.Any("error", err))
	}
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	h.logger.Error("calculator request failed", slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func worksheetURL(mode Mode) string {
	return "/tools/" + string(mode)
}
