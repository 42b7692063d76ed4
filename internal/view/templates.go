package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/solarhub/solarhub-admin/internal/shared"
	"github.com/solarhub/solarhub-admin/web"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "₦"

var printer = message.NewPrinter(language.English)

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	CurrentPath string
	AdminName   string
	Data        any
}

// NewEngine parses the embedded templates.
func NewEngine() (*Engine, error) {
	tpl, err := template.New("root").Funcs(Funcs()).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData. Output is buffered so a
// template error never leaves a half-written page behind the status line.
func (e *Engine) Render(w http.ResponseWriter, status int, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("view: template engine not initialised")
	}
	var buf bytes.Buffer
	if err := e.templates.ExecuteTemplate(&buf, name, data); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("view: render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// PageData assembles TemplateData for the session carried by r. It pops the
// pending flash, so call it once per response.
func PageData(r *http.Request, csrf *shared.CSRFManager, title string, data any) TemplateData {
	sess := shared.SessionFromContext(r.Context())
	td := TemplateData{
		Title:       title,
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		AdminName:   sess.AdminName(),
		Data:        data,
	}
	if csrf != nil {
		td.CSRFToken, _ = csrf.EnsureToken(sess)
	}
	return td
}

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"formatCurrency": FormatCurrency,
		"formatNumber":   FormatNumber,
		"formatWatts":    FormatWatts,
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006")
		},
		"isActive": func(current, prefix string) bool {
			if prefix == "/" {
				return current == "/"
			}
			return current == prefix || strings.HasPrefix(current, prefix+"/")
		},
		"add": func(a, b int) int { return a + b },
	}
}

// FormatCurrency renders an amount as ₦1,234,567.89.
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	units := amount.Truncate(0)
	kobo := amount.Sub(units).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	whole := units.IntPart()
	if kobo >= 100 {
		whole++
		kobo -= 100
	}
	return fmt.Sprintf("%s%s%s.%02d", sign, CurrencySymbol, printer.Sprintf("%d", whole), kobo)
}

// FormatNumber groups thousands: 12500 -> 12,500.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatWatts renders a load in watts, switching to kW from 1000 W.
func FormatWatts(watts int) string {
	if watts >= 1000 {
		return printer.Sprintf("%.2f kW", float64(watts)/1000)
	}
	return printer.Sprintf("%d W", watts)
}
