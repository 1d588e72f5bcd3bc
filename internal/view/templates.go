package view

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/i18n"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
	"github.com/zsajjad/dr-admission-portal-sub001/web"
)

// PageSizes are the rows-per-page choices offered by listing pagers.
var PageSizes = []int{10, 25, 50, 100}

// Engine renders HTML templates.
type Engine struct {
	templates *template.Template
}

// TemplateData contains values shared across templates.
type TemplateData struct {
	Title       string
	CSRFToken   string
	Flash       *shared.FlashMessage
	Error       string
	CurrentPath string
	Locale      i18n.Locale
	Admin       *shared.Admin
	Data        any
}

// T translates key in the request locale.
func (d TemplateData) T(key string, args ...any) string {
	return d.Locale.T(key, args...)
}

// SortColumn feeds the partials/sort_header template.
type SortColumn struct {
	Path    string
	Filters listing.FilterState
	Field   string
	Label   string
}

// NewEngine parses templates at build-time.
func NewEngine() (*Engine, error) {
	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02 Jan 2006 15:04")
		},
		"filterValue": func(state listing.FilterState, key string) string {
			v, _ := state.Get(key)
			return v
		},
		"sortCol": func(path string, state listing.FilterState, field, label string) SortColumn {
			return SortColumn{Path: path, Filters: state, Field: field, Label: label}
		},
		"sortURL":   SortURL,
		"sortMark":  sortMark,
		"pageURL":   PageURL,
		"pageSizes": func() []int { return PageSizes },
		"inc":       func(n int) int { return n + 1 },
		"dec":       func(n int) int { return n - 1 },
	}
	tpl, err := template.New("root").Funcs(funcMap).ParseFS(web.Templates, "templates/layouts/*.html", "templates/partials/*.html", "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	return &Engine{templates: tpl}, nil
}

// Render executes a named template with TemplateData.
func (e *Engine) Render(w http.ResponseWriter, name string, data TemplateData) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return e.templates.ExecuteTemplate(w, name, data)
}

// SortURL links a column header to the next sort step for field:
// ascending, then descending, then unsorted.
func SortURL(path string, state listing.FilterState, field string) string {
	patch := listing.Patch{
		listing.KeySortBy:    listing.String(field),
		listing.KeySortOrder: listing.String(string(listing.SortAsc)),
	}
	if state.SortBy == field {
		switch state.SortOrder {
		case listing.SortAsc:
			patch[listing.KeySortOrder] = listing.String(string(listing.SortDesc))
		case listing.SortDesc:
			patch[listing.KeySortBy] = listing.Unset()
			patch[listing.KeySortOrder] = listing.Unset()
		}
	}
	return path + "?" + state.With(patch)
}

// PageURL links to page of the current listing.
func PageURL(path string, state listing.FilterState, page int) string {
	return path + "?" + state.With(listing.Patch{listing.KeyPage: listing.Int(page)})
}

func sortMark(state listing.FilterState, field string) string {
	if state.SortBy != field {
		return ""
	}
	switch state.SortOrder {
	case listing.SortAsc:
		return " ▲"
	case listing.SortDesc:
		return " ▼"
	}
	return ""
}

// NewTemplateData fills the per-request fields: locale, signed in admin,
// current path and the next pending flash message.
func NewTemplateData(r *http.Request, title, csrfToken string, data any) TemplateData {
	td := TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		CurrentPath: r.URL.Path,
		Locale:      i18n.FromContext(r.Context()),
		Data:        data,
	}
	if admin, ok := shared.AdminFromContext(r.Context()); ok {
		td.Admin = &admin
	}
	if sess := shared.SessionFromContext(r.Context()); sess != nil {
		td.Flash = sess.PopFlash()
	}
	return td
}
