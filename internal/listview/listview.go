// Package listview renders listing pages and their JSON twins from the
// FilterState carried in the request URL.
package listview

import (
	"log/slog"
	"net/http"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/platform/httpx"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/view"
)

// Page is the view model handed to listing templates.
type Page[T any] struct {
	Rows       []T
	Filters    listing.FilterState
	Pagination shared.Pagination
}

// NewPage pairs one page of rows with its pagination metadata.
func NewPage[T any](rows []T, total int, filters listing.FilterState) Page[T] {
	return Page[T]{
		Rows:       rows,
		Filters:    filters,
		Pagination: shared.NewPagination(filters.Page, filters.PageSize, total),
	}
}

// Response is the JSON body of the /api listing endpoints.
type Response[T any] struct {
	Items   []T               `json:"items"`
	Total   int               `json:"total"`
	Filters map[string]string `json:"filters"`
}

// NewResponse builds a Response; nil rows encode as an empty list.
func NewResponse[T any](rows []T, total int, filters listing.FilterState) Response[T] {
	if rows == nil {
		rows = []T{}
	}
	flat := make(map[string]string)
	for key, values := range filters.Values() {
		if len(values) > 0 {
			flat[key] = values[0]
		}
	}
	return Response[T]{Items: rows, Total: total, Filters: flat}
}

// Renderer renders listing pages for one portal instance.
type Renderer struct {
	Logger    *slog.Logger
	Templates *view.Engine
	CSRF      *shared.CSRFManager
	// PageSize is used when the URL carries no pageSize.
	PageSize int
}

// Filters derives the FilterState of r.
func (rd Renderer) Filters(r *http.Request) listing.FilterState {
	return listing.ParseFiltersPageSize(r.URL.Query(), rd.PageSize)
}

// HTML renders template. A non-nil err is logged, mapped to a status and
// shown as a translated banner above the (empty) listing.
func (rd Renderer) HTML(w http.ResponseWriter, r *http.Request, template, title string, data any, err error) {
	sess := shared.SessionFromContext(r.Context())
	var csrfToken string
	if rd.CSRF != nil && sess != nil {
		csrfToken, _ = rd.CSRF.EnsureToken(r.Context(), sess)
	}
	td := view.NewTemplateData(r, title, csrfToken, data)
	if err != nil {
		rd.logger().Error("listing query failed", slog.String("path", r.URL.Path), slog.Any("error", err))
		td.Error = httpx.ErrorMessage(err)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(httpx.StatusFor(err))
	}
	if renderErr := rd.Templates.Render(w, template, td); renderErr != nil {
		rd.logger().Error("render template", slog.String("template", template), slog.Any("error", renderErr))
	}
}

// JSON writes rows as a Response, or a problem document when err is set.
func JSON[T any](w http.ResponseWriter, rd Renderer, rows []T, total int, filters listing.FilterState, err error) {
	if err != nil {
		if httpx.StatusFor(err) == http.StatusInternalServerError {
			rd.logger().Error("listing api failed", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, NewResponse(rows, total, filters))
}

func (rd Renderer) logger() *slog.Logger {
	if rd.Logger != nil {
		return rd.Logger
	}
	return slog.Default()
}
