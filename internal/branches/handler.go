package branches

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/listview"
)

// Lister is the listing capability the handler needs.
type Lister interface {
	List(ctx context.Context, state listing.FilterState) ([]Branch, int, error)
}

// Handler serves the branch listing page and its JSON endpoint.
type Handler struct {
	service Lister
	view    listview.Renderer
}

// NewHandler builds Handler instance.
func NewHandler(service Lister, renderer listview.Renderer) *Handler {
	return &Handler{service: service, view: renderer}
}

// MountRoutes registers the HTML listing.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
}

// MountAPI registers the JSON listing.
func (h *Handler) MountAPI(r chi.Router) {
	r.Get("/", h.listJSON)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := h.view.Filters(r)
	rows, total, err := h.service.List(r.Context(), filters)
	h.view.HTML(w, r, "pages/branches_list.html", "Branches", listview.NewPage(rows, total, filters), err)
}

func (h *Handler) listJSON(w http.ResponseWriter, r *http.Request) {
	filters := h.view.Filters(r)
	rows, total, err := h.service.List(r.Context(), filters)
	listview.JSON(w, h.view, rows, total, filters, err)
}
