package vans

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/listview"
)

// Lister is the listing capability the handler needs.
type Lister interface {
	List(ctx context.Context, state listing.FilterState) ([]Van, int, error)
	BranchOptions(ctx context.Context) ([]BranchOption, error)
}

// Handler serves the van listing page and its JSON endpoint.
type Handler struct {
	logger  *slog.Logger
	service Lister
	view    listview.Renderer
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service Lister, renderer listview.Renderer) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{logger: logger, service: service, view: renderer}
}

// MountRoutes registers the HTML listing.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.list)
}

// MountAPI registers the JSON listing.
func (h *Handler) MountAPI(r chi.Router) {
	r.Get("/", h.listJSON)
}

type listPage struct {
	listview.Page[Van]
	Branches []BranchOption
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filters := h.view.Filters(r)
	rows, total, err := h.service.List(r.Context(), filters)
	page := listPage{Page: listview.NewPage(rows, total, filters)}
	options, optErr := h.service.BranchOptions(r.Context())
	if optErr != nil {
		h.logger.Warn("van branch options", slog.Any("error", optErr))
	}
	page.Branches = options
	h.view.HTML(w, r, "pages/vans_list.html", "Vans", page, err)
}

func (h *Handler) listJSON(w http.ResponseWriter, r *http.Request) {
	filters := h.view.Filters(r)
	rows, total, err := h.service.List(r.Context(), filters)
	listview.JSON(w, h.view, rows, total, filters, err)
}
