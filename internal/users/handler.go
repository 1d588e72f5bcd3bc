package users

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/listview"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/rbac"
)

// Lister is the listing capability the handler needs.
type Lister interface {
	ListUsers(ctx context.Context, state listing.FilterState) ([]User, int, error)
}

// Handler manages admin user listing endpoints.
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
	r.Get("/", h.listUsers)
}

// MountAPI registers the JSON listing.
func (h *Handler) MountAPI(r chi.Router) {
	r.Get("/", h.listUsersJSON)
}

type listPage struct {
	listview.Page[User]
	Roles []string
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	filters := h.view.Filters(r)
	rows, total, err := h.service.ListUsers(r.Context(), filters)
	page := listPage{Page: listview.NewPage(rows, total, filters), Roles: rbac.Roles}
	h.view.HTML(w, r, "pages/users_list.html", "Admin users", page, err)
}

func (h *Handler) listUsersJSON(w http.ResponseWriter, r *http.Request) {
	filters := h.view.Filters(r)
	rows, total, err := h.service.ListUsers(r.Context(), filters)
	listview.JSON(w, h.view, rows, total, filters, err)
}
