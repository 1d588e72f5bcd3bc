package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/auth"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/branches"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/i18n"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/live"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/observability"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/rbac"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/users"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/vans"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/view"
	"github.com/zsajjad/dr-admission-portal-sub001/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	Templates       *view.Engine
	SessionManager  *shared.SessionManager
	CSRFManager     *shared.CSRFManager
	Translator      *i18n.Translator
	AuthHandler     *auth.Handler
	BranchesHandler *branches.Handler
	VansHandler     *vans.Handler
	UsersHandler    *users.Handler
	LiveHandler     *live.Handler
	RBACMiddleware  rbac.Middleware
	Metrics         *observability.Metrics
}

// NewRouter constructs the chi.Router with the portal defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Translator:     params.Translator,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.LiveHandler != nil {
		r.With(params.RBACMiddleware.RequireAuth).Handle("/live/listing", params.LiveHandler)
	}

	r.Group(func(r chi.Router) {
		for _, mw := range PageMiddleware(params.Config) {
			r.Use(mw)
		}

		r.With(params.RBACMiddleware.RequireAuth).Get("/", func(w http.ResponseWriter, r *http.Request) {
			sess := shared.SessionFromContext(r.Context())
			csrfToken, _ := params.CSRFManager.EnsureToken(r.Context(), sess)
			data := view.NewTemplateData(r, "Dashboard", csrfToken, nil)
			if err := params.Templates.Render(w, "pages/home.html", data); err != nil {
				params.Logger.Error("render home", slog.Any("error", err))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		})

		if params.AuthHandler != nil {
			r.Route("/auth", params.AuthHandler.MountRoutes)
		}

		if params.BranchesHandler != nil {
			mountListing(r, params.RBACMiddleware, shared.PermBranchesView, "branches", params.BranchesHandler)
		}
		if params.VansHandler != nil {
			mountListing(r, params.RBACMiddleware, shared.PermVansView, "vans", params.VansHandler)
		}
		if params.UsersHandler != nil {
			mountListing(r, params.RBACMiddleware, shared.PermUsersView, "users", params.UsersHandler)
		}

		if params.Metrics != nil {
			r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
		}

		staticFS, err := fs.Sub(web.Static, "static")
		if err != nil {
			params.Logger.Error("create static sub filesystem", slog.Any("error", err))
			return
		}
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	})

	return r
}

type listingHandler interface {
	MountRoutes(chi.Router)
	MountAPI(chi.Router)
}

// mountListing exposes a listing page at /name and its JSON twin at /api/name.
func mountListing(r chi.Router, mw rbac.Middleware, perm, name string, h listingHandler) {
	guard := mw.RequireAny(perm)
	r.With(guard).Route("/"+name, h.MountRoutes)
	r.With(guard).Route("/api/"+name, h.MountAPI)
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}
