package rbac

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/platform/httpx"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
)

// AdminLoader resolves the signed in administrator.
type AdminLoader interface {
	Admin(ctx context.Context, id int64) (shared.Admin, error)
}

// Middleware wires RBAC authorization helpers for HTTP handlers.
type Middleware struct {
	Service AdminLoader
	Logger  *slog.Logger
}

// RequireAuth resolves the signed in admin into the request context.
// Anonymous browsers are sent to the login page; API and websocket clients
// get 401.
func (m Middleware) RequireAuth(next http.Handler) http.Handler {
	return m.RequireAny()(next)
}

// RequireAny ensures the current admin has at least one of the required
// permissions. With no permissions it only requires a signed in admin.
func (m Middleware) RequireAny(perms ...string) func(http.Handler) http.Handler {
	normalized := normalizePermissions(perms)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			admin, err := m.currentAdmin(r)
			if err != nil {
				if !errors.Is(err, shared.ErrUnauthenticated) {
					m.logger().Error("rbac load admin", slog.Any("error", err))
					httpx.RespondError(w, err)
					return
				}
				m.deny(w, r)
				return
			}
			if !hasAnyPermission(PermissionsFor(admin.Role), normalized) {
				m.logger().Warn("rbac forbidden", slog.Int64("admin_id", admin.ID), slog.String("path", r.URL.Path))
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r.WithContext(shared.ContextWithAdmin(r.Context(), admin)))
		})
	}
}

func (m Middleware) deny(w http.ResponseWriter, r *http.Request) {
	if wantsJSON(r) {
		httpx.RespondError(w, shared.ErrUnauthenticated)
		return
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (m Middleware) currentAdmin(r *http.Request) (shared.Admin, error) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		return shared.Admin{}, shared.ErrUnauthenticated
	}
	raw := strings.TrimSpace(sess.User())
	if raw == "" {
		return shared.Admin{}, shared.ErrUnauthenticated
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		m.logger().Error("rbac parse user id", slog.String("value", raw))
		return shared.Admin{}, shared.ErrUnauthenticated
	}
	return m.Service.Admin(r.Context(), id)
}

func (m Middleware) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}

func wantsJSON(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/live/") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func normalizePermissions(perms []string) []string {
	unique := make(map[string]struct{}, len(perms))
	for _, p := range perms {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == "" {
			continue
		}
		unique[p] = struct{}{}
	}
	normalized := make([]string, 0, len(unique))
	for p := range unique {
		normalized = append(normalized, p)
	}
	return normalized
}

func hasAnyPermission(granted []string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	set := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		set[strings.ToLower(p)] = struct{}{}
	}
	for _, r := range required {
		if _, ok := set[r]; ok {
			return true
		}
	}
	return false
}
