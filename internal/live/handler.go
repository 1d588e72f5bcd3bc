// Package live runs the websocket channel that binds one browser listing view
// to a listing.Synchronizer. Grid events flow in; replace navigations flow out.
package live

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/observability"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/platform/httpx"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/rbac"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
)

const (
	readLimit  = 8 << 10
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Config tunes the synchronizer behind each channel.
type Config struct {
	Debounce time.Duration
	PageSize int
}

// Handler upgrades /live/listing requests.
type Handler struct {
	logger   *slog.Logger
	metrics  *observability.Metrics
	cfg      Config
	upgrader websocket.Upgrader
	// views maps a listing path to the permission needed to drive it.
	views map[string]string
}

// NewHandler constructs a Handler. metrics may be nil.
func NewHandler(logger *slog.Logger, metrics *observability.Metrics, cfg Config) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:  logger,
		metrics: metrics,
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     SameOriginCheck,
		},
		views: make(map[string]string),
	}
}

// Allow registers a listing path and the permission it requires.
func (h *Handler) Allow(path, perm string) *Handler {
	h.views[path] = perm
	return h
}

// ServeHTTP expects ?path=<listing path>&query=<current query>.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	perm, ok := h.views[path]
	if !ok {
		httpx.Problem(w, http.StatusBadRequest, http.StatusText(http.StatusBadRequest), "unknown listing path")
		return
	}
	if admin, ok := shared.AdminFromContext(r.Context()); !ok || !granted(admin, perm) {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	query := r.URL.Query().Get("query")
	if _, err := url.ParseQuery(query); err != nil {
		httpx.Problem(w, http.StatusBadRequest, http.StatusText(http.StatusBadRequest), "malformed query")
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("live upgrade", slog.Any("error", err))
		return
	}

	c, err := newConn(ws, path, query, h)
	if err != nil {
		h.logger.Error("live open", slog.Any("error", err))
		_ = ws.Close()
		return
	}
	h.metrics.LiveOpened()
	defer h.metrics.LiveClosed()
	c.run()
}

func (h *Handler) syncOptions() []listing.Option {
	return []listing.Option{
		listing.WithDebounce(h.cfg.Debounce),
		listing.WithPageSize(h.cfg.PageSize),
		listing.WithLogger(h.logger),
	}
}

func granted(admin shared.Admin, perm string) bool {
	if perm == "" {
		return true
	}
	for _, p := range rbac.PermissionsFor(admin.Role) {
		if p == perm {
			return true
		}
	}
	return false
}

// SameOriginCheck accepts requests without an Origin header or whose Origin
// host matches the request host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return r.Host != "" && u.Host == r.Host
}
