package live

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/listing"
)

var errUnknownType = errors.New("unknown event type")

// conn is one live channel. Replace navigations coalesce: only the latest URL
// is pending at any time, which is all a replace navigation needs.
type conn struct {
	ws     *websocket.Conn
	h      *Handler
	logger *slog.Logger

	store        *listing.URLStore
	synchronizer *listing.Synchronizer

	mu      sync.Mutex
	pending *ReplaceMessage
	wake    chan struct{}
	errs    chan ErrorMessage
	done    chan struct{}
}

func newConn(ws *websocket.Conn, path, query string, h *Handler) (*conn, error) {
	c := &conn{
		ws:     ws,
		h:      h,
		logger: h.logger.With(slog.String("listing", path)),
		wake:   make(chan struct{}, 1),
		errs:   make(chan ErrorMessage, 8),
		done:   make(chan struct{}),
	}
	rawURL := path
	if query != "" {
		rawURL += "?" + query
	}
	store, err := listing.NewURLStore(rawURL, c.navigate)
	if err != nil {
		return nil, err
	}
	c.store = store
	c.synchronizer = listing.NewSynchronizer(meteredStore{URLStore: store, metrics: h.metrics}, h.syncOptions()...)
	return c, nil
}

// navigate runs with the store locked and must not block.
func (c *conn) navigate(ev listing.NavigationEvent) {
	msg := replaceFrom(ev)
	c.mu.Lock()
	c.pending = &msg
	c.mu.Unlock()
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *conn) run() {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.writeLoop()
	}()

	c.readLoop()

	c.synchronizer.Close()
	close(c.done)
	wg.Wait()
	_ = c.ws.Close()
}

func (c *conn) readLoop() {
	c.ws.SetReadLimit(readLimit)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.logger.Warn("live read", slog.Any("error", err))
			}
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.reject("decode", "malformed event")
			continue
		}
		if err := c.dispatch(msg); err != nil {
			reason := "invalid"
			if errors.Is(err, errUnknownType) {
				reason = "unknown"
			}
			c.reject(reason, err.Error())
		}
	}
}

func (c *conn) dispatch(msg ClientMessage) error {
	switch msg.Type {
	case TypeSort:
		if err := msg.SortModel.Validate(); err != nil {
			return err
		}
		c.synchronizer.HandleSortModelChange(msg.SortModel)
	case TypeFilter:
		if err := msg.FilterModel.Validate(); err != nil {
			return err
		}
		c.synchronizer.HandleFilterModelChange(msg.FilterModel)
	case TypePagination:
		if msg.PaginationModel == nil {
			return errors.New("paginationModel is required")
		}
		if err := msg.PaginationModel.Validate(); err != nil {
			return err
		}
		c.synchronizer.HandlePaginationModelChange(*msg.PaginationModel)
	case TypeReset:
		c.synchronizer.ResetFilters()
	case TypeClear:
		if len(msg.Keys) == 0 {
			return errors.New("keys are required")
		}
		c.synchronizer.ClearFilters(msg.Keys...)
	case TypeFlush:
		c.synchronizer.Flush()
	case TypeLocation:
		return c.store.Sync(msg.Query)
	default:
		return fmt.Errorf("%w %q", errUnknownType, msg.Type)
	}
	return nil
}

func (c *conn) reject(reason, message string) {
	c.h.metrics.EventRejected(reason)
	c.logger.Debug("live event rejected", slog.String("reason", reason), slog.String("message", message))
	select {
	case c.errs <- ErrorMessage{Type: TypeError, Message: message}:
	default:
	}
}

func (c *conn) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.wake:
			c.mu.Lock()
			msg := c.pending
			c.pending = nil
			c.mu.Unlock()
			if msg == nil {
				continue
			}
			if err := c.write(msg); err != nil {
				c.fail(err)
				return
			}
		case msg := <-c.errs:
			if err := c.write(msg); err != nil {
				c.fail(err)
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.fail(err)
				return
			}
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		}
	}
}

func (c *conn) write(v any) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteJSON(v)
}

// fail closes the socket so the read loop returns.
func (c *conn) fail(err error) {
	c.logger.Warn("live write", slog.Any("error", err))
	_ = c.ws.Close()
}
