package live

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zsajjad/dr-admission-portal-sub001/internal/observability"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/rbac"
	"github.com/zsajjad/dr-admission-portal-sub001/internal/shared"
)

const testDebounce = 50 * time.Millisecond

func newServer(t *testing.T, role string) *httptest.Server {
	t.Helper()
	h := NewHandler(nil, observability.NewMetrics(), Config{Debounce: testDebounce, PageSize: 10}).
		Allow("/branches", shared.PermBranchesView).
		Allow("/users", shared.PermUsersView)
	withAdmin := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.ContextWithAdmin(r.Context(), shared.Admin{ID: 1, Role: role})
		h.ServeHTTP(w, r.WithContext(ctx))
	})
	srv := httptest.NewServer(withAdmin)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, path, query string) *websocket.Conn {
	t.Helper()
	ws, res, err := websocket.DefaultDialer.Dial(wsURL(srv, path, query), nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = ws.Close()
		_ = res.Body.Close()
	})
	return ws
}

func wsURL(srv *httptest.Server, path, query string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/live/listing?path=" + url.QueryEscape(path) + "&query=" + url.QueryEscape(query)
}

func readReplace(t *testing.T, ws *websocket.Conn) ReplaceMessage {
	t.Helper()
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg ReplaceMessage
	require.NoError(t, ws.ReadJSON(&msg))
	require.Equal(t, TypeReplace, msg.Type)
	return msg
}

func TestSortReplacesURL(t *testing.T) {
	ws := dial(t, newServer(t, rbac.RoleAdmin), "/branches", "page=2&pageSize=10&name=gul")

	require.NoError(t, ws.WriteJSON(map[string]any{
		"type":      TypeSort,
		"sortModel": []map[string]string{{"field": "name", "sort": "desc"}},
	}))
	msg := readReplace(t, ws)
	assert.Equal(t, "/branches?name=gul&page=2&pageSize=10&sortBy=name&sortOrder=desc", msg.URL)
	assert.Equal(t, "name=gul&page=2&pageSize=10&sortBy=name&sortOrder=desc", msg.Query)
	assert.False(t, msg.Scroll)
}

func TestFilterIsDebounced(t *testing.T) {
	ws := dial(t, newServer(t, rbac.RoleAdmin), "/branches", "page=3&pageSize=10")

	for _, v := range []string{"g", "gu", "gul"} {
		require.NoError(t, ws.WriteJSON(map[string]any{
			"type":        TypeFilter,
			"filterModel": map[string]any{"items": []map[string]any{{"field": "name", "value": v}}},
		}))
	}
	msg := readReplace(t, ws)
	assert.Equal(t, "name=gul&page=0&pageSize=10", msg.Query)
}

func TestPaginationAndFlush(t *testing.T) {
	ws := dial(t, newServer(t, rbac.RoleAdmin), "/branches", "")

	require.NoError(t, ws.WriteJSON(map[string]any{
		"type":            TypePagination,
		"paginationModel": map[string]int{"page": 4, "pageSize": 25},
	}))
	assert.Equal(t, "page=4&pageSize=25", readReplace(t, ws).Query)

	require.NoError(t, ws.WriteJSON(map[string]any{
		"type":        TypeFilter,
		"filterModel": map[string]any{"items": []map[string]any{{"field": "city", "value": "Lahore"}}},
	}))
	require.NoError(t, ws.WriteJSON(map[string]any{"type": TypeFlush}))
	assert.Equal(t, "city=Lahore&page=0&pageSize=25", readReplace(t, ws).Query)
}

func TestLocationThenReset(t *testing.T) {
	ws := dial(t, newServer(t, rbac.RoleAdmin), "/branches", "page=1&pageSize=10")

	require.NoError(t, ws.WriteJSON(map[string]any{"type": TypeLocation, "query": "code=X&includeInActive=true&page=5&pageSize=50"}))
	require.NoError(t, ws.WriteJSON(map[string]any{"type": TypeReset}))
	assert.Equal(t, "includeInActive=true&page=0&pageSize=10", readReplace(t, ws).Query)

	require.NoError(t, ws.WriteJSON(map[string]any{"type": TypeClear, "keys": []string{"includeInActive"}}))
	assert.Equal(t, "page=0&pageSize=10", readReplace(t, ws).Query)
}

func TestInvalidEventsKeepChannelOpen(t *testing.T) {
	ws := dial(t, newServer(t, rbac.RoleAdmin), "/branches", "")

	for _, raw := range []string{
		`not json`,
		`{"type":"teleport"}`,
		`{"type":"sort","sortModel":[{"field":"name","sort":"sideways"}]}`,
		`{"type":"pagination","paginationModel":{"page":-1,"pageSize":10}}`,
		`{"type":"pagination"}`,
		`{"type":"clear"}`,
	} {
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(raw)))
		require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
		var msg ErrorMessage
		require.NoError(t, ws.ReadJSON(&msg), raw)
		assert.Equal(t, TypeError, msg.Type, raw)
		assert.NotEmpty(t, msg.Message, raw)
	}

	require.NoError(t, ws.WriteJSON(map[string]any{"type": TypeSort, "sortModel": []any{}}))
	assert.Equal(t, "page=0&pageSize=10", readReplace(t, ws).Query)
}

func TestHandshakeRejections(t *testing.T) {
	srv := newServer(t, rbac.RoleViewer)

	_, res, err := websocket.DefaultDialer.Dial(wsURL(srv, "/payroll", ""), nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	_, res, err = websocket.DefaultDialer.Dial(wsURL(srv, "/users", ""), nil)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)

	header := http.Header{"Origin": {"https://evil.example"}}
	_, res, err = websocket.DefaultDialer.Dial(wsURL(srv, "/branches", ""), header)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, http.StatusForbidden, res.StatusCode)
}

func TestSameOriginCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "http://portal.test/live/listing", nil)
	assert.True(t, SameOriginCheck(req))

	req.Header.Set("Origin", "http://portal.test")
	assert.True(t, SameOriginCheck(req))

	req.Header.Set("Origin", "http://other.test")
	assert.False(t, SameOriginCheck(req))
}
