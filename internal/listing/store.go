package listing

import (
	"fmt"
	"net/url"
	"sync"
)

// Navigation describes how a URL write is applied by the browser.
type Navigation struct {
	// Replace rewrites the current history entry instead of pushing one.
	Replace bool
	// Scroll resets the scroll position after navigating.
	Scroll bool
}

// ParamStore is the query-parameter accessor and mutator owned by the browser.
// Each mutation is atomic with respect to a single navigation.
type ParamStore interface {
	AllParams() url.Values
	SetParams(params url.Values, nav Navigation)
	DeleteParams(keys ...string)
	SetNewParams(params url.Values)
}

// NavigationEvent is emitted by URLStore for every write.
type NavigationEvent struct {
	Path  string
	Query string
	Navigation
}

// URL returns the path and query of the event.
func (e NavigationEvent) URL() string {
	if e.Query == "" {
		return e.Path
	}
	return e.Path + "?" + e.Query
}

// URLStore mirrors the URL of one browser view. Writes update the mirror and are
// reported to the listener, which performs the actual browser navigation.
type URLStore struct {
	mu       sync.Mutex
	path     string
	query    url.Values
	listener func(NavigationEvent)
}

// NewURLStore returns a store seeded from rawURL. listener may be nil.
// listener is called with the store locked and must not call back into it.
func NewURLStore(rawURL string, listener func(NavigationEvent)) (*URLStore, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("listing: parse url: %w", err)
	}
	return &URLStore{
		path:     u.Path,
		query:    u.Query(),
		listener: listener,
	}, nil
}

// Sync replaces the mirrored query after the browser navigated on its own.
// No navigation event is emitted.
func (s *URLStore) Sync(rawQuery string) error {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return fmt.Errorf("listing: parse query: %w", err)
	}
	s.mu.Lock()
	s.query = values
	s.mu.Unlock()
	return nil
}

// URL returns the mirrored path and query.
func (s *URLStore) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NavigationEvent{Path: s.path, Query: s.query.Encode()}.URL()
}

// Path returns the mirrored path.
func (s *URLStore) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.path
}

// AllParams returns a copy of the current query parameters.
func (s *URLStore) AllParams() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneValues(s.query)
}

// SetParams replaces the whole query with params.
func (s *URLStore) SetParams(params url.Values, nav Navigation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = cloneValues(params)
	s.emit(nav)
}

// DeleteParams removes keys from the query.
func (s *URLStore) DeleteParams(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		s.query.Del(k)
	}
	s.emit(Navigation{Replace: true})
}

// SetNewParams discards the current query in favour of params.
func (s *URLStore) SetNewParams(params url.Values) {
	s.SetParams(params, Navigation{Replace: true})
}

func (s *URLStore) emit(nav Navigation) {
	if s.listener == nil {
		return
	}
	s.listener(NavigationEvent{Path: s.path, Query: s.query.Encode(), Navigation: nav})
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}

var _ ParamStore = (*URLStore)(nil)
