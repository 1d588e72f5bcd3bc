package listing

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultDebounce is the quiet period applied to filter edits.
const DefaultDebounce = 500 * time.Millisecond

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithDebounce overrides the filter debounce window.
func WithDebounce(d time.Duration) Option {
	return func(s *Synchronizer) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// WithLogger sets the logger used for navigation traces.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Synchronizer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPageSize overrides the page size used when the URL carries none.
func WithPageSize(n int) Option {
	return func(s *Synchronizer) {
		if n > 0 {
			s.pageSize = n
		}
	}
}

// Synchronizer maps data grid events onto the URL query string of one listing
// view and derives the FilterState back from it.
type Synchronizer struct {
	store    ParamStore
	logger   *slog.Logger
	debounce time.Duration
	pageSize int

	// mu spans the read-merge-write of one update.
	mu sync.Mutex

	filterMerge *Debouncer[Patch]
	reset       *Debouncer[struct{}]
	closed      atomic.Bool
}

// NewSynchronizer binds a Synchronizer to store.
func NewSynchronizer(store ParamStore, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		store:    store,
		logger:   slog.Default(),
		debounce: DefaultDebounce,
		pageSize: DefaultPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.filterMerge = NewDebouncer(s.debounce, s.SetFilter)
	s.reset = NewDebouncer(s.debounce, func(struct{}) { s.ResetFilters() })
	return s
}

// Filters parses the current query string.
func (s *Synchronizer) Filters() FilterState {
	return parseFilters(s.store.AllParams(), s.pageSize)
}

// SetFilter merges p into the current state and replaces the URL. Unset keys
// are removed.
func (s *Synchronizer) SetFilter(p Patch) {
	if s.closed.Load() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	values := merge(s.Filters(), p)
	s.logger.Debug("listing set filter", slog.String("query", values.Encode()))
	s.store.SetParams(values, Navigation{Replace: true, Scroll: false})
}

// ResetFilters clears every filter. page and pageSize go back to their defaults
// and includeInActive survives, being a view preference rather than a filter.
func (s *Synchronizer) ResetFilters() {
	if s.closed.Load() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.Filters()
	next := FilterState{Page: DefaultPage, PageSize: s.pageSize, IncludeInActive: current.IncludeInActive}
	s.logger.Debug("listing reset filters", slog.String("query", next.Encode()))
	s.store.SetNewParams(next.Values())
}

// ClearFilters removes keys from the URL.
func (s *Synchronizer) ClearFilters(keys ...string) {
	if s.closed.Load() || len(keys) == 0 {
		return
	}
	s.store.DeleteParams(keys...)
}

// HandleSortModelChange applies the first sorted column, or clears sorting when
// the model is empty.
func (s *Synchronizer) HandleSortModelChange(model SortModel) {
	if len(model) == 0 {
		s.SetFilter(Patch{KeySortBy: Unset(), KeySortOrder: Unset()})
		return
	}
	item := model[0]
	order := Unset()
	if item.Sort != "" {
		order = String(item.Sort)
	}
	s.SetFilter(Patch{KeySortBy: String(item.Field), KeySortOrder: order})
}

// HandleFilterModelChange schedules a debounced merge of the grid filters. An
// empty model schedules a debounced reset instead. Empty-string values are kept
// so a field can be blanked explicitly. The page returns to 0 only when at least
// one filter carries content.
func (s *Synchronizer) HandleFilterModelChange(model FilterModel) {
	if s.closed.Load() {
		return
	}
	if len(model.Items) == 0 {
		s.reset.Call(struct{}{})
		return
	}
	partial := make(Patch, len(model.Items)+1)
	hasValue := false
	for _, item := range model.Items {
		v := FromAny(item.Value)
		partial[item.Field] = v
		if v.hasContent() {
			hasValue = true
		}
	}
	if hasValue {
		partial[KeyPage] = Int(0)
	}
	s.filterMerge.Call(partial)
}

// HandlePaginationModelChange applies page and pageSize immediately.
func (s *Synchronizer) HandlePaginationModelChange(model PaginationModel) {
	s.SetFilter(Patch{KeyPage: Int(model.Page), KeyPageSize: Int(model.PageSize)})
}

// Pending reports whether a debounced write is waiting.
func (s *Synchronizer) Pending() bool {
	return s.filterMerge.Pending() || s.reset.Pending()
}

// Flush applies pending debounced writes now, reset first.
func (s *Synchronizer) Flush() {
	s.reset.Flush()
	s.filterMerge.Flush()
}

// Close drops pending debounced writes and turns later calls into no-ops.
func (s *Synchronizer) Close() {
	s.closed.Store(true)
	s.filterMerge.Stop()
	s.reset.Stop()
}
