package listing

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDebounce = 20 * time.Millisecond

func newTestSynchronizer(t *testing.T, rawQuery string) (*Synchronizer, *fakeStore) {
	t.Helper()
	store := newFakeStore(rawQuery)
	sync := NewSynchronizer(store, WithDebounce(testDebounce))
	t.Cleanup(sync.Close)
	return sync, store
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, time.Second, 5*time.Millisecond)
}

func TestFiltersIsPureFunctionOfURL(t *testing.T) {
	sync, store := newTestSynchronizer(t, "page=abc&pageSize=-1&name=ali")

	first := sync.Filters()
	second := sync.Filters()
	assert.Equal(t, first, second)
	assert.Equal(t, 0, first.Page)
	assert.Equal(t, 10, first.PageSize)
	assert.Equal(t, "ali", first.Extra["name"])
	assert.Zero(t, store.writeCount(), "reading must not navigate")
}

func TestSetFilterMergesAndReplaces(t *testing.T) {
	sync, store := newTestSynchronizer(t, "page=2&pageSize=25&name=ali")

	sync.SetFilter(Patch{"code": String("B1"), KeyIncludeInActive: Bool(true)})

	state := sync.Filters()
	code, ok := state.Get("code")
	require.True(t, ok)
	assert.Equal(t, "B1", code)
	assert.Equal(t, "ali", state.Extra["name"])
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, 25, state.PageSize)
	require.NotNil(t, state.IncludeInActive)
	assert.True(t, *state.IncludeInActive)

	last := store.lastWrite()
	assert.Equal(t, "set", last.op)
	assert.Equal(t, Navigation{Replace: true, Scroll: false}, last.nav)
}

func TestSetFilterUnsetRemovesKey(t *testing.T) {
	sync, store := newTestSynchronizer(t, "page=1&pageSize=10&name=ali&code=B1")

	sync.SetFilter(Patch{"name": Unset()})

	_, ok := sync.Filters().Get("name")
	assert.False(t, ok)
	assert.Equal(t, "code=B1&page=1&pageSize=10", store.query())
}

func TestSetFilterSerializesPagingOnFirstWrite(t *testing.T) {
	sync, store := newTestSynchronizer(t, "")

	sync.SetFilter(Patch{"name": String("x")})
	assert.Equal(t, "name=x&page=0&pageSize=10", store.query())
}

func TestSetFilterEmptyStringPersists(t *testing.T) {
	sync, store := newTestSynchronizer(t, "code=B1")

	sync.SetFilter(Patch{"code": String("")})
	v, ok := sync.Filters().Get("code")
	assert.True(t, ok)
	assert.Equal(t, "", v)
	assert.Contains(t, store.query(), "code=&")
}

func TestResetFiltersKeepsIncludeInActive(t *testing.T) {
	sync, store := newTestSynchronizer(t, "page=4&pageSize=50&sortBy=name&sortOrder=asc&code=B1&includeInActive=true")

	sync.ResetFilters()

	state := sync.Filters()
	assert.Equal(t, []string{KeyIncludeInActive, KeyPage, KeyPageSize}, state.Keys())
	assert.Equal(t, 0, state.Page)
	assert.Equal(t, 10, state.PageSize)
	assert.True(t, state.IncludesInactive())
	assert.Equal(t, "new", store.lastWrite().op)
}

func TestResetFiltersWithoutIncludeInActive(t *testing.T) {
	sync, _ := newTestSynchronizer(t, "page=4&code=B1")

	sync.ResetFilters()
	assert.Equal(t, []string{KeyPage, KeyPageSize}, sync.Filters().Keys())
}

func TestResetFiltersUsesConfiguredPageSize(t *testing.T) {
	store := newFakeStore("page=3&pageSize=5")
	sync := NewSynchronizer(store, WithPageSize(25))
	defer sync.Close()

	sync.ResetFilters()
	assert.Equal(t, 25, sync.Filters().PageSize)
}

func TestHandleSortModelChange(t *testing.T) {
	sync, _ := newTestSynchronizer(t, "page=1")

	sync.HandleSortModelChange(SortModel{{Field: "name", Sort: "asc"}})
	state := sync.Filters()
	assert.Equal(t, "name", state.SortBy)
	assert.Equal(t, SortAsc, state.SortOrder)

	sync.HandleSortModelChange(SortModel{})
	state = sync.Filters()
	_, hasSortBy := state.Get(KeySortBy)
	_, hasSortOrder := state.Get(KeySortOrder)
	assert.False(t, hasSortBy)
	assert.False(t, hasSortOrder)
	assert.Equal(t, 1, state.Page)
}

func TestHandleSortModelChangeUsesFirstColumn(t *testing.T) {
	sync, _ := newTestSynchronizer(t, "")

	sync.HandleSortModelChange(SortModel{{Field: "code", Sort: "desc"}, {Field: "name", Sort: "asc"}})
	state := sync.Filters()
	assert.Equal(t, "code", state.SortBy)
	assert.Equal(t, SortDesc, state.SortOrder)
}

func TestHandleFilterModelChangeIsDebounced(t *testing.T) {
	sync, store := newTestSynchronizer(t, "page=3&pageSize=10")

	sync.HandleFilterModelChange(FilterModel{Items: []FilterItem{{Field: "code", Value: "B"}}})
	sync.HandleFilterModelChange(FilterModel{Items: []FilterItem{{Field: "code", Value: "B1"}}})
	assert.Zero(t, store.writeCount(), "filter edits must wait for the quiet period")
	assert.True(t, sync.Pending())

	eventually(t, func() bool { return store.writeCount() == 1 })
	state := sync.Filters()
	assert.Equal(t, "B1", state.Extra["code"])
	assert.Equal(t, 0, state.Page)
}

func TestHandleFilterModelChangeBlankKeepsPage(t *testing.T) {
	sync, store := newTestSynchronizer(t, "page=3&pageSize=10&code=B1")

	sync.HandleFilterModelChange(FilterModel{Items: []FilterItem{{Field: "code", Value: ""}}})
	eventually(t, func() bool { return store.writeCount() == 1 })

	state := sync.Filters()
	assert.Equal(t, 3, state.Page)
	v, ok := state.Get("code")
	assert.True(t, ok, "blank values pass through instead of being dropped")
	assert.Equal(t, "", v)
}

func TestHandleFilterModelChangeNilValueDropsKey(t *testing.T) {
	sync, store := newTestSynchronizer(t, "page=2&name=ali")

	sync.HandleFilterModelChange(FilterModel{Items: []FilterItem{{Field: "name", Value: nil}}})
	eventually(t, func() bool { return store.writeCount() == 1 })

	state := sync.Filters()
	_, ok := state.Get("name")
	assert.False(t, ok)
	assert.Equal(t, 2, state.Page)
}

func TestHandleFilterModelChangeEmptyResets(t *testing.T) {
	sync, store := newTestSynchronizer(t, "page=4&pageSize=50&code=B1&includeInActive=false")

	sync.HandleFilterModelChange(FilterModel{})
	assert.Zero(t, store.writeCount())

	eventually(t, func() bool { return store.writeCount() == 1 })
	state := sync.Filters()
	assert.Equal(t, []string{KeyIncludeInActive, KeyPage, KeyPageSize}, state.Keys())
	assert.Equal(t, 10, state.PageSize)
	assert.False(t, state.IncludesInactive())
}

func TestHandleFilterModelChangeNumericValue(t *testing.T) {
	sync, store := newTestSynchronizer(t, "")

	sync.HandleFilterModelChange(FilterModel{Items: []FilterItem{{Field: "branchId", Value: float64(12)}}})
	eventually(t, func() bool { return store.writeCount() == 1 })
	assert.Equal(t, "12", sync.Filters().Extra["branchId"])
}

func TestHandlePaginationModelChangeIsImmediate(t *testing.T) {
	sync, store := newTestSynchronizer(t, "name=ali")

	sync.HandlePaginationModelChange(PaginationModel{Page: 2, PageSize: 50})

	assert.Equal(t, 1, store.writeCount())
	state := sync.Filters()
	assert.Equal(t, 2, state.Page)
	assert.Equal(t, 50, state.PageSize)
	assert.Equal(t, "ali", state.Extra["name"])
}

func TestClearFilters(t *testing.T) {
	sync, store := newTestSynchronizer(t, "page=1&pageSize=10&code=B1&name=ali")

	sync.ClearFilters("code")
	assert.Equal(t, "name=ali&page=1&pageSize=10", store.query())
	assert.Equal(t, "delete", store.lastWrite().op)

	sync.ClearFilters()
	assert.Equal(t, 1, store.writeCount())
}

func TestFlushAppliesPendingFilter(t *testing.T) {
	store := newFakeStore("")
	sync := NewSynchronizer(store, WithDebounce(time.Hour))
	defer sync.Close()

	sync.HandleFilterModelChange(FilterModel{Items: []FilterItem{{Field: "code", Value: "B1"}}})
	sync.Flush()
	assert.Equal(t, "B1", sync.Filters().Extra["code"])
	assert.False(t, sync.Pending())
}

func TestCloseDropsPendingWrites(t *testing.T) {
	store := newFakeStore("page=1")
	sync := NewSynchronizer(store, WithDebounce(testDebounce))

	sync.HandleFilterModelChange(FilterModel{Items: []FilterItem{{Field: "code", Value: "B1"}}})
	sync.HandleFilterModelChange(FilterModel{})
	sync.Close()

	time.Sleep(3 * testDebounce)
	assert.Zero(t, store.writeCount())

	sync.SetFilter(Patch{"code": String("x")})
	sync.HandlePaginationModelChange(PaginationModel{Page: 1, PageSize: 10})
	assert.Zero(t, store.writeCount(), "calls after Close are no-ops")
}

func TestSynchronizerOverURLStore(t *testing.T) {
	var events []NavigationEvent
	store, err := NewURLStore("/branches?page=0&pageSize=10", func(e NavigationEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)
	sync := NewSynchronizer(store)
	defer sync.Close()

	sync.HandleSortModelChange(SortModel{{Field: "name", Sort: "asc"}})

	require.Len(t, events, 1)
	assert.Equal(t, "/branches?page=0&pageSize=10&sortBy=name&sortOrder=asc", events[0].URL())
	assert.True(t, events[0].Replace)
	assert.False(t, events[0].Scroll)
}

func TestConcurrentUpdatesDoNotLoseMerges(t *testing.T) {
	s, store := newTestSynchronizer(t, "page=0&pageSize=10")

	const writers = 40
	done := make(chan struct{}, writers)
	for i := 0; i < writers; i++ {
		go func(i int) {
			defer func() { done <- struct{}{} }()
			if i%2 == 0 {
				s.SetFilter(Patch{"f" + strconv.Itoa(i): String("x")})
				return
			}
			s.HandlePaginationModelChange(PaginationModel{Page: i, PageSize: 25})
		}(i)
	}
	for i := 0; i < writers; i++ {
		<-done
	}

	state := s.Filters()
	for i := 0; i < writers; i += 2 {
		assert.Equal(t, "x", state.Extra["f"+strconv.Itoa(i)], "filter f%d lost", i)
	}
	assert.Equal(t, 25, state.PageSize)
	assert.Equal(t, writers, store.writeCount())
}
