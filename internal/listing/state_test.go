package listing

import (
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFiltersDefaults(t *testing.T) {
	state := ParseFilters(url.Values{})
	assert.Equal(t, 0, state.Page)
	assert.Equal(t, 10, state.PageSize)
	assert.Empty(t, state.SortBy)
	assert.Nil(t, state.IncludeInActive)
	assert.Empty(t, state.Extra)
}

func TestParseFiltersPageSize(t *testing.T) {
	assert.Equal(t, 25, ParseFiltersPageSize(url.Values{}, 25).PageSize)
	assert.Equal(t, 50, ParseFiltersPageSize(url.Values{"pageSize": {"50"}}, 25).PageSize)
	assert.Equal(t, 10, ParseFiltersPageSize(url.Values{}, 0).PageSize)
}

func TestParseFiltersMalformedPaging(t *testing.T) {
	cases := map[string]struct {
		query    string
		page     int
		pageSize int
	}{
		"non numeric":   {query: "page=abc&pageSize=xyz", page: 0, pageSize: 10},
		"negative page": {query: "page=-3&pageSize=25", page: 0, pageSize: 25},
		"zero size":     {query: "page=4&pageSize=0", page: 4, pageSize: 10},
		"float":         {query: "page=1.5&pageSize=2e3", page: 0, pageSize: 10},
		"valid":         {query: "page=2&pageSize=50", page: 2, pageSize: 50},
		"huge size":     {query: "page=1&pageSize=100000000", page: 1, pageSize: MaxPageSize},
		"huge page":     {query: "page=9223372036854775807&pageSize=10", page: 0, pageSize: 10},
		"overflow":      {query: "page=99999999999999999999", page: 0, pageSize: 10},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			state := ParseQuery(tc.query)
			assert.Equal(t, tc.page, state.Page)
			assert.Equal(t, tc.pageSize, state.PageSize)
			assert.GreaterOrEqual(t, state.Page, 0)
			assert.Greater(t, state.PageSize, 0)
		})
	}
}

func TestParseFiltersReservedAndExtra(t *testing.T) {
	state := ParseQuery("sortBy=name&sortOrder=desc&includeInActive=true&branchId=7&name=")
	assert.Equal(t, "name", state.SortBy)
	assert.Equal(t, SortDesc, state.SortOrder)
	require.NotNil(t, state.IncludeInActive)
	assert.True(t, *state.IncludeInActive)
	assert.Equal(t, "7", state.Extra["branchId"])

	v, ok := state.Get("name")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = state.Get("missing")
	assert.False(t, ok)
}

func TestValuesRoundTripKeepsBlankFilters(t *testing.T) {
	state := ParseQuery("code=&page=1")
	assert.Equal(t, "code=&page=1&pageSize=10", state.Encode())
}

func TestWithBuildsLinks(t *testing.T) {
	state := ParseQuery("page=3&pageSize=20&name=ali")
	assert.Equal(t, "name=ali&page=4&pageSize=20", state.With(Patch{KeyPage: Int(4)}))
	assert.Equal(t, "page=3&pageSize=20", state.With(Patch{"name": Unset()}))
	assert.Equal(t, 60, state.Offset())
}

func TestParseFiltersDropsUnknownSortOrder(t *testing.T) {
	state := ParseQuery("sortBy=name&sortOrder=up")
	assert.Equal(t, "name", state.SortBy)
	assert.Empty(t, state.SortOrder)
	_, ok := state.Get(KeySortOrder)
	assert.False(t, ok)
	assert.NotContains(t, state.Encode(), "sortOrder")
}

func TestLimitAndOffsetStayBounded(t *testing.T) {
	assert.Equal(t, 20, FilterState{Page: 2, PageSize: 10}.Offset())
	assert.Equal(t, MaxPageSize, FilterState{PageSize: 5000}.Limit())
	assert.Equal(t, DefaultPageSize, FilterState{PageSize: -1}.Limit())
	assert.Equal(t, 0, FilterState{Page: -2, PageSize: 10}.Offset())
	assert.Equal(t, 0, FilterState{Page: math.MaxInt, PageSize: 10}.Offset())
	assert.Equal(t, MaxPageSize, ParseFiltersPageSize(url.Values{}, 500).PageSize)
}

func TestSortOrderValid(t *testing.T) {
	assert.True(t, SortAsc.Valid())
	assert.True(t, SortDesc.Valid())
	assert.False(t, SortOrder("up").Valid())
}

func TestFromAny(t *testing.T) {
	assert.False(t, FromAny(nil).IsSet())
	assert.Equal(t, "B1", FromAny("B1").String())
	assert.Equal(t, "2", FromAny(float64(2)).String())
	assert.Equal(t, "2.5", FromAny(2.5).String())
	assert.Equal(t, "true", FromAny(true).String())
	empty := FromAny("")
	assert.True(t, empty.IsSet())
	assert.False(t, empty.hasContent())
}
