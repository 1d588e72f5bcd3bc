package live

import "github.com/zsajjad/dr-admission-portal-sub001/internal/listing"

// Client message types.
const (
	TypeSort       = "sort"
	TypeFilter     = "filter"
	TypePagination = "pagination"
	TypeReset      = "reset"
	TypeClear      = "clear"
	TypeFlush      = "flush"
	TypeLocation   = "location"
)

// Server message types.
const (
	TypeReplace = "replace"
	TypeError   = "error"
)

// ClientMessage is one grid event sent by the browser.
type ClientMessage struct {
	Type            string                   `json:"type"`
	SortModel       listing.SortModel        `json:"sortModel,omitempty"`
	FilterModel     listing.FilterModel      `json:"filterModel"`
	PaginationModel *listing.PaginationModel `json:"paginationModel,omitempty"`
	Keys            []string                 `json:"keys,omitempty"`
	Query           string                   `json:"query,omitempty"`
}

// ReplaceMessage tells the browser to replace its URL.
type ReplaceMessage struct {
	Type   string `json:"type"`
	URL    string `json:"url"`
	Query  string `json:"query"`
	Scroll bool   `json:"scroll"`
}

// ErrorMessage reports a rejected event. The channel stays open.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func replaceFrom(ev listing.NavigationEvent) ReplaceMessage {
	return ReplaceMessage{Type: TypeReplace, URL: ev.URL(), Query: ev.Query, Scroll: ev.Scroll}
}
