// Package filter keeps the browser-style location query and the user's
// filter selections in sync, and translates the committed query into the
// wire query consumed by the listing endpoint.
package filter

import (
	"net/url"
	"strconv"
)

// Location query keys. The mixed casing is load-bearing: these keys appear
// in saved bookmarks and must not be normalized.
const (
	KeyPage       = "page"
	KeySortOrder  = "sortby"
	KeyWebsite    = "website"
	KeyKeyword    = "keyword"
	KeyStatus     = "status"
	KeyTimeInDays = "timeInDays"
)

// All is the sentinel select-box value meaning "no filter". It is never
// written to the location query.
const All = "all"

// Defaults applied when a key is absent from the location query.
const (
	DefaultSortOrder = "desc"
	DefaultPageSize  = 20
	wireSortBy       = "time"
)

// State is the editable filter selection. It is always a pure projection of
// the location query: re-deriving it from the same query yields the same
// value, and it is never persisted beyond the current location.
type State struct {
	Keyword    string
	Website    string // board name or All
	Status     string // workflow status or All
	TimeInDays string // "1", "7", "30" or All
	SortOrder  string // "asc" or "desc"
	Page       int    // 1-based
}

// FromQuery projects the location query onto a State, applying defaults for
// absent keys.
func FromQuery(q url.Values) State {
	s := State{
		Keyword:    q.Get(KeyKeyword),
		Website:    valueOr(q, KeyWebsite, All),
		Status:     valueOr(q, KeyStatus, All),
		TimeInDays: valueOr(q, KeyTimeInDays, All),
		SortOrder:  valueOr(q, KeySortOrder, DefaultSortOrder),
		Page:       1,
	}
	if p, err := strconv.Atoi(q.Get(KeyPage)); err == nil && p >= 1 {
		s.Page = p
	}
	return s
}

// ToQuery writes the canonical location query for s. Keys whose value is the
// All sentinel, empty, or the default are omitted rather than written.
func (s State) ToQuery() url.Values {
	q := url.Values{}
	if s.Keyword != "" {
		q.Set(KeyKeyword, s.Keyword)
	}
	if s.Website != "" && s.Website != All {
		q.Set(KeyWebsite, s.Website)
	}
	if s.Status != "" && s.Status != All {
		q.Set(KeyStatus, s.Status)
	}
	if s.TimeInDays != "" && s.TimeInDays != All {
		q.Set(KeyTimeInDays, s.TimeInDays)
	}
	if s.SortOrder != "" && s.SortOrder != DefaultSortOrder {
		q.Set(KeySortOrder, s.SortOrder)
	}
	if s.Page > 1 {
		q.Set(KeyPage, strconv.Itoa(s.Page))
	}
	return q
}

// WireQuery translates the committed filter state into the parameter set
// sent to the listing endpoint: the 1-based UI page becomes 0-based, page
// size and sort field are fixed, and filters are included only when active.
func (s State) WireQuery() url.Values {
	q := url.Values{}
	page := s.Page
	if page < 1 {
		page = 1
	}
	q.Set("pageNumber", strconv.Itoa(page-1))
	q.Set("pageSize", strconv.Itoa(DefaultPageSize))
	q.Set("sortBy", wireSortBy)
	sortOrder := s.SortOrder
	if sortOrder == "" {
		sortOrder = DefaultSortOrder
	}
	q.Set("sortOrder", sortOrder)

	if s.Website != "" && s.Website != All {
		q.Set("website", s.Website)
	}
	if s.Keyword != "" {
		q.Set("keyword", s.Keyword)
	}
	if s.Status != "" && s.Status != All {
		q.Set("status", s.Status)
	}
	if s.TimeInDays != "" && s.TimeInDays != All {
		q.Set("timeInDays", s.TimeInDays)
	}
	return q
}

func valueOr(q url.Values, key, fallback string) string {
	if v := q.Get(key); v != "" {
		return v
	}
	return fallback
}
