package filter

import (
	"net/url"
	"strconv"
	"sync"
	"time"
)

// DefaultDebounce is how long keyword input must be idle before the pending
// value is committed to the location.
const DefaultDebounce = 700 * time.Millisecond

// Synchronizer commits the user's filter edits to the location query.
// Free-text keyword edits are debounced; every other control commits
// synchronously. Committing any non-page filter removes the page key so a
// narrowed result set starts back at page 1.
type Synchronizer struct {
	loc      Location
	debounce time.Duration

	mu         sync.Mutex
	timer      *time.Timer
	keywordGen uint64
	closed     bool
}

// NewSynchronizer creates a synchronizer over the given location. A zero
// debounce selects DefaultDebounce.
func NewSynchronizer(loc Location, debounce time.Duration) *Synchronizer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Synchronizer{loc: loc, debounce: debounce}
}

// State re-derives the editable filter selection from the current location
// query. It holds no state of its own, so external navigation (back/forward)
// is picked up on the next read.
func (s *Synchronizer) State() State {
	return FromQuery(s.loc.Query())
}

// SetKeyword schedules a debounced keyword commit. A pending timer is reset
// on every call; only after the debounce window of inactivity does the
// location change. An empty keyword removes the key.
func (s *Synchronizer) SetKeyword(keyword string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.keywordGen++
	gen := s.keywordGen
	s.timer = time.AfterFunc(s.debounce, func() {
		s.commitKeyword(gen, keyword)
	})
}

func (s *Synchronizer) commitKeyword(gen uint64, keyword string) {
	s.mu.Lock()
	stale := s.closed || gen != s.keywordGen
	s.mu.Unlock()
	if stale {
		return
	}
	s.commit(func(q url.Values) {
		if keyword == "" {
			q.Del(KeyKeyword)
		} else {
			q.Set(KeyKeyword, keyword)
		}
	})
}

// SetWebsite commits the board filter immediately. The All sentinel removes
// the key.
func (s *Synchronizer) SetWebsite(website string) {
	s.commitFilter(KeyWebsite, website)
}

// SetStatus commits the workflow-status filter immediately.
func (s *Synchronizer) SetStatus(status string) {
	s.commitFilter(KeyStatus, status)
}

// SetTimeInDays commits the posting-age filter immediately.
func (s *Synchronizer) SetTimeInDays(timeInDays string) {
	s.commitFilter(KeyTimeInDays, timeInDays)
}

// ToggleSortOrder flips between ascending and descending, committing
// immediately.
func (s *Synchronizer) ToggleSortOrder() {
	current := s.State().SortOrder
	next := "asc"
	if current == "asc" {
		next = "desc"
	}
	s.commit(func(q url.Values) {
		q.Set(KeySortOrder, next)
	})
}

// SetPage commits the 1-based page number. Unlike the filter controls it
// does not clear any other key.
func (s *Synchronizer) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	q := s.loc.Query()
	if page == 1 {
		q.Del(KeyPage)
	} else {
		q.Set(KeyPage, strconv.Itoa(page))
	}
	s.loc.Navigate(s.loc.Path(), q)
}

// ClearFilters navigates to the bare path, removing every managed key.
func (s *Synchronizer) ClearFilters() {
	s.cancelPending()
	s.loc.Navigate(s.loc.Path(), url.Values{})
}

// Close cancels any pending keyword commit. Further edits are ignored.
func (s *Synchronizer) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Synchronizer) commitFilter(key, value string) {
	s.commit(func(q url.Values) {
		if value == "" || value == All {
			q.Del(key)
		} else {
			q.Set(key, value)
		}
	})
}

// commit applies a mutation to a copy of the current query and navigates.
// Any filter commit resets pagination.
func (s *Synchronizer) commit(mutate func(q url.Values)) {
	q := s.loc.Query()
	mutate(q)
	q.Del(KeyPage)
	s.loc.Navigate(s.loc.Path(), q)
}

func (s *Synchronizer) cancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywordGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}
