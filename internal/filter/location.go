package filter

import (
	"net/url"
	"sync"
)

// Location is the navigable location whose query string is the single
// source of truth for filter state. Navigate replaces the current query
// wholesale; OnChange fires after every navigation, including history moves.
type Location interface {
	Path() string
	Query() url.Values
	Navigate(path string, query url.Values)
	OnChange(fn func())
}

type locationEntry struct {
	path  string
	query url.Values
}

// MemoryLocation is an in-process Location with browser-style history.
// It backs the CLI and tests, where no real browser location exists.
type MemoryLocation struct {
	mu        sync.Mutex
	history   []locationEntry
	pos       int
	listeners []func()
}

// NewMemoryLocation creates a location at the given path with an empty query.
func NewMemoryLocation(path string) *MemoryLocation {
	return &MemoryLocation{
		history: []locationEntry{{path: path, query: url.Values{}}},
	}
}

// Path returns the current path.
func (l *MemoryLocation) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.history[l.pos].path
}

// Query returns a copy of the current query.
func (l *MemoryLocation) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneValues(l.history[l.pos].query)
}

// Navigate pushes a new entry, truncating any forward history.
func (l *MemoryLocation) Navigate(path string, query url.Values) {
	l.mu.Lock()
	l.history = append(l.history[:l.pos+1], locationEntry{path: path, query: cloneValues(query)})
	l.pos = len(l.history) - 1
	l.mu.Unlock()
	l.notify()
}

// Back moves one entry backwards, if possible. Mirrors the browser back
// button, which changes the query without going through the synchronizer.
func (l *MemoryLocation) Back() {
	l.mu.Lock()
	if l.pos == 0 {
		l.mu.Unlock()
		return
	}
	l.pos--
	l.mu.Unlock()
	l.notify()
}

// Forward moves one entry forwards, if possible.
func (l *MemoryLocation) Forward() {
	l.mu.Lock()
	if l.pos == len(l.history)-1 {
		l.mu.Unlock()
		return
	}
	l.pos++
	l.mu.Unlock()
	l.notify()
}

// OnChange registers a listener invoked after every location change.
func (l *MemoryLocation) OnChange(fn func()) {
	l.mu.Lock()
	l.listeners = append(l.listeners, fn)
	l.mu.Unlock()
}

func (l *MemoryLocation) notify() {
	l.mu.Lock()
	listeners := make([]func(), len(l.listeners))
	copy(listeners, l.listeners)
	l.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

func cloneValues(q url.Values) url.Values {
	out := url.Values{}
	for k, vs := range q {
		for _, v := range vs {
			out.Add(k, v)
		}
	}
	return out
}
