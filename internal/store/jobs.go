package store

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"github.com/TriByteGenius/CareerCompass/internal/api"
	"github.com/TriByteGenius/CareerCompass/internal/logger"
	"github.com/TriByteGenius/CareerCompass/internal/models"
)

// JobStore holds the last-fetched page of postings plus request status.
// The page is replaced wholesale on every successful fetch; a failed fetch
// keeps the previously displayed page.
type JobStore struct {
	client *api.Client
	log    *logger.Logger

	mu      sync.Mutex
	state   RequestState
	page    models.Page
	lastReq uint64

	// admin aggregation trigger, tracked separately from the listing fetch
	adminState   RequestState
	adminMessage string

	listeners []func()
}

// NewJobStore creates an empty job store backed by the given client.
func NewJobStore(client *api.Client, log *logger.Logger) *JobStore {
	if log == nil {
		log = logger.Nop()
	}
	return &JobStore{client: client, log: log}
}

// Subscribe registers a listener invoked after every state change.
func (s *JobStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Fetch loads one page of postings for the wire query. Each call is issued
// independently; a monotonic request id guarantees that only the most
// recently issued fetch may commit, so reordered responses cannot clobber
// newer results.
func (s *JobStore) Fetch(ctx context.Context, wire url.Values) {
	s.mu.Lock()
	s.lastReq++
	req := s.lastReq
	s.state.begin()
	s.mu.Unlock()
	s.notify()

	page, err := s.client.ListJobs(ctx, wire)

	s.mu.Lock()
	if req != s.lastReq {
		// superseded by a newer fetch
		s.mu.Unlock()
		return
	}
	if err != nil {
		msg := serverMessage(err, "Failed to fetch jobs")
		s.log.Warn().Err(err).Msg("job fetch failed")
		s.state.fail(msg)
	} else {
		s.page = page
		s.state.succeed()
	}
	s.mu.Unlock()
	s.notify()
}

// AdminSearch triggers the server-side aggregation job for keyword. Its
// status is tracked independently of the listing fetch.
func (s *JobStore) AdminSearch(ctx context.Context, keyword string) {
	s.mu.Lock()
	s.adminState.begin()
	s.adminMessage = ""
	s.mu.Unlock()
	s.notify()

	message, err := s.client.TriggerSearch(ctx, keyword)

	s.mu.Lock()
	if err != nil {
		s.log.Warn().Err(err).Msg("admin search failed")
		s.adminState.fail(serverMessage(err, "Admin search failed"))
	} else {
		s.adminMessage = message
		s.adminState.succeed()
	}
	s.mu.Unlock()
	s.notify()
}

// State returns the listing request status.
func (s *JobStore) State() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Page returns the last successfully fetched page.
func (s *JobStore) Page() models.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Jobs returns the postings of the current page.
func (s *JobStore) Jobs() []models.JobPosting {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page.Content
}

// AdminState returns the aggregation-trigger status.
func (s *JobStore) AdminState() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminState
}

// AdminMessage returns the server's answer to the last aggregation trigger.
func (s *JobStore) AdminMessage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adminMessage
}

// ClearError resets a failed listing state back to idle.
func (s *JobStore) ClearError() {
	s.mu.Lock()
	if s.state.Phase == PhaseFailed {
		s.state = RequestState{Phase: PhaseIdle}
	}
	s.mu.Unlock()
	s.notify()
}

func (s *JobStore) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// serverMessage prefers the server-provided message over the generic fallback.
func serverMessage(err error, fallback string) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
