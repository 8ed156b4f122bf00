package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/TriByteGenius/CareerCompass/internal/api"
	"github.com/TriByteGenius/CareerCompass/internal/logger"
	"github.com/TriByteGenius/CareerCompass/internal/models"
)

// ErrNotAuthenticated is returned when a favorites operation is attempted
// without a logged-in user. No network call is made in that case.
var ErrNotAuthenticated = errors.New("not authenticated")

// FavoriteStore holds the user's saved postings and their workflow status.
// The collection is replaced wholesale by fetches; toggle and status updates
// apply the server-confirmed record only, never an optimistic local guess.
type FavoriteStore struct {
	client  *api.Client
	session *SessionStore
	log     *logger.Logger

	mu        sync.Mutex
	state     RequestState
	entries   []models.FavoriteEntry
	listeners []func()
}

// NewFavoriteStore creates an empty favorites store.
func NewFavoriteStore(client *api.Client, session *SessionStore, log *logger.Logger) *FavoriteStore {
	if log == nil {
		log = logger.Nop()
	}
	return &FavoriteStore{client: client, session: session, log: log}
}

// Subscribe registers a listener invoked after every state change.
func (s *FavoriteStore) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// BindSession makes the store follow auth changes: fetch on login, clear on
// logout.
func (s *FavoriteStore) BindSession(ctx context.Context) {
	s.session.Subscribe(func() {
		if s.session.Authenticated() {
			s.FetchAll(ctx)
		} else {
			s.Clear()
		}
	})
}

// FetchAll replaces the collection with the server's current set.
func (s *FavoriteStore) FetchAll(ctx context.Context) error {
	return s.fetch(ctx, func() ([]models.FavoriteEntry, error) {
		return s.client.Favorites(ctx)
	}, "Failed to fetch favorite jobs")
}

// FetchByStatus replaces the collection with only the entries in the given
// workflow state, for tab-filtered views.
func (s *FavoriteStore) FetchByStatus(ctx context.Context, status models.ApplicationStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q", status)
	}
	return s.fetch(ctx, func() ([]models.FavoriteEntry, error) {
		return s.client.FavoritesByStatus(ctx, status)
	}, "Failed to fetch jobs by status")
}

func (s *FavoriteStore) fetch(ctx context.Context, call func() ([]models.FavoriteEntry, error), fallback string) error {
	if !s.session.Authenticated() {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()
	s.notify()

	entries, err := call()

	s.mu.Lock()
	if err != nil {
		s.log.Warn().Err(err).Msg("favorites fetch failed")
		s.state.fail(serverMessage(err, fallback))
	} else {
		if entries == nil {
			entries = []models.FavoriteEntry{}
		}
		s.entries = entries
		s.state.succeed()
	}
	s.mu.Unlock()
	s.notify()
	return err
}

// Toggle adds or removes the posting from favorites, waiting for server
// confirmation before touching the collection. A message response removes
// the entry matching job id; a record response is upserted by record id.
func (s *FavoriteStore) Toggle(ctx context.Context, jobID string) error {
	if !s.session.Authenticated() {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()
	s.notify()

	res, err := s.client.ToggleFavorite(ctx, jobID)

	s.mu.Lock()
	if err != nil {
		s.log.Warn().Err(err).Str("job_id", jobID).Msg("toggle favorite failed")
		s.state.fail(serverMessage(err, "Failed to toggle favorite"))
		s.mu.Unlock()
		s.notify()
		return err
	}

	if res.Removed {
		kept := s.entries[:0]
		for _, e := range s.entries {
			if e.Job == nil || e.Job.ID != jobID {
				kept = append(kept, e)
			}
		}
		s.entries = kept
	} else {
		s.upsertLocked(res.Entry)
	}
	s.state.succeed()
	s.mu.Unlock()
	s.notify()
	return nil
}

// UpdateStatus moves the favorite for jobID to a new workflow state and
// replaces the matching entry with the server's returned record.
func (s *FavoriteStore) UpdateStatus(ctx context.Context, jobID string, status models.ApplicationStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("invalid status %q", status)
	}
	if !s.session.Authenticated() {
		return ErrNotAuthenticated
	}

	s.mu.Lock()
	s.state.begin()
	s.mu.Unlock()
	s.notify()

	entry, err := s.client.UpdateFavoriteStatus(ctx, jobID, status)

	s.mu.Lock()
	if err != nil {
		s.log.Warn().Err(err).Str("job_id", jobID).Msg("update status failed")
		s.state.fail(serverMessage(err, "Failed to update job status"))
		s.mu.Unlock()
		s.notify()
		return err
	}
	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries[i] = entry
			break
		}
	}
	s.state.succeed()
	s.mu.Unlock()
	s.notify()
	return nil
}

// Clear empties the collection unconditionally, regardless of in-flight
// requests. Called on logout.
func (s *FavoriteStore) Clear() {
	s.mu.Lock()
	s.entries = nil
	s.state = RequestState{Phase: PhaseIdle}
	s.mu.Unlock()
	s.notify()
}

// Entries returns a copy of the current collection.
func (s *FavoriteStore) Entries() []models.FavoriteEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.FavoriteEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// State returns the favorites request status.
func (s *FavoriteStore) State() RequestState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsFavorited reports whether the posting is in the collection.
func (s *FavoriteStore) IsFavorited(jobID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return IsFavorited(s.entries, jobID)
}

// StatusOf returns the workflow status of the posting, defaulting to "new"
// when it is not favorited.
func (s *FavoriteStore) StatusOf(jobID string) models.ApplicationStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return StatusOf(s.entries, jobID)
}

// CountByStatus returns per-status counts plus an "all" bucket, used to
// badge the status-filter tabs.
func (s *FavoriteStore) CountByStatus() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return CountByStatus(s.entries)
}

func (s *FavoriteStore) upsertLocked(entry models.FavoriteEntry) {
	for i := range s.entries {
		if s.entries[i].ID == entry.ID {
			s.entries[i] = entry
			return
		}
	}
	s.entries = append(s.entries, entry)
}

func (s *FavoriteStore) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}
