package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TriByteGenius/CareerCompass/internal/api"
	"github.com/TriByteGenius/CareerCompass/internal/models"
)

func newTestAPI(t *testing.T, router http.Handler) *api.Client {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return api.NewClient(api.Config{
		BaseURL:   srv.URL + "/api",
		RateRPS:   1000,
		RateBurst: 1000,
	})
}

func pageWith(ids ...string) models.Page {
	postings := make([]models.JobPosting, 0, len(ids))
	for _, id := range ids {
		postings = append(postings, models.JobPosting{ID: id})
	}
	return models.Page{
		Content:       postings,
		TotalElements: int64(len(ids)),
		TotalPages:    1,
		PageSize:      20,
	}
}

// TestJobStore_FetchSuccess replaces the page wholesale and lands in succeeded
func TestJobStore_FetchSuccess(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pageWith("a", "b"))
	})

	s := NewJobStore(newTestAPI(t, router), nil)

	require.Equal(t, PhaseIdle, s.State().Phase)
	s.Fetch(context.Background(), url.Values{})

	assert.Equal(t, PhaseSucceeded, s.State().Phase)
	assert.Empty(t, s.State().ErrorMessage)
	require.Len(t, s.Jobs(), 2)
	assert.Equal(t, "a", s.Jobs()[0].ID)
}

// TestJobStore_FetchFailureKeepsPriorPage verifies a failed refresh keeps the
// previously displayed items and stores the server message
func TestJobStore_FetchFailureKeepsPriorPage(t *testing.T) {
	var fail bool
	router := chi.NewRouter()
	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(api.MessageResponse{Message: "search index unavailable"})
			return
		}
		_ = json.NewEncoder(w).Encode(pageWith("a"))
	})

	s := NewJobStore(newTestAPI(t, router), nil)
	ctx := context.Background()

	s.Fetch(ctx, url.Values{})
	require.Equal(t, PhaseSucceeded, s.State().Phase)

	fail = true
	s.Fetch(ctx, url.Values{})

	assert.Equal(t, PhaseFailed, s.State().Phase)
	assert.Equal(t, "search index unavailable", s.State().ErrorMessage)
	require.Len(t, s.Jobs(), 1, "prior page survives the failure")
}

// TestJobStore_GenericFallbackMessage checks an undecodable error body gets
// the generic message
func TestJobStore_GenericFallbackMessage(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	s := NewJobStore(newTestAPI(t, router), nil)
	s.Fetch(context.Background(), url.Values{})

	assert.Equal(t, PhaseFailed, s.State().Phase)
	assert.Equal(t, "Failed to fetch jobs", s.State().ErrorMessage)
}

// TestJobStore_StaleResponseDiscarded verifies only the most recently issued
// fetch may commit when responses come back out of order
func TestJobStore_StaleResponseDiscarded(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	router := chi.NewRouter()
	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageNumber") == "0" {
			close(started)
			<-release // hold the first request until the second finished
			_ = json.NewEncoder(w).Encode(pageWith("old"))
			return
		}
		_ = json.NewEncoder(w).Encode(pageWith("new"))
	})

	s := NewJobStore(newTestAPI(t, router), nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		first := url.Values{}
		first.Set("pageNumber", "0")
		s.Fetch(ctx, first)
	}()
	<-started // first fetch is in flight before the second is issued

	second := url.Values{}
	second.Set("pageNumber", "1")
	s.Fetch(ctx, second)
	require.Equal(t, "new", s.Jobs()[0].ID)

	close(release)
	wg.Wait()

	assert.Equal(t, "new", s.Jobs()[0].ID, "stale response must not commit")
	assert.Equal(t, PhaseSucceeded, s.State().Phase)
}

// TestJobStore_AdminSearchIndependent checks the aggregation trigger has its
// own status and never touches the listing
func TestJobStore_AdminSearchIndependent(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pageWith("a"))
	})
	router.Get("/api/jobs/update", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(api.MessageResponse{Message: "Search request sent to aggregator"})
	})

	s := NewJobStore(newTestAPI(t, router), nil)
	ctx := context.Background()

	s.Fetch(ctx, url.Values{})
	require.Equal(t, PhaseSucceeded, s.State().Phase)

	s.AdminSearch(ctx, "golang")

	assert.Equal(t, PhaseSucceeded, s.AdminState().Phase)
	assert.Equal(t, "Search request sent to aggregator", s.AdminMessage())
	assert.Equal(t, PhaseSucceeded, s.State().Phase, "listing state untouched")
	assert.Len(t, s.Jobs(), 1)
}

// TestJobStore_AdminSearchFailure stores the failure on the admin flags only
func TestJobStore_AdminSearchFailure(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/jobs/update", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(api.MessageResponse{Message: "admin role required"})
	})

	s := NewJobStore(newTestAPI(t, router), nil)
	s.AdminSearch(context.Background(), "golang")

	assert.Equal(t, PhaseFailed, s.AdminState().Phase)
	assert.Equal(t, "admin role required", s.AdminState().ErrorMessage)
	assert.Equal(t, PhaseIdle, s.State().Phase)
}

// TestJobStore_SubscribeNotified checks listeners fire on transitions
func TestJobStore_SubscribeNotified(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(pageWith("a"))
	})

	s := NewJobStore(newTestAPI(t, router), nil)

	var phases []Phase
	s.Subscribe(func() { phases = append(phases, s.State().Phase) })

	s.Fetch(context.Background(), url.Values{})

	require.Len(t, phases, 2)
	assert.Equal(t, PhasePending, phases[0])
	assert.Equal(t, PhaseSucceeded, phases[1])
}

// TestJobStore_ClearError resets only a failed state
func TestJobStore_ClearError(t *testing.T) {
	router := chi.NewRouter()
	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	s := NewJobStore(newTestAPI(t, router), nil)
	s.Fetch(context.Background(), url.Values{})
	require.Equal(t, PhaseFailed, s.State().Phase)

	s.ClearError()
	assert.Equal(t, PhaseIdle, s.State().Phase)
	assert.Empty(t, s.State().ErrorMessage)
}
