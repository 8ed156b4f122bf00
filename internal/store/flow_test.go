package store

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TriByteGenius/CareerCompass/internal/filter"
	"github.com/TriByteGenius/CareerCompass/internal/models"
)

// TestPaginationFlow wires location, synchronizer and job store together:
// a successful fetch reports five pages, and selecting page 2 updates the
// location and re-fetches with the 0-based wire page.
func TestPaginationFlow(t *testing.T) {
	var wirePages []string
	router := chi.NewRouter()
	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		wirePages = append(wirePages, r.URL.Query().Get("pageNumber"))
		_ = json.NewEncoder(w).Encode(models.Page{
			Content:       []models.JobPosting{{ID: "j1"}},
			TotalElements: 100,
			TotalPages:    5,
			PageSize:      20,
		})
	})

	jobs := NewJobStore(newTestAPI(t, router), nil)
	ctx := context.Background()

	loc := filter.NewMemoryLocation("/jobs")
	sync := filter.NewSynchronizer(loc, 0)
	defer sync.Close()

	// the fetch-triggering effect: every committed query becomes one fetch
	loc.OnChange(func() {
		jobs.Fetch(ctx, filter.FromQuery(loc.Query()).WireQuery())
	})

	// initial load
	jobs.Fetch(ctx, sync.State().WireQuery())
	require.Equal(t, PhaseSucceeded, jobs.State().Phase)
	require.Equal(t, 5, jobs.Page().TotalPages, "pagination control renders five pages")

	sync.SetPage(2)

	assert.Equal(t, "2", loc.Query().Get(filter.KeyPage))
	require.Len(t, wirePages, 2)
	assert.Equal(t, "1", wirePages[1], "UI page 2 fetches wire pageNumber 1")
}

// TestFilterFlow_CommitTriggersSingleFetch checks one committed filter change
// produces exactly one fetch with the filter on the wire
func TestFilterFlow_CommitTriggersSingleFetch(t *testing.T) {
	var wireQueries []string
	router := chi.NewRouter()
	router.Get("/api/jobs", func(w http.ResponseWriter, r *http.Request) {
		wireQueries = append(wireQueries, r.URL.Query().Get("website"))
		_ = json.NewEncoder(w).Encode(models.Page{TotalPages: 1, PageSize: 20})
	})

	jobs := NewJobStore(newTestAPI(t, router), nil)
	ctx := context.Background()

	loc := filter.NewMemoryLocation("/jobs")
	sync := filter.NewSynchronizer(loc, 0)
	defer sync.Close()

	loc.OnChange(func() {
		jobs.Fetch(ctx, filter.FromQuery(loc.Query()).WireQuery())
	})

	sync.SetWebsite("LINKEDIN")

	require.Len(t, wireQueries, 1)
	assert.Equal(t, "LINKEDIN", wireQueries[0])
}
