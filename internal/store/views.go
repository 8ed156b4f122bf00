package store

import "github.com/TriByteGenius/CareerCompass/internal/models"

// Derived read-only views over a favorites collection. These are pure
// lookups computed on demand, never stored.

// IsFavorited reports whether jobID appears in entries. Nil or empty inputs
// and entries with a missing job are tolerated.
func IsFavorited(entries []models.FavoriteEntry, jobID string) bool {
	if len(entries) == 0 || jobID == "" {
		return false
	}
	for _, e := range entries {
		if e.Job != nil && e.Job.ID == jobID {
			return true
		}
	}
	return false
}

// StatusOf returns the workflow status of jobID, defaulting to "new" when
// the posting is absent or its entry carries no status.
func StatusOf(entries []models.FavoriteEntry, jobID string) models.ApplicationStatus {
	for _, e := range entries {
		if e.Job != nil && e.Job.ID == jobID {
			if e.Status == "" {
				return models.StatusNew
			}
			return e.Status
		}
	}
	return models.StatusNew
}

// CountByStatus buckets entries by workflow status. The "all" bucket always
// equals the total count; entries without a status count as "new".
func CountByStatus(entries []models.FavoriteEntry) map[string]int {
	counts := map[string]int{"all": len(entries)}
	for _, e := range entries {
		status := e.Status
		if status == "" {
			status = models.StatusNew
		}
		counts[string(status)]++
	}
	return counts
}
