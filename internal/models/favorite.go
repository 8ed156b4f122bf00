package models

// ApplicationStatus tracks where a saved posting sits in the user's
// application pipeline.
type ApplicationStatus string

// ApplicationStatus constants define the workflow states a favorite moves through.
const (
	StatusNew       ApplicationStatus = "new"
	StatusApplied   ApplicationStatus = "applied"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
)

// ApplicationStatuses returns all workflow states, in pipeline order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{StatusNew, StatusApplied, StatusInterview, StatusOffer, StatusRejected}
}

// IsValid reports whether s is a known workflow state.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusNew, StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// FavoriteEntry links the authenticated user to a posting and carries the
// application workflow status. ID is the favorite-record id, distinct from
// the job id. Job may be nil when the posting was dropped server-side.
type FavoriteEntry struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"userId"`
	UserName        string            `json:"userName,omitempty"`
	Status          ApplicationStatus `json:"status"`
	StatusChangedAt string            `json:"statusChangedAt,omitempty"`
	Job             *JobPosting       `json:"job"`
}
