package models

// Website identifies the job board a posting was aggregated from.
type Website string

// Website constants list the boards the aggregation service covers.
const (
	WebsiteLinkedIn  Website = "LINKEDIN"
	WebsiteIndeed    Website = "INDEED"
	WebsiteIrishJobs Website = "IRISHJOBS"
	WebsiteJobs      Website = "JOBS"
)

// Websites returns all supported job boards, in display order.
func Websites() []Website {
	return []Website{WebsiteLinkedIn, WebsiteIndeed, WebsiteIrishJobs, WebsiteJobs}
}

// IsValid reports whether w is a known job board.
func (w Website) IsValid() bool {
	switch w {
	case WebsiteLinkedIn, WebsiteIndeed, WebsiteIrishJobs, WebsiteJobs:
		return true
	}
	return false
}

// JobPosting is a single aggregated job listing. The client reads these
// fields for display and leaves everything else to the server.
type JobPosting struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Company  string `json:"company"`
	Type     string `json:"type"`
	Location string `json:"location"`
	// Time is the posting timestamp as sent by the server (ISO 8601,
	// with or without a zone). Parsed only by the display helpers.
	Time    string `json:"time"`
	Status  string `json:"status"`
	URL     string `json:"url"`
	Website string `json:"website"`
}

// Page is one page of postings as returned by the listing endpoint.
// Content is server-ordered; the client never re-sorts it.
type Page struct {
	Content       []JobPosting `json:"content"`
	TotalElements int64        `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
	PageNumber    int          `json:"pageNumber"`
	PageSize      int          `json:"pageSize"`
	LastPage      bool         `json:"lastPage"`
}
