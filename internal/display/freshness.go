// Package display derives presentation labels from posting data.
package display

import (
	"fmt"
	"time"
)

// Badge colors for freshness labels.
const (
	colorFresh   = "#4caf50" // under a day
	colorRecent  = "#2196f3" // under three days
	colorAging   = "#ff9800" // under a week
	colorStale   = "#757575" // a week or older
	colorUnknown = "#e0e0e0"
)

// Freshness describes the badge shown next to a posting's age.
type Freshness struct {
	Text      string
	Color     string
	TextColor string
}

// JobFreshness labels how old a posting is relative to now.
// Unparseable or empty timestamps yield a neutral "Unknown date" badge.
func JobFreshness(timeString string, now time.Time) Freshness {
	posted, err := ParseJobTime(timeString)
	if err != nil {
		return Freshness{Text: "Unknown date", Color: colorUnknown, TextColor: "black"}
	}

	diff := now.Sub(posted)
	if diff < 0 {
		diff = -diff
	}
	hours := int(diff / time.Hour)
	days := hours / 24

	switch {
	case hours < 24:
		return Freshness{Text: "Just Posted", Color: colorFresh, TextColor: "white"}
	case days < 3:
		return Freshness{Text: fmt.Sprintf("%dd ago", days), Color: colorRecent, TextColor: "white"}
	case days < 7:
		return Freshness{Text: fmt.Sprintf("%dd ago", days), Color: colorAging, TextColor: "white"}
	default:
		return Freshness{Text: fmt.Sprintf("%dd ago", days), Color: colorStale, TextColor: "white"}
	}
}

// jobTimeLayouts cover the timestamp shapes the aggregation service emits:
// RFC 3339, zone-less LocalDateTime, and bare dates.
var jobTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseJobTime parses a posting timestamp in any of the supported layouts.
func ParseJobTime(timeString string) (time.Time, error) {
	if timeString == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	var lastErr error
	for _, layout := range jobTimeLayouts {
		t, err := time.Parse(layout, timeString)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse job time %q: %w", timeString, lastErr)
}
