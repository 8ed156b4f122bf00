package display

// FormatDate renders a posting timestamp for display, e.g. "Mar 28, 2025, 12:00 PM".
// Unparseable input falls back to a neutral label.
func FormatDate(timeString string) string {
	t, err := ParseJobTime(timeString)
	if err != nil {
		return "Unknown date"
	}
	return t.Format("Jan 2, 2006, 3:04 PM")
}
