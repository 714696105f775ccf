package conference

import "time"

// CoerceDate attempts to parse extracted date text into a typed date.
// Returns nil if the text is the Unknown sentinel, empty, or does not
// match any supported format. Corrupt date text degrades to unset, it
// never fails the candidate.
// Supported formats: "May 3", "May 03" (current year assumed),
// "May 3 2026", "May 03 2026".
func CoerceDate(text string) *time.Time {
	if text == "" || text == Unknown {
		return nil
	}

	// Try formats with an explicit year first
	for _, layout := range []string{"Jan 2 2006", "Jan 02 2006"} {
		if t, err := time.Parse(layout, text); err == nil {
			return &t
		}
	}

	// Listing pages usually show "May 3" with no year; assume the
	// current year like the site does.
	for _, layout := range []string{"Jan 2", "Jan 02"} {
		if t, err := time.Parse(layout, text); err == nil {
			now := time.Now().UTC()
			d := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}

	return nil
}
