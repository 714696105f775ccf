package extract

import (
	"regexp"
	"strings"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

// locationDateSeparator is the glyph the listing uses to join the
// location segment and the date segment, e.g.
// "Berlin, Germany・May 3 - May 5".
const locationDateSeparator = "・"

// dateRangePattern matches a month-name-plus-day token, optionally
// followed by a second one separated by a dash.
var dateRangePattern = regexp.MustCompile(`([a-zA-Z]+\s\d{1,2})(?:\s-\s([a-zA-Z]+\s\d{1,2}))?`)

// LocationDate holds the discrete fields split out of a combined
// location-and-date text blob. Fields that could not be extracted hold
// the unknown sentinel.
type LocationDate struct {
	City      string
	Country   string
	StartDate string
	EndDate   string
}

// ParseLocationDate splits a "city, country・date range" blob into
// discrete fields. Location and dates are extracted in independent
// passes over the same text, so a malformed date does not prevent
// location extraction and vice versa.
func ParseLocationDate(text string) LocationDate {
	ld := LocationDate{
		City:      conference.Unknown,
		Country:   conference.Unknown,
		StartDate: conference.Unknown,
		EndDate:   conference.Unknown,
	}

	if strings.Contains(text, locationDateSeparator) {
		location := strings.SplitN(text, locationDateSeparator, 2)[0]
		parts := strings.SplitN(location, ",", 2)
		if city := strings.TrimSpace(parts[0]); city != "" {
			ld.City = city
		}
		if len(parts) > 1 {
			if country := strings.TrimSpace(parts[1]); country != "" {
				ld.Country = country
			}
		}
	}

	if matches := dateRangePattern.FindStringSubmatch(text); matches != nil {
		ld.StartDate = matches[1]
		ld.EndDate = matches[1]
		if matches[2] != "" {
			ld.EndDate = matches[2]
		}
	}

	return ld
}
