package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDate SortOrder = "date"
	SortByName SortOrder = "name"
	SortByCity SortOrder = "city"
)

// sortCandidates sorts candidates based on the specified sort order
func sortCandidates(candidates []conference.Candidate, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.SliceStable(candidates, func(i, j int) bool {
			return compareByDate(candidates[i], candidates[j])
		})
	case SortByName:
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].Name != candidates[j].Name {
				return strings.ToLower(candidates[i].Name) < strings.ToLower(candidates[j].Name)
			}
			return compareByDate(candidates[i], candidates[j])
		})
	case SortByCity:
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].City != candidates[j].City {
				return strings.ToLower(candidates[i].City) < strings.ToLower(candidates[j].City)
			}
			return compareByDate(candidates[i], candidates[j])
		})
	}
}

// compareByDate compares two candidates by their coerced start date.
// Returns true if candidate i should come before candidate j.
func compareByDate(i, j conference.Candidate) bool {
	dateI := conference.CoerceDate(i.StartDate)
	dateJ := conference.CoerceDate(j.StartDate)

	// If both dates are valid, compare them
	if dateI != nil && dateJ != nil {
		return dateI.Before(*dateJ)
	}

	// If only one date is valid, put the valid one first
	if dateI != nil {
		return true
	}
	if dateJ != nil {
		return false
	}

	// If neither has a valid date, sort by name
	return strings.ToLower(i.Name) < strings.ToLower(j.Name)
}
