// Package filter narrows down extracted conference candidates for
// display.
//
// Filtering is a presentation concern: the reconciler always sees the
// full batch, and a filter is only applied to the candidate list shown
// in CLI output. Criteria:
//   - Topics (case-insensitive exact match against a candidate's topics)
//   - Countries (case-insensitive substring match)
//   - Cities (case-insensitive substring match)
//
// Example usage:
//
//	f := filter.NewFilter()
//	f.Topics = []string{"golang"}
//	f.Countries = []string{"germany"}
//
//	shown := f.Apply(candidates)
package filter

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

// Filter represents candidate filtering criteria
type Filter struct {
	// Topic filtering (case-insensitive exact match)
	Topics []string `json:"topics,omitempty"`

	// Country filtering (case-insensitive substring match)
	Countries []string `json:"countries,omitempty"`

	// City filtering (case-insensitive substring match)
	Cities []string `json:"cities,omitempty"`
}

// NewFilter creates a new empty filter with no active criteria.
// The filter will match all candidates until criteria are added.
func NewFilter() *Filter {
	return &Filter{
		Topics:    []string{},
		Countries: []string{},
		Cities:    []string{},
	}
}

// IsEmpty checks if the filter has any active criteria.
// Returns true if the filter would match all candidates.
func (f *Filter) IsEmpty() bool {
	return len(f.Topics) == 0 &&
		len(f.Countries) == 0 &&
		len(f.Cities) == 0
}

// Matches checks if a candidate matches all active filter criteria.
// An empty filter matches all candidates.
func (f *Filter) Matches(cand conference.Candidate) bool {
	// Empty filter matches all candidates
	if f.IsEmpty() {
		return true
	}

	// Check topics (case-insensitive exact match against topic list)
	if len(f.Topics) > 0 {
		matched := false
		for _, want := range f.Topics {
			for _, topic := range cand.Topics {
				if strings.EqualFold(topic, want) {
					matched = true
					break
				}
			}
			if matched {
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Check country (case-insensitive substring match)
	if len(f.Countries) > 0 {
		matched := false
		countryLower := strings.ToLower(cand.Country)
		for _, country := range f.Countries {
			if strings.Contains(countryLower, strings.ToLower(country)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	// Check city (case-insensitive substring match)
	if len(f.Cities) > 0 {
		matched := false
		cityLower := strings.ToLower(cand.City)
		for _, city := range f.Cities {
			if strings.Contains(cityLower, strings.ToLower(city)) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}

	return true
}

// Apply applies the filter to a candidate list and returns only
// matching candidates. If the filter is empty, returns the original
// list unchanged.
func (f *Filter) Apply(candidates []conference.Candidate) []conference.Candidate {
	if f.IsEmpty() {
		return candidates
	}

	var filtered []conference.Candidate
	for _, cand := range candidates {
		if f.Matches(cand) {
			filtered = append(filtered, cand)
		}
	}

	return filtered
}

// String returns a human-readable description of the active filter
// criteria. Returns "No active filters" if the filter is empty.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if len(f.Topics) > 0 {
		parts = append(parts, fmt.Sprintf("Topics: %s", strings.Join(f.Topics, ", ")))
	}

	if len(f.Countries) > 0 {
		parts = append(parts, fmt.Sprintf("Countries: %s", strings.Join(f.Countries, ", ")))
	}

	if len(f.Cities) > 0 {
		parts = append(parts, fmt.Sprintf("Cities: %s", strings.Join(f.Cities, ", ")))
	}

	return strings.Join(parts, " | ")
}
