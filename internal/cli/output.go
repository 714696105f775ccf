package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
	"github.com/pfrederiksen/conf-tracker/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt      time.Time              `json:"checked_at"`
	PageURL        string                 `json:"page_url"`
	DryRun         bool                   `json:"dry_run,omitempty"`
	Created        int                    `json:"created"`
	Updated        int                    `json:"updated"`
	Errors         []pipeline.ItemError   `json:"errors"`
	NewConferences []*conference.Record   `json:"new_conferences,omitempty"`
	Candidates     []conference.Candidate `json:"candidates"`
	Filter         string                 `json:"filter,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.DryRun {
		fmt.Fprintln(w, "Dry run: no database writes performed.")
	}

	fmt.Fprintf(w, "Reconciled %d candidates: %d created, %d updated, %d errors\n",
		len(result.Candidates), result.Created, result.Updated, len(result.Errors))

	if result.Filter != "" {
		fmt.Fprintf(w, "Display filter: %s\n", result.Filter)
	}

	for _, rec := range result.NewConferences {
		fmt.Fprintf(w, "NEW: %s (%s)\n", rec.Name, rec.NormalizedURL)
	}

	if verbose {
		for _, cand := range result.Candidates {
			fmt.Fprintf(w, "  %s\n", cand.Name)
			fmt.Fprintf(w, "       URL: %s\n", cand.URL)
			if cand.City != conference.Unknown {
				fmt.Fprintf(w, "       Location: %s, %s\n", cand.City, cand.Country)
			}
			if cand.StartDate != conference.Unknown {
				fmt.Fprintf(w, "       Dates: %s - %s\n", cand.StartDate, cand.EndDate)
			}
			if len(cand.Topics) > 0 {
				fmt.Fprintf(w, "       Topics: %v\n", cand.Topics)
			}
		}
	}

	for _, itemErr := range result.Errors {
		fmt.Fprintf(w, "ERROR (%s): %s\n", itemErr.Item, itemErr.Message)
	}

	return nil
}
