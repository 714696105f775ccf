package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
	"github.com/pfrederiksen/conf-tracker/internal/notifier"
)

var (
	reportFile    = flag.String("report-file", "", "Path to run report JSON file (or read from stdin)")
	dryRun        = flag.Bool("dry-run", false, "Print tweets without posting")
	maxTweets     = flag.Int("max-tweets", 10, "Maximum number of tweets to post")
	countryFilter = flag.String("country", "", "Only tweet conferences in this country")
)

func main() {
	flag.Parse()

	// Read the run report from file or stdin
	var reader io.Reader
	if *reportFile != "" {
		f, err := os.Open(*reportFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening report file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close() // nolint:errcheck
		reader = f
	} else {
		reader = os.Stdin
	}

	// Parse JSON
	var report struct {
		NewConferences []*conference.Record `json:"new_conferences"`
	}

	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&report); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing JSON: %v\n", err)
		os.Exit(1)
	}

	if len(report.NewConferences) == 0 {
		fmt.Println("No new conferences to tweet")
		os.Exit(0)
	}

	// Filter by country if specified
	records := report.NewConferences
	if *countryFilter != "" {
		filtered := make([]*conference.Record, 0)
		for _, rec := range records {
			if rec.Country == *countryFilter {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	// Limit number of tweets
	if len(records) > *maxTweets {
		records = records[:*maxTweets]
	}

	if len(records) == 0 {
		fmt.Println("No conferences match criteria")
		os.Exit(0)
	}

	// Initialize Twitter client
	var tw notifier.Notifier
	if *dryRun {
		tw = notifier.NewDryRunNotifier()
		fmt.Printf("DRY RUN MODE - Would tweet %d conferences:\n\n", len(records))
	} else {
		client, err := notifier.NewTwitterNotifier()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error initializing Twitter client: %v\n", err)
			os.Exit(1)
		}
		tw = client
	}

	// Post tweets
	if err := tw.Notify(records); err != nil {
		fmt.Fprintf(os.Stderr, "Error posting tweets: %v\n", err)
		os.Exit(1)
	}

	if !*dryRun {
		fmt.Printf("Successfully posted %d tweets\n", len(records))
	}
}
