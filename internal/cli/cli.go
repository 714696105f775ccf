package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/conf-tracker/internal/fetch"
	"github.com/pfrederiksen/conf-tracker/internal/filter"
	"github.com/pfrederiksen/conf-tracker/internal/pipeline"
	"github.com/pfrederiksen/conf-tracker/internal/store"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess    = 0
	ExitError      = 1
	ExitNewRecords = 2

	// DefaultListingURL is the conference listing this tool tracks
	DefaultListingURL = "https://confs.tech/"
)

var (
	flagPageURL     string
	flagClass       string
	flagDatabaseURL string
	flagFormat      string
	flagSort        string
	flagTopics      []string
	flagCountries   []string
	flagCities      []string
	flagDryRun      bool
	flagVerbose     bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conf-tracker",
		Short: "Scrape a conference listing and reconcile it into the record store",
		Long: `A CLI tool that scrapes a conference listing page, extracts structured
conference records from its entries, and reconciles them into the record
store. Re-running against the same page never creates duplicates: records
are matched by normalized URL (or CFP URL) and refreshed in place.`,
		RunE: runScrape,
	}

	// Define flags
	cmd.Flags().StringVar(&flagPageURL, "url", DefaultListingURL, "Listing page URL to scrape")
	cmd.Flags().StringVar(&flagClass, "class", "", "CSS class of one listing entry (required)")
	cmd.Flags().StringVar(&flagDatabaseURL, "database-url", "", "Postgres DSN (defaults to $DATABASE_URL)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "date", "Sort candidates by: date, name, or city")
	cmd.Flags().StringSliceVar(&flagTopics, "topic", nil, "Only display candidates with this topic (repeatable)")
	cmd.Flags().StringSliceVar(&flagCountries, "country", nil, "Only display candidates in this country (repeatable)")
	cmd.Flags().StringSliceVar(&flagCities, "city", nil, "Only display candidates in this city (repeatable)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Reconcile against an in-memory store, no database writes")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.MarkFlagRequired("class")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	// Validate format
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	// Validate sort order
	sortOrder := SortOrder(strings.ToLower(flagSort))
	if sortOrder != SortByDate && sortOrder != SortByName && sortOrder != SortByCity {
		return fmt.Errorf("invalid sort order: %s (must be 'date', 'name', or 'city')", flagSort)
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Scraping: %s (entries: .%s)\n", flagPageURL, flagClass)
	}

	// Resolve the store handle
	var (
		st      pipeline.Store
		closeDB func()
	)
	if flagDryRun {
		st = pipeline.NewMemStore()
	} else {
		dsn := flagDatabaseURL
		if dsn == "" {
			dsn = os.Getenv("DATABASE_URL")
		}
		if dsn == "" {
			return fmt.Errorf("no database configured: pass --database-url or set DATABASE_URL (or use --dry-run)")
		}

		db, err := store.Connect(dsn)
		if err != nil {
			return fmt.Errorf("connecting to store: %w", err)
		}
		closeDB = func() { db.Close() } // nolint:errcheck

		sqlStore := store.New(db)
		if err := sqlStore.Migrate(ctx); err != nil {
			closeDB()
			return fmt.Errorf("migrating store: %w", err)
		}
		st = sqlStore
	}

	// Fetch the fragment batch
	fragments, err := fetch.New().Fragments(ctx, flagPageURL, flagClass)
	if err != nil {
		if closeDB != nil {
			closeDB()
		}
		return fmt.Errorf("fetching listing: %w", err)
	}

	if flagVerbose {
		fmt.Fprintf(os.Stderr, "Fetched %d listing entries\n", len(fragments))
	}

	// Run the pipeline
	result := pipeline.NewRunner(st).Run(ctx, fragments)

	if closeDB != nil {
		closeDB()
	}

	// Filtering and sorting apply to the displayed candidates only;
	// reconciliation above always saw the full batch.
	fl := filter.NewFilter()
	fl.Topics = flagTopics
	fl.Countries = flagCountries
	fl.Cities = flagCities

	shown := fl.Apply(result.Candidates)
	sortCandidates(shown, sortOrder)

	output := &OutputResult{
		CheckedAt:      time.Now().UTC(),
		PageURL:        flagPageURL,
		DryRun:         flagDryRun,
		Created:        result.Created,
		Updated:        result.Updated,
		Errors:         result.Errors,
		NewConferences: result.NewRecords,
		Candidates:     shown,
	}
	if !fl.IsEmpty() {
		output.Filter = fl.String()
	}

	if err := WriteOutput(os.Stdout, output, format, flagVerbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	// Set exit code based on whether new records were created
	if result.Created > 0 {
		os.Exit(ExitNewRecords)
	} else {
		os.Exit(ExitSuccess)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
