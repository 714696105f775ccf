// Package cli implements the command-line interface for conf-tracker.
//
// The cli package provides the Cobra-based CLI with support for scraping
// a listing page, formatting output (text/JSON), sorting (by date/name/
// city), and display filtering. It coordinates the fetch, pipeline, and
// store packages to fetch, reconcile, and report on tracked conferences.
package cli
