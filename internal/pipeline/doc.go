// Package pipeline orchestrates the extraction-and-reconciliation run.
//
// The Runner turns a batch of listing-entry HTML fragments into
// candidates and hands them to the Reconciler, which matches each
// candidate against the store by normalized URL or normalized CFP URL
// and creates or updates accordingly. Reconciliation is idempotent:
// re-running the same fragments refreshes existing records instead of
// duplicating them. Failures are isolated per candidate and surfaced in
// the run report; a bad record never aborts the batch.
package pipeline
