// Package conference defines the data model shared by the extraction
// and reconciliation pipeline.
//
// A Candidate is the transient shape produced by extraction: every field
// is always populated, with the literal sentinel "unknown" standing in
// for anything that could not be located in the markup. A Record is the
// persisted, deduplicated shape: it carries the normalized identity keys
// used for matching, typed nullable dates, and create/update timestamps
// owned by the store.
package conference
