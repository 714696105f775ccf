// Package extract parses listing-entry HTML fragments into candidate
// conference records.
//
// Listing markup has no stable selectors for individual values, but
// every value is preceded by an accessibility label. The extractor
// therefore matches on label text and walks to the adjacent value
// element, driven by a table mapping the label vocabulary to extraction
// rules. Missing structure degrades to the "unknown" sentinel per field;
// extraction never fails a fragment, let alone a batch.
package extract
