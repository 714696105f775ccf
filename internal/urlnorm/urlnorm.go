// Package urlnorm canonicalizes URLs into stable identity keys.
//
// Two URLs that differ only in query parameters, fragment, or a trailing
// slash normalize to the same key, which is the foundation of the
// store's deduplication.
package urlnorm

import (
	"net/url"
	"strings"

	"github.com/pfrederiksen/conf-tracker/internal/conference"
)

// Normalize canonicalizes a raw URL string into an identity key.
//
// Returns nil for the unknown sentinel or an empty string (no identity
// on this field). A string that does not parse as an absolute URL is
// returned unchanged: best-effort normalization never fails, and a
// malformed URL is still usable as a literal matching key. Otherwise
// the result is scheme://host/path with the query string and fragment
// discarded and any trailing slash stripped.
func Normalize(raw string) *string {
	if raw == "" || raw == conference.Unknown {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return &raw
	}

	normalized := strings.TrimSuffix(u.Scheme+"://"+u.Host+u.Path, "/")
	return &normalized
}
