// Package api exposes the scrape pipeline over HTTP. One endpoint
// triggers a fetch-extract-reconcile run and serializes its report; the
// pipeline itself stays transport-agnostic.
package api
