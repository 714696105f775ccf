// Package fetch retrieves the conference listing page and slices it into
// per-entry HTML fragments for the pipeline. The core pipeline places no
// constraint on where fragments come from; this is simply the default
// HTTP implementation of that boundary.
package fetch
