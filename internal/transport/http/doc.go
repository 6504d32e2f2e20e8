// Package http contains the chi handlers for the scan dashboard API.
// Handlers depend on narrow service interfaces so tests can substitute
// stubs, and all failures surface as RFC 7807 problem responses.
package http
