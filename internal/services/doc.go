// Package services contains the query layer between HTTP handlers and the
// scan dataset. Services hold the immutable dataset built at startup and
// expose read-only views of it; there are no writes after construction.
package services
