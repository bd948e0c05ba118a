// Package repository defines error types that are reused across the
// repositories.  These sentinel values allow handlers to tell a missing
// record apart from a failing database.
package repository

import "errors"

// ErrRestaurantNotFound is returned when a restaurant id does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrRestaurantNotFound = errors.New("restaurant not found")
