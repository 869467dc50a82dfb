// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers and services to distinguish between failure scenarios
// without inspecting driver-specific error strings.
package repository

import "errors"

// ErrPropertyNotFound is returned when a property lookup matches no row.
// Handlers should translate this into an HTTP 404 response.
var ErrPropertyNotFound = errors.New("property not found")

// ErrEmailExists is returned when a user registration collides with an
// existing email. Handlers should translate this into an HTTP 409 response.
var ErrEmailExists = errors.New("email already exists")

// ErrPropertyExists is returned when a listing is created with a slug that is
// already taken. Handlers should translate this into an HTTP 409 response.
var ErrPropertyExists = errors.New("property already exists")
