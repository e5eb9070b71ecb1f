// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish failure
// scenarios without inspecting driver errors: ErrNotFound maps to a 404
// response, ErrNoSchoolYear to the configuration-error response of the
// availability endpoint.
package repository

import "errors"

// ErrNotFound is returned when a targeted lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrNoSchoolYear is returned when the system settings contain no usable
// current-school-year value. Availability queries cannot run without one.
var ErrNoSchoolYear = errors.New("no current school year configured")
