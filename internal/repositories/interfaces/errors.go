package interfaces

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when an insert would violate the
	// unique email constraint on users.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrDuplicateAssignment is returned when a team is already assigned
	// to the incident.
	ErrDuplicateAssignment = errors.New("team already assigned to incident")
)
