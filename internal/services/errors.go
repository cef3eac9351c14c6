package services

import "errors"

var (
	// ErrEmailExists is returned when registration or team creation uses an
	// email that already has an account.
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password so
	// login responses leak nothing about which one failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled is returned when a deactivated account tries to
	// log in.
	ErrAccountDisabled = errors.New("account is disabled")

	// ErrInvalidTransition is returned when a status change is not allowed
	// by the incident workflow.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotAssigned is returned when a rescue team acts on an incident it
	// was never assigned to.
	ErrNotAssigned = errors.New("team is not assigned to this incident")

	// ErrAlreadyResponded is returned when a team answers the same
	// assignment twice.
	ErrAlreadyResponded = errors.New("assignment already responded to")

	// ErrTeamHasActiveAssignments blocks deleting a team that is still
	// working incidents.
	ErrTeamHasActiveAssignments = errors.New("team has active assignments")

	// ErrForbidden is returned when the actor may not see or modify the
	// resource.
	ErrForbidden = errors.New("access denied")

	// ErrTooManyImages is returned when an incident report exceeds the
	// image limit.
	ErrTooManyImages = errors.New("too many images")

	// ErrUnsupportedImageType is returned for uploads that are not an
	// accepted image format.
	ErrUnsupportedImageType = errors.New("unsupported image type")
)
