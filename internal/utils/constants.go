package utils

// Application constants
const (
	AppName = "CrisisManagement"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Assignment matcher
	EarthRadiusKM     = 6371.0
	DispatchRadiusKM  = 10.0
	MaxTeamsPerMatch  = 3

	// File upload
	MaxImagesPerIncident = 5
	MaxImageSize         = 5 * 1024 * 1024 // 5MB

	// Response statuses
	StatusSuccess = "success"
	StatusError   = "error"

	// Error messages
	ErrValidationFailed = "Validation failed"
	ErrInternalServer   = "Internal server error"
	ErrUnauthorized     = "Unauthorized"
	ErrForbidden        = "Forbidden"
)
