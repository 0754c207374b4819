package models

const (
	// StatusPending is written on the remote record at insert time.
	StatusPending = "pending"
	// StatusUpcoming is the local-cache status after a successful creation.
	StatusUpcoming = "upcoming"
	// StatusCompleted is display-only; completion removes the record.
	StatusCompleted = "completed"
)

// DateLayout is the calendar date format used throughout: ISO date, no timezone.
const DateLayout = "2006-01-02"

const (
	// DefaultBackendTimeout caps a single call to the remote backend, seconds.
	DefaultBackendTimeout = 10

	// DefaultBackendRPS limits outbound backend calls per second.
	DefaultBackendRPS = 10

	// DefaultBackendBurst is the rate limiter burst for backend calls.
	DefaultBackendBurst = 5

	// MinPasswordLength is enforced before credentials reach the auth provider.
	MinPasswordLength = 6
)
