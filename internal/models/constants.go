package models

const (
	StatusActive      = "Active"
	StatusInactive    = "Inactive"
	StatusComingSoon  = "Coming Soon"
	StatusConfirmed   = "Confirmed"
	StatusCancelled   = "Cancelled"
	StatusCompleted   = "Completed"
)

const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Booking types as produced by the customer-facing flow.
const (
	BookingTypeMovie  = "MOVIE"
	BookingTypeSports = "SPORTS"
	BookingTypeEvent  = "EVENT"
)

// Storage keys, one serialized array per collection.
const (
	KeyMovies   = "movies"
	KeySports   = "adminSports"
	KeyEvents   = "adminEvents"
	KeyStream   = "adminStream"
	KeyTheaters = "theaters"
	KeyUsers    = "users"
	KeyBookings = "bookings"
)

// AllKeys returns every collection key, in a stable order.
func AllKeys() []string {
	return []string{
		KeyMovies, KeySports, KeyEvents, KeyStream,
		KeyTheaters, KeyUsers, KeyBookings,
	}
}

const (
	// DefaultUserPassword is assigned to admin-created accounts until
	// the user changes it.
	DefaultUserPassword = "password123"

	// ChangeFeedQueueSize bounds the in-process change feed buffer.
	ChangeFeedQueueSize = 1000
)
