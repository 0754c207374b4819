package domain

import (
	"context"

	"homefix/internal/models"
)

// BookingStore is the remote, backend-owned record store for bookings.
type BookingStore interface {
	InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error)
	QueryBookings(ctx context.Context, userID string) ([]models.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
}

// CatalogClient lists offerable services from the remote catalog.
type CatalogClient interface {
	ListServices(ctx context.Context) ([]models.Service, error)
}

// AuthClient talks to the backend authentication provider.
type AuthClient interface {
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context, accessToken string) error
	CurrentUser(ctx context.Context, accessToken string) (*models.Session, error)
}

// CacheStore is a durable key-value cache. Get returns (nil, nil) when the
// key is absent.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// EventPublisher publishes in-process domain events.
type EventPublisher interface {
	PublishJSON(eventType string, payload interface{}) error
}

// BookingService is the booking synchronizer: remote writes mirrored into the
// per-user local cache, with prune-on-read.
type BookingService interface {
	Create(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error)
	Load(ctx context.Context, userID string) (upcoming, past []models.Booking, err error)
	Complete(ctx context.Context, userID string, bookingID int64) error
}

// CatalogService serves the service list, falling back to a fixed catalog
// when the backend is unavailable.
type CatalogService interface {
	ListServices(ctx context.Context) ([]models.Service, error)
}

// SessionManager holds the process-wide session value and notifies
// subscribers on every sign-in and sign-out.
type SessionManager interface {
	Current() *models.Session
	SignUp(ctx context.Context, email, password string) (*models.Session, error)
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	SignOut(ctx context.Context) error
	Subscribe(fn func(*models.Session))
}
