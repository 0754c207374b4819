package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"homefix/internal/domain"
	"homefix/internal/events"
	"homefix/internal/metrics"
	"homefix/internal/models"

	"github.com/rs/zerolog"
)

// BookingService synchronizes bookings between the remote store and the
// per-user local cache. The remote write is authoritative on create; the
// local cache is the source of truth for display and is pruned of past
// bookings on every load.
type BookingService struct {
	remote   domain.BookingStore
	cache    domain.CacheStore
	eventBus domain.EventPublisher
	logger   *zerolog.Logger
	now      func() time.Time
}

func NewBookingService(remote domain.BookingStore, cache domain.CacheStore, eventBus domain.EventPublisher, logger *zerolog.Logger) *BookingService {
	return &BookingService{
		remote:   remote,
		cache:    cache,
		eventBus: eventBus,
		logger:   logger,
		now:      time.Now,
	}
}

func cacheKey(userID string) string {
	return "bookings_" + userID
}

// Create inserts the booking remotely and mirrors it into the user's local
// cache. Input is assumed pre-validated. A remote failure is terminal for
// the attempt: nothing is cached and the error is returned to the caller.
func (s *BookingService) Create(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error) {
	now := s.now()

	record := &models.Booking{
		UserID:    userID,
		Service:   req.Service,
		Date:      req.Date,
		Time:      req.Time,
		Address:   req.Address,
		Comments:  req.Comments,
		Status:    models.StatusPending,
		CreatedAt: now,
	}

	created, err := s.remote.InsertBooking(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)
	}

	id := created.ID
	if id == 0 {
		// The backend did not echo an id; fall back to a timestamp-based one,
		// unique enough within a single user's cache.
		id = now.UnixMilli()
	}

	booking := models.Booking{
		ID:        id,
		UserID:    userID,
		Service:   req.Service,
		Date:      req.Date,
		Time:      req.Time,
		Address:   req.Address,
		Comments:  req.Comments,
		Status:    models.StatusUpcoming,
		CreatedAt: now,
	}

	cached, _ := s.readCache(ctx, userID)
	cached = append(cached, booking)
	s.writeCache(ctx, userID, cached)

	s.publishBookingEvent(events.EventBookingCreated, booking)
	metrics.IncBookingCreated()

	return &booking, nil
}

// Load reads the user's cached bookings, drops every entry dated before
// today, persists the filtered list back and returns it split into upcoming
// and past. Past is empty by construction right after pruning; the split is
// kept because both views exist in the booking list contract.
func (s *BookingService) Load(ctx context.Context, userID string) (upcoming, past []models.Booking, err error) {
	cached, readErr := s.readCache(ctx, userID)
	today := s.today()

	kept := make([]models.Booking, 0, len(cached))
	removed := 0
	for _, b := range cached {
		if b.Date >= today {
			kept = append(kept, b)
		} else {
			removed++
		}
	}

	s.writeCache(ctx, userID, kept)

	if removed > 0 {
		metrics.AddBookingsPruned(removed)
		s.publishJSON(events.EventBookingsPruned, events.PruneEventPayload{UserID: userID, Removed: removed})
	}

	upcoming = filterByDate(kept, today, true)
	past = filterByDate(kept, today, false)
	return upcoming, past, readErr
}

// Complete removes the booking from the user's cache and issues a
// fire-and-forget remote delete. A failed remote delete is logged and
// ignored: the local removal stands and the stores are allowed to diverge.
func (s *BookingService) Complete(ctx context.Context, userID string, bookingID int64) error {
	cached, readErr := s.readCache(ctx, userID)

	kept := make([]models.Booking, 0, len(cached))
	var completed *models.Booking
	for _, b := range cached {
		if b.ID == bookingID {
			removed := b
			completed = &removed
			continue
		}
		kept = append(kept, b)
	}

	s.writeCache(ctx, userID, kept)

	if err := s.remote.DeleteBooking(ctx, bookingID); err != nil {
		s.logger.Warn().Err(err).Int64("booking_id", bookingID).Str("user_id", userID).
			Msg("remote delete failed, keeping local removal")
	}

	if completed != nil {
		completed.Status = models.StatusCompleted
		s.publishBookingEvent(events.EventBookingCompleted, *completed)
		metrics.IncBookingCompleted()
	}

	return readErr
}

// readCache returns the cached booking list, treating a missing, unreadable
// or corrupt entry as empty. The returned error is ErrCacheRecovered in the
// degraded cases and nil otherwise.
func (s *BookingService) readCache(ctx context.Context, userID string) ([]models.Booking, error) {
	raw, err := s.cache.Get(ctx, cacheKey(userID))
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("cache read failed, starting empty")
		return nil, ErrCacheRecovered
	}
	if raw == nil {
		return nil, nil
	}

	var bookings []models.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("cache entry corrupt, starting empty")
		return nil, ErrCacheRecovered
	}
	return bookings, nil
}

// writeCache persists the booking list; failures are logged and swallowed.
func (s *BookingService) writeCache(ctx context.Context, userID string, bookings []models.Booking) {
	raw, err := json.Marshal(bookings)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("marshal booking cache")
		return
	}
	if err := s.cache.Set(ctx, cacheKey(userID), raw); err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("cache write failed")
	}
}

func (s *BookingService) today() string {
	return s.now().Format(models.DateLayout)
}

// filterByDate returns the bookings on or after today (upcoming=true) or
// strictly before it. ISO dates compare correctly as strings.
func filterByDate(bookings []models.Booking, today string, upcoming bool) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if (b.Date >= today) == upcoming {
			out = append(out, b)
		}
	}
	return out
}

func (s *BookingService) publishBookingEvent(eventType string, booking models.Booking) {
	s.publishJSON(eventType, events.BookingEventPayload{
		BookingID: booking.ID,
		UserID:    booking.UserID,
		Service:   booking.Service,
		Date:      booking.Date,
		Time:      booking.Time,
		Status:    booking.Status,
	})
}

func (s *BookingService) publishJSON(eventType string, payload interface{}) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.PublishJSON(eventType, payload); err != nil {
		s.logger.Error().Err(err).Str("event_type", eventType).Msg("publish event error")
	}
}
