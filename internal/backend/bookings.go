package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"homefix/internal/models"
)

// InsertBooking creates a remote booking record and returns it with the
// backend-assigned id.
func (c *Client) InsertBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	var created models.Booking
	if err := c.do(ctx, http.MethodPost, "/v1/bookings", "", booking, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// QueryBookings returns the user's remote bookings ordered by date ascending.
func (c *Client) QueryBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	path := fmt.Sprintf("/v1/bookings?user_id=%s&order=date", url.QueryEscape(userID))
	var wrap struct {
		Bookings []models.Booking `json:"bookings"`
	}
	if err := c.do(ctx, http.MethodGet, path, "", nil, &wrap); err != nil {
		return nil, err
	}
	return wrap.Bookings, nil
}

// DeleteBooking removes a remote booking by id.
func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/v1/bookings/%d", id), "", nil, nil)
}
