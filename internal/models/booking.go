package models

import "time"

// Booking is one requested service visit. Date and Time keep the exact
// strings the user submitted: they are validated once at creation and
// never reformatted afterwards.
type Booking struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"user_id"`
	Service   string    `json:"service"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Time      string    `json:"time"` // HH:MM, 24-hour
	Address   string    `json:"address"`
	Comments  string    `json:"comments,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// BookingRequest carries the raw form fields of a booking submission.
type BookingRequest struct {
	Service  string `json:"service"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Address  string `json:"address"`
	Comments string `json:"comments,omitempty"`
}
