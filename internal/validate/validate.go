package validate

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"homefix/internal/models"
)

var (
	ErrMissingDate     = errors.New("missing date")
	ErrMissingTime     = errors.New("missing time")
	ErrMissingAddress  = errors.New("missing address")
	ErrBadDateFormat   = errors.New("bad date format")
	ErrBadTimeFormat   = errors.New("bad time format")
	ErrDateNotInFuture = errors.New("date not in future")

	ErrMissingEmail     = errors.New("missing email")
	ErrMissingPassword  = errors.New("missing password")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
)

var (
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)
)

// BookingForm checks a booking submission against today's calendar date.
// Rules run in a fixed order and the first failure wins.
func BookingForm(date, timeOfDay, address string) error {
	return BookingFormAt(date, timeOfDay, address, time.Now())
}

// BookingFormAt is BookingForm with an explicit "now" for deterministic tests.
func BookingFormAt(date, timeOfDay, address string, now time.Time) error {
	if strings.TrimSpace(date) == "" {
		return ErrMissingDate
	}
	if strings.TrimSpace(timeOfDay) == "" {
		return ErrMissingTime
	}
	if strings.TrimSpace(address) == "" {
		return ErrMissingAddress
	}
	if !dateRe.MatchString(date) {
		return ErrBadDateFormat
	}
	if !timeRe.MatchString(timeOfDay) {
		return ErrBadTimeFormat
	}

	// The regex admits calendar-impossible dates like 2099-13-40; a strict
	// parse catches those as format errors too.
	parsed, err := time.Parse(models.DateLayout, date)
	if err != nil {
		return ErrBadDateFormat
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if parsed.Before(today) {
		return ErrDateNotInFuture
	}

	return nil
}

// Credentials checks sign-in and sign-up input before it reaches the
// authentication provider.
func Credentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(password) == "" {
		return ErrMissingPassword
	}
	if len(password) < models.MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
