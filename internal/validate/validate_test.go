package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, time.March, 15, 14, 30, 0, 0, time.UTC)

func TestBookingFormRuleOrder(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		time    string
		address string
		want    error
	}{
		{"MissingDate", "", "09:00", "1 Main St", ErrMissingDate},
		{"WhitespaceDate", "   ", "09:00", "1 Main St", ErrMissingDate},
		{"MissingTime", "2026-04-01", "", "1 Main St", ErrMissingTime},
		{"MissingAddress", "2026-04-01", "09:00", "  ", ErrMissingAddress},
		{"DateBeforeTimeCheck", "", "", "", ErrMissingDate},
		{"TimeBeforeAddressCheck", "2026-04-01", "", "", ErrMissingTime},
		{"Valid", "2026-04-01", "09:00", "1 Main St", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BookingFormAt(tt.date, tt.time, tt.address, testNow)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestBookingFormDateFormat(t *testing.T) {
	tests := []struct {
		name string
		date string
		want error
	}{
		{"SlashSeparated", "2026/04/01", ErrBadDateFormat},
		{"ShortYear", "26-04-01", ErrBadDateFormat},
		{"MissingDay", "2026-04", ErrBadDateFormat},
		{"Text", "tomorrow", ErrBadDateFormat},
		{"TrailingGarbage", "2026-04-01x", ErrBadDateFormat},
		{"MonthOutOfRange", "2099-13-40", ErrBadDateFormat},
		{"DayOutOfRange", "2099-02-31", ErrBadDateFormat},
		{"Valid", "2099-01-01", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BookingFormAt(tt.date, "09:00", "1 Main St", testNow)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestBookingFormTimeFormat(t *testing.T) {
	valid := []string{"00:00", "09:30", "9:30", "14:30", "23:59"}
	for _, v := range valid {
		t.Run("Valid_"+v, func(t *testing.T) {
			assert.NoError(t, BookingFormAt("2099-01-01", v, "1 Main St", testNow))
		})
	}

	invalid := []string{"24:00", "23:60", "7pm", "14.30", "14:3", "1430", ":30"}
	for _, v := range invalid {
		t.Run("Invalid_"+v, func(t *testing.T) {
			assert.ErrorIs(t, BookingFormAt("2099-01-01", v, "1 Main St", testNow), ErrBadTimeFormat)
		})
	}
}

func TestBookingFormFutureDate(t *testing.T) {
	t.Run("PastDate", func(t *testing.T) {
		err := BookingFormAt("2026-03-14", "09:00", "1 Main St", testNow)
		assert.ErrorIs(t, err, ErrDateNotInFuture)
	})

	t.Run("DistantPast", func(t *testing.T) {
		err := BookingFormAt("2000-01-01", "09:00", "1 Main St", testNow)
		assert.ErrorIs(t, err, ErrDateNotInFuture)
	})

	t.Run("TodayAccepted", func(t *testing.T) {
		// Same calendar date counts as future even late in the day.
		err := BookingFormAt("2026-03-15", "09:00", "1 Main St", testNow)
		assert.NoError(t, err)
	})

	t.Run("TomorrowAccepted", func(t *testing.T) {
		err := BookingFormAt("2026-03-16", "09:00", "1 Main St", testNow)
		assert.NoError(t, err)
	})
}

func TestBookingFormUsesWallClock(t *testing.T) {
	assert.NoError(t, BookingForm("2999-01-01", "09:00", "1 Main St"))
	assert.ErrorIs(t, BookingForm("2000-01-01", "09:00", "1 Main St"), ErrDateNotInFuture)
}

func TestCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"MissingEmail", "", "secret1", ErrMissingEmail},
		{"WhitespaceEmail", "  ", "secret1", ErrMissingEmail},
		{"MissingPassword", "a@b.com", "", ErrMissingPassword},
		{"ShortPassword", "a@b.com", "12345", ErrPasswordTooShort},
		{"Valid", "a@b.com", "123456", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Credentials(tt.email, tt.password)
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}
