package utils

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// Date parsing / stay-duration helpers. Pure functions, no storage access.

var ErrInvalidDate = errors.New("invalid_date")
var ErrInvalidRange = errors.New("invalid_date_range")

// dateLayouts are tried in order: plain calendar dates first, then full
// RFC3339 timestamps, matching what clients actually send.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseDate parses an ISO-8601 date or timestamp string.
func ParseDate(input string) (time.Time, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
}

// StayDuration returns the whole-day ceiling of checkOut - checkIn.
// A half-day stay still occupies the room for a night, so fractions round up.
func StayDuration(checkIn, checkOut time.Time) (int, error) {
	if !checkIn.Before(checkOut) {
		return 0, ErrInvalidRange
	}
	days := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	return days, nil
}

// FormatStayDuration renders a day count the way bookings store it, e.g. "4 days".
func FormatStayDuration(days int) string {
	return fmt.Sprintf("%d days", days)
}
