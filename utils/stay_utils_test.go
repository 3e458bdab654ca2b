package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "calendar date", input: "2025-06-01", want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2025-06-01T12:00:00Z", want: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{name: "timestamp without zone", input: "2025-06-01T12:00:00", want: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{name: "surrounding spaces", input: "  2025-06-01  ", want: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
		{name: "wrong order", input: "01-06-2025", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestStayDuration(t *testing.T) {
	day := func(s string) time.Time {
		t2, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return t2
	}

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
		wantErr  error
	}{
		{name: "two whole days", checkIn: day("2025-01-01"), checkOut: day("2025-01-03"), want: 2},
		{name: "four whole days", checkIn: day("2025-06-01"), checkOut: day("2025-06-05"), want: 4},
		{
			name:     "fractional day rounds up",
			checkIn:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			checkOut: time.Date(2025, 1, 2, 6, 0, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "just over a day rounds up to two",
			checkIn:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
			checkOut: time.Date(2025, 1, 2, 18, 0, 0, 0, time.UTC),
			want:     2,
		},
		{name: "equal dates", checkIn: day("2025-01-01"), checkOut: day("2025-01-01"), wantErr: ErrInvalidRange},
		{name: "inverted dates", checkIn: day("2025-01-03"), checkOut: day("2025-01-01"), wantErr: ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StayDuration(tt.checkIn, tt.checkOut)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatStayDuration(t *testing.T) {
	assert.Equal(t, "4 days", FormatStayDuration(4))
	assert.Equal(t, "1 days", FormatStayDuration(1))
}
