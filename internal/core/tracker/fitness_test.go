package tracker

import (
	"testing"
	"time"

	"fitforge/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateAge(t *testing.T) {
	tests := []struct {
		dob  string
		now  time.Time
		want int
	}{
		{dob: "2007-05-04", now: time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC), want: 18},
		{dob: "2007-05-04", now: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), want: 19},
		{dob: "2007-05-04", now: time.Date(2026, 4, 30, 0, 0, 0, 0, time.UTC), want: 18},
		{dob: "2000-01-01", now: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), want: 26},
	}
	for _, tt := range tests {
		got, err := CalculateAge(tt.dob, tt.now)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.now.String())
	}

	_, err := CalculateAge("not a date", time.Now())
	assert.Error(t, err)
}

func TestFormatHeight(t *testing.T) {
	assert.Equal(t, `5'6"`, FormatHeight(167.64))
	assert.Equal(t, `5'9"`, FormatHeight(175.26))
	assert.Equal(t, `6'0"`, FormatHeight(182.8))
	assert.Equal(t, `0'0"`, FormatHeight(0))
}

func TestTodayHelpers(t *testing.T) {
	assert.Equal(t, "Monday", TodayName(monday))
	assert.Equal(t, "2026-01-05", TodayDate(monday))
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("17:30")
	require.NoError(t, err)
	assert.Equal(t, 17, h)
	assert.Equal(t, 30, m)

	h, m, err = ParseClock("7:05")
	require.NoError(t, err)
	assert.Equal(t, 7, h)
	assert.Equal(t, 5, m)

	_, _, err = ParseClock("17:3")
	assert.Error(t, err)

	for _, bad := range []string{"+1:30", "-0:00", "1:+5", "07:-1", " 7:0 "} {
		_, _, err = ParseClock(bad)
		assert.ErrorIs(t, err, common.ErrInvalidReminderTime, bad)
	}
}
