package patterns

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestIsHoliday(t *testing.T) {
	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"new year's day", date(2026, time.January, 1), true},
		{"independence day", date(2026, time.July, 4), true},
		{"christmas", date(2026, time.December, 25), true},
		{"thanksgiving 2026", date(2026, time.November, 26), true},
		{"black friday 2026", date(2026, time.November, 27), true},
		{"thanksgiving 2025", date(2025, time.November, 27), true},
		{"black friday 2025", date(2025, time.November, 28), true},
		{"memorial day 2026", date(2026, time.May, 25), true},
		{"labor day 2026", date(2026, time.September, 7), true},
		{"arbitrary march tuesday", date(2026, time.March, 17), false},
		{"day before thanksgiving", date(2026, time.November, 25), false},
		{"second monday of september", date(2026, time.September, 14), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHoliday(tt.day))
		})
	}
}

func TestNthWeekdayOfMonth(t *testing.T) {
	// November 2026 starts on a Sunday
	assert.Equal(t, 5, NthWeekdayOfMonth(2026, time.November, time.Thursday, 1).Day())
	assert.Equal(t, 26, NthWeekdayOfMonth(2026, time.November, time.Thursday, 4).Day())
	assert.Equal(t, 7, NthWeekdayOfMonth(2026, time.September, time.Monday, 1).Day())
}

func TestLastWeekdayOfMonth(t *testing.T) {
	assert.Equal(t, 25, LastWeekdayOfMonth(2026, time.May, time.Monday).Day())
	assert.Equal(t, 26, LastWeekdayOfMonth(2025, time.May, time.Monday).Day())
	// Last day itself is the target weekday
	assert.Equal(t, 31, LastWeekdayOfMonth(2026, time.May, time.Sunday).Day())
}

func TestZoneOffset(t *testing.T) {
	tests := []struct {
		abbr   string
		offset int
		ok     bool
	}{
		{"EST", -5, true},
		{"est", -5, true},
		{"PT", -8, true},
		{"CET", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run("zone "+tt.abbr, func(t *testing.T) {
			offset, ok := ZoneOffset(tt.abbr)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.offset, offset)
			}
		})
	}
}

func TestZoneShift(t *testing.T) {
	shift, ok := ZoneShift("PST", "EST")
	assert.True(t, ok)
	assert.Equal(t, 3, shift)

	shift, ok = ZoneShift("EST", "PST")
	assert.True(t, ok)
	assert.Equal(t, -3, shift)

	_, ok = ZoneShift("EST", "CET")
	assert.False(t, ok)
}
