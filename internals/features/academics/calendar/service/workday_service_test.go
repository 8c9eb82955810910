package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func d(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestNextWorkingDay_WeekdayUnchanged(t *testing.T) {
	cal := NewHolidayCalendar(nil)
	// Rabu
	assert.Equal(t, d(2025, time.August, 27), cal.NextWorkingDay(d(2025, time.August, 27)))
}

func TestNextWorkingDay_WeekendRollsToMonday(t *testing.T) {
	cal := NewHolidayCalendar(nil)
	// Sabtu 30 Ags → Senin 1 Sep
	assert.Equal(t, d(2025, time.September, 1), cal.NextWorkingDay(d(2025, time.August, 30)))
	assert.Equal(t, d(2025, time.September, 1), cal.NextWorkingDay(d(2025, time.August, 31)))
}

func TestNextWorkingDay_ChainedHolidays(t *testing.T) {
	// Senin & Selasa libur → Rabu
	cal := NewHolidayCalendar([]time.Time{
		d(2025, time.September, 1),
		d(2025, time.September, 2),
	})
	assert.Equal(t, d(2025, time.September, 3), cal.NextWorkingDay(d(2025, time.August, 30)))
}

func TestNextWorkingDay_HolidayOnFridayRollsPastWeekend(t *testing.T) {
	// Jumat libur → Sabtu/Minggu weekend → Senin
	cal := NewHolidayCalendar([]time.Time{d(2025, time.September, 5)})
	assert.Equal(t, d(2025, time.September, 8), cal.NextWorkingDay(d(2025, time.September, 5)))
}
