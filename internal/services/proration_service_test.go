package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestProrate_DailyDefault(t *testing.T) {
	// 15 days at 900/30 per day = 450.00
	start := date(2024, time.March, 1)
	end := date(2024, time.March, 16)

	result := Prorate(start, end, 900, ProrationDaily, 30)

	assert.Equal(t, int64(45000), result.ProratedAmountCents)
	assert.Equal(t, int64(90000), result.MonthlyRentCents)
	assert.Equal(t, 15, result.DaysInPeriod)
	assert.Equal(t, ProrationDaily, result.ProrationMethod)
	assert.Equal(t, 30, result.Breakdown.DaysInMonth)
	assert.Equal(t, int64(3000), result.Breakdown.DailyRateCents)
}

func TestProrate_ExactUsesCalendarMonth(t *testing.T) {
	// February 2024 has 29 days; 10 days at 2900/29 per day = 1000.00
	start := date(2024, time.February, 1)
	end := date(2024, time.February, 11)

	result := Prorate(start, end, 2900, ProrationExact, 30)

	assert.Equal(t, int64(100000), result.ProratedAmountCents)
	assert.Equal(t, 29, result.Breakdown.DaysInMonth)
	assert.Equal(t, 10, result.DaysInPeriod)
}

func TestProrate_UnknownMethodYieldsZero(t *testing.T) {
	start := date(2024, time.March, 1)
	end := date(2024, time.March, 16)

	result := Prorate(start, end, 900, "quarterly", 30)

	assert.Equal(t, int64(0), result.ProratedAmountCents)
	assert.Equal(t, int64(90000), result.MonthlyRentCents)
	assert.Equal(t, "quarterly", result.ProrationMethod)
	assert.Equal(t, int64(0), result.Breakdown.DailyRateCents)
}

func TestProrate_RoundsToNearestCent(t *testing.T) {
	// 1000/30 * 7 = 233.333... -> 233.33
	start := date(2024, time.May, 1)
	end := date(2024, time.May, 8)

	result := Prorate(start, end, 1000, ProrationDaily, 30)

	assert.Equal(t, int64(23333), result.ProratedAmountCents)
}

func TestDaysInPeriod_PartialDaysRoundUp(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 2, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, DaysInPeriod(start, end))
	assert.Equal(t, 1, DaysInPeriod(start, start.Add(24*time.Hour)))
	assert.Equal(t, 0, DaysInPeriod(start, start))
}

func TestCalendarDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, CalendarDaysInMonth(date(2024, time.February, 15)))
	assert.Equal(t, 28, CalendarDaysInMonth(date(2023, time.February, 1)))
	assert.Equal(t, 31, CalendarDaysInMonth(date(2024, time.January, 31)))
	assert.Equal(t, 30, CalendarDaysInMonth(date(2024, time.April, 10)))
}
