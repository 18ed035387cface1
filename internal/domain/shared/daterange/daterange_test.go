package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewRejectsInvertedRange(t *testing.T) {
	_, err := New(date(2026, 8, 10), date(2026, 8, 8))
	require.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(time.Time{}, date(2026, 8, 8))
	require.ErrorIs(t, err, ErrInvalidRange)
}

func TestNewAcceptsSameDay(t *testing.T) {
	dr, err := New(date(2026, 8, 10), date(2026, 8, 10))
	require.NoError(t, err)
	require.True(t, dr.SameDay())
	require.Equal(t, 0, dr.Nights())
}

func TestNightsWholeDays(t *testing.T) {
	dr := DateRange{CheckIn: date(2026, 8, 10), CheckOut: date(2026, 8, 12)}
	require.Equal(t, 2, dr.Nights())
}

func TestNightsRoundsPartialDaysUp(t *testing.T) {
	checkIn := time.Date(2026, 8, 10, 15, 0, 0, 0, time.UTC)
	checkOut := time.Date(2026, 8, 12, 11, 0, 0, 0, time.UTC)
	dr := DateRange{CheckIn: checkIn, CheckOut: checkOut}
	require.Equal(t, 2, dr.Nights())
}

func TestNightsNeverNegative(t *testing.T) {
	dr := DateRange{CheckIn: date(2026, 8, 12), CheckOut: date(2026, 8, 10)}
	require.Equal(t, 0, dr.Nights())
}

func TestOverlaps(t *testing.T) {
	a := DateRange{CheckIn: date(2026, 8, 10), CheckOut: date(2026, 8, 12)}
	b := DateRange{CheckIn: date(2026, 8, 11), CheckOut: date(2026, 8, 14)}
	c := DateRange{CheckIn: date(2026, 8, 12), CheckOut: date(2026, 8, 14)}
	require.True(t, a.Overlaps(b))
	// Checkout day is exclusive; back-to-back stays do not overlap.
	require.False(t, a.Overlaps(c))
}

func TestContainsDate(t *testing.T) {
	dr := DateRange{CheckIn: date(2026, 8, 10), CheckOut: date(2026, 8, 12)}
	require.True(t, dr.ContainsDate(date(2026, 8, 10)))
	require.True(t, dr.ContainsDate(date(2026, 8, 11)))
	require.False(t, dr.ContainsDate(date(2026, 8, 12)))
}

func TestDaysBetween(t *testing.T) {
	require.Equal(t, 0, DaysBetween(date(2026, 8, 10), date(2026, 8, 10)))
	require.Equal(t, 3, DaysBetween(date(2026, 8, 10), date(2026, 8, 13)))
	require.Equal(t, 0, DaysBetween(date(2026, 8, 13), date(2026, 8, 10)))
	// Partial days truncate: created at noon, stay starts next morning.
	created := time.Date(2026, 8, 10, 12, 0, 0, 0, time.UTC)
	start := time.Date(2026, 8, 11, 9, 0, 0, 0, time.UTC)
	require.Equal(t, 0, DaysBetween(created, start))
}
