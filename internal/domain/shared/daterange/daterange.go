package daterange

import (
	"errors"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: checkout must not precede checkin")
)

const dayMillis = 24 * 60 * 60 * 1000

// DateRange represents a stay as a half-open interval [checkIn, checkOut).
// A range where both endpoints coincide is a same-day stay.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

func New(checkIn, checkOut time.Time) (DateRange, error) {
	dr := DateRange{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.CheckIn.IsZero() || dr.CheckOut.IsZero() {
		return ErrInvalidRange
	}
	if dr.CheckOut.Before(dr.CheckIn) {
		return ErrInvalidRange
	}
	return nil
}

// Nights counts billable nights, rounding partial days up. Callers must
// reject inverted ranges first; for those the result is clamped to zero.
func (dr DateRange) Nights() int {
	ms := dr.CheckOut.Sub(dr.CheckIn).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int((ms + dayMillis - 1) / dayMillis)
}

// SameDay reports whether the stay begins and ends on the same calendar day.
func (dr DateRange) SameDay() bool {
	return dr.Nights() == 0
}

func (dr DateRange) Overlaps(other DateRange) bool {
	return dr.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(dr.CheckOut)
}

// ContainsDate reports whether t falls inside the stay interval.
func (dr DateRange) ContainsDate(t time.Time) bool {
	t = t.UTC()
	return (t.Equal(dr.CheckIn) || t.After(dr.CheckIn)) && t.Before(dr.CheckOut)
}

// DaysBetween returns whole days from a to b, truncated toward zero and
// never negative. Used for lead-time style calculations so day boundaries
// stay consistent with Nights.
func DaysBetween(a, b time.Time) int {
	ms := b.Sub(a).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return int(ms / dayMillis)
}
