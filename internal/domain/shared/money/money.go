package money

import "strconv"

// Amount keeps prices in integer KRW to avoid floating point issues.
// Won has no minor unit, so every tariff and quote amount is exact.
type Amount int64

// Add returns the sum of two amounts.
func (a Amount) Add(other Amount) Amount {
	return a + other
}

// Mul multiplies the amount by the provided factor.
func (a Amount) Mul(times int64) Amount {
	return a * Amount(times)
}

// IsZero returns true if the amount equals zero.
func (a Amount) IsZero() bool {
	return a == 0
}

// IsNegative reports whether the amount is below zero.
func (a Amount) IsNegative() bool {
	return a < 0
}

func (a Amount) String() string {
	return strconv.FormatInt(int64(a), 10)
}

// Sum folds a slice of amounts.
func Sum(amounts ...Amount) Amount {
	var total Amount
	for _, a := range amounts {
		total += a
	}
	return total
}
