package stats

import (
	"time"

	"farmstay/internal/domain/reservation"
	"farmstay/internal/domain/shared/daterange"
	"farmstay/internal/domain/shared/money"
)

// LeadTimeBuckets groups reservations by days between creation and check-in.
type LeadTimeBuckets struct {
	SameDay     int `json:"same_day"`
	OneToThree  int `json:"one_to_three"`
	FourToSeven int `json:"four_to_seven"`
	EightPlus   int `json:"eight_plus"`
}

func revenueCounts(status reservation.Status) bool {
	return status == reservation.StatusConfirmed || status == reservation.StatusCompleted
}

// OccupancyRate returns the share of configured capacity occupied on the
// given day, as a whole percentage capped at 100. Only confirmed and
// completed stays that overlap the day count.
func OccupancyRate(reservations []*reservation.Reservation, capacity int, day time.Time) int {
	if capacity <= 0 {
		return 0
	}
	day = day.UTC()
	guests := 0
	for _, r := range reservations {
		if !revenueCounts(r.Status) {
			continue
		}
		if r.Stay.ContainsDate(day) {
			guests += r.TotalGuests()
		}
	}
	rate := (guests*100 + capacity/2) / capacity
	if rate > 100 {
		return 100
	}
	return rate
}

// RevenueForWindow sums the persisted totals of confirmed and completed
// reservations whose check-in falls inside [from, to).
func RevenueForWindow(reservations []*reservation.Reservation, from, to time.Time) money.Amount {
	window := daterange.DateRange{CheckIn: from.UTC(), CheckOut: to.UTC()}
	var total money.Amount
	for _, r := range reservations {
		if !revenueCounts(r.Status) {
			continue
		}
		if window.ContainsDate(r.Stay.CheckIn) {
			total = total.Add(r.TotalAmount)
		}
	}
	return total
}

// AverageTicket returns the mean total of revenue-counting reservations,
// truncated to whole won. Zero when nothing counts.
func AverageTicket(reservations []*reservation.Reservation) money.Amount {
	var total money.Amount
	count := 0
	for _, r := range reservations {
		if !revenueCounts(r.Status) {
			continue
		}
		total = total.Add(r.TotalAmount)
		count++
	}
	if count == 0 {
		return 0
	}
	return money.Amount(int64(total) / int64(count))
}

// LeadTimes buckets every reservation by whole days between creation and
// check-in, sharing day-boundary conventions with the stay calculator.
func LeadTimes(reservations []*reservation.Reservation) LeadTimeBuckets {
	var buckets LeadTimeBuckets
	for _, r := range reservations {
		days := daterange.DaysBetween(r.CreatedAt, r.Stay.CheckIn)
		switch {
		case days == 0:
			buckets.SameDay++
		case days <= 3:
			buckets.OneToThree++
		case days <= 7:
			buckets.FourToSeven++
		default:
			buckets.EightPlus++
		}
	}
	return buckets
}
