package reservation

import (
	"time"

	"farmstay/internal/domain/shared/daterange"
	"farmstay/internal/domain/tariff"
)

// Request carries a guest's selections before anything is priced or stored.
// Add-on selections map category to quantity; absent categories count as zero.
type Request struct {
	GuestName  string
	GuestPhone string
	CheckIn    time.Time
	CheckOut   time.Time
	Adults     int
	Children   int
	Addons     map[tariff.Category]int
}

func (r Request) TotalGuests() int {
	return r.Adults + r.Children
}

// AddonQuantity reads a selection, treating missing keys as zero and
// clamping negatives so downstream arithmetic never sees them.
func (r Request) AddonQuantity(cat tariff.Category) int {
	q := r.Addons[cat]
	if q < 0 {
		return 0
	}
	return q
}

// HasDates reports whether both stay dates were supplied.
func (r Request) HasDates() bool {
	return !r.CheckIn.IsZero() && !r.CheckOut.IsZero()
}

// Stay builds the date range for the request. Only meaningful once the
// validator accepted the dates.
func (r Request) Stay() daterange.DateRange {
	return daterange.DateRange{CheckIn: r.CheckIn.UTC(), CheckOut: r.CheckOut.UTC()}
}
