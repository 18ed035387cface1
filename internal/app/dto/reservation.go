package dto

import (
	"time"

	domainpricing "farmstay/internal/domain/pricing"
	domainreservation "farmstay/internal/domain/reservation"
	"farmstay/internal/domain/stats"
	"farmstay/internal/domain/tariff"
)

type ReservationRequest struct {
	GuestName  string         `json:"guest_name"`
	GuestPhone string         `json:"guest_phone"`
	CheckIn    time.Time      `json:"check_in"`
	CheckOut   time.Time      `json:"check_out"`
	Adults     int            `json:"adults"`
	Children   int            `json:"children"`
	Addons     map[string]int `json:"addons"`
}

type QuoteLineItem struct {
	Category  string `json:"category,omitempty"`
	Label     string `json:"label"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

type Quote struct {
	Nights    int             `json:"nights"`
	LineItems []QuoteLineItem `json:"line_items"`
	Total     int64           `json:"total"`
}

type QuoteResponse struct {
	Violations []string `json:"violations"`
	Quote      *Quote   `json:"quote,omitempty"`
}

type ReservationSummary struct {
	ID            string         `json:"id"`
	GuestName     string         `json:"guest_name"`
	GuestPhone    string         `json:"guest_phone"`
	CheckIn       time.Time      `json:"check_in"`
	CheckOut      time.Time      `json:"check_out"`
	Adults        int            `json:"adults"`
	Children      int            `json:"children"`
	TotalGuests   int            `json:"total_guests"`
	Addons        map[string]int `json:"addons"`
	Nights        int            `json:"nights"`
	BasePrice     int64          `json:"base_price"`
	TotalAmount   int64          `json:"total_amount"`
	Status        string         `json:"status"`
	PaymentStatus string         `json:"payment_status"`
	ConfirmedAt   *time.Time     `json:"confirmed_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

type ReservationCollection struct {
	Items []ReservationSummary `json:"items"`
	Total int                  `json:"total"`
}

type Dashboard struct {
	OccupancyRate int                   `json:"occupancy_rate"`
	RevenueToday  int64                 `json:"revenue_today"`
	RevenueWeek   int64                 `json:"revenue_week"`
	RevenueMonth  int64                 `json:"revenue_month"`
	AverageTicket int64                 `json:"average_ticket"`
	LeadTimes     stats.LeadTimeBuckets `json:"lead_times"`
}

// ToDomainRequest converts the transport shape into the engine's input.
// Unknown addon keys pass through untouched; the quote engine treats them
// as configuration defects rather than dropping them silently.
func (r ReservationRequest) ToDomainRequest() domainreservation.Request {
	addons := make(map[tariff.Category]int, len(r.Addons))
	for key, qty := range r.Addons {
		addons[tariff.Category(key)] = qty
	}
	return domainreservation.Request{
		GuestName:  r.GuestName,
		GuestPhone: r.GuestPhone,
		CheckIn:    r.CheckIn,
		CheckOut:   r.CheckOut,
		Adults:     r.Adults,
		Children:   r.Children,
		Addons:     addons,
	}
}

func MapQuote(q domainpricing.Quote) Quote {
	out := Quote{
		Nights:    q.Nights,
		LineItems: make([]QuoteLineItem, 0, len(q.LineItems)),
		Total:     int64(q.Total),
	}
	for _, item := range q.LineItems {
		out.LineItems = append(out.LineItems, QuoteLineItem{
			Category:  string(item.Category),
			Label:     item.Label,
			UnitPrice: int64(item.UnitPrice),
			Quantity:  item.Quantity,
			Subtotal:  int64(item.Subtotal),
		})
	}
	return out
}

func MapReservationSummary(r *domainreservation.Reservation) ReservationSummary {
	addons := make(map[string]int, len(r.Addons))
	for cat, qty := range r.Addons {
		addons[string(cat)] = qty
	}
	summary := ReservationSummary{
		ID:            string(r.ID),
		GuestName:     r.GuestName,
		GuestPhone:    r.GuestPhone,
		CheckIn:       r.Stay.CheckIn,
		CheckOut:      r.Stay.CheckOut,
		Adults:        r.Adults,
		Children:      r.Children,
		TotalGuests:   r.TotalGuests(),
		Addons:        addons,
		Nights:        r.Nights,
		BasePrice:     int64(r.BasePrice),
		TotalAmount:   int64(r.TotalAmount),
		Status:        string(r.Status),
		PaymentStatus: string(r.PaymentStatus),
		CreatedAt:     r.CreatedAt,
	}
	if !r.ConfirmedAt.IsZero() {
		confirmed := r.ConfirmedAt
		summary.ConfirmedAt = &confirmed
	}
	return summary
}
