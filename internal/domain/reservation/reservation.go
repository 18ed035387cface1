package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farmstay/internal/domain/shared/daterange"
	"farmstay/internal/domain/shared/money"
	"farmstay/internal/domain/tariff"
)

var (
	ErrNotFound          = errors.New("reservation: not found")
	ErrInvalidTransition = errors.New("reservation: invalid status transition")
	ErrInvalidGuests     = errors.New("reservation: at least one guest required")
)

type ID string

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPartial   PaymentStatus = "partial"
	PaymentCompleted PaymentStatus = "completed"
)

// Reservation is the persisted booking record. It is created once from a
// validated and priced request, then mutated only through status transitions
// or direct administrative edits. Cancellation is a status, never a delete.
type Reservation struct {
	ID            ID
	GuestName     string
	GuestPhone    string
	Stay          daterange.DateRange
	Adults        int
	Children      int
	Addons        map[tariff.Category]int
	Nights        int
	BasePrice     money.Amount
	TotalAmount   money.Amount
	Status        Status
	PaymentStatus PaymentStatus
	ConfirmedAt   time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
	List(ctx context.Context) ([]*Reservation, error)
}

type CreateParams struct {
	ID          ID
	Request     Request
	Nights      int
	BasePrice   money.Amount
	TotalAmount money.Amount
	CreatedAt   time.Time
}

// New builds a reservation in the initial pending/pending state.
func New(params CreateParams) (*Reservation, error) {
	if params.Request.TotalGuests() < 1 {
		return nil, ErrInvalidGuests
	}
	now := params.CreatedAt.UTC()
	addons := make(map[tariff.Category]int, len(params.Request.Addons))
	for cat, qty := range params.Request.Addons {
		if qty > 0 {
			addons[cat] = qty
		}
	}
	return &Reservation{
		ID:            params.ID,
		GuestName:     params.Request.GuestName,
		GuestPhone:    params.Request.GuestPhone,
		Stay:          params.Request.Stay(),
		Adults:        params.Request.Adults,
		Children:      params.Request.Children,
		Addons:        addons,
		Nights:        params.Nights,
		BasePrice:     params.BasePrice,
		TotalAmount:   params.TotalAmount,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

func (r *Reservation) TotalGuests() int {
	return r.Adults + r.Children
}

// allowedTransitions enumerates the status machine. Completed and cancelled
// are terminal.
var allowedTransitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func transitionAllowed(from, to Status) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition moves the reservation to next and applies the payment coupling
// policy. Anything outside the enumerated edges is rejected, never applied
// silently.
func (r *Reservation) Transition(next Status, now time.Time) error {
	if !transitionAllowed(r.Status, next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, r.Status, next)
	}
	r.Status = next
	r.UpdatedAt = now.UTC()
	switch next {
	case StatusConfirmed:
		// Confirmation implies at least a deposit was taken; an already
		// advanced payment status is left alone.
		if r.PaymentStatus == PaymentPending {
			r.PaymentStatus = PaymentPartial
		}
		r.ConfirmedAt = now.UTC()
	case StatusCompleted:
		r.PaymentStatus = PaymentCompleted
	case StatusCancelled:
		r.PaymentStatus = PaymentPending
	case StatusPending:
		// Re-opening leaves payment untouched. Not reachable through the
		// edges above; kept so the coupling policy is stated in full.
	}
	return nil
}

// SetPaymentStatus applies a direct administrative payment edit.
func (r *Reservation) SetPaymentStatus(next PaymentStatus, now time.Time) error {
	switch next {
	case PaymentPending, PaymentPartial, PaymentCompleted:
	default:
		return fmt.Errorf("reservation: unknown payment status %q", next)
	}
	r.PaymentStatus = next
	r.UpdatedAt = now.UTC()
	return nil
}

// Clone returns a deep copy so callers can apply a transition tentatively
// and only publish it after the persistence write succeeds.
func (r *Reservation) Clone() *Reservation {
	clone := *r
	clone.Addons = make(map[tariff.Category]int, len(r.Addons))
	for cat, qty := range r.Addons {
		clone.Addons[cat] = qty
	}
	return &clone
}
