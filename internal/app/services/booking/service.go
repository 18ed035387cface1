package booking

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainpricing "farmstay/internal/domain/pricing"
	domainreservation "farmstay/internal/domain/reservation"
	"farmstay/internal/domain/tariff"
)

// EventPublisher pushes reservation lifecycle events to the broker.
// Publishing is best effort: the persisted reservation is the source of
// truth and a broker outage must never fail a booking.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error
}

// Service runs the guest-facing booking flow: validate, price, submit.
type Service struct {
	Reservations domainreservation.Repository
	Tariff       tariff.Tariff
	Events       EventPublisher
	EventsTopic  string
	Logger       *slog.Logger
	Now          func() time.Time
}

// QuoteResult carries either a priced quote or the violations that block it.
type QuoteResult struct {
	Violations []string
	Quote      domainpricing.Quote
}

// SubmitResult mirrors QuoteResult for the submission path.
type SubmitResult struct {
	Violations  []string
	Reservation *domainreservation.Reservation
}

// Quote validates the request and, when clean, prices it. Violations are
// data for the caller to display, never an error; errors are reserved for
// configuration defects such as selections outside the tariff.
func (s *Service) Quote(ctx context.Context, req domainreservation.Request) (QuoteResult, error) {
	if violations := domainreservation.Validate(req, s.Tariff); len(violations) > 0 {
		return QuoteResult{Violations: violations}, nil
	}
	quote, err := domainpricing.ComputeQuote(req, s.Tariff)
	if err != nil {
		return QuoteResult{}, err
	}
	return QuoteResult{Quote: quote}, nil
}

// Submit turns a clean request into a persisted pending/pending reservation
// and announces it on the event topic.
func (s *Service) Submit(ctx context.Context, req domainreservation.Request) (SubmitResult, error) {
	if s.Reservations == nil {
		return SubmitResult{}, errors.New("booking: reservation repository required")
	}
	if violations := domainreservation.Validate(req, s.Tariff); len(violations) > 0 {
		return SubmitResult{Violations: violations}, nil
	}
	quote, err := domainpricing.ComputeQuote(req, s.Tariff)
	if err != nil {
		return SubmitResult{}, err
	}

	now := s.now()
	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:          domainreservation.ID(uuid.NewString()),
		Request:     req,
		Nights:      quote.Nights,
		BasePrice:   s.Tariff.BasePricePerNight.Mul(int64(quote.Nights)),
		TotalAmount: quote.Total,
		CreatedAt:   now,
	})
	if err != nil {
		return SubmitResult{}, err
	}
	if err := s.Reservations.Save(ctx, res); err != nil {
		return SubmitResult{}, err
	}
	s.publish(ctx, "reservation_created", res)
	if s.Logger != nil {
		s.Logger.Info("reservation submitted", "reservation_id", res.ID, "nights", res.Nights, "total", res.TotalAmount)
	}
	return SubmitResult{Reservation: res}, nil
}

// ReservationEvent is the wire shape published to the broker.
type ReservationEvent struct {
	Type          string    `json:"type"`
	ReservationID string    `json:"reservation_id"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	TotalAmount   int64     `json:"total_amount"`
	At            time.Time `json:"at"`
}

func (s *Service) publish(ctx context.Context, eventType string, res *domainreservation.Reservation) {
	if s.Events == nil || s.EventsTopic == "" {
		return
	}
	event := ReservationEvent{
		Type:          eventType,
		ReservationID: string(res.ID),
		Status:        string(res.Status),
		PaymentStatus: string(res.PaymentStatus),
		TotalAmount:   int64(res.TotalAmount),
		At:            s.now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return
	}
	if err := s.Events.Publish(ctx, s.EventsTopic, string(res.ID), payload, nil); err != nil && s.Logger != nil {
		s.Logger.Warn("reservation event publish failed", "reservation_id", res.ID, "type", eventType, "error", err)
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
