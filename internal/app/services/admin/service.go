package admin

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sort"
	"time"

	"farmstay/internal/app/services/booking"
	domainreservation "farmstay/internal/domain/reservation"
	"farmstay/internal/domain/stats"
	"farmstay/internal/domain/tariff"
)

// Service backs the administrative interface: reservation browsing, status
// transitions and dashboard aggregations.
type Service struct {
	Reservations domainreservation.Repository
	Tariff       tariff.Tariff
	Events       booking.EventPublisher
	EventsTopic  string
	Logger       *slog.Logger
	Now          func() time.Time
}

// Dashboard is the read-side summary for the admin landing page.
type Dashboard struct {
	OccupancyRate int
	RevenueToday  int64
	RevenueWeek   int64
	RevenueMonth  int64
	AverageTicket int64
	LeadTimes     stats.LeadTimeBuckets
}

// List returns every reservation, newest first.
func (s *Service) List(ctx context.Context) ([]*domainreservation.Reservation, error) {
	if s.Reservations == nil {
		return nil, errors.New("admin: reservation repository required")
	}
	items, err := s.Reservations.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// ChangeStatus applies a status transition with its payment coupling. The
// transition runs on a copy and the stored entity only advances when the
// save succeeds, so a failed write leaves no phantom state behind.
func (s *Service) ChangeStatus(ctx context.Context, id domainreservation.ID, next domainreservation.Status) (*domainreservation.Reservation, error) {
	if s.Reservations == nil {
		return nil, errors.New("admin: reservation repository required")
	}
	current, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := current.Clone()
	if err := updated.Transition(next, s.now()); err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, updated); err != nil {
		return nil, err
	}
	s.publish(ctx, "reservation_status_changed", updated)
	if s.Logger != nil {
		s.Logger.Info("reservation status changed", "reservation_id", id, "from", current.Status, "to", updated.Status, "payment_status", updated.PaymentStatus)
	}
	return updated, nil
}

// SetPaymentStatus applies a direct payment-status edit, uncoupled from the
// lifecycle machine.
func (s *Service) SetPaymentStatus(ctx context.Context, id domainreservation.ID, next domainreservation.PaymentStatus) (*domainreservation.Reservation, error) {
	if s.Reservations == nil {
		return nil, errors.New("admin: reservation repository required")
	}
	current, err := s.Reservations.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := current.Clone()
	if err := updated.SetPaymentStatus(next, s.now()); err != nil {
		return nil, err
	}
	if err := s.Reservations.Save(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// DashboardStats folds the reservation collection into the admin dashboard
// numbers using the same day conventions as the quote engine.
func (s *Service) DashboardStats(ctx context.Context) (Dashboard, error) {
	if s.Reservations == nil {
		return Dashboard{}, errors.New("admin: reservation repository required")
	}
	items, err := s.Reservations.List(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return Dashboard{
		OccupancyRate: stats.OccupancyRate(items, s.Tariff.BaseCapacity, today),
		RevenueToday:  int64(stats.RevenueForWindow(items, today, today.AddDate(0, 0, 1))),
		RevenueWeek:   int64(stats.RevenueForWindow(items, today.AddDate(0, 0, -6), today.AddDate(0, 0, 1))),
		RevenueMonth:  int64(stats.RevenueForWindow(items, today.AddDate(0, 0, -29), today.AddDate(0, 0, 1))),
		AverageTicket: int64(stats.AverageTicket(items)),
		LeadTimes:     stats.LeadTimes(items),
	}, nil
}

func (s *Service) publish(ctx context.Context, eventType string, res *domainreservation.Reservation) {
	if s.Events == nil || s.EventsTopic == "" {
		return
	}
	event := booking.ReservationEvent{
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
