package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainreservation "farmstay/internal/domain/reservation"
	"farmstay/internal/domain/shared/money"
	"farmstay/internal/domain/tariff"
	"farmstay/internal/infra/storage/memory"
)

type capturedEvent struct {
	Topic   string
	Key     string
	Payload []byte
}

type stubPublisher struct {
	events []capturedEvent
	err    error
}

func (p *stubPublisher) Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error {
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, capturedEvent{Topic: topic, Key: key, Payload: payload})
	return nil
}

type failingRepository struct {
	domainreservation.Repository
}

func (failingRepository) Save(ctx context.Context, r *domainreservation.Reservation) error {
	return errors.New("storage offline")
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func cleanRequest() domainreservation.Request {
	return domainreservation.Request{
		GuestName:  "Park Minsu",
		GuestPhone: "010-1234-5678",
		CheckIn:    date(2026, 9, 4),
		CheckOut:   date(2026, 9, 6),
		Adults:     16,
		Children:   1,
		Addons: map[tariff.Category]int{
			tariff.CategoryGrill: 1,
		},
	}
}

func newService(repo domainreservation.Repository, pub EventPublisher) *Service {
	return &Service{
		Reservations: repo,
		Tariff:       tariff.Default(),
		Events:       pub,
		EventsTopic:  "reservation.events",
		Now:          func() time.Time { return date(2026, 8, 28) },
	}
}

func TestQuoteReturnsPricedResult(t *testing.T) {
	svc := newService(memory.NewReservationRepository(), nil)
	result, err := svc.Quote(context.Background(), cleanRequest())
	require.NoError(t, err)
	require.Empty(t, result.Violations)
	require.Equal(t, money.Amount(370000), result.Quote.Total)
}

func TestQuoteReturnsViolationsAsData(t *testing.T) {
	svc := newService(memory.NewReservationRepository(), nil)
	req := cleanRequest()
	req.Addons[tariff.CategoryGrill] = 99

	result, err := svc.Quote(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Violations)
	require.Zero(t, result.Quote.Total)
}

func TestSubmitCreatesPendingReservation(t *testing.T) {
	repo := memory.NewReservationRepository()
	pub := &stubPublisher{}
	svc := newService(repo, pub)

	result, err := svc.Submit(context.Background(), cleanRequest())
	require.NoError(t, err)
	require.Empty(t, result.Violations)
	require.NotNil(t, result.Reservation)

	stored, err := repo.ByID(context.Background(), result.Reservation.ID)
	require.NoError(t, err)
	require.Equal(t, domainreservation.StatusPending, stored.Status)
	require.Equal(t, domainreservation.PaymentPending, stored.PaymentStatus)
	require.Equal(t, 2, stored.Nights)
	require.Equal(t, money.Amount(300000), stored.BasePrice)
	require.Equal(t, money.Amount(370000), stored.TotalAmount)

	require.Len(t, pub.events, 1)
	require.Equal(t, "reservation.events", pub.events[0].Topic)
	var event ReservationEvent
	require.NoError(t, json.Unmarshal(pub.events[0].Payload, &event))
	require.Equal(t, "reservation_created", event.Type)
	require.Equal(t, string(result.Reservation.ID), event.ReservationID)
}

func TestSubmitBlocksOnViolations(t *testing.T) {
	repo := memory.NewReservationRepository()
	pub := &stubPublisher{}
	svc := newService(repo, pub)

	req := cleanRequest()
	req.CheckOut = req.CheckIn.AddDate(0, 0, -1)

	result, err := svc.Submit(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Violations)
	require.Nil(t, result.Reservation)

	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, items)
	require.Empty(t, pub.events)
}

func TestSubmitPropagatesSaveFailure(t *testing.T) {
	pub := &stubPublisher{}
	svc := newService(failingRepository{}, pub)

	_, err := svc.Submit(context.Background(), cleanRequest())
	require.Error(t, err)
	require.Empty(t, pub.events)
}

func TestSubmitSurvivesBrokerOutage(t *testing.T) {
	repo := memory.NewReservationRepository()
	svc := newService(repo, &stubPublisher{err: errors.New("broker down")})

	result, err := svc.Submit(context.Background(), cleanRequest())
	require.NoError(t, err)
	require.NotNil(t, result.Reservation)
}
