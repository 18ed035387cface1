package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainreservation "farmstay/internal/domain/reservation"
)

func seeded(t *testing.T) (*ReservationRepository, *domainreservation.Reservation) {
	t.Helper()
	repo := NewReservationRepository()
	res, err := domainreservation.New(domainreservation.CreateParams{
		ID: "res-1",
		Request: domainreservation.Request{
			GuestName: "Jang Wooyoung",
			CheckIn:   time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC),
			CheckOut:  time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC),
			Adults:    2,
		},
		Nights:      2,
		TotalAmount: 300000,
		CreatedAt:   time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), res))
	return repo, res
}

func TestByIDNotFound(t *testing.T) {
	repo := NewReservationRepository()
	_, err := repo.ByID(context.Background(), "missing")
	require.ErrorIs(t, err, domainreservation.ErrNotFound)
}

func TestSaveBumpsVersion(t *testing.T) {
	repo, res := seeded(t)
	require.Equal(t, int64(1), res.Version)
	require.NoError(t, repo.Save(context.Background(), res))
	require.Equal(t, int64(2), res.Version)
}

func TestStoredStateIsIsolatedFromCallers(t *testing.T) {
	repo, res := seeded(t)

	loaded, err := repo.ByID(context.Background(), res.ID)
	require.NoError(t, err)
	// Mutating a loaded copy must not leak into the store until Save.
	require.NoError(t, loaded.Transition(domainreservation.StatusConfirmed, time.Now()))

	stored, err := repo.ByID(context.Background(), res.ID)
	require.NoError(t, err)
	require.Equal(t, domainreservation.StatusPending, stored.Status)
}

func TestListSnapshot(t *testing.T) {
	repo, _ := seeded(t)
	items, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
}
