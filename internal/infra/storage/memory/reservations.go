package memory

import (
	"context"
	"sync"

	domainreservation "farmstay/internal/domain/reservation"
)

// ReservationRepository stores reservations in memory. Entries are cloned on
// the way in and out so callers can stage transitions without touching the
// stored state until Save succeeds.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[domainreservation.ID]*domainreservation.Reservation
}

// NewReservationRepository builds an empty repository.
func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[domainreservation.ID]*domainreservation.Reservation)}
}

// ByID fetches a reservation or ErrNotFound.
func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrNotFound
	}
	return res.Clone(), nil
}

// Save stores the current reservation state. Last write wins; concurrent
// admin edits are rare enough that the external poll loop resolves them.
func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := res.Clone()
	stored.Version = res.Version + 1
	r.items[stored.ID] = stored
	res.Version = stored.Version
	return nil
}

// List returns a snapshot of every reservation.
func (r *ReservationRepository) List(ctx context.Context) ([]*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domainreservation.Reservation, 0, len(r.items))
	for _, res := range r.items {
		out = append(out, res.Clone())
	}
	return out, nil
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
