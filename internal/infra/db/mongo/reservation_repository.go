package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainreservation "farmstay/internal/domain/reservation"
	"farmstay/internal/domain/shared/daterange"
	"farmstay/internal/domain/shared/money"
	"farmstay/internal/domain/tariff"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("reservations")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ID) (*domainreservation.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservation.ErrNotFound
		}
		return nil, err
	}
	return doc.toEntity(), nil
}

// Save upserts with a version filter so a stale writer fails instead of
// overwriting a newer state.
func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	update := bson.M{"$set": doc}
	opts := options.Update().SetUpsert(true)
	result, err := r.col.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

func (r *ReservationRepository) List(ctx context.Context) ([]*domainreservation.Reservation, error) {
	cursor, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"created_at": -1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domainreservation.Reservation
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toEntity())
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type reservationDocument struct {
	ID            string         `bson:"_id"`
	GuestName     string         `bson:"guest_name"`
	GuestPhone    string         `bson:"guest_phone"`
	CheckIn       int64          `bson:"check_in"`
	CheckOut      int64          `bson:"check_out"`
	Adults        int            `bson:"adults"`
	Children      int            `bson:"children"`
	Addons        map[string]int `bson:"addons"`
	Nights        int            `bson:"nights"`
	BasePrice     int64          `bson:"base_price"`
	TotalAmount   int64          `bson:"total_amount"`
	Status        string         `bson:"status"`
	PaymentStatus string         `bson:"payment_status"`
	ConfirmedAt   int64          `bson:"confirmed_at,omitempty"`
	CreatedAt     int64          `bson:"created_at"`
	UpdatedAt     int64          `bson:"updated_at"`
	Version       int64          `bson:"version"`
}

func newReservationDocument(res *domainreservation.Reservation) reservationDocument {
	addons := make(map[string]int, len(res.Addons))
	for cat, qty := range res.Addons {
		addons[string(cat)] = qty
	}
	doc := reservationDocument{
		ID:            string(res.ID),
		GuestName:     res.GuestName,
		GuestPhone:    res.GuestPhone,
		CheckIn:       res.Stay.CheckIn.UnixMilli(),
		CheckOut:      res.Stay.CheckOut.UnixMilli(),
		Adults:        res.Adults,
		Children:      res.Children,
		Addons:        addons,
		Nights:        res.Nights,
		BasePrice:     int64(res.BasePrice),
		TotalAmount:   int64(res.TotalAmount),
		Status:        string(res.Status),
		PaymentStatus: string(res.PaymentStatus),
		CreatedAt:     res.CreatedAt.UnixMilli(),
		UpdatedAt:     res.UpdatedAt.UnixMilli(),
		Version:       res.Version,
	}
	if !res.ConfirmedAt.IsZero() {
		doc.ConfirmedAt = res.ConfirmedAt.UnixMilli()
	}
	return doc
}

func (d reservationDocument) toEntity() *domainreservation.Reservation {
	addons := make(map[tariff.Category]int, len(d.Addons))
	for key, qty := range d.Addons {
		addons[tariff.Category(key)] = qty
	}
	res := &domainreservation.Reservation{
		ID:            domainreservation.ID(d.ID),
		GuestName:     d.GuestName,
		GuestPhone:    d.GuestPhone,
		Stay:          daterange.DateRange{CheckIn: timestampToTime(d.CheckIn), CheckOut: timestampToTime(d.CheckOut)},
		Adults:        d.Adults,
		Children:      d.Children,
		Addons:        addons,
		Nights:        d.Nights,
		BasePrice:     money.Amount(d.BasePrice),
		TotalAmount:   money.Amount(d.TotalAmount),
		Status:        domainreservation.Status(d.Status),
		PaymentStatus: domainreservation.PaymentStatus(d.PaymentStatus),
		CreatedAt:     timestampToTime(d.CreatedAt),
		UpdatedAt:     timestampToTime(d.UpdatedAt),
		Version:       d.Version,
	}
	if d.ConfirmedAt != 0 {
		res.ConfirmedAt = timestampToTime(d.ConfirmedAt)
	}
	return res
}

func timestampToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

var _ domainreservation.Repository = (*ReservationRepository)(nil)
