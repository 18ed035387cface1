package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"farmstay/internal/domain/reservation"
	"farmstay/internal/domain/shared/money"
	"farmstay/internal/domain/tariff"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseRequest() reservation.Request {
	return reservation.Request{
		GuestName: "Hong Gildong",
		CheckIn:   date(2026, 9, 4),
		CheckOut:  date(2026, 9, 6),
		Adults:    15,
		Children:  2,
		Addons: map[tariff.Category]int{
			tariff.CategoryGrill: 1,
		},
	}
}

func TestComputeQuoteItemizesFullStay(t *testing.T) {
	// 2 nights, 17 guests against a base capacity of 15, one grill rental.
	quote, err := ComputeQuote(baseRequest(), tariff.Default())
	require.NoError(t, err)

	require.Equal(t, 2, quote.Nights)
	require.Len(t, quote.LineItems, 3)

	base := quote.LineItems[0]
	require.Equal(t, "base stay", base.Label)
	require.Equal(t, money.Amount(300000), base.Subtotal)

	extra := quote.LineItems[1]
	require.Equal(t, "extra guests", extra.Label)
	require.Equal(t, 4, extra.Quantity) // 2 guests x 2 nights
	require.Equal(t, money.Amount(40000), extra.Subtotal)

	grill := quote.LineItems[2]
	require.Equal(t, tariff.CategoryGrill, grill.Category)
	require.Equal(t, money.Amount(30000), grill.Subtotal)

	require.Equal(t, money.Amount(370000), quote.Total)
}

func TestComputeQuoteTotalIsSumOfSubtotals(t *testing.T) {
	req := baseRequest()
	req.Addons[tariff.CategoryBreakfast] = 10
	req.Addons[tariff.CategoryShuttle] = 2

	quote, err := ComputeQuote(req, tariff.Default())
	require.NoError(t, err)

	var sum money.Amount
	for _, item := range quote.LineItems {
		require.Equal(t, item.UnitPrice.Mul(int64(item.Quantity)), item.Subtotal)
		sum = sum.Add(item.Subtotal)
	}
	require.Equal(t, sum, quote.Total)
}

func TestComputeQuoteIsPure(t *testing.T) {
	req := baseRequest()
	trf := tariff.Default()
	first, err := ComputeQuote(req, trf)
	require.NoError(t, err)
	second, err := ComputeQuote(req, trf)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestComputeQuoteCapacityBoundary(t *testing.T) {
	trf := tariff.Default()

	req := baseRequest()
	req.Adults = 15
	req.Children = 0
	quote, err := ComputeQuote(req, trf)
	require.NoError(t, err)
	for _, item := range quote.LineItems {
		require.NotEqual(t, "extra guests", item.Label)
	}

	req.Children = 1
	quote, err = ComputeQuote(req, trf)
	require.NoError(t, err)
	require.Equal(t, "extra guests", quote.LineItems[1].Label)
	require.Equal(t, 2, quote.LineItems[1].Quantity) // 1 guest x 2 nights
}

func TestComputeQuoteFlatExtraGuestFee(t *testing.T) {
	trf := tariff.Default()
	trf.ExtraFeePerNight = false

	quote, err := ComputeQuote(baseRequest(), trf)
	require.NoError(t, err)
	extra := quote.LineItems[1]
	require.Equal(t, "extra guests", extra.Label)
	require.Equal(t, 2, extra.Quantity)
	require.Equal(t, money.Amount(20000), extra.Subtotal)
	require.Equal(t, money.Amount(350000), quote.Total)
}

func TestComputeQuoteSameDayStay(t *testing.T) {
	trf := tariff.Default()
	trf.AllowSameDay = true

	req := baseRequest()
	req.CheckOut = req.CheckIn

	quote, err := ComputeQuote(req, trf)
	require.NoError(t, err)
	require.Equal(t, 0, quote.Nights)
	// No nightly charges on a same-day stay; only the grill remains.
	require.Len(t, quote.LineItems, 1)
	require.Equal(t, tariff.CategoryGrill, quote.LineItems[0].Category)
	require.Equal(t, money.Amount(30000), quote.Total)
}

func TestComputeQuoteMissingDatesYieldsZeroQuote(t *testing.T) {
	req := baseRequest()
	req.CheckIn = time.Time{}
	req.CheckOut = time.Time{}

	quote, err := ComputeQuote(req, tariff.Default())
	require.NoError(t, err)
	require.Equal(t, Quote{}, quote)
}

func TestComputeQuoteUnknownCategoryFailsLoudly(t *testing.T) {
	req := baseRequest()
	req.Addons["jacuzzi"] = 1

	_, err := ComputeQuote(req, tariff.Default())
	require.ErrorIs(t, err, tariff.ErrUnknownCategory)
}

func TestComputeQuoteSetPricingUsesSelectedSets(t *testing.T) {
	// A meat set serves up to five guests, but the quantity a guest picks
	// is already a number of sets; the engine must not re-derive it.
	req := baseRequest()
	req.Addons[tariff.CategoryMeatSet] = 3

	quote, err := ComputeQuote(req, tariff.Default())
	require.NoError(t, err)

	var meat *LineItem
	for i := range quote.LineItems {
		if quote.LineItems[i].Category == tariff.CategoryMeatSet {
			meat = &quote.LineItems[i]
		}
	}
	require.NotNil(t, meat)
	require.Equal(t, 3, meat.Quantity)
	require.Equal(t, money.Amount(150000), meat.Subtotal)
}

func TestExtraGuests(t *testing.T) {
	require.Equal(t, 0, ExtraGuests(10, 15))
	require.Equal(t, 0, ExtraGuests(15, 15))
	require.Equal(t, 1, ExtraGuests(16, 15))
}
