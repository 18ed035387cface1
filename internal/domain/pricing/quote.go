package pricing

import (
	"farmstay/internal/domain/reservation"
	"farmstay/internal/domain/shared/money"
	"farmstay/internal/domain/tariff"
)

// LineItem is one priced row of a quote.
// Subtotal always equals UnitPrice * Quantity.
type LineItem struct {
	Category  tariff.Category
	Label     string
	UnitPrice money.Amount
	Quantity  int
	Subtotal  money.Amount
}

// Quote is the itemized result of applying a tariff to a request. Total is
// derived from the line items and never computed separately.
type Quote struct {
	Nights    int
	LineItems []LineItem
	Total     money.Amount
}

// ExtraGuests resolves how many guests exceed the tariff's included capacity.
func ExtraGuests(totalGuests, baseCapacity int) int {
	extra := totalGuests - baseCapacity
	if extra < 0 {
		return 0
	}
	return extra
}

// ComputeQuote prices a request against a tariff. It is a pure function of
// its inputs: no clock reads, no I/O. Malformed dates are the validator's
// concern; when they are missing or inverted the engine degrades to a zero
// quote instead of guessing.
//
// Line order is fixed: base stay, extra-guest surcharge, then add-ons in
// category display order.
func ComputeQuote(req reservation.Request, trf tariff.Tariff) (Quote, error) {
	if !req.HasDates() || req.CheckOut.Before(req.CheckIn) {
		return Quote{}, nil
	}

	nights := req.Stay().Nights()
	quote := Quote{Nights: nights}

	if nights > 0 {
		quote.append(LineItem{
			Label:     "base stay",
			UnitPrice: trf.BasePricePerNight,
			Quantity:  nights,
			Subtotal:  trf.BasePricePerNight.Mul(int64(nights)),
		})
	}

	if extra := ExtraGuests(req.TotalGuests(), trf.BaseCapacity); extra > 0 {
		quantity := extra
		if trf.ExtraFeePerNight {
			// The surcharge scales with length of stay, so a zero-night
			// same-day booking carries none.
			quantity = extra * nights
		}
		if quantity > 0 {
			quote.append(LineItem{
				Label:     "extra guests",
				UnitPrice: trf.ExtraGuestFeePerNight,
				Quantity:  quantity,
				Subtotal:  trf.ExtraGuestFeePerNight.Mul(int64(quantity)),
			})
		}
	}

	for _, cat := range tariff.Categories() {
		qty := req.AddonQuantity(cat)
		if qty == 0 {
			continue
		}
		at, err := trf.Addon(cat)
		if err != nil {
			return Quote{}, err
		}
		quote.append(LineItem{
			Category:  cat,
			Label:     addonLabel(at, cat),
			UnitPrice: at.UnitPrice,
			Quantity:  qty,
			Subtotal:  at.UnitPrice.Mul(int64(qty)),
		})
	}

	// Selections outside the known category set indicate a tariff that is
	// missing configuration. Surface that instead of silently dropping money.
	for cat, qty := range req.Addons {
		if qty <= 0 {
			continue
		}
		if _, err := trf.Addon(cat); err != nil {
			return Quote{}, err
		}
	}

	return quote, nil
}

func (q *Quote) append(item LineItem) {
	q.LineItems = append(q.LineItems, item)
	q.Total = q.Total.Add(item.Subtotal)
}

func addonLabel(at tariff.AddonTariff, cat tariff.Category) string {
	if at.UnitLabel != "" {
		return at.UnitLabel
	}
	return string(cat)
}
