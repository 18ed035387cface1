package reservation

import (
	"fmt"

	"farmstay/internal/domain/tariff"
)

// Validate checks a request against the tariff's business rules and returns
// every applicable violation as a human-readable message. An empty slice
// means the request may be priced and submitted. Rules are evaluated
// independently so the UI can surface all problems at once; stay-length
// rules are skipped when the dates themselves are unusable.
func Validate(req Request, trf tariff.Tariff) []string {
	var violations []string

	datesUsable := false
	switch {
	case !req.HasDates():
		violations = append(violations, "check-in and check-out dates are required")
	case req.CheckOut.Before(req.CheckIn):
		violations = append(violations, "check-out must be after check-in")
	case req.CheckOut.Equal(req.CheckIn) && !trf.AllowSameDay:
		violations = append(violations, "same-day stays are not available")
	default:
		datesUsable = true
	}

	if datesUsable {
		nights := req.Stay().Nights()
		if trf.MinNights > 0 && nights < trf.MinNights {
			violations = append(violations, fmt.Sprintf("stay must be at least %d nights", trf.MinNights))
		}
		if trf.MaxNights > 0 && nights > trf.MaxNights {
			violations = append(violations, fmt.Sprintf("stay cannot exceed %d nights", trf.MaxNights))
		}
	}

	if req.TotalGuests() < 1 {
		violations = append(violations, "at least one guest is required")
	}

	for _, cat := range tariff.Categories() {
		at, ok := trf.Addons[cat]
		if !ok {
			continue
		}
		qty := req.AddonQuantity(cat)
		if at.MaxQuantity != tariff.Unlimited && qty > at.MaxQuantity {
			violations = append(violations, fmt.Sprintf("%s is limited to %d per reservation", label(at, cat), at.MaxQuantity))
		}
	}

	if trf.RequireGrillForMeals && req.AddonQuantity(tariff.CategoryGrill) == 0 {
		for _, cat := range tariff.MealCategories() {
			if req.AddonQuantity(cat) > 0 {
				violations = append(violations, "prepared meal sets require a grill rental")
				break
			}
		}
	}

	for _, cat := range tariff.GuestBoundCategories() {
		at, ok := trf.Addons[cat]
		if !ok {
			continue
		}
		if qty := req.AddonQuantity(cat); qty > req.TotalGuests() {
			violations = append(violations, fmt.Sprintf("%s quantity cannot exceed the number of guests", label(at, cat)))
		}
	}

	return violations
}

func label(at tariff.AddonTariff, cat tariff.Category) string {
	if at.UnitLabel != "" {
		return at.UnitLabel
	}
	return string(cat)
}
