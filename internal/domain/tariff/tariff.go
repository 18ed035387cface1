package tariff

import (
	"errors"
	"fmt"

	"farmstay/internal/domain/shared/money"
)

var (
	ErrUnknownCategory = errors.New("tariff: unknown addon category")
	ErrInvalidTariff   = errors.New("tariff: invalid configuration")
)

// Category identifies an optional add-on service. Using a typed constant set
// instead of free-form keys keeps every calculator on the same vocabulary.
type Category string

const (
	CategoryGrill          Category = "grill"
	CategoryMeatSet        Category = "meat_set"
	CategoryFullSet        Category = "full_set"
	CategoryBreakfast      Category = "breakfast"
	CategoryFarmExperience Category = "farm_experience"
	CategoryBusCharter     Category = "bus_charter"
	CategoryShuttle        Category = "shuttle"
	CategoryCleaning       Category = "cleaning"
)

// Categories returns every known category in display order. Quote lines and
// validation messages follow this order so output stays deterministic.
func Categories() []Category {
	return []Category{
		CategoryGrill,
		CategoryMeatSet,
		CategoryFullSet,
		CategoryBreakfast,
		CategoryFarmExperience,
		CategoryBusCharter,
		CategoryShuttle,
		CategoryCleaning,
	}
}

// Unlimited marks a category with no quantity ceiling.
const Unlimited = 0

// AddonTariff prices one add-on category.
type AddonTariff struct {
	UnitPrice money.Amount
	UnitLabel string
	// MaxQuantity caps the selectable quantity; Unlimited disables the cap.
	MaxQuantity int
	// UnitsPerPurchase describes set-based pricing: one purchased unit covers
	// up to this many guests (e.g. a meat set serves 5). Informational for
	// the UI; the quantity a guest selects is already a number of sets.
	UnitsPerPurchase int
}

// Tariff is the immutable pricing table a quote is computed against.
type Tariff struct {
	BaseCapacity          int
	BasePricePerNight     money.Amount
	ExtraGuestFeePerNight money.Amount
	Addons                map[Category]AddonTariff

	// ExtraFeePerNight selects whether the extra-guest surcharge multiplies
	// by nights or is charged once per stay. Historical data contains both
	// readings; per-night is the default.
	ExtraFeePerNight bool
	// AllowSameDay permits zero-night stays (checkIn == checkOut).
	AllowSameDay bool
	// RequireGrillForMeals rejects prepared-meal selections without a grill
	// rental. Site policy, not a universal rule.
	RequireGrillForMeals bool
	// MinNights/MaxNights bound the stay length when positive.
	MinNights int
	MaxNights int
}

// Addon resolves a category tariff, failing loudly on unknown categories:
// a selection referencing a category the table does not carry is a defect
// in configuration, not user input.
func (t Tariff) Addon(cat Category) (AddonTariff, error) {
	at, ok := t.Addons[cat]
	if !ok {
		return AddonTariff{}, fmt.Errorf("%w: %q", ErrUnknownCategory, cat)
	}
	return at, nil
}

// MealCategories lists the prepared-meal categories subject to the grill
// dependency rule.
func MealCategories() []Category {
	return []Category{CategoryMeatSet, CategoryFullSet}
}

// GuestBoundCategories lists per-person categories whose quantity may not
// exceed the party size.
func GuestBoundCategories() []Category {
	return []Category{CategoryBreakfast}
}

func (t Tariff) Validate() error {
	if t.BaseCapacity <= 0 {
		return fmt.Errorf("%w: base capacity must be positive", ErrInvalidTariff)
	}
	if t.BasePricePerNight.IsNegative() || t.ExtraGuestFeePerNight.IsNegative() {
		return fmt.Errorf("%w: prices cannot be negative", ErrInvalidTariff)
	}
	if t.MinNights < 0 || t.MaxNights < 0 {
		return fmt.Errorf("%w: stay bounds cannot be negative", ErrInvalidTariff)
	}
	if t.MinNights > 0 && t.MaxNights > 0 && t.MinNights > t.MaxNights {
		return fmt.Errorf("%w: min nights exceeds max nights", ErrInvalidTariff)
	}
	for cat, at := range t.Addons {
		if at.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: %s unit price cannot be negative", ErrInvalidTariff, cat)
		}
		if at.MaxQuantity < 0 || at.UnitsPerPurchase < 0 {
			return fmt.Errorf("%w: %s limits cannot be negative", ErrInvalidTariff, cat)
		}
	}
	return nil
}

// Default returns the standard farmstay pricing table. Deployments override
// it through a fixture file; tests and the dev server rely on these values.
func Default() Tariff {
	return Tariff{
		BaseCapacity:          15,
		BasePricePerNight:     150000,
		ExtraGuestFeePerNight: 10000,
		ExtraFeePerNight:      true,
		AllowSameDay:          false,
		RequireGrillForMeals:  true,
		MinNights:             0,
		MaxNights:             0,
		Addons: map[Category]AddonTariff{
			CategoryGrill:          {UnitPrice: 30000, UnitLabel: "grill rental", MaxQuantity: 3},
			CategoryMeatSet:        {UnitPrice: 50000, UnitLabel: "meat set", UnitsPerPurchase: 5},
			CategoryFullSet:        {UnitPrice: 80000, UnitLabel: "meat & meal set", UnitsPerPurchase: 5},
			CategoryBreakfast:      {UnitPrice: 8000, UnitLabel: "breakfast"},
			CategoryFarmExperience: {UnitPrice: 15000, UnitLabel: "farm experience"},
			CategoryBusCharter:     {UnitPrice: 200000, UnitLabel: "bus charter", MaxQuantity: 2},
			CategoryShuttle:        {UnitPrice: 20000, UnitLabel: "shuttle ride", MaxQuantity: 4},
			CategoryCleaning:       {UnitPrice: 50000, UnitLabel: "cleaning fee", MaxQuantity: 1},
		},
	}
}
