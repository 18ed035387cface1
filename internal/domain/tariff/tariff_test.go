package tariff

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultTariffIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestAddonUnknownCategory(t *testing.T) {
	_, err := Default().Addon(Category("sauna"))
	require.ErrorIs(t, err, ErrUnknownCategory)
}

func TestAddonKnownCategory(t *testing.T) {
	at, err := Default().Addon(CategoryGrill)
	require.NoError(t, err)
	require.Equal(t, 3, at.MaxQuantity)
}

func TestValidateRejectsBrokenTables(t *testing.T) {
	trf := Default()
	trf.BaseCapacity = 0
	require.ErrorIs(t, trf.Validate(), ErrInvalidTariff)

	trf = Default()
	trf.BasePricePerNight = -1
	require.ErrorIs(t, trf.Validate(), ErrInvalidTariff)

	trf = Default()
	trf.MinNights = 5
	trf.MaxNights = 2
	require.ErrorIs(t, trf.Validate(), ErrInvalidTariff)
}

func TestCategoriesCoverConfiguredAddons(t *testing.T) {
	trf := Default()
	seen := make(map[Category]bool)
	for _, cat := range Categories() {
		seen[cat] = true
	}
	for cat := range trf.Addons {
		require.True(t, seen[cat], "category %s missing from display order", cat)
	}
}
