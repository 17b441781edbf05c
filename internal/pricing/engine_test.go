// internal/pricing/engine_test.go
package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testArea(id string, base, color, layer, setup float64) Area {
	return Area{
		ID:         id,
		AreaType:   "front",
		Name:       id,
		BasePrice:  base,
		ColorPrice: color,
		LayerPrice: layer,
		SetupFee:   setup,
		Currency:   "USD",
		MaxColors:  8,
	}
}

func TestCalculateAreaWithoutMetadata(t *testing.T) {
	area := testArea("front", 2.50, 0.75, 1.25, 5.00)
	sub := Submission{AreaID: "front", Colors: 2, Layers: 1}

	row := CalculateArea(sub, area, 1, 1.0)

	assert.Equal(t, 2.50, row.Base)
	assert.Equal(t, 1.50, row.ColorCost)
	assert.Equal(t, 0.0, row.LayerCost)
	assert.Equal(t, 5.00, row.SetupFee)
	assert.Equal(t, 9.00, row.Subtotal)
	assert.Empty(t, row.AdjustmentCode)
}

func TestCalculateAreaLowDPISurcharge(t *testing.T) {
	area := testArea("front", 2.50, 0.75, 1.25, 5.00)
	sub := Submission{
		AreaID:   "front",
		Colors:   1,
		Layers:   1,
		FileMeta: &FileMetadata{DPI: floatPtr(100)},
	}

	row := CalculateArea(sub, area, 1, 1.0)

	assert.Equal(t, 3.00, row.Base)
	assert.Equal(t, 6.50, row.SetupFee)
	assert.Equal(t, "low_dpi", row.AdjustmentCode)
	assert.NotEmpty(t, row.Adjustment)
}

func TestCalculateAreaLayerPricing(t *testing.T) {
	area := testArea("front", 2.00, 0.50, 1.25, 0)

	single := CalculateArea(Submission{AreaID: "front", Colors: 1, Layers: 1}, area, 1, 1.0)
	assert.Equal(t, 0.0, single.LayerCost)

	layered := CalculateArea(Submission{AreaID: "front", Colors: 1, Layers: 3}, area, 1, 1.0)
	assert.Equal(t, 2.50, layered.LayerCost)
}

func TestCalculateAreaSetupFeeNotMultipliedByQuantity(t *testing.T) {
	area := testArea("front", 2.00, 0, 0, 5.00)
	sub := Submission{AreaID: "front", Colors: 1, Layers: 1}

	row := CalculateArea(sub, area, 100, 1.0)

	assert.Equal(t, 5.00, row.SetupFee)
	assert.Equal(t, 205.00, row.Subtotal)
}

func TestCalculateSingleAreaEndToEnd(t *testing.T) {
	areas := []Area{testArea("front", 2.50, 0.75, 1.25, 5.00)}
	subs := []Submission{{AreaID: "front", Colors: 2, Layers: 2}}

	calc, err := Calculate(subs, areas, nil, 10)
	require.NoError(t, err)

	require.Len(t, calc.Areas, 1)
	row := calc.Areas[0]
	assert.Equal(t, 2.50, row.Base)
	assert.Equal(t, 1.50, row.ColorCost)
	assert.Equal(t, 1.25, row.LayerCost)
	assert.Equal(t, 5.00, row.SetupFee)
	assert.Equal(t, 57.50, row.Subtotal)
	assert.False(t, row.IsGroupCharge)

	assert.Equal(t, 52.50, calc.Subtotal)
	assert.Equal(t, 5.00, calc.SetupFees)
	assert.Equal(t, 57.50, calc.Total)
	assert.Equal(t, "USD", calc.Currency)
	assert.Nil(t, calc.Savings)
	assert.Empty(t, calc.GroupCharges)
}

func TestCalculateSingleChargeGroup(t *testing.T) {
	areas := []Area{
		testArea("front", 3.00, 0, 0, 0),
		testArea("back", 3.00, 0, 0, 0),
	}
	groups := []Group{{
		ID:         "combo",
		Name:       "Front and Back Combo",
		Strategy:   StrategySingleCharge,
		GroupPrice: intPtr(500),
		Currency:   "USD",
		AreaIDs:    []string{"front", "back"},
	}}
	subs := []Submission{
		{AreaID: "front", Colors: 1, Layers: 1},
		{AreaID: "back", Colors: 1, Layers: 1},
	}

	calc, err := Calculate(subs, areas, groups, 1)
	require.NoError(t, err)

	require.Len(t, calc.GroupCharges, 1)
	charge := calc.GroupCharges[0]
	assert.Equal(t, "combo", charge.GroupID)
	assert.Equal(t, 5.00, charge.Price)
	assert.ElementsMatch(t, []string{"front", "back"}, charge.AreaIDs)

	require.Len(t, calc.Areas, 2)
	for _, row := range calc.Areas {
		assert.True(t, row.IsGroupCharge)
		assert.Equal(t, "combo", row.GroupID)
		assert.Equal(t, 0.0, row.Base)
		assert.Equal(t, 0.0, row.ColorCost)
		assert.Equal(t, 0.0, row.LayerCost)
		assert.Equal(t, 0.0, row.SetupFee)
		assert.Equal(t, 0.0, row.Subtotal)
	}

	assert.Equal(t, 5.00, calc.Subtotal)
	assert.Equal(t, 0.0, calc.SetupFees)
	assert.Equal(t, 5.00, calc.Total)
	require.NotNil(t, calc.Savings)
	assert.Equal(t, 1.00, *calc.Savings)
}

func TestCalculateSingleChargeScalesWithQuantity(t *testing.T) {
	areas := []Area{
		testArea("front", 3.00, 0, 0, 0),
		testArea("back", 3.00, 0, 0, 0),
	}
	groups := []Group{{
		ID:         "combo",
		Strategy:   StrategySingleCharge,
		GroupPrice: intPtr(500),
		Currency:   "USD",
		AreaIDs:    []string{"front", "back"},
	}}
	subs := []Submission{
		{AreaID: "front", Colors: 1, Layers: 1},
		{AreaID: "back", Colors: 1, Layers: 1},
	}

	calc, err := Calculate(subs, areas, groups, 2)
	require.NoError(t, err)

	require.Len(t, calc.GroupCharges, 1)
	assert.Equal(t, 10.00, calc.GroupCharges[0].Price)
	assert.Equal(t, 10.00, calc.Total)
	require.NotNil(t, calc.Savings)
	assert.Equal(t, 2.00, *calc.Savings)
}

func TestCalculateSavingsOmittedWhenBundleCostsMore(t *testing.T) {
	areas := []Area{
		testArea("front", 3.00, 0, 0, 0),
		testArea("back", 3.00, 0, 0, 0),
	}
	subs := []Submission{
		{AreaID: "front", Colors: 1, Layers: 1},
		{AreaID: "back", Colors: 1, Layers: 1},
	}

	// Bundle priced above the individual total.
	groups := []Group{{
		ID:         "combo",
		Strategy:   StrategySingleCharge,
		GroupPrice: intPtr(700),
		Currency:   "USD",
		AreaIDs:    []string{"front", "back"},
	}}
	calc, err := Calculate(subs, areas, groups, 1)
	require.NoError(t, err)
	assert.Nil(t, calc.Savings)

	// Bundle priced exactly at the individual total.
	groups[0].GroupPrice = intPtr(600)
	calc, err = Calculate(subs, areas, groups, 1)
	require.NoError(t, err)
	assert.Nil(t, calc.Savings)
}

func TestCalculateSavingsOmittedForMixedCart(t *testing.T) {
	areas := []Area{
		testArea("front", 3.00, 0, 0, 0),
		testArea("back", 3.00, 0, 0, 0),
		testArea("pocket", 4.00, 0, 0, 2.00),
	}
	groups := []Group{{
		ID:         "combo",
		Strategy:   StrategySingleCharge,
		GroupPrice: intPtr(500),
		Currency:   "USD",
		AreaIDs:    []string{"front", "back"},
	}}
	subs := []Submission{
		{AreaID: "front", Colors: 1, Layers: 1},
		{AreaID: "back", Colors: 1, Layers: 1},
		{AreaID: "pocket", Colors: 1, Layers: 1},
	}

	calc, err := Calculate(subs, areas, groups, 1)
	require.NoError(t, err)

	// 5.00 bundle + 4.00 pocket + 2.00 setup; the bundle members alone
	// would have cost 6.00, which does not beat the cart total.
	assert.Equal(t, 9.00, calc.Subtotal)
	assert.Equal(t, 2.00, calc.SetupFees)
	assert.Equal(t, 11.00, calc.Total)
	assert.Nil(t, calc.Savings)
}

func TestCalculateTieredDiscounts(t *testing.T) {
	areas := []Area{
		testArea("a1", 2.00, 0, 0, 1.00),
		testArea("a2", 2.00, 0, 0, 1.00),
		testArea("a3", 2.00, 0, 0, 1.00),
		testArea("a4", 2.00, 0, 0, 1.00),
	}
	groups := []Group{{
		ID:       "multi",
		Strategy: StrategyTiered,
		Currency: "USD",
		AreaIDs:  []string{"a1", "a2", "a3", "a4"},
	}}

	tests := []struct {
		name     string
		areaIDs  []string
		wantBase float64
	}{
		{"one area full price", []string{"a1"}, 2.00},
		{"three areas fifteen percent off", []string{"a1", "a2", "a3"}, 1.70},
		{"four areas thirty percent off", []string{"a1", "a2", "a3", "a4"}, 1.40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := make([]Submission, 0, len(tt.areaIDs))
			for _, id := range tt.areaIDs {
				subs = append(subs, Submission{AreaID: id, Colors: 1, Layers: 1})
			}

			calc, err := Calculate(subs, areas, groups, 1)
			require.NoError(t, err)

			require.Len(t, calc.Areas, len(tt.areaIDs))
			for _, row := range calc.Areas {
				assert.Equal(t, tt.wantBase, row.Base)
				// The tier discount never touches setup fees.
				assert.Equal(t, 1.00, row.SetupFee)
				assert.Equal(t, "multi", row.GroupID)
				assert.False(t, row.IsGroupCharge)
			}
		})
	}
}

func TestCalculatePerAreaGroupChargesIndividually(t *testing.T) {
	areas := []Area{
		testArea("front", 2.00, 0, 0, 1.00),
		testArea("back", 3.00, 0, 0, 1.00),
	}
	groups := []Group{{
		ID:       "duo",
		Name:     "Duo",
		Strategy: StrategyPerArea,
		Currency: "USD",
		AreaIDs:  []string{"front", "back"},
	}}
	subs := []Submission{
		{AreaID: "front", Colors: 1, Layers: 1},
		{AreaID: "back", Colors: 1, Layers: 1},
	}

	calc, err := Calculate(subs, areas, groups, 1)
	require.NoError(t, err)

	require.Len(t, calc.Areas, 2)
	assert.Equal(t, 2.00, calc.Areas[0].Base)
	assert.Equal(t, 3.00, calc.Areas[1].Base)
	for _, row := range calc.Areas {
		assert.Equal(t, "duo", row.GroupID)
		assert.False(t, row.IsGroupCharge)
	}
	assert.Equal(t, 5.00, calc.Subtotal)
	assert.Equal(t, 2.00, calc.SetupFees)
	assert.Equal(t, 7.00, calc.Total)
	assert.Empty(t, calc.GroupCharges)
}

func TestCalculateOrdersGroupedRowsBeforeUngrouped(t *testing.T) {
	areas := []Area{
		testArea("front", 1.00, 0, 0, 0),
		testArea("back", 1.00, 0, 0, 0),
		testArea("pocket", 1.00, 0, 0, 0),
	}
	groups := []Group{
		{ID: "g1", Strategy: StrategyPerArea, Currency: "USD", AreaIDs: []string{"front"}},
		{ID: "g2", Strategy: StrategyPerArea, Currency: "USD", AreaIDs: []string{"back"}},
	}
	subs := []Submission{
		{AreaID: "pocket", Colors: 1, Layers: 1},
		{AreaID: "back", Colors: 1, Layers: 1},
		{AreaID: "front", Colors: 1, Layers: 1},
	}

	calc, err := Calculate(subs, areas, groups, 1)
	require.NoError(t, err)

	require.Len(t, calc.Areas, 3)
	assert.Equal(t, "front", calc.Areas[0].AreaID)
	assert.Equal(t, "back", calc.Areas[1].AreaID)
	assert.Equal(t, "pocket", calc.Areas[2].AreaID)
}

func TestCalculateIdempotent(t *testing.T) {
	areas := []Area{
		testArea("front", 2.50, 0.75, 1.25, 5.00),
		testArea("back", 3.00, 0.50, 1.00, 4.00),
	}
	groups := []Group{{
		ID:         "combo",
		Strategy:   StrategySingleCharge,
		GroupPrice: intPtr(800),
		Currency:   "USD",
		AreaIDs:    []string{"back"},
	}}
	subs := []Submission{
		{AreaID: "front", Colors: 3, Layers: 2, FileMeta: &FileMetadata{DPI: floatPtr(120)}},
		{AreaID: "back", Colors: 1, Layers: 1},
	}

	first, err := Calculate(subs, areas, groups, 5)
	require.NoError(t, err)
	second, err := Calculate(subs, areas, groups, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCalculateInvalidQuantity(t *testing.T) {
	areas := []Area{testArea("front", 2.00, 0, 0, 0)}
	subs := []Submission{{AreaID: "front", Colors: 1, Layers: 1}}

	for _, qty := range []int{0, -3} {
		_, err := Calculate(subs, areas, nil, qty)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestCalculateUnknownArea(t *testing.T) {
	areas := []Area{testArea("front", 2.00, 0, 0, 0)}
	subs := []Submission{{AreaID: "hood", Colors: 1, Layers: 1}}

	_, err := Calculate(subs, areas, nil, 1)
	assert.ErrorIs(t, err, ErrUnknownArea)
	assert.Contains(t, err.Error(), "hood")
}

func TestCalculateCurrencyMismatch(t *testing.T) {
	eur := testArea("back", 3.00, 0, 0, 0)
	eur.Currency = "EUR"
	areas := []Area{testArea("front", 2.00, 0, 0, 0), eur}
	subs := []Submission{
		{AreaID: "front", Colors: 1, Layers: 1},
		{AreaID: "back", Colors: 1, Layers: 1},
	}

	_, err := Calculate(subs, areas, nil, 1)
	assert.ErrorIs(t, err, ErrCurrencyMismatch)
}

func TestCalculateIgnoresCurrencyOfUnusedAreas(t *testing.T) {
	eur := testArea("back", 3.00, 0, 0, 0)
	eur.Currency = "EUR"
	areas := []Area{testArea("front", 2.00, 0, 0, 0), eur}
	subs := []Submission{{AreaID: "front", Colors: 1, Layers: 1}}

	calc, err := Calculate(subs, areas, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "USD", calc.Currency)
}

func TestCalculateDefaultsCurrency(t *testing.T) {
	area := testArea("front", 2.00, 0, 0, 0)
	area.Currency = ""
	subs := []Submission{{AreaID: "front", Colors: 1, Layers: 1}}

	calc, err := Calculate(subs, []Area{area}, nil, 1)
	require.NoError(t, err)
	assert.Equal(t, "USD", calc.Currency)
}

func TestCalculateSingleChargeWithoutPrice(t *testing.T) {
	areas := []Area{testArea("front", 2.00, 0, 0, 0)}
	groups := []Group{{
		ID:       "broken",
		Strategy: StrategySingleCharge,
		Currency: "USD",
		AreaIDs:  []string{"front"},
	}}
	subs := []Submission{{AreaID: "front", Colors: 1, Layers: 1}}

	_, err := Calculate(subs, areas, groups, 1)
	assert.ErrorIs(t, err, ErrGroupPriceUnset)
}
