// internal/pricing/engine.go
package pricing

import (
	"fmt"
)

// CalculateArea prices a single submission against its area configuration.
// tierMultiplier scales the base/color/layer rates (1.0 when no tier
// applies). The first layer is included in the base price; only additional
// layers are charged. The setup fee is a one-time charge per area and is
// never multiplied by quantity; it is rounded to the cent after quality
// adjustment. Subtotal = per-unit components x quantity + setup fee.
func CalculateArea(sub Submission, area Area, quantity int, tierMultiplier float64) AreaBreakdown {
	base := area.BasePrice * tierMultiplier
	colorCost := area.ColorPrice * float64(sub.Colors) * tierMultiplier
	layerCost := area.LayerPrice * float64(max(0, sub.Layers-1)) * tierMultiplier

	priceMult, setupMult, rule := qualityAdjustment(sub.FileMeta)

	base *= priceMult
	colorCost *= priceMult
	layerCost *= priceMult
	setupFee := Round2(area.SetupFee * setupMult)

	subtotal := (base+colorCost+layerCost)*float64(quantity) + setupFee

	breakdown := AreaBreakdown{
		AreaID:    sub.AreaID,
		AreaType:  sub.AreaType,
		AreaName:  area.Name,
		Base:      Round2(base),
		ColorCost: Round2(colorCost),
		LayerCost: Round2(layerCost),
		SetupFee:  setupFee,
		Subtotal:  Round2(subtotal),
	}
	if breakdown.AreaType == "" {
		breakdown.AreaType = area.AreaType
	}
	if rule != nil {
		breakdown.AdjustmentCode = rule.code
		breakdown.Adjustment = rule.reason
	}
	return breakdown
}

// Calculate produces the full quote for a set of submissions against the
// product type's area and group configuration. Groups are processed in their
// given order, then ungrouped submissions in input order.
//
// All consulted areas and groups must share one currency; mixed
// configurations fail with ErrCurrencyMismatch rather than emitting a total
// in an arbitrary unit. Savings reports how much cheaper single_charge
// bundling came out versus pricing the same areas individually, and is
// omitted unless strictly positive.
func Calculate(subs []Submission, areas []Area, groups []Group, quantity int) (*Calculation, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	areaByID := make(map[string]Area, len(areas))
	for _, a := range areas {
		areaByID[a.ID] = a
	}
	for _, sub := range subs {
		if _, ok := areaByID[sub.AreaID]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownArea, sub.AreaID)
		}
	}

	grouped, ungrouped := GroupSubmissions(subs, groups)

	currency, err := resolveCurrency(subs, grouped, areaByID, groups)
	if err != nil {
		return nil, err
	}

	calc := &Calculation{Currency: currency}
	var subtotal, setupFees, potential float64

	for _, g := range groups {
		gsubs := grouped[g.ID]
		if len(gsubs) == 0 {
			continue
		}

		switch g.Strategy {
		case StrategySingleCharge:
			if g.GroupPrice == nil {
				return nil, fmt.Errorf("%w: %s", ErrGroupPriceUnset, g.Name)
			}
			price := minorToMajor(*g.GroupPrice) * float64(quantity)
			subtotal += price

			charge := GroupCharge{
				GroupID:   g.ID,
				GroupName: g.Name,
				Price:     Round2(price),
				Currency:  chargeCurrency(g.Currency, currency),
			}
			for _, sub := range gsubs {
				charge.AreaIDs = append(charge.AreaIDs, sub.AreaID)
				calc.Areas = append(calc.Areas, AreaBreakdown{
					AreaID:        sub.AreaID,
					AreaType:      submissionAreaType(sub, areaByID),
					AreaName:      areaByID[sub.AreaID].Name,
					GroupID:       g.ID,
					GroupName:     g.Name,
					IsGroupCharge: true,
				})
				// What the bundle would have cost area by area, kept only
				// for the savings disclosure and never charged.
				individual := CalculateArea(sub, areaByID[sub.AreaID], quantity, 1.0)
				potential += individual.Subtotal
			}
			calc.GroupCharges = append(calc.GroupCharges, charge)

		case StrategyTiered:
			tier := TierMultiplier(len(gsubs))
			for _, sub := range gsubs {
				row := CalculateArea(sub, areaByID[sub.AreaID], quantity, tier)
				row.GroupID = g.ID
				row.GroupName = g.Name
				calc.Areas = append(calc.Areas, row)
				subtotal += row.Subtotal - row.SetupFee
				setupFees += row.SetupFee
			}

		default: // StrategyPerArea
			for _, sub := range gsubs {
				row := CalculateArea(sub, areaByID[sub.AreaID], quantity, 1.0)
				row.GroupID = g.ID
				row.GroupName = g.Name
				calc.Areas = append(calc.Areas, row)
				subtotal += row.Subtotal - row.SetupFee
				setupFees += row.SetupFee
			}
		}
	}

	for _, sub := range ungrouped {
		row := CalculateArea(sub, areaByID[sub.AreaID], quantity, 1.0)
		calc.Areas = append(calc.Areas, row)
		subtotal += row.Subtotal - row.SetupFee
		setupFees += row.SetupFee
	}

	calc.Subtotal = Round2(subtotal)
	calc.SetupFees = Round2(setupFees)
	calc.Total = Round2(subtotal + setupFees)

	if potential > 0 {
		if savings := Round2(potential - (subtotal + setupFees)); savings > 0 {
			calc.Savings = &savings
		}
	}

	return calc, nil
}

// resolveCurrency collects the currency codes of every consulted area and
// every group that received submissions. Exactly one distinct non-empty code
// may appear; none at all falls back to USD.
func resolveCurrency(subs []Submission, grouped map[string][]Submission, areaByID map[string]Area, groups []Group) (string, error) {
	currency := ""
	record := func(code string) error {
		if code == "" {
			return nil
		}
		if currency == "" {
			currency = code
			return nil
		}
		if currency != code {
			return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, currency, code)
		}
		return nil
	}

	for _, sub := range subs {
		if err := record(areaByID[sub.AreaID].Currency); err != nil {
			return "", err
		}
	}
	for _, g := range groups {
		if len(grouped[g.ID]) == 0 {
			continue
		}
		if err := record(g.Currency); err != nil {
			return "", err
		}
	}

	if currency == "" {
		currency = "USD"
	}
	return currency, nil
}

func chargeCurrency(groupCurrency, fallback string) string {
	if groupCurrency != "" {
		return groupCurrency
	}
	return fallback
}

func submissionAreaType(sub Submission, areaByID map[string]Area) string {
	if sub.AreaType != "" {
		return sub.AreaType
	}
	return areaByID[sub.AreaID].AreaType
}
