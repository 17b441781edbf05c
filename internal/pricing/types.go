// internal/pricing/types.go

// Package pricing computes design print charges for customized garments.
// It is a pure rule calculator: callers pass the admin-configured areas and
// groups of a product type along with the user's design submissions and get
// back a fully itemized calculation. Nothing in this package touches the
// database or mutates its inputs, so identical inputs always produce
// identical output.
package pricing

import "errors"

// Strategy selects how a group of design areas is charged.
type Strategy string

const (
	StrategySingleCharge Strategy = "single_charge"
	StrategyPerArea      Strategy = "per_area"
	StrategyTiered       Strategy = "tiered"
)

var (
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrUnknownArea      = errors.New("design area is not configured for this product type")
	ErrCurrencyMismatch = errors.New("design areas and groups must share a single currency")
	ErrGroupPriceUnset  = errors.New("single_charge group has no group price configured")
)

// Area carries the pricing parameters of one printable region.
type Area struct {
	ID         string
	AreaType   string
	Name       string
	BasePrice  float64
	ColorPrice float64
	LayerPrice float64
	SetupFee   float64
	Currency   string
	MaxColors  int
}

// Group bundles member areas priced as a unit. GroupPrice is in minor
// currency units and only meaningful for StrategySingleCharge.
type Group struct {
	ID         string
	Name       string
	Strategy   Strategy
	GroupPrice *int64
	Currency   string
	AreaIDs    []string
	MaxDesigns int
	RequireAll bool
}

// Submission is one user design targeting one area. FileMeta is optional;
// a nil value means no quality information is known and no adjustment
// applies.
type Submission struct {
	AreaID      string
	AreaType    string
	Layers      int
	Colors      int
	PrintMethod string
	FileURL     string
	FileMeta    *FileMetadata
}

// FileMetadata describes an uploaded artwork file. Every field is optional;
// absent fields contribute no quality adjustment.
type FileMetadata struct {
	DPI          *float64
	QualityScore *float64
	PrintReady   *bool
	SuggestedUse string
	FileSize     *int64
	Format       string
}

// AreaBreakdown itemizes the charge for one submission. Monetary component
// fields are per-unit, after quality adjustment; Subtotal multiplies them by
// the order quantity and adds the one-time setup fee. Rows covered by a
// group charge keep all monetary fields at zero with IsGroupCharge set.
type AreaBreakdown struct {
	AreaID         string  `json:"area_id"`
	AreaType       string  `json:"area_type"`
	AreaName       string  `json:"area_name,omitempty"`
	GroupID        string  `json:"group_id,omitempty"`
	GroupName      string  `json:"group_name,omitempty"`
	Base           float64 `json:"base"`
	ColorCost      float64 `json:"color_cost"`
	LayerCost      float64 `json:"layer_cost"`
	SetupFee       float64 `json:"setup_fee"`
	Subtotal       float64 `json:"subtotal"`
	IsGroupCharge  bool    `json:"is_group_charge"`
	AdjustmentCode string  `json:"adjustment_code,omitempty"`
	Adjustment     string  `json:"adjustment_reason,omitempty"`
}

// GroupCharge is one flat charge covering several areas.
type GroupCharge struct {
	GroupID   string   `json:"group_id"`
	GroupName string   `json:"group_name"`
	Price     float64  `json:"price"`
	AreaIDs   []string `json:"area_ids"`
	Currency  string   `json:"currency"`
}

// Calculation is the full quote for one set of submissions. Subtotal covers
// print charges (individually charged areas plus group charges) excluding
// setup fees; Total = Subtotal + SetupFees. Savings is present only when
// strictly positive.
type Calculation struct {
	Areas        []AreaBreakdown `json:"areas"`
	GroupCharges []GroupCharge   `json:"group_charges"`
	Subtotal     float64         `json:"subtotal"`
	SetupFees    float64         `json:"setup_fees"`
	Total        float64         `json:"total"`
	Currency     string          `json:"currency"`
	Savings      *float64        `json:"savings,omitempty"`
}
