// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type AreaType string

const (
	AreaTypeFront       AreaType = "front"
	AreaTypeBack        AreaType = "back"
	AreaTypeSleeveLeft  AreaType = "sleeve_left"
	AreaTypeSleeveRight AreaType = "sleeve_right"
	AreaTypeNeck        AreaType = "neck"
	AreaTypePocket      AreaType = "pocket"
	AreaTypeCustom      AreaType = "custom"
)

type PricingStrategy string

const (
	PricingStrategySingleCharge PricingStrategy = "single_charge"
	PricingStrategyPerArea      PricingStrategy = "per_area"
	PricingStrategyTiered       PricingStrategy = "tiered"
)

type PrintMethod string

const (
	PrintMethodScreenPrint PrintMethod = "screen_print"
	PrintMethodDTG         PrintMethod = "dtg"
	PrintMethodEmbroidery  PrintMethod = "embroidery"
	PrintMethodVinyl       PrintMethod = "vinyl"
	PrintMethodSublimation PrintMethod = "sublimation"
)

func ValidPrintMethods() []PrintMethod {
	return []PrintMethod{
		PrintMethodScreenPrint,
		PrintMethodDTG,
		PrintMethodEmbroidery,
		PrintMethodVinyl,
		PrintMethodSublimation,
	}
}

type ProductTypeStatus string

const (
	ProductTypeStatusDraft    ProductTypeStatus = "draft"
	ProductTypeStatusActive   ProductTypeStatus = "active"
	ProductTypeStatusArchived ProductTypeStatus = "archived"
)

type ArtworkStatus string

const (
	ArtworkStatusPending ArtworkStatus = "pending"
	ArtworkStatusReady   ArtworkStatus = "ready"
	ArtworkStatusFailed  ArtworkStatus = "failed"
)

type SuggestedUse string

const (
	SuggestedUseCommercialPrint SuggestedUse = "commercial_print"
	SuggestedUseSmallPrint      SuggestedUse = "small_print"
	SuggestedUseWebOnly         SuggestedUse = "web_only"
)

type TransactionType string

const (
	TransactionTypeQuoteDeposit TransactionType = "quote_deposit"
	TransactionTypeQuoteBalance TransactionType = "quote_balance"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)
