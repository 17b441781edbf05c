// internal/models/design_area.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

// DesignArea is a printable region on a garment. Pricing parameters are
// read-only from the pricing engine's perspective and only mutated through
// the admin configuration surface.
type DesignArea struct {
	BaseModel
	ProductTypeID uuid.UUID      `json:"product_type_id" gorm:"type:uuid;not null;index"`
	AreaType      AreaType       `json:"area_type" gorm:"type:varchar(20);not null;index"`
	Name          string         `json:"name" gorm:"size:255;not null"`
	BasePrice     float64        `json:"base_price" gorm:"type:decimal(10,2);not null;default:0"`
	ColorPrice    float64        `json:"color_price" gorm:"type:decimal(10,2);not null;default:0"`
	LayerPrice    float64        `json:"layer_price" gorm:"type:decimal(10,2);not null;default:0"`
	SetupFee      float64        `json:"setup_fee" gorm:"type:decimal(10,2);not null;default:0"`
	Currency      string         `json:"currency" gorm:"size:3;not null;default:'USD'"`
	MaxColors     int            `json:"max_colors" gorm:"default:8"`
	PrintWidthIn  float64        `json:"print_width_in" gorm:"type:decimal(6,2);default:0"`
	PrintHeightIn float64        `json:"print_height_in" gorm:"type:decimal(6,2);default:0"`
	PrintMethods  pq.StringArray `json:"print_methods" gorm:"type:text[]"`
	IsActive      bool           `json:"is_active" gorm:"default:true;index"`
	SortOrder     int            `json:"sort_order" gorm:"default:0;index"`

	// Relationships
	ProductType ProductType `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID"`
}

// DesignAreaGroup bundles multiple design areas priced as a unit. Member
// areas are referenced by id list rather than a join table, mirroring how
// the storefront editor consumes the configuration. GroupPrice is stored in
// minor currency units and is required for the single_charge strategy.
type DesignAreaGroup struct {
	BaseModel
	ProductTypeID uuid.UUID       `json:"product_type_id" gorm:"type:uuid;not null;index"`
	Name          string          `json:"name" gorm:"size:255;not null"`
	Strategy      PricingStrategy `json:"strategy" gorm:"type:varchar(20);not null"`
	GroupPrice    *int64          `json:"group_price,omitempty" gorm:"type:bigint"`
	Currency      string          `json:"currency" gorm:"size:3;not null;default:'USD'"`
	AreaIDs       pq.StringArray  `json:"area_ids" gorm:"type:text[];not null"`
	MaxDesigns    int             `json:"max_designs" gorm:"default:1"`
	RequireAll    bool            `json:"require_all" gorm:"default:false"`
	IsActive      bool            `json:"is_active" gorm:"default:true;index"`
	SortOrder     int             `json:"sort_order" gorm:"default:0;index"`

	// Relationships
	ProductType ProductType `json:"product_type,omitempty" gorm:"foreignKey:ProductTypeID"`
}
