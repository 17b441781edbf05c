// internal/models/product_type.go
package models

import (
	"github.com/lib/pq"
)

type ProductType struct {
	BaseModel
	Name        string            `json:"name" gorm:"size:255;not null"`
	Slug        string            `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	Category    string            `json:"category" gorm:"size:100;index"`
	Description string            `json:"description" gorm:"type:text"`
	BasePrice   float64           `json:"base_price" gorm:"type:decimal(10,2);not null;default:0"`
	Currency    string            `json:"currency" gorm:"size:3;not null;default:'USD'"`
	Sizes       pq.StringArray    `json:"sizes" gorm:"type:text[]"`
	Colors      pq.StringArray    `json:"colors" gorm:"type:text[]"`
	Images      pq.StringArray    `json:"images" gorm:"type:text[]"`
	Metadata    JSONB             `json:"metadata" gorm:"type:jsonb"`
	Status      ProductTypeStatus `json:"status" gorm:"type:varchar(20);default:'active';index"`
	SortOrder   int               `json:"sort_order" gorm:"default:0;index"`

	// Relationships
	DesignAreas      []DesignArea      `json:"design_areas,omitempty" gorm:"foreignKey:ProductTypeID"`
	DesignAreaGroups []DesignAreaGroup `json:"design_area_groups,omitempty" gorm:"foreignKey:ProductTypeID"`
}
