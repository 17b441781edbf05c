// internal/models/artwork.go
package models

import (
	"github.com/google/uuid"
)

// ArtworkAsset is an uploaded design file plus the analysis results the
// pricing engine consumes as file metadata. Analysis fields are pointers:
// absence means "unknown", not zero.
type ArtworkAsset struct {
	BaseModel
	FileName     string        `json:"file_name" gorm:"size:255;not null"`
	FileURL      string        `json:"file_url" gorm:"size:512;not null"`
	StorageKey   string        `json:"storage_key" gorm:"size:512;not null;index"`
	Checksum     string        `json:"checksum" gorm:"size:64;index"`
	FileSize     int64         `json:"file_size" gorm:"not null;default:0"`
	Format       string        `json:"format" gorm:"size:10;index"`
	Width        int           `json:"width" gorm:"default:0"`
	Height       int           `json:"height" gorm:"default:0"`
	DPI          *float64      `json:"dpi,omitempty" gorm:"type:decimal(8,2)"`
	QualityScore *float64      `json:"quality_score,omitempty" gorm:"type:decimal(5,2)"`
	ColorCount   *int          `json:"color_count,omitempty"`
	PrintReady   bool          `json:"print_ready" gorm:"default:false"`
	SuggestedUse SuggestedUse  `json:"suggested_use,omitempty" gorm:"type:varchar(20)"`
	TargetAreaID *uuid.UUID    `json:"target_area_id,omitempty" gorm:"type:uuid;index"`
	Status       ArtworkStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	Metadata     JSONB         `json:"metadata" gorm:"type:jsonb"`

	// Relationships
	TargetArea *DesignArea `json:"target_area,omitempty" gorm:"foreignKey:TargetAreaID"`
}
