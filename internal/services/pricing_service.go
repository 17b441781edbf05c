// internal/services/pricing_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/pricing"
	"github.com/threadforge/pod-backend/internal/utils"
)

// ErrNoAreasConfigured separates "product has no printable areas" from
// a failed config fetch, which must surface as a server error.
var ErrNoAreasConfigured = errors.New("no design areas configured")

type PricingService struct {
	db *gorm.DB
}

type DesignPricingRequest struct {
	ProductTypeID uuid.UUID                 `json:"product_type_id" validate:"required"`
	Quantity      int                       `json:"quantity" validate:"required,min=1"`
	Designs       []DesignSubmissionRequest `json:"designs" validate:"required,min=1,dive"`
}

type DesignSubmissionRequest struct {
	AreaID      string               `json:"area_id" validate:"required,uuid"`
	Colors      int                  `json:"colors" validate:"required,min=1,max=16"`
	Layers      int                  `json:"layers,omitempty" validate:"omitempty,min=1,max=10"`
	PrintMethod string               `json:"print_method,omitempty" validate:"omitempty,print_method"`
	FileURL     string               `json:"file_url,omitempty" validate:"omitempty,url"`
	File        *FileMetadataRequest `json:"file,omitempty"`
	ArtworkID   *uuid.UUID           `json:"artwork_id,omitempty"`
}

type FileMetadataRequest struct {
	DPI          *float64 `json:"dpi,omitempty" validate:"omitempty,gt=0"`
	QualityScore *float64 `json:"quality_score,omitempty" validate:"omitempty,gte=0,lte=100"`
	PrintReady   *bool    `json:"print_ready,omitempty"`
	SuggestedUse string   `json:"suggested_use,omitempty"`
	FileSize     *int64   `json:"file_size,omitempty" validate:"omitempty,gt=0"`
	Format       string   `json:"format,omitempty"`
}

type DesignPricingResult struct {
	ProductTypeID uuid.UUID            `json:"product_type_id"`
	ProductName   string               `json:"product_name"`
	Quantity      int                  `json:"quantity"`
	Calculation   *pricing.Calculation `json:"calculation"`
	Summary       PricingSummary       `json:"summary"`
}

type PricingSummary struct {
	AreasUsed     int     `json:"areas_used"`
	GroupsApplied int     `json:"groups_applied"`
	PerUnit       float64 `json:"per_unit"`
}

func NewPricingService(db *gorm.DB) *PricingService {
	return &PricingService{db: db}
}

func (s *PricingService) CalculateDesignPricing(req *DesignPricingRequest) (*DesignPricingResult, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	productType, calc, err := s.PriceDesigns(req.ProductTypeID, req.Quantity, req.Designs)
	if err != nil {
		return nil, err
	}

	return &DesignPricingResult{
		ProductTypeID: productType.ID,
		ProductName:   productType.Name,
		Quantity:      req.Quantity,
		Calculation:   calc,
		Summary:       summarize(calc, req.Quantity),
	}, nil
}

// PriceDesigns loads the product's design configuration and runs the
// pricing calculation over the submitted designs. Quote building uses
// it directly, skipping the request-level validation.
func (s *PricingService) PriceDesigns(productTypeID uuid.UUID, quantity int, designs []DesignSubmissionRequest) (*models.ProductType, *pricing.Calculation, error) {
	productType, areas, groups, err := s.loadDesignConfig(productTypeID)
	if err != nil {
		return nil, nil, err
	}

	subs := make([]pricing.Submission, 0, len(designs))
	for _, design := range designs {
		sub, err := s.toSubmission(design)
		if err != nil {
			return nil, nil, err
		}
		subs = append(subs, sub)
	}

	calc, err := pricing.Calculate(subs, toPricingAreas(areas), toPricingGroups(groups), quantity)
	if err != nil {
		return nil, nil, err
	}

	return productType, calc, nil
}

func (s *PricingService) loadDesignConfig(productTypeID uuid.UUID) (*models.ProductType, []models.DesignArea, []models.DesignAreaGroup, error) {
	var productType models.ProductType
	if err := s.db.First(&productType, productTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, errors.New("product type not found")
		}
		return nil, nil, nil, fmt.Errorf("database error: %w", err)
	}

	var areas []models.DesignArea
	if err := s.db.Where("product_type_id = ? AND is_active = ?", productTypeID, true).
		Order("sort_order ASC, created_at ASC").
		Find(&areas).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch design areas: %w", err)
	}
	if len(areas) == 0 {
		return nil, nil, nil, ErrNoAreasConfigured
	}

	var groups []models.DesignAreaGroup
	if err := s.db.Where("product_type_id = ? AND is_active = ?", productTypeID, true).
		Order("sort_order ASC, created_at ASC").
		Find(&groups).Error; err != nil {
		return nil, nil, nil, fmt.Errorf("failed to fetch design area groups: %w", err)
	}

	return &productType, areas, groups, nil
}

func (s *PricingService) toSubmission(design DesignSubmissionRequest) (pricing.Submission, error) {
	sub := pricing.Submission{
		AreaID:      design.AreaID,
		Layers:      design.Layers,
		Colors:      design.Colors,
		PrintMethod: design.PrintMethod,
		FileURL:     design.FileURL,
	}
	if sub.Layers < 1 {
		sub.Layers = 1
	}

	switch {
	case design.File != nil:
		sub.FileMeta = &pricing.FileMetadata{
			DPI:          design.File.DPI,
			QualityScore: design.File.QualityScore,
			PrintReady:   design.File.PrintReady,
			SuggestedUse: design.File.SuggestedUse,
			FileSize:     design.File.FileSize,
			Format:       design.File.Format,
		}
	case design.ArtworkID != nil:
		meta, err := s.artworkMetadata(*design.ArtworkID)
		if err != nil {
			return pricing.Submission{}, err
		}
		sub.FileMeta = meta
	}

	return sub, nil
}

// artworkMetadata hydrates submission metadata from a previously
// analyzed upload so clients do not have to echo analysis results back.
func (s *PricingService) artworkMetadata(artworkID uuid.UUID) (*pricing.FileMetadata, error) {
	var asset models.ArtworkAsset
	if err := s.db.First(&asset, artworkID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("artwork not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	printReady := asset.PrintReady
	fileSize := asset.FileSize

	return &pricing.FileMetadata{
		DPI:          asset.DPI,
		QualityScore: asset.QualityScore,
		PrintReady:   &printReady,
		SuggestedUse: string(asset.SuggestedUse),
		FileSize:     &fileSize,
		Format:       asset.Format,
	}, nil
}

func toPricingAreas(areas []models.DesignArea) []pricing.Area {
	out := make([]pricing.Area, 0, len(areas))
	for _, area := range areas {
		out = append(out, pricing.Area{
			ID:         area.ID.String(),
			AreaType:   string(area.AreaType),
			Name:       area.Name,
			BasePrice:  area.BasePrice,
			ColorPrice: area.ColorPrice,
			LayerPrice: area.LayerPrice,
			SetupFee:   area.SetupFee,
			Currency:   area.Currency,
			MaxColors:  area.MaxColors,
		})
	}
	return out
}

func toPricingGroups(groups []models.DesignAreaGroup) []pricing.Group {
	out := make([]pricing.Group, 0, len(groups))
	for _, group := range groups {
		out = append(out, pricing.Group{
			ID:         group.ID.String(),
			Name:       group.Name,
			Strategy:   pricing.Strategy(group.Strategy),
			GroupPrice: group.GroupPrice,
			Currency:   group.Currency,
			AreaIDs:    group.AreaIDs,
			MaxDesigns: group.MaxDesigns,
			RequireAll: group.RequireAll,
		})
	}
	return out
}

func summarize(calc *pricing.Calculation, quantity int) PricingSummary {
	areaSet := make(map[string]struct{})
	groupSet := make(map[string]struct{})
	for _, row := range calc.Areas {
		areaSet[row.AreaID] = struct{}{}
		if row.GroupID != "" {
			groupSet[row.GroupID] = struct{}{}
		}
	}

	summary := PricingSummary{
		AreasUsed:     len(areaSet),
		GroupsApplied: len(groupSet),
	}
	if quantity > 0 {
		summary.PerUnit = pricing.Round2(calc.Total / float64(quantity))
	}
	return summary
}
