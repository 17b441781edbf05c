// internal/services/catalog_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/utils"
)

type CatalogService struct {
	db *gorm.DB
}

type ProductTypeSearchParams struct {
	utils.PaginationParams
	Status *models.ProductTypeStatus `json:"status,omitempty"`
}

// DesignConfiguration is the storefront view of a product's printable
// surface: every active area with its rates plus the configured
// bundles, ready for the designer UI.
type DesignConfiguration struct {
	ProductTypeID uuid.UUID                   `json:"product_type_id"`
	ProductName   string                      `json:"product_name"`
	Slug          string                      `json:"slug"`
	BasePrice     float64                     `json:"base_price"`
	Currency      string                      `json:"currency"`
	Areas         []DesignAreaView            `json:"areas"`
	Groups        []DesignAreaGroupView       `json:"groups"`
	Capabilities  DesignCapabilities          `json:"capabilities"`
	AreasByType   map[string][]DesignAreaView `json:"areas_by_type"`
}

type DesignAreaView struct {
	ID            uuid.UUID `json:"id"`
	AreaType      string    `json:"area_type"`
	Name          string    `json:"name"`
	BasePrice     float64   `json:"base_price"`
	ColorPrice    float64   `json:"color_price"`
	LayerPrice    float64   `json:"layer_price"`
	SetupFee      float64   `json:"setup_fee"`
	Currency      string    `json:"currency"`
	MaxColors     int       `json:"max_colors"`
	PrintWidthIn  float64   `json:"print_width_in"`
	PrintHeightIn float64   `json:"print_height_in"`
	PrintMethods  []string  `json:"print_methods"`
}

type DesignAreaGroupView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Strategy   string    `json:"strategy"`
	GroupPrice *int64    `json:"group_price,omitempty"`
	Currency   string    `json:"currency"`
	AreaIDs    []string  `json:"area_ids"`
	MaxDesigns int       `json:"max_designs"`
	RequireAll bool      `json:"require_all"`
}

// DesignCapabilities is the union of what the areas support, used by
// the designer UI to prefilter its controls.
type DesignCapabilities struct {
	PrintMethods []string `json:"print_methods"`
	MaxColors    int      `json:"max_colors"`
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListProductTypes(params ProductTypeSearchParams) ([]models.ProductType, int64, error) {
	query := s.db.Model(&models.ProductType{})

	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	} else {
		// Storefront sees active products only
		query = query.Where("status = ?", models.ProductTypeStatusActive)
	}

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count product types: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "base_price", "sort_order"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, params.PaginationParams)

	var productTypes []models.ProductType
	if err := query.Find(&productTypes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch product types: %w", err)
	}

	return productTypes, total, nil
}

func (s *CatalogService) GetProductType(id uuid.UUID) (*models.ProductType, error) {
	var productType models.ProductType
	if err := s.db.First(&productType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product type not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &productType, nil
}

func (s *CatalogService) GetProductTypeBySlug(slug string) (*models.ProductType, error) {
	var productType models.ProductType
	if err := s.db.Where("slug = ?", slug).First(&productType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product type not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &productType, nil
}

// GetDesignConfiguration returns the active areas and groups for a
// product, grouped by area type for the designer UI.
func (s *CatalogService) GetDesignConfiguration(productTypeID uuid.UUID) (*DesignConfiguration, error) {
	var productType models.ProductType
	if err := s.db.First(&productType, productTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product type not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	var areas []models.DesignArea
	if err := s.db.Where("product_type_id = ? AND is_active = ?", productTypeID, true).
		Order("sort_order ASC, created_at ASC").
		Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch design areas: %w", err)
	}
	if len(areas) == 0 {
		return nil, ErrNoAreasConfigured
	}

	var groups []models.DesignAreaGroup
	if err := s.db.Where("product_type_id = ? AND is_active = ?", productTypeID, true).
		Order("sort_order ASC, created_at ASC").
		Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch design area groups: %w", err)
	}

	config := &DesignConfiguration{
		ProductTypeID: productType.ID,
		ProductName:   productType.Name,
		Slug:          productType.Slug,
		BasePrice:     productType.BasePrice,
		Currency:      productType.Currency,
		Areas:         make([]DesignAreaView, 0, len(areas)),
		Groups:        make([]DesignAreaGroupView, 0, len(groups)),
		AreasByType:   make(map[string][]DesignAreaView),
	}

	methodSet := make(map[string]struct{})
	for _, area := range areas {
		view := DesignAreaView{
			ID:            area.ID,
			AreaType:      string(area.AreaType),
			Name:          area.Name,
			BasePrice:     area.BasePrice,
			ColorPrice:    area.ColorPrice,
			LayerPrice:    area.LayerPrice,
			SetupFee:      area.SetupFee,
			Currency:      area.Currency,
			MaxColors:     area.MaxColors,
			PrintWidthIn:  area.PrintWidthIn,
			PrintHeightIn: area.PrintHeightIn,
			PrintMethods:  area.PrintMethods,
		}
		config.Areas = append(config.Areas, view)
		config.AreasByType[view.AreaType] = append(config.AreasByType[view.AreaType], view)

		for _, method := range area.PrintMethods {
			methodSet[method] = struct{}{}
		}
		if area.MaxColors > config.Capabilities.MaxColors {
			config.Capabilities.MaxColors = area.MaxColors
		}
	}

	config.Capabilities.PrintMethods = make([]string, 0, len(methodSet))
	for _, method := range models.ValidPrintMethods() {
		if _, ok := methodSet[string(method)]; ok {
			config.Capabilities.PrintMethods = append(config.Capabilities.PrintMethods, string(method))
		}
	}

	for _, group := range groups {
		config.Groups = append(config.Groups, DesignAreaGroupView{
			ID:         group.ID,
			Name:       group.Name,
			Strategy:   string(group.Strategy),
			GroupPrice: group.GroupPrice,
			Currency:   group.Currency,
			AreaIDs:    group.AreaIDs,
			MaxDesigns: group.MaxDesigns,
			RequireAll: group.RequireAll,
		})
	}

	return config, nil
}
