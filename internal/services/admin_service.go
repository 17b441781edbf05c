// internal/services/admin_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/threadforge/pod-backend/internal/database"
	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/utils"
)

var (
	// ErrGroupAreaOverlap fires when a design area would end up claimed by
	// two active groups of the same product type at once.
	ErrGroupAreaOverlap = errors.New("design area already assigned to another active group")

	ErrAreaNotInProduct     = errors.New("design area does not belong to the product type")
	ErrAreaCurrencyMismatch = errors.New("design areas of a product type must share a single currency")
	ErrGroupPriceRequired   = errors.New("group price is required for the single_charge strategy")
	ErrAreaInGroup          = errors.New("design area is still referenced by a group")
)

type AdminService struct {
	db *gorm.DB
}

type AdminDashboardStats struct {
	TotalProductTypes   int64   `json:"total_product_types"`
	ActiveProductTypes  int64   `json:"active_product_types"`
	TotalDesignAreas    int64   `json:"total_design_areas"`
	ActiveDesignAreas   int64   `json:"active_design_areas"`
	TotalDesignGroups   int64   `json:"total_design_groups"`
	TotalArtworkAssets  int64   `json:"total_artwork_assets"`
	ArtworkThisMonth    int64   `json:"artwork_this_month"`
	TotalRevenue        float64 `json:"total_revenue"`
	MonthlyRevenue      float64 `json:"monthly_revenue"`
	RevenueGrowth       float64 `json:"revenue_growth"`
	TotalTransactions   int64   `json:"total_transactions"`
	PendingTransactions int64   `json:"pending_transactions"`
}

type AdminTransactionFilter struct {
	utils.PaginationParams
	TransactionType *models.TransactionType   `json:"transaction_type,omitempty"`
	Status          *models.TransactionStatus `json:"status,omitempty"`
	QuoteReference  string                    `json:"quote_reference,omitempty"`
	AmountMin       *float64                  `json:"amount_min,omitempty"`
	AmountMax       *float64                  `json:"amount_max,omitempty"`
	CreatedAfter    *time.Time                `json:"created_after,omitempty"`
	CreatedBefore   *time.Time                `json:"created_before,omitempty"`
}

type CreateProductTypeRequest struct {
	Name        string                 `json:"name" validate:"required,min=3,max=255"`
	Slug        string                 `json:"slug" validate:"required,slug"`
	Category    string                 `json:"category" validate:"omitempty,max=100"`
	Description string                 `json:"description" validate:"omitempty,max=2000"`
	BasePrice   float64                `json:"base_price" validate:"gte=0"`
	Currency    string                 `json:"currency" validate:"omitempty,iso4217"`
	Sizes       []string               `json:"sizes" validate:"omitempty,dive,min=1,max=10"`
	Colors      []string               `json:"colors" validate:"omitempty,dive,min=1,max=50"`
	Images      []string               `json:"images" validate:"omitempty,dive,url"`
	Status      string                 `json:"status" validate:"omitempty,oneof=draft active archived"`
	SortOrder   int                    `json:"sort_order"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type UpdateProductTypeRequest struct {
	Name        *string                `json:"name" validate:"omitempty,min=3,max=255"`
	Slug        *string                `json:"slug" validate:"omitempty,slug"`
	Category    *string                `json:"category" validate:"omitempty,max=100"`
	Description *string                `json:"description" validate:"omitempty,max=2000"`
	BasePrice   *float64               `json:"base_price" validate:"omitempty,gte=0"`
	Sizes       []string               `json:"sizes" validate:"omitempty,dive,min=1,max=10"`
	Colors      []string               `json:"colors" validate:"omitempty,dive,min=1,max=50"`
	Images      []string               `json:"images" validate:"omitempty,dive,url"`
	Status      *string                `json:"status" validate:"omitempty,oneof=draft active archived"`
	SortOrder   *int                   `json:"sort_order"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

type CreateDesignAreaRequest struct {
	ProductTypeID uuid.UUID `json:"product_type_id" validate:"required"`
	AreaType      string    `json:"area_type" validate:"required,oneof=front back sleeve_left sleeve_right neck pocket custom"`
	Name          string    `json:"name" validate:"required,min=2,max=255"`
	BasePrice     float64   `json:"base_price" validate:"gte=0"`
	ColorPrice    float64   `json:"color_price" validate:"gte=0"`
	LayerPrice    float64   `json:"layer_price" validate:"gte=0"`
	SetupFee      float64   `json:"setup_fee" validate:"gte=0"`
	Currency      string    `json:"currency" validate:"omitempty,iso4217"`
	MaxColors     int       `json:"max_colors" validate:"omitempty,min=1,max=16"`
	PrintWidthIn  float64   `json:"print_width_in" validate:"omitempty,gt=0"`
	PrintHeightIn float64   `json:"print_height_in" validate:"omitempty,gt=0"`
	PrintMethods  []string  `json:"print_methods" validate:"omitempty,dive,print_method"`
	SortOrder     int       `json:"sort_order"`
}

type UpdateDesignAreaRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=2,max=255"`
	BasePrice     *float64 `json:"base_price" validate:"omitempty,gte=0"`
	ColorPrice    *float64 `json:"color_price" validate:"omitempty,gte=0"`
	LayerPrice    *float64 `json:"layer_price" validate:"omitempty,gte=0"`
	SetupFee      *float64 `json:"setup_fee" validate:"omitempty,gte=0"`
	Currency      *string  `json:"currency" validate:"omitempty,iso4217"`
	MaxColors     *int     `json:"max_colors" validate:"omitempty,min=1,max=16"`
	PrintWidthIn  *float64 `json:"print_width_in" validate:"omitempty,gt=0"`
	PrintHeightIn *float64 `json:"print_height_in" validate:"omitempty,gt=0"`
	PrintMethods  []string `json:"print_methods" validate:"omitempty,dive,print_method"`
	IsActive      *bool    `json:"is_active"`
	SortOrder     *int     `json:"sort_order"`
}

type CreateDesignAreaGroupRequest struct {
	ProductTypeID uuid.UUID `json:"product_type_id" validate:"required"`
	Name          string    `json:"name" validate:"required,min=2,max=255"`
	Strategy      string    `json:"strategy" validate:"required,oneof=single_charge per_area tiered"`
	GroupPrice    *int64    `json:"group_price" validate:"required_if=Strategy single_charge,omitempty,gt=0"`
	Currency      string    `json:"currency" validate:"omitempty,iso4217"`
	AreaIDs       []string  `json:"area_ids" validate:"required,min=1,dive,uuid"`
	MaxDesigns    int       `json:"max_designs" validate:"omitempty,min=1,max=16"`
	RequireAll    bool      `json:"require_all"`
	SortOrder     int       `json:"sort_order"`
}

type UpdateDesignAreaGroupRequest struct {
	Name       *string  `json:"name" validate:"omitempty,min=2,max=255"`
	Strategy   *string  `json:"strategy" validate:"omitempty,oneof=single_charge per_area tiered"`
	GroupPrice *int64   `json:"group_price" validate:"omitempty,gt=0"`
	Currency   *string  `json:"currency" validate:"omitempty,iso4217"`
	AreaIDs    []string `json:"area_ids" validate:"omitempty,min=1,dive,uuid"`
	MaxDesigns *int     `json:"max_designs" validate:"omitempty,min=1,max=16"`
	RequireAll *bool    `json:"require_all"`
	IsActive   *bool    `json:"is_active"`
	SortOrder  *int     `json:"sort_order"`
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// Dashboard Statistics
func (s *AdminService) GetDashboardStats() (*AdminDashboardStats, error) {
	stats := &AdminDashboardStats{}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	// Catalog statistics
	s.db.Model(&models.ProductType{}).Count(&stats.TotalProductTypes)
	s.db.Model(&models.ProductType{}).
		Where("status = ?", models.ProductTypeStatusActive).Count(&stats.ActiveProductTypes)
	s.db.Model(&models.DesignArea{}).Count(&stats.TotalDesignAreas)
	s.db.Model(&models.DesignArea{}).Where("is_active = ?", true).Count(&stats.ActiveDesignAreas)
	s.db.Model(&models.DesignAreaGroup{}).Where("is_active = ?", true).Count(&stats.TotalDesignGroups)

	// Artwork statistics
	s.db.Model(&models.ArtworkAsset{}).Count(&stats.TotalArtworkAssets)
	s.db.Model(&models.ArtworkAsset{}).
		Where("created_at >= ?", monthStart).Count(&stats.ArtworkThisMonth)

	// Revenue statistics
	s.db.Model(&models.Transaction{}).
		Where("status = ?", models.TransactionStatusCompleted).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.TotalRevenue)

	s.db.Model(&models.Transaction{}).
		Where("status = ? AND created_at >= ?", models.TransactionStatusCompleted, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&stats.MonthlyRevenue)

	s.db.Model(&models.Transaction{}).Count(&stats.TotalTransactions)
	s.db.Model(&models.Transaction{}).
		Where("status = ?", models.TransactionStatusPending).Count(&stats.PendingTransactions)

	var lastMonthRevenue float64
	s.db.Model(&models.Transaction{}).
		Where("status = ? AND created_at >= ? AND created_at < ?",
			models.TransactionStatusCompleted, lastMonthStart, monthStart).
		Select("COALESCE(SUM(amount), 0)").Scan(&lastMonthRevenue)

	if lastMonthRevenue > 0 {
		stats.RevenueGrowth = (stats.MonthlyRevenue - lastMonthRevenue) / lastMonthRevenue * 100
	}

	return stats, nil
}

// Product Type Management

// GetProductTypes lists the catalog across all statuses. Drafts and
// archived products are visible here, unlike the storefront listing.
func (s *AdminService) GetProductTypes(params utils.PaginationParams, status *models.ProductTypeStatus) ([]models.ProductType, int64, error) {
	query := s.db.Model(&models.ProductType{})

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(slug) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count product types: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "base_price", "status", "sort_order"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var productTypes []models.ProductType
	if err := query.Find(&productTypes).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch product types: %w", err)
	}

	return productTypes, total, nil
}

func (s *AdminService) CreateProductType(req *CreateProductTypeRequest) (*models.ProductType, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	s.db.Model(&models.ProductType{}).Where("slug = ?", req.Slug).Count(&count)
	if count > 0 {
		return nil, errors.New("slug already in use")
	}

	productType := &models.ProductType{
		Name:        req.Name,
		Slug:        req.Slug,
		Category:    req.Category,
		Description: req.Description,
		BasePrice:   req.BasePrice,
		Currency:    strings.ToUpper(req.Currency),
		Sizes:       pq.StringArray(req.Sizes),
		Colors:      pq.StringArray(req.Colors),
		Images:      pq.StringArray(req.Images),
		Metadata:    models.JSONB(req.Metadata),
		SortOrder:   req.SortOrder,
	}
	if productType.Currency == "" {
		productType.Currency = "USD"
	}
	if req.Status != "" {
		productType.Status = models.ProductTypeStatus(req.Status)
	} else {
		productType.Status = models.ProductTypeStatusDraft
	}

	if err := s.db.Create(productType).Error; err != nil {
		return nil, fmt.Errorf("failed to create product type: %w", err)
	}

	go s.createAuditLog("CREATE_PRODUCT_TYPE", "product_type", &productType.ID, nil,
		map[string]interface{}{"name": productType.Name, "slug": productType.Slug, "base_price": productType.BasePrice})

	return productType, nil
}

func (s *AdminService) UpdateProductType(id uuid.UUID, req *UpdateProductTypeRequest) (*models.ProductType, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var productType models.ProductType
	if err := s.db.First(&productType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product type not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	oldValues := map[string]interface{}{
		"name":       productType.Name,
		"base_price": productType.BasePrice,
		"status":     productType.Status,
	}

	if req.Slug != nil && *req.Slug != productType.Slug {
		var count int64
		s.db.Model(&models.ProductType{}).
			Where("slug = ? AND id != ?", *req.Slug, id).Count(&count)
		if count > 0 {
			return nil, errors.New("slug already in use")
		}
		productType.Slug = *req.Slug
	}
	if req.Name != nil {
		productType.Name = *req.Name
	}
	if req.Category != nil {
		productType.Category = *req.Category
	}
	if req.Description != nil {
		productType.Description = *req.Description
	}
	if req.BasePrice != nil {
		productType.BasePrice = *req.BasePrice
	}
	if req.Sizes != nil {
		productType.Sizes = pq.StringArray(req.Sizes)
	}
	if req.Colors != nil {
		productType.Colors = pq.StringArray(req.Colors)
	}
	if req.Images != nil {
		productType.Images = pq.StringArray(req.Images)
	}
	if req.Status != nil {
		productType.Status = models.ProductTypeStatus(*req.Status)
	}
	if req.SortOrder != nil {
		productType.SortOrder = *req.SortOrder
	}
	if req.Metadata != nil {
		productType.Metadata = models.JSONB(req.Metadata)
	}

	if err := s.db.Save(&productType).Error; err != nil {
		return nil, fmt.Errorf("failed to update product type: %w", err)
	}

	go s.createAuditLog("UPDATE_PRODUCT_TYPE", "product_type", &id, oldValues,
		map[string]interface{}{
			"name":       productType.Name,
			"base_price": productType.BasePrice,
			"status":     productType.Status,
		})

	return &productType, nil
}

func (s *AdminService) DeleteProductType(id uuid.UUID) error {
	var productType models.ProductType
	if err := s.db.First(&productType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product type not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Areas and groups go with the product so pricing can never resolve a
	// half-deleted configuration.
	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Where("product_type_id = ?", id).Delete(&models.DesignAreaGroup{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_type_id = ?", id).Delete(&models.DesignArea{}).Error; err != nil {
			return err
		}
		return tx.Delete(&productType).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete product type: %w", err)
	}

	go s.createAuditLog("DELETE_PRODUCT_TYPE", "product_type", &id,
		map[string]interface{}{"name": productType.Name, "slug": productType.Slug}, nil)

	return nil
}

// Design Area Management

// GetDesignAreas lists every area of a product type, inactive ones
// included, ordered the way the pricing engine consumes them.
func (s *AdminService) GetDesignAreas(productTypeID uuid.UUID) ([]models.DesignArea, error) {
	var areas []models.DesignArea
	if err := s.db.Where("product_type_id = ?", productTypeID).
		Order("sort_order ASC, created_at ASC").
		Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch design areas: %w", err)
	}
	return areas, nil
}

func (s *AdminService) CreateDesignArea(req *CreateDesignAreaRequest) (*models.DesignArea, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var productType models.ProductType
	if err := s.db.First(&productType, req.ProductTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product type not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = productType.Currency
	}
	if err := s.checkAreaCurrency(req.ProductTypeID, uuid.Nil, currency); err != nil {
		return nil, err
	}

	area := &models.DesignArea{
		ProductTypeID: req.ProductTypeID,
		AreaType:      models.AreaType(req.AreaType),
		Name:          req.Name,
		BasePrice:     req.BasePrice,
		ColorPrice:    req.ColorPrice,
		LayerPrice:    req.LayerPrice,
		SetupFee:      req.SetupFee,
		Currency:      currency,
		MaxColors:     req.MaxColors,
		PrintWidthIn:  req.PrintWidthIn,
		PrintHeightIn: req.PrintHeightIn,
		PrintMethods:  pq.StringArray(req.PrintMethods),
		IsActive:      true,
		SortOrder:     req.SortOrder,
	}
	if area.MaxColors == 0 {
		area.MaxColors = 8
	}

	if err := s.db.Create(area).Error; err != nil {
		return nil, fmt.Errorf("failed to create design area: %w", err)
	}

	go s.createAuditLog("CREATE_DESIGN_AREA", "design_area", &area.ID, nil, s.areaAuditValues(area))

	return area, nil
}

func (s *AdminService) UpdateDesignArea(id uuid.UUID, req *UpdateDesignAreaRequest) (*models.DesignArea, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var area models.DesignArea
	if err := s.db.First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("design area not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	oldValues := s.areaAuditValues(&area)

	if req.Currency != nil {
		currency := strings.ToUpper(*req.Currency)
		if err := s.checkAreaCurrency(area.ProductTypeID, area.ID, currency); err != nil {
			return nil, err
		}
		area.Currency = currency
	}
	if req.Name != nil {
		area.Name = *req.Name
	}
	if req.BasePrice != nil {
		area.BasePrice = *req.BasePrice
	}
	if req.ColorPrice != nil {
		area.ColorPrice = *req.ColorPrice
	}
	if req.LayerPrice != nil {
		area.LayerPrice = *req.LayerPrice
	}
	if req.SetupFee != nil {
		area.SetupFee = *req.SetupFee
	}
	if req.MaxColors != nil {
		area.MaxColors = *req.MaxColors
	}
	if req.PrintWidthIn != nil {
		area.PrintWidthIn = *req.PrintWidthIn
	}
	if req.PrintHeightIn != nil {
		area.PrintHeightIn = *req.PrintHeightIn
	}
	if req.PrintMethods != nil {
		area.PrintMethods = pq.StringArray(req.PrintMethods)
	}
	if req.IsActive != nil {
		area.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		area.SortOrder = *req.SortOrder
	}

	if err := s.db.Save(&area).Error; err != nil {
		return nil, fmt.Errorf("failed to update design area: %w", err)
	}

	go s.createAuditLog("UPDATE_DESIGN_AREA", "design_area", &id, oldValues, s.areaAuditValues(&area))

	return &area, nil
}

func (s *AdminService) DeleteDesignArea(id uuid.UUID) error {
	var area models.DesignArea
	if err := s.db.First(&area, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("design area not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	var groupCount int64
	s.db.Model(&models.DesignAreaGroup{}).
		Where("product_type_id = ? AND ? = ANY(area_ids)", area.ProductTypeID, id.String()).
		Count(&groupCount)
	if groupCount > 0 {
		return ErrAreaInGroup
	}

	if err := s.db.Delete(&area).Error; err != nil {
		return fmt.Errorf("failed to delete design area: %w", err)
	}

	go s.createAuditLog("DELETE_DESIGN_AREA", "design_area", &id, s.areaAuditValues(&area), nil)

	return nil
}

// Design Area Group Management

func (s *AdminService) GetDesignAreaGroups(productTypeID uuid.UUID) ([]models.DesignAreaGroup, error) {
	var groups []models.DesignAreaGroup
	if err := s.db.Where("product_type_id = ?", productTypeID).
		Order("sort_order ASC, created_at ASC").
		Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch design area groups: %w", err)
	}
	return groups, nil
}

func (s *AdminService) CreateDesignAreaGroup(req *CreateDesignAreaGroupRequest) (*models.DesignAreaGroup, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	areas, err := s.productAreas(req.ProductTypeID)
	if err != nil {
		return nil, err
	}

	if missing := missingAreaIDs(req.AreaIDs, areas); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrAreaNotInProduct, strings.Join(missing, ", "))
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" && len(areas) > 0 {
		currency = areas[0].Currency
	}
	for _, area := range areas {
		if currency != "" && area.Currency != currency {
			return nil, ErrAreaCurrencyMismatch
		}
	}

	var siblings []models.DesignAreaGroup
	if err := s.db.Where("product_type_id = ? AND is_active = ?", req.ProductTypeID, true).
		Find(&siblings).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if overlap := areaOverlap(req.AreaIDs, siblings, uuid.Nil); len(overlap) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrGroupAreaOverlap, strings.Join(overlap, ", "))
	}

	group := &models.DesignAreaGroup{
		ProductTypeID: req.ProductTypeID,
		Name:          req.Name,
		Strategy:      models.PricingStrategy(req.Strategy),
		GroupPrice:    req.GroupPrice,
		Currency:      currency,
		AreaIDs:       pq.StringArray(req.AreaIDs),
		MaxDesigns:    req.MaxDesigns,
		RequireAll:    req.RequireAll,
		IsActive:      true,
		SortOrder:     req.SortOrder,
	}
	if group.Currency == "" {
		group.Currency = "USD"
	}
	if group.MaxDesigns == 0 {
		group.MaxDesigns = 1
	}

	if err := s.db.Create(group).Error; err != nil {
		return nil, fmt.Errorf("failed to create design area group: %w", err)
	}

	go s.createAuditLog("CREATE_DESIGN_AREA_GROUP", "design_area_group", &group.ID, nil, s.groupAuditValues(group))

	return group, nil
}

func (s *AdminService) UpdateDesignAreaGroup(id uuid.UUID, req *UpdateDesignAreaGroupRequest) (*models.DesignAreaGroup, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var group models.DesignAreaGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("design area group not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	oldValues := s.groupAuditValues(&group)

	if req.Name != nil {
		group.Name = *req.Name
	}
	if req.Strategy != nil {
		group.Strategy = models.PricingStrategy(*req.Strategy)
	}
	if req.GroupPrice != nil {
		group.GroupPrice = req.GroupPrice
	}
	if req.Currency != nil {
		group.Currency = strings.ToUpper(*req.Currency)
	}
	if req.AreaIDs != nil {
		areas, err := s.productAreas(group.ProductTypeID)
		if err != nil {
			return nil, err
		}
		if missing := missingAreaIDs(req.AreaIDs, areas); len(missing) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrAreaNotInProduct, strings.Join(missing, ", "))
		}
		group.AreaIDs = pq.StringArray(req.AreaIDs)
	}
	if req.MaxDesigns != nil {
		group.MaxDesigns = *req.MaxDesigns
	}
	if req.RequireAll != nil {
		group.RequireAll = *req.RequireAll
	}
	if req.IsActive != nil {
		group.IsActive = *req.IsActive
	}
	if req.SortOrder != nil {
		group.SortOrder = *req.SortOrder
	}

	if group.Strategy == models.PricingStrategySingleCharge && group.GroupPrice == nil {
		return nil, ErrGroupPriceRequired
	}

	if group.IsActive {
		var siblings []models.DesignAreaGroup
		if err := s.db.Where("product_type_id = ? AND is_active = ?", group.ProductTypeID, true).
			Find(&siblings).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if overlap := areaOverlap(group.AreaIDs, siblings, group.ID); len(overlap) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrGroupAreaOverlap, strings.Join(overlap, ", "))
		}
	}

	if err := s.db.Save(&group).Error; err != nil {
		return nil, fmt.Errorf("failed to update design area group: %w", err)
	}

	go s.createAuditLog("UPDATE_DESIGN_AREA_GROUP", "design_area_group", &id, oldValues, s.groupAuditValues(&group))

	return &group, nil
}

func (s *AdminService) DeleteDesignAreaGroup(id uuid.UUID) error {
	var group models.DesignAreaGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("design area group not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&group).Error; err != nil {
		return fmt.Errorf("failed to delete design area group: %w", err)
	}

	go s.createAuditLog("DELETE_DESIGN_AREA_GROUP", "design_area_group", &id, s.groupAuditValues(&group), nil)

	return nil
}

// Transaction Management
func (s *AdminService) GetTransactions(filter AdminTransactionFilter) ([]models.Transaction, int64, error) {
	query := s.db.Model(&models.Transaction{})

	if filter.TransactionType != nil {
		query = query.Where("transaction_type = ?", *filter.TransactionType)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.QuoteReference != "" {
		query = query.Where("quote_reference = ?", filter.QuoteReference)
	}
	if filter.AmountMin != nil {
		query = query.Where("amount >= ?", *filter.AmountMin)
	}
	if filter.AmountMax != nil {
		query = query.Where("amount <= ?", *filter.AmountMax)
	}
	if filter.CreatedAfter != nil {
		query = query.Where("created_at >= ?", *filter.CreatedAfter)
	}
	if filter.CreatedBefore != nil {
		query = query.Where("created_at <= ?", *filter.CreatedBefore)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "amount", "status", "processed_at"}
	query = utils.ApplySort(query, filter.PaginationParams, allowedSortFields)
	query = utils.ApplyPagination(query, filter.PaginationParams)

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	return transactions, total, nil
}

// Audit Trail
func (s *AdminService) GetAuditLogs(params utils.PaginationParams, resourceType string) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})

	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}
	if params.Search != "" {
		query = query.Where("action ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count audit logs: %w", err)
	}

	allowedSortFields := []string{"created_at", "action", "resource_type"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	return logs, total, nil
}

// Helper methods
func (s *AdminService) createAuditLog(action, resourceType string, resourceID *uuid.UUID, oldValues, newValues map[string]interface{}) {
	auditLog := &models.AuditLog{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		OldValues:    models.JSONB(oldValues),
		NewValues:    models.JSONB(newValues),
	}

	s.db.Create(auditLog)
}

func (s *AdminService) productAreas(productTypeID uuid.UUID) ([]models.DesignArea, error) {
	var areas []models.DesignArea
	if err := s.db.Where("product_type_id = ?", productTypeID).Find(&areas).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return areas, nil
}

func (s *AdminService) checkAreaCurrency(productTypeID, excludeAreaID uuid.UUID, currency string) error {
	if currency == "" {
		return nil
	}

	var siblings []models.DesignArea
	query := s.db.Where("product_type_id = ?", productTypeID)
	if excludeAreaID != uuid.Nil {
		query = query.Where("id != ?", excludeAreaID)
	}
	if err := query.Find(&siblings).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	for _, sibling := range siblings {
		if sibling.Currency != currency {
			return ErrAreaCurrencyMismatch
		}
	}
	return nil
}

func (s *AdminService) areaAuditValues(area *models.DesignArea) map[string]interface{} {
	return map[string]interface{}{
		"name":        area.Name,
		"base_price":  area.BasePrice,
		"color_price": area.ColorPrice,
		"layer_price": area.LayerPrice,
		"setup_fee":   area.SetupFee,
		"currency":    area.Currency,
		"is_active":   area.IsActive,
	}
}

func (s *AdminService) groupAuditValues(group *models.DesignAreaGroup) map[string]interface{} {
	values := map[string]interface{}{
		"name":      group.Name,
		"strategy":  group.Strategy,
		"area_ids":  []string(group.AreaIDs),
		"is_active": group.IsActive,
	}
	if group.GroupPrice != nil {
		values["group_price"] = *group.GroupPrice
	}
	return values
}

// missingAreaIDs returns the requested ids that do not identify one of the
// product type's design areas.
func missingAreaIDs(requested []string, areas []models.DesignArea) []string {
	known := make(map[string]bool, len(areas))
	for _, area := range areas {
		known[area.ID.String()] = true
	}

	var missing []string
	for _, id := range requested {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

// areaOverlap returns the area ids already claimed by another group. An
// area may belong to at most one active group per product type so the
// pricing engine never has to arbitrate between strategies.
func areaOverlap(areaIDs []string, groups []models.DesignAreaGroup, excludeGroupID uuid.UUID) []string {
	claimed := make(map[string]bool)
	for _, group := range groups {
		if group.ID == excludeGroupID {
			continue
		}
		for _, id := range group.AreaIDs {
			claimed[id] = true
		}
	}

	var overlap []string
	for _, id := range areaIDs {
		if claimed[id] {
			overlap = append(overlap, id)
		}
	}
	return overlap
}
