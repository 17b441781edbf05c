// internal/handlers/catalog.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadforge/pod-backend/internal/i18n"
	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/services"
	"github.com/threadforge/pod-backend/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GET /product-types
func (h *CatalogHandler) GetProductTypes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ProductTypeSearchParams{
		PaginationParams: params,
	}

	if status := c.Query("status"); status != "" {
		productStatus := models.ProductTypeStatus(status)
		searchParams.Status = &productStatus
	}

	productTypes, total, err := h.catalogService.ListProductTypes(searchParams)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(productTypes, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /product-types/:id
func (h *CatalogHandler) GetProductType(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product type ID", nil)
		return
	}

	productType, err := h.catalogService.GetProductType(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "product_type")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_type": productType,
	})
}

// GET /product-types/slug/:slug
func (h *CatalogHandler) GetProductTypeBySlug(c *gin.Context) {
	slug := c.Param("slug")

	productType, err := h.catalogService.GetProductTypeBySlug(slug)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "product_type")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_type": productType,
	})
}

// GET /product-types/:id/design-config
func (h *CatalogHandler) GetDesignConfiguration(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product type ID", nil)
		return
	}

	config, err := h.catalogService.GetDesignConfiguration(id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoAreasConfigured):
			utils.ErrorResponse(c, http.StatusNotFound, "NO_DESIGN_AREAS", i18n.T(lang, i18n.KeyDesignAreaNoneConfigured), nil)
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "product_type")
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"design_config": config,
	})
}
