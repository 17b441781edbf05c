// internal/handlers/pricing.go
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadforge/pod-backend/internal/i18n"
	"github.com/threadforge/pod-backend/internal/pricing"
	"github.com/threadforge/pod-backend/internal/services"
	"github.com/threadforge/pod-backend/internal/utils"
)

type PricingHandler struct {
	pricingService *services.PricingService
	catalogService *services.CatalogService
}

func NewPricingHandler(pricingService *services.PricingService, catalogService *services.CatalogService) *PricingHandler {
	return &PricingHandler{
		pricingService: pricingService,
		catalogService: catalogService,
	}
}

// POST /design-pricing
func (h *PricingHandler) CalculatePricing(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.DesignPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	result, err := h.pricingService.CalculateDesignPricing(&req)
	if err != nil {
		h.respondPricingError(c, lang, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyPricingCalculated),
		"pricing": result,
	})
}

// GET /design-pricing?product_type_id=
func (h *PricingHandler) GetDesignConfiguration(c *gin.Context) {
	idStr := c.Query("product_type_id")
	if idStr == "" {
		utils.BadRequestResponse(c, "product_type_id is required", nil)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product type ID", nil)
		return
	}

	config, err := h.catalogService.GetDesignConfiguration(id)
	if err != nil {
		h.respondConfigError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"design_config": config,
	})
}

func (h *PricingHandler) respondPricingError(c *gin.Context, lang string, err error) {
	switch {
	case errors.Is(err, pricing.ErrInvalidQuantity):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyPricingInvalidQuantity), err.Error())

	case errors.Is(err, pricing.ErrUnknownArea):
		utils.UnprocessableResponse(c, "UNKNOWN_DESIGN_AREA", err.Error())

	case errors.Is(err, pricing.ErrCurrencyMismatch):
		utils.UnprocessableResponse(c, "CURRENCY_MISMATCH", i18n.T(lang, i18n.KeyPricingCurrencyMismatch))

	case errors.Is(err, services.ErrNoAreasConfigured):
		utils.ErrorResponse(c, http.StatusNotFound, "NO_DESIGN_AREAS", i18n.T(lang, i18n.KeyDesignAreaNoneConfigured), nil)

	case strings.Contains(err.Error(), "not found"):
		utils.NotFoundResponse(c, "product_type")

	case strings.Contains(err.Error(), "validation failed"):
		utils.BadRequestResponse(c, err.Error(), nil)

	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

func (h *PricingHandler) respondConfigError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrNoAreasConfigured):
		utils.ErrorResponse(c, http.StatusNotFound, "NO_DESIGN_AREAS", i18n.T(lang, i18n.KeyDesignAreaNoneConfigured), nil)

	case strings.Contains(err.Error(), "not found"):
		utils.NotFoundResponse(c, "product_type")

	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
