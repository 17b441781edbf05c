// internal/handlers/admin.go
package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadforge/pod-backend/internal/i18n"
	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/services"
	"github.com/threadforge/pod-backend/internal/utils"
)

type AdminHandler struct {
	adminService   *services.AdminService
	paymentService *services.PaymentService
}

func NewAdminHandler(adminService *services.AdminService, paymentService *services.PaymentService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		paymentService: paymentService,
	}
}

// GET /admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"stats": stats,
	})
}

// GET /admin/product-types
func (h *AdminHandler) GetProductTypes(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	var status *models.ProductTypeStatus
	if statusStr := c.Query("status"); statusStr != "" {
		productStatus := models.ProductTypeStatus(statusStr)
		status = &productStatus
	}

	productTypes, total, err := h.adminService.GetProductTypes(params, status)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(productTypes, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/product-types
func (h *AdminHandler) CreateProductType(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	productType, err := h.adminService.CreateProductType(&req)
	if err != nil {
		if strings.Contains(err.Error(), "slug already in use") {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyProductTypeCreated),
		"product_type": productType,
	})
}

// PUT /admin/product-types/:id
func (h *AdminHandler) UpdateProductType(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product type ID", nil)
		return
	}

	var req services.UpdateProductTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	productType, err := h.adminService.UpdateProductType(id, &req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "product_type")
		case strings.Contains(err.Error(), "slug already in use"):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":      i18n.T(lang, i18n.KeyProductTypeUpdated),
		"product_type": productType,
	})
}

// DELETE /admin/product-types/:id
func (h *AdminHandler) DeleteProductType(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid product type ID", nil)
		return
	}

	if err := h.adminService.DeleteProductType(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "product_type")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductTypeDeleted),
	})
}

// GET /admin/design-areas?product_type_id=
func (h *AdminHandler) GetDesignAreas(c *gin.Context) {
	productTypeID, err := uuid.Parse(c.Query("product_type_id"))
	if err != nil {
		utils.BadRequestResponse(c, "product_type_id is required", nil)
		return
	}

	areas, err := h.adminService.GetDesignAreas(productTypeID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"design_areas": areas,
	})
}

// POST /admin/design-areas
func (h *AdminHandler) CreateDesignArea(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateDesignAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	area, err := h.adminService.CreateDesignArea(&req)
	if err != nil {
		h.respondAreaError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyDesignAreaCreated),
		"design_area": area,
	})
}

// PUT /admin/design-areas/:id
func (h *AdminHandler) UpdateDesignArea(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid design area ID", nil)
		return
	}

	var req services.UpdateDesignAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	area, err := h.adminService.UpdateDesignArea(id, &req)
	if err != nil {
		h.respondAreaError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyDesignAreaUpdated),
		"design_area": area,
	})
}

// DELETE /admin/design-areas/:id
func (h *AdminHandler) DeleteDesignArea(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid design area ID", nil)
		return
	}

	if err := h.adminService.DeleteDesignArea(id); err != nil {
		switch {
		case errors.Is(err, services.ErrAreaInGroup):
			utils.ConflictResponse(c, err.Error())
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "design_area")
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDesignAreaDeleted),
	})
}

// GET /admin/design-area-groups?product_type_id=
func (h *AdminHandler) GetDesignAreaGroups(c *gin.Context) {
	productTypeID, err := uuid.Parse(c.Query("product_type_id"))
	if err != nil {
		utils.BadRequestResponse(c, "product_type_id is required", nil)
		return
	}

	groups, err := h.adminService.GetDesignAreaGroups(productTypeID)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"design_area_groups": groups,
	})
}

// POST /admin/design-area-groups
func (h *AdminHandler) CreateDesignAreaGroup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateDesignAreaGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	group, err := h.adminService.CreateDesignAreaGroup(&req)
	if err != nil {
		h.respondGroupError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":           i18n.T(lang, i18n.KeyDesignAreaGroupCreated),
		"design_area_group": group,
	})
}

// PUT /admin/design-area-groups/:id
func (h *AdminHandler) UpdateDesignAreaGroup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid design area group ID", nil)
		return
	}

	var req services.UpdateDesignAreaGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	group, err := h.adminService.UpdateDesignAreaGroup(id, &req)
	if err != nil {
		h.respondGroupError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":           i18n.T(lang, i18n.KeyDesignAreaGroupUpdated),
		"design_area_group": group,
	})
}

// DELETE /admin/design-area-groups/:id
func (h *AdminHandler) DeleteDesignAreaGroup(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid design area group ID", nil)
		return
	}

	if err := h.adminService.DeleteDesignAreaGroup(id); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "design_area_group")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyDesignAreaGroupDeleted),
	})
}

// GET /admin/transactions
func (h *AdminHandler) GetTransactions(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	filter := services.AdminTransactionFilter{
		PaginationParams: params,
	}

	if txType := c.Query("transaction_type"); txType != "" {
		transactionType := models.TransactionType(txType)
		filter.TransactionType = &transactionType
	}
	if status := c.Query("status"); status != "" {
		transactionStatus := models.TransactionStatus(status)
		filter.Status = &transactionStatus
	}
	if ref := c.Query("quote_reference"); ref != "" {
		filter.QuoteReference = ref
	}
	if afterStr := c.Query("created_after"); afterStr != "" {
		if after, err := time.Parse(time.RFC3339, afterStr); err == nil {
			filter.CreatedAfter = &after
		}
	}
	if beforeStr := c.Query("created_before"); beforeStr != "" {
		if before, err := time.Parse(time.RFC3339, beforeStr); err == nil {
			filter.CreatedBefore = &before
		}
	}

	transactions, total, err := h.adminService.GetTransactions(filter)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(transactions, total, params)
	utils.PaginatedResponse(c, result)
}

// GET /admin/audit-logs
func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	resourceType := c.Query("resource_type")

	logs, total, err := h.adminService.GetAuditLogs(params, resourceType)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	result := utils.CreatePaginationResult(logs, total, params)
	utils.PaginatedResponse(c, result)
}

// POST /admin/payments/refund
func (h *AdminHandler) ProcessRefund(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	transaction, err := h.paymentService.ProcessRefund(&req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			utils.NotFoundResponse(c, "payment")
		case strings.Contains(err.Error(), "can only refund"):
			utils.ConflictResponse(c, err.Error())
		default:
			utils.BadRequestResponse(c, err.Error(), nil)
		}
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, i18n.KeyPaymentRefunded),
		"transaction": transaction,
	})
}

func (h *AdminHandler) respondAreaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrAreaCurrencyMismatch):
		utils.UnprocessableResponse(c, "CURRENCY_MISMATCH", err.Error())

	case strings.Contains(err.Error(), "product type not found"):
		utils.NotFoundResponse(c, "product_type")

	case strings.Contains(err.Error(), "design area not found"):
		utils.NotFoundResponse(c, "design_area")

	case strings.Contains(err.Error(), "validation failed"):
		utils.BadRequestResponse(c, err.Error(), nil)

	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}

func (h *AdminHandler) respondGroupError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)
	switch {
	case errors.Is(err, services.ErrGroupAreaOverlap):
		utils.ErrorResponse(c, http.StatusConflict, "AREA_OVERLAP", i18n.T(lang, i18n.KeyDesignAreaGroupOverlap), err.Error())

	case errors.Is(err, services.ErrAreaNotInProduct):
		utils.UnprocessableResponse(c, "AREA_NOT_IN_PRODUCT", err.Error())

	case errors.Is(err, services.ErrAreaCurrencyMismatch):
		utils.UnprocessableResponse(c, "CURRENCY_MISMATCH", err.Error())

	case errors.Is(err, services.ErrGroupPriceRequired):
		utils.BadRequestResponse(c, err.Error(), nil)

	case strings.Contains(err.Error(), "product type not found"):
		utils.NotFoundResponse(c, "product_type")

	case strings.Contains(err.Error(), "group not found"):
		utils.NotFoundResponse(c, "design_area_group")

	case strings.Contains(err.Error(), "validation failed"):
		utils.BadRequestResponse(c, err.Error(), nil)

	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
