// internal/handlers/payment.go
package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/threadforge/pod-backend/internal/i18n"
	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/services"
	"github.com/threadforge/pod-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// GET /payments/config
func (h *PaymentHandler) GetPaymentConfig(c *gin.Context) {
	utils.SuccessResponse(c, h.paymentService.GetPaymentConfig())
}

// POST /payments/quote-deposit
func (h *PaymentHandler) CreateQuoteDeposit(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateQuoteDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	response, err := h.paymentService.CreateQuoteDeposit(&req)
	if err != nil {
		if strings.Contains(err.Error(), "deposit already collected") {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.CreatedResponse(c, response)
}

// POST /payments/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	transaction, err := h.paymentService.ConfirmPayment(&req)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "payment")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	messageKey := i18n.KeyPaymentSuccess
	switch transaction.Status {
	case models.TransactionStatusPending:
		messageKey = i18n.KeyPaymentPending
	case models.TransactionStatusFailed:
		messageKey = i18n.KeyPaymentFailed
	}

	utils.SuccessResponse(c, gin.H{
		"message":     i18n.T(lang, messageKey),
		"transaction": transaction,
	})
}

// GET /payments/:id
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid transaction ID", nil)
		return
	}

	transaction, err := h.paymentService.GetTransaction(id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.NotFoundResponse(c, "payment")
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"transaction": transaction,
	})
}

// GET /payments/quote/:reference
func (h *PaymentHandler) GetQuotePayments(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		utils.BadRequestResponse(c, "Quote reference is required", nil)
		return
	}

	transactions, err := h.paymentService.GetQuotePayments(reference)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"quote_reference": reference,
		"transactions":    transactions,
	})
}
