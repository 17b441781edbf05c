// internal/handlers/quote.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/threadforge/pod-backend/internal/i18n"
	"github.com/threadforge/pod-backend/internal/services"
	"github.com/threadforge/pod-backend/internal/utils"
)

type QuoteHandler struct {
	quoteService *services.QuoteService
}

func NewQuoteHandler(quoteService *services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		quoteService: quoteService,
	}
}

// POST /design-quote
func (h *QuoteHandler) CreateQuote(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.DesignQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	resp, err := h.quoteService.CreateQuote(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	// Products that failed to price surface in the errors list while the
	// rest of the batch still quotes.
	message := i18n.T(lang, i18n.KeyQuoteCreated)
	if len(resp.Errors) > 0 {
		message = i18n.T(lang, i18n.KeyQuotePartialErrors)
	}

	utils.CreatedResponse(c, gin.H{
		"message":            message,
		"quote_reference_id": resp.QuoteReferenceID,
		"quotes":             resp.Quotes,
		"errors":             resp.Errors,
	})
}
