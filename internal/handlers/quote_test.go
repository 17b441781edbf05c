// internal/handlers/quote_test.go
package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/pricing"
	"github.com/threadforge/pod-backend/internal/services"
)

type fakeDesignPricer struct {
	product *models.ProductType
	calc    *pricing.Calculation
	err     error
}

func (f *fakeDesignPricer) PriceDesigns(productTypeID uuid.UUID, quantity int, designs []services.DesignSubmissionRequest) (*models.ProductType, *pricing.Calculation, error) {
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.product, f.calc, nil
}

func setupQuoteRouter(pricer services.DesignPricer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewQuoteHandler(services.NewQuoteService(pricer, nil))
	router.POST("/design-quote", handler.CreateQuote)
	return router
}

func quoteRequestBody(productTypeID uuid.UUID) map[string]interface{} {
	return map[string]interface{}{
		"products": []map[string]interface{}{
			{
				"product_type_id": productTypeID.String(),
				"quantity":        10,
				"files": []map[string]interface{}{
					{"area_id": uuid.NewString(), "colors": 2},
				},
			},
		},
	}
}

func TestCreateQuoteReturnsPricedQuote(t *testing.T) {
	productTypeID := uuid.New()
	pricer := &fakeDesignPricer{
		product: &models.ProductType{
			BaseModel: models.BaseModel{ID: productTypeID},
			Name:      "Classic Tee",
			BasePrice: 12.00,
			Currency:  "USD",
		},
		calc: &pricing.Calculation{
			Subtotal:  52.50,
			SetupFees: 5.00,
			Total:     57.50,
			Currency:  "USD",
		},
	}
	router := setupQuoteRouter(pricer)

	w := postJSON(t, router, "/design-quote", quoteRequestBody(productTypeID))

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["quote_reference_id"])

	quotes, ok := data["quotes"].([]interface{})
	require.True(t, ok)
	require.Len(t, quotes, 1)

	quote := quotes[0].(map[string]interface{})
	assert.Equal(t, 120.00, quote["merchandise_total"])
	assert.Equal(t, 52.50, quote["print_subtotal"])
	assert.Equal(t, 5.00, quote["setup_fees"])
	assert.Equal(t, 57.50, quote["print_total"])
	assert.Equal(t, 177.50, quote["grand_total"])
	assert.Equal(t, "USD", quote["currency"])

	_, hasErrors := data["errors"]
	if hasErrors {
		assert.Empty(t, data["errors"])
	}
}

func TestCreateQuoteCollectsProductErrors(t *testing.T) {
	pricer := &fakeDesignPricer{err: errors.New("product type not found")}
	router := setupQuoteRouter(pricer)

	w := postJSON(t, router, "/design-quote", quoteRequestBody(uuid.New()))

	assert.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)

	quotes, ok := data["quotes"].([]interface{})
	require.True(t, ok)
	assert.Empty(t, quotes)

	errs, ok := data["errors"].([]interface{})
	require.True(t, ok)
	require.Len(t, errs, 1)

	firstErr := errs[0].(map[string]interface{})
	assert.Contains(t, firstErr["message"], "not found")
}

func TestCreateQuoteValidation(t *testing.T) {
	router := setupQuoteRouter(&fakeDesignPricer{})

	t.Run("empty products", func(t *testing.T) {
		w := postJSON(t, router, "/design-quote", map[string]interface{}{
			"products": []map[string]interface{}{},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})

	t.Run("product without files", func(t *testing.T) {
		w := postJSON(t, router, "/design-quote", map[string]interface{}{
			"products": []map[string]interface{}{
				{"product_type_id": uuid.NewString(), "quantity": 5},
			},
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	})

	t.Run("unknown shipment method", func(t *testing.T) {
		body := quoteRequestBody(uuid.New())
		body["shipment_method"] = "drone"
		w := postJSON(t, router, "/design-quote", body)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
