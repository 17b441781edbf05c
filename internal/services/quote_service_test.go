// internal/services/quote_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/pricing"
)

type stubPriceResult struct {
	productType *models.ProductType
	calc        *pricing.Calculation
	err         error
}

type stubPricer struct {
	results map[uuid.UUID]stubPriceResult
	designs map[uuid.UUID][]DesignSubmissionRequest
}

func (p *stubPricer) PriceDesigns(productTypeID uuid.UUID, quantity int, designs []DesignSubmissionRequest) (*models.ProductType, *pricing.Calculation, error) {
	if p.designs == nil {
		p.designs = make(map[uuid.UUID][]DesignSubmissionRequest)
	}
	p.designs[productTypeID] = designs

	result, ok := p.results[productTypeID]
	if !ok {
		return nil, nil, errors.New("product type not found")
	}
	return result.productType, result.calc, result.err
}

type stubEstimator struct {
	colors int
	err    error
	calls  int
}

func (e *stubEstimator) EstimateColors(artworkID uuid.UUID) (int, error) {
	e.calls++
	return e.colors, e.err
}

func stubProductType(id uuid.UUID, name string, basePrice float64) *models.ProductType {
	return &models.ProductType{
		BaseModel: models.BaseModel{ID: id},
		Name:      name,
		BasePrice: basePrice,
		Currency:  "USD",
	}
}

func stubCalc(subtotal, setupFees float64, currency string) *pricing.Calculation {
	return &pricing.Calculation{
		Subtotal:  subtotal,
		SetupFees: setupFees,
		Total:     subtotal + setupFees,
		Currency:  currency,
	}
}

func quoteFile(areaID string) QuoteFileRequest {
	return QuoteFileRequest{AreaID: areaID, Colors: 2, Layers: 1}
}

func TestCreateQuoteSingleProduct(t *testing.T) {
	teeID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID: {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(52.50, 5.00, "USD")},
	}}
	svc := NewQuoteService(pricer, nil)

	resp, err := svc.CreateQuote(&DesignQuoteRequest{
		Products: []QuoteProductRequest{{
			ProductTypeID: teeID,
			Quantity:      2,
			Files:         []QuoteFileRequest{quoteFile(uuid.NewString())},
		}},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.QuoteReferenceID)
	assert.Empty(t, resp.Errors)
	require.Len(t, resp.Quotes, 1)

	quote := resp.Quotes[0]
	require.Len(t, quote.Items, 1)
	item := quote.Items[0]
	assert.Equal(t, "item-1", item.Reference)
	assert.Equal(t, "Classic Tee", item.ProductName)
	assert.Equal(t, 24.00, item.MerchandiseCost)
	assert.Equal(t, 81.50, item.ItemTotal)

	assert.Equal(t, []string{"item-1"}, quote.ItemReferences)
	assert.Equal(t, 24.00, quote.MerchandiseTotal)
	assert.Equal(t, 52.50, quote.PrintSubtotal)
	assert.Equal(t, 5.00, quote.SetupFees)
	assert.Equal(t, 57.50, quote.PrintTotal)
	assert.Equal(t, 81.50, quote.GrandTotal)
	assert.Equal(t, "USD", quote.Currency)
	assert.Nil(t, quote.Savings)
	assert.Equal(t, 3, quote.EstimatedDaysMin)
	assert.Equal(t, 7, quote.EstimatedDaysMax)
	assert.True(t, quote.ValidUntil.Equal(quote.CreatedAt.AddDate(0, 0, 30)))
}

func TestCreateQuoteEchoesReference(t *testing.T) {
	teeID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID: {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(10.00, 0, "USD")},
	}}
	svc := NewQuoteService(pricer, nil)

	resp, err := svc.CreateQuote(&DesignQuoteRequest{
		QuoteReferenceID: "Q-1001",
		Products: []QuoteProductRequest{{
			ProductTypeID: teeID,
			Quantity:      1,
			Files:         []QuoteFileRequest{quoteFile(uuid.NewString())},
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Q-1001", resp.QuoteReferenceID)
}

func TestCreateQuoteUrgentWindow(t *testing.T) {
	teeID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID: {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(10.00, 0, "USD")},
	}}
	svc := NewQuoteService(pricer, nil)

	resp, err := svc.CreateQuote(&DesignQuoteRequest{
		Urgent: true,
		Products: []QuoteProductRequest{{
			ProductTypeID: teeID,
			Quantity:      1,
			Files:         []QuoteFileRequest{quoteFile(uuid.NewString())},
		}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Quotes, 1)
	assert.Equal(t, 1, resp.Quotes[0].EstimatedDaysMin)
	assert.Equal(t, 3, resp.Quotes[0].EstimatedDaysMax)
}

func TestCreateQuoteMergesProducts(t *testing.T) {
	teeID := uuid.New()
	hoodieID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID:    {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(52.50, 5.00, "USD")},
		hoodieID: {productType: stubProductType(hoodieID, "Pullover Hoodie", 28.00), calc: stubCalc(20.00, 6.00, "USD")},
	}}
	svc := NewQuoteService(pricer, nil)

	resp, err := svc.CreateQuote(&DesignQuoteRequest{
		Products: []QuoteProductRequest{
			{Reference: "tees", ProductTypeID: teeID, Quantity: 2, Files: []QuoteFileRequest{quoteFile(uuid.NewString())}},
			{Reference: "hoodies", ProductTypeID: hoodieID, Quantity: 1, Files: []QuoteFileRequest{quoteFile(uuid.NewString())}},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Quotes, 1)

	quote := resp.Quotes[0]
	require.Len(t, quote.Items, 2)
	assert.Equal(t, []string{"tees", "hoodies"}, quote.ItemReferences)
	// 12.00*2 + 28.00*1 merchandise, 57.50 + 26.00 print
	assert.Equal(t, 52.00, quote.MerchandiseTotal)
	assert.Equal(t, 72.50, quote.PrintSubtotal)
	assert.Equal(t, 11.00, quote.SetupFees)
	assert.Equal(t, 83.50, quote.PrintTotal)
	assert.Equal(t, 135.50, quote.GrandTotal)
}

func TestCreateQuoteSeparateQuotes(t *testing.T) {
	teeID := uuid.New()
	hoodieID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID:    {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(10.00, 0, "USD")},
		hoodieID: {productType: stubProductType(hoodieID, "Pullover Hoodie", 28.00), calc: stubCalc(20.00, 0, "USD")},
	}}
	svc := NewQuoteService(pricer, nil)

	resp, err := svc.CreateQuote(&DesignQuoteRequest{
		AllowMultipleQuotes: true,
		Products: []QuoteProductRequest{
			{ProductTypeID: teeID, Quantity: 1, Files: []QuoteFileRequest{quoteFile(uuid.NewString())}},
			{ProductTypeID: hoodieID, Quantity: 1, Files: []QuoteFileRequest{quoteFile(uuid.NewString())}},
		},
	})
	require.NoError(t, err)
	require.Len(t, resp.Quotes, 2)
	assert.Len(t, resp.Quotes[0].Items, 1)
	assert.Len(t, resp.Quotes[1].Items, 1)
	assert.NotEqual(t, resp.Quotes[0].QuoteNumber, resp.Quotes[1].QuoteNumber)
}

func TestCreateQuotePartialErrors(t *testing.T) {
	teeID := uuid.New()
	missingID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID: {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(10.00, 0, "USD")},
	}}
	svc := NewQuoteService(pricer, nil)

	resp, err := svc.CreateQuote(&DesignQuoteRequest{
		Products: []QuoteProductRequest{
			{ProductTypeID: teeID, Quantity: 1, Files: []QuoteFileRequest{quoteFile(uuid.NewString())}},
			{Reference: "bad", ProductTypeID: missingID, Quantity: 1, Files: []QuoteFileRequest{quoteFile(uuid.NewString())}},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Quotes, 1)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "bad", resp.Errors[0].Reference)
	assert.Equal(t, missingID, resp.Errors[0].ProductTypeID)
	assert.Contains(t, resp.Errors[0].Message, "not found")
	require.Len(t, resp.Quotes[0].Items, 1)
	assert.Equal(t, teeID, resp.Quotes[0].Items[0].ProductTypeID)
}

func TestCreateQuoteFillsColorAndLayerDefaults(t *testing.T) {
	teeID := uuid.New()
	artworkID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID: {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(10.00, 0, "USD")},
	}}
	estimator := &stubEstimator{colors: 6}
	svc := NewQuoteService(pricer, estimator)

	areaID := uuid.NewString()
	_, err := svc.CreateQuote(&DesignQuoteRequest{
		Products: []QuoteProductRequest{{
			ProductTypeID: teeID,
			Quantity:      1,
			PrintMethod:   "screen_print",
			Files:         []QuoteFileRequest{{AreaID: areaID, ArtworkID: &artworkID}},
		}},
	})
	require.NoError(t, err)

	require.Len(t, pricer.designs[teeID], 1)
	design := pricer.designs[teeID][0]
	assert.Equal(t, 6, design.Colors)
	assert.Equal(t, 1, design.Layers)
	assert.Equal(t, "screen_print", design.PrintMethod)
	assert.Equal(t, 1, estimator.calls)
}

func TestCreateQuoteDefaultColorsWithoutEstimator(t *testing.T) {
	teeID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID: {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(10.00, 0, "USD")},
	}}
	svc := NewQuoteService(pricer, nil)

	_, err := svc.CreateQuote(&DesignQuoteRequest{
		Products: []QuoteProductRequest{{
			ProductTypeID: teeID,
			Quantity:      1,
			Files:         []QuoteFileRequest{{AreaID: uuid.NewString()}},
		}},
	})
	require.NoError(t, err)

	require.Len(t, pricer.designs[teeID], 1)
	assert.Equal(t, defaultColorEstimate, pricer.designs[teeID][0].Colors)
}

func TestCreateQuoteFallsBackWhenEstimatorFails(t *testing.T) {
	teeID := uuid.New()
	artworkID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID: {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(10.00, 0, "USD")},
	}}
	estimator := &stubEstimator{err: errors.New("artwork not found")}
	svc := NewQuoteService(pricer, estimator)

	_, err := svc.CreateQuote(&DesignQuoteRequest{
		Products: []QuoteProductRequest{{
			ProductTypeID: teeID,
			Quantity:      1,
			Files:         []QuoteFileRequest{{AreaID: uuid.NewString(), ArtworkID: &artworkID}},
		}},
	})
	require.NoError(t, err)

	assert.Equal(t, defaultColorEstimate, pricer.designs[teeID][0].Colors)
}

func TestCreateQuoteCurrencyMismatchCollected(t *testing.T) {
	teeID := uuid.New()
	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		teeID: {productType: stubProductType(teeID, "Classic Tee", 12.00), calc: stubCalc(10.00, 0, "EUR")},
	}}
	svc := NewQuoteService(pricer, nil)

	resp, err := svc.CreateQuote(&DesignQuoteRequest{
		Currency: "USD",
		Products: []QuoteProductRequest{{
			ProductTypeID: teeID,
			Quantity:      1,
			Files:         []QuoteFileRequest{quoteFile(uuid.NewString())},
		}},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Quotes)
	require.Len(t, resp.Errors, 1)
	assert.Contains(t, resp.Errors[0].Message, "EUR")
}

func TestCreateQuoteAggregatesSavings(t *testing.T) {
	hoodieID := uuid.New()
	calc := stubCalc(5.00, 0, "USD")
	savings := 1.00
	calc.Savings = &savings

	pricer := &stubPricer{results: map[uuid.UUID]stubPriceResult{
		hoodieID: {productType: stubProductType(hoodieID, "Pullover Hoodie", 28.00), calc: calc},
	}}
	svc := NewQuoteService(pricer, nil)

	resp, err := svc.CreateQuote(&DesignQuoteRequest{
		Products: []QuoteProductRequest{{
			ProductTypeID: hoodieID,
			Quantity:      1,
			Files:         []QuoteFileRequest{quoteFile(uuid.NewString())},
		}},
	})
	require.NoError(t, err)

	require.Len(t, resp.Quotes, 1)
	require.NotNil(t, resp.Quotes[0].Savings)
	assert.Equal(t, 1.00, *resp.Quotes[0].Savings)
}

func TestCreateQuoteValidation(t *testing.T) {
	svc := NewQuoteService(&stubPricer{}, nil)

	_, err := svc.CreateQuote(&DesignQuoteRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}
