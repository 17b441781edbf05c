// internal/services/quote_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/pricing"
	"github.com/threadforge/pod-backend/internal/utils"
)

// Colors assumed for a file nobody counted or analyzed.
const defaultColorEstimate = 4

const quoteValidityDays = 30

// DesignPricer prices a set of design submissions against a product's
// configured areas and groups.
type DesignPricer interface {
	PriceDesigns(productTypeID uuid.UUID, quantity int, designs []DesignSubmissionRequest) (*models.ProductType, *pricing.Calculation, error)
}

// ColorEstimator guesses how many ink colors an uploaded artwork needs.
type ColorEstimator interface {
	EstimateColors(artworkID uuid.UUID) (int, error)
}

type QuoteService struct {
	pricer    DesignPricer
	estimator ColorEstimator
}

type DesignQuoteRequest struct {
	QuoteReferenceID    string                `json:"quote_reference_id,omitempty" validate:"omitempty,max=64"`
	Currency            string                `json:"currency,omitempty" validate:"omitempty,iso4217"`
	Products            []QuoteProductRequest `json:"products" validate:"required,min=1,dive"`
	Urgent              bool                  `json:"urgent,omitempty"`
	AllowMultipleQuotes bool                  `json:"allow_multiple_quotes,omitempty"`
	ShipmentMethod      string                `json:"shipment_method,omitempty" validate:"omitempty,oneof=standard express pickup"`
}

type QuoteProductRequest struct {
	Reference     string             `json:"reference,omitempty" validate:"omitempty,max=64"`
	ProductTypeID uuid.UUID          `json:"product_type_id" validate:"required"`
	Quantity      int                `json:"quantity" validate:"required,min=1"`
	PrintMethod   string             `json:"print_method,omitempty" validate:"omitempty,print_method"`
	Files         []QuoteFileRequest `json:"files" validate:"required,min=1,dive"`
}

type QuoteFileRequest struct {
	AreaID    string               `json:"area_id" validate:"required,uuid"`
	URL       string               `json:"url,omitempty" validate:"omitempty,url"`
	ArtworkID *uuid.UUID           `json:"artwork_id,omitempty"`
	Colors    int                  `json:"colors,omitempty" validate:"omitempty,min=1,max=16"`
	Layers    int                  `json:"layers,omitempty" validate:"omitempty,min=1,max=10"`
	Metadata  *FileMetadataRequest `json:"metadata,omitempty"`
}

type DesignQuoteResponse struct {
	QuoteReferenceID string       `json:"quote_reference_id"`
	Quotes           []Quote      `json:"quotes"`
	Errors           []QuoteError `json:"errors,omitempty"`
}

type Quote struct {
	QuoteNumber      string      `json:"quote_number"`
	ItemReferences   []string    `json:"item_references"`
	Items            []QuoteItem `json:"items"`
	MerchandiseTotal float64     `json:"merchandise_total"`
	PrintSubtotal    float64     `json:"print_subtotal"`
	SetupFees        float64     `json:"setup_fees"`
	PrintTotal       float64     `json:"print_total"`
	GrandTotal       float64     `json:"grand_total"`
	Savings          *float64    `json:"savings,omitempty"`
	Currency         string      `json:"currency"`
	ShipmentMethod   string      `json:"shipment_method,omitempty"`
	EstimatedDaysMin int         `json:"estimated_days_min"`
	EstimatedDaysMax int         `json:"estimated_days_max"`
	CreatedAt        time.Time   `json:"created_at"`
	ValidUntil       time.Time   `json:"valid_until"`
}

type QuoteItem struct {
	Reference       string               `json:"reference"`
	ProductTypeID   uuid.UUID            `json:"product_type_id"`
	ProductName     string               `json:"product_name"`
	Quantity        int                  `json:"quantity"`
	UnitBasePrice   float64              `json:"unit_base_price"`
	MerchandiseCost float64              `json:"merchandise_cost"`
	Pricing         *pricing.Calculation `json:"pricing"`
	ItemTotal       float64              `json:"item_total"`
}

type QuoteError struct {
	Reference     string    `json:"reference,omitempty"`
	ProductTypeID uuid.UUID `json:"product_type_id"`
	Message       string    `json:"message"`
}

func NewQuoteService(pricer DesignPricer, estimator ColorEstimator) *QuoteService {
	return &QuoteService{
		pricer:    pricer,
		estimator: estimator,
	}
}

// CreateQuote prices every product in the request and folds the
// results into one quote, or one quote per product when the caller
// asked to keep them separate. A product that fails to price lands in
// the errors list and never aborts its siblings.
func (s *QuoteService) CreateQuote(req *DesignQuoteRequest) (*DesignQuoteResponse, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	reference := req.QuoteReferenceID
	if reference == "" {
		reference = uuid.NewString()
	}

	resp := &DesignQuoteResponse{QuoteReferenceID: reference}
	currency := strings.ToUpper(req.Currency)

	items := make([]QuoteItem, 0, len(req.Products))
	for idx, product := range req.Products {
		itemRef := product.Reference
		if itemRef == "" {
			itemRef = fmt.Sprintf("item-%d", idx+1)
		}

		productType, calc, err := s.pricer.PriceDesigns(product.ProductTypeID, product.Quantity, s.toDesigns(product))
		if err != nil {
			resp.Errors = append(resp.Errors, QuoteError{
				Reference:     itemRef,
				ProductTypeID: product.ProductTypeID,
				Message:       err.Error(),
			})
			continue
		}

		if currency == "" {
			currency = calc.Currency
		} else if calc.Currency != currency {
			resp.Errors = append(resp.Errors, QuoteError{
				Reference:     itemRef,
				ProductTypeID: product.ProductTypeID,
				Message:       fmt.Sprintf("product priced in %s but quote requested %s", calc.Currency, currency),
			})
			continue
		}

		merchandise := pricing.Round2(productType.BasePrice * float64(product.Quantity))
		items = append(items, QuoteItem{
			Reference:       itemRef,
			ProductTypeID:   productType.ID,
			ProductName:     productType.Name,
			Quantity:        product.Quantity,
			UnitBasePrice:   productType.BasePrice,
			MerchandiseCost: merchandise,
			Pricing:         calc,
			ItemTotal:       pricing.Round2(merchandise + calc.Total),
		})
	}

	if req.AllowMultipleQuotes {
		for _, item := range items {
			resp.Quotes = append(resp.Quotes, s.buildQuote([]QuoteItem{item}, currency, req))
		}
	} else if len(items) > 0 {
		resp.Quotes = append(resp.Quotes, s.buildQuote(items, currency, req))
	}
	if resp.Quotes == nil {
		resp.Quotes = []Quote{}
	}

	return resp, nil
}

func (s *QuoteService) buildQuote(items []QuoteItem, currency string, req *DesignQuoteRequest) Quote {
	now := time.Now().UTC()
	quote := Quote{
		QuoteNumber:    uuid.NewString(),
		Items:          items,
		Currency:       currency,
		ShipmentMethod: req.ShipmentMethod,
		CreatedAt:      now,
		ValidUntil:     now.AddDate(0, 0, quoteValidityDays),
	}

	if req.Urgent {
		quote.EstimatedDaysMin, quote.EstimatedDaysMax = 1, 3
	} else {
		quote.EstimatedDaysMin, quote.EstimatedDaysMax = 3, 7
	}

	var savings float64
	for _, item := range items {
		quote.ItemReferences = append(quote.ItemReferences, item.Reference)
		quote.MerchandiseTotal += item.MerchandiseCost
		quote.PrintSubtotal += item.Pricing.Subtotal
		quote.SetupFees += item.Pricing.SetupFees
		quote.PrintTotal += item.Pricing.Total
		quote.GrandTotal += item.ItemTotal
		if item.Pricing.Savings != nil {
			savings += *item.Pricing.Savings
		}
	}

	quote.MerchandiseTotal = pricing.Round2(quote.MerchandiseTotal)
	quote.PrintSubtotal = pricing.Round2(quote.PrintSubtotal)
	quote.SetupFees = pricing.Round2(quote.SetupFees)
	quote.PrintTotal = pricing.Round2(quote.PrintTotal)
	quote.GrandTotal = pricing.Round2(quote.GrandTotal)
	if savings > 0 {
		rounded := pricing.Round2(savings)
		quote.Savings = &rounded
	}

	return quote
}

// toDesigns maps uploaded files onto design submissions, defaulting the
// layer count to 1 and filling missing color counts from the estimator.
func (s *QuoteService) toDesigns(product QuoteProductRequest) []DesignSubmissionRequest {
	designs := make([]DesignSubmissionRequest, 0, len(product.Files))
	for _, file := range product.Files {
		design := DesignSubmissionRequest{
			AreaID:      file.AreaID,
			Colors:      file.Colors,
			Layers:      file.Layers,
			PrintMethod: product.PrintMethod,
			FileURL:     file.URL,
			File:        file.Metadata,
			ArtworkID:   file.ArtworkID,
		}
		if design.Layers < 1 {
			design.Layers = 1
		}
		if design.Colors < 1 {
			design.Colors = s.estimateColors(file)
		}
		designs = append(designs, design)
	}
	return designs
}

func (s *QuoteService) estimateColors(file QuoteFileRequest) int {
	if s.estimator != nil && file.ArtworkID != nil {
		if count, err := s.estimator.EstimateColors(*file.ArtworkID); err == nil && count > 0 {
			return count
		}
	}
	return defaultColorEstimate
}
