// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/threadforge/pod-backend/internal/config"
	"github.com/threadforge/pod-backend/internal/models"
	"github.com/threadforge/pod-backend/internal/pricing"
	"github.com/threadforge/pod-backend/internal/utils"
)

type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

// CreateQuoteDepositRequest carries the full quote total. The deposit
// actually charged is derived from the configured deposit percentage.
type CreateQuoteDepositRequest struct {
	QuoteReference string                 `json:"quote_reference" validate:"required,max=64"`
	CustomerEmail  string                 `json:"customer_email" validate:"omitempty,email"`
	Amount         float64                `json:"amount" validate:"required,gt=0"`
	Currency       string                 `json:"currency" validate:"omitempty,iso4217"`
	PaymentMethod  string                 `json:"payment_method" validate:"omitempty,max=50"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

type QuoteDepositResponse struct {
	Transaction    *models.Transaction `json:"transaction"`
	ClientSecret   string              `json:"client_secret"`
	DepositAmount  float64             `json:"deposit_amount"`
	BalanceAmount  float64             `json:"balance_amount"`
	DepositPercent float64             `json:"deposit_percent"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string    `json:"payment_intent_id" validate:"required"`
	TransactionID   uuid.UUID `json:"transaction_id" validate:"required"`
}

type RefundRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" validate:"required"`
	Amount        float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Reason        string    `json:"reason" validate:"required,max=500"`
}

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	// Initialize Stripe
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
	}
}

// CreateQuoteDeposit opens a Stripe payment intent for the deposit share
// of a quote and records the pending transaction. One deposit per quote
// reference; the remaining balance is invoiced after production.
func (s *PaymentService) CreateQuoteDeposit(req *CreateQuoteDepositRequest) (*QuoteDepositResponse, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var count int64
	s.db.Model(&models.Transaction{}).
		Where("quote_reference = ? AND transaction_type = ? AND status IN ?",
			req.QuoteReference, models.TransactionTypeQuoteDeposit,
			[]models.TransactionStatus{models.TransactionStatusPending, models.TransactionStatusCompleted}).
		Count(&count)
	if count > 0 {
		return nil, errors.New("deposit already collected for quote")
	}

	currency := strings.ToUpper(req.Currency)
	if currency == "" {
		currency = s.config.Payment.Currency
	}

	depositPercent := s.config.Payment.DepositPercent
	depositAmount := pricing.Round2(req.Amount * depositPercent / 100)
	balanceAmount := pricing.Round2(req.Amount - depositAmount)

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(depositAmount * 100))),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	if req.CustomerEmail != "" {
		params.ReceiptEmail = stripe.String(req.CustomerEmail)
	}
	params.AddMetadata("quote_reference", req.QuoteReference)
	params.AddMetadata("transaction_type", string(models.TransactionTypeQuoteDeposit))
	for k, v := range req.Metadata {
		if str, ok := v.(string); ok {
			params.AddMetadata(k, str)
		}
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	transaction := &models.Transaction{
		TransactionType:  models.TransactionTypeQuoteDeposit,
		QuoteReference:   req.QuoteReference,
		CustomerEmail:    req.CustomerEmail,
		Amount:           depositAmount,
		Currency:         currency,
		DepositPercent:   depositPercent,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: pi.ID,
		Status:           models.TransactionStatusPending,
		Metadata: models.JSONB{
			"quote_total": req.Amount,
			"balance_due": balanceAmount,
		},
	}

	if err := s.db.Create(transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	return &QuoteDepositResponse{
		Transaction:    transaction,
		ClientSecret:   pi.ClientSecret,
		DepositAmount:  depositAmount,
		BalanceAmount:  balanceAmount,
		DepositPercent: depositPercent,
	}, nil
}

func (s *PaymentService) ConfirmPayment(req *ConfirmPaymentRequest) (*models.Transaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	pi, err := paymentintent.Get(req.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	var transaction models.Transaction
	if err := s.db.First(&transaction, req.TransactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("transaction not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded:
		now := time.Now()
		transaction.Status = models.TransactionStatusCompleted
		transaction.ProcessedAt = &now
		transaction.PaymentReference = pi.ID

		if transaction.TransactionType == models.TransactionTypeQuoteDeposit {
			if err := s.scheduleBalance(&transaction); err != nil {
				logrus.WithError(err).WithField("quote_reference", transaction.QuoteReference).
					Warn("Failed to schedule balance transaction")
			}
		}

	case stripe.PaymentIntentStatusRequiresAction, stripe.PaymentIntentStatusRequiresConfirmation:
		transaction.Status = models.TransactionStatusPending

	default:
		transaction.Status = models.TransactionStatusFailed
	}

	if err := s.db.Save(&transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &transaction, nil
}

func (s *PaymentService) ProcessRefund(req *RefundRequest) (*models.Transaction, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var transaction models.Transaction
	if err := s.db.First(&transaction, req.TransactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("transaction not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if transaction.Status != models.TransactionStatusCompleted {
		return nil, errors.New("can only refund completed transactions")
	}

	refundAmount := req.Amount
	if refundAmount <= 0 || refundAmount > transaction.Amount {
		refundAmount = transaction.Amount
	}

	if transaction.PaymentReference != "" {
		params := &stripe.RefundParams{
			PaymentIntent: stripe.String(transaction.PaymentReference),
			Amount:        stripe.Int64(int64(math.Round(refundAmount * 100))),
			Reason:        stripe.String("requested_by_customer"),
		}

		if _, err := refund.New(params); err != nil {
			return nil, fmt.Errorf("failed to process refund: %w", err)
		}
	}

	now := time.Now()
	transaction.Status = models.TransactionStatusRefunded
	transaction.RefundedAt = &now
	transaction.RefundReason = req.Reason

	if err := s.db.Save(&transaction).Error; err != nil {
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	return &transaction, nil
}

func (s *PaymentService) GetTransaction(id uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := s.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("transaction not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &transaction, nil
}

// GetQuotePayments lists every transaction recorded against a quote
// reference, deposit and balance alike.
func (s *PaymentService) GetQuotePayments(quoteReference string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := s.db.Where("quote_reference = ?", quoteReference).
		Order("created_at ASC").Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	return transactions, nil
}

// GetPaymentConfig exposes what the storefront checkout needs to start a
// Stripe flow.
func (s *PaymentService) GetPaymentConfig() map[string]interface{} {
	return map[string]interface{}{
		"publishable_key": s.config.Payment.StripePublishableKey,
		"deposit_percent": s.config.Payment.DepositPercent,
		"currency":        s.config.Payment.Currency,
	}
}

func (s *PaymentService) scheduleBalance(deposit *models.Transaction) error {
	balance, ok := deposit.Metadata["balance_due"].(float64)
	if !ok || balance <= 0 {
		return nil
	}

	var count int64
	s.db.Model(&models.Transaction{}).
		Where("quote_reference = ? AND transaction_type = ?",
			deposit.QuoteReference, models.TransactionTypeQuoteBalance).
		Count(&count)
	if count > 0 {
		return nil
	}

	balanceTx := &models.Transaction{
		TransactionType: models.TransactionTypeQuoteBalance,
		QuoteReference:  deposit.QuoteReference,
		CustomerEmail:   deposit.CustomerEmail,
		Amount:          balance,
		Currency:        deposit.Currency,
		Status:          models.TransactionStatusPending,
		Metadata:        models.JSONB{"deposit_transaction_id": deposit.ID.String()},
	}
	return s.db.Create(balanceTx).Error
}
