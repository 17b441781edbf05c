// internal/models/transaction.go
package models

import (
	"time"
)

// Transaction records a payment against a quote, typically the deposit
// collected before production starts.
type Transaction struct {
	BaseModel
	TransactionType  TransactionType   `json:"transaction_type" gorm:"type:varchar(20);not null;index"`
	QuoteReference   string            `json:"quote_reference" gorm:"size:64;not null;index"`
	CustomerEmail    string            `json:"customer_email,omitempty" gorm:"size:255;index"`
	Amount           float64           `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency         string            `json:"currency" gorm:"size:3;not null;default:'USD'"`
	DepositPercent   float64           `json:"deposit_percent" gorm:"type:decimal(5,2);default:0"`
	PaymentMethod    string            `json:"payment_method" gorm:"size:50"`
	PaymentReference string            `json:"payment_reference" gorm:"size:255;index"`
	Status           TransactionStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt      *time.Time        `json:"processed_at"`
	RefundedAt       *time.Time        `json:"refunded_at"`
	RefundReason     string            `json:"refund_reason,omitempty" gorm:"type:text"`
	Metadata         JSONB             `json:"metadata" gorm:"type:jsonb"`
}
