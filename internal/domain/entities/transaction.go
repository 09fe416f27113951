package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// TransactionType represents the lifecycle event a transaction records
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeRenewal  TransactionType = "renewal"
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeRefund   TransactionType = "refund"
)

// TransactionStatus represents payment processing state
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "pending"
	TransactionStatusCompleted TransactionStatus = "completed"
	TransactionStatusFailed    TransactionStatus = "failed"
	TransactionStatusCancelled TransactionStatus = "cancelled"
	TransactionStatusRefunded  TransactionStatus = "refunded"
)

// Amount is a monetary value in major units (dollars)
type Amount struct {
	Value    float64 `json:"value"`
	Currency string  `json:"currency"`
}

// Transaction records one lifecycle event against a domain for a user.
// Rows are never deleted; status moves pending -> completed/failed/refunded.
type Transaction struct {
	ID                    uuid.UUID         `json:"id"`
	UserID                uuid.UUID         `json:"userId"`
	DomainID              uuid.UUID         `json:"domainId"`
	Type                  TransactionType   `json:"type"`
	Status                TransactionStatus `json:"status"`
	Amount                Amount            `json:"amount"`
	PaymentMethod         string            `json:"paymentMethod"`
	StripePaymentIntentID null.String       `json:"stripePaymentIntentId,omitempty"`
	StripeChargeID        null.String       `json:"stripeChargeId,omitempty"`
	CardBrand             null.String       `json:"cardBrand,omitempty"`
	CardLast4             null.String       `json:"cardLast4,omitempty"`
	Years                 int               `json:"years,omitempty"`
	Notes                 null.String       `json:"notes,omitempty"`
	CreatedAt             time.Time         `json:"createdAt"`
	UpdatedAt             time.Time         `json:"updatedAt"`
}

// CreateIntentInput requests a payment intent. Amount is in cents;
// stored amounts are dollars, converted in the payment flow.
type CreateIntentInput struct {
	Domain   string `json:"domain" binding:"required,min=3"`
	Amount   int64  `json:"amount" binding:"required,min=50"`
	Currency string `json:"currency" binding:"omitempty,oneof=usd eur gbp"`
}

// ConfirmPaymentInput carries the client-reported intent id. The processor
// is always re-queried for the authoritative status.
type ConfirmPaymentInput struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}

// RefundInput requests a refund for a completed transaction
type RefundInput struct {
	Amount float64 `json:"amount" binding:"omitempty,gt=0"`
	Reason string  `json:"reason"`
}

// TransactionListFilter parameterizes payment history listings
type TransactionListFilter struct {
	Status TransactionStatus
	Type   TransactionType
	Page   int
	Limit  int
}
