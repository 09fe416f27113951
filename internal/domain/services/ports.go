package services

import (
	"context"

	"domain-agent.backend/internal/domain/entities"
)

// Registrar is the outbound port to the domain registrar.
// Calls are synchronous request/response with a fixed client-side timeout;
// failures surface immediately, no retry policy exists.
type Registrar interface {
	CheckAvailability(ctx context.Context, domain string) (*entities.AvailabilityResult, error)
	Register(ctx context.Context, domain string, years int, contact entities.ContactInfo) (*RegistrationResult, error)
	GetInfo(ctx context.Context, domain string) (*DomainInfo, error)
	SetDNSRecords(ctx context.Context, domain string, records []entities.DNSRecord) error
}

// RegistrationResult is the registrar's answer to a registration request
type RegistrationResult struct {
	Domain         string `json:"domain"`
	RegistrationID string `json:"registrationId"`
}

// DomainInfo is the registrar's view of an already-registered domain
type DomainInfo struct {
	Domain         string `json:"domain"`
	Status         string `json:"status"`
	ExpirationDate string `json:"expirationDate,omitempty"`
	AutoRenew      bool   `json:"autoRenew"`
}

// PaymentProcessor is the outbound port to the payment provider. All
// monetary amounts cross this boundary in minor units (cents); stored
// amounts are dollars, converted only at the payment flow's edge.
type PaymentProcessor interface {
	CreateCustomer(ctx context.Context, userID, email, name string) (customerID string, err error)
	CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerID string, metadata map[string]string) (*PaymentIntent, error)
	// GetPaymentIntent re-fetches the authoritative intent status and its
	// charge. The client's claim of success is never trusted.
	GetPaymentIntent(ctx context.Context, intentID string) (*PaymentIntent, error)
	CreateRefund(ctx context.Context, chargeID string, amountCents int64) (*RefundResult, error)
	ListPaymentMethods(ctx context.Context, customerID string) ([]PaymentMethod, error)
	VerifyWebhookSignature(payload []byte, signature string) (*WebhookEvent, error)
}

// PaymentIntent is the provider's in-progress charge attempt
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
	Status       string `json:"status"`
	AmountCents  int64  `json:"amount"`
	Currency     string `json:"currency"`
	ChargeID     string `json:"chargeId,omitempty"`
	CardBrand    string `json:"cardBrand,omitempty"`
	CardLast4    string `json:"cardLast4,omitempty"`
}

// PaymentIntentSucceeded is the only status that finalizes a purchase
const PaymentIntentSucceeded = "succeeded"

// RefundResult is the provider's answer to a refund request
type RefundResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// RefundSucceeded marks a processed refund
const RefundSucceeded = "succeeded"

// PaymentMethod is a stored card summary
type PaymentMethod struct {
	ID    string `json:"id"`
	Brand string `json:"brand"`
	Last4 string `json:"last4"`
}

// WebhookEvent is a signature-verified processor callback
type WebhookEvent struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	IntentID string `json:"intentId,omitempty"`
}

// DomainAdvisor is the outbound port to the generative-language model.
// Replies are best-effort: malformed model output degrades to regex
// extraction, never to an error, so results may be partial or empty.
type DomainAdvisor interface {
	SuggestDomains(ctx context.Context, req entities.SuggestionRequirements) ([]entities.DomainSuggestion, error)
	AnalyzeDomain(ctx context.Context, domain, context string) (*entities.DomainAnalysis, error)
	Consult(ctx context.Context, question, conversation string) (*entities.ConsultationResult, error)
	GenerateBusinessNames(ctx context.Context, industry string, keywords []string, style string) ([]entities.BusinessName, error)
}

// Mailer is the outbound notification port. The workflow invokes it
// without awaiting completion; failures are logged, never block a request.
type Mailer interface {
	SendWelcome(ctx context.Context, email, name string) error
	SendPasswordReset(ctx context.Context, email, name, resetToken string) error
	SendPurchaseConfirmation(ctx context.Context, email, name, domain string, amount float64) error
}
