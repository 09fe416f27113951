package payments

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"

	"domain-agent.backend/internal/config"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/domain/services"
)

// StripeClient implements the payment processor port. All amounts cross
// this adapter in cents; callers upstream deal in dollars only.
type StripeClient struct {
	api           *client.API
	webhookSecret string
}

// NewStripeClient creates a Stripe-backed payment processor
func NewStripeClient(cfg config.StripeConfig) *StripeClient {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &StripeClient{
		api:           api,
		webhookSecret: cfg.WebhookSecret,
	}
}

var _ services.PaymentProcessor = (*StripeClient)(nil)

// CreateCustomer creates a Stripe customer linked to a local user
func (s *StripeClient) CreateCustomer(ctx context.Context, userID, email, name string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
		Name:  stripe.String(name),
	}
	params.Context = ctx
	params.AddMetadata("user_id", userID)

	customer, err := s.api.Customers.New(params)
	if err != nil {
		return "", fmt.Errorf("%w: create customer: %v", domainerrors.ErrUpstreamFailure, err)
	}
	return customer.ID, nil
}

// CreatePaymentIntent opens a charge attempt for the given amount in cents
func (s *StripeClient) CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerID string, metadata map[string]string) (*services.PaymentIntent, error) {
	if currency == "" {
		currency = "usd"
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	if customerID != "" {
		params.Customer = stripe.String(customerID)
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create payment intent: %v", domainerrors.ErrUpstreamFailure, err)
	}
	return toPaymentIntent(intent), nil
}

// GetPaymentIntent re-fetches an intent with its latest charge expanded.
// This is the authoritative status; client claims are never trusted.
func (s *StripeClient) GetPaymentIntent(ctx context.Context, intentID string) (*services.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	params.AddExpand("latest_charge")

	intent, err := s.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return nil, fmt.Errorf("%w: get payment intent: %v", domainerrors.ErrUpstreamFailure, err)
	}
	return toPaymentIntent(intent), nil
}

// CreateRefund refunds a charge. A zero amount requests a full refund.
func (s *StripeClient) CreateRefund(ctx context.Context, chargeID string, amountCents int64) (*services.RefundResult, error) {
	params := &stripe.RefundParams{
		Charge: stripe.String(chargeID),
	}
	params.Context = ctx
	if amountCents > 0 {
		params.Amount = stripe.Int64(amountCents)
	}

	refund, err := s.api.Refunds.New(params)
	if err != nil {
		return nil, fmt.Errorf("%w: create refund: %v", domainerrors.ErrUpstreamFailure, err)
	}
	return &services.RefundResult{
		ID:     refund.ID,
		Status: string(refund.Status),
	}, nil
}

// ListPaymentMethods lists a customer's stored cards
func (s *StripeClient) ListPaymentMethods(ctx context.Context, customerID string) ([]services.PaymentMethod, error) {
	params := &stripe.PaymentMethodListParams{
		Customer: stripe.String(customerID),
		Type:     stripe.String(string(stripe.PaymentMethodTypeCard)),
	}
	params.Context = ctx

	var methods []services.PaymentMethod
	iter := s.api.PaymentMethods.List(params)
	for iter.Next() {
		pm := iter.PaymentMethod()
		method := services.PaymentMethod{ID: pm.ID}
		if pm.Card != nil {
			method.Brand = string(pm.Card.Brand)
			method.Last4 = pm.Card.Last4
		}
		methods = append(methods, method)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: list payment methods: %v", domainerrors.ErrUpstreamFailure, err)
	}
	return methods, nil
}

// VerifyWebhookSignature checks a webhook payload against the shared
// secret and extracts the referenced intent
func (s *StripeClient) VerifyWebhookSignature(payload []byte, signature string) (*services.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, s.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domainerrors.ErrUnauthorized, err)
	}

	result := &services.WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
	}
	var object struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(event.Data.Raw, &object); err == nil {
		result.IntentID = object.ID
	}
	return result, nil
}

func toPaymentIntent(intent *stripe.PaymentIntent) *services.PaymentIntent {
	result := &services.PaymentIntent{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       string(intent.Status),
		AmountCents:  intent.Amount,
		Currency:     string(intent.Currency),
	}
	if charge := intent.LatestCharge; charge != nil {
		result.ChargeID = charge.ID
		if charge.PaymentMethodDetails != nil && charge.PaymentMethodDetails.Card != nil {
			result.CardBrand = string(charge.PaymentMethodDetails.Card.Brand)
			result.CardLast4 = charge.PaymentMethodDetails.Card.Last4
		}
	}
	return result
}
