package usecases

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/domain/repositories"
	"domain-agent.backend/internal/domain/services"
	"domain-agent.backend/pkg/logger"
	"domain-agent.backend/pkg/utils"
)

// registrationYears is the term granted on a completed purchase
const registrationYears = 1

// IntentResult is returned to the client to drive the card flow
type IntentResult struct {
	PaymentIntentID string  `json:"paymentIntentId"`
	ClientSecret    string  `json:"clientSecret"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
}

// ConfirmResult reports the settled state after payment confirmation
type ConfirmResult struct {
	Transaction *entities.Transaction `json:"transaction"`
	Domain      *entities.Domain      `json:"domain,omitempty"`
	Registered  bool                  `json:"registered"`
}

// PaymentUsecase handles the payment lifecycle around domain orders
type PaymentUsecase struct {
	userRepo   repositories.UserRepository
	domainRepo repositories.DomainRepository
	txRepo     repositories.TransactionRepository
	uow        repositories.UnitOfWork
	processor  services.PaymentProcessor
	registrar  services.Registrar
	mailer     services.Mailer
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	userRepo repositories.UserRepository,
	domainRepo repositories.DomainRepository,
	txRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
	processor services.PaymentProcessor,
	registrar services.Registrar,
	mailer services.Mailer,
) *PaymentUsecase {
	return &PaymentUsecase{
		userRepo:   userRepo,
		domainRepo: domainRepo,
		txRepo:     txRepo,
		uow:        uow,
		processor:  processor,
		registrar:  registrar,
		mailer:     mailer,
	}
}

// CreateIntent opens a payment intent for the caller's pending order on a
// domain, creating the pending domain row first when the purchase flow was
// skipped. The amount arrives in cents and is recorded in dollars.
func (u *PaymentUsecase) CreateIntent(ctx context.Context, userID uuid.UUID, input *entities.CreateIntentInput) (*IntentResult, error) {
	fullDomain := utils.NormalizeDomain(input.Domain)
	if !utils.IsValidDomain(fullDomain) {
		return nil, domainerrors.BadRequest("a valid domain name is required")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	domain, err := u.findOrCreatePendingDomain(ctx, userID, fullDomain, input.Amount)
	if err != nil {
		return nil, err
	}

	if !user.StripeCustomerID.Valid {
		customerID, err := u.processor.CreateCustomer(ctx, user.ID.String(), user.Email, user.Name)
		if err != nil {
			return nil, err
		}
		user.StripeCustomerID = null.StringFrom(customerID)
		if err := u.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	currency := input.Currency
	if currency == "" {
		currency = "usd"
	}
	intent, err := u.processor.CreatePaymentIntent(ctx, input.Amount, currency, user.StripeCustomerID.String, map[string]string{
		"user_id":   userID.String(),
		"domain_id": domain.ID.String(),
		"domain":    fullDomain,
	})
	if err != nil {
		return nil, err
	}

	amountDollars := centsToDollars(intent.AmountCents)
	tx, err := u.txRepo.GetPendingForDomain(ctx, domain.ID, userID)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		now := time.Now()
		tx = &entities.Transaction{
			ID:            uuid.New(),
			UserID:        userID,
			DomainID:      domain.ID,
			Type:          entities.TransactionTypePurchase,
			Status:        entities.TransactionStatusPending,
			Amount:        entities.Amount{Value: amountDollars, Currency: strings.ToUpper(intent.Currency)},
			PaymentMethod: "stripe",
			Years:         1,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		tx.StripePaymentIntentID = null.StringFrom(intent.ID)
		if err := u.txRepo.Create(ctx, tx); err != nil {
			return nil, err
		}
	} else {
		tx.StripePaymentIntentID = null.StringFrom(intent.ID)
		if err := u.txRepo.Update(ctx, tx); err != nil {
			return nil, err
		}
	}

	return &IntentResult{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
		Amount:          amountDollars,
		Currency:        intent.Currency,
	}, nil
}

// ConfirmPayment settles an order after the client reports payment. The
// intent is re-fetched from the processor; a client claiming success for
// an unpaid intent changes nothing. On a paid purchase the registrar is
// called: success registers the domain, failure parks it in
// payment_completed for manual follow-up since money has been taken.
func (u *PaymentUsecase) ConfirmPayment(ctx context.Context, userID uuid.UUID, intentID string) (*ConfirmResult, error) {
	tx, err := u.txRepo.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, domainerrors.Forbidden("transaction belongs to another account")
	}
	if tx.Status == entities.TransactionStatusCompleted {
		domain, _ := u.domainRepo.GetByID(ctx, tx.DomainID)
		return &ConfirmResult{Transaction: tx, Domain: domain, Registered: domain != nil && domain.Status == entities.DomainStatusRegistered}, nil
	}

	intent, err := u.processor.GetPaymentIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != services.PaymentIntentSucceeded {
		return nil, domainerrors.NewError("payment has not completed", domainerrors.ErrPaymentNotComplete)
	}

	tx.Status = entities.TransactionStatusCompleted
	if intent.ChargeID != "" {
		tx.StripeChargeID = null.StringFrom(intent.ChargeID)
	}
	if intent.CardBrand != "" {
		tx.CardBrand = null.StringFrom(intent.CardBrand)
	}
	if intent.CardLast4 != "" {
		tx.CardLast4 = null.StringFrom(intent.CardLast4)
	}
	if err := u.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	domain, err := u.domainRepo.GetByID(ctx, tx.DomainID)
	if err != nil {
		return nil, err
	}

	if tx.Type != entities.TransactionTypePurchase {
		return &ConfirmResult{Transaction: tx, Domain: domain}, nil
	}

	contact := contactFromUser(ctx, u.userRepo, userID)
	if _, err := u.registrar.Register(ctx, domain.FullDomain, tx.Years, contact); err != nil {
		// Money is taken but the name is not ours yet. Park the domain;
		// support resolves these manually.
		logger.Error(ctx, "registration failed after successful payment",
			zap.String("domain", domain.FullDomain), zap.Error(err))
		domain.Status = entities.DomainStatusPaymentCompleted
		if updateErr := u.domainRepo.Update(ctx, domain); updateErr != nil {
			return nil, updateErr
		}
		return &ConfirmResult{Transaction: tx, Domain: domain, Registered: false}, nil
	}

	now := time.Now()
	domain.Status = entities.DomainStatusRegistered
	domain.RegistrationDate = null.TimeFrom(now)
	domain.ExpirationDate = null.TimeFrom(now.AddDate(registrationYears*tx.Years, 0, 0))
	if err := u.domainRepo.Update(ctx, domain); err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err == nil {
		email, name, fullDomain, amount := user.Email, user.Name, domain.FullDomain, tx.Amount.Value
		runAsync(func() {
			ctx := context.Background()
			if err := u.mailer.SendPurchaseConfirmation(ctx, email, name, fullDomain, amount); err != nil {
				logger.Warn(ctx, "failed to send purchase confirmation",
					zap.String("domain", fullDomain), zap.Error(err))
			}
		})
	}

	return &ConfirmResult{Transaction: tx, Domain: domain, Registered: true}, nil
}

// HandleWebhook processes a signature-verified processor callback
func (u *PaymentUsecase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := u.processor.VerifyWebhookSignature(payload, signature)
	if err != nil {
		return err
	}

	switch event.Type {
	case "payment_intent.payment_failed":
		tx, err := u.txRepo.GetByPaymentIntentID(ctx, event.IntentID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				logger.Warn(ctx, "webhook for unknown payment intent",
					zap.String("intent_id", event.IntentID))
				return nil
			}
			return err
		}
		tx.Status = entities.TransactionStatusFailed
		if err := u.txRepo.Update(ctx, tx); err != nil {
			return err
		}
		logger.Info(ctx, "transaction marked failed from webhook",
			zap.String("transaction_id", tx.ID.String()))
	case "payment_intent.succeeded":
		// Settlement happens in ConfirmPayment; the webhook is informational.
		logger.Info(ctx, "payment intent succeeded", zap.String("intent_id", event.IntentID))
	default:
		logger.Debug(ctx, "unhandled webhook event", zap.String("type", event.Type))
	}
	return nil
}

// Refund refunds a completed transaction. A full refund, meaning no amount
// or an amount covering the whole charge, also marks the domain refunded
// and releases the name.
func (u *PaymentUsecase) Refund(ctx context.Context, userID, transactionID uuid.UUID, input *entities.RefundInput) (*entities.Transaction, error) {
	tx, err := u.txRepo.GetByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if tx.UserID != userID {
		return nil, domainerrors.Forbidden("transaction belongs to another account")
	}
	if tx.Status != entities.TransactionStatusCompleted {
		return nil, domainerrors.BadRequest("only completed transactions can be refunded")
	}
	if !tx.StripeChargeID.Valid {
		return nil, domainerrors.BadRequest("transaction has no charge to refund")
	}

	fullRefund := input.Amount <= 0 || input.Amount >= tx.Amount.Value
	var amountCents int64
	if !fullRefund {
		amountCents = dollarsToCents(input.Amount)
	}

	refund, err := u.processor.CreateRefund(ctx, tx.StripeChargeID.String, amountCents)
	if err != nil {
		return nil, err
	}
	if refund.Status != services.RefundSucceeded {
		return nil, domainerrors.NewError("refund was not accepted by the payment provider", domainerrors.ErrUpstreamFailure)
	}

	tx.Status = entities.TransactionStatusRefunded
	if input.Reason != "" {
		tx.Notes = null.StringFrom("refund: " + input.Reason)
	}
	if err := u.txRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	if fullRefund {
		domain, err := u.domainRepo.GetByID(ctx, tx.DomainID)
		if err != nil {
			return nil, err
		}
		domain.Status = entities.DomainStatusRefunded
		if err := u.domainRepo.Update(ctx, domain); err != nil {
			return nil, err
		}
	}
	return tx, nil
}

// History lists the caller's transactions
func (u *PaymentUsecase) History(ctx context.Context, userID uuid.UUID, filter entities.TransactionListFilter) ([]*entities.Transaction, int64, error) {
	return u.txRepo.ListByUser(ctx, userID, filter)
}

// ListPaymentMethods lists the caller's stored cards
func (u *PaymentUsecase) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]services.PaymentMethod, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.StripeCustomerID.Valid {
		return []services.PaymentMethod{}, nil
	}
	return u.processor.ListPaymentMethods(ctx, user.StripeCustomerID.String)
}

func (u *PaymentUsecase) findOrCreatePendingDomain(ctx context.Context, userID uuid.UUID, fullDomain string, amountCents int64) (*entities.Domain, error) {
	domain, err := u.domainRepo.GetOwnedByFullDomain(ctx, userID, fullDomain)
	if err == nil && domain.Status == entities.DomainStatusPending {
		return domain, nil
	}
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if _, activeErr := u.domainRepo.GetActiveByFullDomain(ctx, fullDomain); activeErr == nil {
		return nil, domainerrors.BadRequest("domain is no longer available")
	} else if !errors.Is(activeErr, domainerrors.ErrNotFound) {
		return nil, activeErr
	}

	name, extension := utils.SplitDomain(fullDomain)
	sellingPrice := centsToDollars(amountCents)
	now := time.Now()
	domain = &entities.Domain{
		ID:         uuid.New(),
		Name:       name,
		Extension:  extension,
		FullDomain: fullDomain,
		Status:     entities.DomainStatusPending,
		OwnerID:    null.StringFrom(userID.String()),
		Registrar:  "namecheap",
		Pricing: entities.Pricing{
			Cost:         round2(sellingPrice / (1 + entities.MarkupRate)),
			Markup:       round2(sellingPrice - sellingPrice/(1+entities.MarkupRate)),
			SellingPrice: sellingPrice,
			Currency:     "USD",
		},
		DNSRecords: []entities.DNSRecord{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := u.domainRepo.Create(ctx, domain); err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, domainerrors.BadRequest("domain is no longer available")
		}
		return nil, err
	}
	return domain, nil
}

func contactFromUser(ctx context.Context, repo repositories.UserRepository, userID uuid.UUID) entities.ContactInfo {
	contact := entities.ContactInfo{
		FirstName:  "Domain",
		LastName:   "Owner",
		Address:    "Unknown",
		City:       "Unknown",
		State:      "NA",
		PostalCode: "00000",
		Country:    "US",
		Phone:      "+1.0000000000",
	}
	user, err := repo.GetByID(ctx, userID)
	if err != nil {
		return contact
	}

	contact.Email = user.Email
	parts := strings.Fields(user.Name)
	if len(parts) > 0 {
		contact.FirstName = parts[0]
	}
	if len(parts) > 1 {
		contact.LastName = strings.Join(parts[1:], " ")
	} else {
		contact.LastName = contact.FirstName
	}
	if user.Profile.Phone != "" {
		contact.Phone = user.Profile.Phone
	}
	if user.Profile.Street != "" {
		contact.Address = user.Profile.Street
	}
	if user.Profile.City != "" {
		contact.City = user.Profile.City
	}
	if user.Profile.State != "" {
		contact.State = user.Profile.State
	}
	if user.Profile.PostalCode != "" {
		contact.PostalCode = user.Profile.PostalCode
	}
	if user.Profile.Country != "" {
		contact.Country = user.Profile.Country
	}
	return contact
}

// The cents boundary lives in the payment flow: Stripe speaks cents,
// everything stored speaks dollars.
func centsToDollars(cents int64) float64 {
	return round2(float64(cents) / 100)
}

func dollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
