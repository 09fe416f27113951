package usecases

import (
	"context"
	"errors"
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

// DefaultSearchExtensions are checked when the caller names none
var DefaultSearchExtensions = []string{"com", "net", "org", "io"}

// TransferPrice is the flat customer price for an inbound transfer
const TransferPrice = 14.29

// SearchResult bundles availability answers with optional AI suggestions
type SearchResult struct {
	Query       string                        `json:"query"`
	Results     []entities.AvailabilityResult `json:"results"`
	Suggestions []entities.DomainSuggestion   `json:"suggestions,omitempty"`
}

// DomainDetails is the merged local and registrar view of one domain
type DomainDetails struct {
	Domain    *entities.Domain         `json:"domain,omitempty"`
	Registrar *services.DomainInfo     `json:"registrar,omitempty"`
	Analysis  *entities.DomainAnalysis `json:"analysis,omitempty"`
}

// DomainUsecase handles domain search and lifecycle business logic
type DomainUsecase struct {
	domainRepo repositories.DomainRepository
	txRepo     repositories.TransactionRepository
	uow        repositories.UnitOfWork
	registrar  services.Registrar
	advisor    services.DomainAdvisor
}

// NewDomainUsecase creates a new domain usecase
func NewDomainUsecase(
	domainRepo repositories.DomainRepository,
	txRepo repositories.TransactionRepository,
	uow repositories.UnitOfWork,
	registrar services.Registrar,
	advisor services.DomainAdvisor,
) *DomainUsecase {
	return &DomainUsecase{
		domainRepo: domainRepo,
		txRepo:     txRepo,
		uow:        uow,
		registrar:  registrar,
		advisor:    advisor,
	}
}

// Search checks one base name across several extensions. A name already
// held in an active status locally is reported unavailable without asking
// the registrar. Per-extension registrar errors are logged and skipped so
// one slow TLD cannot sink the whole search.
func (u *DomainUsecase) Search(ctx context.Context, query string, extensions []string, includeAI bool) (*SearchResult, error) {
	base := utils.NormalizeDomain(query)
	if idx := strings.Index(base, "."); idx > 0 {
		base = base[:idx]
	}
	if len(base) < 1 {
		return nil, domainerrors.BadRequest("search query is required")
	}
	if len(extensions) == 0 {
		extensions = DefaultSearchExtensions
	}

	result := &SearchResult{Query: base, Results: []entities.AvailabilityResult{}}
	for _, ext := range extensions {
		fullDomain := utils.JoinDomain(base, strings.TrimPrefix(strings.ToLower(ext), "."))
		if !utils.IsValidDomain(fullDomain) {
			continue
		}

		if _, err := u.domainRepo.GetActiveByFullDomain(ctx, fullDomain); err == nil {
			result.Results = append(result.Results, entities.AvailabilityResult{
				Domain:    fullDomain,
				Available: false,
				Message:   "already taken",
			})
			continue
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}

		availability, err := u.registrar.CheckAvailability(ctx, fullDomain)
		if err != nil {
			logger.Warn(ctx, "availability check failed, skipping extension",
				zap.String("domain", fullDomain), zap.Error(err))
			continue
		}
		if availability.Available {
			availability.Price = entities.NewPricing(availability.Price, availability.Currency).SellingPrice
		}
		result.Results = append(result.Results, *availability)
	}

	if includeAI {
		suggestions, err := u.advisor.SuggestDomains(ctx, entities.SuggestionRequirements{
			Business: query,
		})
		if err != nil {
			logger.Warn(ctx, "ai suggestions unavailable for search", zap.Error(err))
		} else {
			result.Suggestions = suggestions
		}
	}
	return result, nil
}

// CheckAvailability answers for a single full domain
func (u *DomainUsecase) CheckAvailability(ctx context.Context, domain string) (*entities.AvailabilityResult, error) {
	fullDomain := utils.NormalizeDomain(domain)
	if len(fullDomain) < 3 || !utils.IsValidDomain(fullDomain) {
		return nil, domainerrors.BadRequest("a valid domain name is required")
	}

	if _, err := u.domainRepo.GetActiveByFullDomain(ctx, fullDomain); err == nil {
		return &entities.AvailabilityResult{
			Domain:    fullDomain,
			Available: false,
			Message:   "already taken",
		}, nil
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	availability, err := u.registrar.CheckAvailability(ctx, fullDomain)
	if err != nil {
		return nil, err
	}
	if availability.Available {
		availability.Price = entities.NewPricing(availability.Price, availability.Currency).SellingPrice
	}
	return availability, nil
}

// GetDetails merges the local record, the registrar's view and an AI
// analysis for one domain. Registrar and analysis are both best-effort.
func (u *DomainUsecase) GetDetails(ctx context.Context, domain string) (*DomainDetails, error) {
	fullDomain := utils.NormalizeDomain(domain)
	if !utils.IsValidDomain(fullDomain) {
		return nil, domainerrors.BadRequest("a valid domain name is required")
	}

	details := &DomainDetails{}
	if record, err := u.domainRepo.GetByFullDomain(ctx, fullDomain); err == nil {
		details.Domain = record
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	if info, err := u.registrar.GetInfo(ctx, fullDomain); err == nil {
		details.Registrar = info
	} else {
		logger.Debug(ctx, "registrar info unavailable",
			zap.String("domain", fullDomain), zap.Error(err))
	}

	if analysis, err := u.advisor.AnalyzeDomain(ctx, fullDomain, ""); err == nil {
		details.Analysis = analysis
	} else {
		logger.Debug(ctx, "ai analysis unavailable",
			zap.String("domain", fullDomain), zap.Error(err))
	}
	return details, nil
}

// ListOwned returns the caller's domains
func (u *DomainUsecase) ListOwned(ctx context.Context, ownerID uuid.UUID, filter entities.DomainListFilter) ([]*entities.Domain, int64, error) {
	return u.domainRepo.ListByOwner(ctx, ownerID, filter)
}

// GetOwned returns one of the caller's domains
func (u *DomainUsecase) GetOwned(ctx context.Context, ownerID, domainID uuid.UUID) (*entities.Domain, error) {
	return u.domainRepo.GetOwned(ctx, ownerID, domainID)
}

// Purchase starts a purchase: the domain is parked in pending with a
// pending purchase transaction at cost*1.1. The availability check is
// advisory; a racing buyer loses on the unique index and sees the same
// "no longer available" answer.
func (u *DomainUsecase) Purchase(ctx context.Context, userID uuid.UUID, input *entities.PurchaseDomainInput) (*entities.Domain, *entities.Transaction, error) {
	fullDomain := utils.NormalizeDomain(input.Domain)
	if !utils.IsValidDomain(fullDomain) {
		return nil, nil, domainerrors.BadRequest("a valid domain name is required")
	}
	years := input.Years
	if years < 1 {
		years = 1
	}

	availability, err := u.registrar.CheckAvailability(ctx, fullDomain)
	if err != nil {
		return nil, nil, err
	}
	if !availability.Available {
		if _, localErr := u.domainRepo.GetActiveByFullDomain(ctx, fullDomain); localErr == nil {
			return nil, nil, domainerrors.BadRequest("domain is no longer available")
		}
		return nil, nil, domainerrors.NewError("domain is not available for registration", domainerrors.ErrDomainNotAvailable)
	}

	name, extension := utils.SplitDomain(fullDomain)
	pricing := entities.NewPricing(availability.Price, availability.Currency)
	now := time.Now()

	domain := &entities.Domain{
		ID:         uuid.New(),
		Name:       name,
		Extension:  extension,
		FullDomain: fullDomain,
		Status:     entities.DomainStatusPending,
		OwnerID:    null.StringFrom(userID.String()),
		Registrar:  "namecheap",
		Pricing:    pricing,
		DNSRecords: []entities.DNSRecord{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	tx := &entities.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		DomainID:      domain.ID,
		Type:          entities.TransactionTypePurchase,
		Status:        entities.TransactionStatusPending,
		Amount:        entities.Amount{Value: pricing.SellingPrice * float64(years), Currency: pricing.Currency},
		PaymentMethod: "stripe",
		Years:         years,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.domainRepo.Create(ctx, domain); err != nil {
			return err
		}
		return u.txRepo.Create(ctx, tx)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, nil, domainerrors.BadRequest("domain is no longer available")
		}
		return nil, nil, err
	}
	return domain, tx, nil
}

// Renew records a renewal order for a registered domain. Only the pending
// transaction is created here; payment confirmation settles it.
func (u *DomainUsecase) Renew(ctx context.Context, userID, domainID uuid.UUID, years int) (*entities.Transaction, error) {
	if years < 1 {
		years = 1
	}

	domain, err := u.domainRepo.GetOwned(ctx, userID, domainID)
	if err != nil {
		return nil, err
	}
	if domain.Status != entities.DomainStatusRegistered {
		return nil, domainerrors.NewError("only registered domains can be renewed", domainerrors.ErrDomainNotRegistered)
	}

	now := time.Now()
	tx := &entities.Transaction{
		ID:       uuid.New(),
		UserID:   userID,
		DomainID: domain.ID,
		Type:     entities.TransactionTypeRenewal,
		Status:   entities.TransactionStatusPending,
		Amount: entities.Amount{
			Value:    domain.Pricing.Cost * float64(years) * (1 + entities.MarkupRate),
			Currency: domain.Pricing.Currency,
		},
		PaymentMethod: "stripe",
		Years:         years,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := u.txRepo.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// Transfer starts an inbound transfer at a flat price. Like a purchase it
// parks the name in pending until payment completes.
func (u *DomainUsecase) Transfer(ctx context.Context, userID uuid.UUID, input *entities.TransferDomainInput) (*entities.Domain, *entities.Transaction, error) {
	fullDomain := utils.NormalizeDomain(input.Domain)
	if !utils.IsValidDomain(fullDomain) {
		return nil, nil, domainerrors.BadRequest("a valid domain name is required")
	}
	if strings.TrimSpace(input.AuthCode) == "" {
		return nil, nil, domainerrors.BadRequest("transfer authorization code is required")
	}

	name, extension := utils.SplitDomain(fullDomain)
	now := time.Now()
	domain := &entities.Domain{
		ID:         uuid.New(),
		Name:       name,
		Extension:  extension,
		FullDomain: fullDomain,
		Status:     entities.DomainStatusPending,
		OwnerID:    null.StringFrom(userID.String()),
		Registrar:  "namecheap",
		Pricing: entities.Pricing{
			Cost:         entities.DefaultDomainCost,
			Markup:       entities.DefaultDomainCost * entities.MarkupRate,
			SellingPrice: TransferPrice,
			Currency:     "USD",
		},
		DNSRecords: []entities.DNSRecord{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	tx := &entities.Transaction{
		ID:            uuid.New(),
		UserID:        userID,
		DomainID:      domain.ID,
		Type:          entities.TransactionTypeTransfer,
		Status:        entities.TransactionStatusPending,
		Amount:        entities.Amount{Value: TransferPrice, Currency: "USD"},
		PaymentMethod: "stripe",
		Years:         1,
		Notes:         null.StringFrom("transfer auth code received"),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := u.uow.Do(ctx, func(ctx context.Context) error {
		if err := u.domainRepo.Create(ctx, domain); err != nil {
			return err
		}
		return u.txRepo.Create(ctx, tx)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, nil, domainerrors.BadRequest("domain is no longer available")
		}
		return nil, nil, err
	}
	return domain, tx, nil
}

// GetDNSRecords returns the stored host records of an owned domain
func (u *DomainUsecase) GetDNSRecords(ctx context.Context, userID, domainID uuid.UUID) ([]entities.DNSRecord, error) {
	domain, err := u.domainRepo.GetOwned(ctx, userID, domainID)
	if err != nil {
		return nil, err
	}
	return domain.DNSRecords, nil
}

// UpdateDNSRecords replaces the host records of a registered domain. The
// registrar accepts the change first; nothing is stored on failure.
func (u *DomainUsecase) UpdateDNSRecords(ctx context.Context, userID, domainID uuid.UUID, records []entities.DNSRecord) (*entities.Domain, error) {
	domain, err := u.domainRepo.GetOwned(ctx, userID, domainID)
	if err != nil {
		return nil, err
	}
	if domain.Status != entities.DomainStatusRegistered {
		return nil, domainerrors.NewError("dns records can only be managed on registered domains", domainerrors.ErrDomainNotRegistered)
	}

	if err := u.registrar.SetDNSRecords(ctx, domain.FullDomain, records); err != nil {
		return nil, domainerrors.NewError("registrar rejected the dns update", err)
	}

	domain.DNSRecords = records
	if err := u.domainRepo.Update(ctx, domain); err != nil {
		return nil, err
	}
	return domain, nil
}
