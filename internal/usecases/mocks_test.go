package usecases

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"domain-agent.backend/internal/domain/entities"
	"domain-agent.backend/internal/domain/services"
)

// Mock UnitOfWork

type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(context.Context) error) error {
	m.Called(ctx, fn)
	return fn(ctx)
}

// Mock UserRepository

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(ctx context.Context, tokenHash string) (*entities.User, error) {
	args := m.Called(ctx, tokenHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id uuid.UUID, mangledEmail string) error {
	args := m.Called(ctx, id, mangledEmail)
	return args.Error(0)
}

// Mock DomainRepository

type MockDomainRepository struct {
	mock.Mock
}

func (m *MockDomainRepository) Create(ctx context.Context, domain *entities.Domain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

func (m *MockDomainRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Domain, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Domain), args.Error(1)
}

func (m *MockDomainRepository) GetByFullDomain(ctx context.Context, fullDomain string) (*entities.Domain, error) {
	args := m.Called(ctx, fullDomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Domain), args.Error(1)
}

func (m *MockDomainRepository) GetActiveByFullDomain(ctx context.Context, fullDomain string) (*entities.Domain, error) {
	args := m.Called(ctx, fullDomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Domain), args.Error(1)
}

func (m *MockDomainRepository) GetOwned(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*entities.Domain, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Domain), args.Error(1)
}

func (m *MockDomainRepository) GetOwnedByFullDomain(ctx context.Context, ownerID uuid.UUID, fullDomain string) (*entities.Domain, error) {
	args := m.Called(ctx, ownerID, fullDomain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Domain), args.Error(1)
}

func (m *MockDomainRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter entities.DomainListFilter) ([]*entities.Domain, int64, error) {
	args := m.Called(ctx, ownerID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.Domain), args.Get(1).(int64), args.Error(2)
}

func (m *MockDomainRepository) Update(ctx context.Context, domain *entities.Domain) error {
	args := m.Called(ctx, domain)
	return args.Error(0)
}

func (m *MockDomainRepository) CountByOwnerAndStatuses(ctx context.Context, ownerID uuid.UUID, statuses []entities.DomainStatus) (int64, error) {
	args := m.Called(ctx, ownerID, statuses)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockDomainRepository) ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.Domain, error) {
	args := m.Called(ctx, olderThan, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Domain), args.Error(1)
}

// Mock TransactionRepository

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*entities.Transaction, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetPendingForDomain(ctx context.Context, domainID, userID uuid.UUID) (*entities.Transaction, error) {
	args := m.Called(ctx, domainID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter entities.TransactionListFilter) ([]*entities.Transaction, int64, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.Transaction), args.Get(1).(int64), args.Error(2)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx *entities.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status entities.TransactionStatus) (int64, error) {
	args := m.Called(ctx, userID, status)
	return int64(args.Int(0)), args.Error(1)
}

func (m *MockTransactionRepository) CancelPendingForDomains(ctx context.Context, domainIDs []uuid.UUID) error {
	args := m.Called(ctx, domainIDs)
	return args.Error(0)
}

// Mock ConversationRepository

type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, conv *entities.AIConversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) GetBySession(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.AIConversation, error) {
	args := m.Called(ctx, userID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AIConversation), args.Error(1)
}

func (m *MockConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.AIConversation, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	if args.Get(0) == nil {
		return nil, int64(args.Int(1)), args.Error(2)
	}
	return args.Get(0).([]*entities.AIConversation), int64(args.Int(1)), args.Error(2)
}

func (m *MockConversationRepository) Update(ctx context.Context, conv *entities.AIConversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

// Mock Registrar

type MockRegistrar struct {
	mock.Mock
}

func (m *MockRegistrar) CheckAvailability(ctx context.Context, domain string) (*entities.AvailabilityResult, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AvailabilityResult), args.Error(1)
}

func (m *MockRegistrar) Register(ctx context.Context, domain string, years int, contact entities.ContactInfo) (*services.RegistrationResult, error) {
	args := m.Called(ctx, domain, years, contact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RegistrationResult), args.Error(1)
}

func (m *MockRegistrar) GetInfo(ctx context.Context, domain string) (*services.DomainInfo, error) {
	args := m.Called(ctx, domain)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DomainInfo), args.Error(1)
}

func (m *MockRegistrar) SetDNSRecords(ctx context.Context, domain string, records []entities.DNSRecord) error {
	args := m.Called(ctx, domain, records)
	return args.Error(0)
}

// Mock PaymentProcessor

type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) CreateCustomer(ctx context.Context, userID, email, name string) (string, error) {
	args := m.Called(ctx, userID, email, name)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentProcessor) CreatePaymentIntent(ctx context.Context, amountCents int64, currency, customerID string, metadata map[string]string) (*services.PaymentIntent, error) {
	args := m.Called(ctx, amountCents, currency, customerID, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PaymentIntent), args.Error(1)
}

func (m *MockPaymentProcessor) GetPaymentIntent(ctx context.Context, intentID string) (*services.PaymentIntent, error) {
	args := m.Called(ctx, intentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.PaymentIntent), args.Error(1)
}

func (m *MockPaymentProcessor) CreateRefund(ctx context.Context, chargeID string, amountCents int64) (*services.RefundResult, error) {
	args := m.Called(ctx, chargeID, amountCents)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.RefundResult), args.Error(1)
}

func (m *MockPaymentProcessor) ListPaymentMethods(ctx context.Context, customerID string) ([]services.PaymentMethod, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.PaymentMethod), args.Error(1)
}

func (m *MockPaymentProcessor) VerifyWebhookSignature(payload []byte, signature string) (*services.WebhookEvent, error) {
	args := m.Called(payload, signature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.WebhookEvent), args.Error(1)
}

// Mock DomainAdvisor

type MockDomainAdvisor struct {
	mock.Mock
}

func (m *MockDomainAdvisor) SuggestDomains(ctx context.Context, req entities.SuggestionRequirements) ([]entities.DomainSuggestion, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.DomainSuggestion), args.Error(1)
}

func (m *MockDomainAdvisor) AnalyzeDomain(ctx context.Context, domain, context string) (*entities.DomainAnalysis, error) {
	args := m.Called(ctx, domain, context)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DomainAnalysis), args.Error(1)
}

func (m *MockDomainAdvisor) Consult(ctx context.Context, question, conversation string) (*entities.ConsultationResult, error) {
	args := m.Called(ctx, question, conversation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ConsultationResult), args.Error(1)
}

func (m *MockDomainAdvisor) GenerateBusinessNames(ctx context.Context, industry string, keywords []string, style string) ([]entities.BusinessName, error) {
	args := m.Called(ctx, industry, keywords, style)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.BusinessName), args.Error(1)
}

// Mock Mailer

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcome(ctx context.Context, email, name string) error {
	args := m.Called(ctx, email, name)
	return args.Error(0)
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, email, name, resetToken string) error {
	args := m.Called(ctx, email, name, resetToken)
	return args.Error(0)
}

func (m *MockMailer) SendPurchaseConfirmation(ctx context.Context, email, name, domain string, amount float64) error {
	args := m.Called(ctx, email, name, domain, amount)
	return args.Error(0)
}
