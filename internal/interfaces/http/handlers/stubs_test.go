package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"domain-agent.backend/internal/domain/entities"
	"domain-agent.backend/internal/domain/services"
	"domain-agent.backend/internal/interfaces/http/middleware"
	"domain-agent.backend/internal/usecases"
)

type stubAuthService struct {
	register       func(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error)
	login          func(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	getCurrentUser func(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	updateProfile  func(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error)
	forgotPassword func(ctx context.Context, email string) error
	resetPassword  func(ctx context.Context, input *entities.ResetPasswordInput) (*entities.AuthResponse, error)
}

func (s *stubAuthService) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	return s.register(ctx, input)
}

func (s *stubAuthService) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.login(ctx, input)
}

func (s *stubAuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.getCurrentUser(ctx, userID)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	return s.updateProfile(ctx, userID, input)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotPassword(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) (*entities.AuthResponse, error) {
	return s.resetPassword(ctx, input)
}

type stubDomainService struct {
	search            func(ctx context.Context, query string, extensions []string, includeAI bool) (*usecases.SearchResult, error)
	checkAvailability func(ctx context.Context, domain string) (*entities.AvailabilityResult, error)
	getDetails        func(ctx context.Context, domain string) (*usecases.DomainDetails, error)
	listOwned         func(ctx context.Context, ownerID uuid.UUID, filter entities.DomainListFilter) ([]*entities.Domain, int64, error)
	purchase          func(ctx context.Context, userID uuid.UUID, input *entities.PurchaseDomainInput) (*entities.Domain, *entities.Transaction, error)
	renew             func(ctx context.Context, userID, domainID uuid.UUID, years int) (*entities.Transaction, error)
	transfer          func(ctx context.Context, userID uuid.UUID, input *entities.TransferDomainInput) (*entities.Domain, *entities.Transaction, error)
	getDNSRecords     func(ctx context.Context, userID, domainID uuid.UUID) ([]entities.DNSRecord, error)
	updateDNSRecords  func(ctx context.Context, userID, domainID uuid.UUID, records []entities.DNSRecord) (*entities.Domain, error)
}

func (s *stubDomainService) Search(ctx context.Context, query string, extensions []string, includeAI bool) (*usecases.SearchResult, error) {
	return s.search(ctx, query, extensions, includeAI)
}

func (s *stubDomainService) CheckAvailability(ctx context.Context, domain string) (*entities.AvailabilityResult, error) {
	return s.checkAvailability(ctx, domain)
}

func (s *stubDomainService) GetDetails(ctx context.Context, domain string) (*usecases.DomainDetails, error) {
	return s.getDetails(ctx, domain)
}

func (s *stubDomainService) ListOwned(ctx context.Context, ownerID uuid.UUID, filter entities.DomainListFilter) ([]*entities.Domain, int64, error) {
	return s.listOwned(ctx, ownerID, filter)
}

func (s *stubDomainService) Purchase(ctx context.Context, userID uuid.UUID, input *entities.PurchaseDomainInput) (*entities.Domain, *entities.Transaction, error) {
	return s.purchase(ctx, userID, input)
}

func (s *stubDomainService) Renew(ctx context.Context, userID, domainID uuid.UUID, years int) (*entities.Transaction, error) {
	return s.renew(ctx, userID, domainID, years)
}

func (s *stubDomainService) Transfer(ctx context.Context, userID uuid.UUID, input *entities.TransferDomainInput) (*entities.Domain, *entities.Transaction, error) {
	return s.transfer(ctx, userID, input)
}

func (s *stubDomainService) GetDNSRecords(ctx context.Context, userID, domainID uuid.UUID) ([]entities.DNSRecord, error) {
	return s.getDNSRecords(ctx, userID, domainID)
}

func (s *stubDomainService) UpdateDNSRecords(ctx context.Context, userID, domainID uuid.UUID, records []entities.DNSRecord) (*entities.Domain, error) {
	return s.updateDNSRecords(ctx, userID, domainID, records)
}

type stubPaymentService struct {
	createIntent       func(ctx context.Context, userID uuid.UUID, input *entities.CreateIntentInput) (*usecases.IntentResult, error)
	confirmPayment     func(ctx context.Context, userID uuid.UUID, intentID string) (*usecases.ConfirmResult, error)
	handleWebhook      func(ctx context.Context, payload []byte, signature string) error
	refund             func(ctx context.Context, userID, transactionID uuid.UUID, input *entities.RefundInput) (*entities.Transaction, error)
	history            func(ctx context.Context, userID uuid.UUID, filter entities.TransactionListFilter) ([]*entities.Transaction, int64, error)
	listPaymentMethods func(ctx context.Context, userID uuid.UUID) ([]services.PaymentMethod, error)
}

func (s *stubPaymentService) CreateIntent(ctx context.Context, userID uuid.UUID, input *entities.CreateIntentInput) (*usecases.IntentResult, error) {
	return s.createIntent(ctx, userID, input)
}

func (s *stubPaymentService) ConfirmPayment(ctx context.Context, userID uuid.UUID, intentID string) (*usecases.ConfirmResult, error) {
	return s.confirmPayment(ctx, userID, intentID)
}

func (s *stubPaymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	return s.handleWebhook(ctx, payload, signature)
}

func (s *stubPaymentService) Refund(ctx context.Context, userID, transactionID uuid.UUID, input *entities.RefundInput) (*entities.Transaction, error) {
	return s.refund(ctx, userID, transactionID, input)
}

func (s *stubPaymentService) History(ctx context.Context, userID uuid.UUID, filter entities.TransactionListFilter) ([]*entities.Transaction, int64, error) {
	return s.history(ctx, userID, filter)
}

func (s *stubPaymentService) ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]services.PaymentMethod, error) {
	return s.listPaymentMethods(ctx, userID)
}

type stubAIService struct {
	suggestDomains        func(ctx context.Context, input *entities.SuggestDomainsInput) ([]entities.DomainSuggestion, error)
	analyzeDomain         func(ctx context.Context, input *entities.AnalyzeDomainInput) (*entities.DomainAnalysis, error)
	chat                  func(ctx context.Context, userID uuid.UUID, input *entities.ChatInput) (*usecases.ChatResult, error)
	getConversation       func(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.AIConversation, error)
	listConversations     func(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.AIConversation, int64, error)
	generateBusinessNames func(ctx context.Context, input *entities.BusinessNamesInput) ([]entities.BusinessName, error)
}

func (s *stubAIService) SuggestDomains(ctx context.Context, input *entities.SuggestDomainsInput) ([]entities.DomainSuggestion, error) {
	return s.suggestDomains(ctx, input)
}

func (s *stubAIService) AnalyzeDomain(ctx context.Context, input *entities.AnalyzeDomainInput) (*entities.DomainAnalysis, error) {
	return s.analyzeDomain(ctx, input)
}

func (s *stubAIService) Chat(ctx context.Context, userID uuid.UUID, input *entities.ChatInput) (*usecases.ChatResult, error) {
	return s.chat(ctx, userID, input)
}

func (s *stubAIService) GetConversation(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.AIConversation, error) {
	return s.getConversation(ctx, userID, sessionID)
}

func (s *stubAIService) ListConversations(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.AIConversation, int64, error) {
	return s.listConversations(ctx, userID, page, limit)
}

func (s *stubAIService) GenerateBusinessNames(ctx context.Context, input *entities.BusinessNamesInput) ([]entities.BusinessName, error) {
	return s.generateBusinessNames(ctx, input)
}

type stubUserService struct {
	getProfile        func(ctx context.Context, userID uuid.UUID) (*entities.User, error)
	updatePreferences func(ctx context.Context, userID uuid.UUID, input *entities.UpdatePreferencesInput) (*entities.User, error)
	deleteAccount     func(ctx context.Context, userID uuid.UUID, input *entities.DeleteAccountInput) error
	getStats          func(ctx context.Context, userID uuid.UUID) (*usecases.UserStats, error)
}

func (s *stubUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return s.getProfile(ctx, userID)
}

func (s *stubUserService) UpdatePreferences(ctx context.Context, userID uuid.UUID, input *entities.UpdatePreferencesInput) (*entities.User, error) {
	return s.updatePreferences(ctx, userID, input)
}

func (s *stubUserService) DeleteAccount(ctx context.Context, userID uuid.UUID, input *entities.DeleteAccountInput) error {
	return s.deleteAccount(ctx, userID, input)
}

func (s *stubUserService) GetStats(ctx context.Context, userID uuid.UUID) (*usecases.UserStats, error) {
	return s.getStats(ctx, userID)
}

// authAs injects an authenticated identity the way AuthMiddleware would
func authAs(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.UserIDKey, userID)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
