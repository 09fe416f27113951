package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/domain/services"
	"domain-agent.backend/internal/interfaces/http/middleware"
	"domain-agent.backend/internal/interfaces/http/response"
	"domain-agent.backend/internal/usecases"
	"domain-agent.backend/pkg/utils"
)

// PaymentService is the slice of the payment usecase the handler depends on
type PaymentService interface {
	CreateIntent(ctx context.Context, userID uuid.UUID, input *entities.CreateIntentInput) (*usecases.IntentResult, error)
	ConfirmPayment(ctx context.Context, userID uuid.UUID, intentID string) (*usecases.ConfirmResult, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	Refund(ctx context.Context, userID, transactionID uuid.UUID, input *entities.RefundInput) (*entities.Transaction, error)
	History(ctx context.Context, userID uuid.UUID, filter entities.TransactionListFilter) ([]*entities.Transaction, int64, error)
	ListPaymentMethods(ctx context.Context, userID uuid.UUID) ([]services.PaymentMethod, error)
}

// PaymentHandler handles the card payment endpoints
type PaymentHandler struct {
	payments PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(payments PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// CreateIntent opens a payment intent for a pending domain order
// POST /api/payments/create-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.CreateIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.payments.CreateIntent(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, result)
}

// ConfirmPayment settles an order after the client finishes the card flow
// POST /api/payments/confirm-payment
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.payments.ConfirmPayment(c.Request.Context(), userID, input.PaymentIntentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Webhook receives signature-verified processor callbacks. The raw body
// is needed for signature verification, so no JSON binding here.
// POST /api/payments/webhook
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("unable to read request body"))
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		response.Error(c, domainerrors.Unauthorized("missing webhook signature"))
		return
	}

	if err := h.payments.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		response.Error(c, err)
		return
	}

	response.Message(c, http.StatusOK, "received")
}

// Refund refunds a completed transaction
// POST /api/payments/refund/:transactionId
func (h *PaymentHandler) Refund(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	transactionID, err := uuid.Parse(c.Param("transactionId"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid transaction id"))
		return
	}

	var input entities.RefundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	tx, err := h.payments.Refund(c.Request.Context(), userID, transactionID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tx)
}

// History lists the caller's transactions
// GET /api/payments/history?page=&limit=&status=&type=
func (h *PaymentHandler) History(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var params utils.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ValidationError(c, err)
		return
	}
	filter := entities.TransactionListFilter{
		Status: entities.TransactionStatus(c.Query("status")),
		Type:   entities.TransactionType(c.Query("type")),
		Page:   params.Page,
		Limit:  params.Limit,
	}

	txs, total, err := h.payments.History(c.Request.Context(), userID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	normalized := utils.GetPaginationParams(filter.Page, filter.Limit)
	response.Paginated(c, txs, utils.CalculateMeta(total, normalized.Page, normalized.Limit))
}

// PaymentMethods lists the caller's stored cards
// GET /api/payments/methods
func (h *PaymentHandler) PaymentMethods(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	methods, err := h.payments.ListPaymentMethods(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"paymentMethods": methods})
}
