package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/infrastructure/models"
	"domain-agent.backend/pkg/utils"
)

// TransactionRepository implements transaction data operations
type TransactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// Create creates a new transaction
func (r *TransactionRepository) Create(ctx context.Context, tx *entities.Transaction) error {
	m := r.toModel(tx)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByPaymentIntentID gets a transaction by its payment intent reference
func (r *TransactionRepository) GetByPaymentIntentID(ctx context.Context, intentID string) (*entities.Transaction, error) {
	var m models.Transaction
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("stripe_payment_intent_id = ?", intentID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetPendingForDomain returns the pending transaction for a domain/user pair
func (r *TransactionRepository) GetPendingForDomain(ctx context.Context, domainID, userID uuid.UUID) (*entities.Transaction, error) {
	var m models.Transaction
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("domain_id = ? AND user_id = ? AND status = ?",
			domainID, userID, string(entities.TransactionStatusPending)).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByUser lists a user's transactions with optional filters
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID, filter entities.TransactionListFilter) ([]*entities.Transaction, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Type != "" {
		query = query.Where("type = ?", string(filter.Type))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := utils.GetPaginationParams(filter.Page, filter.Limit)
	var txModels []models.Transaction
	err := query.Order("created_at DESC").
		Offset(params.CalculateOffset()).
		Limit(params.Limit).
		Find(&txModels).Error
	if err != nil {
		return nil, 0, err
	}

	txs := make([]*entities.Transaction, 0, len(txModels))
	for i := range txModels {
		txs = append(txs, r.toEntity(&txModels[i]))
	}
	return txs, total, nil
}

// Update persists mutable transaction fields
func (r *TransactionRepository) Update(ctx context.Context, tx *entities.Transaction) error {
	updates := map[string]interface{}{
		"status":     string(tx.Status),
		"updated_at": time.Now(),
	}
	if tx.StripePaymentIntentID.Valid {
		updates["stripe_payment_intent_id"] = tx.StripePaymentIntentID.String
	}
	if tx.StripeChargeID.Valid {
		updates["stripe_charge_id"] = tx.StripeChargeID.String
	}
	if tx.CardBrand.Valid {
		updates["card_brand"] = tx.CardBrand.String
	}
	if tx.CardLast4.Valid {
		updates["card_last4"] = tx.CardLast4.String
	}
	if tx.Notes.Valid {
		updates["notes"] = tx.Notes.String
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Where("id = ?", tx.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// CountByUserAndStatus counts a user's transactions in the given status
func (r *TransactionRepository) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status entities.TransactionStatus) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CancelPendingForDomains marks all pending transactions of the given
// domains cancelled
func (r *TransactionRepository) CancelPendingForDomains(ctx context.Context, domainIDs []uuid.UUID) error {
	if len(domainIDs) == 0 {
		return nil
	}
	return GetDB(ctx, r.db).WithContext(ctx).Model(&models.Transaction{}).
		Where("domain_id IN ? AND status = ?", domainIDs, string(entities.TransactionStatusPending)).
		Updates(map[string]interface{}{
			"status":     string(entities.TransactionStatusCancelled),
			"updated_at": time.Now(),
		}).Error
}

func (r *TransactionRepository) toModel(t *entities.Transaction) *models.Transaction {
	m := &models.Transaction{
		ID:             t.ID,
		UserID:         t.UserID,
		DomainID:       t.DomainID,
		Type:           string(t.Type),
		Status:         string(t.Status),
		AmountValue:    t.Amount.Value,
		AmountCurrency: t.Amount.Currency,
		PaymentMethod:  t.PaymentMethod,
		Years:          t.Years,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
	}
	if t.StripePaymentIntentID.Valid {
		m.StripePaymentIntentID = &t.StripePaymentIntentID.String
	}
	if t.StripeChargeID.Valid {
		m.StripeChargeID = &t.StripeChargeID.String
	}
	if t.CardBrand.Valid {
		m.CardBrand = &t.CardBrand.String
	}
	if t.CardLast4.Valid {
		m.CardLast4 = &t.CardLast4.String
	}
	if t.Notes.Valid {
		m.Notes = &t.Notes.String
	}
	return m
}

func (r *TransactionRepository) toEntity(m *models.Transaction) *entities.Transaction {
	t := &entities.Transaction{
		ID:       m.ID,
		UserID:   m.UserID,
		DomainID: m.DomainID,
		Type:     entities.TransactionType(m.Type),
		Status:   entities.TransactionStatus(m.Status),
		Amount: entities.Amount{
			Value:    m.AmountValue,
			Currency: m.AmountCurrency,
		},
		PaymentMethod: m.PaymentMethod,
		Years:         m.Years,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	t.StripePaymentIntentID = null.StringFromPtr(m.StripePaymentIntentID)
	t.StripeChargeID = null.StringFromPtr(m.StripeChargeID)
	t.CardBrand = null.StringFromPtr(m.CardBrand)
	t.CardLast4 = null.StringFromPtr(m.CardLast4)
	t.Notes = null.StringFromPtr(m.Notes)
	return t
}
