package repositories

import (
	"context"

	"github.com/google/uuid"
	"domain-agent.backend/internal/domain/entities"
)

// TransactionRepository defines transaction data operations
type TransactionRepository interface {
	Create(ctx context.Context, tx *entities.Transaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transaction, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*entities.Transaction, error)
	// GetPendingForDomain returns the pending transaction for a
	// domain/user pair, if one exists.
	GetPendingForDomain(ctx context.Context, domainID, userID uuid.UUID) (*entities.Transaction, error)
	ListByUser(ctx context.Context, userID uuid.UUID, filter entities.TransactionListFilter) ([]*entities.Transaction, int64, error)
	Update(ctx context.Context, tx *entities.Transaction) error
	CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status entities.TransactionStatus) (int64, error)
	// CancelPendingForDomains marks all pending transactions of the given
	// domains cancelled. Used by the stale-purchase expiry job.
	CancelPendingForDomains(ctx context.Context, domainIDs []uuid.UUID) error
}
