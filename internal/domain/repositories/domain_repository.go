package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"domain-agent.backend/internal/domain/entities"
)

// DomainRepository defines domain data operations
type DomainRepository interface {
	// Create inserts a domain row. Inserting a second active row for the
	// same full_domain returns errors.ErrAlreadyExists via the partial
	// unique index; callers treat the pre-check as advisory only.
	Create(ctx context.Context, domain *entities.Domain) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Domain, error)
	GetByFullDomain(ctx context.Context, fullDomain string) (*entities.Domain, error)
	// GetActiveByFullDomain returns the row holding an active status
	// (registered, pending, payment_completed) for a full domain, if any.
	GetActiveByFullDomain(ctx context.Context, fullDomain string) (*entities.Domain, error)
	GetOwned(ctx context.Context, ownerID uuid.UUID, id uuid.UUID) (*entities.Domain, error)
	GetOwnedByFullDomain(ctx context.Context, ownerID uuid.UUID, fullDomain string) (*entities.Domain, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter entities.DomainListFilter) ([]*entities.Domain, int64, error)
	Update(ctx context.Context, domain *entities.Domain) error
	CountByOwnerAndStatuses(ctx context.Context, ownerID uuid.UUID, statuses []entities.DomainStatus) (int64, error)
	// ListStalePending returns pending domains created before the cutoff.
	ListStalePending(ctx context.Context, olderThan time.Time, limit int) ([]*entities.Domain, error)
}
