package repositories

import (
	"context"

	"github.com/google/uuid"
	"domain-agent.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByResetToken(ctx context.Context, tokenHash string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Deactivate(ctx context.Context, id uuid.UUID, mangledEmail string) error
}
