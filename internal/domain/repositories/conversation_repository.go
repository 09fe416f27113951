package repositories

import (
	"context"

	"github.com/google/uuid"
	"domain-agent.backend/internal/domain/entities"
)

// ConversationRepository defines AI conversation data operations
type ConversationRepository interface {
	Create(ctx context.Context, conv *entities.AIConversation) error
	GetBySession(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.AIConversation, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.AIConversation, int64, error)
	Update(ctx context.Context, conv *entities.AIConversation) error
}
