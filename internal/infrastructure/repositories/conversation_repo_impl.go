package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/infrastructure/models"
	"domain-agent.backend/pkg/utils"
)

// ConversationRepository implements AI conversation data operations
type ConversationRepository struct {
	db *gorm.DB
}

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(db *gorm.DB) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// Create creates a new conversation
func (r *ConversationRepository) Create(ctx context.Context, conv *entities.AIConversation) error {
	m, err := r.toModel(conv)
	if err != nil {
		return err
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetBySession gets a conversation by session ID scoped to its user
func (r *ConversationRepository) GetBySession(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.AIConversation, error) {
	var m models.AIConversation
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m)
}

// ListByUser lists a user's conversations, most recent first
func (r *ConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.AIConversation, int64, error) {
	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.AIConversation{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params := utils.GetPaginationParams(page, limit)
	var convModels []models.AIConversation
	err := query.Order("updated_at DESC").
		Offset(params.CalculateOffset()).
		Limit(params.Limit).
		Find(&convModels).Error
	if err != nil {
		return nil, 0, err
	}

	convs := make([]*entities.AIConversation, 0, len(convModels))
	for i := range convModels {
		conv, err := r.toEntity(&convModels[i])
		if err != nil {
			return nil, 0, err
		}
		convs = append(convs, conv)
	}
	return convs, total, nil
}

// Update persists the conversation's messages, recommendations and status
func (r *ConversationRepository) Update(ctx context.Context, conv *entities.AIConversation) error {
	messages, err := json.Marshal(conv.Messages)
	if err != nil {
		return err
	}
	recommendations, err := json.Marshal(conv.Recommendations)
	if err != nil {
		return err
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.AIConversation{}).
		Where("id = ?", conv.ID).
		Updates(map[string]interface{}{
			"messages":        string(messages),
			"recommendations": string(recommendations),
			"status":          string(conv.Status),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func (r *ConversationRepository) toModel(c *entities.AIConversation) (*models.AIConversation, error) {
	messages, err := json.Marshal(c.Messages)
	if err != nil {
		return nil, err
	}
	recommendations, err := json.Marshal(c.Recommendations)
	if err != nil {
		return nil, err
	}
	return &models.AIConversation{
		ID:              c.ID,
		UserID:          c.UserID,
		SessionID:       c.SessionID,
		Messages:        string(messages),
		Recommendations: string(recommendations),
		Status:          string(c.Status),
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}, nil
}

func (r *ConversationRepository) toEntity(m *models.AIConversation) (*entities.AIConversation, error) {
	c := &entities.AIConversation{
		ID:              m.ID,
		UserID:          m.UserID,
		SessionID:       m.SessionID,
		Messages:        []entities.Message{},
		Recommendations: []entities.Recommendation{},
		Status:          entities.ConversationStatus(m.Status),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	if m.Messages != "" {
		if err := json.Unmarshal([]byte(m.Messages), &c.Messages); err != nil {
			return nil, err
		}
	}
	if m.Recommendations != "" {
		if err := json.Unmarshal([]byte(m.Recommendations), &c.Recommendations); err != nil {
			return nil, err
		}
	}
	return c, nil
}
