package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
)

func newTestConversation(userID uuid.UUID, sessionID string) *entities.AIConversation {
	now := time.Now()
	return &entities.AIConversation{
		ID:        uuid.New(),
		UserID:    userID,
		SessionID: sessionID,
		Messages: []entities.Message{
			{Role: entities.MessageRoleUser, Content: "I need a name for my bakery", Timestamp: now},
		},
		Recommendations: []entities.Recommendation{},
		Status:          entities.ConversationStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestConversationRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	createConversationTable(t, db)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	conv := newTestConversation(userID, "sess-1")
	require.NoError(t, repo.Create(ctx, conv))

	got, err := repo.GetBySession(ctx, userID, "sess-1")
	require.NoError(t, err)
	require.Equal(t, conv.ID, got.ID)
	require.Len(t, got.Messages, 1)
	require.Equal(t, entities.MessageRoleUser, got.Messages[0].Role)

	conv.Messages = append(conv.Messages, entities.Message{
		Role:      entities.MessageRoleAssistant,
		Content:   "How about sweetcrumb.com?",
		Timestamp: time.Now(),
	})
	conv.Recommendations = append(conv.Recommendations, entities.Recommendation{
		Domain:     "sweetcrumb.com",
		Confidence: 0.8,
	})
	require.NoError(t, repo.Update(ctx, conv))

	updated, err := repo.GetBySession(ctx, userID, "sess-1")
	require.NoError(t, err)
	require.Len(t, updated.Messages, 2)
	require.Len(t, updated.Recommendations, 1)
	require.Equal(t, "sweetcrumb.com", updated.Recommendations[0].Domain)
}

func TestConversationRepository_SessionScoping(t *testing.T) {
	db := newTestDB(t)
	createConversationTable(t, db)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	require.NoError(t, repo.Create(ctx, newTestConversation(owner, "sess-owned")))

	// Another user cannot read the session.
	_, err := repo.GetBySession(ctx, uuid.New(), "sess-owned")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// Session IDs are globally unique.
	err = repo.Create(ctx, newTestConversation(uuid.New(), "sess-owned"))
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestConversationRepository_ListByUser(t *testing.T) {
	db := newTestDB(t)
	createConversationTable(t, db)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		conv := newTestConversation(userID, uuid.NewString())
		require.NoError(t, repo.Create(ctx, conv))
	}
	require.NoError(t, repo.Create(ctx, newTestConversation(uuid.New(), "other-user")))

	convs, total, err := repo.ListByUser(ctx, userID, 1, 2)
	require.NoError(t, err)
	require.EqualValues(t, 3, total)
	require.Len(t, convs, 2)
}

func TestConversationRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createConversationTable(t, db)
	repo := NewConversationRepository(db)
	ctx := context.Background()

	_, err := repo.GetBySession(ctx, uuid.New(), "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, newTestConversation(uuid.New(), "missing"))
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
