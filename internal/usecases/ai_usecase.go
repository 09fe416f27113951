package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/domain/repositories"
	"domain-agent.backend/internal/domain/services"
	"domain-agent.backend/internal/infrastructure/ai"
)

// chatContextMessages caps how much history is replayed into the prompt
const chatContextMessages = 10

// ChatResult is one assistant turn plus the session it belongs to
type ChatResult struct {
	SessionID       string                    `json:"sessionId"`
	Reply           string                    `json:"reply"`
	Recommendations []entities.Recommendation `json:"recommendations"`
}

// AIUsecase handles assistant-backed features
type AIUsecase struct {
	advisor  services.DomainAdvisor
	convRepo repositories.ConversationRepository
}

// NewAIUsecase creates a new AI usecase
func NewAIUsecase(advisor services.DomainAdvisor, convRepo repositories.ConversationRepository) *AIUsecase {
	return &AIUsecase{
		advisor:  advisor,
		convRepo: convRepo,
	}
}

// SuggestDomains returns AI domain name suggestions
func (u *AIUsecase) SuggestDomains(ctx context.Context, input *entities.SuggestDomainsInput) ([]entities.DomainSuggestion, error) {
	return u.advisor.SuggestDomains(ctx, entities.SuggestionRequirements{
		Business:   input.Business,
		Industry:   input.Industry,
		Keywords:   input.Keywords,
		Budget:     input.Budget,
		Extensions: input.Extensions,
		Audience:   input.Audience,
		Context:    input.Context,
	})
}

// AnalyzeDomain returns an AI scorecard for one domain
func (u *AIUsecase) AnalyzeDomain(ctx context.Context, input *entities.AnalyzeDomainInput) (*entities.DomainAnalysis, error) {
	return u.advisor.AnalyzeDomain(ctx, strings.ToLower(strings.TrimSpace(input.Domain)), input.Context)
}

// Chat appends a user turn to the session, asks the model with the recent
// history as context, stores the reply and any extracted recommendations.
// A missing session id starts a fresh conversation.
func (u *AIUsecase) Chat(ctx context.Context, userID uuid.UUID, input *entities.ChatInput) (*ChatResult, error) {
	conv, err := u.findOrCreateConversation(ctx, userID, input.SessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	conv.Messages = append(conv.Messages, entities.Message{
		Role:      entities.MessageRoleUser,
		Content:   input.Message,
		Timestamp: now,
	})

	result, err := u.advisor.Consult(ctx, input.Message, renderHistory(conv.Messages))
	if err != nil {
		return nil, err
	}

	conv.Messages = append(conv.Messages, entities.Message{
		Role:      entities.MessageRoleAssistant,
		Content:   result.Response,
		Timestamp: time.Now(),
	})

	recommendations := ai.ExtractRecommendations(result.Response)
	if len(recommendations) > 0 {
		conv.Recommendations = mergeRecommendations(conv.Recommendations, recommendations)
	}

	if err := u.convRepo.Update(ctx, conv); err != nil {
		return nil, err
	}

	return &ChatResult{
		SessionID:       conv.SessionID,
		Reply:           result.Response,
		Recommendations: recommendations,
	}, nil
}

// GetConversation returns one full conversation by session id
func (u *AIUsecase) GetConversation(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.AIConversation, error) {
	return u.convRepo.GetBySession(ctx, userID, sessionID)
}

// ListConversations returns the caller's conversation summaries
func (u *AIUsecase) ListConversations(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.AIConversation, int64, error) {
	return u.convRepo.ListByUser(ctx, userID, page, limit)
}

// GenerateBusinessNames returns AI business name ideas
func (u *AIUsecase) GenerateBusinessNames(ctx context.Context, input *entities.BusinessNamesInput) ([]entities.BusinessName, error) {
	return u.advisor.GenerateBusinessNames(ctx, input.Industry, input.Keywords, input.Style)
}

func (u *AIUsecase) findOrCreateConversation(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.AIConversation, error) {
	if sessionID != "" {
		conv, err := u.convRepo.GetBySession(ctx, userID, sessionID)
		if err == nil {
			return conv, nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	now := time.Now()
	conv := &entities.AIConversation{
		ID:              uuid.New(),
		UserID:          userID,
		SessionID:       sessionID,
		Messages:        []entities.Message{},
		Recommendations: []entities.Recommendation{},
		Status:          entities.ConversationStatusActive,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := u.convRepo.Create(ctx, conv); err != nil {
		return nil, err
	}
	return conv, nil
}

// renderHistory flattens the most recent turns into prompt context
func renderHistory(messages []entities.Message) string {
	start := 0
	if len(messages) > chatContextMessages {
		start = len(messages) - chatContextMessages
	}

	var b strings.Builder
	for _, msg := range messages[start:] {
		role := "Customer"
		if msg.Role == entities.MessageRoleAssistant {
			role = "Consultant"
		}
		fmt.Fprintf(&b, "%s: %s\n", role, msg.Content)
	}
	return b.String()
}

func mergeRecommendations(existing, incoming []entities.Recommendation) []entities.Recommendation {
	seen := make(map[string]bool, len(existing))
	for _, rec := range existing {
		seen[rec.Domain] = true
	}
	for _, rec := range incoming {
		if !seen[rec.Domain] {
			existing = append(existing, rec)
			seen[rec.Domain] = true
		}
	}
	return existing
}
