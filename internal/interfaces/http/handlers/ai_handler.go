package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/interfaces/http/middleware"
	"domain-agent.backend/internal/interfaces/http/response"
	"domain-agent.backend/internal/usecases"
	"domain-agent.backend/pkg/utils"
)

// AIService is the slice of the AI usecase the handler depends on
type AIService interface {
	SuggestDomains(ctx context.Context, input *entities.SuggestDomainsInput) ([]entities.DomainSuggestion, error)
	AnalyzeDomain(ctx context.Context, input *entities.AnalyzeDomainInput) (*entities.DomainAnalysis, error)
	Chat(ctx context.Context, userID uuid.UUID, input *entities.ChatInput) (*usecases.ChatResult, error)
	GetConversation(ctx context.Context, userID uuid.UUID, sessionID string) (*entities.AIConversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID, page, limit int) ([]*entities.AIConversation, int64, error)
	GenerateBusinessNames(ctx context.Context, input *entities.BusinessNamesInput) ([]entities.BusinessName, error)
}

// AIHandler handles the assistant endpoints
type AIHandler struct {
	ai AIService
}

// NewAIHandler creates a new AI handler
func NewAIHandler(ai AIService) *AIHandler {
	return &AIHandler{ai: ai}
}

// SuggestDomains returns AI domain name suggestions
// POST /api/ai/suggest-domains
func (h *AIHandler) SuggestDomains(c *gin.Context) {
	var input entities.SuggestDomainsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	suggestions, err := h.ai.SuggestDomains(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"suggestions": suggestions})
}

// AnalyzeDomain returns an AI scorecard for one domain
// POST /api/ai/analyze-domain
func (h *AIHandler) AnalyzeDomain(c *gin.Context) {
	var input entities.AnalyzeDomainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	analysis, err := h.ai.AnalyzeDomain(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, analysis)
}

// Chat appends a turn to an assistant conversation
// POST /api/ai/chat
func (h *AIHandler) Chat(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.ChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	result, err := h.ai.Chat(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Conversations lists the caller's sessions, or returns one full
// conversation when sessionId is given
// GET /api/ai/conversations?sessionId=&page=&limit=
func (h *AIHandler) Conversations(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	if sessionID := c.Query("sessionId"); sessionID != "" {
		conv, err := h.ai.GetConversation(c.Request.Context(), userID, sessionID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, conv)
		return
	}

	var params utils.PaginationParams
	if err := c.ShouldBindQuery(&params); err != nil {
		response.ValidationError(c, err)
		return
	}

	conversations, total, err := h.ai.ListConversations(c.Request.Context(), userID, params.Page, params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	normalized := utils.GetPaginationParams(params.Page, params.Limit)
	response.Paginated(c, conversations, utils.CalculateMeta(total, normalized.Page, normalized.Limit))
}

// BusinessNames returns AI business name ideas
// POST /api/ai/business-names
func (h *AIHandler) BusinessNames(c *gin.Context) {
	var input entities.BusinessNamesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, err)
		return
	}

	names, err := h.ai.GenerateBusinessNames(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"names": names})
}
