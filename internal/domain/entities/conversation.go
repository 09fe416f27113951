package entities

import (
	"time"

	"github.com/google/uuid"
)

// ConversationStatus is advisory; transitions are not enforced
type ConversationStatus string

const (
	ConversationStatusActive    ConversationStatus = "active"
	ConversationStatusCompleted ConversationStatus = "completed"
	ConversationStatusAbandoned ConversationStatus = "abandoned"
)

// MessageRole identifies the author of a chat message
type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
	MessageRoleSystem    MessageRole = "system"
)

// Message is one chat turn in a conversation
type Message struct {
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
}

// Recommendation is a domain suggestion extracted from an assistant reply
type Recommendation struct {
	Domain     string  `json:"domain"`
	Reasoning  string  `json:"reasoning"`
	Confidence float64 `json:"confidence"`
	Available  bool    `json:"available"`
}

// AIConversation is a user's chat session, persisted as the single source
// of truth for conversation history.
type AIConversation struct {
	ID              uuid.UUID          `json:"id"`
	UserID          uuid.UUID          `json:"userId"`
	SessionID       string             `json:"sessionId"`
	Messages        []Message          `json:"messages"`
	Recommendations []Recommendation   `json:"recommendations"`
	Status          ConversationStatus `json:"status"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

// DomainSuggestion is one AI-proposed domain name
type DomainSuggestion struct {
	Domain            string `json:"domain"`
	Reasoning         string `json:"reasoning"`
	BrandabilityScore int    `json:"brandabilityScore"`
	Extension         string `json:"extension"`
}

// DomainAnalysis is the AI scorecard for one domain
type DomainAnalysis struct {
	Domain   string         `json:"domain"`
	Analysis string         `json:"analysis"`
	Scores   AnalysisScores `json:"scores"`
}

// AnalysisScores holds 1-10 ratings per dimension
type AnalysisScores struct {
	Brandability int `json:"brandability"`
	Memorability int `json:"memorability"`
	SEO          int `json:"seo"`
	Relevance    int `json:"relevance"`
	Overall      int `json:"overall"`
}

// BusinessName is one AI-generated business name with a domain pairing
type BusinessName struct {
	Name      string `json:"name"`
	Domain    string `json:"domain"`
	Extension string `json:"extension"`
	Reasoning string `json:"reasoning"`
}

// SuggestionRequirements parameterize a domain suggestion prompt
type SuggestionRequirements struct {
	Business   string   `json:"business"`
	Industry   string   `json:"industry"`
	Keywords   []string `json:"keywords"`
	Budget     string   `json:"budget"`
	Extensions []string `json:"extensions"`
	Audience   string   `json:"audience"`
	Context    string   `json:"context"`
}

// ConsultationResult is the assistant's answer plus extracted follow-ups
type ConsultationResult struct {
	Response    string   `json:"response"`
	Suggestions []string `json:"suggestions"`
}

// SuggestDomainsInput is the request body for AI domain suggestions
type SuggestDomainsInput struct {
	Business   string   `json:"business" binding:"required"`
	Industry   string   `json:"industry"`
	Keywords   []string `json:"keywords"`
	Budget     string   `json:"budget"`
	Extensions []string `json:"extensions"`
	Audience   string   `json:"audience"`
	Context    string   `json:"context"`
}

// AnalyzeDomainInput is the request body for AI domain analysis
type AnalyzeDomainInput struct {
	Domain  string `json:"domain" binding:"required,min=3"`
	Context string `json:"context"`
}

// ChatInput is one user chat turn
type ChatInput struct {
	Message   string `json:"message" binding:"required,min=1,max=2000"`
	SessionID string `json:"sessionId"`
}

// BusinessNamesInput is the request body for business name generation
type BusinessNamesInput struct {
	Industry string   `json:"industry" binding:"required"`
	Keywords []string `json:"keywords" binding:"required,min=1"`
	Style    string   `json:"style" binding:"omitempty,oneof=modern classic playful professional"`
}
