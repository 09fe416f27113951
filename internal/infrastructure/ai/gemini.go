package ai

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"domain-agent.backend/internal/config"
	"domain-agent.backend/internal/domain/entities"
	domainerrors "domain-agent.backend/internal/domain/errors"
	"domain-agent.backend/internal/domain/services"
)

// GeminiAdvisor implements the domain advisor port on top of the Gemini
// generative API. Model replies are parsed leniently; only transport-level
// failures surface as errors.
type GeminiAdvisor struct {
	cfg config.GeminiConfig

	// generate is replaceable in tests
	generate func(ctx context.Context, prompt string) (string, error)
}

// NewGeminiAdvisor creates an advisor backed by the Gemini API
func NewGeminiAdvisor(ctx context.Context, cfg config.GeminiConfig) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	advisor := &GeminiAdvisor{cfg: cfg}
	advisor.generate = func(ctx context.Context, prompt string) (string, error) {
		ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()

		model := client.GenerativeModel(cfg.Model)
		model.SetTemperature(cfg.Temperature)

		resp, err := model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", fmt.Errorf("%w: %v", domainerrors.ErrUpstreamFailure, err)
		}
		return responseText(resp), nil
	}
	return advisor, nil
}

var _ services.DomainAdvisor = (*GeminiAdvisor)(nil)

// SuggestDomains asks the model for domain name suggestions
func (g *GeminiAdvisor) SuggestDomains(ctx context.Context, req entities.SuggestionRequirements) ([]entities.DomainSuggestion, error) {
	text, err := g.generate(ctx, suggestDomainsPrompt(req))
	if err != nil {
		return nil, err
	}
	return parseSuggestions(text), nil
}

// AnalyzeDomain asks the model to score a domain name
func (g *GeminiAdvisor) AnalyzeDomain(ctx context.Context, domain, businessContext string) (*entities.DomainAnalysis, error) {
	text, err := g.generate(ctx, analyzeDomainPrompt(domain, businessContext))
	if err != nil {
		return nil, err
	}
	return parseAnalysis(domain, text), nil
}

// Consult continues a free-form consultation conversation
func (g *GeminiAdvisor) Consult(ctx context.Context, question, conversation string) (*entities.ConsultationResult, error) {
	text, err := g.generate(ctx, consultationPrompt(question, conversation))
	if err != nil {
		return nil, err
	}
	return parseConsultation(text), nil
}

// GenerateBusinessNames asks the model for business name ideas
func (g *GeminiAdvisor) GenerateBusinessNames(ctx context.Context, industry string, keywords []string, style string) ([]entities.BusinessName, error) {
	text, err := g.generate(ctx, businessNamesPrompt(industry, keywords, style))
	if err != nil {
		return nil, err
	}
	return parseBusinessNames(text), nil
}

// ExtractRecommendations pulls domain mentions out of an assistant reply
// so they can be stored alongside the conversation.
func ExtractRecommendations(text string) []entities.Recommendation {
	return extractRecommendations(text)
}

func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var out string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				out += string(text)
			}
		}
	}
	return out
}
