package ai

import (
	"fmt"
	"strings"

	"domain-agent.backend/internal/domain/entities"
)

func suggestDomainsPrompt(req entities.SuggestionRequirements) string {
	var b strings.Builder
	b.WriteString("You are a domain name expert. Suggest 10 domain names for the following business.\n\n")
	fmt.Fprintf(&b, "Business: %s\n", req.Business)
	if req.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", req.Industry)
	}
	if len(req.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(req.Keywords, ", "))
	}
	if req.Budget != "" {
		fmt.Fprintf(&b, "Budget: %s\n", req.Budget)
	}
	if len(req.Extensions) > 0 {
		fmt.Fprintf(&b, "Preferred extensions: %s\n", strings.Join(req.Extensions, ", "))
	}
	if req.Audience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", req.Audience)
	}
	if req.Context != "" {
		fmt.Fprintf(&b, "Additional context: %s\n", req.Context)
	}
	b.WriteString(`
Respond with ONLY a JSON array, no other text:
[{"domain": "example.com", "reasoning": "why this fits", "brandabilityScore": 8, "extension": "com"}]`)
	return b.String()
}

func analyzeDomainPrompt(domain, context string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a domain name expert. Analyze the domain name %q.\n", domain)
	if context != "" {
		fmt.Fprintf(&b, "Business context: %s\n", context)
	}
	b.WriteString(`
Evaluate brandability, memorability, SEO potential and relevance.
Respond with ONLY a JSON object, no other text:
{"analysis": "detailed analysis", "scores": {"brandability": 7, "memorability": 7, "seo": 7, "relevance": 7, "overall": 7}}`)
	return b.String()
}

func consultationPrompt(question, conversation string) string {
	var b strings.Builder
	b.WriteString("You are a friendly domain buying consultant helping a customer choose and purchase a domain name.\n")
	b.WriteString("Keep answers practical and concise. Mention concrete domain names where helpful.\n\n")
	if conversation != "" {
		fmt.Fprintf(&b, "Conversation so far:\n%s\n\n", conversation)
	}
	fmt.Fprintf(&b, "Customer: %s", question)
	return b.String()
}

func businessNamesPrompt(industry string, keywords []string, style string) string {
	var b strings.Builder
	b.WriteString("You are a branding expert. Generate 10 business name ideas.\n\n")
	fmt.Fprintf(&b, "Industry: %s\n", industry)
	fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(keywords, ", "))
	if style != "" {
		fmt.Fprintf(&b, "Style: %s\n", style)
	}
	b.WriteString(`
For each name include a matching domain.
Respond with ONLY a JSON array, no other text:
[{"name": "Brand Name", "domain": "brandname.com", "extension": "com", "reasoning": "why it works"}]`)
	return b.String()
}
