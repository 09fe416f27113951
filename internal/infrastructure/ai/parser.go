package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"domain-agent.backend/internal/domain/entities"
)

// Model output is free text that usually, but not always, contains the
// requested JSON. Parsing is therefore lenient: the JSON payload is taken
// when it decodes, anything else degrades to line and pattern extraction.
// Parsers never return an error.

var (
	reDomainName  = regexp.MustCompile(`([a-zA-Z0-9-]+\.[a-zA-Z]{2,})`)
	reCodeFence   = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	reJSONArray   = regexp.MustCompile(`(?s)\[.*\]`)
	reJSONObject  = regexp.MustCompile(`(?s)\{.*\}`)
	reNumberedRow = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|[-*]\s*)`)
)

const neutralScore = 7

// extractJSON pulls the most plausible JSON payload out of model text
func extractJSON(text string, pattern *regexp.Regexp) string {
	if match := reCodeFence.FindStringSubmatch(text); match != nil {
		text = match[1]
	}
	if match := pattern.FindString(text); match != "" {
		return match
	}
	return strings.TrimSpace(text)
}

func parseSuggestions(text string) []entities.DomainSuggestion {
	var suggestions []entities.DomainSuggestion
	if err := json.Unmarshal([]byte(extractJSON(text, reJSONArray)), &suggestions); err == nil && len(suggestions) > 0 {
		for i := range suggestions {
			if suggestions[i].Extension == "" {
				suggestions[i].Extension = extensionOf(suggestions[i].Domain)
			}
		}
		return suggestions
	}

	// Degraded path: scrape domain-looking tokens line by line.
	seen := make(map[string]bool)
	for _, line := range strings.Split(text, "\n") {
		match := reDomainName.FindString(line)
		if match == "" {
			continue
		}
		domain := strings.ToLower(match)
		if seen[domain] {
			continue
		}
		seen[domain] = true
		suggestions = append(suggestions, entities.DomainSuggestion{
			Domain:            domain,
			Reasoning:         strings.TrimSpace(reNumberedRow.ReplaceAllString(line, "")),
			BrandabilityScore: neutralScore,
			Extension:         extensionOf(domain),
		})
	}
	if suggestions == nil {
		suggestions = []entities.DomainSuggestion{}
	}
	return suggestions
}

func parseAnalysis(domain, text string) *entities.DomainAnalysis {
	var parsed struct {
		Analysis string                  `json:"analysis"`
		Scores   entities.AnalysisScores `json:"scores"`
	}
	if err := json.Unmarshal([]byte(extractJSON(text, reJSONObject)), &parsed); err == nil && parsed.Analysis != "" {
		clampScores(&parsed.Scores)
		return &entities.DomainAnalysis{
			Domain:   domain,
			Analysis: parsed.Analysis,
			Scores:   parsed.Scores,
		}
	}

	// Degraded path: keep the raw text as analysis with neutral scores.
	return &entities.DomainAnalysis{
		Domain:   domain,
		Analysis: strings.TrimSpace(text),
		Scores: entities.AnalysisScores{
			Brandability: neutralScore,
			Memorability: neutralScore,
			SEO:          neutralScore,
			Relevance:    neutralScore,
			Overall:      neutralScore,
		},
	}
}

func parseConsultation(text string) *entities.ConsultationResult {
	result := &entities.ConsultationResult{
		Response:    strings.TrimSpace(text),
		Suggestions: []string{},
	}
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		if strings.Contains(lower, "recommend") ||
			strings.Contains(lower, "suggest") ||
			strings.Contains(lower, "consider") {
			if trimmed := strings.TrimSpace(reNumberedRow.ReplaceAllString(line, "")); trimmed != "" {
				result.Suggestions = append(result.Suggestions, trimmed)
			}
		}
	}
	return result
}

func parseBusinessNames(text string) []entities.BusinessName {
	var names []entities.BusinessName
	if err := json.Unmarshal([]byte(extractJSON(text, reJSONArray)), &names); err == nil && len(names) > 0 {
		for i := range names {
			if names[i].Extension == "" {
				names[i].Extension = extensionOf(names[i].Domain)
			}
		}
		return names
	}

	// Degraded path: treat each non-empty line as one candidate name, and
	// pair it with any domain mentioned on the same line.
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(reNumberedRow.ReplaceAllString(line, ""))
		if trimmed == "" {
			continue
		}
		name := trimmed
		if idx := strings.IndexAny(trimmed, ":-"); idx > 0 {
			name = strings.TrimSpace(trimmed[:idx])
		}
		if name == "" || len(name) > 60 {
			continue
		}
		entry := entities.BusinessName{Name: name}
		if domain := reDomainName.FindString(trimmed); domain != "" {
			entry.Domain = strings.ToLower(domain)
			entry.Extension = extensionOf(entry.Domain)
		}
		names = append(names, entry)
	}
	if names == nil {
		names = []entities.BusinessName{}
	}
	return names
}

// extractRecommendations pulls mentioned domains out of an assistant reply
func extractRecommendations(text string) []entities.Recommendation {
	seen := make(map[string]bool)
	var recs []entities.Recommendation
	for _, match := range reDomainName.FindAllString(text, -1) {
		domain := strings.ToLower(match)
		if seen[domain] {
			continue
		}
		seen[domain] = true
		recs = append(recs, entities.Recommendation{
			Domain:     domain,
			Confidence: 0.5,
		})
	}
	return recs
}

func extensionOf(domain string) string {
	if idx := strings.LastIndex(domain, "."); idx >= 0 && idx < len(domain)-1 {
		return domain[idx+1:]
	}
	return ""
}

func clampScores(s *entities.AnalysisScores) {
	for _, score := range []*int{&s.Brandability, &s.Memorability, &s.SEO, &s.Relevance, &s.Overall} {
		if *score < 1 {
			*score = neutralScore
		}
		if *score > 10 {
			*score = 10
		}
	}
}
