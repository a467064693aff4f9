package analyzer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
)

// Normalize extracts a structured review from raw model output. It never
// panics and always returns a usable review: on any parse failure the
// returned review is the degraded fallback and the error describes what
// went wrong (the error is diagnostic; callers decide whether to surface
// it as a status).
//
// Models often wrap the JSON payload in prose or markdown fences, so
// extraction first strips code fences, then tries the outermost
// curly-brace span, then the whole text.
func Normalize(raw string) (domain.ModelReview, error) {
	text := stripFences(strings.TrimSpace(raw))

	if span, ok := braceSpan(text); ok {
		var review domain.ModelReview
		if err := json.Unmarshal([]byte(span), &review); err == nil {
			return sanitize(review), nil
		}
	}

	var review domain.ModelReview
	if err := json.Unmarshal([]byte(text), &review); err != nil {
		reason := fmt.Errorf("no parsable review in model output: %w", err)
		return Fallback("Error during analysis: " + reason.Error()), reason
	}
	return sanitize(review), nil
}

// Fallback builds the degraded zero-score review carrying a
// human-readable explanation of the failure as its summary.
func Fallback(summary string) domain.ModelReview {
	return sanitize(domain.ModelReview{Summary: summary})
}

// braceSpan returns the greedy span from the first '{' to the last '}'.
func braceSpan(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// stripFences removes a surrounding markdown code fence, if any.
func stripFences(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx != -1 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// sanitize applies the type-level defaults: nil lists become empty and
// scores are clamped to the 0-100 contract range. Missing keys already
// decode to zero values, so every field defaults independently.
func sanitize(r domain.ModelReview) domain.ModelReview {
	if r.Errors == nil {
		r.Errors = []domain.ErrorFinding{}
	}
	if r.Warnings == nil {
		r.Warnings = []domain.WarningFinding{}
	}
	if r.Suggestions == nil {
		r.Suggestions = []domain.Suggestion{}
	}
	if r.Strengths == nil {
		r.Strengths = []string{}
	}
	if r.SecurityConcerns == nil {
		r.SecurityConcerns = []string{}
	}
	if r.PerformanceNotes == nil {
		r.PerformanceNotes = []string{}
	}
	r.OverallQualityScore = clampScore(r.OverallQualityScore)
	r.ReadabilityScore = clampScore(r.ReadabilityScore)
	r.ModularityScore = clampScore(r.ModularityScore)
	r.BestPracticesScore = clampScore(r.BestPracticesScore)
	return r
}

func clampScore(n int) int {
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
