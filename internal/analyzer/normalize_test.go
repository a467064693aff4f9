package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullPayload = `{
	"overall_quality_score": 85,
	"summary": "Solid code overall",
	"errors": [
		{"type": "logic", "line": 12, "description": "off-by-one", "severity": "high"}
	],
	"warnings": [
		{"type": "style", "line": null, "description": "long function"}
	],
	"suggestions": [
		{"category": "refactoring", "description": "extract helper", "priority": "medium"}
	],
	"strengths": ["clear naming"],
	"readability_score": 90,
	"modularity_score": 80,
	"best_practices_score": 75,
	"security_concerns": [],
	"performance_notes": ["consider caching"]
}`

func TestNormalizePlainJSON(t *testing.T) {
	review, err := Normalize(fullPayload)
	require.NoError(t, err)

	assert.Equal(t, 85, review.OverallQualityScore)
	assert.Equal(t, "Solid code overall", review.Summary)
	require.Len(t, review.Errors, 1)
	require.NotNil(t, review.Errors[0].Line)
	assert.Equal(t, 12, *review.Errors[0].Line)
	assert.Equal(t, "high", review.Errors[0].Severity)
	require.Len(t, review.Warnings, 1)
	assert.Nil(t, review.Warnings[0].Line)
	assert.Equal(t, 90, review.ReadabilityScore)
	assert.Equal(t, []string{"consider caching"}, review.PerformanceNotes)
}

func TestNormalizeJSONWrappedInProse(t *testing.T) {
	raw := "Here is my detailed review of the file:\n\n" + fullPayload + "\n\nLet me know if you need anything else."
	review, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 85, review.OverallQualityScore)
	assert.Len(t, review.Errors, 1)
}

func TestNormalizeMarkdownFence(t *testing.T) {
	raw := "```json\n" + fullPayload + "\n```"
	review, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 85, review.OverallQualityScore)
}

func TestNormalizeMissingKeysDefaultIndependently(t *testing.T) {
	review, err := Normalize(`{"overall_quality_score": 40, "summary": "thin"}`)
	require.NoError(t, err)

	assert.Equal(t, 40, review.OverallQualityScore)
	assert.Equal(t, "thin", review.Summary)
	assert.Empty(t, review.Errors)
	assert.NotNil(t, review.Errors)
	assert.NotNil(t, review.Warnings)
	assert.NotNil(t, review.Suggestions)
	assert.NotNil(t, review.Strengths)
	assert.NotNil(t, review.SecurityConcerns)
	assert.NotNil(t, review.PerformanceNotes)
	assert.Equal(t, 0, review.ReadabilityScore)
}

func TestNormalizeUnknownKeysIgnored(t *testing.T) {
	review, err := Normalize(`{"overall_quality_score": 70, "confidence": 0.9, "extra": {"nested": true}}`)
	require.NoError(t, err)
	assert.Equal(t, 70, review.OverallQualityScore)
}

func TestNormalizeClampsScores(t *testing.T) {
	review, err := Normalize(`{"overall_quality_score": 250, "readability_score": -5}`)
	require.NoError(t, err)
	assert.Equal(t, 100, review.OverallQualityScore)
	assert.Equal(t, 0, review.ReadabilityScore)
}

func TestNormalizeFallbackOnGarbage(t *testing.T) {
	for _, raw := range []string{
		"",
		"I could not produce a review, sorry.",
		"{ definitely not json }",
		"prose with { stray braces } in it",
	} {
		review, err := Normalize(raw)
		assert.Error(t, err, "input %q", raw)
		assert.Equal(t, 0, review.OverallQualityScore)
		assert.Empty(t, review.Errors)
		assert.Empty(t, review.Warnings)
		assert.Empty(t, review.Suggestions)
		assert.NotEmpty(t, review.Summary)
	}
}

func TestFallback(t *testing.T) {
	review := Fallback("Error during analysis: connection refused")
	assert.Equal(t, 0, review.OverallQualityScore)
	assert.Equal(t, 0, review.ReadabilityScore)
	assert.Equal(t, 0, review.ModularityScore)
	assert.Equal(t, 0, review.BestPracticesScore)
	assert.Equal(t, "Error during analysis: connection refused", review.Summary)
	assert.NotNil(t, review.Strengths)
	assert.Empty(t, review.Strengths)
}
