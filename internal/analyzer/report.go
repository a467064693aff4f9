package analyzer

import "github.com/arturoeanton/go-code-review-assistant/internal/domain"

// BuildReport merges a normalized model review into the canonical report
// for a file. Pure function. The summary counters are always recomputed
// from the list lengths; counts are never trusted from the model. The
// caller attaches code metrics and the language label afterwards.
func BuildReport(review domain.ModelReview, filename string) domain.Report {
	return domain.Report{
		Filename:     filename,
		OverallScore: review.OverallQualityScore,
		Summary:      review.Summary,
		DetailedScores: domain.DetailedScores{
			Readability:   review.ReadabilityScore,
			Modularity:    review.ModularityScore,
			BestPractices: review.BestPracticesScore,
		},
		Errors:           review.Errors,
		Warnings:         review.Warnings,
		Suggestions:      review.Suggestions,
		Strengths:        review.Strengths,
		SecurityConcerns: review.SecurityConcerns,
		PerformanceNotes: review.PerformanceNotes,
		Metrics: domain.ReportMetrics{
			TotalErrors:      len(review.Errors),
			TotalWarnings:    len(review.Warnings),
			TotalSuggestions: len(review.Suggestions),
		},
	}
}
