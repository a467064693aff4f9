package domain

import "time"

// Severity levels used by the model for error findings and suggestion
// priorities.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
)

// AnalysisStatus values. A degraded review means the model call or its
// output parsing failed; the stored report carries zero scores and an
// explanatory summary instead of real findings.
const (
	AnalysisStatusOK       = "ok"
	AnalysisStatusDegraded = "degraded"
)

// ErrorFinding is a single error reported by the model.
type ErrorFinding struct {
	Type        string `json:"type"`
	Line        *int   `json:"line"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// WarningFinding is a single warning reported by the model.
type WarningFinding struct {
	Type        string `json:"type"`
	Line        *int   `json:"line"`
	Description string `json:"description"`
}

// Suggestion is an improvement recommendation from the model.
type Suggestion struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

// ModelReview is the structured review payload expected from the LLM.
// The JSON keys are the binding contract with the model backend: any
// backend substituted later must produce this exact shape.
type ModelReview struct {
	OverallQualityScore int              `json:"overall_quality_score"`
	Summary             string           `json:"summary"`
	Errors              []ErrorFinding   `json:"errors"`
	Warnings            []WarningFinding `json:"warnings"`
	Suggestions         []Suggestion     `json:"suggestions"`
	Strengths           []string         `json:"strengths"`
	ReadabilityScore    int              `json:"readability_score"`
	ModularityScore     int              `json:"modularity_score"`
	BestPracticesScore  int              `json:"best_practices_score"`
	SecurityConcerns    []string         `json:"security_concerns"`
	PerformanceNotes    []string         `json:"performance_notes"`
}

// CodeMetrics holds line-based statistics computed from the raw source.
type CodeMetrics struct {
	TotalLines   int     `json:"total_lines"`
	CodeLines    int     `json:"code_lines"`
	BlankLines   int     `json:"blank_lines"`
	CommentLines int     `json:"comment_lines"`
	CommentRatio float64 `json:"comment_ratio"`
}

// DetailedScores breaks the overall score into sub-scores.
type DetailedScores struct {
	Readability   int `json:"readability"`
	Modularity    int `json:"modularity"`
	BestPractices int `json:"best_practices"`
}

// ReportMetrics are the summary counters of a report. They are always
// recomputed from the finding lists, never taken from the model.
type ReportMetrics struct {
	TotalErrors      int `json:"total_errors"`
	TotalWarnings    int `json:"total_warnings"`
	TotalSuggestions int `json:"total_suggestions"`
}

// Report is the canonical review document persisted with each Review.
// Language and CodeMetrics are attached by the orchestrator after the
// report is built.
type Report struct {
	Filename         string           `json:"filename"`
	OverallScore     int              `json:"overall_score"`
	Summary          string           `json:"summary"`
	DetailedScores   DetailedScores   `json:"detailed_scores"`
	Errors           []ErrorFinding   `json:"errors"`
	Warnings         []WarningFinding `json:"warnings"`
	Suggestions      []Suggestion     `json:"suggestions"`
	Strengths        []string         `json:"strengths"`
	SecurityConcerns []string         `json:"security_concerns"`
	PerformanceNotes []string         `json:"performance_notes"`
	Metrics          ReportMetrics    `json:"metrics"`
	Language         string           `json:"language,omitempty"`
	CodeMetrics      *CodeMetrics     `json:"code_metrics,omitempty"`
}

// Review is one persisted outcome of analyzing a single source file.
type Review struct {
	ID               int64     `json:"id"              db:"id"`
	Filename         string    `json:"filename"        db:"filename"`
	FileType         string    `json:"file_type"       db:"file_type"`
	FileSize         int64     `json:"file_size"       db:"file_size"`
	CodeContent      string    `json:"code_content"    db:"code_content"`
	Report           Report    `json:"review_report"   db:"review_report"`
	ErrorsFound      int       `json:"errors_found"    db:"errors_found"`
	WarningsFound    int       `json:"warnings_found"  db:"warnings_found"`
	SuggestionsCount int       `json:"suggestions_count" db:"suggestions_count"`
	QualityScore     int       `json:"quality_score"   db:"code_quality_score"`
	AnalysisStatus   string    `json:"analysis_status" db:"analysis_status"`
	CreatedAt        time.Time `json:"timestamp"       db:"created_at"`
}

// ReviewSummary is a listing row: everything on the Review except the
// source text and the serialized report.
type ReviewSummary struct {
	ID               int64     `json:"id"`
	Filename         string    `json:"filename"`
	FileType         string    `json:"file_type"`
	FileSize         int64     `json:"file_size"`
	ErrorsFound      int       `json:"errors_found"`
	WarningsFound    int       `json:"warnings_found"`
	SuggestionsCount int       `json:"suggestions_count"`
	QualityScore     int       `json:"quality_score"`
	AnalysisStatus   string    `json:"analysis_status"`
	CreatedAt        time.Time `json:"timestamp"`
}

// FileTypeCount is one entry of the per-file-type distribution.
type FileTypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// Statistics aggregates every stored review.
type Statistics struct {
	TotalReviews         int             `json:"total_reviews"`
	AverageQuality       float64         `json:"average_quality"`
	MinQuality           int             `json:"min_quality"`
	MaxQuality           int             `json:"max_quality"`
	TotalErrors          int             `json:"total_errors"`
	TotalWarnings        int             `json:"total_warnings"`
	TotalSuggestions     int             `json:"total_suggestions"`
	AverageErrors        float64         `json:"average_errors"`
	AverageWarnings      float64         `json:"average_warnings"`
	AverageFileSize      float64         `json:"average_file_size"`
	RecentActivity7d     int             `json:"recent_activity_7d"`
	FileTypeDistribution []FileTypeCount `json:"file_type_distribution"`
}
