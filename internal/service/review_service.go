// Package service orchestrates the review ingestion pipeline.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/arturoeanton/go-code-review-assistant/internal/analyzer"
	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
	"github.com/arturoeanton/go-code-review-assistant/internal/port"
)

// ReviewService coordinates a single file's path from raw upload to a
// persisted review: decode, metrics, model call, normalization, report
// building, and storage.
type ReviewService struct {
	ai    port.AIProvider
	store port.ReviewStore
}

// NewReviewService creates a review service with the given model
// provider and store.
func NewReviewService(ai port.AIProvider, store port.ReviewStore) *ReviewService {
	return &ReviewService{ai: ai, store: store}
}

// IngestResult is the outcome of a successful ingestion.
type IngestResult struct {
	ReviewID int64              `json:"review_id"`
	Report   domain.Report      `json:"report"`
	Metrics  domain.CodeMetrics `json:"metrics"`
	Language string             `json:"language"`
	Status   string             `json:"analysis_status"`
}

// BatchFile is one file of a batch upload.
type BatchFile struct {
	Filename string
	Data     []byte
}

// BatchSuccess records one successfully ingested batch file.
type BatchSuccess struct {
	Filename     string `json:"filename"`
	ReviewID     int64  `json:"review_id"`
	QualityScore int    `json:"quality_score"`
	Status       string `json:"status"`
}

// BatchFailure records one batch file that could not be ingested.
type BatchFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// BatchResult reports per-file outcomes of a batch ingestion.
type BatchResult struct {
	Results []BatchSuccess `json:"results"`
	Errors  []BatchFailure `json:"errors"`
}

// Ingest reviews a single uploaded file and persists the result.
//
// It fails only on an unsupported extension or a storage error. A model
// failure (transport or unparsable output) is absorbed: ingestion still
// completes with a degraded zero-score report and the review's
// analysis_status set to degraded.
func (s *ReviewService) Ingest(ctx context.Context, filename string, raw []byte) (*IngestResult, error) {
	filename = filepath.Base(strings.TrimSpace(filename))
	if filename == "" || filename == "." {
		return nil, port.ErrEmptyFilename
	}
	if !domain.ExtensionAllowed(filename) {
		return nil, fmt.Errorf("%w: %s", port.ErrUnsupportedFileType, filename)
	}

	// Best-effort decode: invalid byte sequences are dropped, never fatal.
	content := strings.ToValidUTF8(string(raw), "")

	metrics := analyzer.ComputeMetrics(content)
	language := domain.DetectLanguage(filename)

	slog.Info("analyzing file", "filename", filename, "language", language, "model", s.ai.ModelName())

	review, status := s.runModel(ctx, filename, content)

	report := analyzer.BuildReport(review, filename)
	report.CodeMetrics = &metrics
	report.Language = language

	rev := &domain.Review{
		Filename:         filename,
		FileType:         domain.FileExtension(filename),
		FileSize:         int64(len(raw)),
		CodeContent:      content,
		Report:           report,
		ErrorsFound:      report.Metrics.TotalErrors,
		WarningsFound:    report.Metrics.TotalWarnings,
		SuggestionsCount: report.Metrics.TotalSuggestions,
		QualityScore:     report.OverallScore,
		AnalysisStatus:   status,
	}

	id, err := s.store.Insert(ctx, rev)
	if err != nil {
		return nil, fmt.Errorf("save review: %w", err)
	}

	slog.Info("review completed", "filename", filename, "review_id", id, "score", report.OverallScore, "status", status)

	return &IngestResult{
		ReviewID: id,
		Report:   report,
		Metrics:  metrics,
		Language: language,
		Status:   status,
	}, nil
}

// IngestBatch applies Ingest to each file independently. A failure in
// one file is collected and does not abort the rest; partial success is
// the normal completion mode.
func (s *ReviewService) IngestBatch(ctx context.Context, files []BatchFile) *BatchResult {
	result := &BatchResult{
		Results: []BatchSuccess{},
		Errors:  []BatchFailure{},
	}

	for _, f := range files {
		res, err := s.Ingest(ctx, f.Filename, f.Data)
		if err != nil {
			result.Errors = append(result.Errors, BatchFailure{
				Filename: f.Filename,
				Error:    err.Error(),
			})
			continue
		}
		result.Results = append(result.Results, BatchSuccess{
			Filename:     res.Report.Filename,
			ReviewID:     res.ReviewID,
			QualityScore: res.Report.OverallScore,
			Status:       "success",
		})
	}

	slog.Info("batch review completed", "successful", len(result.Results), "failed", len(result.Errors))
	return result
}

// runModel invokes the model and normalizes its output. Both transport
// failures and unparsable output collapse into the degraded fallback
// review; the two are logged distinctly.
func (s *ReviewService) runModel(ctx context.Context, filename, content string) (domain.ModelReview, string) {
	raw, err := s.ai.Chat(ctx, analyzer.SystemPrompt, analyzer.BuildPrompt(filename, content))
	if err != nil {
		slog.Error("model call failed", "filename", filename, "error", err)
		return analyzer.Fallback("Error during analysis: " + err.Error()), domain.AnalysisStatusDegraded
	}

	review, err := analyzer.Normalize(raw)
	if err != nil {
		slog.Error("model output extraction failed", "filename", filename, "error", err)
		return review, domain.AnalysisStatusDegraded
	}
	return review, domain.AnalysisStatusOK
}
