// Package handler exposes the HTTP API.
package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
	"github.com/arturoeanton/go-code-review-assistant/internal/port"
	"github.com/arturoeanton/go-code-review-assistant/internal/service"
)

// ReviewHandler handles upload and review CRUD endpoints.
type ReviewHandler struct {
	reviews *service.ReviewService
	store   port.ReviewStore
}

// NewReviewHandler creates a new review handler.
func NewReviewHandler(reviews *service.ReviewService, store port.ReviewStore) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, store: store}
}

// Register sets up review routes.
func (h *ReviewHandler) Register(router fiber.Router) {
	router.Post("/review", h.Review)
	router.Post("/batch-review", h.BatchReview)
	router.Get("/reviews", h.ListReviews)
	router.Delete("/reviews", h.ClearReviews)
	router.Get("/review/:id", h.GetReview)
	router.Delete("/review/:id", h.DeleteReview)
}

// Review uploads and reviews a single code file.
func (h *ReviewHandler) Review(c fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file provided"})
	}
	if fileHeader.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file selected"})
	}

	data, err := readUpload(fileHeader)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := h.reviews.Ingest(c.Context(), fileHeader.Filename, data)
	if err != nil {
		return reviewError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"review_id":       result.ReviewID,
		"report":          result.Report,
		"metrics":         result.Metrics,
		"language":        result.Language,
		"analysis_status": result.Status,
	})
}

// BatchReview uploads and reviews multiple files at once. Per-file
// failures are enumerated; the batch itself always succeeds.
func (h *ReviewHandler) BatchReview(c fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No files provided"})
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No files selected"})
	}

	files := make([]service.BatchFile, 0, len(headers))
	var unreadable []service.BatchFailure
	for _, fh := range headers {
		data, readErr := readUpload(fh)
		if readErr != nil {
			unreadable = append(unreadable, service.BatchFailure{Filename: fh.Filename, Error: readErr.Error()})
			continue
		}
		files = append(files, service.BatchFile{Filename: fh.Filename, Data: data})
	}

	result := h.reviews.IngestBatch(c.Context(), files)
	result.Errors = append(result.Errors, unreadable...)

	return c.JSON(fiber.Map{
		"success":  true,
		"batch_id": uuid.New().String(),
		"results":  result.Results,
		"errors":   result.Errors,
		"total":    len(result.Results),
		"failed":   len(result.Errors),
	})
}

// ListReviews returns all reviews with optional filtering.
func (h *ReviewHandler) ListReviews(c fiber.Ctx) error {
	reviews, err := h.store.ListAll(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	minScore, _ := strconv.Atoi(c.Query("min_score"))
	maxScore, _ := strconv.Atoi(c.Query("max_score"))
	fileType := c.Query("language")

	filtered := make([]domain.ReviewSummary, 0, len(reviews))
	for _, r := range reviews {
		if minScore > 0 && r.QualityScore < minScore {
			continue
		}
		if maxScore > 0 && r.QualityScore > maxScore {
			continue
		}
		if fileType != "" && !strings.EqualFold(r.FileType, fileType) {
			continue
		}
		filtered = append(filtered, r)
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}

	return c.JSON(fiber.Map{
		"success": true,
		"total":   len(filtered),
		"reviews": filtered,
	})
}

// ClearReviews deletes all reviews.
func (h *ReviewHandler) ClearReviews(c fiber.Ctx) error {
	if err := h.store.DeleteAll(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "All reviews deleted successfully",
	})
}

// GetReview returns a full review by id.
func (h *ReviewHandler) GetReview(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	review, err := h.store.GetByID(c.Context(), id)
	if errors.Is(err, port.ErrReviewNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"review":  review,
	})
}

// DeleteReview deletes a specific review.
func (h *ReviewHandler) DeleteReview(c fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid review id"})
	}

	deleted, err := h.store.DeleteByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Review not found"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Review %d deleted successfully", id),
	})
}

func reviewError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, port.ErrUnsupportedFileType):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File type not allowed. Supported: " + strings.Join(domain.AllowedExtensions(), ", "),
		})
	case errors.Is(err, port.ErrEmptyFilename):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No file selected"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func parseID(c fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	return data, nil
}
