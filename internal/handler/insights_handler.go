package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
	"github.com/arturoeanton/go-code-review-assistant/internal/port"
)

// InsightsHandler handles statistics, search, trends, comparison and
// export endpoints over stored reviews.
type InsightsHandler struct {
	store port.ReviewStore
}

// NewInsightsHandler creates a new insights handler.
func NewInsightsHandler(store port.ReviewStore) *InsightsHandler {
	return &InsightsHandler{store: store}
}

// Register sets up insight routes.
func (h *InsightsHandler) Register(router fiber.Router) {
	router.Get("/statistics", h.Statistics)
	router.Get("/reviews/search", h.Search)
	router.Post("/reviews/compare", h.Compare)
	router.Get("/review/:id/export", h.Export)
	router.Get("/trends", h.Trends)
}

// Statistics returns aggregate statistics about all reviews.
func (h *InsightsHandler) Statistics(c fiber.Ctx) error {
	stats, err := h.store.Statistics(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if stats == nil {
		return c.JSON(fiber.Map{
			"success": true,
			"statistics": fiber.Map{
				"total_reviews":     0,
				"average_quality":   0,
				"total_errors":      0,
				"total_warnings":    0,
				"total_suggestions": 0,
			},
		})
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"statistics": stats,
	})
}

// Search finds reviews by filename.
func (h *InsightsHandler) Search(c fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Search query required"})
	}

	reviews, err := h.store.SearchByFilename(c.Context(), query)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	results := make([]fiber.Map, 0, len(reviews))
	for _, r := range reviews {
		results = append(results, fiber.Map{
			"id":              r.ID,
			"filename":        r.Filename,
			"quality_score":   r.QualityScore,
			"analysis_status": r.AnalysisStatus,
			"timestamp":       r.CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"query":   query,
		"results": results,
		"count":   len(results),
	})
}

// Compare compares two stored reviews.
func (h *InsightsHandler) Compare(c fiber.Ctx) error {
	var body struct {
		ReviewID1 *int64 `json:"review_id_1"`
		ReviewID2 *int64 `json:"review_id_2"`
	}
	if err := c.Bind().JSON(&body); err != nil || body.ReviewID1 == nil || body.ReviewID2 == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Two review IDs required"})
	}

	rev1, err1 := h.store.GetByID(c.Context(), *body.ReviewID1)
	rev2, err2 := h.store.GetByID(c.Context(), *body.ReviewID2)
	if errors.Is(err1, port.ErrReviewNotFound) || errors.Is(err2, port.ErrReviewNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "One or both reviews not found"})
	}
	if err1 != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err1.Error()})
	}
	if err2 != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err2.Error()})
	}

	comparison := fiber.Map{
		"review_1": comparisonSide(rev1),
		"review_2": comparisonSide(rev2),
		"differences": fiber.Map{
			"quality_score_diff": rev2.QualityScore - rev1.QualityScore,
			"errors_diff":        rev2.ErrorsFound - rev1.ErrorsFound,
			"warnings_diff":      rev2.WarningsFound - rev1.WarningsFound,
			"suggestions_diff":   rev2.SuggestionsCount - rev1.SuggestionsCount,
		},
		"improvement": rev2.QualityScore > rev1.QualityScore,
	}

	return c.JSON(fiber.Map{
		"success":    true,
		"comparison": comparison,
	})
}

// Export downloads a review as a JSON file attachment.
func (h *InsightsHandler) Export(c fiber.Ctx) error {
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

	export := fiber.Map{
		"id":                review.ID,
		"filename":          review.Filename,
		"file_type":         review.FileType,
		"file_size":         review.FileSize,
		"review_report":     review.Report,
		"errors_found":      review.ErrorsFound,
		"warnings_found":    review.WarningsFound,
		"suggestions_count": review.SuggestionsCount,
		"quality_score":     review.QualityScore,
		"analysis_status":   review.AnalysisStatus,
		"timestamp":         review.CreatedAt,
		"exported_at":       time.Now().Format(time.RFC3339),
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="review_%d_%s.json"`, review.ID, review.Filename))
	return c.Send(data)
}

// Trends returns per-day quality trends over the last N days.
func (h *InsightsHandler) Trends(c fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days <= 0 {
		days = 7
	}

	end := time.Now()
	start := end.AddDate(0, 0, -days)

	reviews, err := h.store.ListByDateRange(c.Context(), start, end)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	type bucket struct {
		count       int
		totalScore  int
		totalErrors int
	}
	buckets := make(map[string]*bucket)
	for _, r := range reviews {
		date := r.CreatedAt.Format("2006-01-02")
		b, ok := buckets[date]
		if !ok {
			b = &bucket{}
			buckets[date] = b
		}
		b.count++
		b.totalScore += r.QualityScore
		b.totalErrors += r.ErrorsFound
	}

	dates := make([]string, 0, len(buckets))
	for d := range buckets {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	trends := make([]fiber.Map, 0, len(dates))
	for _, d := range dates {
		b := buckets[d]
		avg := math.Round(float64(b.totalScore)/float64(b.count)*100) / 100
		trends = append(trends, fiber.Map{
			"date":            d,
			"reviews_count":   b.count,
			"average_quality": avg,
			"total_errors":    b.totalErrors,
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"period":  fmt.Sprintf("Last %d days", days),
		"trends":  trends,
	})
}

func comparisonSide(rev *domain.Review) fiber.Map {
	return fiber.Map{
		"id":              rev.ID,
		"filename":        rev.Filename,
		"quality_score":   rev.QualityScore,
		"errors":          rev.ErrorsFound,
		"warnings":        rev.WarningsFound,
		"suggestions":     rev.SuggestionsCount,
		"analysis_status": rev.AnalysisStatus,
	}
}
