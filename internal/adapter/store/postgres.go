// Package store implements persistence adapters.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
	"github.com/arturoeanton/go-code-review-assistant/internal/port"
)

// PostgresStore handles all relational database operations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Init creates the reviews table if it does not exist.
func (s *PostgresStore) Init(ctx context.Context) error {
	schema := `
		CREATE TABLE IF NOT EXISTS code_reviews (
			id BIGSERIAL PRIMARY KEY,
			filename TEXT NOT NULL,
			file_type TEXT,
			file_size BIGINT,
			code_content TEXT NOT NULL,
			review_report TEXT NOT NULL,
			errors_found INTEGER,
			warnings_found INTEGER,
			suggestions_count INTEGER,
			code_quality_score INTEGER,
			analysis_status TEXT NOT NULL DEFAULT 'ok',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

const summaryColumns = `id, filename, file_type, file_size, errors_found,
	warnings_found, suggestions_count, code_quality_score, analysis_status, created_at`

// Insert persists a new review and returns the assigned id.
func (s *PostgresStore) Insert(ctx context.Context, rev *domain.Review) (int64, error) {
	reportJSON, err := json.Marshal(rev.Report)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	query := `INSERT INTO code_reviews
		(filename, file_type, file_size, code_content, review_report,
		 errors_found, warnings_found, suggestions_count, code_quality_score, analysis_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id int64
	err = s.db.QueryRowContext(ctx, query,
		rev.Filename, rev.FileType, rev.FileSize, rev.CodeContent, string(reportJSON),
		rev.ErrorsFound, rev.WarningsFound, rev.SuggestionsCount, rev.QualityScore, rev.AnalysisStatus,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert review: %w", err)
	}
	return id, nil
}

// GetByID retrieves a full review by id.
func (s *PostgresStore) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	query := `SELECT id, filename, file_type, file_size, code_content, review_report,
		errors_found, warnings_found, suggestions_count, code_quality_score, analysis_status, created_at
		FROM code_reviews WHERE id = $1`

	var rev domain.Review
	var reportJSON string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rev.ID, &rev.Filename, &rev.FileType, &rev.FileSize, &rev.CodeContent, &reportJSON,
		&rev.ErrorsFound, &rev.WarningsFound, &rev.SuggestionsCount, &rev.QualityScore,
		&rev.AnalysisStatus, &rev.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, port.ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	if err := json.Unmarshal([]byte(reportJSON), &rev.Report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &rev, nil
}

// ListAll returns summary rows for all reviews, newest first.
func (s *PostgresStore) ListAll(ctx context.Context) ([]domain.ReviewSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM code_reviews ORDER BY created_at DESC`
	return s.querySummaries(ctx, query)
}

// DeleteByID removes one review. Returns false if no row matched.
func (s *PostgresStore) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM code_reviews WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete review: %w", err)
	}
	return n > 0, nil
}

// DeleteAll removes every review and resets the identity sequence.
func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `TRUNCATE code_reviews RESTART IDENTITY`); err != nil {
		return fmt.Errorf("delete all reviews: %w", err)
	}
	return nil
}

// ListByDateRange returns summary rows created within [start, end], newest first.
func (s *PostgresStore) ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.ReviewSummary, error) {
	query := `SELECT ` + summaryColumns + ` FROM code_reviews
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at DESC`
	return s.querySummaries(ctx, query, start, end)
}

// SearchByFilename returns summary rows whose filename matches the query
// case-insensitively, newest first.
func (s *PostgresStore) SearchByFilename(ctx context.Context, query string) ([]domain.ReviewSummary, error) {
	pattern := "%" + query + "%"
	sqlQuery := `SELECT ` + summaryColumns + ` FROM code_reviews
		WHERE filename ILIKE $1
		ORDER BY created_at DESC`
	return s.querySummaries(ctx, sqlQuery, pattern)
}

// Statistics aggregates all stored reviews. Returns (nil, nil) when no
// reviews exist.
func (s *PostgresStore) Statistics(ctx context.Context) (*domain.Statistics, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM code_reviews`).Scan(&total); err != nil {
		return nil, fmt.Errorf("count reviews: %w", err)
	}
	if total == 0 {
		return nil, nil
	}

	stats := domain.Statistics{TotalReviews: total}

	query := `SELECT
		COALESCE(AVG(code_quality_score), 0),
		COALESCE(MIN(code_quality_score), 0),
		COALESCE(MAX(code_quality_score), 0),
		COALESCE(SUM(errors_found), 0),
		COALESCE(SUM(warnings_found), 0),
		COALESCE(SUM(suggestions_count), 0),
		COALESCE(AVG(errors_found), 0),
		COALESCE(AVG(warnings_found), 0),
		COALESCE(AVG(file_size), 0)
		FROM code_reviews`

	err := s.db.QueryRowContext(ctx, query).Scan(
		&stats.AverageQuality, &stats.MinQuality, &stats.MaxQuality,
		&stats.TotalErrors, &stats.TotalWarnings, &stats.TotalSuggestions,
		&stats.AverageErrors, &stats.AverageWarnings, &stats.AverageFileSize,
	)
	if err != nil {
		return nil, fmt.Errorf("aggregate statistics: %w", err)
	}
	stats.AverageQuality = round2(stats.AverageQuality)
	stats.AverageErrors = round2(stats.AverageErrors)
	stats.AverageWarnings = round2(stats.AverageWarnings)
	stats.AverageFileSize = round2(stats.AverageFileSize)

	recentQuery := `SELECT COUNT(*) FROM code_reviews WHERE created_at >= NOW() - INTERVAL '7 days'`
	if err := s.db.QueryRowContext(ctx, recentQuery).Scan(&stats.RecentActivity7d); err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}

	typeQuery := `SELECT file_type, COUNT(*) AS count
		FROM code_reviews
		GROUP BY file_type
		ORDER BY count DESC`
	rows, err := s.db.QueryContext(ctx, typeQuery)
	if err != nil {
		return nil, fmt.Errorf("file type distribution: %w", err)
	}
	defer rows.Close()

	stats.FileTypeDistribution = []domain.FileTypeCount{}
	for rows.Next() {
		var ft domain.FileTypeCount
		if err := rows.Scan(&ft.Type, &ft.Count); err != nil {
			return nil, fmt.Errorf("scan file type: %w", err)
		}
		stats.FileTypeDistribution = append(stats.FileTypeDistribution, ft)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("file type distribution: %w", err)
	}

	return &stats, nil
}

func (s *PostgresStore) querySummaries(ctx context.Context, query string, args ...interface{}) ([]domain.ReviewSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.ReviewSummary
	for rows.Next() {
		var r domain.ReviewSummary
		if err := rows.Scan(
			&r.ID, &r.Filename, &r.FileType, &r.FileSize, &r.ErrorsFound,
			&r.WarningsFound, &r.SuggestionsCount, &r.QualityScore,
			&r.AnalysisStatus, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
