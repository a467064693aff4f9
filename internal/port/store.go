package port

import (
	"context"
	"time"

	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
)

// ReviewStore is the persistence collaborator for review records.
// Inserts are all-or-nothing per record; the store assigns identities
// and creation timestamps.
type ReviewStore interface {
	// Insert persists a new review and returns its assigned id.
	// Existing rows are never updated.
	Insert(ctx context.Context, rev *domain.Review) (int64, error)

	// GetByID returns a full review or ErrReviewNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Review, error)

	// ListAll returns summary rows for every review, newest first.
	ListAll(ctx context.Context) ([]domain.ReviewSummary, error)

	// DeleteByID removes one review. Returns false if no row matched.
	DeleteByID(ctx context.Context, id int64) (bool, error)

	// DeleteAll removes every review and resets the identity sequence.
	DeleteAll(ctx context.Context) error

	// ListByDateRange returns summary rows created within [start, end],
	// newest first.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]domain.ReviewSummary, error)

	// SearchByFilename returns summary rows whose filename contains the
	// query (case-insensitive), newest first.
	SearchByFilename(ctx context.Context, query string) ([]domain.ReviewSummary, error)

	// Statistics aggregates all stored reviews. Returns (nil, nil) when
	// no reviews exist.
	Statistics(ctx context.Context) (*domain.Statistics, error)
}
