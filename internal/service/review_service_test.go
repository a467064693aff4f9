package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arturoeanton/go-code-review-assistant/internal/domain"
	"github.com/arturoeanton/go-code-review-assistant/internal/port"
)

// fakeAI returns a canned response or error.
type fakeAI struct {
	response string
	err      error
	calls    int
}

func (f *fakeAI) ModelName() string { return "fake-model" }

func (f *fakeAI) Chat(_ context.Context, _ string, _ string) (string, error) {
	f.calls++
	return f.response, f.err
}

// fakeStore is an in-memory ReviewStore.
type fakeStore struct {
	reviews   map[int64]*domain.Review
	nextID    int64
	insertErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{reviews: map[int64]*domain.Review{}, nextID: 1}
}

func (s *fakeStore) Insert(_ context.Context, rev *domain.Review) (int64, error) {
	if s.insertErr != nil {
		return 0, s.insertErr
	}
	id := s.nextID
	s.nextID++
	stored := *rev
	stored.ID = id
	stored.CreatedAt = time.Now()
	s.reviews[id] = &stored
	return id, nil
}

func (s *fakeStore) GetByID(_ context.Context, id int64) (*domain.Review, error) {
	rev, ok := s.reviews[id]
	if !ok {
		return nil, port.ErrReviewNotFound
	}
	return rev, nil
}

func (s *fakeStore) ListAll(context.Context) ([]domain.ReviewSummary, error) { return nil, nil }

func (s *fakeStore) DeleteByID(_ context.Context, id int64) (bool, error) {
	if _, ok := s.reviews[id]; !ok {
		return false, nil
	}
	delete(s.reviews, id)
	return true, nil
}

func (s *fakeStore) DeleteAll(context.Context) error {
	s.reviews = map[int64]*domain.Review{}
	s.nextID = 1
	return nil
}

func (s *fakeStore) ListByDateRange(context.Context, time.Time, time.Time) ([]domain.ReviewSummary, error) {
	return nil, nil
}

func (s *fakeStore) SearchByFilename(context.Context, string) ([]domain.ReviewSummary, error) {
	return nil, nil
}

func (s *fakeStore) Statistics(context.Context) (*domain.Statistics, error) { return nil, nil }

const goodResponse = `{
	"overall_quality_score": 80,
	"summary": "fine",
	"errors": [{"type": "bug", "line": 2, "description": "oops", "severity": "low"}],
	"warnings": [],
	"suggestions": [{"category": "style", "description": "rename", "priority": "low"}],
	"strengths": ["short"],
	"readability_score": 85,
	"modularity_score": 75,
	"best_practices_score": 70,
	"security_concerns": [],
	"performance_notes": []
}`

func TestIngestSuccess(t *testing.T) {
	st := newFakeStore()
	svc := NewReviewService(&fakeAI{response: goodResponse}, st)

	res, err := svc.Ingest(context.Background(), "hello.py", []byte("print('hi')\n"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.ReviewID)
	assert.Equal(t, domain.AnalysisStatusOK, res.Status)
	assert.Equal(t, "Python", res.Language)
	assert.Equal(t, 1, res.Metrics.TotalLines)

	stored := st.reviews[1]
	require.NotNil(t, stored)
	assert.Equal(t, "hello.py", stored.Filename)
	assert.Equal(t, "py", stored.FileType)
	assert.Equal(t, int64(12), stored.FileSize)
	assert.Equal(t, 80, stored.QualityScore)
	assert.Equal(t, 1, stored.ErrorsFound)
	assert.Equal(t, 0, stored.WarningsFound)
	assert.Equal(t, 1, stored.SuggestionsCount)
	assert.Equal(t, domain.AnalysisStatusOK, stored.AnalysisStatus)
	require.NotNil(t, stored.Report.CodeMetrics)
	assert.Equal(t, "Python", stored.Report.Language)
}

func TestIngestUnsupportedExtension(t *testing.T) {
	st := newFakeStore()
	ai := &fakeAI{response: goodResponse}
	svc := NewReviewService(ai, st)

	_, err := svc.Ingest(context.Background(), "notes.txt", []byte("whatever"))
	require.ErrorIs(t, err, port.ErrUnsupportedFileType)

	// Rejected before any processing: no model call, nothing stored.
	assert.Zero(t, ai.calls)
	assert.Empty(t, st.reviews)
}

func TestIngestEmptyFilename(t *testing.T) {
	svc := NewReviewService(&fakeAI{}, newFakeStore())
	_, err := svc.Ingest(context.Background(), "", nil)
	require.ErrorIs(t, err, port.ErrEmptyFilename)
}

func TestIngestModelFailureIsAbsorbed(t *testing.T) {
	st := newFakeStore()
	svc := NewReviewService(&fakeAI{err: errors.New("connection refused")}, st)

	res, err := svc.Ingest(context.Background(), "app.js", []byte("let x = 1;\n"))
	require.NoError(t, err)

	assert.Equal(t, domain.AnalysisStatusDegraded, res.Status)
	assert.Equal(t, 0, res.Report.OverallScore)
	assert.Empty(t, res.Report.Errors)
	assert.Contains(t, res.Report.Summary, "connection refused")

	stored := st.reviews[res.ReviewID]
	require.NotNil(t, stored)
	assert.Equal(t, domain.AnalysisStatusDegraded, stored.AnalysisStatus)
	assert.Equal(t, 0, stored.QualityScore)
}

func TestIngestUnparsableOutputIsAbsorbed(t *testing.T) {
	st := newFakeStore()
	svc := NewReviewService(&fakeAI{response: "sorry, I cannot review this"}, st)

	res, err := svc.Ingest(context.Background(), "app.go", []byte("package app\n"))
	require.NoError(t, err)
	assert.Equal(t, domain.AnalysisStatusDegraded, res.Status)
	assert.Equal(t, 0, res.Report.OverallScore)
	assert.Len(t, st.reviews, 1)
}

func TestIngestStorageFailurePropagates(t *testing.T) {
	st := newFakeStore()
	st.insertErr = errors.New("disk full")
	svc := NewReviewService(&fakeAI{response: goodResponse}, st)

	_, err := svc.Ingest(context.Background(), "app.rb", []byte("puts 1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestIngestDropsInvalidUTF8(t *testing.T) {
	st := newFakeStore()
	svc := NewReviewService(&fakeAI{response: goodResponse}, st)

	raw := append([]byte("ok"), 0xff, 0xfe)
	raw = append(raw, []byte("fine\n")...)
	res, err := svc.Ingest(context.Background(), "data.c", raw)
	require.NoError(t, err)

	stored := st.reviews[res.ReviewID]
	assert.Equal(t, "okfine\n", stored.CodeContent)
	// File size reflects the original upload, not the decoded text.
	assert.Equal(t, int64(len(raw)), stored.FileSize)
}

func TestIngestBatchPartialFailure(t *testing.T) {
	st := newFakeStore()
	svc := NewReviewService(&fakeAI{response: goodResponse}, st)

	files := []BatchFile{
		{Filename: "one.py", Data: []byte("a = 1\n")},
		{Filename: "two.exe", Data: []byte{0x4d, 0x5a}},
		{Filename: "three.go", Data: []byte("package three\n")},
	}

	result := svc.IngestBatch(context.Background(), files)

	require.Len(t, result.Results, 2)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "one.py", result.Results[0].Filename)
	assert.Equal(t, "three.go", result.Results[1].Filename)
	assert.Equal(t, "success", result.Results[0].Status)
	assert.Equal(t, "two.exe", result.Errors[0].Filename)
	assert.Contains(t, result.Errors[0].Error, "file type not allowed")
	assert.Len(t, st.reviews, 2)
}

func TestIngestBatchNeverAborts(t *testing.T) {
	st := newFakeStore()
	st.insertErr = errors.New("db down")
	svc := NewReviewService(&fakeAI{response: goodResponse}, st)

	result := svc.IngestBatch(context.Background(), []BatchFile{
		{Filename: "a.py", Data: []byte("x\n")},
		{Filename: "b.py", Data: []byte("y\n")},
	})

	assert.Empty(t, result.Results)
	assert.Len(t, result.Errors, 2)
}
