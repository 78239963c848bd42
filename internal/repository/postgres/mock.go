package postgres

import (
	"context"
	"sync"
	"time"

	"github.com/waterops/backend/internal/domain"
)

// MockRepository implements domain.SnapshotRepository in memory for demo mode
// and tests, used when no database is configured.
type MockRepository struct {
	mu        sync.Mutex
	summaries []domain.SnapshotSummary
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveSnapshot stores the summary in memory
func (r *MockRepository) SaveSnapshot(ctx context.Context, s domain.SnapshotSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summaries = append(r.summaries, s)
	return nil
}

// History returns stored summaries within the range, newest first
func (r *MockRepository) History(ctx context.Context, from, to time.Time) ([]domain.SnapshotSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var results []domain.SnapshotSummary
	for i := len(r.summaries) - 1; i >= 0; i-- {
		s := r.summaries[i]
		if s.GeneratedAt.Before(from) || s.GeneratedAt.After(to) {
			continue
		}
		results = append(results, s)
	}
	return results, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
