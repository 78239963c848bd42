package domain

import (
	"context"
	"time"
)

// SnapshotRepository defines the interface for snapshot history persistence.
// The domain owns the interface; implementations live under
// internal/repository.
type SnapshotRepository interface {
	// SaveSnapshot persists a snapshot summary row
	SaveSnapshot(ctx context.Context, s SnapshotSummary) error

	// History retrieves snapshot summaries within a time range
	History(ctx context.Context, from, to time.Time) ([]SnapshotSummary, error)

	// Health checks database connectivity
	Health(ctx context.Context) error
}
