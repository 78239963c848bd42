package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/waterops/backend/internal/domain"
)

// SnapshotRepository is re-exported from domain for convenience
type SnapshotRepository = domain.SnapshotRepository

// SnapshotCache caches fully built snapshots per seed and thresholds. A nil
// cache disables caching.
type SnapshotCache interface {
	SetSnapshot(ctx context.Context, s domain.Snapshot, thr domain.Thresholds, ttl time.Duration) error
	GetSnapshot(ctx context.Context, seed int64, thr domain.Thresholds) (*domain.Snapshot, error)
}

// Sub-seed offsets, one per generator, so a single base seed reproduces the
// whole snapshot while the generators stay independent of each other.
const (
	seedOffsetStations   = 0
	seedOffsetAlarms     = 1000
	seedOffsetDirections = 2000
	seedOffsetTrend      = 3000
	seedOffsetCongestion = 4000
)

// pickWeighted draws one option with the given relative integer weights.
func pickWeighted(rng *rand.Rand, options []string, weights []int) string {
	total := 0
	for _, w := range weights {
		total += w
	}
	n := rng.Intn(total)
	for i, w := range weights {
		if n < w {
			return options[i]
		}
		n -= w
	}
	return options[len(options)-1]
}
