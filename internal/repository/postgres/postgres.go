package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/waterops/backend/internal/domain"
)

// PostgresRepository implements domain.SnapshotRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// SaveSnapshot persists a snapshot summary row to PostgreSQL
func (r *PostgresRepository) SaveSnapshot(ctx context.Context, s domain.SnapshotSummary) error {
	query := `
		INSERT INTO dashboard_snapshots (
			id, generated_at, seed, system_state,
			ok_count, warn_count, alarm_count, offline_count,
			unacked_alarms, max_deviation_pct
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		s.ID, s.GeneratedAt, s.Seed, s.SystemState,
		s.OKCount, s.WarnCount, s.AlarmCount, s.OfflineCount,
		s.UnackedAlarms, s.MaxDeviationPct,
	)
	if err != nil {
		return fmt.Errorf("postgres: failed to save snapshot summary: %w", err)
	}

	return nil
}

// History retrieves snapshot summaries from PostgreSQL
func (r *PostgresRepository) History(ctx context.Context, from, to time.Time) ([]domain.SnapshotSummary, error) {
	query := `
		SELECT id, generated_at, seed, system_state,
			   ok_count, warn_count, alarm_count, offline_count,
			   unacked_alarms, max_deviation_pct
		FROM dashboard_snapshots
		WHERE generated_at BETWEEN $1 AND $2
		ORDER BY generated_at DESC
		LIMIT 100
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query snapshot history: %w", err)
	}
	defer rows.Close()

	var results []domain.SnapshotSummary
	for rows.Next() {
		var s domain.SnapshotSummary
		err := rows.Scan(
			&s.ID, &s.GeneratedAt, &s.Seed, &s.SystemState,
			&s.OKCount, &s.WarnCount, &s.AlarmCount, &s.OfflineCount,
			&s.UnackedAlarms, &s.MaxDeviationPct,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan snapshot row: %w", err)
		}
		results = append(results, s)
	}

	return results, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
