package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/waterops/backend/internal/domain"
	"github.com/waterops/backend/internal/logger"
)

const snapshotCacheTTL = 5 * time.Minute

// DashboardService regenerates the full operator snapshot for a seed: station
// topology, alarms, direction targets, KPIs, system state and the suggested
// action list.
type DashboardService struct {
	stations   *StationService
	alarms     *AlarmService
	directions *DirectionService
	repo       SnapshotRepository
	cache      SnapshotCache
	log        *logger.Logger

	wgBg sync.WaitGroup // tracks background goroutines for graceful shutdown
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	stations *StationService,
	alarms *AlarmService,
	directions *DirectionService,
	repo SnapshotRepository,
	cache SnapshotCache,
	log *logger.Logger,
) *DashboardService {
	return &DashboardService{
		stations:   stations,
		alarms:     alarms,
		directions: directions,
		repo:       repo,
		cache:      cache,
		log:        log,
	}
}

// WaitBackground blocks until all background save goroutines complete.
// Call during graceful shutdown to avoid dropped writes.
func (s *DashboardService) WaitBackground() {
	s.wgBg.Wait()
}

// Snapshot builds (or returns the cached) dashboard state for a seed.
func (s *DashboardService) Snapshot(ctx context.Context, seed int64, thr domain.Thresholds) domain.Snapshot {
	if s.cache != nil {
		if cached, err := s.cache.GetSnapshot(ctx, seed, thr); err == nil && cached != nil {
			return *cached
		}
	}

	now := time.Now()
	stations, edges := s.stations.Generate(seed, now)
	alarms := s.alarms.Generate(stations, seed, now)
	directions := s.directions.Generate(seed)

	kpis := buildKPIs(stations, alarms)
	staleness := stalenessSeconds(stations, now)

	snapshot := domain.Snapshot{
		ID:          uuid.New().String(),
		Seed:        seed,
		GeneratedAt: now,
		SystemState: domain.SystemStateFromCounts(kpis.OfflineCount, kpis.AlarmCount, kpis.TotalStations),
		Freshness: domain.Freshness{
			Label:      domain.FreshnessFor(staleness),
			StalenessS: staleness,
		},
		KPIs:       kpis,
		Stations:   stations,
		Edges:      edges,
		Alarms:     alarms,
		Directions: directions,
		Actions:    buildActions(stations, directions, kpis, staleness, thr),
	}

	// Persist and cache off the request path (tracked for graceful shutdown)
	s.wgBg.Add(1)
	go func() {
		defer s.wgBg.Done()
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.repo.SaveSnapshot(bgCtx, summarize(snapshot)); err != nil {
			s.log.Warnf("Failed to save snapshot summary: %v", err)
		}
		if s.cache != nil {
			if err := s.cache.SetSnapshot(bgCtx, snapshot, thr, snapshotCacheTTL); err != nil {
				s.log.Warnf("Failed to cache snapshot: %v", err)
			}
		}
	}()

	return snapshot
}

// History returns persisted snapshot summaries.
func (s *DashboardService) History(ctx context.Context, from, to time.Time) ([]domain.SnapshotSummary, error) {
	return s.repo.History(ctx, from, to)
}

func buildKPIs(stations []domain.Station, alarms []domain.Alarm) domain.KPIs {
	kpis := domain.KPIs{TotalStations: len(stations)}

	for _, st := range stations {
		switch st.Status {
		case domain.StatusOK:
			kpis.OKCount++
		case domain.StatusWarn:
			kpis.WarnCount++
		case domain.StatusAlarm:
			kpis.AlarmCount++
		case domain.StatusOffline:
			kpis.OfflineCount++
		}
		switch st.Mode {
		case domain.ModeAuto:
			kpis.AutoCount++
		case domain.ModeManual:
			kpis.ManualCount++
		case domain.ModeProgram:
			kpis.ProgramCount++
		}
	}

	for _, a := range alarms {
		switch a.Severity {
		case domain.SeverityCritical:
			kpis.CriticalAlarms++
		case domain.SeverityWarning:
			kpis.WarningAlarms++
		}
		if !a.Acked {
			kpis.UnackedAlarms++
			if kpis.OldestUnacked == nil || a.Time.Before(*kpis.OldestUnacked) {
				t := a.Time
				kpis.OldestUnacked = &t
			}
		}
	}

	return kpis
}

func stalenessSeconds(stations []domain.Station, now time.Time) int {
	if len(stations) == 0 {
		return 0
	}
	newest := stations[0].LastUpdate
	for _, st := range stations[1:] {
		if st.LastUpdate.After(newest) {
			newest = st.LastUpdate
		}
	}
	return int(now.Sub(newest).Seconds())
}

// buildActions applies the operator action rules in priority order: offline
// stations, unacknowledged alarms, stale data, prolonged manual operation,
// direction deviation. An empty result becomes the single OK item.
func buildActions(stations []domain.Station, directions []domain.DirectionTarget, kpis domain.KPIs, stalenessS int, thr domain.Thresholds) []domain.ActionItem {
	var actions []domain.ActionItem

	var offline []string
	for _, st := range stations {
		if st.Status == domain.StatusOffline {
			offline = append(offline, st.ID)
		}
	}
	if len(offline) > 0 {
		actions = append(actions, domain.ActionItem{
			Severity: domain.ActionCritical,
			Message:  fmt.Sprintf("Communication loss: %d station(s) OFFLINE", len(offline)),
			Related:  offline,
		})
	}

	if kpis.UnackedAlarms > 0 {
		severity := domain.ActionWarning
		if kpis.UnackedAlarms >= 5 {
			severity = domain.ActionCritical
		}
		actions = append(actions, domain.ActionItem{
			Severity: severity,
			Message:  fmt.Sprintf("%d unacknowledged alarm(s) require acknowledgement", kpis.UnackedAlarms),
		})
	}

	if stalenessS >= thr.StaleSeconds {
		severity := domain.ActionWarning
		if stalenessS >= thr.StaleSeconds*2 {
			severity = domain.ActionCritical
		}
		actions = append(actions, domain.ActionItem{
			Severity: severity,
			Message:  fmt.Sprintf("System data freshness is STALE (%ds since last update)", stalenessS),
		})
	}

	var longManual []string
	for _, st := range stations {
		if st.Mode == domain.ModeManual && st.ManualSinceMin >= thr.ManualMinutes {
			longManual = append(longManual, st.ID)
		}
	}
	if len(longManual) > 0 {
		actions = append(actions, domain.ActionItem{
			Severity: domain.ActionWarning,
			Message:  fmt.Sprintf("Manual operation exceeding %d min: %d gate(s)", thr.ManualMinutes, len(longManual)),
			Related:  longManual,
		})
	}

	if top, ok := worstDeviation(directions, thr.DeviationPct); ok {
		severity := domain.ActionWarning
		if abs(top.DeviationPct) >= thr.DeviationPct*1.5 {
			severity = domain.ActionCritical
		}
		actions = append(actions, domain.ActionItem{
			Severity: severity,
			Message:  fmt.Sprintf("Direction deviation exceeds %.0f%%: %s (%.1f%%)", thr.DeviationPct, top.Direction, top.DeviationPct),
			Related:  []string{top.Direction},
		})
	}

	if len(actions) == 0 {
		actions = append(actions, domain.ActionItem{
			Severity: domain.ActionOK,
			Message:  "No urgent action suggested (based on current thresholds).",
		})
	}

	return actions
}

// worstDeviation returns the direction with the largest absolute deviation at
// or above the threshold.
func worstDeviation(directions []domain.DirectionTarget, thresholdPct float64) (domain.DirectionTarget, bool) {
	var worst domain.DirectionTarget
	found := false
	for _, d := range directions {
		if abs(d.DeviationPct) < thresholdPct {
			continue
		}
		if !found || abs(d.DeviationPct) > abs(worst.DeviationPct) {
			worst = d
			found = true
		}
	}
	return worst, found
}

func summarize(s domain.Snapshot) domain.SnapshotSummary {
	maxDev := 0.0
	for _, d := range s.Directions {
		if abs(d.DeviationPct) > maxDev {
			maxDev = abs(d.DeviationPct)
		}
	}
	return domain.SnapshotSummary{
		ID:              s.ID,
		GeneratedAt:     s.GeneratedAt,
		Seed:            s.Seed,
		SystemState:     s.SystemState,
		OKCount:         s.KPIs.OKCount,
		WarnCount:       s.KPIs.WarnCount,
		AlarmCount:      s.KPIs.AlarmCount,
		OfflineCount:    s.KPIs.OfflineCount,
		UnackedAlarms:   s.KPIs.UnackedAlarms,
		MaxDeviationPct: maxDev,
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
