package domain

import "time"

// System states derived from station counts
const (
	StateActive      = "Active"
	StateDegraded    = "Degraded"
	StatePartialDown = "Partial Down"
	StateDown        = "Down"
)

// Freshness labels for the newest station update
const (
	FreshnessFresh = "Fresh"
	FreshnessDelay = "Slight Delay"
	FreshnessStale = "Stale"
)

// Action severities (OK doubles as the "nothing to do" marker)
const (
	ActionOK       = "OK"
	ActionWarning  = "WARNING"
	ActionCritical = "CRITICAL"
)

// KPIs are the headline counts shown on the dashboard.
type KPIs struct {
	TotalStations int `json:"total_stations"`
	OKCount       int `json:"ok_count"`
	WarnCount     int `json:"warn_count"`
	AlarmCount    int `json:"alarm_count"`
	OfflineCount  int `json:"offline_count"`

	AutoCount    int `json:"auto_count"`
	ManualCount  int `json:"manual_count"`
	ProgramCount int `json:"program_count"`

	CriticalAlarms int        `json:"critical_alarms"`
	WarningAlarms  int        `json:"warning_alarms"`
	UnackedAlarms  int        `json:"unacked_alarms"`
	OldestUnacked  *time.Time `json:"oldest_unacked,omitempty"`
}

// Freshness describes how stale the newest station update is.
type Freshness struct {
	Label      string `json:"label"`
	StalenessS int    `json:"staleness_s"`
}

// ActionItem is one suggested operator action derived from the current state
// and thresholds.
type ActionItem struct {
	Severity string   `json:"severity"`
	Message  string   `json:"message"`
	Related  []string `json:"related,omitempty"`
}

// Thresholds are the operator-adjustable limits feeding the action rules.
type Thresholds struct {
	StaleSeconds  int     `json:"stale_s"`
	ManualMinutes int     `json:"manual_min"`
	DeviationPct  float64 `json:"deviation_pct"`
}

// Snapshot is one fully regenerated dashboard state for a given seed.
type Snapshot struct {
	ID          string    `json:"id"`
	Seed        int64     `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`

	SystemState string    `json:"system_state"`
	Freshness   Freshness `json:"freshness"`
	KPIs        KPIs      `json:"kpis"`

	Stations   []Station         `json:"stations"`
	Edges      []Edge            `json:"edges"`
	Alarms     []Alarm           `json:"alarms"`
	Directions []DirectionTarget `json:"directions"`
	Actions    []ActionItem      `json:"actions"`
}

// SnapshotSummary is the compact per-snapshot row kept in history.
type SnapshotSummary struct {
	ID              string    `json:"id"`
	GeneratedAt     time.Time `json:"generated_at"`
	Seed            int64     `json:"seed"`
	SystemState     string    `json:"system_state"`
	OKCount         int       `json:"ok_count"`
	WarnCount       int       `json:"warn_count"`
	AlarmCount      int       `json:"alarm_count"`
	OfflineCount    int       `json:"offline_count"`
	UnackedAlarms   int       `json:"unacked_alarms"`
	MaxDeviationPct float64   `json:"max_deviation_pct"`
}

// SnapshotResponse wraps a snapshot with metadata
type SnapshotResponse struct {
	Data    Snapshot `json:"data"`
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
}

// SystemStateFromCounts derives the overall system state from station counts:
// 40% or more offline is Down, offline plus alarms is Partial Down, any
// offline or alarm is Degraded, otherwise Active.
func SystemStateFromCounts(offlineCount, alarmCount, total int) string {
	threshold := int(float64(total) * 0.4)
	if threshold < 1 {
		threshold = 1
	}
	switch {
	case offlineCount >= threshold:
		return StateDown
	case offlineCount > 0 && alarmCount > 0:
		return StatePartialDown
	case offlineCount > 0 || alarmCount > 0:
		return StateDegraded
	default:
		return StateActive
	}
}

// FreshnessFor classifies data staleness in seconds.
func FreshnessFor(stalenessS int) string {
	switch {
	case stalenessS <= 60:
		return FreshnessFresh
	case stalenessS <= 300:
		return FreshnessDelay
	default:
		return FreshnessStale
	}
}
