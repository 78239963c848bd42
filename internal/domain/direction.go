package domain

import "time"

// Deviation levels for direction flow targets
const (
	DeviationLow    = "Low"
	DeviationMedium = "Medium"
	DeviationHigh   = "High"
)

// DirectionTarget compares planned against actual flow for one distribution
// direction.
type DirectionTarget struct {
	Direction      string  `json:"direction"`
	PlanFlow       float64 `json:"q_plan_m3s"`
	ActualFlow     float64 `json:"q_actual_m3s"`
	DeviationPct   float64 `json:"deviation_pct"`
	DeviationLevel string  `json:"deviation_level"`
}

// TrendPoint is one hourly sample of the plan/actual flow series.
type TrendPoint struct {
	Time         time.Time `json:"time"`
	PlanFlow     float64   `json:"q_plan"`
	ActualFlow   float64   `json:"q_actual"`
	DeviationPct float64   `json:"deviation_pct"`
}

// DirectionsResponse wraps direction targets with metadata
type DirectionsResponse struct {
	Directions []DirectionTarget `json:"directions"`
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
}

// TrendResponse wraps the trend series with metadata
type TrendResponse struct {
	Trend   []TrendPoint `json:"trend"`
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
}

// DeviationLevelFor classifies an absolute deviation percentage.
func DeviationLevelFor(devPct float64) string {
	a := devPct
	if a < 0 {
		a = -a
	}
	switch {
	case a >= 15:
		return DeviationHigh
	case a >= 8:
		return DeviationMedium
	default:
		return DeviationLow
	}
}
