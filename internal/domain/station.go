package domain

import "time"

// Station status values
const (
	StatusOK      = "OK"
	StatusWarn    = "WARN"
	StatusAlarm   = "ALARM"
	StatusOffline = "OFFLINE"
)

// Station operation modes
const (
	ModeAuto    = "AUTO"
	ModeManual  = "MANUAL"
	ModeProgram = "PROGRAM"
)

// Station types
const (
	TypeHub  = "Hub"
	TypeTC   = "TC"
	TypeSPC  = "SPC"
	TypeGate = "Gate"
)

// Station represents one monitored site (headworks, telemetry/control station
// or gate) with its operational state.
type Station struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Type           string    `json:"type"`
	Status         string    `json:"status"`
	Mode           string    `json:"mode"`
	LastUpdate     time.Time `json:"last_update"`
	CommRTTMillis  *int      `json:"comm_rtt_ms,omitempty"` // absent while OFFLINE
	ManualSinceMin int       `json:"manual_since_min"`
}

// Edge is a directed topology link between two stations.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// StationsResponse wraps the station list with metadata
type StationsResponse struct {
	Stations []Station `json:"stations"`
	Edges    []Edge    `json:"edges"`
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
}
