package domain

import "time"

// Alarm severities
const (
	SeverityCritical = "CRITICAL"
	SeverityWarning  = "WARNING"
)

// Alarm represents a single alarm event raised by a station.
type Alarm struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Station  string    `json:"station"`
	Severity string    `json:"severity"`
	Type     string    `json:"type"`
	Message  string    `json:"message"`
	Acked    bool      `json:"acked"`
}

// AlarmsResponse wraps the alarm list with metadata
type AlarmsResponse struct {
	Alarms  []Alarm `json:"alarms"`
	Count   int     `json:"count"`
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
}
