package domain

import (
	"time"

	"github.com/waterops/backend/internal/geo"
)

// Approach labels, relative to the road tangent at the snapped point.
const (
	ApproachAhead = "ahead"
	ApproachBack  = "back"
	ApproachLeft  = "left"
	ApproachRight = "right"
)

// Intersection is a monitored road junction from static configuration.
type Intersection struct {
	ID       string       `json:"id" yaml:"id" validate:"required"`
	Name     string       `json:"name" yaml:"name" validate:"required"`
	Location geo.GeoPoint `json:"location" yaml:"location"`
}

// Approach is a derived marker placed at a fixed physical distance from the
// snapped intersection point, along or perpendicular to the road tangent.
type Approach struct {
	Label           string       `json:"label"`
	Location        geo.GeoPoint `json:"location"`
	CongestionIndex float64      `json:"congestion_index"`
	Level           string       `json:"level"`
}

// IntersectionStatus is one intersection with its snapped position and
// per-approach congestion.
type IntersectionStatus struct {
	Intersection    Intersection   `json:"intersection"`
	Snapped         geo.GeoPoint   `json:"snapped"`
	Tangent         geo.LocalPoint `json:"tangent"`
	CongestionIndex float64        `json:"congestion_index"`
	Level           string         `json:"level"`
	Approaches      []Approach     `json:"approaches"`
}

// Congestion is the full intersection view for one snapshot.
type Congestion struct {
	Intersections []IntersectionStatus `json:"intersections"`
	Timestamp     time.Time            `json:"timestamp"`
}

// CongestionResponse wraps congestion data with metadata
type CongestionResponse struct {
	Data    Congestion `json:"data"`
	Success bool       `json:"success"`
	Message string     `json:"message,omitempty"`
}

// SnapRequest is the body of a snap query.
type SnapRequest struct {
	Lon     float64 `json:"lon"`
	Lat     float64 `json:"lat"`
	OffsetM float64 `json:"offset_m,omitempty"`
}

// SnapMarker is one derived offset point around a snapped location.
type SnapMarker struct {
	Label    string       `json:"label"`
	Location geo.GeoPoint `json:"location"`
}

// SnapResponse carries the projection and, when an offset distance was given,
// the four offset markers around the snapped point.
type SnapResponse struct {
	Projection geo.Projection `json:"projection"`
	Markers    []SnapMarker   `json:"markers,omitempty"`
	Success    bool           `json:"success"`
	Message    string         `json:"message,omitempty"`
}
