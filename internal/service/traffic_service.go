package service

import (
	"math/rand"
	"time"

	"github.com/waterops/backend/internal/config"
	"github.com/waterops/backend/internal/domain"
	"github.com/waterops/backend/internal/geo"
	"github.com/waterops/backend/internal/logger"
	"github.com/waterops/backend/pkg/utils"
)

// TrafficService derives the intersection congestion view: each monitored
// intersection is snapped onto the road network and gets four approach
// markers offset along and perpendicular to the road tangent.
type TrafficService struct {
	cfg     *config.NetworkConfig
	network geo.Network
	log     *logger.Logger
}

// NewTrafficService creates a new traffic service
func NewTrafficService(cfg *config.NetworkConfig, log *logger.Logger) *TrafficService {
	return &TrafficService{
		cfg:     cfg,
		network: cfg.Network(),
		log:     log,
	}
}

// Congestion builds the intersection view for a seed. Intersections that fail
// to snap are skipped with a warning rather than failing the whole view.
func (s *TrafficService) Congestion(seed int64, now time.Time) domain.Congestion {
	rng := rand.New(rand.NewSource(seed + seedOffsetCongestion))

	statuses := make([]domain.IntersectionStatus, 0, len(s.cfg.Intersections))
	for _, ix := range s.cfg.Intersections {
		proj, err := geo.SnapToNetwork(ix.Location, s.network, s.cfg.Origin)
		if err != nil {
			s.log.WithField("intersection", ix.ID).Warnf("skipping intersection: %v", err)
			continue
		}

		index := utils.RoundTo(20+rng.Float64()*75, 1)

		statuses = append(statuses, domain.IntersectionStatus{
			Intersection:    ix,
			Snapped:         proj.Point,
			Tangent:         proj.Tangent,
			CongestionIndex: index,
			Level:           congestionLevel(index),
			Approaches:      s.approaches(rng, proj, index),
		})
	}

	return domain.Congestion{
		Intersections: statuses,
		Timestamp:     now,
	}
}

// Approaches places one marker per approach direction at the configured
// physical distance from the snapped point. Left/right use the fixed
// counterclockwise perpendicular so markers always land on consistent sides.
func (s *TrafficService) approaches(rng *rand.Rand, proj geo.Projection, index float64) []domain.Approach {
	perp := geo.Perpendicular(proj.Tangent)
	dirs := []struct {
		label string
		dir   geo.LocalPoint
	}{
		{domain.ApproachAhead, proj.Tangent},
		{domain.ApproachBack, geo.LocalPoint{X: -proj.Tangent.X, Y: -proj.Tangent.Y}},
		{domain.ApproachLeft, perp},
		{domain.ApproachRight, geo.LocalPoint{X: -perp.X, Y: -perp.Y}},
	}

	approaches := make([]domain.Approach, 0, len(dirs))
	for _, d := range dirs {
		loc, err := geo.Offset(proj.Point, d.dir, s.cfg.ApproachOffsetM, s.cfg.Origin)
		if err != nil {
			// Origin was validated at load, so this only guards future misuse.
			s.log.Warnf("skipping approach marker: %v", err)
			continue
		}

		approachIndex := utils.RoundTo(utils.Clamp(index+(rng.Float64()-0.5)*30, 0, 100), 1)
		approaches = append(approaches, domain.Approach{
			Label:           d.label,
			Location:        loc,
			CongestionIndex: approachIndex,
			Level:           congestionLevel(approachIndex),
		})
	}

	return approaches
}

// congestionLevel returns human-readable level
func congestionLevel(index float64) string {
	switch {
	case index >= 80:
		return "Severe"
	case index >= 60:
		return "Heavy"
	case index >= 40:
		return "Moderate"
	case index >= 20:
		return "Light"
	default:
		return "Free Flow"
	}
}
