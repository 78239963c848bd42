package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterops/backend/internal/config"
	"github.com/waterops/backend/internal/domain"
	"github.com/waterops/backend/internal/geo"
	"github.com/waterops/backend/internal/logger"
	"github.com/waterops/backend/pkg/utils"
)

func testNetworkConfig() *config.NetworkConfig {
	return &config.NetworkConfig{
		Origin:          geo.GeoPoint{Lon: 80.24, Lat: 13.06},
		ApproachOffsetM: 25,
		Roads: []config.Road{
			{
				Name: "main",
				Points: []geo.GeoPoint{
					{Lon: 80.18, Lat: 13.08},
					{Lon: 80.26, Lat: 13.06},
					{Lon: 80.30, Lat: 13.03},
				},
			},
		},
		Intersections: []domain.Intersection{
			{ID: "IX-01", Name: "First", Location: geo.GeoPoint{Lon: 80.20, Lat: 13.075}},
			{ID: "IX-02", Name: "Second", Location: geo.GeoPoint{Lon: 80.27, Lat: 13.05}},
		},
	}
}

func TestCongestionView(t *testing.T) {
	svc := NewTrafficService(testNetworkConfig(), logger.New("error"))

	view := svc.Congestion(10, testNow)
	require.Len(t, view.Intersections, 2)

	for _, ix := range view.Intersections {
		assert.InDelta(t, 1.0, math.Hypot(ix.Tangent.X, ix.Tangent.Y), 1e-9)
		assert.GreaterOrEqual(t, ix.CongestionIndex, 20.0)
		assert.LessOrEqual(t, ix.CongestionIndex, 95.0)
		assert.Equal(t, congestionLevel(ix.CongestionIndex), ix.Level)

		require.Len(t, ix.Approaches, 4)
		for _, ap := range ix.Approaches {
			dist := utils.HaversineM(ix.Snapped.Lat, ix.Snapped.Lon, ap.Location.Lat, ap.Location.Lon)
			assert.InDelta(t, 25, dist, 0.5, "approach %s must sit at the configured offset", ap.Label)
			assert.GreaterOrEqual(t, ap.CongestionIndex, 0.0)
			assert.LessOrEqual(t, ap.CongestionIndex, 100.0)
		}

		// Opposite approaches are mirrored through the snapped point.
		ahead, back := ix.Approaches[0], ix.Approaches[1]
		assert.Equal(t, domain.ApproachAhead, ahead.Label)
		assert.Equal(t, domain.ApproachBack, back.Label)
		assert.InDelta(t, ix.Snapped.Lon, (ahead.Location.Lon+back.Location.Lon)/2, 1e-9)
		assert.InDelta(t, ix.Snapped.Lat, (ahead.Location.Lat+back.Location.Lat)/2, 1e-9)
	}
}

func TestCongestionDeterministic(t *testing.T) {
	svc := NewTrafficService(testNetworkConfig(), logger.New("error"))
	assert.Equal(t, svc.Congestion(10, testNow), svc.Congestion(10, testNow))
}

func TestCongestionSkipsUnsnappableIntersections(t *testing.T) {
	cfg := testNetworkConfig()
	cfg.Roads = nil // no segments at all

	svc := NewTrafficService(cfg, logger.New("error"))
	view := svc.Congestion(10, testNow)
	assert.Empty(t, view.Intersections)
}

func TestCongestionLevels(t *testing.T) {
	assert.Equal(t, "Severe", congestionLevel(85))
	assert.Equal(t, "Heavy", congestionLevel(60))
	assert.Equal(t, "Moderate", congestionLevel(45))
	assert.Equal(t, "Light", congestionLevel(20))
	assert.Equal(t, "Free Flow", congestionLevel(5))
}
