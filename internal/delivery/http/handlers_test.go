package http

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	nethttp "net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterops/backend/internal/config"
	"github.com/waterops/backend/internal/domain"
	"github.com/waterops/backend/internal/geo"
	"github.com/waterops/backend/internal/logger"
	"github.com/waterops/backend/internal/repository/postgres"
	"github.com/waterops/backend/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		DefaultSeed:   10,
		StaleSeconds:  600,
		ManualMinutes: 120,
		DeviationPct:  10,
	}
	netCfg := &config.NetworkConfig{
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
		},
	}

	log := logger.New("error")
	stationSvc := service.NewStationService()
	alarmSvc := service.NewAlarmService()
	directionSvc := service.NewDirectionService()
	trafficSvc := service.NewTrafficService(netCfg, log)
	dashboardSvc := service.NewDashboardService(stationSvc, alarmSvc, directionSvc, postgres.NewMockRepository(), nil, log)

	app := fiber.New()
	handler := NewHandler(cfg, netCfg, dashboardSvc, trafficSvc, stationSvc, alarmSvc, directionSvc)
	SetupRoutes(app, handler)
	return app
}

func decodeBody(t *testing.T, resp *nethttp.Response, dest interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, dest))
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(mustRequest(t, "GET", "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
}

func TestGetDashboard(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(mustRequest(t, "GET", "/api/v1/dashboard?seed=42", nil))
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var out domain.SnapshotResponse
	decodeBody(t, resp, &out)
	assert.True(t, out.Success)
	assert.EqualValues(t, 42, out.Data.Seed)
	assert.Len(t, out.Data.Stations, 12)
	assert.NotEmpty(t, out.Data.Actions)

	// Same seed reproduces the same operational state.
	resp2, err := app.Test(mustRequest(t, "GET", "/api/v1/dashboard?seed=42", nil))
	require.NoError(t, err)
	var out2 domain.SnapshotResponse
	decodeBody(t, resp2, &out2)
	assert.Equal(t, out.Data.KPIs.OKCount, out2.Data.KPIs.OKCount)
	assert.Equal(t, out.Data.SystemState, out2.Data.SystemState)
}

func TestGetStationsFilter(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(mustRequest(t, "GET", "/api/v1/stations?seed=10&status=OFFLINE,ALARM", nil))
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var out domain.StationsResponse
	decodeBody(t, resp, &out)
	for _, st := range out.Stations {
		assert.Contains(t, []string{domain.StatusOffline, domain.StatusAlarm}, st.Status)
	}
	for _, e := range out.Edges {
		// Every surviving edge connects surviving stations.
		assert.True(t, containsStation(out.Stations, e.From))
		assert.True(t, containsStation(out.Stations, e.To))
	}
}

func TestGetAlarmsLimit(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(mustRequest(t, "GET", "/api/v1/alarms?seed=10&limit=10", nil))
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var out domain.AlarmsResponse
	decodeBody(t, resp, &out)
	assert.Len(t, out.Alarms, 10)
}

func TestGetTrend(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(mustRequest(t, "GET", "/api/v1/trend?seed=10&hours=5", nil))
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var out domain.TrendResponse
	decodeBody(t, resp, &out)
	assert.Len(t, out.Trend, 5)
}

func TestGetCongestion(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(mustRequest(t, "GET", "/api/v1/congestion?seed=10", nil))
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var out domain.CongestionResponse
	decodeBody(t, resp, &out)
	require.Len(t, out.Data.Intersections, 1)
	assert.Len(t, out.Data.Intersections[0].Approaches, 4)
}

func TestSnap(t *testing.T) {
	app := newTestApp(t)

	body, _ := json.Marshal(domain.SnapRequest{Lon: 80.20, Lat: 13.075, OffsetM: 30})
	req := mustRequest(t, "POST", "/api/v1/snap", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)

	var out domain.SnapResponse
	decodeBody(t, resp, &out)
	assert.True(t, out.Success)
	assert.InDelta(t, 1.0, math.Hypot(out.Projection.Tangent.X, out.Projection.Tangent.Y), 1e-9)
	assert.Len(t, out.Markers, 4)
}

func TestSnapRejectsBadCoordinates(t *testing.T) {
	app := newTestApp(t)

	body, _ := json.Marshal(domain.SnapRequest{Lon: 300, Lat: 13.075})
	req := mustRequest(t, "POST", "/api/v1/snap", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
}

func TestThresholdOverrides(t *testing.T) {
	h := &Handler{cfg: &config.Config{
		StaleSeconds:  600,
		ManualMinutes: 120,
		DeviationPct:  10,
	}}

	app := fiber.New()
	app.Get("/thr", func(c *fiber.Ctx) error {
		return c.JSON(h.thresholds(c))
	})

	cases := []struct {
		name   string
		target string
		want   domain.Thresholds
	}{
		{"defaults", "/thr", domain.Thresholds{StaleSeconds: 600, ManualMinutes: 120, DeviationPct: 10}},
		{"overrides", "/thr?stale_s=60&manual_min=30&deviation_pct=2.5", domain.Thresholds{StaleSeconds: 60, ManualMinutes: 30, DeviationPct: 2.5}},
		{"explicit zero deviation", "/thr?deviation_pct=0", domain.Thresholds{StaleSeconds: 600, ManualMinutes: 120, DeviationPct: 0}},
		{"unparseable falls back", "/thr?deviation_pct=abc", domain.Thresholds{StaleSeconds: 600, ManualMinutes: 120, DeviationPct: 10}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(mustRequest(t, "GET", tc.target, nil))
			require.NoError(t, err)

			var got domain.Thresholds
			decodeBody(t, resp, &got)
			assert.Equal(t, tc.want, got)
		})
	}
}

func mustRequest(t *testing.T, method, target string, body io.Reader) *nethttp.Request {
	t.Helper()
	req, err := nethttp.NewRequest(method, target, body)
	require.NoError(t, err)
	return req
}

func containsStation(stations []domain.Station, id string) bool {
	for _, st := range stations {
		if st.ID == id {
			return true
		}
	}
	return false
}
